package eventbus

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/annel0/sky-shooter/internal/combat"
)

type collector struct {
	mu     sync.Mutex
	events []*Envelope
}

func (c *collector) handle(_ context.Context, ev *Envelope) {
	c.mu.Lock()
	c.events = append(c.events, ev)
	c.mu.Unlock()
}

func (c *collector) len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.events)
}

func TestMemoryBus_PublishSubscribe(t *testing.T) {
	bus := NewMemoryBus(16)
	defer bus.Close()

	hits := &collector{}
	all := &collector{}
	_, err := bus.Subscribe(context.Background(), Filter{Types: []string{TypeHit}}, hits.handle)
	require.NoError(t, err)
	_, err = bus.Subscribe(context.Background(), Filter{}, all.handle)
	require.NoError(t, err)

	hit := HitEvent{Tick: 3, ShotID: uuid.New(), ActorID: uuid.New(), Result: combat.Effective, Damage: 2}
	require.NoError(t, bus.Publish(context.Background(), NewHitEnvelope("sim", hit)))
	require.NoError(t, bus.Publish(context.Background(), NewKillEnvelope("sim", KillEvent{Tick: 3})))

	assert.Eventually(t, func() bool { return hits.len() == 1 && all.len() == 2 }, time.Second, 5*time.Millisecond)

	hits.mu.Lock()
	got := hits.events[0]
	hits.mu.Unlock()
	assert.Equal(t, TypeHit, got.EventType)
	assert.Equal(t, hit, got.Payload)
	assert.NotEmpty(t, got.ID)

	assert.Eventually(t, func() bool {
		s := bus.Metrics()
		return s.Published == 2 && s.Consumed == 3
	}, time.Second, 5*time.Millisecond)
}

func TestMemoryBus_SourceFilterAndUnsubscribe(t *testing.T) {
	bus := NewMemoryBus(16)
	defer bus.Close()

	c := &collector{}
	sub, err := bus.Subscribe(context.Background(), Filter{Sources: []string{"api"}}, c.handle)
	require.NoError(t, err)

	require.NoError(t, bus.Publish(context.Background(), NewEnvelope("sim", "Other", 0, nil)))
	require.NoError(t, bus.Publish(context.Background(), NewEnvelope("api", "Other", 0, nil)))
	assert.Eventually(t, func() bool { return c.len() == 1 }, time.Second, 5*time.Millisecond)

	sub.Unsubscribe()
	require.NoError(t, bus.Publish(context.Background(), NewEnvelope("api", "Other", 0, nil)))
	assert.Eventually(t, func() bool { return bus.Metrics().InFlight == 0 }, time.Second, 5*time.Millisecond)
	assert.Equal(t, 1, c.len())
}

// stalledBus — шина без диспетчера, буфер не разбирается.
func stalledBus(capacity int) *memoryBus {
	return &memoryBus{
		subscribers: make(map[int]subscriber),
		buffer:      make(chan *Envelope, capacity),
		quit:        make(chan struct{}),
		done:        make(chan struct{}),
	}
}

func TestMemoryBus_Backpressure(t *testing.T) {
	bus := stalledBus(1)

	for range 3 {
		require.NoError(t, bus.Publish(context.Background(), NewEnvelope("sim", "Spam", 0, nil)))
	}
	s := bus.Metrics()
	assert.Equal(t, uint64(1), s.Published)
	assert.Equal(t, uint64(2), s.Dropped)
	assert.Equal(t, 1, s.InFlight)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := bus.Publish(ctx, NewEnvelope("sim", "Urgent", 9, nil))
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, uint64(2), bus.Metrics().Dropped, "высокий приоритет не отбрасывается")
}

func TestMemoryBus_Close(t *testing.T) {
	bus := NewMemoryBus(4)
	bus.Close()
	bus.Close()

	err := bus.Publish(context.Background(), NewEnvelope("sim", "Late", 9, nil))
	assert.ErrorIs(t, err, ErrClosed)
}

func TestNewHitEnvelope_Priority(t *testing.T) {
	assert.Equal(t, 5, NewHitEnvelope("sim", HitEvent{Result: combat.Effective}).Priority)
	assert.Equal(t, 3, NewHitEnvelope("sim", HitEvent{Result: combat.Ineffective}).Priority)
}

func TestGlobalPublish(t *testing.T) {
	Init(nil)
	assert.Nil(t, Global())
	assert.NoError(t, Publish(context.Background(), NewEnvelope("sim", "X", 0, nil)))

	bus := NewMemoryBus(4)
	defer bus.Close()
	Init(bus)
	defer Init(nil)

	c := &collector{}
	_, err := bus.Subscribe(context.Background(), Filter{}, c.handle)
	require.NoError(t, err)
	require.NoError(t, Publish(context.Background(), NewEnvelope("sim", "X", 0, nil)))
	assert.Eventually(t, func() bool { return c.len() == 1 }, time.Second, 5*time.Millisecond)
}

func TestMetricsExporter_Sync(t *testing.T) {
	bus := NewMemoryBus(8)
	defer bus.Close()

	me := NewMetricsExporter(bus, prometheus.NewRegistry())
	require.NoError(t, bus.Publish(context.Background(), NewEnvelope("sim", "X", 0, nil)))
	require.NoError(t, bus.Publish(context.Background(), NewEnvelope("sim", "X", 0, nil)))

	me.Sync()
	me.Sync()
	assert.Equal(t, 2.0, testutil.ToFloat64(me.published))

	me.Start(10 * time.Millisecond)
	me.Stop()
	me.Stop()
	assert.Equal(t, 2.0, testutil.ToFloat64(me.published))
}

func TestStartLoggingListener(t *testing.T) {
	bus := NewMemoryBus(4)
	defer bus.Close()

	sub, err := StartLoggingListener(bus)
	require.NoError(t, err)
	require.NotNil(t, sub)

	require.NoError(t, bus.Publish(context.Background(), NewHitEnvelope("sim", HitEvent{Result: combat.Miss})))
	assert.Eventually(t, func() bool { return bus.Metrics().Consumed == 1 }, time.Second, 5*time.Millisecond)
	sub.Unsubscribe()
}
