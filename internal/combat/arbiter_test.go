package combat

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/annel0/sky-shooter/internal/physics"
	"github.com/annel0/sky-shooter/internal/vec"
)

// fakeShot — снаряд для тестов, считает запросы урона
type fakeShot struct {
	pos         vec.Vec2
	mask        physics.Mask
	damage      int
	damageCalls int
	maskFor     func(other Collidable) physics.Mask
}

func (s *fakeShot) Coordinates() vec.Vec2 { return s.pos }

func (s *fakeShot) CollisionMask(other Collidable) physics.Mask {
	if s.maskFor != nil {
		return s.maskFor(other)
	}
	return s.mask
}

func (s *fakeShot) DamageAgainst(actor Damageable) int {
	s.damageCalls++
	return s.damage
}

// fakeActor — цель для тестов, принимает урон если accept
type fakeActor struct {
	pos      vec.Vec2
	mask     physics.Mask
	accept   bool
	hits     int
	received int
	lastShot Damaging
}

func (a *fakeActor) Coordinates() vec.Vec2 { return a.pos }

func (a *fakeActor) CollisionMask(other Collidable) physics.Mask { return a.mask }

func (a *fakeActor) HitBy(shot Damaging, damage int) bool {
	a.hits++
	a.lastShot = shot
	if !a.accept {
		return false
	}
	a.received += damage
	return true
}

func newShot(x, y float64, damage int) *fakeShot {
	return &fakeShot{pos: vec.New(x, y), mask: physics.BoxMask(2, 2), damage: damage}
}

func newActor(x, y float64, accept bool) *fakeActor {
	return &fakeActor{pos: vec.New(x, y), mask: physics.BoxMask(10, 10), accept: accept}
}

func TestNewHitArbiter_NoShot(t *testing.T) {
	arbiter, err := NewHitArbiter(nil)
	assert.ErrorIs(t, err, ErrNoShot)
	assert.Nil(t, arbiter)

	arbiter, err = NewHitArbiter((*fakeShot)(nil))
	assert.ErrorIs(t, err, ErrNoShot, "типизированный nil тоже отклоняется")
	assert.Nil(t, arbiter)
}

func TestAttemptToHit_Miss(t *testing.T) {
	shot := newShot(100, 100, 5)
	actor := newActor(0, 0, true)

	arbiter, err := NewHitArbiter(shot)
	require.NoError(t, err)

	assert.Equal(t, Miss, arbiter.AttemptToHit(actor))
	assert.Zero(t, shot.damageCalls, "при промахе урон не запрашивается")
	assert.Zero(t, actor.hits, "при промахе цель не уведомляется")
}

func TestAttemptToHit_Effective(t *testing.T) {
	shot := newShot(3, -2, 7)
	actor := newActor(0, 0, true)

	arbiter, err := NewHitArbiter(shot)
	require.NoError(t, err)

	assert.Equal(t, Effective, arbiter.AttemptToHit(actor))
	assert.Equal(t, 1, shot.damageCalls)
	assert.Equal(t, 7, actor.received, "цель получает ровно урон снаряда")
	assert.Same(t, shot, actor.lastShot)
	assert.Same(t, shot, arbiter.Shot())
}

func TestAttemptToHit_Ineffective(t *testing.T) {
	shot := newShot(0, 0, 7)
	actor := newActor(0, 0, false)

	arbiter, err := NewHitArbiter(shot)
	require.NoError(t, err)

	assert.Equal(t, Ineffective, arbiter.AttemptToHit(actor))
	assert.Equal(t, 1, actor.hits)
	assert.Zero(t, actor.received)
}

func TestAttemptToHit_TouchingEdges(t *testing.T) {
	// Маска цели [-5,5], маска снаряда [-1,1]: касание при x = 6
	shot := newShot(6, 0, 1)
	actor := newActor(0, 0, true)

	arbiter, err := NewHitArbiter(shot)
	require.NoError(t, err)
	assert.Equal(t, Effective, arbiter.AttemptToHit(actor))

	shot.pos = vec.New(6.01, 0)
	assert.Equal(t, Miss, arbiter.AttemptToHit(actor))
}

func TestAttemptToHit_MaskDependsOnOther(t *testing.T) {
	big := newActor(0, 0, true)
	small := newActor(0, 0, true)
	small.mask = physics.BoxMask(2, 2)

	shot := newShot(20, 0, 3)
	shot.maskFor = func(other Collidable) physics.Mask {
		if other == Collidable(big) {
			return physics.BoxMask(40, 40)
		}
		return physics.BoxMask(2, 2)
	}

	arbiter, err := NewHitArbiter(shot)
	require.NoError(t, err)

	assert.Equal(t, Effective, arbiter.AttemptToHit(big), "расширенная маска против крупной цели")
	assert.Equal(t, Miss, arbiter.AttemptToHit(small))
}

func TestAttemptToHit_MultiRectMask(t *testing.T) {
	actor := &fakeActor{
		pos:    vec.New(100, 100),
		mask:   physics.Mask{physics.NewRect(-20, -10, -5, 5), physics.NewRect(10, 20, -5, 5)},
		accept: true,
	}

	arbiter, err := NewHitArbiter(newShot(100, 100, 1))
	require.NoError(t, err)
	assert.Equal(t, Miss, arbiter.AttemptToHit(actor), "между крыльями пусто")

	arbiter, err = NewHitArbiter(newShot(115, 100, 1))
	require.NoError(t, err)
	assert.Equal(t, Effective, arbiter.AttemptToHit(actor))
}

func TestAttemptToHit_NilActor(t *testing.T) {
	arbiter, err := NewHitArbiter(newShot(0, 0, 1))
	require.NoError(t, err)
	assert.Equal(t, Miss, arbiter.AttemptToHit(nil))
	assert.Equal(t, Miss, arbiter.AttemptToHit((*fakeActor)(nil)))
}

func TestHitResult_String(t *testing.T) {
	assert.Equal(t, "miss", Miss.String())
	assert.Equal(t, "ineffective", Ineffective.String())
	assert.Equal(t, "effective", Effective.String())
	assert.Equal(t, "hit_result(7)", HitResult(7).String())

	assert.False(t, Miss.IsContact())
	assert.True(t, Ineffective.IsContact())
	assert.True(t, Effective.IsContact())
}
