package path

import (
	"math"
	"math/rand/v2"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/annel0/sky-shooter/internal/vec"
)

// spliceInject — прямолинейная версия вставки через многократный slices.Insert
func spliceInject(moves []Entry, actions []ActionAt, steps int) []Entry {
	out := slices.Clone(moves)
	for _, a := range actions {
		idx := int(math.Floor(float64(steps) * a.Fraction))
		out = slices.Insert(out, idx, Entry{Action: a.Action})
	}
	return out
}

func TestInject_MatchesSequentialSplice(t *testing.T) {
	cases := []struct {
		name    string
		steps   int
		actions []ActionAt
	}{
		{"one", 10, []ActionAt{FireAt(0.5)}},
		{"start and end", 10, []ActionAt{FireAt(0), FireAt(1)}},
		{"same index twice", 10, []ActionAt{FireAt(0.3), FireAt(0.3)}},
		{"descending", 8, []ActionAt{FireAt(0.9), FireAt(0.5), FireAt(0.1)}},
		{"ascending", 8, []ActionAt{FireAt(0.1), FireAt(0.5), FireAt(0.9)}},
		{"adjacent rounding", 7, []ActionAt{FireAt(0.29), FireAt(0.3), FireAt(0.15), FireAt(0.43)}},
		{"mixed", 3, []ActionAt{FireAt(1), FireAt(0), FireAt(0.5), FireAt(0.66), FireAt(0.34)}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			moves := sample(tc.steps, func(t float64) vec.Vec2 { return vec.New(t*100, -t*10) })

			got, err := inject(slices.Clone(moves), tc.actions, tc.steps)
			require.NoError(t, err)

			assert.Equal(t, spliceInject(moves, tc.actions, tc.steps), got)
		})
	}
}

func TestInject_ManyActionsMatchSplice(t *testing.T) {
	rng := rand.New(rand.NewPCG(7, 42))
	for _, steps := range []int{1, 5, 64, 300} {
		actions := make([]ActionAt, 500)
		for i := range actions {
			actions[i] = FireAt(rng.Float64())
			if i%7 == 0 {
				actions[i] = FireAt(float64(rng.IntN(2)))
			}
		}
		moves := sample(steps, func(t float64) vec.Vec2 { return vec.New(t, 2*t) })

		got, err := inject(slices.Clone(moves), actions, steps)
		require.NoError(t, err)
		assert.Equal(t, spliceInject(moves, actions, steps), got, "steps=%d", steps)
	}
}

func TestFreeSlots_Take(t *testing.T) {
	s := newFreeSlots(6)
	assert.Equal(t, 2, s.take(2))
	assert.Equal(t, 0, s.take(0))
	// Свободны 1, 3, 4, 5
	assert.Equal(t, 4, s.take(2))
	assert.Equal(t, 5, s.take(2))
	assert.Equal(t, 1, s.take(0))
	assert.Equal(t, 3, s.take(0))
}

func TestInject_OrderMatters(t *testing.T) {
	moves := sample(10, func(t float64) vec.Vec2 { return vec.New(t, t) })

	// Второе действие попадает на индекс 2 уже сдвинутой последовательности
	a, err := inject(slices.Clone(moves), []ActionAt{FireAt(0.2), {Fraction: 0.25, Action: ActionMove}}, 10)
	require.NoError(t, err)
	assert.Equal(t, ActionMove, a[2].Action)
	assert.Equal(t, vec.Vec2{}, a[2].Location)
	assert.Equal(t, ActionFire, a[3].Action)

	b, err := inject(slices.Clone(moves), []ActionAt{{Fraction: 0.25, Action: ActionMove}, FireAt(0.2)}, 10)
	require.NoError(t, err)
	assert.Equal(t, ActionFire, b[2].Action)
	assert.Equal(t, ActionMove, b[3].Action)
}

func TestInject_SinglePropertyIndex(t *testing.T) {
	for _, steps := range []int{1, 4, 10, 25} {
		for _, f := range []float64{0, 0.1, 0.33, 0.5, 0.99, 1} {
			p, err := NewLinePath(vec.New(0, 0), vec.New(10, 10)).Generate([]ActionAt{FireAt(f)}, steps)
			require.NoError(t, err)

			require.Equal(t, steps+2, p.Len())
			assert.Equal(t, ActionFire, p.At(int(math.Floor(float64(steps)*f))).Action, "steps=%d f=%v", steps, f)
		}
	}
}

func TestInject_NaN(t *testing.T) {
	_, err := inject(nil, []ActionAt{FireAt(math.NaN())}, 10)
	assert.ErrorIs(t, err, ErrInvalidFraction)
}

func TestPath_Immutable(t *testing.T) {
	src := []Entry{Move(1, 2), {Action: ActionFire}}
	p := NewPath(src...)

	src[0] = Move(100, 100)
	assert.Equal(t, vec.New(1, 2), p.At(0).Location, "NewPath копирует записи")

	entries := p.Entries()
	entries[0] = Move(7, 7)
	assert.Equal(t, vec.New(1, 2), p.At(0).Location, "Entries возвращает копию")
}

func TestPath_AllStopsEarly(t *testing.T) {
	p := NewPath(Move(0, 0), Move(1, 1), Move(2, 2))

	seen := 0
	for i := range p.All() {
		seen++
		if i == 1 {
			break
		}
	}
	assert.Equal(t, 2, seen)
}

func TestAction_Text(t *testing.T) {
	for _, a := range []Action{ActionMove, ActionFire} {
		text, err := a.MarshalText()
		require.NoError(t, err)

		var back Action
		require.NoError(t, back.UnmarshalText(text))
		assert.Equal(t, a, back)
	}

	parsed, err := ParseAction(" FIRE ")
	require.NoError(t, err)
	assert.Equal(t, ActionFire, parsed)

	_, err = ParseAction("jump")
	assert.Error(t, err)
	assert.Equal(t, "action(9)", Action(9).String())
}
