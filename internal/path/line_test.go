package path

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/annel0/sky-shooter/internal/vec"
)

func TestLinePath_Diagonal(t *testing.T) {
	p, err := NewLinePath(vec.New(0, 0), vec.New(100, 100)).Generate(nil, 10)
	require.NoError(t, err)

	require.Equal(t, 11, p.Len(), "10 шагов дают 11 точек")
	assert.Equal(t, vec.New(0, 0), p.At(0).Location)
	assert.Equal(t, vec.New(100, 100), p.At(10).Location)
	assert.Equal(t, vec.New(50, 50), p.At(5).Location)

	for i, e := range p.All() {
		assert.Equal(t, ActionMove, e.Action, "запись %d должна быть Move", i)
	}
}

func TestLinePath_FireInjectedAtHalf(t *testing.T) {
	p, err := NewLinePath(vec.New(0, 0), vec.New(100, 100)).Generate([]ActionAt{FireAt(0.5)}, 10)
	require.NoError(t, err)

	require.Equal(t, 12, p.Len())
	assert.Equal(t, ActionFire, p.At(5).Action)
	assert.Equal(t, 11, p.MoveCount())
	// Move, бывший пятым, сдвинулся на одну позицию
	assert.Equal(t, vec.New(50, 50), p.At(6).Location)
	assert.Equal(t, vec.New(100, 100), p.At(11).Location)
}

func TestLinePath_MoveCountMatchesSteps(t *testing.T) {
	lp := NewLinePath(vec.New(-30, 12), vec.New(75, -40))
	for _, steps := range []int{1, 2, 3, 7, 10, 33, 100} {
		p, err := lp.Generate(nil, steps)
		require.NoError(t, err)
		assert.Equal(t, steps+1, p.Len(), "steps=%d", steps)
		assert.Equal(t, steps+1, p.MoveCount(), "steps=%d", steps)
	}
}

func TestLinePath_Rounding(t *testing.T) {
	p, err := NewLinePath(vec.New(0, 0), vec.New(10, 5)).Generate(nil, 4)
	require.NoError(t, err)

	ys := make([]float64, 0, p.Len())
	for _, e := range p.All() {
		ys = append(ys, e.Location.Y)
	}
	// 1.25 → 1, 2.5 → 3, 3.75 → 4
	assert.Equal(t, []float64{0, 1, 3, 4, 5}, ys)
}

func TestLinePath_WithinBoundingBox(t *testing.T) {
	cases := []struct {
		start, end vec.Vec2
		steps      int
	}{
		{vec.New(0, 0), vec.New(100, 100), 10},
		{vec.New(100, -20), vec.New(-3, 40), 17},
		{vec.New(5.4, 5.6), vec.New(5.4, 90.2), 9},
		{vec.New(-50, -50), vec.New(-50, -50), 5},
	}

	for _, tc := range cases {
		p, err := NewLinePath(tc.start, tc.end).Generate(nil, tc.steps)
		require.NoError(t, err)

		minX, maxX := minMax(tc.start.X, tc.end.X)
		minY, maxY := minMax(tc.start.Y, tc.end.Y)
		for i, e := range p.All() {
			// Допуск 0.5 — точки округляются до целых
			assert.GreaterOrEqual(t, e.Location.X, minX-0.5, "x[%d]", i)
			assert.LessOrEqual(t, e.Location.X, maxX+0.5, "x[%d]", i)
			assert.GreaterOrEqual(t, e.Location.Y, minY-0.5, "y[%d]", i)
			assert.LessOrEqual(t, e.Location.Y, maxY+0.5, "y[%d]", i)
		}
	}
}

func TestLinePath_InvalidSteps(t *testing.T) {
	lp := NewLinePath(vec.New(0, 0), vec.New(1, 1))

	for _, steps := range []int{0, -1} {
		p, err := lp.Generate(nil, steps)
		assert.ErrorIs(t, err, ErrInvalidSteps)
		assert.Zero(t, p.Len(), "при ошибке частичная траектория не возвращается")
	}
}

func TestLinePath_InvalidFraction(t *testing.T) {
	lp := NewLinePath(vec.New(0, 0), vec.New(1, 1))

	_, err := lp.Generate([]ActionAt{FireAt(1.5)}, 10)
	assert.ErrorIs(t, err, ErrInvalidFraction)

	_, err = lp.Generate([]ActionAt{FireAt(-0.1)}, 10)
	assert.ErrorIs(t, err, ErrInvalidFraction)
}

func minMax(a, b float64) (float64, float64) {
	if a < b {
		return a, b
	}
	return b, a
}
