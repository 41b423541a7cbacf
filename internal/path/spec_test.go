package path

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/annel0/sky-shooter/internal/vec"
)

func TestSpec_BuildLine(t *testing.T) {
	start, end := vec.New(0, 0), vec.New(100, 0)
	spec := Spec{
		Kind:      KindLine,
		Start:     &start,
		End:       &end,
		Steps:     4,
		Actions:   []ActionAt{FireAt(0.5)},
		Mirror:    true,
		Translate: vec.New(200, 10),
	}

	p, err := spec.Build()
	require.NoError(t, err)

	require.Equal(t, 6, p.Len())
	// Сначала отражение, затем сдвиг
	assert.Equal(t, vec.New(200, 10), p.At(0).Location)
	assert.Equal(t, vec.New(100, 10), p.At(5).Location)
	assert.Equal(t, ActionFire, p.At(2).Action)
}

func TestSpec_Errors(t *testing.T) {
	_, err := Spec{Kind: KindLine, Steps: 3}.Build()
	assert.ErrorIs(t, err, ErrMissingEndpoints)

	_, err = Spec{Kind: "zigzag", Steps: 3}.Build()
	assert.ErrorIs(t, err, ErrUnknownPathKind)

	_, err = Spec{Kind: KindSpline, Points: []vec.Vec2{{}, {}}, Steps: 3}.Build()
	assert.ErrorIs(t, err, ErrNotEnoughPoints)
}

func TestSpec_YAML(t *testing.T) {
	doc := `
kind: spline
points:
  - {x: 0, y: 0}
  - {x: 40, y: 80}
  - {x: 80, y: 0}
steps: 8
actions:
  - {at: 0.25, action: fire}
  - {at: 0.75, action: fire}
noise: {seed: 7, amplitude: 5}
`
	var spec Spec
	require.NoError(t, yaml.Unmarshal([]byte(doc), &spec))

	assert.Equal(t, KindSpline, spec.Kind)
	require.Len(t, spec.Actions, 2)
	assert.Equal(t, ActionFire, spec.Actions[1].Action)
	require.NotNil(t, spec.Noise)
	assert.Equal(t, int64(7), spec.Noise.Seed)

	p, err := spec.Build()
	require.NoError(t, err)
	assert.Equal(t, 11, p.Len())
	assert.Equal(t, 9, p.MoveCount())
}

func TestJitter(t *testing.T) {
	points := []vec.Vec2{vec.New(0, 0), vec.New(10, 10), vec.New(20, 20), vec.New(30, 0), vec.New(40, 40)}

	a := Jitter(points, 6, 42)
	b := Jitter(points, 6, 42)
	assert.Equal(t, a, b, "одинаковый seed — одинаковый результат")

	assert.Equal(t, points[0], a[0], "концы не смещаются")
	assert.Equal(t, points[4], a[4])
	for i := 1; i < 4; i++ {
		assert.InDelta(t, points[i].X, a[i].X, 6)
		assert.InDelta(t, points[i].Y, a[i].Y, 6)
	}

	assert.Equal(t, vec.New(10, 10), points[1], "исходный срез не меняется")
	assert.Equal(t, points, Jitter(points, 0, 1))
}
