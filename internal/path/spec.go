package path

import (
	"fmt"

	"github.com/annel0/sky-shooter/internal/vec"
)

// Kind — вид генератора траектории
type Kind string

const (
	KindLine   Kind = "line"
	KindSpline Kind = "spline"
)

// Noise описывает шум для контрольных точек сплайна
type Noise struct {
	Seed      int64   `yaml:"seed" json:"seed"`
	Amplitude float64 `yaml:"amplitude" json:"amplitude"`
}

// Spec — декларативное описание траектории (конфиг волны, отладочный API).
// Порядок построения: генерация → Mirror → Translate.
type Spec struct {
	Kind      Kind       `yaml:"kind" json:"kind"`
	Start     *vec.Vec2  `yaml:"start,omitempty" json:"start,omitempty"`
	End       *vec.Vec2  `yaml:"end,omitempty" json:"end,omitempty"`
	Points    []vec.Vec2 `yaml:"points,omitempty" json:"points,omitempty"`
	Steps     int        `yaml:"steps" json:"steps"`
	Actions   []ActionAt `yaml:"actions,omitempty" json:"actions,omitempty"`
	Mirror    bool       `yaml:"mirror,omitempty" json:"mirror,omitempty"`
	Translate vec.Vec2   `yaml:"translate,omitempty" json:"translate,omitempty"`
	Noise     *Noise     `yaml:"noise,omitempty" json:"noise,omitempty"`
}

// Generator возвращает генератор, соответствующий Kind
func (s Spec) Generator() (Generator, error) {
	switch s.Kind {
	case KindLine:
		if s.Start == nil || s.End == nil {
			return nil, ErrMissingEndpoints
		}
		return NewLinePath(*s.Start, *s.End), nil
	case KindSpline:
		points := s.Points
		if s.Noise != nil {
			points = Jitter(points, s.Noise.Amplitude, s.Noise.Seed)
		}
		return NewSplinePath(points...), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownPathKind, s.Kind)
	}
}

// Build строит траекторию по описанию
func (s Spec) Build() (Path, error) {
	gen, err := s.Generator()
	if err != nil {
		return Path{}, err
	}

	p, err := gen.Generate(s.Actions, s.Steps)
	if err != nil {
		return Path{}, fmt.Errorf("генерация траектории %s: %w", s.Kind, err)
	}

	if s.Mirror {
		p = Mirror(p)
	}
	if s.Translate != (vec.Vec2{}) {
		p = Translate(p, s.Translate.X, s.Translate.Y)
	}
	return p, nil
}
