package path

import "github.com/annel0/sky-shooter/internal/vec"

// LinePath — прямолинейная траектория от Start до End
type LinePath struct {
	Start vec.Vec2
	End   vec.Vec2
}

// NewLinePath создаёт генератор прямой траектории
func NewLinePath(start, end vec.Vec2) LinePath {
	return LinePath{Start: start, End: end}
}

// Generate возвращает steps+1 точек Move от Start до End включительно.
// Координаты округляются до целых; первая и последняя точки совпадают
// с (округлёнными) Start и End.
func (lp LinePath) Generate(actions []ActionAt, steps int) (Path, error) {
	if steps <= 0 {
		return Path{}, ErrInvalidSteps
	}

	moves := sample(steps, func(t float64) vec.Vec2 {
		return lp.Start.Lerp(lp.End, t).Round()
	})

	entries, err := inject(moves, actions, steps)
	if err != nil {
		return Path{}, err
	}
	return Path{entries: entries}, nil
}
