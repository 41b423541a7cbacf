package path

import (
	"fmt"

	"github.com/annel0/sky-shooter/internal/vec"
)

// SplineOrder — порядок B-сплайна (квадратичный, степень 2)
const SplineOrder = 3

// SplinePath — траектория по зажатому (clamped) B-сплайну порядка 3.
// Кривая проходит через первую и последнюю контрольные точки.
type SplinePath struct {
	Points []vec.Vec2
}

// NewSplinePath создаёт генератор сплайновой траектории
func NewSplinePath(points ...vec.Vec2) SplinePath {
	cp := make([]vec.Vec2, len(points))
	copy(cp, points)
	return SplinePath{Points: cp}
}

// Generate возвращает steps+1 точек Move вдоль сплайна.
// В отличие от LinePath координаты не округляются.
func (sp SplinePath) Generate(actions []ActionAt, steps int) (Path, error) {
	n := len(sp.Points)
	switch {
	case n == 0:
		return Path{}, ErrNoControlPoints
	case n < SplineOrder:
		return Path{}, fmt.Errorf("%w: have %d, need %d", ErrNotEnoughPoints, n, SplineOrder)
	case steps <= 0:
		return Path{}, ErrInvalidSteps
	}

	knots := ClampedKnots(n, SplineOrder)
	span := knots[len(knots)-1]
	degree := SplineOrder - 1

	moves := sample(steps, func(t float64) vec.Vec2 {
		return DeBoor(t*span, degree, sp.Points, knots)
	})

	entries, err := inject(moves, actions, steps)
	if err != nil {
		return Path{}, err
	}
	return Path{entries: entries}, nil
}

// ClampedKnots строит открытый равномерный узловой вектор длины n+order:
// order нулей, затем 1..n-order, затем order значений n-order+1.
func ClampedKnots(n, order int) []float64 {
	knots := make([]float64, 0, n+order)
	for i := 0; i < order; i++ {
		knots = append(knots, 0)
	}
	for i := 1; i <= n-order; i++ {
		knots = append(knots, float64(i))
	}
	last := float64(n - order + 1)
	for i := 0; i < order; i++ {
		knots = append(knots, last)
	}
	return knots
}

// DeBoor вычисляет точку B-сплайна степени degree в параметре u.
// knots должен иметь длину len(points)+degree+1.
// Значения u за пределами области определения прижимаются к её краям.
func DeBoor(u float64, degree int, points []vec.Vec2, knots []float64) vec.Vec2 {
	n := len(points)
	lo, hi := knots[degree], knots[n]
	if u < lo {
		u = lo
	}
	if u > hi {
		u = hi
	}

	// Интервал k: knots[k] <= u < knots[k+1], для u == hi берём последний
	k := degree
	for k < n-1 && u >= knots[k+1] {
		k++
	}

	d := make([]vec.Vec2, degree+1)
	for j := 0; j <= degree; j++ {
		d[j] = points[j+k-degree]
	}

	for r := 1; r <= degree; r++ {
		for j := degree; j >= r; j-- {
			left := knots[j+k-degree]
			denom := knots[j+1+k-r] - left
			alpha := 0.0
			if denom != 0 {
				alpha = (u - left) / denom
			}
			d[j] = d[j-1].Mul(1 - alpha).Add(d[j].Mul(alpha))
		}
	}

	return d[degree]
}
