package physics

import (
	"math"

	"github.com/annel0/sky-shooter/internal/vec"
)

// Rect — прямоугольник, выровненный по осям (AABB).
// В локальных координатах сущности отсчитывается от её начала (0,0).
type Rect struct {
	Left   float64 `yaml:"left" json:"left"`
	Right  float64 `yaml:"right" json:"right"`
	Top    float64 `yaml:"top" json:"top"`
	Bottom float64 `yaml:"bottom" json:"bottom"`
}

// Mask — упорядоченный набор прямоугольников, объединение которых задаёт
// хитбокс сущности в локальных координатах
type Mask []Rect

// NewRect создаёт прямоугольник по четырём границам
func NewRect(left, right, top, bottom float64) Rect {
	return Rect{Left: left, Right: right, Top: top, Bottom: bottom}
}

// BoxMask создаёт маску из одного прямоугольника width×height с центром в (0,0)
func BoxMask(width, height float64) Mask {
	halfWidth := width / 2
	halfHeight := height / 2
	return Mask{{Left: -halfWidth, Right: halfWidth, Top: -halfHeight, Bottom: halfHeight}}
}

// Offset сдвигает все четыре границы на мировые координаты pos
func (r Rect) Offset(pos vec.Vec2) Rect {
	return Rect{
		Left:   r.Left + pos.X,
		Right:  r.Right + pos.X,
		Top:    r.Top + pos.Y,
		Bottom: r.Bottom + pos.Y,
	}
}

// Resolve переводит локальную маску в абсолютные прямоугольники.
// Возвращает новый срез, маска не изменяется.
func Resolve(mask Mask, pos vec.Vec2) []Rect {
	rects := make([]Rect, len(mask))
	for i, r := range mask {
		rects[i] = r.Offset(pos)
	}
	return rects
}

// Overlaps проверяет пересечение двух прямоугольников.
// Касание границ считается пересечением. Границы каждого прямоугольника
// упорядочиваются по осям, поэтому перевёрнутые прямоугольники допустимы,
// а результат симметричен: Overlaps(a, b) == Overlaps(b, a).
func Overlaps(a, b Rect) bool {
	aMinX, aMaxX := span(a.Left, a.Right)
	bMinX, bMaxX := span(b.Left, b.Right)
	aMinY, aMaxY := span(a.Top, a.Bottom)
	bMinY, bMaxY := span(b.Top, b.Bottom)

	return aMinX <= bMaxX && bMinX <= aMaxX &&
		aMinY <= bMaxY && bMinY <= aMaxY
}

// Collide возвращает true, если хотя бы один прямоугольник из a пересекается
// хотя бы с одним прямоугольником из b
func Collide(a, b []Rect) bool {
	for _, ra := range a {
		for _, rb := range b {
			if Overlaps(ra, rb) {
				return true
			}
		}
	}
	return false
}

// Bounds возвращает охватывающий прямоугольник набора (нулевой для пустого)
func Bounds(rects []Rect) Rect {
	if len(rects) == 0 {
		return Rect{}
	}

	out := Rect{Left: math.Inf(1), Right: math.Inf(-1), Top: math.Inf(1), Bottom: math.Inf(-1)}
	for _, r := range rects {
		minX, maxX := span(r.Left, r.Right)
		minY, maxY := span(r.Top, r.Bottom)
		out.Left = math.Min(out.Left, minX)
		out.Right = math.Max(out.Right, maxX)
		out.Top = math.Min(out.Top, minY)
		out.Bottom = math.Max(out.Bottom, maxY)
	}
	return out
}

func span(a, b float64) (float64, float64) {
	if a <= b {
		return a, b
	}
	return b, a
}
