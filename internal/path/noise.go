package path

import (
	"github.com/aquilax/go-perlin"

	"github.com/annel0/sky-shooter/internal/vec"
)

// Параметры шума Перлина
const (
	noiseAlpha   = 2.0 // Сглаживание
	noiseBeta    = 2.0 // Частота
	noiseOctaves = int32(3)
	noiseScale   = 0.37 // Шаг выборки между соседними точками
)

// Jitter смещает внутренние контрольные точки шумом Перлина в пределах
// [-amplitude, amplitude] по каждой оси. Первая и последняя точки не
// меняются, поэтому концы сплайна остаются на месте. Результат
// детерминирован для одного seed.
func Jitter(points []vec.Vec2, amplitude float64, seed int64) []vec.Vec2 {
	out := make([]vec.Vec2, len(points))
	copy(out, points)
	if amplitude == 0 || len(points) < 3 {
		return out
	}

	p := perlin.NewPerlin(noiseAlpha, noiseBeta, noiseOctaves, seed)
	for i := 1; i < len(out)-1; i++ {
		// Смещение на 0.5 — в целых узлах решётки шум Перлина равен нулю
		x := (float64(i) + 0.5) * noiseScale
		out[i].X += clampUnit(p.Noise2D(x, 0.5)) * amplitude
		out[i].Y += clampUnit(p.Noise2D(x, 7.5)) * amplitude
	}
	return out
}

func clampUnit(v float64) float64 {
	if v < -1 {
		return -1
	}
	if v > 1 {
		return 1
	}
	return v
}
