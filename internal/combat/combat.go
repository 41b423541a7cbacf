// Package combat решает, попал ли снаряд (shot) в цель (actor),
// и передаёт расчёт и применение урона самим участникам.
package combat

import (
	"fmt"

	"github.com/annel0/sky-shooter/internal/physics"
	"github.com/annel0/sky-shooter/internal/vec"
)

// Positioned сообщает мировые координаты сущности
type Positioned interface {
	Coordinates() vec.Vec2
}

// Masked отдаёт маску столкновений в локальных координатах.
// other — вторая сторона проверки: маска может зависеть от неё
// (например, у бомбы радиус взрыва больше против крупных целей).
type Masked interface {
	CollisionMask(other Collidable) physics.Mask
}

// Collidable — всё, что участвует в проверке столкновений
type Collidable interface {
	Positioned
	Masked
}

// Damaging — снаряд, наносящий урон
type Damaging interface {
	Collidable
	// DamageAgainst возвращает урон по конкретной цели
	DamageAgainst(actor Damageable) int
}

// Damageable — цель, принимающая или отклоняющая урон
type Damageable interface {
	Collidable
	// HitBy применяет урон и возвращает true, если цель его приняла
	HitBy(shot Damaging, damage int) bool
}

// HitResult — итог одной проверки попадания
type HitResult uint8

const (
	// Miss — маски не пересекаются, урон не запрашивался
	Miss HitResult = iota
	// Ineffective — пересечение есть, но цель отклонила урон
	Ineffective
	// Effective — пересечение есть и цель приняла урон
	Effective
)

// String возвращает строковое представление результата
func (r HitResult) String() string {
	switch r {
	case Miss:
		return "miss"
	case Ineffective:
		return "ineffective"
	case Effective:
		return "effective"
	default:
		return fmt.Sprintf("hit_result(%d)", uint8(r))
	}
}

// IsContact сообщает, было ли геометрическое касание
func (r HitResult) IsContact() bool {
	return r == Ineffective || r == Effective
}
