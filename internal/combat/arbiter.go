package combat

import (
	"errors"
	"reflect"

	"github.com/annel0/sky-shooter/internal/physics"
)

// ErrNoShot возвращается при создании арбитра без снаряда
var ErrNoShot = errors.New("combat: hit arbiter requires a shot")

// HitArbiter проверяет попадание одного снаряда по целям.
// Создаётся заново для каждой оценки и не хранит состояния между вызовами.
type HitArbiter struct {
	shot Damaging
}

// NewHitArbiter создаёт арбитр для снаряда shot; nil, в том числе
// типизированный nil-указатель, отклоняется
func NewHitArbiter(shot Damaging) (*HitArbiter, error) {
	if isNil(shot) {
		return nil, ErrNoShot
	}
	return &HitArbiter{shot: shot}, nil
}

// Shot возвращает снаряд, для которого создан арбитр
func (ha *HitArbiter) Shot() Damaging {
	return ha.shot
}

// AttemptToHit проверяет пересечение масок снаряда и цели и при касании
// передаёт урон цели. Урон запрашивается у снаряда только при касании.
func (ha *HitArbiter) AttemptToHit(actor Damageable) HitResult {
	if isNil(actor) {
		return Miss
	}

	actorRects := physics.Resolve(actor.CollisionMask(ha.shot), actor.Coordinates())
	shotRects := physics.Resolve(ha.shot.CollisionMask(actor), ha.shot.Coordinates())

	if !physics.Collide(shotRects, actorRects) {
		return Miss
	}

	damage := ha.shot.DamageAgainst(actor)
	if actor.HitBy(ha.shot, damage) {
		return Effective
	}
	return Ineffective
}

// isNil распознаёт и интерфейс без значения, и интерфейс с nil-указателем внутри
func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	return rv.Kind() == reflect.Pointer && rv.IsNil()
}
