package eventbus

import (
	"github.com/google/uuid"

	"github.com/annel0/sky-shooter/internal/combat"
)

// Типы событий симуляции
const (
	TypeHit  = "HitEvent"
	TypeKill = "KillEvent"
)

// HitEvent — касание снаряда и цели с результатом проверки.
type HitEvent struct {
	Tick    int
	ShotID  uuid.UUID
	ActorID uuid.UUID
	Result  combat.HitResult
	Damage  int
}

// KillEvent — корабль уничтожен на тике Tick.
type KillEvent struct {
	Tick    int
	ActorID uuid.UUID
	ShotID  uuid.UUID
}

// NewHitEnvelope упаковывает HitEvent. Результативные попадания
// получают высокий приоритет и не отбрасываются при переполнении.
func NewHitEnvelope(source string, ev HitEvent) *Envelope {
	priority := 3
	if ev.Result == combat.Effective {
		priority = 5
	}
	return NewEnvelope(source, TypeHit, priority, ev)
}

// NewKillEnvelope упаковывает KillEvent
func NewKillEnvelope(source string, ev KillEvent) *Envelope {
	return NewEnvelope(source, TypeKill, 7, ev)
}
