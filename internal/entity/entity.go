package entity

import (
	"github.com/google/uuid"

	"github.com/annel0/sky-shooter/internal/combat"
	"github.com/annel0/sky-shooter/internal/physics"
	"github.com/annel0/sky-shooter/internal/vec"
)

// Kind представляет тип сущности
type Kind uint8

const (
	KindPlayer Kind = iota
	KindEnemy
	KindBullet
	KindBomb
)

// String возвращает строковое представление типа
func (k Kind) String() string {
	switch k {
	case KindPlayer:
		return "player"
	case KindEnemy:
		return "enemy"
	case KindBullet:
		return "bullet"
	case KindBomb:
		return "bomb"
	default:
		return "unknown"
	}
}

// Faction определяет сторону: снаряды не задевают свою фракцию
type Faction uint8

const (
	FactionPlayer Faction = iota
	FactionEnemy
)

// Base — общие поля всех сущностей
type Base struct {
	ID       uuid.UUID    // Уникальный идентификатор сущности
	Kind     Kind         // Тип сущности
	Position vec.Vec2     // Мировые координаты начала маски
	Mask     physics.Mask // Хитбокс в локальных координатах
	Active   bool         // Участвует ли сущность в столкновениях
}

func newBase(kind Kind, pos vec.Vec2, mask physics.Mask) Base {
	return Base{
		ID:       uuid.New(),
		Kind:     kind,
		Position: pos,
		Mask:     mask,
		Active:   true,
	}
}

// Coordinates реализует combat.Positioned
func (b *Base) Coordinates() vec.Vec2 {
	return b.Position
}

// CollisionMask реализует combat.Masked; базовая маска не зависит от второй стороны
func (b *Base) CollisionMask(other combat.Collidable) physics.Mask {
	return b.Mask
}

// Identified — сущность с идентификатором (для событий и логов)
type Identified interface {
	EntityID() uuid.UUID
}

// EntityID возвращает идентификатор сущности
func (b *Base) EntityID() uuid.UUID {
	return b.ID
}

// IDOf возвращает идентификатор сущности или uuid.Nil
func IDOf(v any) uuid.UUID {
	if ided, ok := v.(Identified); ok {
		return ided.EntityID()
	}
	return uuid.Nil
}
