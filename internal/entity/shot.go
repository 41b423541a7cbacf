package entity

import (
	"github.com/annel0/sky-shooter/internal/combat"
	"github.com/annel0/sky-shooter/internal/physics"
	"github.com/annel0/sky-shooter/internal/vec"
)

// Shot — снаряд, который мир двигает каждый тик
type Shot interface {
	combat.Damaging
	Identified
	Owner() Faction
	Advance()
	IsActive() bool
	Spend()
}

// Bullet — пуля с постоянной скоростью и фиксированным уроном
type Bullet struct {
	Base
	Damage   int
	Velocity vec.Vec2
	Faction  Faction
}

// NewBullet создаёт пулю
func NewBullet(pos, velocity vec.Vec2, damage int, mask physics.Mask, owner Faction) *Bullet {
	return &Bullet{
		Base:     newBase(KindBullet, pos, mask),
		Damage:   damage,
		Velocity: velocity,
		Faction:  owner,
	}
}

// DamageAgainst реализует combat.Damaging
func (b *Bullet) DamageAgainst(actor combat.Damageable) int {
	return b.Damage
}

// Owner возвращает фракцию стрелявшего
func (b *Bullet) Owner() Faction { return b.Faction }

// Advance сдвигает пулю на один тик
func (b *Bullet) Advance() {
	b.Position = b.Position.Add(b.Velocity)
}

// IsActive сообщает, летит ли пуля
func (b *Bullet) IsActive() bool { return b.Active }

// Spend выводит пулю из игры после касания
func (b *Bullet) Spend() { b.Active = false }

// Bomb — медленный снаряд, против крупных целей бьёт расширенной маской
// и двойным уроном
type Bomb struct {
	Bullet
	BlastMask physics.Mask
}

// NewBomb создаёт бомбу
func NewBomb(pos, velocity vec.Vec2, damage int, mask, blast physics.Mask, owner Faction) *Bomb {
	b := &Bomb{
		Bullet:    *NewBullet(pos, velocity, damage, mask, owner),
		BlastMask: blast,
	}
	b.Kind = KindBomb
	return b
}

// CollisionMask зависит от цели: против крупного корабля — радиус взрыва
func (b *Bomb) CollisionMask(other combat.Collidable) physics.Mask {
	if ship, ok := other.(*Ship); ok && ship.Large && len(b.BlastMask) > 0 {
		return b.BlastMask
	}
	return b.Mask
}

// DamageAgainst удваивает урон против крупных целей
func (b *Bomb) DamageAgainst(actor combat.Damageable) int {
	if ship, ok := actor.(*Ship); ok && ship.Large {
		return b.Damage * 2
	}
	return b.Damage
}
