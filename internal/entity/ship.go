package entity

import (
	"github.com/annel0/sky-shooter/internal/combat"
	"github.com/annel0/sky-shooter/internal/motion"
	"github.com/annel0/sky-shooter/internal/physics"
	"github.com/annel0/sky-shooter/internal/vec"
)

// Ship — корабль игрока или противника; реализует combat.Damageable
type Ship struct {
	Base
	Faction      Faction
	HP           int
	MaxHP        int
	Invulnerable bool // Постоянная неуязвимость (щит, босс в фазе заставки)
	Large        bool // Крупная цель: бомбы бьют её расширенной маской
	IFrames      int  // Тиков неуязвимости после принятого урона
	DamageTaken  int  // Суммарный принятый урон

	Mover        *motion.Mover
	CurrentState State

	destroyed         bool
	invulnerableTicks int
}

// ShipOptions — параметры создания корабля
type ShipOptions struct {
	Faction      Faction
	HP           int
	Mask         physics.Mask
	Invulnerable bool
	Large        bool
	IFrames      int
}

// NewShip создаёт корабль в позиции pos
func NewShip(kind Kind, pos vec.Vec2, opts ShipOptions) *Ship {
	return &Ship{
		Base:         newBase(kind, pos, opts.Mask),
		Faction:      opts.Faction,
		HP:           opts.HP,
		MaxHP:        opts.HP,
		Invulnerable: opts.Invulnerable,
		Large:        opts.Large,
		IFrames:      opts.IFrames,
	}
}

// HitBy реализует combat.Damageable.
// Урон отклоняется, если корабль уничтожен, неактивен, неуязвим
// или урон неположителен.
func (s *Ship) HitBy(shot combat.Damaging, damage int) bool {
	if !s.Active || s.destroyed || s.Invulnerable || s.invulnerableTicks > 0 || damage <= 0 {
		return false
	}

	s.HP -= damage
	s.DamageTaken += damage

	if s.HP <= 0 {
		s.HP = 0
		s.destroyed = true
		s.Active = false
		return true
	}

	s.invulnerableTicks = s.IFrames
	return true
}

// Destroyed сообщает, уничтожен ли корабль
func (s *Ship) Destroyed() bool {
	return s.destroyed
}

// InvulnerableTicks возвращает остаток неуязвимости после попадания
func (s *Ship) InvulnerableTicks() int {
	return s.invulnerableTicks
}

// FollowPath назначает кораблю траекторию и переводит его в полёт
func (s *Ship) FollowPath(m *motion.Mover) {
	s.Mover = m
	s.SetState(NewFlyingState())
}

// Update обновляет таймеры и конечный автомат корабля
func (s *Ship) Update(api WorldAPI) {
	if s.invulnerableTicks > 0 {
		s.invulnerableTicks--
	}

	if s.CurrentState != nil {
		newState := s.CurrentState.Update(s, api)
		if newState != s.CurrentState {
			s.CurrentState.Exit(s)
			s.CurrentState = newState
			if s.CurrentState != nil {
				s.CurrentState.Enter(s)
			}
		}
	}
}

// SetState устанавливает новое состояние корабля
func (s *Ship) SetState(state State) {
	if s.CurrentState != nil {
		s.CurrentState.Exit(s)
	}

	s.CurrentState = state

	if s.CurrentState != nil {
		s.CurrentState.Enter(s)
	}
}

// Gone сообщает, что корабль можно убрать из мира
func (s *Ship) Gone() bool {
	_, gone := s.CurrentState.(*GoneState)
	return gone
}
