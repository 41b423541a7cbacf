package entity

import "github.com/annel0/sky-shooter/internal/path"

// ExplosionTicks — длительность взрыва до удаления корабля
const ExplosionTicks = 12

// State представляет состояние конечного автомата корабля
type State interface {
	Enter(ship *Ship)
	Update(ship *Ship, api WorldAPI) State
	Exit(ship *Ship)
}

// WorldAPI представляет интерфейс для взаимодействия корабля с миром
type WorldAPI interface {
	// Fire выпускает снаряд от имени корабля
	Fire(from *Ship)
}

// === Конкретные состояния ===

// FlyingState — корабль движется по своей траектории
type FlyingState struct{}

// NewFlyingState создаёт состояние полёта
func NewFlyingState() *FlyingState {
	return &FlyingState{}
}

func (s *FlyingState) Enter(ship *Ship) {}

func (s *FlyingState) Update(ship *Ship, api WorldAPI) State {
	if ship.destroyed {
		return NewExplodingState()
	}
	if ship.Mover == nil {
		return s
	}

	step := ship.Mover.Step()
	if step.Moved {
		ship.Position = step.Location
	}
	for _, a := range step.Actions {
		if a == path.ActionFire && api != nil {
			api.Fire(ship)
		}
	}

	// Траектория закончилась — корабль покинул поле боя
	if step.Done {
		return &GoneState{Escaped: true}
	}
	return s
}

func (s *FlyingState) Exit(ship *Ship) {}

// ExplodingState — корабль уничтожен и догорает
type ExplodingState struct {
	TicksLeft int
}

// NewExplodingState создаёт состояние взрыва
func NewExplodingState() *ExplodingState {
	return &ExplodingState{TicksLeft: ExplosionTicks}
}

func (s *ExplodingState) Enter(ship *Ship) {
	ship.Active = false
}

func (s *ExplodingState) Update(ship *Ship, api WorldAPI) State {
	s.TicksLeft--
	if s.TicksLeft <= 0 {
		return &GoneState{}
	}
	return s
}

func (s *ExplodingState) Exit(ship *Ship) {}

// GoneState — терминальное состояние; Escaped — ушёл по траектории, а не сбит
type GoneState struct {
	Escaped bool
}

func (s *GoneState) Enter(ship *Ship) {
	ship.Active = false
}

func (s *GoneState) Update(ship *Ship, api WorldAPI) State {
	return s
}

func (s *GoneState) Exit(ship *Ship) {}
