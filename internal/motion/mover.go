// Package motion проигрывает траектории: один шаг Move за тик.
package motion

import (
	"github.com/annel0/sky-shooter/internal/path"
	"github.com/annel0/sky-shooter/internal/vec"
)

// Step — результат одного тика движения
type Step struct {
	Location vec.Vec2      // Новая позиция, если Moved
	Moved    bool          // Была ли поглощена запись Move
	Actions  []path.Action // Действия, встреченные до Move, по порядку
	Done     bool          // Траектория исчерпана
}

// Mover продвигает индекс по траектории, принадлежащей одной сущности
type Mover struct {
	path  path.Path
	index int
}

// NewMover создаёт проигрыватель для траектории p
func NewMover(p path.Path) *Mover {
	return &Mover{path: p}
}

// Step поглощает записи до первой Move включительно.
// Действия (Fire и т.п.) по пути возвращаются в Step.Actions.
func (m *Mover) Step() Step {
	var st Step
	for m.index < m.path.Len() {
		e := m.path.At(m.index)
		m.index++

		if e.IsMove() {
			st.Location = e.Location
			st.Moved = true
			break
		}
		st.Actions = append(st.Actions, e.Action)
	}
	st.Done = m.index >= m.path.Len()
	return st
}

// Done сообщает, что все записи проиграны
func (m *Mover) Done() bool {
	return m.index >= m.path.Len()
}

// Index возвращает индекс следующей записи
func (m *Mover) Index() int {
	return m.index
}

// Reset возвращает проигрыватель в начало траектории
func (m *Mover) Reset() {
	m.index = 0
}

// Path возвращает проигрываемую траекторию
func (m *Mover) Path() path.Path {
	return m.path
}
