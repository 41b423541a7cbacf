// Package path строит траектории движения: последовательности записей
// Move/Fire, которые система движения проигрывает по одной за тик.
package path

import (
	"errors"
	"fmt"
	"iter"
	"math"

	"github.com/annel0/sky-shooter/internal/vec"
)

var (
	ErrInvalidSteps     = errors.New("path: steps must be positive")
	ErrNoControlPoints  = errors.New("path: no control points")
	ErrNotEnoughPoints  = errors.New("path: not enough control points for spline order")
	ErrInvalidFraction  = errors.New("path: action fraction must be within [0,1]")
	ErrUnknownPathKind  = errors.New("path: unknown path kind")
	ErrMissingEndpoints = errors.New("path: line path needs start and end")
)

// Entry — один шаг траектории.
// Location имеет смысл только для ActionMove.
type Entry struct {
	Action   Action
	Location vec.Vec2
}

// Move создаёт запись перемещения
func Move(x, y float64) Entry {
	return Entry{Action: ActionMove, Location: vec.Vec2{X: x, Y: y}}
}

// IsMove сообщает, является ли запись перемещением
func (e Entry) IsMove() bool {
	return e.Action == ActionMove
}

// Path — неизменяемая упорядоченная последовательность записей.
// Порядок вставки совпадает с порядком проигрывания.
type Path struct {
	entries []Entry
}

// NewPath создаёт Path из копии переданных записей
func NewPath(entries ...Entry) Path {
	cp := make([]Entry, len(entries))
	copy(cp, entries)
	return Path{entries: cp}
}

// Len возвращает количество записей
func (p Path) Len() int {
	return len(p.entries)
}

// At возвращает запись с индексом i; паникует при выходе за границы, как срез
func (p Path) At(i int) Entry {
	return p.entries[i]
}

// Entries возвращает копию записей
func (p Path) Entries() []Entry {
	cp := make([]Entry, len(p.entries))
	copy(cp, p.entries)
	return cp
}

// All итерирует записи по порядку
func (p Path) All() iter.Seq2[int, Entry] {
	return func(yield func(int, Entry) bool) {
		for i, e := range p.entries {
			if !yield(i, e) {
				return
			}
		}
	}
}

// MoveCount возвращает количество записей ActionMove
func (p Path) MoveCount() int {
	n := 0
	for _, e := range p.entries {
		if e.IsMove() {
			n++
		}
	}
	return n
}

// Generator строит траекторию из steps+1 точек с внедрёнными действиями
type Generator interface {
	Generate(actions []ActionAt, steps int) (Path, error)
}

// sample строит steps+1 записей Move, вызывая point для t = i/steps
func sample(steps int, point func(t float64) vec.Vec2) []Entry {
	moves := make([]Entry, 0, steps+1)
	for i := 0; i <= steps; i++ {
		t := float64(i) / float64(steps)
		moves = append(moves, Entry{Action: ActionMove, Location: point(t)})
	}
	return moves
}

// inject вставляет действия в готовый список перемещений.
//
// Семантика последовательная: каждое действие вставляется по индексу
// floor(steps*fraction) в последовательность, какой она стала после
// предыдущих вставок. Вместо многократных сдвигов среза сначала
// вычисляются итоговые позиции вставок, затем выполняется одно слияние.
func inject(moves []Entry, actions []ActionAt, steps int) ([]Entry, error) {
	if len(actions) == 0 {
		return moves, nil
	}

	indices := make([]int, len(actions))
	for j, a := range actions {
		if math.IsNaN(a.Fraction) || a.Fraction < 0 || a.Fraction > 1 {
			return nil, fmt.Errorf("%w: got %v", ErrInvalidFraction, a.Fraction)
		}
		indices[j] = int(math.Floor(float64(steps) * a.Fraction))
	}

	// Идём с конца: действие j занимает свободный слот номер indices[j]
	// среди слотов, не занятых более поздними вставками
	slots := newFreeSlots(len(moves) + len(actions))
	final := make([]int, len(actions))
	for j := len(actions) - 1; j >= 0; j-- {
		final[j] = slots.take(indices[j])
	}

	out := make([]Entry, len(moves)+len(actions))
	taken := make([]bool, len(out))
	for j, a := range actions {
		out[final[j]] = Entry{Action: a.Action}
		taken[final[j]] = true
	}

	next := 0
	for i := range out {
		if taken[i] {
			continue
		}
		out[i] = moves[next]
		next++
	}

	return out, nil
}
