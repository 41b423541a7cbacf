package path

import (
	"fmt"
	"strings"
)

// Action описывает тип записи траектории.
// Набор значений закрыт: ActionMove и ActionFire.
type Action uint8

const (
	// ActionMove — перемещение в точку Entry.Location
	ActionMove Action = iota
	// ActionFire — выстрел, координат не имеет
	ActionFire
)

// String возвращает строковое представление действия
func (a Action) String() string {
	switch a {
	case ActionMove:
		return "move"
	case ActionFire:
		return "fire"
	default:
		return fmt.Sprintf("action(%d)", uint8(a))
	}
}

// ParseAction разбирает имя действия (без учёта регистра)
func ParseAction(s string) (Action, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "move":
		return ActionMove, nil
	case "fire":
		return ActionFire, nil
	default:
		return 0, fmt.Errorf("неизвестное действие %q", s)
	}
}

// MarshalText реализует encoding.TextMarshaler (JSON/YAML)
func (a Action) MarshalText() ([]byte, error) {
	switch a {
	case ActionMove, ActionFire:
		return []byte(a.String()), nil
	default:
		return nil, fmt.Errorf("неизвестное действие %d", uint8(a))
	}
}

// UnmarshalText реализует encoding.TextUnmarshaler (JSON/YAML)
func (a *Action) UnmarshalText(text []byte) error {
	parsed, err := ParseAction(string(text))
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}

// ActionAt — запрос на вставку действия в долю fraction ∈ [0,1] траектории
type ActionAt struct {
	Fraction float64 `yaml:"at" json:"at"`
	Action   Action  `yaml:"action" json:"action"`
}

// FireAt — сокращение для ActionAt{Fraction: f, Action: ActionFire}
func FireAt(fraction float64) ActionAt {
	return ActionAt{Fraction: fraction, Action: ActionFire}
}
