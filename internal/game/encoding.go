package game

import (
	"fmt"
	"strconv"
	"strings"
)

// EncodeState renders a learning key as twelve space separated counters.
func (Game) EncodeState(key View) string {
	parts := make([]string, len(key))
	for i, c := range key {
		parts[i] = strconv.Itoa(int(c))
	}
	return strings.Join(parts, " ")
}

// DecodeState parses the EncodeState form. It requires exactly twelve
// counters, each a base-10 integer that fits a pit.
func (Game) DecodeState(text string) (View, error) {
	var v View
	parts := strings.Split(text, " ")
	if len(parts) != len(v) {
		return View{}, fmt.Errorf("state %q: want %d counters, got %d", text, len(v), len(parts))
	}
	for i, part := range parts {
		n, err := strconv.ParseUint(part, 10, 8)
		if err != nil {
			return View{}, fmt.Errorf("state counter %q: %w", part, err)
		}
		v[i] = uint8(n)
	}
	return v, nil
}

// EncodeAction renders an action as its decimal pit index.
func (Game) EncodeAction(a Action) string {
	return strconv.Itoa(int(a))
}

// DecodeAction parses a decimal pit index. Range checking is left to the
// environment; the codec only cares that the text is a number.
func (Game) DecodeAction(text string) (Action, error) {
	n, err := strconv.ParseUint(text, 10, 8)
	if err != nil {
		return 0, fmt.Errorf("action %q: %w", text, err)
	}
	return Action(n), nil
}
