// Package ui is the interactive boundary: it parses the player's line
// input, renders prompts and announcements, and drives one game between a
// human and a policy. Unusable input is answered with another prompt and
// never reaches the engine.
package ui

import (
	"strings"

	"github.com/mitchelldurbincs/MancalaReinforcementLearning/internal/game"
)

// RequestKind classifies one line read from the player.
type RequestKind int

const (
	// RequestNone means nothing usable arrived; ask again.
	RequestNone RequestKind = iota
	// RequestAction carries a pit choice.
	RequestAction
	// RequestQuit ends the session.
	RequestQuit
	// RequestInvalid is anything that parses as none of the above; ask again.
	RequestInvalid
)

// Request is one parsed line of player input.
type Request struct {
	Kind   RequestKind
	Action game.Action
}

// ParseRequest classifies a raw input line, ignoring surrounding
// whitespace. A single digit 0-5 asks to play that pit, "q" quits, a blank
// line means no input yet, and everything else is invalid.
func ParseRequest(line string) Request {
	switch line = strings.TrimSpace(line); line {
	case "":
		return Request{Kind: RequestNone}
	case "q":
		return Request{Kind: RequestQuit}
	case "0", "1", "2", "3", "4", "5":
		return Request{Kind: RequestAction, Action: game.Action(line[0] - '0')}
	default:
		return Request{Kind: RequestInvalid}
	}
}
