package game

import (
	"fmt"
	"strings"

	"github.com/mitchelldurbincs/MancalaReinforcementLearning/internal/common"
)

// This file contains the board rendering used by interactive play.

// Render returns a colored text view of the position from one seat. The
// opponent's row sits on top, reversed, the way the pits face each other
// across a real board. The labels under the seat's row are the action
// digits accepted during play.
func Render(s State, seat Player) string {
	opp := seat.Opponent()

	var sb strings.Builder
	sb.Grow(256)

	header := func(p Player) {
		sb.WriteString(common.Colorize(PlayerColor(p), fmt.Sprintf("%s   store %2d", p, s.Score(p))))
		sb.WriteByte('\n')
	}

	header(opp)

	row := s.Row(opp)
	sb.WriteString(PlayerColor(opp))
	for i := PitsPerSide - 1; i >= 0; i-- {
		fmt.Fprintf(&sb, "[%2d]", row[i])
	}
	sb.WriteString(common.ColorReset)
	sb.WriteByte('\n')

	row = s.Row(seat)
	sb.WriteString(PlayerColor(seat))
	for i := 0; i < PitsPerSide; i++ {
		fmt.Fprintf(&sb, "[%2d]", row[i])
	}
	sb.WriteString(common.ColorReset)
	sb.WriteByte('\n')

	sb.WriteString(common.ColorGray)
	for i := 0; i < PitsPerSide; i++ {
		fmt.Fprintf(&sb, "  %d ", i)
	}
	sb.WriteString(common.ColorReset)
	sb.WriteByte('\n')

	header(seat)
	return sb.String()
}

// PlayerColor returns the display color for the given player.
func PlayerColor(p Player) string {
	if p == PlayerOne {
		return common.ColorRed
	}
	return common.ColorBlue
}
