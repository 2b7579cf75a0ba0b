package common

// ANSI escape codes shared by the terminal renderers.
const (
	ColorReset  = "\033[0m"
	ColorRed    = "\033[31m"
	ColorGreen  = "\033[32m"
	ColorYellow = "\033[33m"
	ColorBlue   = "\033[34m"
	ColorCyan   = "\033[36m"
	ColorWhite  = "\033[37m"
	ColorGray   = "\033[90m"
)

// Colorize wraps text in the given color and resets the terminal after it.
func Colorize(color, text string) string {
	return color + text + ColorReset
}
