//go:build !windows

package colors

import "fmt"

// enabled is toggled by DisableColor; ANSI codes are always supported on non-windows systems.
var enabled = true

// EnableColor turns ANSI coloring back on.
func EnableColor() {
	enabled = true
}

// DisableColor turns ANSI coloring off, e.g. when stdout is not a terminal.
func DisableColor() {
	enabled = false
}

// Colorize returns the string s wrapped in ANSI code c
func Colorize(s any, c Color) string {
	if !enabled {
		return fmt.Sprintf("%v", s)
	}
	return fmt.Sprintf("\x1b[%dm%v\x1b[0m", c, s)
}
