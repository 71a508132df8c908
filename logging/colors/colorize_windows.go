//go:build windows

package colors

import (
	"fmt"
	"os"

	"golang.org/x/sys/windows"
)

var enabled bool

// EnableColor checks whether the stdout console supports virtual terminal sequences and enables coloring if so.
func EnableColor() {
	var mode uint32
	handle := windows.Handle(os.Stdout.Fd())
	if err := windows.GetConsoleMode(handle, &mode); err != nil {
		enabled = false
		return
	}
	enabled = mode&windows.ENABLE_VIRTUAL_TERMINAL_PROCESSING != 0
}

// DisableColor turns ANSI coloring off.
func DisableColor() {
	enabled = false
}

// Colorize returns the string s wrapped in ANSI code c if the console supports it.
func Colorize(s any, c Color) string {
	if !enabled {
		return fmt.Sprintf("%v", s)
	}
	return fmt.Sprintf("\x1b[%dm%v\x1b[0m", c, s)
}
