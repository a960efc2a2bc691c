package util

import (
	"os"
	"strings"

	"github.com/mattn/go-isatty"
)

// Colour handling follows https://no-color.org/

func isTTY(f *os.File) bool {
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// IsTerminal reports whether stdout is attached to a terminal
func IsTerminal() bool {
	return isTTY(os.Stdout)
}

// IsInteractive reports whether both stdin and stdout are terminals,
// which the setup panel needs to read keys and redraw.
func IsInteractive() bool {
	return isTTY(os.Stdin) && isTTY(os.Stdout)
}

// ShouldUseColors decides on coloured output. NO_COLOR always wins, then
// FORCE_COLOR and LLMSOURCE_FORCE_COLORS, otherwise colour only on a terminal.
func ShouldUseColors() bool {
	return colorsFromEnv(os.Getenv, IsTerminal())
}

func colorsFromEnv(getenv func(string) string, tty bool) bool {
	if getenv("NO_COLOR") != "" {
		return false
	}
	if v := getenv("FORCE_COLOR"); v != "" {
		return v != "0"
	}
	if v := getenv("LLMSOURCE_FORCE_COLORS"); v != "" {
		return strings.EqualFold(v, "true")
	}
	return tty
}
