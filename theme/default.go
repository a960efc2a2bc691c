package theme

import (
	"github.com/pterm/pterm"
)

// Theme holds the pterm styles used by terminal logging and CLI tables
type Theme struct {
	Info  *pterm.Style
	Muted *pterm.Style

	Source *pterm.Style
	Host   *pterm.Style
	Counts *pterm.Style
}

type palette struct {
	info, source, host, counts pterm.Color
}

var palettes = map[string]palette{
	"default": {info: pterm.FgGreen, source: pterm.FgCyan, host: pterm.FgLightBlue, counts: pterm.FgYellow},
	"dark":    {info: pterm.FgLightGreen, source: pterm.FgLightCyan, host: pterm.FgLightBlue, counts: pterm.FgLightYellow},
	"light":   {info: pterm.FgBlack, source: pterm.FgBlue, host: pterm.FgBlue, counts: pterm.FgMagenta},
}

func (p palette) theme() *Theme {
	return &Theme{
		Info:   pterm.NewStyle(p.info),
		Muted:  pterm.NewStyle(pterm.FgGray),
		Source: pterm.NewStyle(p.source, pterm.Bold),
		Host:   pterm.NewStyle(p.host, pterm.Underscore),
		Counts: pterm.NewStyle(p.counts),
	}
}

func Default() *Theme {
	return palettes["default"].theme()
}

// GetTheme returns the named theme, unknown names get the default
func GetTheme(name string) *Theme {
	if p, ok := palettes[name]; ok {
		return p.theme()
	}
	return Default()
}

func ColourSplash(message ...any) string {
	return pterm.LightGreen(message...)
}

func ColourVersion(message ...any) string {
	return pterm.LightYellow(message...)
}

func StyleUrl(message ...any) string {
	return pterm.LightBlue(message...)
}

// Hyperlink wraps text in an OSC 8 link, terminals without support show text only
func Hyperlink(uri string, text string) string {
	return "\x1b]8;;" + uri + "\x07" + text + "\x1b]8;;\x07" + "\x1b[0m"
}
