package tui

import "github.com/charmbracelet/lipgloss"

type styles struct {
	Title          lipgloss.Style
	Label          lipgloss.Style
	Hint           lipgloss.Style
	Button         lipgloss.Style
	ButtonFocused  lipgloss.Style
	ButtonDisabled lipgloss.Style
	Model          lipgloss.Style
	ModelID        lipgloss.Style
	Spinner        lipgloss.Style
	Frame          lipgloss.Style
}

type palette struct {
	accent  lipgloss.Color
	text    lipgloss.Color
	muted   lipgloss.Color
	warn    lipgloss.Color
	surface lipgloss.Color
}

func paletteFor(themeName string) palette {
	switch themeName {
	case "light":
		return palette{accent: "25", text: "235", muted: "245", warn: "130", surface: "254"}
	case "dark":
		return palette{accent: "117", text: "252", muted: "243", warn: "221", surface: "237"}
	default:
		return palette{accent: "86", text: "255", muted: "244", warn: "214", surface: "238"}
	}
}

func newStyles(themeName string) styles {
	p := paletteFor(themeName)

	button := lipgloss.NewStyle().
		Padding(0, 2).
		Foreground(p.text).
		Background(p.surface)

	return styles{
		Title:          lipgloss.NewStyle().Bold(true).Foreground(p.accent),
		Label:          lipgloss.NewStyle().Foreground(p.text).Bold(true),
		Hint:           lipgloss.NewStyle().Foreground(p.warn),
		Button:         button,
		ButtonFocused:  button.Background(p.accent).Foreground(lipgloss.Color("0")).Bold(true),
		ButtonDisabled: button.Foreground(p.muted).Faint(true),
		Model:          lipgloss.NewStyle().Foreground(p.text),
		ModelID:        lipgloss.NewStyle().Foreground(p.muted),
		Spinner:        lipgloss.NewStyle().Foreground(p.accent),
		Frame:          lipgloss.NewStyle().Padding(1, 2),
	}
}
