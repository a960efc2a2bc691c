package version

import (
	"fmt"
	"log"
	"strings"

	"github.com/thushan/llmsource/theme"
)

var (
	Name        = "llmsource"
	ShortName   = "llmsource"
	Authors     = "Thushan Fernando"
	Description = "Local inference server setup & model discovery"
	Version     = "v0.0.1"
	Commit      = "none"
	Date        = "nowish"
	User        = "local"
)

const (
	GithubHomeText  = "github.com/thushan/llmsource"
	GithubHomeUri   = "https://github.com/thushan/llmsource"
	GithubLatestUri = "https://github.com/thushan/llmsource/releases/latest"
)

// UserAgent is sent with every request to an inference server
func UserAgent() string {
	return fmt.Sprintf("%s/%s", ShortName, Version)
}

func PrintVersionInfo(extendedInfo bool, vlog *log.Logger) {
	githubUri := theme.Hyperlink(GithubHomeUri, GithubHomeText)
	latestUri := theme.Hyperlink(GithubLatestUri, Version)

	var b strings.Builder

	b.WriteString(theme.ColourSplash("╔──────────────────────────────────────────╗\n"))
	b.WriteString(theme.ColourSplash("│ "))
	b.WriteString(theme.ColourSplash(Name))
	b.WriteString(" - ")
	b.WriteString(Description)
	b.WriteString("\n")
	b.WriteString(theme.ColourSplash("│ "))
	b.WriteString(theme.StyleUrl(githubUri))
	b.WriteString("  ")
	b.WriteString(theme.ColourVersion(latestUri))
	b.WriteString("\n")
	b.WriteString(theme.ColourSplash("╚──────────────────────────────────────────╝"))

	if extendedInfo {
		b.WriteString("\n")
		b.WriteString(fmt.Sprintf(" Commit: %s\n", Commit))
		b.WriteString(fmt.Sprintf("  Built: %s\n", Date))
		b.WriteString(fmt.Sprintf("  Using: %s\n", User))
	}

	vlog.Println(b.String())
}
