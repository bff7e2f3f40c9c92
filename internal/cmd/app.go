// Package cmd implements the issues command-line interface.
package cmd

import (
	"io"
	"os"

	"issues-lite/internal/config"
	"issues-lite/internal/issuestorage"

	"github.com/fatih/color"
	"golang.org/x/term"
)

// App holds application state shared across commands.
type App struct {
	Storage     issuestorage.IssueStore
	ConfigStore config.Store // nil means defaults
	IssuesDir   string       // directory holding the issue files
	Out         io.Writer
	Err         io.Writer
	JSON        bool // output in JSON format
}

// statusColors maps each status to the attribute used in list output.
// Pending is left uncolored.
var statusColors = map[issuestorage.Status]color.Attribute{
	issuestorage.StatusInProgress: color.FgYellow,
	issuestorage.StatusBlocked:    color.FgRed,
	issuestorage.StatusReview:     color.FgCyan,
	issuestorage.StatusDone:       color.FgGreen,
}

// colorEnabled reports whether output should carry ANSI color codes.
// In auto mode that is only when Out is a terminal.
func (a *App) colorEnabled() bool {
	switch config.Color(a.ConfigStore) {
	case config.ColorAlways:
		return true
	case config.ColorNever:
		return false
	}
	if f, ok := a.Out.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		return true
	}
	return false
}

// StatusColor wraps s in the color for status when color is enabled,
// otherwise returns s unchanged.
func (a *App) StatusColor(status issuestorage.Status, s string) string {
	attr, ok := statusColors[status]
	if !ok || !a.colorEnabled() {
		return s
	}
	c := color.New(attr)
	c.EnableColor()
	return c.Sprint(s)
}

// SuccessColor returns the string in green when color is enabled,
// otherwise returns the string unchanged.
func (a *App) SuccessColor(s string) string {
	if !a.colorEnabled() {
		return s
	}
	c := color.New(color.FgGreen)
	c.EnableColor()
	return c.Sprint(s)
}
