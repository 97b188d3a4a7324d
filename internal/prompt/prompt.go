package prompt

import (
	"os"
	"strings"

	"github.com/fatih/color"

	"simplesh/internal/session"
)

// Manager renders the interactive prompt: the working directory with the
// home prefix abbreviated to ~, followed by the configured suffix.
type Manager struct {
	env    session.Environ
	suffix string
	dir    *color.Color
}

func New(env session.Environ, suffix string, colors bool) *Manager {
	dir := color.New(color.FgCyan, color.Bold)
	if !colors {
		dir.DisableColor()
	}
	return &Manager{
		env:    env,
		suffix: suffix,
		dir:    dir,
	}
}

func (m *Manager) Render() string {
	cwd, err := os.Getwd()
	if err != nil {
		cwd = "?"
	}

	home := m.env.Getenv("HOME")
	display := cwd
	switch {
	case home != "" && cwd == home:
		display = "~"
	case home != "" && strings.HasPrefix(cwd, home+"/"):
		display = "~" + cwd[len(home):]
	}

	return m.dir.Sprint(display) + " " + m.suffix
}
