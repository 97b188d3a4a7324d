// Package complete provides tab completion for command names and paths,
// plus near-miss suggestions for mistyped commands.
package complete

import (
	"path"
	"sort"
	"strings"
	"sync"

	"github.com/agnivade/levenshtein"
	"github.com/spf13/afero"

	"simplesh/internal/session"
)

type Completer struct {
	fs       afero.Fs
	env      session.Environ
	builtins []string

	mu       sync.Mutex
	pathCmds []string // cached PATH executables, nil until first use
}

func New(fs afero.Fs, env session.Environ, builtins []string) *Completer {
	return &Completer{
		fs:       fs,
		env:      env,
		builtins: builtins,
	}
}

// Complete returns the word under completion at the end of line and its
// candidate replacements. The first word of a command (start of line or
// right after a pipe) completes against builtins and PATH executables as
// well as paths; every other position completes against paths only.
func (c *Completer) Complete(line string) (word string, matches []string) {
	word = currentWord(line)
	before := strings.TrimSpace(line[:len(line)-len(word)])

	if before == "" || strings.HasSuffix(before, "|") {
		return word, c.completeCommand(word)
	}
	return word, c.completePath(word)
}

// currentWord returns the trailing partial word of line, empty when the
// line ends mid-whitespace.
func currentWord(line string) string {
	i := strings.LastIndexAny(line, " \t|><")
	if i < 0 {
		return line
	}
	return line[i+1:]
}

func (c *Completer) completeCommand(prefix string) []string {
	set := make(map[string]bool)

	for _, name := range c.builtins {
		if strings.HasPrefix(name, prefix) {
			set[name] = true
		}
	}
	for _, name := range c.pathCommands() {
		if strings.HasPrefix(name, prefix) {
			set[name] = true
		}
	}
	for _, p := range c.completePath(prefix) {
		set[p] = true
	}

	matches := make([]string, 0, len(set))
	for m := range set {
		matches = append(matches, m)
	}
	sort.Strings(matches)
	return matches
}

func (c *Completer) completePath(prefix string) []string {
	dir, base := path.Split(prefix)
	searchDir := dir
	if searchDir == "" {
		searchDir = "."
	}

	entries, err := afero.ReadDir(c.fs, searchDir)
	if err != nil {
		return nil
	}

	var matches []string
	for _, entry := range entries {
		if !strings.HasPrefix(entry.Name(), base) {
			continue
		}
		full := dir + entry.Name()
		if entry.IsDir() {
			full += "/"
		}
		matches = append(matches, full)
	}
	sort.Strings(matches)
	return matches
}

// Suggest returns the known command name closest to name, or "" when
// nothing is within editing distance 2.
func (c *Completer) Suggest(name string) string {
	best, bestDist := "", 3
	for _, candidates := range [][]string{c.builtins, c.pathCommands()} {
		for _, cand := range candidates {
			if cand == name {
				continue
			}
			if d := levenshtein.ComputeDistance(name, cand); d < bestDist {
				best, bestDist = cand, d
			}
		}
	}
	return best
}

// InvalidatePathCache drops the cached PATH executables; called after the
// PATH variable changes.
func (c *Completer) InvalidatePathCache() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.pathCmds = nil
}

func (c *Completer) pathCommands() []string {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.pathCmds != nil {
		return c.pathCmds
	}

	set := make(map[string]bool)
	for _, dir := range strings.Split(c.env.Getenv("PATH"), ":") {
		if dir == "" {
			continue
		}
		entries, err := afero.ReadDir(c.fs, dir)
		if err != nil {
			continue
		}
		for _, entry := range entries {
			if !entry.IsDir() && entry.Mode()&0111 != 0 {
				set[entry.Name()] = true
			}
		}
	}

	cmds := make([]string, 0, len(set))
	for name := range set {
		cmds = append(cmds, name)
	}
	sort.Strings(cmds)
	c.pathCmds = cmds
	return cmds
}
