package session

import (
	"os"
	"sort"
	"strings"
	"sync"

	"simplesh/internal/alias"
)

// Environ is the capability through which every stage reads and writes
// variable state. The process environment is the sole channel for variables;
// there is no separate shell-local scope.
type Environ interface {
	Getenv(name string) string
	Setenv(name, value string) error
	Unsetenv(name string) error
	Environ() []string
}

// Session is the per-interpreter mutable state: the alias table and the exit
// code of the last executed pipeline. It is created once per invocation and
// shared with sourced sub-invocations.
type Session struct {
	Env      Environ
	Aliases  *alias.Table
	LastExit int

	// ExitRequested is set by the exit builtin; the read loop stops and the
	// process terminates with ExitCode.
	ExitRequested bool
	ExitCode      int
}

func New(env Environ) *Session {
	return &Session{
		Env:     env,
		Aliases: alias.NewTable(),
	}
}

// OSEnv is the Environ backed by the real process environment.
type OSEnv struct{}

func (OSEnv) Getenv(name string) string       { return os.Getenv(name) }
func (OSEnv) Setenv(name, value string) error { return os.Setenv(name, value) }
func (OSEnv) Unsetenv(name string) error      { return os.Unsetenv(name) }
func (OSEnv) Environ() []string               { return os.Environ() }

// MapEnv is an in-memory Environ for tests and sub-contexts.
type MapEnv struct {
	mu   sync.RWMutex
	vars map[string]string
}

func NewMapEnv() *MapEnv {
	return &MapEnv{vars: make(map[string]string)}
}

func NewMapEnvFromList(environ []string) *MapEnv {
	env := NewMapEnv()
	for _, kv := range environ {
		if k, v, ok := strings.Cut(kv, "="); ok {
			env.vars[k] = v
		}
	}
	return env
}

func (m *MapEnv) Getenv(name string) string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.vars[name]
}

func (m *MapEnv) Setenv(name, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.vars[name] = value
	return nil
}

func (m *MapEnv) Unsetenv(name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.vars, name)
	return nil
}

func (m *MapEnv) Environ() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]string, 0, len(m.vars))
	for k, v := range m.vars {
		out = append(out, k+"="+v)
	}
	sort.Strings(out)
	return out
}
