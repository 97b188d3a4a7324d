package builtin

import "sort"

// Func is the uniform contract for a builtin handler: arguments after the
// command name in, exit code out. Handlers close over the session they
// mutate and write through the shell's ambient output streams.
type Func func(args []string) int

// Manager is the static dispatch table from command name to handler.
type Manager struct {
	builtins map[string]Func
}

func New() *Manager {
	return &Manager{builtins: make(map[string]Func)}
}

func (m *Manager) Register(name string, fn Func) {
	m.builtins[name] = fn
}

func (m *Manager) Get(name string) Func {
	return m.builtins[name]
}

func (m *Manager) Exists(name string) bool {
	_, ok := m.builtins[name]
	return ok
}

func (m *Manager) Names() []string {
	names := make([]string, 0, len(m.builtins))
	for name := range m.builtins {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
