// Package alias holds the session alias table and the resolver that
// rewrites the leading word of a command segment.
package alias

import "sort"

// Table maps alias names to raw replacement text. It is owned by the shell
// session and never persisted.
type Table struct {
	entries map[string]string
}

func NewTable() *Table {
	return &Table{entries: make(map[string]string)}
}

func (t *Table) Set(name, value string) {
	t.entries[name] = value
}

func (t *Table) Get(name string) (string, bool) {
	v, ok := t.entries[name]
	return v, ok
}

func (t *Table) Delete(name string) bool {
	if _, ok := t.entries[name]; !ok {
		return false
	}
	delete(t.entries, name)
	return true
}

// Names returns all alias names in sorted order.
func (t *Table) Names() []string {
	names := make([]string, 0, len(t.entries))
	for name := range t.entries {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (t *Table) Len() int {
	return len(t.entries)
}
