package history

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/spf13/afero"
)

// Manager keeps the in-memory command history and persists it to the
// history file between sessions.
type Manager struct {
	fs      afero.Fs
	entries []string
	file    string
	maxSize int
}

func New(fs afero.Fs, file string, maxSize int) *Manager {
	m := &Manager{
		fs:      fs,
		file:    file,
		maxSize: maxSize,
	}
	m.Load()
	return m
}

func (m *Manager) Add(command string) {
	command = strings.TrimSpace(command)
	if command == "" {
		return
	}

	// Skip consecutive duplicates.
	if len(m.entries) > 0 && m.entries[len(m.entries)-1] == command {
		return
	}

	m.entries = append(m.entries, command)
	m.trim()
}

func (m *Manager) All() []string {
	return append([]string{}, m.entries...)
}

func (m *Manager) Clear() {
	m.entries = nil
}

func (m *Manager) Size() int {
	return len(m.entries)
}

func (m *Manager) trim() {
	if m.maxSize > 0 && len(m.entries) > m.maxSize {
		m.entries = m.entries[len(m.entries)-m.maxSize:]
	}
}

// Load reads the history file. A missing file is fine.
func (m *Manager) Load() error {
	file, err := m.fs.Open(m.file)
	if err != nil {
		return nil
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line != "" {
			m.entries = append(m.entries, line)
		}
	}
	m.trim()

	return scanner.Err()
}

func (m *Manager) Save() error {
	file, err := m.fs.Create(m.file)
	if err != nil {
		return err
	}
	defer file.Close()

	for _, entry := range m.entries {
		if _, err := fmt.Fprintln(file, entry); err != nil {
			return err
		}
	}

	return nil
}
