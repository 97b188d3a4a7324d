package history

import (
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdd(t *testing.T) {
	m := New(afero.NewMemMapFs(), "/hist", 100)

	m.Add("ls -la")
	m.Add("  echo hi  ")
	m.Add("")
	m.Add("   ")

	assert.Equal(t, []string{"ls -la", "echo hi"}, m.All())
}

func TestAddSkipsConsecutiveDuplicates(t *testing.T) {
	m := New(afero.NewMemMapFs(), "/hist", 100)

	m.Add("ls")
	m.Add("ls")
	m.Add("pwd")
	m.Add("ls")

	assert.Equal(t, []string{"ls", "pwd", "ls"}, m.All())
}

func TestAddTrimsToMaxSize(t *testing.T) {
	m := New(afero.NewMemMapFs(), "/hist", 3)

	for _, c := range []string{"a", "b", "c", "d", "e"} {
		m.Add(c)
	}

	assert.Equal(t, []string{"c", "d", "e"}, m.All())
	assert.Equal(t, 3, m.Size())
}

func TestClear(t *testing.T) {
	m := New(afero.NewMemMapFs(), "/hist", 100)
	m.Add("ls")
	m.Clear()

	assert.Equal(t, 0, m.Size())
}

func TestSaveAndLoad(t *testing.T) {
	fs := afero.NewMemMapFs()

	m := New(fs, "/hist", 100)
	m.Add("echo one")
	m.Add("echo two")
	require.NoError(t, m.Save())

	reloaded := New(fs, "/hist", 100)
	assert.Equal(t, []string{"echo one", "echo two"}, reloaded.All())
}

func TestLoadMissingFile(t *testing.T) {
	m := New(afero.NewMemMapFs(), "/nope", 100)
	assert.Equal(t, 0, m.Size())
}

func TestLoadRespectsMaxSize(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/hist", []byte("a\nb\nc\nd\n"), 0o644))

	m := New(fs, "/hist", 2)
	assert.Equal(t, []string{"c", "d"}, m.All())
}

func TestAllReturnsCopy(t *testing.T) {
	m := New(afero.NewMemMapFs(), "/hist", 100)
	m.Add("ls")

	got := m.All()
	got[0] = "mutated"

	assert.Equal(t, []string{"ls"}, m.All())
}
