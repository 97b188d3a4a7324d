package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMapEnv(t *testing.T) {
	env := NewMapEnv()

	assert.Equal(t, "", env.Getenv("MISSING"))

	require.NoError(t, env.Setenv("B", "2"))
	require.NoError(t, env.Setenv("A", "1"))
	assert.Equal(t, "1", env.Getenv("A"))

	assert.Equal(t, []string{"A=1", "B=2"}, env.Environ())

	require.NoError(t, env.Unsetenv("A"))
	assert.Equal(t, "", env.Getenv("A"))
	assert.Equal(t, []string{"B=2"}, env.Environ())
}

func TestNewMapEnvFromList(t *testing.T) {
	env := NewMapEnvFromList([]string{"HOME=/home/alice", "PATH=/bin:/usr/bin", "malformed"})

	assert.Equal(t, "/home/alice", env.Getenv("HOME"))
	assert.Equal(t, "/bin:/usr/bin", env.Getenv("PATH"))
	assert.Equal(t, "", env.Getenv("malformed"))
}

func TestNewSession(t *testing.T) {
	s := New(NewMapEnv())

	assert.NotNil(t, s.Aliases)
	assert.Equal(t, 0, s.LastExit)
	assert.False(t, s.ExitRequested)
}
