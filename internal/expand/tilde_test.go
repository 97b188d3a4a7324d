package expand

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"simplesh/internal/session"
)

func TestTilde(t *testing.T) {
	env := session.NewMapEnv()
	env.Setenv("HOME", "/home/alice")

	cases := []struct {
		name string
		in   []string
		want []string
	}{
		{"bare tilde", []string{"cd", "~"}, []string{"cd", "/home/alice"}},
		{"tilde with path", []string{"ls", "~/docs"}, []string{"ls", "/home/alice/docs"}},
		{"mid-token untouched", []string{"echo", "a~b"}, []string{"echo", "a~b"}},
		{"unknown user untouched", []string{"ls", "~nosuchuser_xq9/f"}, []string{"ls", "~nosuchuser_xq9/f"}},
		{"plain tokens untouched", []string{"echo", "hi"}, []string{"echo", "hi"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Tilde(tc.in, env))
		})
	}
}
