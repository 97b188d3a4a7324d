package expand

import (
	"os/user"
	"strings"

	"simplesh/internal/session"
)

// Tilde replaces a leading ~ or ~name in each token with the matching home
// directory. The replacement only applies at the start of a token; a token
// whose user cannot be resolved is left unchanged.
func Tilde(tokens []string, env session.Environ) []string {
	out := make([]string, len(tokens))
	for i, tok := range tokens {
		out[i] = expandTilde(tok, env)
	}
	return out
}

func expandTilde(tok string, env session.Environ) string {
	if !strings.HasPrefix(tok, "~") {
		return tok
	}

	head, rest := tok, ""
	if slash := strings.IndexByte(tok, '/'); slash >= 0 {
		head, rest = tok[:slash], tok[slash:]
	}

	var home string
	if head == "~" {
		home = env.Getenv("HOME")
		if home == "" {
			u, err := user.Current()
			if err != nil {
				return tok
			}
			home = u.HomeDir
		}
	} else {
		u, err := user.Lookup(head[1:])
		if err != nil {
			return tok
		}
		home = u.HomeDir
	}

	return home + rest
}
