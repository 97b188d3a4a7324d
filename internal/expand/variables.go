// Package expand implements the rewrite stages between the raw input line
// and command execution: variable references, leading tildes, and globs.
package expand

import (
	"strings"

	"simplesh/internal/session"
)

// Variables rewrites $VAR and ${VAR} references in the raw line before
// tokenization, so quote context is visible character by character.
// References inside single quotes are left alone; a backslash copies the
// following character verbatim and suppresses expansion for the pair. Unset
// variables expand to the empty string. Quote characters are preserved; the
// tokenizer strips them later.
func Variables(line string, env session.Environ) string {
	var out strings.Builder
	var quote byte

	for i := 0; i < len(line); {
		ch := line[i]

		if ch == '\\' && i+1 < len(line) {
			out.WriteByte(ch)
			out.WriteByte(line[i+1])
			i += 2
			continue
		}

		if ch == '\'' || ch == '"' {
			switch quote {
			case 0:
				quote = ch
			case ch:
				quote = 0
			}
			out.WriteByte(ch)
			i++
			continue
		}

		if ch == '$' && quote != '\'' {
			value, consumed := expandOne(line, i, env)
			out.WriteString(value)
			i += consumed
			continue
		}

		out.WriteByte(ch)
		i++
	}

	return out.String()
}

// expandOne expands a single reference starting at line[pos] == '$' and
// returns the replacement text plus the number of bytes consumed.
func expandOne(line string, pos int, env session.Environ) (string, int) {
	if pos+1 >= len(line) {
		return "$", 1
	}

	if line[pos+1] == '{' {
		end := strings.IndexByte(line[pos+2:], '}')
		if end < 0 {
			// Unterminated ${: emit the two characters literally and let the
			// scan resume after them rather than swallowing the rest of the line.
			return "${", 2
		}
		name := line[pos+2 : pos+2+end]
		return env.Getenv(name), end + 3
	}

	n := nameLen(line[pos+1:])
	if n == 0 {
		return "$", 1
	}
	return env.Getenv(line[pos+1 : pos+1+n]), 1 + n
}

// nameLen returns the length of the longest prefix of s that is a valid
// variable name: letter or underscore, then letters, digits, underscores.
func nameLen(s string) int {
	i := 0
	for ; i < len(s); i++ {
		c := s[i]
		switch {
		case c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z'):
		case c >= '0' && c <= '9':
			if i == 0 {
				return 0
			}
		default:
			return i
		}
	}
	return i
}
