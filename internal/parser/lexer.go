package parser

import (
	"strings"
	"unicode"
)

// SyntaxError reports malformed input: an unterminated quote or an operator
// with nothing to connect. It aborts processing of the current line only.
type SyntaxError struct {
	Msg string
}

func (e *SyntaxError) Error() string {
	return e.Msg
}

func unexpectedToken(tok string) *SyntaxError {
	return &SyntaxError{Msg: "syntax error near unexpected token `" + tok + "'"}
}

// Tokenize splits a line into word and operator tokens.
//
// Quoting follows the usual shell rules: single quotes are fully literal,
// double quotes are literal except that backslash still escapes the next
// character, and an unquoted backslash escapes the next character (including
// whitespace, so `hello\ world` is one word). The characters | < > & end the
// current word even without separating whitespace; every other non-space
// character is an ordinary word character. Adjacent identical > & | tokens
// are merged into >> && ||.
func Tokenize(line string) ([]string, error) {
	var tokens []string
	var b strings.Builder
	var quote rune
	pending := false // a quote pair was seen, emit a word even if empty
	escaped := false

	flush := func() {
		if b.Len() > 0 || pending {
			tokens = append(tokens, b.String())
			b.Reset()
			pending = false
		}
	}

	for _, r := range line {
		if escaped {
			b.WriteRune(r)
			escaped = false
			continue
		}

		switch quote {
		case '\'':
			if r == '\'' {
				quote = 0
			} else {
				b.WriteRune(r)
			}
			continue
		case '"':
			switch r {
			case '"':
				quote = 0
			case '\\':
				escaped = true
			default:
				b.WriteRune(r)
			}
			continue
		}

		switch {
		case r == '\\':
			escaped = true
		case r == '\'' || r == '"':
			quote = r
			pending = true
		case unicode.IsSpace(r):
			flush()
		case r == '|' || r == '<' || r == '>' || r == '&':
			flush()
			tokens = append(tokens, string(r))
		default:
			b.WriteRune(r)
		}
	}

	if quote != 0 {
		return nil, &SyntaxError{Msg: "no closing quotation"}
	}
	flush()

	return mergeOperators(tokens), nil
}

// mergeOperators merges consecutive identical > & | tokens into >> && ||.
// The merge is token-level, so `> >` merges the same way `>>` does.
func mergeOperators(tokens []string) []string {
	var merged []string
	for i := 0; i < len(tokens); i++ {
		t := tokens[i]
		if i+1 < len(tokens) && tokens[i+1] == t && (t == ">" || t == "&" || t == "|") {
			merged = append(merged, t+t)
			i++
			continue
		}
		merged = append(merged, t)
	}
	return merged
}
