package expand

import (
	"sort"
	"strings"

	"github.com/spf13/afero"

	"simplesh/internal/ast"
)

// Globs expands * and ? patterns against the filesystem. Matches replace the
// token in lexicographic order; a token that matches nothing is kept as-is.
// Operator tokens pass through untouched.
func Globs(fs afero.Fs, tokens []string) []string {
	var out []string
	for _, tok := range tokens {
		if ast.IsOperator(tok) || !strings.ContainsAny(tok, "*?") {
			out = append(out, tok)
			continue
		}

		matches, err := afero.Glob(fs, tok)
		if err != nil || len(matches) == 0 {
			out = append(out, tok)
			continue
		}
		sort.Strings(matches)
		out = append(out, matches...)
	}
	return out
}
