package alias

import "simplesh/internal/parser"

// Expand rewrites the first token while it names an alias, splicing the
// tokenized replacement text in front of the remaining tokens.
//
// Names already substituted during this call are not substituted again, so
// self-referential aliases like ls -> "ls --color" expand exactly once and
// indirect cycles terminate with the cycling name left as a literal command.
// If an alias value fails to tokenize, expansion stops with the tokens
// accumulated so far.
func Expand(tokens []string, table *Table) []string {
	seen := make(map[string]bool)

	for len(tokens) > 0 {
		name := tokens[0]
		if seen[name] {
			break
		}
		value, ok := table.Get(name)
		if !ok {
			break
		}
		seen[name] = true

		replacement, err := parser.Tokenize(value)
		if err != nil {
			break
		}
		tokens = append(replacement, tokens[1:]...)
	}

	return tokens
}
