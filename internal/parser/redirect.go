package parser

import "simplesh/internal/ast"

// ParseRedirections extracts < > >> operators and their filename arguments
// from a command segment. Redirections may appear anywhere in the segment;
// the remaining words become Argv in their original relative order. When
// stdout is redirected more than once the last occurrence wins, for both
// the target file and the append mode.
func ParseRedirections(segment []string) (*ast.Command, error) {
	cmd := &ast.Command{}

	for i := 0; i < len(segment); i++ {
		switch tok := segment[i]; tok {
		case ast.OpRedirIn:
			if i+1 >= len(segment) {
				return nil, unexpectedToken("newline")
			}
			cmd.StdinFile = segment[i+1]
			i++
		case ast.OpRedirOut, ast.OpRedirApp:
			if i+1 >= len(segment) {
				return nil, unexpectedToken("newline")
			}
			cmd.StdoutFile = segment[i+1]
			cmd.AppendMode = tok == ast.OpRedirApp
			i++
		default:
			cmd.Argv = append(cmd.Argv, tok)
		}
	}

	if len(cmd.Argv) == 0 {
		return nil, &SyntaxError{Msg: "syntax error: missing command"}
	}

	return cmd, nil
}
