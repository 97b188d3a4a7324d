package parser

import "simplesh/internal/ast"

// SplitChain partitions tokens on && and || into ordered chain segments.
// The first segment always has Op == "". A chain operator at the start or
// end of the line, or two chain operators with nothing between them, is a
// syntax error.
func SplitChain(tokens []string) ([]ast.ChainSegment, error) {
	var segments []ast.ChainSegment
	var current []string
	pendingOp := ""

	for _, tok := range tokens {
		if tok == ast.OpAnd || tok == ast.OpOr {
			if len(current) == 0 {
				return nil, unexpectedToken(tok)
			}
			segments = append(segments, ast.ChainSegment{Op: pendingOp, Tokens: current})
			pendingOp = tok
			current = nil
			continue
		}
		current = append(current, tok)
	}

	if len(current) == 0 {
		if pendingOp == "" {
			pendingOp = "newline"
		}
		return nil, unexpectedToken(pendingOp)
	}
	segments = append(segments, ast.ChainSegment{Op: pendingOp, Tokens: current})

	return segments, nil
}

// SplitPipeline partitions one chain segment on | into command segments.
// Every returned segment is non-empty; a pipe first, last, or doubled is a
// syntax error.
func SplitPipeline(tokens []string) ([][]string, error) {
	var segments [][]string
	var current []string

	for _, tok := range tokens {
		if tok == ast.OpPipe {
			if len(current) == 0 {
				return nil, unexpectedToken(ast.OpPipe)
			}
			segments = append(segments, current)
			current = nil
			continue
		}
		current = append(current, tok)
	}

	if len(current) == 0 {
		return nil, unexpectedToken(ast.OpPipe)
	}
	segments = append(segments, current)

	return segments, nil
}
