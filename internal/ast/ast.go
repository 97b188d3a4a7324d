package ast

// Operator tokens. A token is an operator iff its text matches one of these;
// there is no separate tag field, later stages re-inspect token text.
const (
	OpPipe     = "|"
	OpRedirIn  = "<"
	OpRedirOut = ">"
	OpRedirApp = ">>"
	OpAnd      = "&&"
	OpOr       = "||"
)

var operators = map[string]bool{
	OpPipe:     true,
	OpRedirIn:  true,
	OpRedirOut: true,
	OpRedirApp: true,
	OpAnd:      true,
	OpOr:       true,
}

// IsOperator reports whether tok is a recognized operator token.
func IsOperator(tok string) bool {
	return operators[tok]
}

// Command is a single command of a pipeline with its redirections resolved.
// Argv is never empty after successful parsing. AppendMode is only
// meaningful when StdoutFile is set.
type Command struct {
	Argv       []string
	StdinFile  string
	StdoutFile string
	AppendMode bool
}

// ChainSegment is the portion of a line between && / || operators, itself
// potentially containing a pipeline. Op is the operator connecting this
// segment to the previous one; the first segment of a line has Op == "".
type ChainSegment struct {
	Op     string
	Tokens []string
}
