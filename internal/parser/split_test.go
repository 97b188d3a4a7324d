package parser

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"simplesh/internal/ast"
)

func TestSplitChain(t *testing.T) {
	cases := []struct {
		name string
		in   []string
		want []ast.ChainSegment
	}{
		{
			"no operators",
			[]string{"echo", "hi"},
			[]ast.ChainSegment{{Op: "", Tokens: []string{"echo", "hi"}}},
		},
		{
			"and then or",
			[]string{"a", "&&", "b", "||", "c"},
			[]ast.ChainSegment{
				{Op: "", Tokens: []string{"a"}},
				{Op: ast.OpAnd, Tokens: []string{"b"}},
				{Op: ast.OpOr, Tokens: []string{"c"}},
			},
		},
		{
			"pipes stay inside segments",
			[]string{"a", "|", "b", "&&", "c"},
			[]ast.ChainSegment{
				{Op: "", Tokens: []string{"a", "|", "b"}},
				{Op: ast.OpAnd, Tokens: []string{"c"}},
			},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := SplitChain(tc.in)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestSplitChainErrors(t *testing.T) {
	cases := []struct {
		name    string
		in      []string
		wantMsg string
	}{
		{"leading and", []string{"&&", "a"}, "syntax error near unexpected token `&&'"},
		{"trailing or", []string{"a", "||"}, "syntax error near unexpected token `||'"},
		{"doubled", []string{"a", "&&", "||", "b"}, "syntax error near unexpected token `||'"},
		{"adjacent same", []string{"a", "&&", "&&", "b"}, "syntax error near unexpected token `&&'"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := SplitChain(tc.in)
			require.Error(t, err)
			assert.Equal(t, tc.wantMsg, err.Error())
		})
	}
}

func TestSplitPipeline(t *testing.T) {
	got, err := SplitPipeline([]string{"ls", "-la", "|", "grep", "go", "|", "wc", "-l"})
	require.NoError(t, err)
	assert.Equal(t, [][]string{
		{"ls", "-la"},
		{"grep", "go"},
		{"wc", "-l"},
	}, got)
}

func TestSplitPipelineSingleCommand(t *testing.T) {
	got, err := SplitPipeline([]string{"echo", "hi"})
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"echo", "hi"}}, got)
}

func TestSplitPipelineErrors(t *testing.T) {
	for _, in := range [][]string{
		{"|", "a"},
		{"a", "|"},
		{"a", "|", "|", "b"},
	} {
		_, err := SplitPipeline(in)
		require.Error(t, err, "tokens %v", in)
		assert.Equal(t, "syntax error near unexpected token `|'", err.Error())
	}
}

// Joining the split segments back with | must reproduce the input tokens.
func TestSplitPipelineRoundTrip(t *testing.T) {
	lines := []string{
		"cat f.txt | sort | uniq -c | sort -rn | head -5",
		"echo a b c",
		"ls -la | wc -l",
	}
	for _, line := range lines {
		tokens, err := Tokenize(line)
		require.NoError(t, err)

		segments, err := SplitPipeline(tokens)
		require.NoError(t, err)

		var rejoined []string
		for i, seg := range segments {
			if i > 0 {
				rejoined = append(rejoined, ast.OpPipe)
			}
			rejoined = append(rejoined, seg...)
		}
		assert.Equal(t, tokens, rejoined, "line %q", line)
		assert.Equal(t, strings.Count(line, "|")+1, len(segments))
	}
}
