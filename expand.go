package twgroup

import (
	"log/slog"

	"github.com/aledsdavies/twgroup/core/ast"
	"github.com/aledsdavies/twgroup/runtime/flatten"
	"github.com/aledsdavies/twgroup/runtime/lexer"
	"github.com/aledsdavies/twgroup/runtime/parser"
)

// Options configures a single expansion.
type Options struct {
	Logger *slog.Logger // debug tracing for the lexer and parser; nil discards
}

// Expand rewrites grouped notation in input into a flat, space-separated class
// list. Input without groups comes back with whitespace collapsed to single
// spaces. It fails with an UNBALANCED_GROUPING error, and no partial output,
// when parentheses do not pair up.
func Expand(input string) (string, error) {
	return ExpandWithOptions(input, Options{})
}

// ExpandWithOptions is Expand with debug tracing.
func ExpandWithOptions(input string, opts Options) (string, error) {
	tokens, err := ExpandTokens(input, opts)
	if err != nil {
		return "", err
	}
	return flatten.Join(tokens), nil
}

// ExpandTokens returns the fully-qualified tokens before they are joined.
func ExpandTokens(input string, opts Options) ([]string, error) {
	root, err := Parse(input, opts)
	if err != nil {
		return nil, err
	}
	return flatten.Flatten(root, ""), nil
}

// Parse returns the grouping tree for input without flattening it.
func Parse(input string, opts Options) (*ast.Group, error) {
	var lexOpts []lexer.LexerOpt
	var parseOpts []parser.ParserOpt
	if opts.Logger != nil {
		lexOpts = append(lexOpts, lexer.WithLogger(opts.Logger))
		parseOpts = append(parseOpts, parser.WithLogger(opts.Logger))
	}
	return parser.Parse(lexer.Tokenize(input, lexOpts...), parseOpts...)
}
