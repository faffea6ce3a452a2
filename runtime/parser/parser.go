// Package parser builds the grouping tree from lexer tokens.
//
// A WORD immediately followed by LPAREN becomes the prefix of a new group;
// any other WORD is a leaf of the innermost open group. Prefix status is
// purely positional: the same text can be a prefix in one place and a leaf in
// another. SPACE tokens carry no structure and are skipped.
package parser

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/aledsdavies/twgroup/core/ast"
	"github.com/aledsdavies/twgroup/core/errors"
	"github.com/aledsdavies/twgroup/core/invariant"
	"github.com/aledsdavies/twgroup/runtime/lexer"
)

// parser holds the open-group stack for one Parse call
type parser struct {
	tokens []lexer.Token
	stack  []*ast.Group // stack[0] is the synthetic root
	logger *slog.Logger
}

// Parse turns tokens into a tree rooted at a synthetic group with an empty
// prefix. It fails with an UNBALANCED_GROUPING error when a ')' has no open
// group, when a '(' has no prefix word, or when groups remain open at the end.
func Parse(tokens []lexer.Token, opts ...ParserOpt) (*ast.Group, error) {
	config := &ParserConfig{}
	for _, opt := range opts {
		opt(config)
	}
	if config.logger == nil {
		config.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	p := &parser{
		tokens: tokens,
		stack:  []*ast.Group{ast.NewRoot()},
		logger: config.logger,
	}
	return p.parse()
}

// ParseString tokenizes and parses input in one step.
func ParseString(input string, opts ...ParserOpt) (*ast.Group, error) {
	return Parse(lexer.Tokenize(input), opts...)
}

func (p *parser) parse() (*ast.Group, error) {
	for i, tok := range p.tokens {
		switch tok.Type {
		case lexer.WORD:
			invariant.Invariant(tok.Text != "", "WORD token at column %d has empty text", tok.Position.Column)
			if p.peekIs(i+1, lexer.LPAREN) {
				p.push(tok)
			} else {
				p.top().Append(&ast.Word{Text: tok.Text, Col: tok.Position.Column})
			}

		case lexer.LPAREN:
			// The prefix word before it already pushed the group.
			if !p.peekIs(i-1, lexer.WORD) {
				return nil, errors.NewUnbalancedError("'(' without a prefix word", tok.Position.Column)
			}

		case lexer.RPAREN:
			if len(p.stack) == 1 {
				return nil, errors.NewUnbalancedError("unexpected ')'", tok.Position.Column)
			}
			p.pop()

		case lexer.SPACE:
			// word boundaries are already settled by the lexer

		default:
			invariant.Unreachable("token type %s", tok.Type)
		}
	}

	if len(p.stack) > 1 {
		open := p.top()
		return nil, errors.NewUnbalancedError(
			fmt.Sprintf("group %q is never closed (%d open)", open.Prefix, len(p.stack)-1),
			open.Col,
		).WithContext("prefix", open.Prefix)
	}

	root := p.stack[0]
	invariant.Postcondition(root.IsRoot(), "parse must return the synthetic root")
	return root, nil
}

func (p *parser) peekIs(i int, tt lexer.TokenType) bool {
	return i >= 0 && i < len(p.tokens) && p.tokens[i].Type == tt
}

func (p *parser) top() *ast.Group {
	return p.stack[len(p.stack)-1]
}

// push opens a group. It is attached to its parent only when closed.
func (p *parser) push(prefix lexer.Token) {
	p.logger.Debug("open group", "prefix", prefix.Text, "column", prefix.Position.Column, "depth", len(p.stack))
	p.stack = append(p.stack, &ast.Group{Prefix: prefix.Text, Col: prefix.Position.Column})
}

func (p *parser) pop() {
	invariant.Invariant(len(p.stack) > 1, "pop would remove the synthetic root")
	closed := p.top()
	p.stack = p.stack[:len(p.stack)-1]
	p.top().Append(closed)
	p.logger.Debug("close group", "prefix", closed.Prefix, "children", len(closed.Children), "depth", len(p.stack))
}
