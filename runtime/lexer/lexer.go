// Package lexer splits a grouped class string into WORD, LPAREN, RPAREN and
// SPACE tokens.
//
// Square-bracket regions such as "bg-[url(a b)]" are opaque: parentheses and
// whitespace inside them do not delimit tokens. Bracket regions nest, and an
// unterminated region absorbs the rest of the input into the current word.
package lexer

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"unicode"
	"unicode/utf8"
)

// LexerOpt represents a lexer configuration option
type LexerOpt func(*LexerConfig)

// LexerConfig holds lexer configuration
type LexerConfig struct {
	logger *slog.Logger
}

// WithLogger routes debug tracing of emitted tokens to logger.
func WithLogger(logger *slog.Logger) LexerOpt {
	return func(c *LexerConfig) {
		c.logger = logger
	}
}

// Lexer holds the scan state for a single input. It is not reused across inputs.
type Lexer struct {
	input  string
	logger *slog.Logger

	tokens []Token

	buf      strings.Builder
	bufStart Position // position of the first rune in buf
	depth    int      // square-bracket nesting depth; 0 = outside
}

// NewLexer creates a new lexer instance with optional configuration
func NewLexer(input string, opts ...LexerOpt) *Lexer {
	config := &LexerConfig{}
	for _, opt := range opts {
		opt(config)
	}
	if config.logger == nil {
		config.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	return &Lexer{
		input:  input,
		logger: config.logger,
		tokens: make([]Token, 0, utf8.RuneCountInString(input)/2+1),
	}
}

// Tokenize scans input and returns its tokens in source order. It never fails.
func Tokenize(input string, opts ...LexerOpt) []Token {
	return NewLexer(input, opts...).GetTokens()
}

// GetTokens scans the whole input and returns the token sequence.
func (l *Lexer) GetTokens() []Token {
	col := 0
	for offset, ch := range l.input {
		col++
		pos := Position{Offset: offset, Column: col}
		_, size := utf8.DecodeRuneInString(l.input[offset:])
		raw := l.input[offset : offset+size]

		switch {
		case ch == '[':
			l.appendRaw(raw, pos)
			l.depth++
		case ch == ']' && l.depth > 0:
			l.appendRaw(raw, pos)
			l.depth--
		case l.depth > 0:
			l.appendRaw(raw, pos)
		case ch == '(':
			l.flush()
			l.emit(Token{Type: LPAREN, Position: pos})
		case ch == ')':
			l.flush()
			l.emit(Token{Type: RPAREN, Position: pos})
		case unicode.IsSpace(ch):
			l.flush()
			l.emit(Token{Type: SPACE, Position: pos})
		default:
			l.appendRaw(raw, pos)
		}
	}
	l.flush()

	if l.depth > 0 {
		l.logger.Debug("unterminated bracket region", "depth", l.depth)
	}
	return l.tokens
}

// appendRaw keeps the source bytes so invalid UTF-8 passes through untouched.
func (l *Lexer) appendRaw(raw string, pos Position) {
	if l.buf.Len() == 0 {
		l.bufStart = pos
	}
	l.buf.WriteString(raw)
}

// flush emits the buffered word, if any, and clears the buffer.
func (l *Lexer) flush() {
	text := strings.TrimSpace(l.buf.String())
	l.buf.Reset()
	if text == "" {
		return
	}
	l.emit(Token{Type: WORD, Text: text, Position: l.bufStart})
}

func (l *Lexer) emit(tok Token) {
	if l.logger.Enabled(context.Background(), slog.LevelDebug) {
		l.logger.Debug("token", "type", tok.Type.String(), "text", tok.Text, "column", tok.Position.Column)
	}
	l.tokens = append(l.tokens, tok)
}
