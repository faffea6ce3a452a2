package lexer

import "fmt"

// TokenType represents the lexical class of a token
type TokenType int

const (
	WORD   TokenType = iota // class token or group prefix
	LPAREN                  // ( - opens a group
	RPAREN                  // ) - closes a group
	SPACE                   // whitespace run boundary outside brackets
)

// Token represents a lexical token. Text is set only for WORD.
type Token struct {
	Type     TokenType
	Text     string
	Position Position
}

// Position represents a position in the source string
type Position struct {
	Offset int // 0-based byte offset
	Column int // 1-based rune column
}

// String returns a string representation of the token type
func (t TokenType) String() string {
	switch t {
	case WORD:
		return "WORD"
	case LPAREN:
		return "LPAREN"
	case RPAREN:
		return "RPAREN"
	case SPACE:
		return "SPACE"
	default:
		return fmt.Sprintf("TokenType(%d)", int(t))
	}
}

// String returns the token as it would print in a debug trace
func (t Token) String() string {
	if t.Type == WORD {
		return fmt.Sprintf("WORD(%q)@%d", t.Text, t.Position.Column)
	}
	return fmt.Sprintf("%s@%d", t.Type, t.Position.Column)
}
