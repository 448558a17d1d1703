// Package lexer scans ember source text into a stream of tokens.
package lexer

import (
	"fortio.org/safecast"

	"ember/internal/token"
)

// Lexer is a single-pass byte scanner over one source string.
type Lexer struct {
	src   string
	start uint32
	cur   uint32
	limit uint32
	line  int
}

// New returns a Lexer positioned at the start of src.
func New(src string) *Lexer {
	limit, err := safecast.Conv[uint32](len(src))
	if err != nil {
		// sources this large are not a realistic input for this interpreter
		limit = ^uint32(0)
	}
	return &Lexer{src: src, limit: limit, line: 1}
}

func (lx *Lexer) atEnd() bool { return lx.cur >= lx.limit }

func (lx *Lexer) peek() byte {
	if lx.atEnd() {
		return 0
	}
	return lx.src[lx.cur]
}

func (lx *Lexer) peekNext() byte {
	if lx.cur+1 >= lx.limit {
		return 0
	}
	return lx.src[lx.cur+1]
}

func (lx *Lexer) advance() byte {
	b := lx.src[lx.cur]
	lx.cur++
	return b
}

func (lx *Lexer) match(expected byte) bool {
	if lx.atEnd() || lx.src[lx.cur] != expected {
		return false
	}
	lx.cur++
	return true
}

func (lx *Lexer) make(k token.Kind) token.Token {
	return token.Token{Kind: k, Lexeme: lx.src[lx.start:lx.cur], Line: lx.line}
}

func (lx *Lexer) errorToken(msg string) token.Token {
	return token.Token{Kind: token.Error, Lexeme: msg, Line: lx.line}
}

// Next scans and returns the next significant token, skipping whitespace
// and comments. After EOF it keeps returning an EOF token.
func (lx *Lexer) Next() token.Token {
	lx.skipWhitespace()
	lx.start = lx.cur
	if lx.atEnd() {
		return lx.make(token.EOF)
	}

	c := lx.advance()
	switch {
	case isDigit(c):
		return lx.number()
	case isAlpha(c):
		return lx.identifier()
	}

	switch c {
	case '(':
		return lx.make(token.LeftParen)
	case ')':
		return lx.make(token.RightParen)
	case '{':
		return lx.make(token.LeftBrace)
	case '}':
		return lx.make(token.RightBrace)
	case ';':
		return lx.make(token.Semicolon)
	case ',':
		return lx.make(token.Comma)
	case '.':
		return lx.make(token.Dot)
	case '-':
		return lx.make(token.Minus)
	case '+':
		return lx.make(token.Plus)
	case '/':
		return lx.make(token.Slash)
	case '*':
		return lx.make(token.Star)
	case '%':
		return lx.make(token.Percent)
	case '?':
		return lx.make(token.Question)
	case ':':
		return lx.make(token.Colon)
	case '!':
		if lx.match('=') {
			return lx.make(token.BangEqual)
		}
		return lx.make(token.Bang)
	case '=':
		if lx.match('=') {
			return lx.make(token.EqualEqual)
		}
		return lx.make(token.Equal)
	case '<':
		if lx.match('=') {
			return lx.make(token.LessEqual)
		}
		return lx.make(token.Less)
	case '>':
		if lx.match('=') {
			return lx.make(token.GreaterEqual)
		}
		return lx.make(token.Greater)
	case '"':
		return lx.string()
	}

	return lx.errorToken("Unexpected character.")
}

func (lx *Lexer) skipWhitespace() {
	for {
		switch lx.peek() {
		case ' ', '\r', '\t':
			lx.cur++
		case '\n':
			lx.line++
			lx.cur++
		case '/':
			switch lx.peekNext() {
			case '/':
				for lx.peek() != '\n' && !lx.atEnd() {
					lx.cur++
				}
			case '*':
				lx.skipBlockComment()
			default:
				return
			}
		default:
			return
		}
	}
}

func (lx *Lexer) skipBlockComment() {
	lx.cur += 2 // consume "/*"
	depth := 1
	for depth > 0 && !lx.atEnd() {
		if lx.peek() == '\n' {
			lx.line++
		}
		if lx.peek() == '/' && lx.peekNext() == '*' {
			depth++
			lx.cur += 2
			continue
		}
		if lx.peek() == '*' && lx.peekNext() == '/' {
			depth--
			lx.cur += 2
			continue
		}
		lx.cur++
	}
}

func (lx *Lexer) string() token.Token {
	for lx.peek() != '"' && !lx.atEnd() {
		if lx.peek() == '\n' {
			lx.line++
		}
		if lx.peek() == '\\' && lx.peekNext() == '"' {
			lx.cur += 2
			continue
		}
		lx.cur++
	}
	if lx.atEnd() {
		return lx.errorToken("Unterminated string.")
	}
	lx.cur++ // closing quote
	return lx.make(token.String)
}

func (lx *Lexer) number() token.Token {
	for isDigit(lx.peek()) {
		lx.cur++
	}
	if lx.peek() == '.' && isDigit(lx.peekNext()) {
		lx.cur++
		for isDigit(lx.peek()) {
			lx.cur++
		}
	}
	return lx.make(token.Number)
}

func (lx *Lexer) identifier() token.Token {
	for isAlpha(lx.peek()) || isDigit(lx.peek()) {
		lx.cur++
	}
	text := lx.src[lx.start:lx.cur]
	return lx.make(token.Lookup(text))
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func isAlpha(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}
