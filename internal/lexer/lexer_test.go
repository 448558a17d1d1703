package lexer_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"ember/internal/lexer"
	"ember/internal/token"
)

func scanAll(src string) []token.Token {
	lx := lexer.New(src)
	var toks []token.Token
	for {
		tok := lx.Next()
		toks = append(toks, tok)
		if tok.Kind == token.EOF {
			return toks
		}
	}
}

func kinds(toks []token.Token) []token.Kind {
	out := make([]token.Kind, len(toks))
	for i, t := range toks {
		out[i] = t.Kind
	}
	return out
}

func TestScanPunctuationAndOperators(t *testing.T) {
	toks := scanAll("(){};,.+-*/% ?: == != <= >= < > =")
	require.Equal(t, []token.Kind{
		token.LeftParen, token.RightParen, token.LeftBrace, token.RightBrace,
		token.Semicolon, token.Comma, token.Dot, token.Plus, token.Minus,
		token.Star, token.Slash, token.Percent, token.Question, token.Colon,
		token.EqualEqual, token.BangEqual, token.LessEqual, token.GreaterEqual,
		token.Less, token.Greater, token.Equal, token.EOF,
	}, kinds(toks))
}

func TestScanKeywordsAndIdentifiers(t *testing.T) {
	toks := scanAll("var x = foo")
	require.Equal(t, token.Var, toks[0].Kind)
	require.Equal(t, token.Identifier, toks[1].Kind)
	require.Equal(t, "x", toks[1].Lexeme)
	require.Equal(t, token.Equal, toks[2].Kind)
	require.Equal(t, token.Identifier, toks[3].Kind)
	require.Equal(t, "foo", toks[3].Lexeme)
}

func TestScanNumberLiterals(t *testing.T) {
	toks := scanAll("123 4.5 6")
	require.Equal(t, "123", toks[0].Lexeme)
	require.Equal(t, "4.5", toks[1].Lexeme)
	require.Equal(t, "6", toks[2].Lexeme)
	for _, tk := range toks[:3] {
		require.Equal(t, token.Number, tk.Kind)
	}
}

func TestScanStringLiteral(t *testing.T) {
	toks := scanAll(`"hello world"`)
	require.Equal(t, token.String, toks[0].Kind)
	require.Equal(t, `"hello world"`, toks[0].Lexeme)
}

func TestScanUnterminatedStringIsErrorToken(t *testing.T) {
	toks := scanAll(`"no closing quote`)
	require.Equal(t, token.Error, toks[0].Kind)
	require.Equal(t, "Unterminated string.", toks[0].Lexeme)
}

func TestScanSkipsLineAndBlockComments(t *testing.T) {
	toks := scanAll("1 // comment\n2 /* block\ncomment */ 3")
	require.Equal(t, []token.Kind{token.Number, token.Number, token.Number, token.EOF}, kinds(toks))
	require.Equal(t, "1", toks[0].Lexeme)
	require.Equal(t, "2", toks[1].Lexeme)
	require.Equal(t, "3", toks[2].Lexeme)
}

func TestScanNestedBlockComments(t *testing.T) {
	toks := scanAll("/* outer /* inner */ still-comment */ 1")
	require.Len(t, toks, 2)
	require.Equal(t, token.Number, toks[0].Kind)
}

func TestLineTrackingAcrossNewlines(t *testing.T) {
	toks := scanAll("1\n2\n\n3")
	require.Equal(t, 1, toks[0].Line)
	require.Equal(t, 2, toks[1].Line)
	require.Equal(t, 4, toks[2].Line)
}

func TestUnexpectedCharacterProducesErrorToken(t *testing.T) {
	toks := scanAll("@")
	require.Equal(t, token.Error, toks[0].Kind)
}

func TestEOFRepeatsAfterEnd(t *testing.T) {
	lx := lexer.New("")
	require.Equal(t, token.EOF, lx.Next().Kind)
	require.Equal(t, token.EOF, lx.Next().Kind)
}
