// Package token defines the lexical token kinds produced by the scanner
// and consumed by the compiler.
package token

// Kind identifies the lexical category of a Token.
type Kind uint8

const (
	Error Kind = iota
	EOF

	// Single-character punctuation.
	LeftParen
	RightParen
	LeftBrace
	RightBrace
	Comma
	Dot
	Minus
	Plus
	Semicolon
	Slash
	Star
	Percent
	Question
	Colon

	// One or two character operators.
	Bang
	BangEqual
	Equal
	EqualEqual
	Greater
	GreaterEqual
	Less
	LessEqual

	// Literals.
	Identifier
	String
	Number

	// Keywords.
	And
	Class
	Else
	False
	Default
	For
	Fun
	If
	Nil
	Or
	Print
	Return
	Super
	This
	Continue
	True
	Var
	While
	Case
	Switch
)

var names = map[Kind]string{
	Error: "ERROR", EOF: "EOF",
	LeftParen: "(", RightParen: ")", LeftBrace: "{", RightBrace: "}",
	Comma: ",", Dot: ".", Minus: "-", Plus: "+", Semicolon: ";",
	Slash: "/", Star: "*", Percent: "%", Question: "?", Colon: ":",
	Bang: "!", BangEqual: "!=", Equal: "=", EqualEqual: "==",
	Greater: ">", GreaterEqual: ">=", Less: "<", LessEqual: "<=",
	Identifier: "IDENTIFIER", String: "STRING", Number: "NUMBER",
	And: "and", Class: "class", Else: "else", False: "false",
	Default: "default", For: "for", Fun: "fun", If: "if", Nil: "nil",
	Or: "or", Print: "print", Return: "return", Super: "super",
	This: "this", Continue: "continue", True: "true", Var: "var",
	While: "while", Case: "case", Switch: "switch",
}

func (k Kind) String() string {
	if s, ok := names[k]; ok {
		return s
	}
	return "UNKNOWN"
}
