package token

// Keywords maps a reserved identifier spelling to its Kind.
var Keywords = map[string]Kind{
	"and":      And,
	"class":    Class,
	"else":     Else,
	"false":    False,
	"default":  Default,
	"for":      For,
	"fun":      Fun,
	"if":       If,
	"nil":      Nil,
	"or":       Or,
	"print":    Print,
	"return":   Return,
	"super":    Super,
	"this":     This,
	"continue": Continue,
	"true":     True,
	"var":      Var,
	"while":    While,
	"case":     Case,
	"switch":   Switch,
}

// Lookup returns Identifier, or the keyword Kind if ident is reserved.
func Lookup(ident string) Kind {
	if k, ok := Keywords[ident]; ok {
		return k
	}
	return Identifier
}
