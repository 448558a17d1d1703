package diag

import "strconv"

// Diagnostic is one compile-time report, formatted the way spec.md's
// error taxonomy requires: "[line N] Error at 'lexeme': message" or
// "[line N] Error at end: message".
type Diagnostic struct {
	Severity Severity
	Line     int
	Lexeme   string
	AtEnd    bool
	Message  string
}

// String renders the diagnostic in the canonical single-line form.
func (d Diagnostic) String() string {
	where := ""
	if d.AtEnd {
		where = " at end"
	} else if d.Lexeme != "" {
		where = " at '" + d.Lexeme + "'"
	}
	return "[line " + strconv.Itoa(d.Line) + "] " + d.Severity.String() + where + ": " + d.Message
}
