package transcript

import "fmt"

// ErrorKind classifies a parse failure.
type ErrorKind string

const (
	KindMalformedDeclaration        ErrorKind = "MALFORMED_DECLARATION"
	KindMissingActingUser           ErrorKind = "MISSING_ACTING_USER"
	KindFaceCountMismatch           ErrorKind = "FACE_COUNT_MISMATCH"
	KindUnexpectedDoubleTermination ErrorKind = "UNEXPECTED_DOUBLE_TERMINATION"

	// KindUnrecognizedLine is never returned; it tags diagnostics for
	// dropped lines.
	KindUnrecognizedLine ErrorKind = "UNRECOGNIZED_LINE"
)

func (k ErrorKind) describe() string {
	switch k {
	case KindMalformedDeclaration:
		return "malformed roll declaration"
	case KindMissingActingUser:
		return "roll declaration without a user and no previous user to inherit"
	case KindFaceCountMismatch:
		return "collected face count does not match declared die count"
	case KindUnexpectedDoubleTermination:
		return "round total while still collecting faces"
	case KindUnrecognizedLine:
		return "unrecognized line"
	default:
		return "parse error"
	}
}

// Error is a fatal parse failure tied to one transcript line.
type Error struct {
	Kind    ErrorKind
	Line    string // trimmed line text
	LineNum int    // 1-based
	Detail  string // optional extra context
}

// Sentinels for errors.Is. They match any *Error of the same kind.
var (
	ErrMalformedDeclaration        = &Error{Kind: KindMalformedDeclaration}
	ErrMissingActingUser           = &Error{Kind: KindMissingActingUser}
	ErrFaceCountMismatch           = &Error{Kind: KindFaceCountMismatch}
	ErrUnexpectedDoubleTermination = &Error{Kind: KindUnexpectedDoubleTermination}
)

// Error implements the error interface.
func (e *Error) Error() string {
	msg := e.Kind.describe()
	if e.Detail != "" {
		msg += " (" + e.Detail + ")"
	}
	if e.LineNum == 0 {
		return msg
	}
	return fmt.Sprintf("%s at line %d: %q", msg, e.LineNum, e.Line)
}

// Is reports whether target is an *Error of the same kind.
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Kind == t.Kind
	}
	return false
}

func newError(kind ErrorKind, line string, lineNum int, detail string) *Error {
	return &Error{
		Kind:    kind,
		Line:    line,
		LineNum: lineNum,
		Detail:  detail,
	}
}
