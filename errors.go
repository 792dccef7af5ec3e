package lispy

import (
	"errors"
	"fmt"
)

// SyntaxError reports malformed input: unbalanced parentheses, an
// unterminated string, or a special form with the wrong shape. Incomplete is
// set when more input could have completed the expression.
type SyntaxError struct {
	Msg        string
	Line       int
	Incomplete bool
}

func (e *SyntaxError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("syntax error at line %d: %s", e.Line, e.Msg)
	}
	return "syntax error: " + e.Msg
}

type UnresolvedSymbolError struct {
	Name string
}

func (e *UnresolvedSymbolError) Error() string {
	return "unresolved symbol: " + e.Name
}

// ArityError reports a call with the wrong number of arguments. Max < 0
// means the procedure is variadic.
type ArityError struct {
	Name string
	Min  int
	Max  int
	Got  int
}

func (e *ArityError) Error() string {
	var want string
	switch {
	case e.Max < 0:
		want = fmt.Sprintf("at least %d %s", e.Min, plural(e.Min, "argument"))
	case e.Min == e.Max:
		want = fmt.Sprintf("%d %s", e.Min, plural(e.Min, "argument"))
	default:
		want = fmt.Sprintf("%d to %d arguments", e.Min, e.Max)
	}
	name := e.Name
	if name == "" {
		name = "procedure"
	}
	return fmt.Sprintf("arity error: %s expects %s, got %d", name, want, e.Got)
}

// ApplicationError reports an attempt to call something that is not a
// procedure.
type ApplicationError struct {
	Value Value
}

func (e *ApplicationError) Error() string {
	return fmt.Sprintf("application error: %s is not a procedure", Repr(e.Value))
}

// RuntimeError covers failures inside primitives: type mismatches, division
// by zero, exceeding the recursion limit.
type RuntimeError struct {
	Msg string
}

func (e *RuntimeError) Error() string {
	return "runtime error: " + e.Msg
}

func runtimeErrorf(format string, args ...any) error {
	return &RuntimeError{Msg: fmt.Sprintf(format, args...)}
}

func badForm(form List, format string, args ...any) error {
	return &SyntaxError{Msg: fmt.Sprintf("%s in %s", fmt.Sprintf(format, args...), Repr(form))}
}

// IsIncomplete reports whether err is a SyntaxError caused by input ending
// in the middle of an expression.
func IsIncomplete(err error) bool {
	var se *SyntaxError
	return errors.As(err, &se) && se.Incomplete
}

// ErrorKind names the class of an interpreter error, or returns "" for
// errors that did not originate in the interpreter.
func ErrorKind(err error) string {
	var (
		syntaxErr     *SyntaxError
		unresolvedErr *UnresolvedSymbolError
		arityErr      *ArityError
		applyErr      *ApplicationError
		runtimeErr    *RuntimeError
	)
	switch {
	case errors.As(err, &syntaxErr):
		return "SyntaxError"
	case errors.As(err, &unresolvedErr):
		return "UnresolvedSymbolError"
	case errors.As(err, &arityErr):
		return "ArityError"
	case errors.As(err, &applyErr):
		return "ApplicationError"
	case errors.As(err, &runtimeErr):
		return "RuntimeError"
	default:
		return ""
	}
}

// Report renders err the way the prompt loops show it: "Kind: message",
// or just the message for errors that did not come from the interpreter.
func Report(err error) string {
	if kind := ErrorKind(err); kind != "" {
		return kind + ": " + err.Error()
	}
	return err.Error()
}

func plural(n int, word string) string {
	if n == 1 {
		return word
	}
	return word + "s"
}
