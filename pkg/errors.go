package pl0

import (
	"errors"
	"fmt"
)

// CompileError is a diagnostic tied to a source location.
type CompileError interface {
	error
	Location() Location
	Message() string // description without the location prefix
}

// SyntaxError is fatal: the parser stops at the first one.
type SyntaxError struct {
	Loc      Location
	Expected TokenSet
	Found    Token
}

func (e *SyntaxError) Error() string {
	return e.Loc.String() + ": " + e.Message()
}

func (e *SyntaxError) Message() string {
	return fmt.Sprintf("syntax error: expected %s but found %s", e.Expected, e.Found)
}

func (e *SyntaxError) Location() Location { return e.Loc }

// LexicalError reports a malformed lexeme handed to the parser by the
// token source. It is fatal in the same way as a SyntaxError.
type LexicalError struct {
	Loc Location
	Msg string
}

func (e *LexicalError) Error() string {
	return e.Loc.String() + ": " + e.Message()
}

func (e *LexicalError) Message() string {
	return fmt.Sprintf("lexical error: %s", e.Msg)
}

func (e *LexicalError) Location() Location { return e.Loc }

type DuplicateDeclError struct {
	Loc      Location
	Name     string
	Kind     IdentKind
	PrevKind IdentKind
	PrevLoc  Location
}

func (e *DuplicateDeclError) Error() string {
	return e.Loc.String() + ": " + e.Message()
}

func (e *DuplicateDeclError) Message() string {
	return fmt.Sprintf("%s %q is already declared as a %s", e.Kind, e.Name, e.PrevKind)
}

func (e *DuplicateDeclError) Location() Location { return e.Loc }

type UndefinedError struct {
	Loc  Location
	Name string
}

func (e *UndefinedError) Error() string {
	return e.Loc.String() + ": " + e.Message()
}

func (e *UndefinedError) Message() string {
	return fmt.Sprintf("identifier %q is not declared", e.Name)
}

func (e *UndefinedError) Location() Location { return e.Loc }

type ScopeFullError struct {
	Loc  Location
	Name string
	Max  uint
}

func (e *ScopeFullError) Error() string {
	return e.Loc.String() + ": " + e.Message()
}

func (e *ScopeFullError) Message() string {
	return fmt.Sprintf("cannot declare %q: scope is full (%d declarations)", e.Name, e.Max)
}

func (e *ScopeFullError) Location() Location { return e.Loc }

func (e *ScopeFullError) Unwrap() error { return ErrScopeFull }

// ConstantAssignError is only reported when the checker runs with
// WithConstantAssignCheck.
type ConstantAssignError struct {
	Loc     Location
	Name    string
	Stmt    string // "assignment" or "read"
	DeclLoc Location
}

func (e *ConstantAssignError) Error() string {
	return e.Loc.String() + ": " + e.Message()
}

func (e *ConstantAssignError) Message() string {
	return fmt.Sprintf("constant %q used as %s target", e.Name, e.Stmt)
}

func (e *ConstantAssignError) Location() Location { return e.Loc }

// ErrorHandler is invoked once for every reported diagnostic.
type ErrorHandler func(err CompileError)

// Diagnostics collects semantic errors without interrupting the pass that
// reports them.
type Diagnostics struct {
	errs    []CompileError
	handler ErrorHandler
}

func NewDiagnostics(handler ErrorHandler) *Diagnostics {
	return &Diagnostics{handler: handler}
}

func (d *Diagnostics) Report(err CompileError) {
	d.errs = append(d.errs, err)

	if d.handler != nil {
		d.handler(err)
	}
}

func (d *Diagnostics) Len() int {
	return len(d.errs)
}

func (d *Diagnostics) HasErrors() bool {
	return len(d.errs) != 0
}

func (d *Diagnostics) Errors() []CompileError {
	return d.errs
}

// Err joins every reported error, or returns nil when nothing was reported.
func (d *Diagnostics) Err() error {
	if len(d.errs) == 0 {
		return nil
	}

	errs := make([]error, len(d.errs))
	for i, err := range d.errs {
		errs[i] = err
	}

	return errors.Join(errs...)
}
