package main

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"

	pl0 "go.pl0.dev/pkg"
)

type renderer struct {
	w     io.Writer
	label lipgloss.Style
	loc   lipgloss.Style
	note  lipgloss.Style
}

func newRenderer(w io.Writer, color bool) *renderer {
	r := &renderer{
		w:     w,
		label: lipgloss.NewStyle(),
		loc:   lipgloss.NewStyle(),
		note:  lipgloss.NewStyle(),
	}

	if color {
		r.label = r.label.Bold(true).Foreground(lipgloss.Color("9"))
		r.loc = r.loc.Bold(true)
		r.note = r.note.Foreground(lipgloss.Color("8"))
	}

	return r
}

// diagnostic prints err as "file:line:col: error: message", followed by a
// note for errors that refer to a second location.
func (r *renderer) diagnostic(err pl0.CompileError) {
	fmt.Fprintf(r.w, "%s: %s %s\n", r.loc.Render(err.Location().String()), r.label.Render("error:"), err.Message())

	switch e := err.(type) {
	case *pl0.DuplicateDeclError:
		if e.PrevLoc.IsValid() {
			r.notef("%s: previous declaration of %q is here", e.PrevLoc, e.Name)
		}
	case *pl0.ConstantAssignError:
		if e.DeclLoc.IsValid() {
			r.notef("%s: %q is declared as a constant here", e.DeclLoc, e.Name)
		}
	case *pl0.SyntaxError:
		if e.Found.Typ == pl0.TokenEOF && e.Expected.Contains(pl0.TokenPeriod) {
			r.notef("a program must end with '.'")
		}
	}
}

func (r *renderer) notef(format string, args ...interface{}) {
	fmt.Fprintln(r.w, r.note.Render("  note: "+fmt.Sprintf(format, args...)))
}

// failure prints an error returned by the compiler, which is either a
// fatal diagnostic or an I/O problem.
func (r *renderer) failure(err error) {
	if ce, ok := err.(pl0.CompileError); ok {
		r.diagnostic(ce)
		return
	}

	fmt.Fprintf(r.w, "%s %v\n", r.label.Render("error:"), err)
}
