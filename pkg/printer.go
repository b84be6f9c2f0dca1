package pl0

import (
	"fmt"
	"io"
	"strings"
)

// Unparse writes prog back out as source text. Declarations that were
// introduced by the same keyword are printed as one group, and expressions
// get parentheses only where precedence or associativity requires them.
func Unparse(w io.Writer, prog *Program) error {
	u := &unparser{}
	prog.Accept(u)

	_, err := io.WriteString(w, u.buf.String())
	return err
}

type unparser struct {
	buf    strings.Builder
	indent int
}

func (u *unparser) printf(format string, args ...interface{}) {
	fmt.Fprintf(&u.buf, format, args...)
}

func (u *unparser) newline() {
	u.buf.WriteByte('\n')
	u.buf.WriteString(strings.Repeat("  ", u.indent))
}

func (u *unparser) VisitProgram(n *Program) {
	for i, d := range n.Consts {
		if i == 0 || d.Loc != n.Consts[i-1].Loc {
			if i > 0 {
				u.printf(";\n")
			}
			u.printf("const ")
		} else {
			u.printf(", ")
		}
		d.Accept(u)
	}
	if len(n.Consts) > 0 {
		u.printf(";\n")
	}

	for i, d := range n.Vars {
		if i == 0 || d.Loc != n.Vars[i-1].Loc {
			if i > 0 {
				u.printf(";\n")
			}
			u.printf("var ")
		} else {
			u.printf(", ")
		}
		d.Accept(u)
	}
	if len(n.Vars) > 0 {
		u.printf(";\n")
	}

	n.Body.Accept(u)
	u.printf(".\n")
}

func (u *unparser) VisitConstDecl(n *ConstDecl) {
	u.printf("%s = %d", n.Name, n.Value)
}

func (u *unparser) VisitVarDecl(n *VarDecl) {
	u.printf("%s", n.Name)
}

func (u *unparser) VisitAssignStmt(n *AssignStmt) {
	u.printf("%s := ", n.Name)
	n.Expr.Accept(u)
}

func (u *unparser) VisitBeginStmt(n *BeginStmt) {
	u.printf("begin")
	u.indent++
	for i, s := range n.Stmts {
		if i > 0 {
			u.printf(";")
		}
		u.newline()
		s.Accept(u)
	}
	u.indent--
	u.newline()
	u.printf("end")
}

func (u *unparser) VisitIfStmt(n *IfStmt) {
	u.printf("if ")
	n.Cond.Accept(u)
	u.printf(" then")
	u.nested(n.Then)
	u.newline()
	u.printf("else")
	u.nested(n.Else)
}

func (u *unparser) VisitWhileStmt(n *WhileStmt) {
	u.printf("while ")
	n.Cond.Accept(u)
	u.printf(" do")
	u.nested(n.Body)
}

func (u *unparser) nested(s Stmt) {
	u.indent++
	u.newline()
	s.Accept(u)
	u.indent--
}

func (u *unparser) VisitReadStmt(n *ReadStmt) {
	u.printf("read %s", n.Name)
}

func (u *unparser) VisitWriteStmt(n *WriteStmt) {
	u.printf("write ")
	n.Expr.Accept(u)
}

func (u *unparser) VisitSkipStmt(*SkipStmt) {
	u.printf("skip")
}

func (u *unparser) VisitOddCond(n *OddCond) {
	u.printf("odd ")
	n.Expr.Accept(u)
}

func (u *unparser) VisitBinaryCond(n *BinaryCond) {
	n.Op1.Accept(u)
	u.printf(" %s ", n.Operation)
	n.Op2.Accept(u)
}

func (u *unparser) VisitIdentifier(n *Identifier) {
	u.printf("%s", n.Name)
}

func (u *unparser) VisitNumberExpr(n *NumberExpr) {
	u.printf("%d", n.Value)
}

func (u *unparser) VisitBinaryExpr(n *BinaryExpr) {
	u.operand(n.Op1, precedence(n.Operation), false)
	u.printf(" %s ", n.Operation)
	u.operand(n.Op2, precedence(n.Operation), true)
}

// operand parenthesises e when it binds looser than its parent, or equally
// tight on the right-hand side where the grammar would re-associate it.
func (u *unparser) operand(e Expr, parent int, right bool) {
	b, ok := e.(*BinaryExpr)
	if !ok {
		e.Accept(u)
		return
	}

	prec := precedence(b.Operation)
	if prec < parent || (right && prec == parent) {
		u.printf("(")
		e.Accept(u)
		u.printf(")")
		return
	}

	e.Accept(u)
}

func precedence(op BinaryOp) int {
	switch op {
	case BinaryMultiplication, BinaryDivision:
		return 2
	default:
		return 1
	}
}

var _ Visitor = (*unparser)(nil)
