package pl0

import "log/slog"

type CheckerOption func(*ScopeChecker)

// WithConstantAssignCheck makes the checker reject constants used as the
// target of an assignment or a read statement. It is off by default.
func WithConstantAssignCheck(enabled bool) CheckerOption {
	return func(c *ScopeChecker) {
		c.checkConstAssign = enabled
	}
}

func WithCheckerLogger(logger *slog.Logger) CheckerOption {
	return func(c *ScopeChecker) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// ScopeChecker declares every constant and variable of a program into a
// Scope and reports duplicate declarations and uses of undeclared
// identifiers. Errors are reported to the Diagnostics sink and the walk
// always covers the whole tree.
type ScopeChecker struct {
	scope  Scope
	diag   *Diagnostics
	logger *slog.Logger

	checkConstAssign bool
}

func NewScopeChecker(scope Scope, diag *Diagnostics, opts ...CheckerOption) *ScopeChecker {
	c := &ScopeChecker{
		scope:  scope,
		diag:   diag,
		logger: discardLogger(),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// CheckProgram checks prog against a fresh symbol table. The returned table
// holds every successful declaration; the Diagnostics hold every error.
func CheckProgram(prog *Program, opts ...CheckerOption) (*SymbolTable, *Diagnostics) {
	table := NewSymbolTable()
	diag := NewDiagnostics(nil)

	NewScopeChecker(table, diag, opts...).CheckProgram(prog)

	return table, diag
}

// CheckProgram walks prog once, declarations first. The AST is not modified.
func (c *ScopeChecker) CheckProgram(prog *Program) {
	before := c.diag.Len()
	prog.Accept(c)

	c.logger.Debug("scope check finished",
		"declarations", c.scope.Size(), "errors", c.diag.Len()-before)
}

func (c *ScopeChecker) declare(name string, kind IdentKind, loc Location) {
	if prev := c.scope.Lookup(name); prev != nil {
		c.diag.Report(&DuplicateDeclError{
			Loc:      loc,
			Name:     name,
			Kind:     kind,
			PrevKind: prev.Kind,
			PrevLoc:  prev.Loc,
		})

		return
	}

	offset := c.scope.Size()
	if err := c.scope.Insert(name, &IdentAttrs{Loc: loc, Kind: kind, Offset: offset}); err != nil {
		c.diag.Report(&ScopeFullError{
			Loc:  loc,
			Name: name,
			Max:  c.scope.Size(),
		})

		return
	}

	c.logger.Debug("declared", "name", name, "kind", kind, "offset", offset)
}

func (c *ScopeChecker) lookup(name string, loc Location) *IdentAttrs {
	attrs := c.scope.Lookup(name)
	if attrs == nil {
		c.diag.Report(&UndefinedError{
			Loc:  loc,
			Name: name,
		})
	}

	return attrs
}

// target looks up the identifier written by an assignment or read.
func (c *ScopeChecker) target(name string, loc Location, stmt string) {
	attrs := c.lookup(name, loc)
	if attrs == nil || !c.checkConstAssign || attrs.Kind != KindConstant {
		return
	}

	c.diag.Report(&ConstantAssignError{
		Loc:     loc,
		Name:    name,
		Stmt:    stmt,
		DeclLoc: attrs.Loc,
	})
}

func (c *ScopeChecker) VisitProgram(n *Program) {
	for _, d := range n.Consts {
		d.Accept(c)
	}

	for _, d := range n.Vars {
		d.Accept(c)
	}

	n.Body.Accept(c)
}

func (c *ScopeChecker) VisitConstDecl(n *ConstDecl) {
	c.declare(n.Name, KindConstant, n.Loc)
}

func (c *ScopeChecker) VisitVarDecl(n *VarDecl) {
	c.declare(n.Name, KindVariable, n.Loc)
}

func (c *ScopeChecker) VisitAssignStmt(n *AssignStmt) {
	c.target(n.Name, n.Loc, "assignment")
	n.Expr.Accept(c)
}

func (c *ScopeChecker) VisitBeginStmt(n *BeginStmt) {
	for _, s := range n.Stmts {
		s.Accept(c)
	}
}

// VisitIfStmt checks both branches; this is a static pass, not an execution.
func (c *ScopeChecker) VisitIfStmt(n *IfStmt) {
	n.Cond.Accept(c)
	n.Then.Accept(c)
	n.Else.Accept(c)
}

func (c *ScopeChecker) VisitWhileStmt(n *WhileStmt) {
	n.Cond.Accept(c)
	n.Body.Accept(c)
}

func (c *ScopeChecker) VisitReadStmt(n *ReadStmt) {
	c.target(n.Name, n.Loc, "read")
}

func (c *ScopeChecker) VisitWriteStmt(n *WriteStmt) {
	n.Expr.Accept(c)
}

func (c *ScopeChecker) VisitSkipStmt(*SkipStmt) {}

func (c *ScopeChecker) VisitOddCond(n *OddCond) {
	n.Expr.Accept(c)
}

func (c *ScopeChecker) VisitBinaryCond(n *BinaryCond) {
	n.Op1.Accept(c)
	n.Op2.Accept(c)
}

func (c *ScopeChecker) VisitIdentifier(n *Identifier) {
	c.lookup(n.Name, n.Loc)
}

func (c *ScopeChecker) VisitNumberExpr(*NumberExpr) {}

func (c *ScopeChecker) VisitBinaryExpr(n *BinaryExpr) {
	n.Op1.Accept(c)
	n.Op2.Accept(c)
}

var _ Visitor = (*ScopeChecker)(nil)
