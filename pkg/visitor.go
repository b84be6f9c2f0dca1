package pl0

// Visitor has one method per concrete node. Adding a node type breaks every
// visitor until it handles the new case.
type Visitor interface {
	VisitProgram(n *Program)
	VisitConstDecl(n *ConstDecl)
	VisitVarDecl(n *VarDecl)

	VisitAssignStmt(n *AssignStmt)
	VisitBeginStmt(n *BeginStmt)
	VisitIfStmt(n *IfStmt)
	VisitWhileStmt(n *WhileStmt)
	VisitReadStmt(n *ReadStmt)
	VisitWriteStmt(n *WriteStmt)
	VisitSkipStmt(n *SkipStmt)

	VisitOddCond(n *OddCond)
	VisitBinaryCond(n *BinaryCond)

	VisitIdentifier(n *Identifier)
	VisitNumberExpr(n *NumberExpr)
	VisitBinaryExpr(n *BinaryExpr)
}

func (n *Program) Accept(v Visitor)   { v.VisitProgram(n) }
func (n *ConstDecl) Accept(v Visitor) { v.VisitConstDecl(n) }
func (n *VarDecl) Accept(v Visitor)   { v.VisitVarDecl(n) }

func (n *AssignStmt) Accept(v Visitor) { v.VisitAssignStmt(n) }
func (n *BeginStmt) Accept(v Visitor)  { v.VisitBeginStmt(n) }
func (n *IfStmt) Accept(v Visitor)     { v.VisitIfStmt(n) }
func (n *WhileStmt) Accept(v Visitor)  { v.VisitWhileStmt(n) }
func (n *ReadStmt) Accept(v Visitor)   { v.VisitReadStmt(n) }
func (n *WriteStmt) Accept(v Visitor)  { v.VisitWriteStmt(n) }
func (n *SkipStmt) Accept(v Visitor)   { v.VisitSkipStmt(n) }

func (n *OddCond) Accept(v Visitor)    { v.VisitOddCond(n) }
func (n *BinaryCond) Accept(v Visitor) { v.VisitBinaryCond(n) }

func (n *Identifier) Accept(v Visitor) { v.VisitIdentifier(n) }
func (n *NumberExpr) Accept(v Visitor) { v.VisitNumberExpr(n) }
func (n *BinaryExpr) Accept(v Visitor) { v.VisitBinaryExpr(n) }

// Walk traverses the tree rooted at n in depth-first order, declarations
// before statements. If fn returns false the children of a node are skipped.
func Walk(n Node, fn func(Node) bool) {
	if n == nil || !fn(n) {
		return
	}

	switch n := n.(type) {
	case *Program:
		for _, d := range n.Consts {
			Walk(d, fn)
		}
		for _, d := range n.Vars {
			Walk(d, fn)
		}
		Walk(n.Body, fn)
	case *AssignStmt:
		Walk(n.Expr, fn)
	case *BeginStmt:
		for _, s := range n.Stmts {
			Walk(s, fn)
		}
	case *IfStmt:
		Walk(n.Cond, fn)
		Walk(n.Then, fn)
		Walk(n.Else, fn)
	case *WhileStmt:
		Walk(n.Cond, fn)
		Walk(n.Body, fn)
	case *WriteStmt:
		Walk(n.Expr, fn)
	case *OddCond:
		Walk(n.Expr, fn)
	case *BinaryCond:
		Walk(n.Op1, fn)
		Walk(n.Op2, fn)
	case *BinaryExpr:
		Walk(n.Op1, fn)
		Walk(n.Op2, fn)
	}
}
