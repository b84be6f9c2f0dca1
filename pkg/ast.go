package pl0

// ----------------------------------------------------------------------------
// Interfaces
//
// Nodes fall into four classes: the program with its declarations, statements,
// conditions and expressions. The marker methods keep the set of
// implementations closed to this package.

// Node is implemented by every AST node.
type Node interface {
	Location() Location
	Accept(v Visitor)
	aNode()
}

type Stmt interface {
	Node
	aStmt()
}

type Cond interface {
	Node
	aCond()
}

type Expr interface {
	Node
	aExpr()
}

type node struct {
	Loc Location
}

func (n *node) Location() Location { return n.Loc }
func (n *node) aNode()             {}

type stmt struct{ node }

func (*stmt) aStmt() {}

type cond struct{ node }

func (*cond) aCond() {}

type expr struct{ node }

func (*expr) aExpr() {}

// ----------------------------------------------------------------------------
// Program and declarations

// Program is the root of every parsed source file. Its location is the
// location of the first constant declaration, else of the first variable
// declaration, else of the body.
type Program struct {
	node
	Consts []*ConstDecl
	Vars   []*VarDecl
	Body   Stmt
}

// ConstDecl binds Name to Value. Its location is that of the 'const' keyword
// that opened the declaration group.
type ConstDecl struct {
	node
	Name  string
	Value int32
}

// VarDecl declares Name. Its location is that of the 'var' keyword that
// opened the declaration group.
type VarDecl struct {
	node
	Name string
}

// ----------------------------------------------------------------------------
// Statements

type AssignStmt struct {
	stmt
	Name string
	Expr Expr
}

// BeginStmt is a compound statement; Stmts is never empty.
type BeginStmt struct {
	stmt
	Stmts []Stmt
}

type IfStmt struct {
	stmt
	Cond Cond
	Then Stmt
	Else Stmt
}

type WhileStmt struct {
	stmt
	Cond Cond
	Body Stmt
}

type ReadStmt struct {
	stmt
	Name string
}

type WriteStmt struct {
	stmt
	Expr Expr
}

type SkipStmt struct {
	stmt
}

// ----------------------------------------------------------------------------
// Conditions

type OddCond struct {
	cond
	Expr Expr
}

type RelOp string

const (
	RelEqual        RelOp = "="
	RelNotEqual     RelOp = "<>"
	RelLess         RelOp = "<"
	RelLessEqual    RelOp = "<="
	RelGreater      RelOp = ">"
	RelGreaterEqual RelOp = ">="
)

var relOps = map[TokenType]RelOp{
	TokenEqual:        RelEqual,
	TokenNotEqual:     RelNotEqual,
	TokenLess:         RelLess,
	TokenLessEqual:    RelLessEqual,
	TokenGreater:      RelGreater,
	TokenGreaterEqual: RelGreaterEqual,
}

type BinaryCond struct {
	cond
	Operation RelOp
	Op1       Expr
	Op2       Expr
}

// ----------------------------------------------------------------------------
// Expressions

type Identifier struct {
	expr
	Name string
}

// NumberExpr is an integer literal. A sign written directly before the
// literal is already folded into Value.
type NumberExpr struct {
	expr
	Value int32
}

type BinaryOp string

const (
	BinaryAddition       BinaryOp = "+"
	BinarySubtraction    BinaryOp = "-"
	BinaryMultiplication BinaryOp = "*"
	BinaryDivision       BinaryOp = "/"
)

// BinaryExpr is always binary; chains of the same precedence nest to the left.
type BinaryExpr struct {
	expr
	Operation BinaryOp
	Op1       Expr
	Op2       Expr
}
