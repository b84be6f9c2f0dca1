package pl0

import (
	"io"
	"log/slog"
)

var (
	stmtStarters = TokenSet{
		TokenIdentifier, TokenBegin, TokenIf, TokenWhile, TokenRead, TokenWrite, TokenSkip,
	}
	factorStarters = TokenSet{
		TokenIdentifier, TokenOpenParentheses, TokenPlus, TokenMinus, TokenNumber,
	}
	relOpTokens = TokenSet{
		TokenEqual, TokenNotEqual, TokenLess, TokenLessEqual, TokenGreater, TokenGreaterEqual,
	}
	addOpTokens  = TokenSet{TokenPlus, TokenMinus}
	multOpTokens = TokenSet{TokenMulti, TokenDiv}
)

var binaryOps = map[TokenType]BinaryOp{
	TokenPlus:  BinaryAddition,
	TokenMinus: BinarySubtraction,
	TokenMulti: BinaryMultiplication,
	TokenDiv:   BinaryDivision,
}

// bailout carries the first syntax error up to ParseProgram.
type bailout struct {
	err CompileError
}

type ParserOption func(*Parser)

func WithParserLogger(logger *slog.Logger) ParserOption {
	return func(p *Parser) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// Parser is a recursive-descent parser with a single token of lookahead.
// Each production has one method which consumes exactly the tokens it spans.
type Parser struct {
	filename  string
	tokenizer Tokenizer
	tok       Token // lookahead
	logger    *slog.Logger
}

func NewParser(tokenizer Tokenizer, opts ...ParserOption) *Parser {
	p := &Parser{
		tokenizer: tokenizer,
		filename:  tokenizer.Filename(),
		logger:    discardLogger(),
	}

	for _, opt := range opts {
		opt(p)
	}

	return p
}

// Parse reads a whole program from reader.
func Parse(filename string, reader io.Reader, opts ...ParserOption) (*Program, error) {
	return NewParser(NewLexer(filename, reader), opts...).ParseProgram()
}

func (p *Parser) GetFilename() string {
	return p.filename
}

// ParseProgram parses a complete program. On the first mismatch it returns
// a *SyntaxError (or *LexicalError) and no AST.
func (p *Parser) ParseProgram() (prog *Program, err error) {
	defer func() {
		if r := recover(); r != nil {
			b, ok := r.(bailout)
			if !ok {
				panic(r)
			}

			p.logger.Debug("parse aborted", "file", p.filename, "error", b.err)
			prog, err = nil, b.err
		}
	}()

	p.tok = p.tokenizer.Next()
	prog = p.program()

	p.logger.Debug("parsed program", "file", p.filename,
		"consts", len(prog.Consts), "vars", len(prog.Vars))

	return prog, nil
}

// ----------------------------------------------------------------------------
// Token navigation

func (p *Parser) check(typ TokenType) bool {
	return p.tok.Typ == typ
}

// expect consumes the lookahead if it has type typ and fails the parse
// otherwise.
func (p *Parser) expect(typ TokenType) Token {
	if p.tok.Typ != typ {
		p.fail(TokenSet{typ})
	}

	return p.advance()
}

func (p *Parser) expectOneOf(set TokenSet) Token {
	if !set.Contains(p.tok.Typ) {
		p.fail(set)
	}

	return p.advance()
}

// advance must only be called by expect and expectOneOf.
func (p *Parser) advance() Token {
	tok := p.tok
	if tok.Typ != TokenEOF {
		p.tok = p.tokenizer.Next()
	}

	return tok
}

func (p *Parser) fail(expected TokenSet) {
	if p.tok.Typ == TokenError {
		panic(bailout{&LexicalError{Loc: p.tok.Loc, Msg: p.tok.Value}})
	}

	panic(bailout{&SyntaxError{
		Loc:      p.tok.Loc,
		Expected: expected,
		Found:    p.tok,
	}})
}

func (p *Parser) trace(production string) {
	p.logger.Debug("enter", "production", production, "token", p.tok.Typ, "loc", p.tok.Loc)
}

// ----------------------------------------------------------------------------
// Program and declarations

func (p *Parser) program() *Program {
	prog := p.block()
	p.expect(TokenPeriod)
	p.expect(TokenEOF)

	return prog
}

func (p *Parser) block() *Program {
	p.trace("block")

	consts := p.constDecls()
	vars := p.varDecls()
	body := p.stmt()

	loc := body.Location()
	if len(vars) > 0 {
		loc = vars[0].Loc
	}
	if len(consts) > 0 {
		loc = consts[0].Loc
	}

	return &Program{
		node:   node{loc},
		Consts: consts,
		Vars:   vars,
		Body:   body,
	}
}

func (p *Parser) constDecls() []*ConstDecl {
	var decls []*ConstDecl
	for p.check(TokenConst) {
		decls = append(decls, p.constDecl()...)
	}

	return decls
}

func (p *Parser) constDecl() []*ConstDecl {
	kw := p.expect(TokenConst)

	decls := []*ConstDecl{p.constDef(kw.Loc)}
	for p.check(TokenComma) {
		p.expect(TokenComma)
		decls = append(decls, p.constDef(kw.Loc))
	}

	p.expect(TokenSemicolon)

	return decls
}

func (p *Parser) constDef(loc Location) *ConstDecl {
	name := p.expect(TokenIdentifier)
	p.expect(TokenEqual)
	num := p.expect(TokenNumber)

	return &ConstDecl{
		node:  node{loc},
		Name:  name.Value,
		Value: num.Num,
	}
}

func (p *Parser) varDecls() []*VarDecl {
	var decls []*VarDecl
	for p.check(TokenVar) {
		decls = append(decls, p.varDecl()...)
	}

	return decls
}

func (p *Parser) varDecl() []*VarDecl {
	kw := p.expect(TokenVar)

	decls := []*VarDecl{p.varIdent(kw.Loc)}
	for p.check(TokenComma) {
		p.expect(TokenComma)
		decls = append(decls, p.varIdent(kw.Loc))
	}

	p.expect(TokenSemicolon)

	return decls
}

func (p *Parser) varIdent(loc Location) *VarDecl {
	name := p.expect(TokenIdentifier)

	return &VarDecl{
		node: node{loc},
		Name: name.Value,
	}
}

// ----------------------------------------------------------------------------
// Statements

func (p *Parser) stmt() Stmt {
	p.trace("stmt")

	switch p.tok.Typ {
	case TokenIdentifier:
		return p.assignStmt()
	case TokenBegin:
		return p.beginStmt()
	case TokenIf:
		return p.ifStmt()
	case TokenWhile:
		return p.whileStmt()
	case TokenRead:
		return p.readStmt()
	case TokenWrite:
		return p.writeStmt()
	case TokenSkip:
		return p.skipStmt()
	}

	p.fail(stmtStarters)
	return nil // Unreachable
}

func (p *Parser) assignStmt() *AssignStmt {
	name := p.expect(TokenIdentifier)
	p.expect(TokenBecomes)

	return &AssignStmt{
		stmt: stmt{node{name.Loc}},
		Name: name.Value,
		Expr: p.expr(),
	}
}

func (p *Parser) beginStmt() *BeginStmt {
	kw := p.expect(TokenBegin)

	stmts := []Stmt{p.stmt()}
	for p.check(TokenSemicolon) {
		p.expect(TokenSemicolon)
		stmts = append(stmts, p.stmt())
	}

	p.expect(TokenEnd)

	return &BeginStmt{
		stmt:  stmt{node{kw.Loc}},
		Stmts: stmts,
	}
}

func (p *Parser) ifStmt() *IfStmt {
	kw := p.expect(TokenIf)
	c := p.cond()
	p.expect(TokenThen)
	then := p.stmt()
	p.expect(TokenElse)
	els := p.stmt()

	return &IfStmt{
		stmt: stmt{node{kw.Loc}},
		Cond: c,
		Then: then,
		Else: els,
	}
}

func (p *Parser) whileStmt() *WhileStmt {
	kw := p.expect(TokenWhile)
	c := p.cond()
	p.expect(TokenDo)
	body := p.stmt()

	return &WhileStmt{
		stmt: stmt{node{kw.Loc}},
		Cond: c,
		Body: body,
	}
}

func (p *Parser) readStmt() *ReadStmt {
	kw := p.expect(TokenRead)
	name := p.expect(TokenIdentifier)

	return &ReadStmt{
		stmt: stmt{node{kw.Loc}},
		Name: name.Value,
	}
}

func (p *Parser) writeStmt() *WriteStmt {
	kw := p.expect(TokenWrite)

	return &WriteStmt{
		stmt: stmt{node{kw.Loc}},
		Expr: p.expr(),
	}
}

func (p *Parser) skipStmt() *SkipStmt {
	kw := p.expect(TokenSkip)

	return &SkipStmt{stmt{node{kw.Loc}}}
}

// ----------------------------------------------------------------------------
// Conditions

func (p *Parser) cond() Cond {
	if p.check(TokenOdd) {
		kw := p.expect(TokenOdd)

		return &OddCond{
			cond: cond{node{kw.Loc}},
			Expr: p.expr(),
		}
	}

	lhs := p.expr()
	op := p.expectOneOf(relOpTokens)
	rhs := p.expr()

	return &BinaryCond{
		cond:      cond{node{lhs.Location()}},
		Operation: relOps[op.Typ],
		Op1:       lhs,
		Op2:       rhs,
	}
}

// ----------------------------------------------------------------------------
// Expressions

// expr parses Term {('+' | '-') Term}. The loop nests the tree to the left,
// so a - b - c is (a - b) - c.
func (p *Parser) expr() Expr {
	lhs := p.term()

	for p.check(TokenPlus) || p.check(TokenMinus) {
		op := p.expectOneOf(addOpTokens)
		rhs := p.term()
		lhs = &BinaryExpr{
			expr:      expr{node{lhs.Location()}},
			Operation: binaryOps[op.Typ],
			Op1:       lhs,
			Op2:       rhs,
		}
	}

	return lhs
}

func (p *Parser) term() Expr {
	lhs := p.factor()

	for p.check(TokenMulti) || p.check(TokenDiv) {
		op := p.expectOneOf(multOpTokens)
		rhs := p.factor()
		lhs = &BinaryExpr{
			expr:      expr{node{lhs.Location()}},
			Operation: binaryOps[op.Typ],
			Op1:       lhs,
			Op2:       rhs,
		}
	}

	return lhs
}

func (p *Parser) factor() Expr {
	switch p.tok.Typ {
	case TokenIdentifier:
		return p.identifier()
	case TokenOpenParentheses:
		return p.parenthesisedExpression()
	case TokenPlus, TokenMinus, TokenNumber:
		return p.signedNumber()
	}

	p.fail(factorStarters)
	return nil // Unreachable
}

func (p *Parser) identifier() *Identifier {
	tok := p.expect(TokenIdentifier)

	return &Identifier{
		expr: expr{node{tok.Loc}},
		Name: tok.Value,
	}
}

func (p *Parser) parenthesisedExpression() Expr {
	p.expect(TokenOpenParentheses)
	e := p.expr()
	p.expect(TokenCloseParentheses)

	return e
}

// signedNumber folds an optional leading sign into the literal's value.
func (p *Parser) signedNumber() *NumberExpr {
	loc := p.tok.Loc

	negative := false
	if p.check(TokenPlus) || p.check(TokenMinus) {
		negative = p.expectOneOf(addOpTokens).Typ == TokenMinus
	}

	num := p.expect(TokenNumber)
	val := num.Num
	if negative {
		val = -val
	}

	return &NumberExpr{
		expr:  expr{node{loc}},
		Value: val,
	}
}
