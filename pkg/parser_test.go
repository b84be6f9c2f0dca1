package pl0

import (
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.pl0.dev/internal/test"
)

type BufferedTokenizerMocker struct {
	buf []Token
	pos int
}

func NewBufferedTokenizerMocker(toks []Token) *BufferedTokenizerMocker {
	return &BufferedTokenizerMocker{
		buf: toks,
		pos: 0,
	}
}

func (b *BufferedTokenizerMocker) Next() Token {
	if len(b.buf) <= b.pos {
		return Token{Typ: TokenEOF}
	}

	tok := b.buf[b.pos]
	b.pos++

	return tok
}

func (b *BufferedTokenizerMocker) Done() bool {
	return len(b.buf) <= b.pos
}

func (b *BufferedTokenizerMocker) Filename() string {
	return "testing"
}

func (b *BufferedTokenizerMocker) Close() error {
	return nil
}

func kw(typ TokenType) Token {
	return Token{Typ: typ, Value: typ.String()}
}

func id(name string) Token {
	return Token{Typ: TokenIdentifier, Value: name}
}

func num(n int32) Token {
	return Token{Typ: TokenNumber, Value: strconv.Itoa(int(n)), Num: n}
}

func ident(name string) *Identifier {
	return &Identifier{Name: name}
}

func binary(op BinaryOp, lhs, rhs Expr) *BinaryExpr {
	return &BinaryExpr{Operation: op, Op1: lhs, Op2: rhs}
}

// parseExpr parses the tokens as the operand of a write statement.
func parseExpr(t *testing.T, toks []Token) Expr {
	t.Helper()

	data := append([]Token{kw(TokenWrite)}, toks...)
	data = append(data, kw(TokenPeriod))

	prog, err := NewParser(NewBufferedTokenizerMocker(data)).ParseProgram()
	require.NoError(t, err)

	write, ok := prog.Body.(*WriteStmt)
	require.True(t, ok)

	return write.Expr
}

func TestParserExpressions(t *testing.T) {
	cases := []struct {
		name   string
		data   []Token
		expect Expr
	}{
		{
			"subtraction is left associative",
			[]Token{id("a"), kw(TokenMinus), id("b"), kw(TokenMinus), id("c")},
			binary(BinarySubtraction, binary(BinarySubtraction, ident("a"), ident("b")), ident("c")),
		},
		{
			"division is left associative",
			[]Token{id("a"), kw(TokenDiv), id("b"), kw(TokenDiv), id("c")},
			binary(BinaryDivision, binary(BinaryDivision, ident("a"), ident("b")), ident("c")),
		},
		{
			"mixed additive chain",
			[]Token{id("a"), kw(TokenPlus), id("b"), kw(TokenMinus), id("c"), kw(TokenPlus), id("d")},
			binary(BinaryAddition,
				binary(BinarySubtraction, binary(BinaryAddition, ident("a"), ident("b")), ident("c")),
				ident("d")),
		},
		{
			"multiplication binds tighter",
			[]Token{id("a"), kw(TokenPlus), id("b"), kw(TokenMulti), id("c")},
			binary(BinaryAddition, ident("a"), binary(BinaryMultiplication, ident("b"), ident("c"))),
		},
		{
			"multiplication binds tighter on the left",
			[]Token{id("a"), kw(TokenMulti), id("b"), kw(TokenMinus), id("c")},
			binary(BinarySubtraction, binary(BinaryMultiplication, ident("a"), ident("b")), ident("c")),
		},
		{
			"parentheses override precedence",
			[]Token{
				kw(TokenOpenParentheses), id("a"), kw(TokenPlus), id("b"), kw(TokenCloseParentheses),
				kw(TokenMulti), id("c"),
			},
			binary(BinaryMultiplication, binary(BinaryAddition, ident("a"), ident("b")), ident("c")),
		},
		{
			"parentheses on the right",
			[]Token{
				id("a"), kw(TokenMinus),
				kw(TokenOpenParentheses), id("b"), kw(TokenMinus), id("c"), kw(TokenCloseParentheses),
			},
			binary(BinarySubtraction, ident("a"), binary(BinarySubtraction, ident("b"), ident("c"))),
		},
		{
			"negative literal is folded",
			[]Token{kw(TokenMinus), num(5)},
			&NumberExpr{Value: -5},
		},
		{
			"positive sign is dropped",
			[]Token{kw(TokenPlus), num(7)},
			&NumberExpr{Value: 7},
		},
		{
			"signed literal after an operator",
			[]Token{id("a"), kw(TokenMinus), kw(TokenMinus), num(5)},
			binary(BinarySubtraction, ident("a"), &NumberExpr{Value: -5}),
		},
		{
			"signed literal as a factor",
			[]Token{id("a"), kw(TokenMulti), kw(TokenMinus), num(2)},
			binary(BinaryMultiplication, ident("a"), &NumberExpr{Value: -2}),
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.expect, parseExpr(t, c.data))
		})
	}
}

func TestParserPrograms(t *testing.T) {
	cases := []struct {
		name   string
		data   []Token
		expect *Program
	}{
		{
			"skip only",
			[]Token{kw(TokenSkip), kw(TokenPeriod)},
			&Program{Body: &SkipStmt{}},
		},
		{
			"declarations",
			[]Token{
				kw(TokenConst), id("a"), kw(TokenEqual), num(1), kw(TokenComma), id("b"), kw(TokenEqual), num(2), kw(TokenSemicolon),
				kw(TokenConst), id("c"), kw(TokenEqual), num(3), kw(TokenSemicolon),
				kw(TokenVar), id("x"), kw(TokenComma), id("y"), kw(TokenSemicolon),
				kw(TokenRead), id("x"), kw(TokenPeriod),
			},
			&Program{
				Consts: []*ConstDecl{
					{Name: "a", Value: 1},
					{Name: "b", Value: 2},
					{Name: "c", Value: 3},
				},
				Vars: []*VarDecl{
					{Name: "x"},
					{Name: "y"},
				},
				Body: &ReadStmt{Name: "x"},
			},
		},
		{
			"compound statement",
			[]Token{
				kw(TokenVar), id("x"), kw(TokenSemicolon),
				kw(TokenBegin),
				id("x"), kw(TokenBecomes), num(1), kw(TokenSemicolon),
				kw(TokenWrite), id("x"), kw(TokenSemicolon),
				kw(TokenSkip),
				kw(TokenEnd), kw(TokenPeriod),
			},
			&Program{
				Vars: []*VarDecl{{Name: "x"}},
				Body: &BeginStmt{
					Stmts: []Stmt{
						&AssignStmt{Name: "x", Expr: &NumberExpr{Value: 1}},
						&WriteStmt{Expr: ident("x")},
						&SkipStmt{},
					},
				},
			},
		},
		{
			"nested control flow",
			[]Token{
				kw(TokenIf), kw(TokenOdd), id("x"), kw(TokenThen),
				kw(TokenWhile), id("x"), kw(TokenGreater), num(0), kw(TokenDo),
				id("x"), kw(TokenBecomes), id("x"), kw(TokenMinus), num(1),
				kw(TokenElse), kw(TokenSkip), kw(TokenPeriod),
			},
			&Program{
				Body: &IfStmt{
					Cond: &OddCond{Expr: ident("x")},
					Then: &WhileStmt{
						Cond: &BinaryCond{Operation: RelGreater, Op1: ident("x"), Op2: &NumberExpr{Value: 0}},
						Body: &AssignStmt{
							Name: "x",
							Expr: binary(BinarySubtraction, ident("x"), &NumberExpr{Value: 1}),
						},
					},
					Else: &SkipStmt{},
				},
			},
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got, err := NewParser(NewBufferedTokenizerMocker(c.data)).ParseProgram()
			require.NoError(t, err)
			assert.Equal(t, c.expect, got)
		})
	}
}

func TestParserRelationalOperators(t *testing.T) {
	ops := map[TokenType]RelOp{
		TokenEqual:        RelEqual,
		TokenNotEqual:     RelNotEqual,
		TokenLess:         RelLess,
		TokenLessEqual:    RelLessEqual,
		TokenGreater:      RelGreater,
		TokenGreaterEqual: RelGreaterEqual,
	}

	for typ, op := range ops {
		data := []Token{
			kw(TokenWhile), id("a"), kw(typ), id("b"), kw(TokenDo), kw(TokenSkip), kw(TokenPeriod),
		}

		prog, err := NewParser(NewBufferedTokenizerMocker(data)).ParseProgram()
		require.NoError(t, err)

		while := prog.Body.(*WhileStmt)
		assert.Equal(t, &BinaryCond{Operation: op, Op1: ident("a"), Op2: ident("b")}, while.Cond)
	}
}

func TestParserSyntaxErrors(t *testing.T) {
	cases := []struct {
		name     string
		data     []Token
		expected TokenSet
		found    TokenType
	}{
		{
			"missing period",
			[]Token{kw(TokenSkip)},
			TokenSet{TokenPeriod},
			TokenEOF,
		},
		{
			"trailing tokens",
			[]Token{kw(TokenSkip), kw(TokenPeriod), kw(TokenSkip)},
			TokenSet{TokenEOF},
			TokenSkip,
		},
		{
			"not a statement",
			[]Token{kw(TokenPeriod)},
			stmtStarters,
			TokenPeriod,
		},
		{
			"empty compound statement",
			[]Token{kw(TokenBegin), kw(TokenEnd), kw(TokenPeriod)},
			stmtStarters,
			TokenEnd,
		},
		{
			"trailing semicolon in compound statement",
			[]Token{kw(TokenBegin), kw(TokenSkip), kw(TokenSemicolon), kw(TokenEnd), kw(TokenPeriod)},
			stmtStarters,
			TokenEnd,
		},
		{
			"sign before identifier",
			[]Token{kw(TokenWrite), kw(TokenMinus), id("x"), kw(TokenPeriod)},
			TokenSet{TokenNumber},
			TokenIdentifier,
		},
		{
			"missing relational operator",
			[]Token{kw(TokenIf), id("x"), kw(TokenThen), kw(TokenSkip), kw(TokenElse), kw(TokenSkip), kw(TokenPeriod)},
			relOpTokens,
			TokenThen,
		},
		{
			"if without else",
			[]Token{kw(TokenIf), kw(TokenOdd), id("x"), kw(TokenThen), kw(TokenSkip), kw(TokenPeriod)},
			TokenSet{TokenElse},
			TokenPeriod,
		},
		{
			"unclosed parenthesis",
			[]Token{kw(TokenWrite), kw(TokenOpenParentheses), id("x"), kw(TokenPeriod)},
			TokenSet{TokenCloseParentheses},
			TokenPeriod,
		},
		{
			"missing factor",
			[]Token{kw(TokenWrite), kw(TokenMulti), kw(TokenPeriod)},
			factorStarters,
			TokenMulti,
		},
		{
			"const without value",
			[]Token{kw(TokenConst), id("x"), kw(TokenEqual), kw(TokenSemicolon), kw(TokenSkip), kw(TokenPeriod)},
			TokenSet{TokenNumber},
			TokenSemicolon,
		},
		{
			"var after statement",
			[]Token{kw(TokenVar), id("x"), kw(TokenSkip), kw(TokenPeriod)},
			TokenSet{TokenSemicolon},
			TokenSkip,
		},
		{
			"const after var",
			[]Token{kw(TokenVar), id("x"), kw(TokenSemicolon), kw(TokenConst), id("y"), kw(TokenEqual), num(1), kw(TokenSemicolon), kw(TokenSkip), kw(TokenPeriod)},
			stmtStarters,
			TokenConst,
		},
		{
			"assignment with equals",
			[]Token{id("x"), kw(TokenEqual), num(1), kw(TokenPeriod)},
			TokenSet{TokenBecomes},
			TokenEqual,
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			prog, err := NewParser(NewBufferedTokenizerMocker(c.data)).ParseProgram()
			assert.Nil(t, prog)

			var syntaxErr *SyntaxError
			require.ErrorAs(t, err, &syntaxErr)
			assert.Equal(t, c.expected, syntaxErr.Expected)
			assert.Equal(t, c.found, syntaxErr.Found.Typ)
		})
	}
}

func TestParserStatementErrorNamesAllAlternatives(t *testing.T) {
	_, err := Parse("stmt.pl0", strings.NewReader("var x;\nthen."))

	var syntaxErr *SyntaxError
	require.ErrorAs(t, err, &syntaxErr)
	assert.Equal(t, Location{"stmt.pl0", 2, 1}, syntaxErr.Loc)
	assert.Equal(t,
		`stmt.pl0:2:1: syntax error: expected one of {identifier, begin, if, while, read, write, skip} but found "then"`,
		err.Error())
}

func TestParserMissingPeriodMessage(t *testing.T) {
	_, err := Parse("eof.pl0", strings.NewReader("skip"))

	require.Error(t, err)
	assert.Equal(t, "eof.pl0:1:5: syntax error: expected . but found end of input", err.Error())
}

func TestParserLexicalError(t *testing.T) {
	prog, err := Parse("lex.pl0", strings.NewReader("var x;\nx := 3 ? 4."))
	assert.Nil(t, prog)

	var lexErr *LexicalError
	require.ErrorAs(t, err, &lexErr)
	assert.Equal(t, Location{"lex.pl0", 2, 8}, lexErr.Loc)
}

func TestParserLocations(t *testing.T) {
	src := "const a = 1,\n  b = 2;\nvar x, y;\nvar z;\nbegin\n  x := a + b;\n  read y\nend."

	prog, err := Parse("loc.pl0", strings.NewReader(src))
	require.NoError(t, err)

	// Declarations point at the keyword of their group.
	assert.Equal(t, Location{"loc.pl0", 1, 1}, prog.Consts[0].Loc)
	assert.Equal(t, Location{"loc.pl0", 1, 1}, prog.Consts[1].Loc)
	assert.Equal(t, Location{"loc.pl0", 3, 1}, prog.Vars[0].Loc)
	assert.Equal(t, Location{"loc.pl0", 3, 1}, prog.Vars[1].Loc)
	assert.Equal(t, Location{"loc.pl0", 4, 1}, prog.Vars[2].Loc)
	assert.Equal(t, Location{"loc.pl0", 1, 1}, prog.Location())

	begin := prog.Body.(*BeginStmt)
	assert.Equal(t, Location{"loc.pl0", 5, 1}, begin.Loc)

	assign := begin.Stmts[0].(*AssignStmt)
	assert.Equal(t, Location{"loc.pl0", 6, 3}, assign.Loc)

	sum := assign.Expr.(*BinaryExpr)
	assert.Equal(t, Location{"loc.pl0", 6, 8}, sum.Op1.Location())
	assert.Equal(t, Location{"loc.pl0", 6, 12}, sum.Op2.Location())

	assert.Equal(t, Location{"loc.pl0", 7, 3}, begin.Stmts[1].Location())
}

func TestParserProgramLocationWithoutDeclarations(t *testing.T) {
	cases := []struct {
		src    string
		expect Location
	}{
		{"  skip.", Location{"p.pl0", 1, 3}},
		{"\nvar x;\nskip.", Location{"p.pl0", 2, 1}},
		{"const c = 1;\nvar x;\nskip.", Location{"p.pl0", 1, 1}},
	}

	for _, c := range cases {
		prog, err := Parse("p.pl0", strings.NewReader(c.src))
		require.NoError(t, err, c.src)
		assert.Equal(t, c.expect, prog.Location(), c.src)
	}
}

func TestParserEmptyDeclarations(t *testing.T) {
	prog, err := Parse("empty.pl0", strings.NewReader("skip."))
	require.NoError(t, err)

	assert.Empty(t, prog.Consts)
	assert.Empty(t, prog.Vars)
	assert.IsType(t, &SkipStmt{}, prog.Body)
}

func TestParserRandomPrograms(t *testing.T) {
	for i := 0; i < 20; i++ {
		src := test.GetRandomProgram(5, 30)

		prog, err := Parse("random.pl0", strings.NewReader(src))
		require.NoError(t, err, src)

		begin, ok := prog.Body.(*BeginStmt)
		require.True(t, ok)
		assert.Len(t, begin.Stmts, 30)
	}
}

var benchProgram *Program

func benchmarkParser(stmts int, b *testing.B) {
	for n := 0; n < b.N; n++ {
		b.StopTimer()
		src := test.GetRandomProgram(10, stmts)
		var err error
		b.StartTimer()

		benchProgram, err = Parse("bench.pl0", strings.NewReader(src))
		if err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkParser100(b *testing.B) {
	benchmarkParser(100, b)
}

func BenchmarkParser10000(b *testing.B) {
	benchmarkParser(10000, b)
}
