package pl0

import (
	"io"
	"log/slog"
)

type CompilerOption func(*Compiler)

func WithLogger(logger *slog.Logger) CompilerOption {
	return func(c *Compiler) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithMaxScopeSize bounds the number of declarations per program.
func WithMaxScopeSize(size uint) CompilerOption {
	return func(c *Compiler) {
		c.maxScopeSize = size
	}
}

// WithStrictConstants rejects constants as assignment and read targets.
func WithStrictConstants(enabled bool) CompilerOption {
	return func(c *Compiler) {
		c.strictConstants = enabled
	}
}

// WithErrorHandler installs a callback invoked for every semantic error as
// soon as it is found.
func WithErrorHandler(handler ErrorHandler) CompilerOption {
	return func(c *Compiler) {
		c.handler = handler
	}
}

// Compiler runs the front end: parse, then scope check.
type Compiler struct {
	logger          *slog.Logger
	maxScopeSize    uint
	strictConstants bool
	handler         ErrorHandler
}

func NewCompiler(opts ...CompilerOption) *Compiler {
	c := &Compiler{
		logger:       discardLogger(),
		maxScopeSize: MaxScopeSize,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Result is the outcome of a compilation that got past parsing.
type Result struct {
	Program     *Program
	Symbols     *SymbolTable
	Diagnostics *Diagnostics
}

// OK reports whether the program passed every check.
func (r *Result) OK() bool {
	return !r.Diagnostics.HasErrors()
}

// Compile reads and checks the file at filename. A non-nil error means the
// file could not be read or did not parse; semantic errors are in the Result.
func (c *Compiler) Compile(filename string) (*Result, error) {
	lexer, err := OpenLexer(filename)
	if err != nil {
		return nil, err
	}
	defer lexer.Close()

	return c.compile(lexer)
}

func (c *Compiler) CompileFromReader(filename string, reader io.Reader) (*Result, error) {
	return c.compile(NewLexer(filename, reader))
}

func (c *Compiler) compile(t Tokenizer) (*Result, error) {
	logger := c.logger.With("file", t.Filename())

	prog, err := NewParser(t, WithParserLogger(logger)).ParseProgram()
	if err != nil {
		return nil, err
	}

	res := &Result{
		Program:     prog,
		Symbols:     NewSymbolTableWithCapacity(c.maxScopeSize),
		Diagnostics: NewDiagnostics(c.handler),
	}

	checker := NewScopeChecker(res.Symbols, res.Diagnostics,
		WithConstantAssignCheck(c.strictConstants),
		WithCheckerLogger(logger),
	)
	checker.CheckProgram(prog)

	logger.Info("checked program", "declarations", res.Symbols.Size(), "errors", res.Diagnostics.Len())

	return res, nil
}
