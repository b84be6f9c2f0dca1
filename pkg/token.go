package pl0

import (
	"fmt"
	"strings"
)

type TokenType uint64

const (
	TokenError TokenType = iota
	TokenEOF

	TokenIdentifier
	TokenNumber

	// Punctuation
	TokenPeriod
	TokenSemicolon
	TokenComma
	TokenOpenParentheses
	TokenCloseParentheses
	TokenBecomes

	// Operators
	TokenEqual
	TokenNotEqual
	TokenLess
	TokenLessEqual
	TokenGreater
	TokenGreaterEqual
	TokenPlus
	TokenMinus
	TokenMulti
	TokenDiv

	// Keywords
	TokenConst
	TokenVar
	TokenBegin
	TokenEnd
	TokenIf
	TokenThen
	TokenElse
	TokenWhile
	TokenDo
	TokenRead
	TokenWrite
	TokenSkip
	TokenOdd

	tokenCount
)

var tokenNames = [...]string{
	TokenError: "error",
	TokenEOF:   "EOF",

	TokenIdentifier: "identifier",
	TokenNumber:     "number",

	TokenPeriod:           ".",
	TokenSemicolon:        ";",
	TokenComma:            ",",
	TokenOpenParentheses:  "(",
	TokenCloseParentheses: ")",
	TokenBecomes:          ":=",

	TokenEqual:        "=",
	TokenNotEqual:     "<>",
	TokenLess:         "<",
	TokenLessEqual:    "<=",
	TokenGreater:      ">",
	TokenGreaterEqual: ">=",
	TokenPlus:         "+",
	TokenMinus:        "-",
	TokenMulti:        "*",
	TokenDiv:          "/",

	TokenConst: "const",
	TokenVar:   "var",
	TokenBegin: "begin",
	TokenEnd:   "end",
	TokenIf:    "if",
	TokenThen:  "then",
	TokenElse:  "else",
	TokenWhile: "while",
	TokenDo:    "do",
	TokenRead:  "read",
	TokenWrite: "write",
	TokenSkip:  "skip",
	TokenOdd:   "odd",
}

func (t TokenType) String() string {
	if t < tokenCount {
		return tokenNames[t]
	}

	return fmt.Sprintf("token(%d)", uint64(t))
}

// IsKeyword reports whether t is a reserved word.
func (t TokenType) IsKeyword() bool {
	return t >= TokenConst && t <= TokenOdd
}

var keywordTable = map[string]TokenType{
	"const": TokenConst,
	"var":   TokenVar,
	"begin": TokenBegin,
	"end":   TokenEnd,
	"if":    TokenIf,
	"then":  TokenThen,
	"else":  TokenElse,
	"while": TokenWhile,
	"do":    TokenDo,
	"read":  TokenRead,
	"write": TokenWrite,
	"skip":  TokenSkip,
	"odd":   TokenOdd,
}

var operatorTable = map[string]TokenType{
	".":  TokenPeriod,
	";":  TokenSemicolon,
	",":  TokenComma,
	"(":  TokenOpenParentheses,
	")":  TokenCloseParentheses,
	":=": TokenBecomes,
	"=":  TokenEqual,
	"<>": TokenNotEqual,
	"<":  TokenLess,
	"<=": TokenLessEqual,
	">":  TokenGreater,
	">=": TokenGreaterEqual,
	"+":  TokenPlus,
	"-":  TokenMinus,
	"*":  TokenMulti,
	"/":  TokenDiv,
}

// Location is a position in a source file. Line and Column are 1-based;
// the zero value is an unknown location.
type Location struct {
	Filename string
	Line     int
	Column   int
}

func (l Location) String() string {
	if l.Filename != "" {
		return fmt.Sprintf("%s:%d:%d", l.Filename, l.Line, l.Column)
	}

	return fmt.Sprintf("%d:%d", l.Line, l.Column)
}

func (l Location) IsValid() bool {
	return l.Line > 0
}

type Token struct {
	Typ   TokenType
	Value string
	Num   int32 // only set for TokenNumber
	Loc   Location
}

func (t Token) String() string {
	switch t.Typ {
	case TokenEOF:
		return "end of input"
	case TokenIdentifier, TokenNumber:
		return fmt.Sprintf("%s %q", t.Typ, t.Value)
	case TokenError:
		return "invalid token: " + t.Value
	default:
		return fmt.Sprintf("%q", t.Value)
	}
}

func (t Token) isValid() bool {
	return t.Typ != TokenEOF && t.Typ != TokenError
}

// TokenSet is an ordered set of acceptable token types, used to describe
// what the parser expected at a given point.
type TokenSet []TokenType

func (s TokenSet) Contains(typ TokenType) bool {
	for _, t := range s {
		if t == typ {
			return true
		}
	}

	return false
}

func (s TokenSet) String() string {
	names := make([]string, len(s))
	for i, t := range s {
		names[i] = t.String()
	}

	if len(names) == 1 {
		return names[0]
	}

	return "one of {" + strings.Join(names, ", ") + "}"
}
