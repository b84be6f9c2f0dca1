package pl0

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"unicode"
)

const eof rune = -1

type stateFunc func(l *Lexer) stateFunc

// Tokenizer is a pull-based token source. Next returns TokenEOF once the
// input is exhausted and keeps returning it on every later call.
type Tokenizer interface {
	Next() Token
	Done() bool
	Filename() string
	Close() error
}

type Lexer struct {
	filename string
	reader   *bufio.Reader
	closer   io.Closer

	state   stateFunc
	pending []Token
	done    bool
	readErr error

	line, col int
	start     Location
}

func NewLexer(filename string, reader io.Reader) *Lexer {
	return &Lexer{
		filename: filename,
		reader:   bufio.NewReader(reader),
		state:    defaultState,
		line:     1,
		col:      1,
	}
}

// OpenLexer opens the file at path for scanning. The file is released by Close.
func OpenLexer(path string) (*Lexer, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}

	l := NewLexer(path, f)
	l.closer = f

	return l, nil
}

func (l *Lexer) Filename() string {
	return l.filename
}

func (l *Lexer) Done() bool {
	return l.done
}

func (l *Lexer) Close() error {
	if l.closer == nil {
		return nil
	}

	err := l.closer.Close()
	l.closer = nil

	return err
}

func (l *Lexer) Next() Token {
	for len(l.pending) == 0 {
		if l.state == nil {
			l.done = true
			return Token{Typ: TokenEOF, Loc: l.location()}
		}

		l.state = l.state(l)
	}

	tok := l.pending[0]
	l.pending = l.pending[1:]
	if !tok.isValid() {
		l.done = true
	}

	return tok
}

// Tokenize drains t, returning every token before the end of input.
func Tokenize(t Tokenizer) ([]Token, error) {
	var tokens []Token
	for {
		tok := t.Next()
		switch tok.Typ {
		case TokenEOF:
			return tokens, nil
		case TokenError:
			return nil, &LexicalError{Loc: tok.Loc, Msg: tok.Value}
		}

		tokens = append(tokens, tok)
	}
}

func defaultState(l *Lexer) stateFunc {
	for {
		l.start = l.location()

		switch r := l.peek(); {
		case r == eof:
			if l.readErr != nil {
				return l.errorf("read error: %v", l.readErr)
			}

			return l.emit(TokenEOF, "")
		case unicode.IsSpace(r):
			l.next()
			continue
		case r == '#':
			return lineCommentState
		case '0' <= r && r <= '9':
			return numberState
		case unicode.IsLetter(r):
			return identifierState
		default:
			return operatorState
		}
	}
}

func numberState(l *Lexer) stateFunc {
	var num strings.Builder
	for r := l.peek(); '0' <= r && r <= '9'; r = l.peek() {
		num.WriteRune(l.next())
	}

	val, err := strconv.ParseInt(num.String(), 10, 32)
	if err != nil {
		return l.errorf("number %s is too large", num.String())
	}

	l.pending = append(l.pending, Token{
		Typ:   TokenNumber,
		Value: num.String(),
		Num:   int32(val),
		Loc:   l.start,
	})

	return defaultState
}

func identifierState(l *Lexer) stateFunc {
	var id strings.Builder
	for r := l.peek(); unicode.IsLetter(r) || unicode.IsDigit(r); r = l.peek() {
		id.WriteRune(l.next())
	}

	if t, ok := keywordTable[id.String()]; ok {
		return l.emit(t, id.String())
	}

	return l.emit(TokenIdentifier, id.String())
}

func operatorState(l *Lexer) stateFunc {
	r := l.next()
	if r == ':' || r == '<' || r == '>' { // Some operators can be two runes
		op := string(r) + string(l.peek())
		if tok, ok := operatorTable[op]; ok {
			l.next()
			return l.emit(tok, op)
		}
	}

	if tok, ok := operatorTable[string(r)]; ok {
		return l.emit(tok, string(r))
	}

	return l.errorf("invalid symbol '%c'", r)
}

func lineCommentState(l *Lexer) stateFunc {
	for r := l.peek(); r != '\n' && r != eof; r = l.peek() {
		l.next()
	}

	return defaultState
}

func (l *Lexer) errorf(format string, args ...interface{}) stateFunc {
	l.pending = append(l.pending, Token{
		Typ:   TokenError,
		Value: fmt.Sprintf(format, args...),
		Loc:   l.start,
	})

	return nil
}

func (l *Lexer) emit(t TokenType, val string) stateFunc {
	l.pending = append(l.pending, Token{
		Typ:   t,
		Value: val,
		Loc:   l.start,
	})

	if t == TokenEOF {
		return nil
	}

	return defaultState
}

func (l *Lexer) location() Location {
	return Location{Filename: l.filename, Line: l.line, Column: l.col}
}

func (l *Lexer) peek() rune {
	r, _, err := l.reader.ReadRune()
	if err != nil {
		if err != io.EOF {
			l.readErr = err
		}

		return eof
	}

	_ = l.reader.UnreadRune()

	return r
}

func (l *Lexer) next() rune {
	r, _, err := l.reader.ReadRune()
	if err != nil {
		if err != io.EOF {
			l.readErr = err
		}

		return eof
	}

	if r == '\n' {
		l.line++
		l.col = 1
	} else {
		l.col++
	}

	return r
}
