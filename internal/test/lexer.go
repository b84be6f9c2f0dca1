package test

import (
	"fmt"
	"math/rand"
	"strings"
)

const validTokens = "const;var;begin;end;if;then;else;while;do;read;write;skip;odd;x;counter;y2;0;42;2147483647;.;,;:=;=;<>;<;<=;>;>=;+;-;*;/;(;);# a comment\n"

func GetRandomTokens(size int) string {
	return GetRandomTokensWithSep(size, " ")
}

func GetRandomTokensWithSep(size int, sep string) string {
	valid := strings.Split(validTokens, ";")
	valid = append(valid, ";")

	var toks []string
	for len(toks) < size {
		toks = append(toks, valid[rand.Intn(len(valid))])
	}

	return strings.Join(toks, sep)
}

// GetRandomProgram returns a syntactically valid program declaring vars
// variables and containing roughly stmts statements. Every identifier it
// uses is declared, so it also passes the scope check.
func GetRandomProgram(vars, stmts int) string {
	if vars < 1 {
		vars = 1
	}
	if stmts < 1 {
		stmts = 1
	}

	names := make([]string, vars)
	for i := range names {
		names[i] = fmt.Sprintf("v%d", i)
	}

	var b strings.Builder
	b.WriteString("const limit = 100;\n")
	b.WriteString("var " + strings.Join(names, ", ") + ";\n")
	b.WriteString("begin\n")

	for i := 0; i < stmts; i++ {
		if i > 0 {
			b.WriteString(";\n")
		}

		name := names[rand.Intn(len(names))]
		other := names[rand.Intn(len(names))]
		switch rand.Intn(6) {
		case 0:
			fmt.Fprintf(&b, "  %s := %s * (%s - %d) / 2", name, other, name, rand.Intn(50))
		case 1:
			fmt.Fprintf(&b, "  if %s < limit then %s := %s + 1 else skip", name, name, name)
		case 2:
			fmt.Fprintf(&b, "  while odd %s do %s := %s - 1", name, name, name)
		case 3:
			fmt.Fprintf(&b, "  read %s", name)
		case 4:
			fmt.Fprintf(&b, "  write %s + -%d", other, rand.Intn(10))
		default:
			b.WriteString("  skip")
		}
	}

	b.WriteString("\nend.\n")
	return b.String()
}
