package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}

	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)

	for _, sub := range cmd.Commands() {
		resetFlags(sub)
	}
}

func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	resetFlags(rootCmd)

	var stdout, stderr bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	rootCmd.SetArgs(append([]string{"--no-color"}, args...))

	err := rootCmd.Execute()

	return stdout.String(), stderr.String(), err
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	return path
}

func TestCheckValid(t *testing.T) {
	path := writeFile(t, t.TempDir(), "ok.pl0", "var x; begin read x; write x * 2 end.")

	stdout, _, err := run(t, "check", path)
	require.NoError(t, err)
	assert.Empty(t, stdout)
}

func TestCheckReportsEveryError(t *testing.T) {
	path := writeFile(t, t.TempDir(), "bad.pl0", "const x = 1;\nvar x;\nx := y.")

	stdout, _, err := run(t, "check", path)
	assert.ErrorIs(t, err, errCheckFailed)

	assert.Contains(t, stdout, path+":2:1: error: variable \"x\" is already declared as a constant")
	assert.Contains(t, stdout, "note: "+path+":1:1: previous declaration of \"x\" is here")
	assert.NotContains(t, stdout, "identifier \"x\" is not declared")
	assert.Contains(t, stdout, path+":3:6: error: identifier \"y\" is not declared")
}

func TestCheckSyntaxError(t *testing.T) {
	path := writeFile(t, t.TempDir(), "eof.pl0", "skip")

	stdout, _, err := run(t, "check", path)
	assert.ErrorIs(t, err, errCheckFailed)
	assert.Contains(t, stdout, "syntax error: expected . but found end of input")
	assert.Contains(t, stdout, "a program must end with '.'")
}

func TestCheckStrictConstants(t *testing.T) {
	path := writeFile(t, t.TempDir(), "const.pl0", "const c = 1; c := 2.")

	_, _, err := run(t, "check", path)
	require.NoError(t, err)

	stdout, _, err := run(t, "check", "--strict-constants", path)
	assert.ErrorIs(t, err, errCheckFailed)
	assert.Contains(t, stdout, "constant \"c\" used as assignment target")
}

func TestCheckConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "ok.pl0", "var x; x := 1.")
	conf := writeFile(t, dir, "pl0c.toml", "[output]\nast = \"text\"\n")

	stdout, _, err := run(t, "--config", conf, "check", path)
	require.NoError(t, err)
	assert.Equal(t, "var x;\nx := 1.\n", stdout)
}

func TestCheckMissingFile(t *testing.T) {
	stdout, _, err := run(t, "check", filepath.Join(t.TempDir(), "missing.pl0"))
	assert.ErrorIs(t, err, errCheckFailed)
	assert.Contains(t, stdout, "error:")
}

func TestParseJSON(t *testing.T) {
	path := writeFile(t, t.TempDir(), "p.pl0", "write 1 + 2.")

	stdout, _, err := run(t, "parse", "--format", "json", path)
	require.NoError(t, err)
	assert.Contains(t, stdout, `"type": "Program"`)
	assert.Contains(t, stdout, `"op": "+"`)
}

func TestParseRejectsFormat(t *testing.T) {
	path := writeFile(t, t.TempDir(), "p.pl0", "skip.")

	_, _, err := run(t, "parse", "--format", "xml", path)
	assert.EqualError(t, err, `unknown format "xml"`)
}

func TestParseSyntaxError(t *testing.T) {
	path := writeFile(t, t.TempDir(), "p.pl0", "begin end.")

	_, stderr, err := run(t, "parse", path)
	assert.ErrorIs(t, err, errCheckFailed)
	assert.Contains(t, stderr, path+":1:7: error: syntax error")
}

func TestTokens(t *testing.T) {
	path := writeFile(t, t.TempDir(), "t.pl0", "x := 10.")

	stdout, _, err := run(t, "tokens", path)
	require.NoError(t, err)

	assert.Contains(t, stdout, "LINE")
	assert.Contains(t, stdout, ":=")
	assert.Contains(t, stdout, "number")
}

func TestTokensLexicalError(t *testing.T) {
	path := writeFile(t, t.TempDir(), "t.pl0", "x := 1 ! 2.")

	_, stderr, err := run(t, "tokens", path)
	assert.ErrorIs(t, err, errCheckFailed)
	assert.Contains(t, stderr, "lexical error: invalid symbol '!'")
}
