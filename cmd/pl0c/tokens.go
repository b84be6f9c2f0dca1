package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	pl0 "go.pl0.dev/pkg"
)

var tokensCmd = &cobra.Command{
	Use:   "tokens FILE",
	Short: "Print the token stream of a program",
	Args:  cobra.ExactArgs(1),
	RunE:  runTokens,
}

func init() {
	rootCmd.AddCommand(tokensCmd)
}

func runTokens(cmd *cobra.Command, args []string) error {
	lexer, err := pl0.OpenLexer(args[0])
	if err != nil {
		return err
	}
	defer lexer.Close()

	toks, err := pl0.Tokenize(lexer)
	if err != nil {
		newRenderer(cmd.ErrOrStderr(), !cfg.NoColor).failure(err)
		return errCheckFailed
	}

	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "LINE\tCOL\tTYPE\tLEXEME")
	for _, tok := range toks {
		fmt.Fprintf(tw, "%d\t%d\t%s\t%s\n", tok.Loc.Line, tok.Loc.Column, tok.Typ, tok.Value)
	}

	return tw.Flush()
}
