package main

import (
	"fmt"

	"github.com/spf13/cobra"

	pl0 "go.pl0.dev/pkg"
)

var astFormat string

var parseCmd = &cobra.Command{
	Use:   "parse FILE",
	Short: "Parse a program and print its syntax tree",
	Args:  cobra.ExactArgs(1),
	RunE:  runParse,
}

func init() {
	parseCmd.Flags().StringVarP(&astFormat, "format", "f", "text", "output format (text or json)")
	rootCmd.AddCommand(parseCmd)
}

func runParse(cmd *cobra.Command, args []string) error {
	if astFormat != "text" && astFormat != "json" {
		return fmt.Errorf("unknown format %q", astFormat)
	}

	lexer, err := pl0.OpenLexer(args[0])
	if err != nil {
		return err
	}
	defer lexer.Close()

	prog, err := pl0.NewParser(lexer, pl0.WithParserLogger(logger)).ParseProgram()
	if err != nil {
		newRenderer(cmd.ErrOrStderr(), !cfg.NoColor).failure(err)
		return errCheckFailed
	}

	return printAST(cmd.OutOrStdout(), prog, astFormat)
}
