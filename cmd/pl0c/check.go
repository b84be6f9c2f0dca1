package main

import (
	"io"

	"github.com/spf13/cobra"

	pl0 "go.pl0.dev/pkg"
)

var strict bool

var checkCmd = &cobra.Command{
	Use:   "check FILE...",
	Short: "Parse and scope check programs",
	Long: `Parses every FILE and checks its declarations and identifier uses.
All semantic errors of a file are reported; a syntax error stops that file.
The exit status is 1 if any file has an error.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runCheck,
}

func init() {
	checkCmd.Flags().BoolVar(&strict, "strict-constants", false, "reject constants as assignment and read targets")
	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	if cmd.Flags().Changed("strict-constants") {
		cfg.StrictConstants = strict
	}

	r := newRenderer(cmd.OutOrStdout(), !cfg.NoColor)
	if !checkFiles(cmd, r, args) {
		return errCheckFailed
	}

	return nil
}

// checkFiles reports whether every file passed.
func checkFiles(cmd *cobra.Command, r *renderer, files []string) bool {
	ok := true
	c := newCompiler(r.diagnostic)

	for _, file := range files {
		res, err := c.Compile(file)
		if err != nil {
			r.failure(err)
			ok = false
			continue
		}

		if !res.OK() {
			ok = false
			continue
		}

		if err := printAST(cmd.OutOrStdout(), res.Program, cfg.Output.AST); err != nil {
			r.failure(err)
			ok = false
		}
	}

	return ok
}

func printAST(w io.Writer, prog *pl0.Program, format string) error {
	switch format {
	case "text":
		return pl0.Unparse(w, prog)
	case "json":
		return pl0.FprintJSON(w, prog)
	default:
		return nil
	}
}
