package main

import (
	"errors"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"go.pl0.dev/internal/config"
	pl0 "go.pl0.dev/pkg"
)

// errCheckFailed is returned once every diagnostic has already been printed.
var errCheckFailed = errors.New("check failed")

var (
	cfgFile string
	verbose bool
	noColor bool

	cfg    *config.Config
	logger *slog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "pl0c",
	Short: "Front end for the PL/0 teaching language",
	Long: `pl0c parses PL/0 programs and checks that every identifier is
declared exactly once before it is used.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: "+config.DefaultPath+")")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored diagnostics")
}

func setup(cmd *cobra.Command, _ []string) error {
	logger = newLogger(cmd.ErrOrStderr(), verbose)
	slog.SetDefault(logger)

	var err error
	cfg, err = config.LoadOrDefault(cfgFile, cfgFile != "")
	if err != nil {
		return err
	}

	if noColor || os.Getenv("NO_COLOR") != "" {
		cfg.NoColor = true
	}

	logger.Debug("configuration loaded", "max_scope_size", cfg.MaxScopeSize,
		"strict_constants", cfg.StrictConstants)

	return nil
}

func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}

	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: level,
	}))
}

func newCompiler(handler pl0.ErrorHandler) *pl0.Compiler {
	return pl0.NewCompiler(
		pl0.WithLogger(logger),
		pl0.WithMaxScopeSize(cfg.MaxScopeSize),
		pl0.WithStrictConstants(cfg.StrictConstants),
		pl0.WithErrorHandler(handler),
	)
}
