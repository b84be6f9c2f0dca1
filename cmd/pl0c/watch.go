package main

import (
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"go.pl0.dev/internal/watcher"
)

var watchCmd = &cobra.Command{
	Use:   "watch [DIR...]",
	Short: "Re-check programs whenever they change",
	Long: `Checks every matching program below DIR (default: the current
directory), then re-checks files as they are written. Which files are
considered is controlled by the [watch] include and exclude patterns.`,
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		args = []string{"."}
	}

	r := newRenderer(cmd.OutOrStdout(), !cfg.NoColor)

	w, err := watcher.New(cfg.Watch.Debounce, cfg.Watch.Include, cfg.Watch.Exclude, func(paths []string) {
		logger.Info("detected changes", "count", len(paths))
		checkFiles(cmd, r, paths)
	}, logger)
	if err != nil {
		return err
	}

	files, err := w.Collect(args)
	if err != nil {
		return err
	}
	checkFiles(cmd, r, files)

	if err := w.Watch(args); err != nil {
		return err
	}
	defer w.Close()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	<-ctx.Done()
	return nil
}
