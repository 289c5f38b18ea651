package cli

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/ludos1978/lexera/internal/rewrite"
	"github.com/ludos1978/lexera/internal/ui"
	"github.com/ludos1978/lexera/internal/watcher"
)

var watchCmd = &cobra.Command{
	Use:   "watch [path]",
	Short: "Watch boards and migrate changed files automatically",
	Long: `Watch a boards directory and rewrite old-convention tokens whenever a
file changes. Useful while other tools still emit the old convention.

Stops on Ctrl-C.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := resolveBoardsPath(args)
		if err != nil {
			return handleError(ErrPathNotGiven, err, "pass a directory argument")
		}
		if err := requireExistingPath(path); err != nil {
			return handleError(ErrPathNotFound, err, "")
		}

		debug, _ := cmd.Flags().GetBool("debug")

		w, err := watcher.New(watcher.Config{
			Root:  path,
			Debug: debug,
			OnMigrate: func(file string, changes []rewrite.LineChange, err error) {
				if err != nil {
					fmt.Println(ui.Warningf("%s: %v", file, err))
					return
				}
				fmt.Printf("%s %s %s\n", ui.SymbolSuccess, ui.FilePath(file),
					ui.Count(len(changes), "change", "changes"))
			},
		})
		if err != nil {
			return handleError(ErrInternal, err, "")
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		fmt.Printf("Watching %s for board changes. Press Ctrl-C to stop.\n", ui.FilePath(path))
		if err := w.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
			return handleError(ErrInternal, err, "")
		}
		return nil
	},
}

func init() {
	watchCmd.Flags().Bool("debug", false, "Log watcher events to stderr")
	rootCmd.AddCommand(watchCmd)
}
