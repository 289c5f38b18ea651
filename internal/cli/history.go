package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/ludos1978/lexera/internal/history"
	"github.com/ludos1978/lexera/internal/ui"
)

var historyCmd = &cobra.Command{
	Use:   "history [path]",
	Short: "Show past migration runs",
	Long: `Show migration runs recorded in the boards' history database.

Use --file to list every recorded change for one board, or --run to list
the changes of a specific run.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := resolveBoardsPath(args)
		if err != nil {
			return handleError(ErrPathNotGiven, err, "pass a file or directory argument")
		}
		if err := requireExistingPath(path); err != nil {
			return handleError(ErrPathNotFound, err, "")
		}

		store, err := history.Open(path)
		if err != nil {
			return handleError(ErrHistoryError, err, "")
		}
		defer store.Close()

		file, _ := cmd.Flags().GetString("file")
		runID, _ := cmd.Flags().GetInt64("run")
		limit, _ := cmd.Flags().GetInt("limit")

		switch {
		case file != "":
			changes, err := store.ChangesForFile(file)
			if err != nil {
				return handleError(ErrHistoryError, err, "")
			}
			return printChanges(changes)
		case runID > 0:
			changes, err := store.ChangesForRun(runID)
			if err != nil {
				return handleError(ErrHistoryError, err, "")
			}
			return printChanges(changes)
		default:
			runs, err := store.RecentRuns(limit)
			if err != nil {
				return handleError(ErrHistoryError, err, "")
			}
			return printRuns(runs)
		}
	},
}

func printRuns(runs []history.Run) error {
	if isJSONOutput() {
		outputSuccess(map[string]interface{}{"runs": runs}, &Meta{Count: len(runs)})
		return nil
	}
	if len(runs) == 0 {
		fmt.Println(ui.Hint("No recorded migration runs."))
		return nil
	}
	for _, r := range runs {
		mode := ""
		if r.DryRun {
			mode = " [dry run]"
		}
		fmt.Printf("#%d %s%s  %s\n", r.ID,
			r.StartedAt.Local().Format(time.DateTime), mode, ui.FilePath(r.Root))
		fmt.Printf("   scanned %d, modified %d, %s\n", r.FilesScanned, r.FilesModified,
			ui.Count(r.TotalChanges, "change", "changes"))
	}
	return nil
}

func printChanges(changes []history.ChangeEntry) error {
	if isJSONOutput() {
		outputSuccess(map[string]interface{}{"changes": changes}, &Meta{Count: len(changes)})
		return nil
	}
	if len(changes) == 0 {
		fmt.Println(ui.Hint("No recorded changes."))
		return nil
	}
	for _, c := range changes {
		fmt.Printf("%s:%s %s\n", ui.FilePath(c.File), ui.LineNum(c.Line),
			changeText(c.Old, c.New))
	}
	return nil
}

func init() {
	historyCmd.Flags().String("file", "", "List changes recorded for one file")
	historyCmd.Flags().Int64("run", 0, "List changes of a specific run")
	historyCmd.Flags().Int("limit", 20, "Maximum runs to list")
	rootCmd.AddCommand(historyCmd)
}
