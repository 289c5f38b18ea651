package cli

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/ludos1978/lexera/internal/migrate"
	"github.com/ludos1978/lexera/internal/ui"
)

// tokenUsage aggregates one pending conversion across all boards.
type tokenUsage struct {
	Old   string `json:"old"`
	New   string `json:"new"`
	Count int    `json:"count"`
}

var scanCmd = &cobra.Command{
	Use:   "scan [path]",
	Short: "List old-convention tokens without modifying anything",
	Long: `Scan boards for tokens still using the old tag convention and report
what a migration would rewrite, aggregated per token. Never writes.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := resolveBoardsPath(args)
		if err != nil {
			return handleError(ErrPathNotGiven, err, "pass a file or directory argument")
		}
		if err := requireExistingPath(path); err != nil {
			return handleError(ErrPathNotFound, err, "")
		}

		report, err := migrate.Run(path, migrate.Options{DryRun: true})
		if err != nil {
			return handleError(ErrMigrationFailed, err, "")
		}

		usages := aggregateUsages(report)

		if isJSONOutput() {
			outputSuccess(map[string]interface{}{
				"root":           report.Root,
				"files_scanned":  report.FilesScanned,
				"files_affected": report.FilesModified(),
				"tokens":         usages,
			}, &Meta{Count: len(usages)})
			return nil
		}

		fmt.Printf("Scanned %d file(s) under %s\n\n", report.FilesScanned, ui.FilePath(report.Root))
		if len(usages) == 0 {
			fmt.Println(ui.Success("No old-convention tokens found."))
			return nil
		}

		for _, u := range usages {
			fmt.Printf("  %s %s\n", changeText(u.Old, u.New),
				ui.Hint(fmt.Sprintf("x%d", u.Count)))
		}
		fmt.Printf("\n%d file(s) affected. Run 'lexera migrate' to apply.\n", report.FilesModified())
		return nil
	},
}

func aggregateUsages(report *migrate.Report) []tokenUsage {
	counts := make(map[string]*tokenUsage)
	for _, f := range report.Files {
		for _, c := range f.Changes {
			key := c.Old + "\x00" + c.New
			if u, ok := counts[key]; ok {
				u.Count++
			} else {
				counts[key] = &tokenUsage{Old: c.Old, New: c.New, Count: 1}
			}
		}
	}

	usages := make([]tokenUsage, 0, len(counts))
	for _, u := range counts {
		usages = append(usages, *u)
	}
	sort.Slice(usages, func(i, j int) bool {
		if usages[i].Count != usages[j].Count {
			return usages[i].Count > usages[j].Count
		}
		return usages[i].Old < usages[j].Old
	})
	return usages
}

func init() {
	rootCmd.AddCommand(scanCmd)
}
