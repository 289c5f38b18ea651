package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ludos1978/lexera/internal/history"
	"github.com/ludos1978/lexera/internal/migrate"
	"github.com/ludos1978/lexera/internal/ui"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate [path]",
	Short: "Migrate boards to the new tag convention",
	Long: `Migrate markdown boards from the old tag convention to the new one.

Conversions:
  !W12         -> @W12        (week)
  !KW12        -> @KW12       (German week)
  !2025-03-27  -> @2025-03-27 (date)
  !10:30       -> @10:30      (time)
  !9am-5pm     -> @9am-5pm    (time slot)
  !monday      -> @monday     (weekday)
  @john        -> #john       (person -> tag)
  @team-alpha  -> #team-alpha (person -> tag)
  @2025-03-27  -> @2025-03-27 (date - unchanged)

Run with --dry-run first to preview changes.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := resolveBoardsPath(args)
		if err != nil {
			return handleError(ErrPathNotGiven, err, "pass a file or directory argument")
		}
		if err := requireExistingPath(path); err != nil {
			return handleError(ErrPathNotFound, err, "")
		}

		dryRun, _ := cmd.Flags().GetBool("dry-run")
		verbose, _ := cmd.Flags().GetBool("verbose")
		yes, _ := cmd.Flags().GetBool("yes")
		workers, _ := cmd.Flags().GetInt("workers")
		if !cmd.Flags().Changed("workers") {
			workers = getConfig().Workers
		}
		backup, _ := cmd.Flags().GetBool("backup")
		if !cmd.Flags().Changed("backup") {
			backup = getConfig().Backup
		}

		opts := migrate.Options{DryRun: dryRun, Backup: backup, Workers: workers}

		// Interactive runs preview first and ask before writing anything.
		if !dryRun && !yes && shouldPromptForConfirm() {
			preview, err := migrate.Run(path, migrate.Options{DryRun: true, Workers: workers})
			if err != nil {
				return handleError(ErrMigrationFailed, err, "")
			}
			if preview.TotalChanges() == 0 {
				printReport(preview, verbose)
				return nil
			}
			printReport(preview, verbose)
			if !promptForConfirm("Apply these changes?") {
				fmt.Println("Aborted.")
				return nil
			}
		}

		report, err := migrate.Run(path, opts)
		if err != nil {
			return handleError(ErrMigrationFailed, err, "")
		}

		recordHistory(path, report)

		if isJSONOutput() {
			outputSuccess(reportData(report), &Meta{Count: report.TotalChanges()})
			return nil
		}

		printReport(report, verbose)
		return nil
	},
}

// recordHistory persists the run; a failing history store only warns.
func recordHistory(path string, report *migrate.Report) {
	store, err := history.Open(path)
	if err != nil {
		if !isJSONOutput() {
			fmt.Println(ui.Warningf("could not open history: %v", err))
		}
		return
	}
	defer store.Close()
	if _, err := store.RecordRun(report); err != nil && !isJSONOutput() {
		fmt.Println(ui.Warningf("could not record history: %v", err))
	}
}

func reportData(report *migrate.Report) map[string]interface{} {
	return map[string]interface{}{
		"root":           report.Root,
		"dry_run":        report.DryRun,
		"files_scanned":  report.FilesScanned,
		"files_modified": report.FilesModified(),
		"total_changes":  report.TotalChanges(),
		"files":          report.Files,
	}
}

func printReport(report *migrate.Report, verbose bool) {
	prefix := ""
	verb := "Modified"
	if report.DryRun {
		prefix = "[DRY RUN] "
		verb = "Would modify"
	}
	fmt.Printf("%sProcessing %d file(s)...\n\n", prefix, report.FilesScanned)

	for _, f := range report.Files {
		if f.Err != nil {
			fmt.Println(ui.Warningf("skipped %s: %v", f.RelativePath, f.Err))
			fmt.Println()
			continue
		}
		fmt.Printf("%s: %s %s\n", verb, ui.FilePath(f.RelativePath),
			ui.Count(len(f.Changes), "change", "changes"))
		if verbose {
			for _, c := range f.Changes {
				fmt.Printf("  %s %s\n", ui.LineNum(c.Line), changeText(c.Old, c.New))
			}
		}
		fmt.Println()
	}

	fmt.Println(ui.Hint("--------------------------------------------------"))
	if report.DryRun {
		fmt.Printf("DRY RUN: Would modify %d file(s) with %d change(s)\n",
			report.FilesModified(), report.TotalChanges())
		if report.FilesModified() > 0 {
			fmt.Println("\nRun without --dry-run to apply changes.")
		}
	} else if report.TotalChanges() == 0 {
		fmt.Println(ui.Success("Boards are up to date. No migration needed."))
	} else {
		fmt.Println(ui.Successf("Modified %d file(s) with %d change(s)",
			report.FilesModified(), report.TotalChanges()))
	}
	if failed := report.FailedFiles(); len(failed) > 0 {
		fmt.Println(ui.Warningf("%d file(s) could not be processed", len(failed)))
	}
}

func changeText(old, new string) string {
	return fmt.Sprintf("%s -> %s", old, ui.Accent.Render(new))
}

func init() {
	migrateCmd.Flags().BoolP("dry-run", "n", false, "Preview changes without applying")
	migrateCmd.Flags().BoolP("verbose", "v", false, "Show each change")
	migrateCmd.Flags().Bool("backup", false, "Copy files to .lexera/backups before writing (default from config)")
	migrateCmd.Flags().BoolP("yes", "y", false, "Apply without interactive confirmation")
	migrateCmd.Flags().Int("workers", 0, "Concurrent file workers (0 = NumCPU)")
	rootCmd.AddCommand(migrateCmd)
}
