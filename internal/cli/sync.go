package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/ludos1978/lexera/internal/syncctl"
	"github.com/ludos1978/lexera/internal/ui"
)

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Control the lexera sync server",
	Long: `Start, stop, and inspect the external sync server configured under
[sync] in the config file. The server's stdout/stderr are appended to the
configured log files; status is read from its HTTP /status endpoint.`,
}

var syncStartCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the sync server",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		sup, err := newSupervisor()
		if err != nil {
			return handleError(ErrSyncNotConfigured, err, "set [sync] command in the config file")
		}

		wait, _ := cmd.Flags().GetBool("wait")

		err = sup.Start(cmd.Context())
		if errors.Is(err, syncctl.ErrAlreadyRunning) {
			return handleErrorMsg(ErrSyncAlreadyRunning, "sync server already running", "")
		}
		if err != nil {
			return handleError(ErrInternal, err, "")
		}

		if wait {
			status, err := sup.WaitForServer(cmd.Context(), 15*time.Second)
			if err != nil {
				return handleError(ErrSyncUnreachable, err, "check the sync server logs")
			}
			if isJSONOutput() {
				outputSuccess(status, nil)
				return nil
			}
			fmt.Println(ui.Successf("Sync server running on port %d", status.Port))
			return nil
		}

		if isJSONOutput() {
			outputSuccess(map[string]interface{}{"started": true}, nil)
			return nil
		}
		fmt.Println(ui.Success("Sync server started"))
		return nil
	},
}

var syncStopCmd = &cobra.Command{
	Use:   "stop",
	Short: "Stop the sync server",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		sup, err := newSupervisor()
		if err != nil {
			return handleError(ErrSyncNotConfigured, err, "set [sync] command in the config file")
		}

		err = sup.Stop()
		if errors.Is(err, syncctl.ErrNotRunning) {
			return handleErrorMsg(ErrSyncNotRunning, "sync server not running", "")
		}
		if err != nil {
			return handleError(ErrInternal, err, "")
		}

		if isJSONOutput() {
			outputSuccess(map[string]interface{}{"stopped": true}, nil)
			return nil
		}
		fmt.Println(ui.Success("Sync server stopped"))
		return nil
	},
}

var syncStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show sync server status",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		sup, err := newSupervisor()
		if err != nil {
			return handleError(ErrSyncNotConfigured, err, "set [sync] command in the config file")
		}

		status, err := sup.FetchStatus(cmd.Context())
		if err != nil {
			if isJSONOutput() {
				outputSuccess(map[string]interface{}{"running": false}, nil)
				return nil
			}
			fmt.Println("Status: Stopped")
			return nil
		}

		if isJSONOutput() {
			outputSuccess(status, &Meta{Count: len(status.Boards)})
			return nil
		}

		fmt.Printf("Status: Running on port %d\n", status.Port)
		if len(status.Boards) == 0 {
			fmt.Println(ui.Hint("No boards"))
			return nil
		}
		fmt.Println()
		for _, b := range status.Boards {
			fmt.Printf("  %s\n", ui.FilePath(b.File))
			if b.LastModified != "" {
				fmt.Printf("    %s\n", ui.Hint("last modified: "+b.LastModified))
			}
		}
		return nil
	},
}

func newSupervisor() (*syncctl.Supervisor, error) {
	c := getConfig()
	if c.Sync.Command == "" {
		return nil, fmt.Errorf("no sync server command configured")
	}
	return syncctl.New(syncctl.Options{
		Command:      c.Sync.Command,
		ConfigPath:   c.Sync.ConfigPath,
		Port:         c.GetSyncPort(),
		LogPath:      c.GetSyncLogPath(),
		ErrorLogPath: c.GetSyncErrorLogPath(),
		PIDPath:      syncPIDPath(),
	}), nil
}

func syncPIDPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".lexera-sync.pid"
	}
	return filepath.Join(home, ".lexera-sync.pid")
}

func init() {
	syncStartCmd.Flags().Bool("wait", false, "Wait until the status endpoint answers")
	syncCmd.AddCommand(syncStartCmd)
	syncCmd.AddCommand(syncStopCmd)
	syncCmd.AddCommand(syncStatusCmd)
	rootCmd.AddCommand(syncCmd)
}
