// Package syncctl supervises the external lexera sync server process:
// launching it detached, stopping it, and polling its HTTP status endpoint.
package syncctl

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/exec"
	"strconv"
	"strings"
	"syscall"
	"time"
)

var (
	// ErrAlreadyRunning indicates the server answered its status endpoint.
	ErrAlreadyRunning = errors.New("sync server already running")
	// ErrNotRunning indicates no supervised server process was found.
	ErrNotRunning = errors.New("sync server not running")
)

// Options configures a Supervisor.
type Options struct {
	// Command launches the server, e.g. "node /path/to/cli.js start".
	Command string

	// ConfigPath is passed to the server via --config when set.
	ConfigPath string

	// Port is the HTTP port of the server's status endpoint.
	Port int

	// LogPath and ErrorLogPath receive the server's stdout/stderr (appended).
	LogPath      string
	ErrorLogPath string

	// PIDPath records the launched process ID for later Stop calls.
	PIDPath string
}

// Supervisor controls one external sync server.
type Supervisor struct {
	opts   Options
	client *http.Client
}

// New creates a Supervisor for the given options.
func New(opts Options) *Supervisor {
	return &Supervisor{
		opts:   opts,
		client: &http.Client{Timeout: 2 * time.Second},
	}
}

// Status is the sync server's status endpoint payload.
type Status struct {
	Running bool    `json:"running"`
	Port    int     `json:"port"`
	Boards  []Board `json:"boards"`
}

// Board is one board the sync server is tracking.
type Board struct {
	File         string `json:"file"`
	LastModified string `json:"lastModified"`
}

// FetchStatus polls the server's /status endpoint once.
// Returns an error when the server is unreachable or answers garbage.
func (s *Supervisor) FetchStatus(ctx context.Context) (*Status, error) {
	url := fmt.Sprintf("http://localhost:%d/status", s.opts.Port)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("status endpoint returned %s", resp.Status)
	}

	var status Status
	if err := json.NewDecoder(resp.Body).Decode(&status); err != nil {
		return nil, fmt.Errorf("decode status: %w", err)
	}
	return &status, nil
}

// Start launches the server detached, appending its output to the log files
// and recording its PID. Returns ErrAlreadyRunning if the status endpoint
// already answers.
func (s *Supervisor) Start(ctx context.Context) error {
	if _, err := s.FetchStatus(ctx); err == nil {
		return ErrAlreadyRunning
	}

	args := strings.Fields(s.opts.Command)
	if len(args) == 0 {
		return fmt.Errorf("no sync server command configured")
	}
	if s.opts.ConfigPath != "" {
		args = append(args, "--config", s.opts.ConfigPath)
	}

	logFile, err := openLog(s.opts.LogPath)
	if err != nil {
		return fmt.Errorf("open log: %w", err)
	}
	defer logFile.Close()
	errFile, err := openLog(s.opts.ErrorLogPath)
	if err != nil {
		return fmt.Errorf("open error log: %w", err)
	}
	defer errFile.Close()

	cmd := exec.Command(args[0], args[1:]...)
	cmd.Stdout = logFile
	cmd.Stderr = errFile
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("launch sync server: %w", err)
	}

	if s.opts.PIDPath != "" {
		pid := strconv.Itoa(cmd.Process.Pid)
		if err := os.WriteFile(s.opts.PIDPath, []byte(pid+"\n"), 0644); err != nil {
			_ = cmd.Process.Kill()
			return fmt.Errorf("write pid file: %w", err)
		}
	}

	return cmd.Process.Release()
}

// Stop terminates the recorded server process: SIGTERM first, SIGKILL after
// a grace period. The pid file is removed either way.
func (s *Supervisor) Stop() error {
	pid, err := s.readPID()
	if err != nil {
		return err
	}
	defer os.Remove(s.opts.PIDPath)

	proc, err := os.FindProcess(pid)
	if err != nil {
		return ErrNotRunning
	}
	if err := proc.Signal(syscall.SIGTERM); err != nil {
		return ErrNotRunning
	}

	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		if proc.Signal(syscall.Signal(0)) != nil {
			return nil
		}
		time.Sleep(100 * time.Millisecond)
	}
	return proc.Kill()
}

// WaitForServer polls the status endpoint until the server answers or the
// timeout elapses.
func (s *Supervisor) WaitForServer(ctx context.Context, timeout time.Duration) (*Status, error) {
	deadline := time.Now().Add(timeout)
	var lastErr error
	for time.Now().Before(deadline) {
		status, err := s.FetchStatus(ctx)
		if err == nil {
			return status, nil
		}
		lastErr = err
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(200 * time.Millisecond):
		}
	}
	if lastErr == nil {
		lastErr = fmt.Errorf("timeout waiting for sync server")
	}
	return nil, fmt.Errorf("sync server did not come up: %w", lastErr)
}

func (s *Supervisor) readPID() (int, error) {
	if s.opts.PIDPath == "" {
		return 0, ErrNotRunning
	}
	data, err := os.ReadFile(s.opts.PIDPath)
	if err != nil {
		return 0, ErrNotRunning
	}
	pid, err := strconv.Atoi(strings.TrimSpace(string(data)))
	if err != nil || pid <= 0 {
		return 0, ErrNotRunning
	}
	return pid, nil
}

func openLog(path string) (*os.File, error) {
	if path == "" {
		return os.OpenFile(os.DevNull, os.O_WRONLY, 0)
	}
	return os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
}
