// Package migrate drives the tag rewrite over whole board trees.
package migrate

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/ludos1978/lexera/internal/atomicfile"
	"github.com/ludos1978/lexera/internal/boards"
	"github.com/ludos1978/lexera/internal/rewrite"
)

// Options controls a migration run.
type Options struct {
	// DryRun reports changes without writing any file.
	DryRun bool

	// Backup copies each file into .lexera/backups/<timestamp>/ before writing.
	Backup bool

	// Workers bounds concurrent file processing. 0 means NumCPU.
	Workers int
}

// FileResult is the outcome for one board file.
type FileResult struct {
	Path         string               `json:"path"`
	RelativePath string               `json:"relative_path"`
	Changes      []rewrite.LineChange `json:"changes,omitempty"`
	BackupPath   string               `json:"backup_path,omitempty"`
	Err          error                `json:"-"`
}

// Modified reports whether the file had (or would have) changes applied.
func (r FileResult) Modified() bool {
	return r.Err == nil && len(r.Changes) > 0
}

// Report summarizes a whole migration run.
type Report struct {
	Root         string       `json:"root"`
	DryRun       bool         `json:"dry_run"`
	StartedAt    time.Time    `json:"started_at"`
	FilesScanned int          `json:"files_scanned"`
	Files        []FileResult `json:"files,omitempty"`
}

// FilesModified counts files with at least one change.
func (r *Report) FilesModified() int {
	n := 0
	for _, f := range r.Files {
		if f.Modified() {
			n++
		}
	}
	return n
}

// TotalChanges counts individual token substitutions across all files.
func (r *Report) TotalChanges() int {
	n := 0
	for _, f := range r.Files {
		n += len(f.Changes)
	}
	return n
}

// FailedFiles returns the files that could not be processed.
func (r *Report) FailedFiles() []FileResult {
	var failed []FileResult
	for _, f := range r.Files {
		if f.Err != nil {
			failed = append(failed, f)
		}
	}
	return failed
}

// Run migrates every markdown file under root. Files are independent, so
// they are processed concurrently; a file that cannot be read or written is
// recorded in the report and never aborts the rest of the run.
//
// Only files with changes (or errors) appear in the report's Files list.
func Run(root string, opts Options) (*Report, error) {
	files, err := boards.Collect(root)
	if err != nil {
		return nil, err
	}

	report := &Report{
		Root:         root,
		DryRun:       opts.DryRun,
		StartedAt:    time.Now(),
		FilesScanned: len(files),
	}

	backupDir := ""
	if opts.Backup && !opts.DryRun {
		backupDir = backupPath(root, report.StartedAt)
	}

	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	var mu sync.Mutex
	var g errgroup.Group
	g.SetLimit(workers)

	for _, f := range files {
		f := f
		g.Go(func() error {
			result := processFile(f, opts.DryRun, backupDir)
			if result.Err == nil && len(result.Changes) == 0 {
				return nil
			}
			mu.Lock()
			report.Files = append(report.Files, result)
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()

	sort.Slice(report.Files, func(i, j int) bool {
		return report.Files[i].Path < report.Files[j].Path
	})

	return report, nil
}

func processFile(f boards.File, dryRun bool, backupDir string) FileResult {
	result := FileResult{Path: f.Path, RelativePath: f.RelativePath}

	content, err := os.ReadFile(f.Path)
	if err != nil {
		result.Err = fmt.Errorf("read %s: %w", f.Path, err)
		return result
	}

	newContent, changes := rewrite.Content(string(content))
	result.Changes = changes
	if len(changes) == 0 || dryRun {
		return result
	}

	if backupDir != "" {
		backup, err := writeBackup(backupDir, f, content)
		if err != nil {
			result.Err = fmt.Errorf("backup %s: %w", f.Path, err)
			return result
		}
		result.BackupPath = backup
	}

	if err := atomicfile.WriteFile(f.Path, []byte(newContent), 0); err != nil {
		result.Err = fmt.Errorf("write %s: %w", f.Path, err)
	}
	return result
}

func backupPath(root string, startedAt time.Time) string {
	base := root
	if info, err := os.Stat(root); err == nil && !info.IsDir() {
		base = filepath.Dir(root)
	}
	return filepath.Join(base, ".lexera", "backups", startedAt.Format("2006-01-02T15-04-05"))
}

func writeBackup(backupDir string, f boards.File, content []byte) (string, error) {
	path := filepath.Join(backupDir, f.RelativePath)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return "", err
	}
	if err := os.WriteFile(path, content, 0644); err != nil {
		return "", err
	}
	return path, nil
}
