// Package testutil provides reusable test utilities for lexera tests.
package testutil

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// TestBoards represents a temporary boards directory for testing.
type TestBoards struct {
	Path  string
	t     *testing.T
	files map[string]string
}

// NewTestBoards creates a new boards directory builder.
// Call Build() to create the actual directory.
func NewTestBoards(t *testing.T) *TestBoards {
	t.Helper()
	return &TestBoards{
		t:     t,
		files: make(map[string]string),
	}
}

// WithFile adds a file to the boards directory.
// The path is relative to the directory root.
func (b *TestBoards) WithFile(path, content string) *TestBoards {
	b.files[path] = content
	return b
}

// Build creates the directory and all configured files.
func (b *TestBoards) Build() *TestBoards {
	b.t.Helper()
	b.Path = b.t.TempDir()
	for path, content := range b.files {
		b.writeFile(path, content)
	}
	return b
}

func (b *TestBoards) writeFile(relPath, content string) {
	b.t.Helper()
	fullPath := filepath.Join(b.Path, relPath)
	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		b.t.Fatalf("failed to create directory for %s: %v", relPath, err)
	}
	if err := os.WriteFile(fullPath, []byte(content), 0644); err != nil {
		b.t.Fatalf("failed to write %s: %v", relPath, err)
	}
}

// ReadFile reads a file from the boards directory.
func (b *TestBoards) ReadFile(relPath string) string {
	b.t.Helper()
	data, err := os.ReadFile(filepath.Join(b.Path, relPath))
	if err != nil {
		b.t.Fatalf("failed to read %s: %v", relPath, err)
	}
	return string(data)
}

// AssertFileContains fails the test if the file does not contain the substring.
func (b *TestBoards) AssertFileContains(relPath, substr string) {
	b.t.Helper()
	content := b.ReadFile(relPath)
	if !strings.Contains(content, substr) {
		b.t.Errorf("expected file %s to contain %q, got:\n%s", relPath, substr, content)
	}
}

// AssertFileNotContains fails the test if the file contains the substring.
func (b *TestBoards) AssertFileNotContains(relPath, substr string) {
	b.t.Helper()
	content := b.ReadFile(relPath)
	if strings.Contains(content, substr) {
		b.t.Errorf("expected file %s to not contain %q, got:\n%s", relPath, substr, content)
	}
}

// AssertFileEquals fails the test if the file content differs.
func (b *TestBoards) AssertFileEquals(relPath, want string) {
	b.t.Helper()
	content := b.ReadFile(relPath)
	if content != want {
		b.t.Errorf("unexpected content in %s:\ngot:  %q\nwant: %q", relPath, content, want)
	}
}

// AssertFileExists fails the test if the file does not exist.
func (b *TestBoards) AssertFileExists(relPath string) {
	b.t.Helper()
	if _, err := os.Stat(filepath.Join(b.Path, relPath)); os.IsNotExist(err) {
		b.t.Errorf("expected file to exist: %s", relPath)
	}
}
