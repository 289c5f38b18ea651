package boards

import (
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, root, rel, content string) {
	t.Helper()
	path := filepath.Join(root, rel)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

func TestCollectFindsMarkdownRecursively(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "board.md", "a")
	writeFile(t, root, "sub/nested.md", "b")
	writeFile(t, root, "sub/UPPER.MD", "c")
	writeFile(t, root, "notes.txt", "d")

	files, err := Collect(root)
	if err != nil {
		t.Fatal(err)
	}
	if len(files) != 3 {
		t.Fatalf("expected 3 files, got %d: %v", len(files), files)
	}
	if files[0].RelativePath != "board.md" {
		t.Fatalf("expected sorted order, got %v", files)
	}
}

func TestCollectSkipsInternalDirectories(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "board.md", "a")
	writeFile(t, root, ".lexera/backups/old.md", "b")
	writeFile(t, root, ".trash/gone.md", "c")
	writeFile(t, root, ".git/hidden.md", "d")

	files, err := Collect(root)
	if err != nil {
		t.Fatal(err)
	}
	if len(files) != 1 || files[0].RelativePath != "board.md" {
		t.Fatalf("expected only board.md, got %v", files)
	}
}

func TestCollectSingleFile(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "board.md", "a")

	files, err := Collect(filepath.Join(root, "board.md"))
	if err != nil {
		t.Fatal(err)
	}
	if len(files) != 1 || files[0].RelativePath != "board.md" {
		t.Fatalf("expected the single file, got %v", files)
	}

	files, err = Collect(filepath.Join(root, "board.md"))
	if err != nil || len(files) != 1 {
		t.Fatalf("unexpected result: %v %v", files, err)
	}
}

func TestCollectNonMarkdownFileYieldsNothing(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "notes.txt", "a")

	files, err := Collect(filepath.Join(root, "notes.txt"))
	if err != nil {
		t.Fatal(err)
	}
	if len(files) != 0 {
		t.Fatalf("expected no files, got %v", files)
	}
}

func TestCollectMissingPath(t *testing.T) {
	_, err := Collect(filepath.Join(t.TempDir(), "missing"))
	if err == nil {
		t.Fatal("expected error for missing path")
	}
}
