package discovery

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/five82/vqsweep/internal/errors"
)

func writeFile(t *testing.T, dir, name string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte("data"), 0644); err != nil {
		t.Fatal(err)
	}
}

func TestFindSourceFiles(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "Beach.mkv")
	writeFile(t, dir, "animals.mp4")
	writeFile(t, dir, "clip.y4m")
	writeFile(t, dir, "notes.txt")
	writeFile(t, dir, ".hidden.mp4")

	files, err := FindSourceFiles(dir, nil)
	if err != nil {
		t.Fatalf("FindSourceFiles failed: %v", err)
	}

	if len(files) != 3 {
		t.Fatalf("expected 3 files, got %d", len(files))
	}

	// Case-insensitive ordering by base name
	want := []string{"animals.mp4", "Beach.mkv", "clip.y4m"}
	for i, f := range files {
		if filepath.Base(f) != want[i] {
			t.Errorf("position %d: got %s, want %s", i, filepath.Base(f), want[i])
		}
	}
}

func TestFindSourceFilesEmpty(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "readme.txt")

	_, err := FindSourceFiles(dir, nil)
	if !errors.IsKind(err, errors.KindNoFilesFound) {
		t.Errorf("expected KindNoFilesFound, got %v", err)
	}
}

func TestFindSourceFilesMissingDir(t *testing.T) {
	_, err := FindSourceFiles("/nonexistent/source/dir", nil)
	if !errors.IsKind(err, errors.KindIO) {
		t.Errorf("expected KindIO, got %v", err)
	}
}
