package util

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestCreateTempDir(t *testing.T) {
	baseDir := t.TempDir()

	scratch, err := CreateTempDir(baseDir, "decode")
	if err != nil {
		t.Fatalf("CreateTempDir failed: %v", err)
	}
	t.Cleanup(func() { _ = scratch.Cleanup() })

	info, err := os.Stat(scratch.Path())
	if err != nil {
		t.Fatalf("scratch directory not created: %v", err)
	}
	if !info.IsDir() {
		t.Error("Expected a directory")
	}
	if !strings.HasPrefix(filepath.Base(scratch.Path()), "decode_") {
		t.Errorf("Directory name should start with 'decode_', got %s", filepath.Base(scratch.Path()))
	}
}

func TestCreateTempDirUniqueNames(t *testing.T) {
	baseDir := t.TempDir()

	first, err := CreateTempDir(baseDir, "decode")
	if err != nil {
		t.Fatal(err)
	}
	second, err := CreateTempDir(baseDir, "decode")
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = first.Cleanup(); _ = second.Cleanup() })

	if first.Path() == second.Path() {
		t.Errorf("Two scratch directories share a path: %s", first.Path())
	}
}

func TestTempDirCleanup(t *testing.T) {
	scratch, err := CreateTempDir(t.TempDir(), "decode")
	if err != nil {
		t.Fatal(err)
	}

	// Cleanup removes contents too, not just the directory itself.
	inner := filepath.Join(scratch.Path(), "stream.yuv")
	if err := os.WriteFile(inner, []byte("raw frames"), 0644); err != nil {
		t.Fatal(err)
	}

	path := scratch.Path()
	if err := scratch.Cleanup(); err != nil {
		t.Errorf("Cleanup failed: %v", err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("Directory should be removed after cleanup")
	}

	// Repeated cleanup, and cleanup of a nil receiver, are no-ops.
	if err := scratch.Cleanup(); err != nil {
		t.Errorf("Second cleanup should be a no-op, got %v", err)
	}
	var none *TempDir
	if err := none.Cleanup(); err != nil {
		t.Errorf("Nil cleanup should be a no-op, got %v", err)
	}
}

func TestCreateTempDirUnwritableBase(t *testing.T) {
	if _, err := CreateTempDir("/proc/no_such_base", "decode"); err == nil {
		t.Error("Expected error for uncreatable base directory")
	}
}
