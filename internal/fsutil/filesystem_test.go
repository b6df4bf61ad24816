package fsutil

import (
	"io"
	"path/filepath"
	"testing"
)

func TestOSFileSystem_CreateReadExists(t *testing.T) {
	var fsys FileSystem = OSFileSystem{}
	dir := filepath.Join(t.TempDir(), "traces", "run")

	if err := fsys.MkdirAll(dir, 0755); err != nil {
		t.Fatalf("MkdirAll failed: %v", err)
	}
	path := filepath.Join(dir, "frame.csv")
	w, err := fsys.Create(path)
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if _, err := io.WriteString(w, "1,2\n"); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	if !fsys.Exists(path) {
		t.Fatal("expected file to exist")
	}
	data, err := fsys.ReadFile(path)
	if err != nil || string(data) != "1,2\n" {
		t.Fatalf("ReadFile = %q, %v", data, err)
	}
	if fsys.Exists(filepath.Join(dir, "absent.csv")) {
		t.Error("expected absent file to not exist")
	}
}

func TestMemoryFileSystem_CreateVisibleOnClose(t *testing.T) {
	mfs := NewMemoryFileSystem()

	w, err := mfs.Create("/tmp/a.csv")
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if _, err := w.Write([]byte("4000,0\n")); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	if data, _ := mfs.ReadFile("/tmp/a.csv"); len(data) != 0 {
		t.Errorf("content visible before Close: %q", data)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	f, err := mfs.Open("/tmp/a.csv")
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer f.Close()
	data, err := io.ReadAll(f)
	if err != nil || string(data) != "4000,0\n" {
		t.Fatalf("read back %q, %v", data, err)
	}
	info, err := f.Stat()
	if err != nil || info.Size() != 7 || info.Name() != "a.csv" {
		t.Fatalf("Stat = %+v, %v", info, err)
	}
}

func TestMemoryFileSystem_OpenMissing(t *testing.T) {
	mfs := NewMemoryFileSystem()
	if _, err := mfs.Open("/missing.csv"); err == nil {
		t.Fatal("expected error opening missing file")
	}
	if _, err := mfs.ReadFile("/missing.csv"); err == nil {
		t.Fatal("expected error reading missing file")
	}
}

func TestMemoryFileSystem_MkdirAllAndFiles(t *testing.T) {
	mfs := NewMemoryFileSystem()
	if err := mfs.MkdirAll("/tmp/traces/run", 0755); err != nil {
		t.Fatal(err)
	}
	if !mfs.Exists("/tmp/traces") {
		t.Error("parent directory not recorded")
	}

	mfs.WriteFile("/tmp/traces/run_01_score.csv", []byte("1\n"))
	mfs.WriteFile("/tmp/traces/run_00_mask.csv", []byte("1\n"))
	mfs.WriteFile("/tmp/other.csv", []byte("1\n"))

	got := mfs.Files("/tmp/traces/")
	want := []string{"/tmp/traces/run_00_mask.csv", "/tmp/traces/run_01_score.csv"}
	if len(got) != len(want) || got[0] != want[0] || got[1] != want[1] {
		t.Fatalf("Files() = %v, want %v", got, want)
	}
}
