package unify_test

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"tkkunify/internal/unify"
)

func TestOpenDirListsOnlySVGFiles(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"M143_Sk1-final.svg", "M143_Sk2-final.SVG", "notes.txt", "thumb.png"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("<svg/>"), 0o644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}
	if err := os.Mkdir(filepath.Join(dir, "nested.svg"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	store, err := unify.OpenDir(dir)
	if err != nil {
		t.Fatalf("OpenDir: %v", err)
	}
	want := []string{"M143_Sk1-final.svg", "M143_Sk2-final.SVG"}
	if got := store.List(); !reflect.DeepEqual(got, want) {
		t.Fatalf("List = %v, want %v", got, want)
	}
}

func TestOpenDirMissingDirectory(t *testing.T) {
	_, err := unify.OpenDir(filepath.Join(t.TempDir(), "absent"))
	if !errors.Is(err, unify.ErrMarkupDirNotFound) {
		t.Fatalf("expected ErrMarkupDirNotFound, got %v", err)
	}
}

func TestOpenDirPathIsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "file.svg")
	if err := os.WriteFile(path, []byte("<svg/>"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := unify.OpenDir(path); !errors.Is(err, unify.ErrMarkupDirNotFound) {
		t.Fatalf("expected ErrMarkupDirNotFound for non-directory, got %v", err)
	}
}

func TestOpenDirEmptyDirectory(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "readme.md"), []byte("x"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := unify.OpenDir(dir); !errors.Is(err, unify.ErrNoMarkupFiles) {
		t.Fatalf("expected ErrNoMarkupFiles, got %v", err)
	}
}

func TestDirStoreReadWriteRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "M143_Sk1-final.svg")
	if err := os.WriteFile(path, []byte(`<svg><g class="tkk" id="x"/></svg>`), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	store, err := unify.OpenDir(dir)
	if err != nil {
		t.Fatalf("OpenDir: %v", err)
	}
	text, err := store.Read("M143_Sk1-final.svg")
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if err := store.Write("M143_Sk1-final.svg", text+"\n"); err != nil {
		t.Fatalf("Write: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if string(data) != text+"\n" {
		t.Fatalf("unexpected content after write: %q", data)
	}
}
