package unify

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Fatal input failures. Each aborts a run before any mutation happens.
var (
	ErrDocumentNotFound    = errors.New("textcritics document not found")
	ErrMarkupDirNotFound   = errors.New("markup directory not found")
	ErrMarkupDirUnreadable = errors.New("markup directory not readable")
	ErrNoMarkupFiles       = errors.New("markup directory contains no SVG files")
)

// FileStore provides ordered access to the markup files of one corpus. The
// Unifier performs all reads and writes through this interface so embedding
// callers can supply already-loaded text.
type FileStore interface {
	// List returns every markup filename, in a stable order.
	List() []string
	// Read returns the current text of one file.
	Read(name string) (string, error)
	// Write persists new text for one file.
	Write(name, text string) error
}

// DirStore is a FileStore over a directory of .svg files on disk.
type DirStore struct {
	dir   string
	names []string
}

// OpenDir enumerates the SVG files of a directory. The error distinguishes a
// missing directory, an unreadable one, and one without any SVG files.
func OpenDir(dir string) (*DirStore, error) {
	info, err := os.Stat(dir)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrMarkupDirNotFound, dir)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrMarkupDirUnreadable, dir, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s is not a directory", ErrMarkupDirNotFound, dir)
	}

	dirEntries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrMarkupDirUnreadable, dir, err)
	}

	var names []string
	for _, entry := range dirEntries {
		if entry.IsDir() {
			continue
		}
		if strings.EqualFold(filepath.Ext(entry.Name()), ".svg") {
			names = append(names, entry.Name())
		}
	}
	if len(names) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoMarkupFiles, dir)
	}
	sort.Strings(names)

	return &DirStore{dir: dir, names: names}, nil
}

// List returns the SVG filenames in lexical order.
func (s *DirStore) List() []string {
	out := make([]string, len(s.names))
	copy(out, s.names)
	return out
}

// Read loads one file's text.
func (s *DirStore) Read(name string) (string, error) {
	data, err := os.ReadFile(filepath.Join(s.dir, name))
	if err != nil {
		return "", fmt.Errorf("read markup file %s: %w", name, err)
	}
	return string(data), nil
}

// Write persists one file's text.
func (s *DirStore) Write(name, text string) error {
	if err := os.WriteFile(filepath.Join(s.dir, name), []byte(text), 0o644); err != nil {
		return fmt.Errorf("write markup file %s: %w", name, err)
	}
	return nil
}

// MemStore is an in-memory FileStore for tests and embedding callers that
// manage persistence themselves.
type MemStore struct {
	files  map[string]string
	names  []string
	writes []string
}

// NewMemStore builds a store over the given filename-to-text map.
func NewMemStore(files map[string]string) *MemStore {
	names := make([]string, 0, len(files))
	for name := range files {
		names = append(names, name)
	}
	sort.Strings(names)

	copied := make(map[string]string, len(files))
	for name, text := range files {
		copied[name] = text
	}
	return &MemStore{files: copied, names: names}
}

// List returns the filenames in lexical order.
func (s *MemStore) List() []string {
	out := make([]string, len(s.names))
	copy(out, s.names)
	return out
}

// Read returns the current text of one file.
func (s *MemStore) Read(name string) (string, error) {
	text, ok := s.files[name]
	if !ok {
		return "", fmt.Errorf("read markup file %s: %w", name, fs.ErrNotExist)
	}
	return text, nil
}

// Write replaces the text of one file and records the write.
func (s *MemStore) Write(name, text string) error {
	s.files[name] = text
	s.writes = append(s.writes, name)
	return nil
}

// Text returns the current text of a file, for assertions.
func (s *MemStore) Text(name string) string {
	return s.files[name]
}

// Writes returns the filenames written so far, in write order.
func (s *MemStore) Writes() []string {
	out := make([]string, len(s.writes))
	copy(out, s.writes)
	return out
}
