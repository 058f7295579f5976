package testsupport

import (
	"os"
	"path/filepath"
	"testing"
)

// WriteFile writes content to path, creating parent directories as needed.
func WriteFile(t testing.TB, path, content string) {
	t.Helper()

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

// ReadFile returns the content of path, failing the test on error.
func ReadFile(t testing.TB, path string) string {
	t.Helper()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	return string(data)
}

// SVGGroup renders a minimal SVG file containing one tkk group per id.
func SVGGroup(ids ...string) string {
	out := `<?xml version="1.0" encoding="UTF-8"?>` + "\n<svg xmlns=\"http://www.w3.org/2000/svg\">\n"
	for _, id := range ids {
		out += `    <g class="tkk" id="` + id + "\"><path d=\"M0 0\"/></g>\n"
	}
	return out + "</svg>\n"
}
