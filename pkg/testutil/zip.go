package testutil

import (
	"archive/zip"
	"bytes"
	"os"
	"path/filepath"
	"sort"
	"testing"
)

// ZipEntries maps archive entry names to contents. A name ending in "/"
// becomes a directory entry.
type ZipEntries map[string]string

// BuildZip returns the bytes of a zip archive holding entries, written in
// sorted name order.
func BuildZip(t *testing.T, entries ZipEntries) []byte {
	t.Helper()

	names := make([]string, 0, len(entries))
	for name := range entries {
		names = append(names, name)
	}
	sort.Strings(names)

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, name := range names {
		w, err := zw.Create(name)
		if err != nil {
			t.Fatalf("Failed to add zip entry %s: %v", name, err)
		}
		if name[len(name)-1] == '/' {
			continue
		}
		if _, err := w.Write([]byte(entries[name])); err != nil {
			t.Fatalf("Failed to write zip entry %s: %v", name, err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("Failed to finish zip: %v", err)
	}
	return buf.Bytes()
}

// WriteZip writes a zip archive holding entries to path on the real
// filesystem and returns path.
func WriteZip(t *testing.T, path string, entries ZipEntries) string {
	t.Helper()

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("Failed to create parent directories for %s: %v", path, err)
	}
	if err := os.WriteFile(path, BuildZip(t, entries), 0644); err != nil {
		t.Fatalf("Failed to write zip %s: %v", path, err)
	}
	return path
}
