// If you are AI: This file contains tests for the style checks.

package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// write creates name under dir with content.
func write(t *testing.T, dir, name, content string) {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
}

func TestCheck(t *testing.T) {
	dir := t.TempDir()
	write(t, dir, "good.go", "// If you are AI: fine.\n\npackage p\n\n// F does nothing.\nfunc F() {}\n")
	write(t, dir, "noheader.go", "package p\n\n// G does nothing.\nfunc G() {}\n")
	write(t, dir, "nocomment.go", "// If you are AI: x.\n\npackage p\n\nfunc H() {}\n")
	write(t, dir, "long.go", "// If you are AI: x.\n\npackage p\n"+strings.Repeat("\n", 300))
	write(t, dir, "p_test.go", "package p\n\nfunc helper() {}\n")
	write(t, dir, "_ignored/bad.go", "package bad\n\nfunc X() {}\n")
	write(t, dir, "testdata/bad.go", "package bad\n\nfunc X() {}\n")

	failures, err := Check(dir)
	if err != nil {
		t.Fatalf("Check failed: %v", err)
	}
	if len(failures) != 3 {
		t.Fatalf("Expected 3 failures, got %d: %v", len(failures), failures)
	}

	joined := strings.Join(failures, "\n")
	for _, want := range []string{
		"noheader.go: missing 'If you are AI:' header",
		"nocomment.go:5: function H missing comment",
		"long.go: 303 lines (max 300)",
	} {
		if !strings.Contains(joined, want) {
			t.Errorf("Missing failure %q in:\n%s", want, joined)
		}
	}
}
