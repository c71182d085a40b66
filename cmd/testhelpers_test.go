package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
)

// setupInitedProject creates a temp directory, chdirs into it, and runs
// `mdj init`, restoring the original working directory on cleanup.
func setupInitedProject(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	orig, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("chdir: %v", err)
	}
	t.Cleanup(func() { _ = os.Chdir(orig) })
	if err := runInit(); err != nil {
		t.Fatalf("runInit: %v", err)
	}
	return dir
}

// writeTempJournal writes content to filename under dir and returns the
// full path.
func writeTempJournal(t *testing.T, dir, filename, content string) string {
	t.Helper()
	path := filepath.Join(dir, filename)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write temp journal: %v", err)
	}
	return path
}

// captureOutput redirects stdout during f() and returns what was written.
func captureOutput(t *testing.T, f func()) string {
	t.Helper()
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("os.Pipe: %v", err)
	}
	origStdout := os.Stdout
	os.Stdout = w

	f()

	w.Close()
	os.Stdout = origStdout

	var buf bytes.Buffer
	if _, err := buf.ReadFrom(r); err != nil {
		t.Fatalf("ReadFrom pipe: %v", err)
	}
	return buf.String()
}
