// Package docio implements the collaborators that read journal source files
// and write rendered output: a FileReader that expands directories and
// joins file contents, and OutputWriters for stdout and for a file made
// read-only after it's written.
package docio

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/senna-lang/mdj/internal/mderr"
)

// ReadAll resolves each of paths to one or more ".md" files (a path that is
// itself a directory is expanded, non-recursively, to its *.md entries in
// filename order) and joins every file's content with a blank line between
// them, mirroring how entries from multiple journal files are read as one
// logical document.
func ReadAll(paths []string) (string, error) {
	var files []string
	for _, p := range paths {
		expanded, err := expand(p)
		if err != nil {
			return "", err
		}
		files = append(files, expanded...)
	}

	contents := make([]string, 0, len(files))
	for _, f := range files {
		data, err := os.ReadFile(f)
		if err != nil {
			return "", mderr.IORead(f, err.Error())
		}
		contents = append(contents, string(data))
	}
	return strings.Join(contents, "\n\n"), nil
}

func expand(path string) ([]string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, mderr.IORead(path, err.Error())
	}
	if !info.IsDir() {
		return []string{path}, nil
	}

	entries, err := os.ReadDir(path)
	if err != nil {
		return nil, mderr.IORead(path, err.Error())
	}
	var files []string
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != ".md" {
			continue
		}
		files = append(files, filepath.Join(path, e.Name()))
	}
	return files, nil
}

// Writer is a destination for rendered output. Every implementation must
// tolerate being called multiple times with different content (search,
// tags, and tasks all render to the same set of writers once per run).
type Writer interface {
	Write(content string) error
}

// StdoutWriter writes content to the process's standard output, followed by
// a trailing newline.
type StdoutWriter struct {
	Out *os.File
}

func (w StdoutWriter) Write(content string) error {
	out := w.Out
	if out == nil {
		out = os.Stdout
	}
	_, err := out.WriteString(content + "\n")
	return err
}

// FileWriter writes content to Path, replacing any existing file, then
// marks the new file read-only. On POSIX this is chmod 0o444; on Windows
// it's the read-only file attribute via os.Chmod with the same mode (the os
// package translates 0o444 to the read-only attribute there).
type FileWriter struct {
	Path string
}

func (w FileWriter) Write(content string) error {
	if _, err := os.Stat(w.Path); err == nil {
		if err := os.Remove(w.Path); err != nil {
			return mderr.IOWrite(w.Path)
		}
	}
	if err := os.WriteFile(w.Path, []byte(content), 0o644); err != nil {
		return mderr.IOWrite(w.Path)
	}
	if err := os.Chmod(w.Path, 0o444); err != nil && runtime.GOOS != "windows" {
		return mderr.IOWrite(w.Path)
	}
	return nil
}
