// Package project locates the .mdj project root that scopes configuration
// and the search-preset file.
//
// Two commands differ in how strictly they need one. `mdj status` inspects
// the enclosing worktree and has no meaning outside a project, so it calls
// FindRoot and fails with ErrNotInitialized. The read-only analysis
// commands (search, tags, tree, tasks) operate on explicit -i/--input paths
// and must work without `mdj init` ever having run; they call Resolve,
// which falls back to the starting directory with Initialized unset
// instead of failing.
package project

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/senna-lang/mdj/pkg/config"
)

// ErrNotInitialized is returned by FindRoot when no .mdj/ directory can be
// found by walking up the directory tree.
var ErrNotInitialized = errors.New("not an mdj project (run `mdj init` first)")

// Root is a resolved project location.
type Root struct {
	// Dir is the project root directory, or the directory resolution
	// started from when no .mdj/ was found.
	Dir string
	// Initialized reports whether Dir actually contains .mdj/. When false,
	// callers use built-in default configuration instead of reading
	// config.json from Dir.
	Initialized bool
}

// FindRoot walks up from the current working directory until it finds a
// directory containing .mdj/ and returns it. Returns ErrNotInitialized if
// the walk reaches the filesystem root first.
func FindRoot() (string, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return "", err
	}
	return searchUp(cwd)
}

// Resolve locates the enclosing project root like FindRoot, but never fails
// on an uninitialized directory: when no .mdj/ exists anywhere above the
// current working directory it returns the working directory itself with
// Initialized false.
func Resolve() (Root, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return Root{}, err
	}
	return ResolveFrom(cwd)
}

// ResolveFrom is like Resolve but starts from dir instead of the current
// working directory.
func ResolveFrom(dir string) (Root, error) {
	root, err := searchUp(dir)
	if errors.Is(err, ErrNotInitialized) {
		return Root{Dir: dir}, nil
	}
	if err != nil {
		return Root{}, err
	}
	return Root{Dir: root, Initialized: true}, nil
}

func searchUp(dir string) (string, error) {
	for current := filepath.Clean(dir); ; {
		if hasProjectDir(current) {
			return current, nil
		}
		parent := filepath.Dir(current)
		if parent == current {
			// Reached the filesystem root without finding .mdj/.
			return "", ErrNotInitialized
		}
		current = parent
	}
}

// hasProjectDir reports whether dir contains a .mdj directory. A plain file
// named .mdj does not count.
func hasProjectDir(dir string) bool {
	info, err := os.Stat(filepath.Join(dir, config.DirName))
	return err == nil && info.IsDir()
}
