// Package gitutil reports the git working-tree status of journal files via
// go-git, for the read-only `mdj status` command. mdj never writes to a
// user's git history itself (there is no save/commit workflow in this
// domain), so this package only ever reads.
package gitutil

import (
	"fmt"
	"path/filepath"

	gogit "github.com/go-git/go-git/v5"
)

// FileStatus reports the staged and worktree state of a single path,
// relative to the repository root.
type FileStatus struct {
	Path     string
	Staging  StatusCode
	Worktree StatusCode
}

// StatusCode mirrors go-git's git.StatusCode so callers outside this
// package never need to import go-git directly.
type StatusCode byte

const (
	Unmodified         StatusCode = StatusCode(gogit.Unmodified)
	Untracked          StatusCode = StatusCode(gogit.Untracked)
	Modified           StatusCode = StatusCode(gogit.Modified)
	Added              StatusCode = StatusCode(gogit.Added)
	Deleted            StatusCode = StatusCode(gogit.Deleted)
	Renamed            StatusCode = StatusCode(gogit.Renamed)
	Copied             StatusCode = StatusCode(gogit.Copied)
	UpdatedButUnmerged StatusCode = StatusCode(gogit.UpdatedButUnmerged)
)

// String renders a status code the way `git status --short` does: a single
// letter, or '?' for an untracked file.
func (c StatusCode) String() string {
	switch gogit.StatusCode(c) {
	case gogit.Unmodified:
		return " "
	case gogit.Untracked:
		return "?"
	case gogit.Modified:
		return "M"
	case gogit.Added:
		return "A"
	case gogit.Deleted:
		return "D"
	case gogit.Renamed:
		return "R"
	case gogit.Copied:
		return "C"
	case gogit.UpdatedButUnmerged:
		return "U"
	default:
		return " "
	}
}

// StatusForPaths opens the git repository containing projectRoot and
// reports the status of each of paths (absolute or relative to the current
// directory), skipping any path that isn't tracked or modified
// (Unmodified/Unmodified on both sides) unless includeUnmodified is set.
func StatusForPaths(projectRoot string, paths []string, includeUnmodified bool) ([]FileStatus, error) {
	repo, err := gogit.PlainOpenWithOptions(projectRoot, &gogit.PlainOpenOptions{
		DetectDotGit: true,
	})
	if err != nil {
		return nil, fmt.Errorf("open git repository: %w", err)
	}

	worktree, err := repo.Worktree()
	if err != nil {
		return nil, fmt.Errorf("get worktree: %w", err)
	}

	fullStatus, err := worktree.Status()
	if err != nil {
		return nil, fmt.Errorf("git status: %w", err)
	}

	repoRoot := worktree.Filesystem.Root()
	var results []FileStatus
	for _, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			return nil, fmt.Errorf("resolve path %s: %w", p, err)
		}
		rel, err := filepath.Rel(repoRoot, abs)
		if err != nil {
			return nil, fmt.Errorf("compute relative path for %s: %w", p, err)
		}
		rel = filepath.ToSlash(rel)

		st, tracked := fullStatus[rel]
		if !tracked {
			if includeUnmodified {
				results = append(results, FileStatus{Path: rel, Staging: Unmodified, Worktree: Unmodified})
			}
			continue
		}
		fs := FileStatus{Path: rel, Staging: StatusCode(st.Staging), Worktree: StatusCode(st.Worktree)}
		if !includeUnmodified && fs.Staging == Unmodified && fs.Worktree == Unmodified {
			continue
		}
		results = append(results, fs)
	}
	return results, nil
}
