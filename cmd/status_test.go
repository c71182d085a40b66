package cmd

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
)

func testSignature() *object.Signature {
	return &object.Signature{
		Name:  "mdj test",
		Email: "mdj-test@example.com",
		When:  time.Date(2026, 1, 5, 12, 0, 0, 0, time.UTC),
	}
}

// initGitRepoWithJournal creates a bare-bones git repository containing a
// committed journal.md plus an untracked extra.md, and returns its root.
func initGitRepoWithJournal(t *testing.T) (dir, journal string) {
	t.Helper()
	dir = t.TempDir()
	repo, err := gogit.PlainInit(dir, false)
	if err != nil {
		t.Fatalf("PlainInit: %v", err)
	}
	journal = filepath.Join(dir, "journal.md")
	if err := os.WriteFile(journal, []byte("# 2026-01-05\nnotes\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	wt, err := repo.Worktree()
	if err != nil {
		t.Fatalf("Worktree: %v", err)
	}
	if _, err := wt.Add("journal.md"); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if _, err := wt.Commit("initial", &gogit.CommitOptions{
		Author: testSignature(),
	}); err != nil {
		t.Fatalf("Commit: %v", err)
	}
	if err := os.WriteFile(journal, []byte("# 2026-01-05\nnotes\nmore\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "extra.md"), []byte("# 2026-01-06\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	return dir, journal
}

func TestStatus_ReportsModifiedAndUntracked(t *testing.T) {
	dir, journal := initGitRepoWithJournal(t)
	orig, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = os.Chdir(orig) })
	if err := runInit(); err != nil {
		t.Fatalf("runInit: %v", err)
	}

	out := captureOutput(t, func() {
		if err := runStatus([]string{journal, filepath.Join(dir, "extra.md")}); err != nil {
			t.Fatalf("runStatus failed: %v", err)
		}
	})

	if !strings.Contains(out, "Not staged:") {
		t.Errorf("expected the modified journal under 'Not staged:', got: %q", out)
	}
	if !strings.Contains(out, "Untracked:") {
		t.Errorf("expected extra.md under 'Untracked:', got: %q", out)
	}
}

func TestStatus_RequiresInput(t *testing.T) {
	if err := runStatus(nil); err == nil {
		t.Fatal("expected an error when no input given")
	}
}
