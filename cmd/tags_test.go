package cmd

import (
	"strings"
	"testing"
)

const tagsFixture = `# 2026-01-05
@work @urgent
Some text about the day.

## Subsection
@work
More notes.
`

func TestTags_CountsEachTag(t *testing.T) {
	dir := setupInitedProject(t)
	journal := writeTempJournal(t, dir, "journal.md", tagsFixture)

	out := captureOutput(t, func() {
		if err := runTags([]string{journal}, "", "", true); err != nil {
			t.Fatalf("runTags failed: %v", err)
		}
	})

	if !strings.Contains(out, "work") || !strings.Contains(out, "urgent") {
		t.Errorf("expected both tags in output, got: %q", out)
	}
	// "work" appears twice (day body + subsection body), "urgent" once.
	if !strings.Contains(out, "work                          2") {
		t.Errorf("expected work count of 2, got: %q", out)
	}
}

func TestTags_NoTagsPrintsMessage(t *testing.T) {
	dir := setupInitedProject(t)
	journal := writeTempJournal(t, dir, "journal.md", "# 2026-01-05\n\nno tags here\n")

	out := captureOutput(t, func() {
		if err := runTags([]string{journal}, "", "", true); err != nil {
			t.Fatalf("runTags failed: %v", err)
		}
	})

	if !strings.Contains(out, "no tags found") {
		t.Errorf("expected 'no tags found', got: %q", out)
	}
}

func TestTags_OrderingCount_SortsAscending(t *testing.T) {
	dir := setupInitedProject(t)
	journal := writeTempJournal(t, dir, "journal.md", tagsFixture)

	out := captureOutput(t, func() {
		if err := runTags([]string{journal}, "", "count", true); err != nil {
			t.Fatalf("runTags failed: %v", err)
		}
	})

	workIdx := strings.Index(out, "work")
	urgentIdx := strings.Index(out, "urgent")
	if workIdx == -1 || urgentIdx == -1 || urgentIdx > workIdx {
		t.Errorf("expected urgent (count 1) before work (count 2), got: %q", out)
	}
}

func TestTags_RequiresInput(t *testing.T) {
	setupInitedProject(t)
	if err := runTags(nil, "", "", true); err == nil {
		t.Fatal("expected error when no input given")
	}
}
