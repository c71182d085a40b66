package cmd

import (
	"strings"
	"testing"

	"github.com/senna-lang/mdj/internal/mdsection"
	"github.com/senna-lang/mdj/internal/mdtoken"
)

func TestTree_RendersDatedSectionsAndTasks(t *testing.T) {
	dir := setupInitedProject(t)
	journal := writeTempJournal(t, dir, "journal.md", twoDayJournal)

	out := captureOutput(t, func() {
		if err := runTree([]string{journal}, "", false, true, true); err != nil {
			t.Fatalf("runTree failed: %v", err)
		}
	})

	for _, want := range []string{"2022-11-02", "2022-11-03", "School", "Freetime", "Meeting", "DONE: Clean room", "TODO: Inform roger"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected tree output to contain %q, got: %q", want, out)
		}
	}
}

func TestTree_DebugPrintsTokenDebugStrings(t *testing.T) {
	dir := setupInitedProject(t)
	journal := writeTempJournal(t, dir, "journal.md", "# 2022-11-02\n@school\n")

	out := captureOutput(t, func() {
		if err := runTree([]string{journal}, "", true, true, true); err != nil {
			t.Fatalf("runTree failed: %v", err)
		}
	})

	if !strings.Contains(out, "<Tag:") {
		t.Errorf("expected debug token representation, got: %q", out)
	}
}

func TestTree_EmptyLeafSubsectionIsDroppedUnlessTitleIsEmpty(t *testing.T) {
	titled := mdsection.Section{
		Title: mdtoken.Token{Kind: mdtoken.HeadingH2Kind, Children: []mdtoken.Token{mdtoken.Text("Idle")}},
	}
	untitled := mdsection.Section{Title: mdtoken.Token{}}
	parent := mdsection.Section{
		Title:       mdtoken.Token{Kind: mdtoken.HeadingH1Kind, Children: []mdtoken.Token{mdtoken.Text("2022-11-02")}},
		Subsections: []mdsection.Section{titled, untitled},
	}

	out := sectionsAsTree([]mdsection.Section{parent}, false)

	if strings.Contains(out, "Idle") {
		t.Errorf("expected the non-empty-titled empty leaf to be dropped entirely, got: %q", out)
	}
	lines := strings.Split(out, "\n")
	if len(lines) != 2 {
		t.Fatalf("expected the parent line plus one empty child line, got: %q", out)
	}
	if strings.TrimSpace(strings.Replace(lines[1], "└── ", "", 1)) != "" {
		t.Errorf("expected the empty-titled leaf to contribute one empty child line, got: %q", lines[1])
	}
}

func TestTree_RequiresInput(t *testing.T) {
	setupInitedProject(t)
	if err := runTree(nil, "", false, false, true); err == nil {
		t.Fatal("expected an error when no input given")
	}
}
