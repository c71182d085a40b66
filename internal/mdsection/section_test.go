package mdsection

import (
	"testing"
	"time"

	"github.com/senna-lang/mdj/internal/mdlex"
	"github.com/senna-lang/mdj/internal/mdtoken"
)

func mustBuild(t *testing.T, input string) []Section {
	t.Helper()
	tokens, err := mdlex.Tokenize(input)
	if err != nil {
		t.Fatalf("tokenize: %v", err)
	}
	sections, err := BuildSections(tokens)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	return sections
}

func TestBuildSectionsBasic(t *testing.T) {
	input := "# 2023-10-10 Daily\n@work\nmorning notes\n## Standup\nstandup notes\n# 2023-10-11 Daily\nmore notes"
	sections := mustBuild(t, input)
	if len(sections) != 2 {
		t.Fatalf("got %d top-level sections, want 2", len(sections))
	}

	first := sections[0]
	if !first.Date.Equal(time.Date(2023, 10, 10, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("first date = %v", first.Date)
	}
	if len(first.Tags) != 1 || first.Tags[0] != "work" {
		t.Errorf("first tags = %v", first.Tags)
	}
	if len(first.Subsections) != 1 {
		t.Fatalf("got %d subsections, want 1", len(first.Subsections))
	}
	if !first.Subsections[0].Date.Equal(first.Date) {
		t.Errorf("subsection should inherit date from H1 ancestor")
	}

	second := sections[1]
	if !second.Date.Equal(time.Date(2023, 10, 11, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("second date = %v", second.Date)
	}
}

// TestBuildSectionsTwoDayJournal pins the end-to-end scenario from the
// original documentation: tags come from a section's body content, never
// from its own title.
func TestBuildSectionsTwoDayJournal(t *testing.T) {
	input := "# 2022-11-02\n## School\n@school\nToday was a normal day at school.\n" +
		"## Freetime\nDONE: Clean room\n---\n# 2022-11-03\n## Meeting\n" +
		"In the morning i had a meeting with @roger (roger.example@gmail.com).\n" +
		"TODO: Inform roger about the decision"
	sections := mustBuild(t, input)
	if len(sections) != 2 {
		t.Fatalf("got %d top-level sections, want 2", len(sections))
	}

	day1 := sections[0]
	if !day1.Date.Equal(time.Date(2022, 11, 2, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("day1 date = %v", day1.Date)
	}
	if len(day1.Subsections) != 2 {
		t.Fatalf("got %d subsections on day1, want 2", len(day1.Subsections))
	}
	school := day1.Subsections[0]
	if len(school.Tags) != 1 || school.Tags[0] != "school" {
		t.Errorf("school.Tags = %v, want [\"school\"]", school.Tags)
	}
	freetime := day1.Subsections[1]
	if len(freetime.Tags) != 0 {
		t.Errorf("freetime.Tags = %v, want none", freetime.Tags)
	}
	hasDoneTask := false
	for _, tok := range freetime.Content {
		if tok.Kind == mdtoken.TaskKind && tok.Status.State == mdtoken.Done {
			hasDoneTask = true
		}
	}
	if !hasDoneTask {
		t.Error("expected freetime section to contain a DONE task")
	}

	day2 := sections[1]
	if !day2.Date.Equal(time.Date(2022, 11, 3, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("day2 date = %v", day2.Date)
	}
	if len(day2.Subsections) != 1 {
		t.Fatalf("got %d subsections on day2, want 1", len(day2.Subsections))
	}
	meeting := day2.Subsections[0]
	if len(meeting.Tags) != 1 || meeting.Tags[0] != "roger" {
		t.Errorf("meeting.Tags = %v, want [\"roger\"]", meeting.Tags)
	}
	hasTodoTask := false
	for _, tok := range meeting.Content {
		if tok.Kind == mdtoken.TaskKind && tok.Status.State == mdtoken.Todo {
			hasTodoTask = true
		}
	}
	if !hasTodoTask {
		t.Error("expected meeting section to contain a TODO task")
	}
}

func TestBuildSectionsMissingDateErrors(t *testing.T) {
	tokens, err := mdlex.Tokenize("# Daily without a date\nsome content")
	if err != nil {
		t.Fatalf("tokenize: %v", err)
	}
	if _, err := BuildSections(tokens); err == nil {
		t.Fatal("expected an error for a dateless H1")
	}
}

func TestBuildSectionsReachUp(t *testing.T) {
	input := "# 2023-01-01 A\n## Sub one\n### Sub sub\n## Sub two\n# 2023-01-02 B"
	sections := mustBuild(t, input)
	if len(sections) != 2 {
		t.Fatalf("got %d sections, want 2", len(sections))
	}
	if len(sections[0].Subsections) != 2 {
		t.Fatalf("expected reach-up to end 'Sub sub' and attach 'Sub two' to A, got %d children", len(sections[0].Subsections))
	}
}

func TestExtractTasksAndFilter(t *testing.T) {
	input := "# 2023-10-10 Daily\nTODO: write the report\nDONE: send the invoice\nREVIEW: check the draft"
	sections := mustBuild(t, input)
	items := ExtractTasks(sections)
	if len(items) != 3 {
		t.Fatalf("got %d tasks, want 3", len(items))
	}

	// REVIEW is not DONE, so it is unfinished alongside the TODO.
	unfinished := FilterTasks(items, FilterUnfinished)
	if len(unfinished) != 2 ||
		unfinished[0].Token.Status.State != mdtoken.Todo ||
		unfinished[1].Token.Status.State != mdtoken.Review {
		t.Errorf("unfinished = %+v", unfinished)
	}

	finished := FilterTasks(items, FilterFinished)
	if len(finished) != 1 || finished[0].Token.Status.State != mdtoken.Done {
		t.Errorf("finished = %+v", finished)
	}

	all := FilterTasks(items, FilterAll)
	if len(all) != 3 {
		t.Errorf("all = %+v", all)
	}
}

func TestUrgencyOrdering(t *testing.T) {
	today := time.Date(2023, 10, 10, 0, 0, 0, 0, time.UTC)
	items := []TaskItem{
		{Token: mdtoken.Token{Status: mdtoken.TaskStatus{State: mdtoken.Todo}}},
		{Token: mdtoken.Token{Status: mdtoken.TaskStatus{State: mdtoken.Done}}},
		{Token: mdtoken.Token{Status: mdtoken.TaskStatus{State: mdtoken.TodoUntil, Until: today.AddDate(0, 0, -2)}}},
	}
	Order(items, OrderUrgency, today)
	if items[0].Token.Status.State != mdtoken.Done {
		t.Errorf("expected Done first (urgency 0), got %+v", items[0])
	}
}
