package mdsection

import (
	"sort"
	"time"

	"github.com/senna-lang/mdj/internal/mdtoken"
)

// TaskItem pairs a Task token with the section it was found in, so it can
// still be rendered with its owning date and title after being pulled out
// of the section tree.
type TaskItem struct {
	Token        mdtoken.Token
	SectionDate  time.Time
	SectionTitle mdtoken.Token
}

// ExtractTasks walks the full section tree (depth-first, pre-order) and
// collects every Task token found directly in a section's content.
func ExtractTasks(sections []Section) []TaskItem {
	var items []TaskItem
	var walk func([]Section)
	walk = func(secs []Section) {
		for _, s := range secs {
			for _, tok := range s.Content {
				if tok.Kind == mdtoken.TaskKind {
					items = append(items, TaskItem{Token: tok, SectionDate: s.Date, SectionTitle: s.Title})
				}
			}
			walk(s.Subsections)
		}
	}
	walk(sections)
	return items
}

// Filter selects which tasks a listing shows.
type Filter int

const (
	FilterAll Filter = iota
	FilterUnfinished
	FilterFinished
)

// IsFinished is true only for DONE tasks.
func (t TaskItem) IsFinished() bool {
	return t.Token.Status.State == mdtoken.Done
}

// IsUnfinished is the complement of IsFinished. Because only DONE counts as
// finished, a task under REVIEW is still unfinished and shows up under the
// unfinished filter.
func (t TaskItem) IsUnfinished() bool {
	return !t.IsFinished()
}

// FilterTasks narrows items to the given Filter.
func FilterTasks(items []TaskItem, f Filter) []TaskItem {
	if f == FilterAll {
		return items
	}
	out := make([]TaskItem, 0, len(items))
	for _, it := range items {
		switch f {
		case FilterUnfinished:
			if it.IsUnfinished() {
				out = append(out, it)
			}
		case FilterFinished:
			if it.IsFinished() {
				out = append(out, it)
			}
		}
	}
	return out
}

// Urgency scores a task for ascending sort: DONE=0, REVIEW=10, DOING=20,
// TODO=30. TODO UNTIL d scores 30 plus days*10 if d is still in the future,
// or abs(days)*100 if d is today or already past — overdue and due-today
// items escalate far faster than items with time to spare.
func Urgency(t TaskItem, today time.Time) int {
	switch t.Token.Status.State {
	case mdtoken.Done:
		return 0
	case mdtoken.Review:
		return 10
	case mdtoken.Doing:
		return 20
	case mdtoken.TodoUntil:
		days := daysBetween(today, t.Token.Status.Until)
		if days > 0 {
			return 30 + days*10
		}
		return 30 + absInt(days)*100
	default: // Todo
		return 30
	}
}

func daysBetween(from, to time.Time) int {
	from = time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, time.UTC)
	to = time.Date(to.Year(), to.Month(), to.Day(), 0, 0, 0, 0, time.UTC)
	return int(to.Sub(from).Hours() / 24)
}

func absInt(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

// Ordering selects how tasks are sorted for display.
type Ordering int

const (
	OrderUrgency Ordering = iota
	OrderOccurence
)

// Order sorts items in place according to ordering. OrderOccurence leaves
// extraction (document) order untouched.
func Order(items []TaskItem, ordering Ordering, today time.Time) {
	if ordering != OrderUrgency {
		return
	}
	sort.SliceStable(items, func(i, j int) bool {
		return Urgency(items[i], today) < Urgency(items[j], today)
	})
}
