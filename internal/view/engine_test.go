package view

import (
	"testing"
	"time"

	"github.com/sandeepkv93/studyping/internal/model"
)

func day(d int) model.Date {
	return model.Date{Year: 2024, Month: time.May, Day: d}
}

func task(id string, due model.Date, opts ...func(*model.Task)) model.Task {
	t := model.Task{
		ID:        id,
		Title:     "Task " + id,
		Subject:   "Mathematics",
		Type:      model.TypeHomework,
		Due:       due,
		Priority:  model.PriorityMedium,
		CreatedAt: time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC),
	}
	for _, opt := range opts {
		opt(&t)
	}
	return t
}

func completed(t *model.Task)    { t.Completed = true }
func highPriority(t *model.Task) { t.Priority = model.PriorityHigh }
func asExam(t *model.Task)       { t.Type = model.TypeExam }
func asClassTest(t *model.Task)  { t.Type = model.TypeClassTest }

func ids(tasks []model.Task) []string {
	out := make([]string, len(tasks))
	for i, t := range tasks {
		out[i] = t.ID
	}
	return out
}

func assertOrder(t *testing.T, got []model.Task, want ...string) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("expected %d tasks %v, got %v", len(want), want, ids(got))
	}
	for i := range want {
		if got[i].ID != want[i] {
			t.Fatalf("position %d: expected %s, got %v", i, want[i], ids(got))
		}
	}
}

func TestAllSortsIncompleteFirstThenDate(t *testing.T) {
	tasks := []model.Task{
		task("done-early", day(1), completed),
		task("open-late", day(9)),
		task("open-early", day(2)),
		task("done-late", day(8), completed),
	}
	got := Apply(tasks, FilterAll, day(5))
	assertOrder(t, got, "open-early", "open-late", "done-early", "done-late")
}

func TestAllKeepsInsertionOrderOnDateTies(t *testing.T) {
	tasks := []model.Task{
		task("first", day(3)),
		task("second", day(3)),
		task("third", day(3)),
	}
	got := Apply(tasks, FilterAll, day(3))
	assertOrder(t, got, "first", "second", "third")
}

func TestPriorityFilter(t *testing.T) {
	tasks := []model.Task{
		task("high-open", day(1), highPriority),
		task("low-open", day(2)),
		task("high-done", day(1), highPriority, completed),
	}
	got := Apply(tasks, FilterPriority, day(1))
	assertOrder(t, got, "high-open")
}

// The worked example from the design discussion: only the high-priority
// incomplete task survives the priority filter.
func TestPriorityFilterExample(t *testing.T) {
	tasks := []model.Task{
		task("a", day(1), highPriority),
		task("b", day(2)),
	}
	got := Apply(tasks, FilterPriority, day(1))
	assertOrder(t, got, "a")
}

func TestTodayFilter(t *testing.T) {
	tasks := []model.Task{
		task("today-open", day(5)),
		task("today-done", day(5), completed),
		task("tomorrow", day(6)),
		task("yesterday", day(4)),
	}
	got := Apply(tasks, FilterToday, day(5))
	assertOrder(t, got, "today-open")
}

func TestExamsFilterIncludesClassTests(t *testing.T) {
	tasks := []model.Task{
		task("exam-late", day(9), asExam),
		task("homework", day(1)),
		task("test-early", day(2), asClassTest),
		task("exam-done", day(5), asExam, completed),
	}
	got := Apply(tasks, FilterExams, day(1))
	assertOrder(t, got, "test-early", "exam-done", "exam-late")
}

func TestEveryResultSatisfiesPredicate(t *testing.T) {
	tasks := []model.Task{
		task("a", day(1), highPriority),
		task("b", day(2), asExam),
		task("c", day(3), completed),
		task("d", day(3), asClassTest, highPriority),
		task("e", day(5)),
	}
	today := day(3)
	for _, f := range Filters() {
		for _, got := range Apply(tasks, f, today) {
			if !matches(got, f, today) {
				t.Fatalf("filter %s returned non-matching task %s", f, got.ID)
			}
		}
		// nothing qualifying is omitted
		want := 0
		for _, in := range tasks {
			if matches(in, f, today) {
				want++
			}
		}
		if got := len(Apply(tasks, f, today)); got != want {
			t.Fatalf("filter %s returned %d tasks, want %d", f, got, want)
		}
	}
}

func TestDatesNonDecreasing(t *testing.T) {
	tasks := []model.Task{
		task("a", day(7)), task("b", day(2)), task("c", day(9), asExam),
		task("d", day(1), completed), task("e", day(4), highPriority),
	}
	for _, f := range Filters() {
		got := Apply(tasks, f, day(4))
		for i := 1; i < len(got); i++ {
			if f == FilterAll && got[i-1].Completed != got[i].Completed {
				continue // group boundary in the all view
			}
			if got[i-1].Due.After(got[i].Due) {
				t.Fatalf("filter %s: dates decrease at %d: %v", f, i, ids(got))
			}
		}
	}
}

func TestEmptyResultIsValid(t *testing.T) {
	got := Apply(nil, FilterAll, day(1))
	if len(got) != 0 {
		t.Fatalf("expected empty result, got %v", ids(got))
	}
	got = Apply([]model.Task{task("a", day(2))}, FilterToday, day(1))
	if len(got) != 0 {
		t.Fatalf("expected empty today view, got %v", ids(got))
	}
}

func TestApplyDoesNotMutateInput(t *testing.T) {
	tasks := []model.Task{
		task("z", day(9)),
		task("a", day(1)),
	}
	_ = Apply(tasks, FilterAll, day(1))
	if tasks[0].ID != "z" || tasks[1].ID != "a" {
		t.Fatalf("input reordered: %v", ids(tasks))
	}
}

func TestFilterHeadings(t *testing.T) {
	cases := map[Filter]string{
		FilterAll:      "Upcoming Tasks",
		FilterPriority: "Priority Tasks",
		FilterToday:    "Due Today",
		FilterExams:    "Exams Corner",
	}
	for f, want := range cases {
		if got := f.Heading(); got != want {
			t.Fatalf("heading for %s = %q, want %q", f, got, want)
		}
	}
}
