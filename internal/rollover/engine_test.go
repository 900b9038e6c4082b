package rollover

import (
	"testing"
	"time"
)

func TestEngineEmitsInFireOrder(t *testing.T) {
	engine := NewEngine(8)
	engine.Start()
	defer engine.Stop()

	now := time.Now()
	if err := engine.Schedule(Event{Kind: KindTaskDue, TaskID: "later", At: now.Add(80 * time.Millisecond)}); err != nil {
		t.Fatalf("schedule later: %v", err)
	}
	if err := engine.Schedule(Event{Kind: KindTaskDue, TaskID: "sooner", At: now.Add(20 * time.Millisecond)}); err != nil {
		t.Fatalf("schedule sooner: %v", err)
	}

	first := waitEvent(t, engine.C(), time.Second)
	second := waitEvent(t, engine.C(), time.Second)
	if first.TaskID != "sooner" || second.TaskID != "later" {
		t.Fatalf("unexpected order: first=%s second=%s", first.TaskID, second.TaskID)
	}
}

func TestEngineDropsWhenConsumerIsSlow(t *testing.T) {
	engine := NewEngine(1)
	engine.Start()
	defer engine.Stop()

	at := time.Now().Add(20 * time.Millisecond)
	for i := 0; i < 25; i++ {
		if err := engine.Schedule(Event{Kind: KindTaskDue, TaskID: "evt", At: at}); err != nil {
			t.Fatalf("schedule event: %v", err)
		}
	}

	time.Sleep(120 * time.Millisecond)
	if engine.Dropped() == 0 {
		t.Fatalf("expected dropped events > 0, got %d", engine.Dropped())
	}
}

func TestScheduleValidatesFireTime(t *testing.T) {
	engine := NewEngine(1)
	if err := engine.Schedule(Event{Kind: KindNewDay}); err != ErrInvalidFireTime {
		t.Fatalf("expected ErrInvalidFireTime, got %v", err)
	}
}

func TestMidnightAfter(t *testing.T) {
	loc, err := time.LoadLocation("Asia/Kolkata")
	if err != nil {
		t.Fatalf("load location: %v", err)
	}
	now := time.Date(2024, 5, 1, 23, 45, 10, 0, loc)
	next := MidnightAfter(now)
	if next.Year() != 2024 || next.Month() != time.May || next.Day() != 2 {
		t.Fatalf("unexpected day: %v", next)
	}
	if next.Hour() != 0 || next.Minute() != 0 || next.Second() != 0 {
		t.Fatalf("not midnight: %v", next)
	}
	if next.Location() != loc {
		t.Fatalf("location changed: %v", next.Location())
	}
	// month rollover
	eom := time.Date(2024, 5, 31, 6, 0, 0, 0, loc)
	if got := MidnightAfter(eom); got.Month() != time.June || got.Day() != 1 {
		t.Fatalf("month rollover wrong: %v", got)
	}
}

func waitEvent(t *testing.T, ch <-chan Event, timeout time.Duration) Event {
	t.Helper()
	select {
	case ev := <-ch:
		return ev
	case <-time.After(timeout):
		t.Fatalf("timed out waiting for event")
		return Event{}
	}
}

func TestScheduleNewDayEmitsNewDayEvent(t *testing.T) {
	engine := NewEngine(4)
	engine.Start()
	defer engine.Stop()

	// a reference instant from yesterday puts the next midnight in the
	// past, so the event is due immediately
	ref := time.Now().Add(-24 * time.Hour)
	if err := engine.ScheduleNewDay(ref); err != nil {
		t.Fatalf("schedule new day: %v", err)
	}

	ev := waitEvent(t, engine.C(), time.Second)
	if ev.Kind != KindNewDay {
		t.Fatalf("expected new day event, got %q", ev.Kind)
	}
	if !ev.At.Equal(MidnightAfter(ref)) {
		t.Fatalf("expected fire time %v, got %v", MidnightAfter(ref), ev.At)
	}
	if ev.TaskID != "" {
		t.Fatalf("new day events carry no task, got %q", ev.TaskID)
	}
}
