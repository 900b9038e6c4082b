package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/studyping/internal/config"
	"github.com/sandeepkv93/studyping/internal/model"
	"github.com/sandeepkv93/studyping/internal/rollover"
	"github.com/sandeepkv93/studyping/internal/storage"
	"github.com/sandeepkv93/studyping/internal/store"
	"github.com/sandeepkv93/studyping/internal/streak"
	"github.com/sandeepkv93/studyping/internal/update"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "studyping failed: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(cfg.DBPath), 0o755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}

	records, err := storage.OpenSQLite(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer records.Close()

	now := time.Now()
	today := model.Today(now.Location())

	streakEngine, err := streak.Open(records)
	if err != nil {
		return fmt.Errorf("open streak state: %w", err)
	}
	streakReset, err := streakEngine.StartOfDay(today)
	if err != nil {
		return fmt.Errorf("roll streak forward: %w", err)
	}

	tasks, err := store.OpenTaskStore(records, streakEngine)
	if err != nil {
		return fmt.Errorf("open tasks: %w", err)
	}
	profiles, err := store.OpenProfileStore(records)
	if err != nil {
		return fmt.Errorf("open profile: %w", err)
	}

	events := rollover.NewEngine(cfg.EventBuffer)
	events.Start()
	defer events.Stop()
	if err := events.ScheduleNewDay(now); err != nil {
		return fmt.Errorf("schedule day rollover: %w", err)
	}
	scheduleDueAlerts(events, tasks, today, now.Location())

	var notifier update.DesktopNotifier = update.NoopDesktopNotifier{}
	if cfg.DesktopNotifications {
		notifier = update.ExecDesktopNotifier{}
	}

	program := tea.NewProgram(update.NewModel(update.Deps{
		Tasks:          tasks,
		Profiles:       profiles,
		Streak:         streakEngine,
		Events:         events,
		Notifier:       notifier,
		DesktopEnabled: cfg.DesktopNotifications,
		Theme:          cfg.Theme,
		Today:          today,
		StreakReset:    streakReset,
	}))
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("run ui: %w", err)
	}
	return nil
}

// scheduleDueAlerts arms a morning reminder for every open task that is due
// today or later. Overdue tasks are already visible on the dashboard, so they
// get no extra event.
func scheduleDueAlerts(events *rollover.Engine, tasks *store.TaskStore, today model.Date, loc *time.Location) {
	for _, t := range tasks.List() {
		if t.Completed || t.Due.Before(today) {
			continue
		}
		at := time.Date(t.Due.Year, t.Due.Month, t.Due.Day, 8, 0, 0, 0, loc)
		if at.Before(time.Now()) {
			at = time.Now().Add(time.Minute)
		}
		_ = events.Schedule(rollover.Event{
			Kind:   rollover.KindTaskDue,
			TaskID: t.ID,
			Title:  t.Title,
			At:     at,
		})
	}
}
