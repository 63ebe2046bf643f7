package tui

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/vovakirdan/tui-craft/internal/core"
	"github.com/vovakirdan/tui-craft/internal/storage"
)

func TestStatsboardAllTab(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "craft.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer store.Close()

	if _, err := store.SaveSession("classic", 7, core.SessionStats{Ticks: 10, Dug: 2, Built: 1}); err != nil {
		t.Fatal(err)
	}
	if _, err := store.SaveSession("caverns", 8, core.SessionStats{Ticks: 5, Picked: 3}); err != nil {
		t.Fatal(err)
	}

	m := NewStatsboardModel(store, 100, 30)
	if m.currentTab().mode != "" || m.currentTab().title != "All" {
		t.Fatalf("first tab = %+v, expected All", m.currentTab())
	}
	if len(m.sessions) != 2 {
		t.Fatalf("sessions = %d, expected 2", len(m.sessions))
	}
	if m.totals.Sessions != 2 || m.totals.Ticks != 15 || m.totals.Picked != 3 {
		t.Errorf("totals = %+v", m.totals)
	}

	rows := m.rows()
	if len(rows) != 2 || len(rows[0]) != 7 {
		t.Fatalf("rows = %v, expected 2 rows with a mode column", rows)
	}

	view := m.View()
	if !strings.Contains(view, "2 sessions") {
		t.Errorf("view is missing the totals line:\n%s", view)
	}
}

func TestStatsboardWithoutStore(t *testing.T) {
	m := NewStatsboardModel(nil, 40, 12)
	if len(m.sessions) != 0 || m.loadErr != nil {
		t.Fatalf("sessions = %v err = %v", m.sessions, m.loadErr)
	}
	if !strings.Contains(m.View(), "No sessions recorded yet.") {
		t.Error("empty board should say so")
	}

	// A single tab wraps onto itself.
	m.switchTab(1)
	if m.tab != 0 {
		t.Errorf("tab = %d, expected 0", m.tab)
	}
}
