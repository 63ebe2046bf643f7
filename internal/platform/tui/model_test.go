package tui

import (
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-craft/internal/core"
	"github.com/vovakirdan/tui-craft/internal/storage"
)

// fakeGame records what the model hands it.
type fakeGame struct {
	resets  []core.RuntimeConfig
	frames  []core.InputFrame
	resizes [][2]int
	state   core.GameState
}

func (g *fakeGame) ID() string    { return "fake" }
func (g *fakeGame) Title() string { return "Fake" }

func (g *fakeGame) Reset(cfg core.RuntimeConfig) {
	g.resets = append(g.resets, cfg)
	g.state = core.GameState{Seed: cfg.Seed}
}

func (g *fakeGame) Step(in core.InputFrame) core.StepResult {
	g.frames = append(g.frames, in.Clone())
	if in.Has(core.ActionPause) {
		g.state.Paused = !g.state.Paused
	}
	if !g.state.Paused {
		g.state.Stats.Ticks++
	}
	return core.StepResult{State: g.state}
}

func (g *fakeGame) Render(s *core.Screen) {
	s.Clear()
	s.DrawText(0, 0, "fake")
}

func (g *fakeGame) State() core.GameState { return g.state }

func (g *fakeGame) Resize(w, h int) { g.resizes = append(g.resizes, [2]int{w, h}) }

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	nm, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return nm, cmd
}

func newTestModel(t *testing.T, withStore bool) (Model, *fakeGame, *storage.Store) {
	t.Helper()
	var store *storage.Store
	if withStore {
		var err error
		store, err = storage.Open(filepath.Join(t.TempDir(), "craft.db"))
		if err != nil {
			t.Fatalf("Open: %v", err)
		}
		t.Cleanup(func() { store.Close() })
	}
	game := &fakeGame{}
	m := NewModel(game, store, core.RuntimeConfig{ScreenW: 40, ScreenH: 12, TickRate: 30, Seed: 9})
	return m, game, store
}

func TestModelFirstTickResets(t *testing.T) {
	m, game, _ := newTestModel(t, false)

	if m.View() != "" {
		t.Error("View before the first tick should be empty")
	}
	m, cmd := update(t, m, TickMsg{})
	if cmd == nil {
		t.Error("tick should schedule the next tick")
	}
	if len(game.resets) != 1 || game.resets[0].Seed != 9 || game.resets[0].ScreenW != 40 {
		t.Fatalf("resets = %+v, expected one reset with seed 9", game.resets)
	}
	if len(game.frames) != 1 {
		t.Errorf("steps = %d, expected 1", len(game.frames))
	}
	if m.View() == "" {
		t.Error("View after the first tick should render")
	}

	m, _ = update(t, m, TickMsg{})
	if len(game.resets) != 1 {
		t.Errorf("resets = %d after second tick, expected 1", len(game.resets))
	}
}

func TestModelForwardsInput(t *testing.T) {
	m, game, _ := newTestModel(t, false)

	m, _ = update(t, m, runeKey('d'))
	m, _ = update(t, m, tea.MouseMsg{X: 3, Y: 5, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	m, _ = update(t, m, TickMsg{})
	_, _ = update(t, m, TickMsg{})

	first := game.frames[0]
	if !first.Has(core.ActionMoveRight) || first.Click == nil || first.Click.X != 3 || first.Click.Y != 5 {
		t.Errorf("first frame = %+v click %+v, expected move right and click (3, 5)", first.Actions, first.Click)
	}
	if !game.frames[1].Empty() {
		t.Errorf("second frame = %+v, expected cleared input", game.frames[1].Actions)
	}
}

func TestModelResizeKeepsWorld(t *testing.T) {
	m, game, _ := newTestModel(t, false)

	// Before the world exists the size is only remembered.
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 100, Height: 30})
	m, _ = update(t, m, TickMsg{})
	if game.resets[0].ScreenW != 100 || len(game.resizes) != 0 {
		t.Fatalf("reset = %+v resizes = %v", game.resets[0], game.resizes)
	}

	_, _ = update(t, m, tea.WindowSizeMsg{Width: 60, Height: 20})
	if len(game.resets) != 1 {
		t.Errorf("resize regenerated the world")
	}
	if len(game.resizes) != 1 || game.resizes[0] != [2]int{60, 20} {
		t.Errorf("resizes = %v, expected [[60 20]]", game.resizes)
	}
}

func TestModelSavesSessions(t *testing.T) {
	m, _, store := newTestModel(t, true)

	m, _ = update(t, m, TickMsg{})
	m, _ = update(t, m, TickMsg{})
	m, _ = update(t, m, runeKey('r'))
	m, _ = update(t, m, TickMsg{})

	sessions, err := store.RecentSessions("fake", 10)
	if err != nil {
		t.Fatalf("RecentSessions: %v", err)
	}
	if len(sessions) != 1 || sessions[0].Stats.Ticks != 2 || sessions[0].Seed != 9 {
		t.Fatalf("sessions after restart = %+v, expected one with 2 ticks", sessions)
	}

	m, cmd := update(t, m, runeKey('q'))
	if !m.IsQuitting() || cmd == nil {
		t.Fatal("q should quit")
	}
	sessions, _ = store.RecentSessions("fake", 10)
	if len(sessions) != 2 {
		t.Errorf("sessions after quit = %d, expected 2", len(sessions))
	}
}

func TestModelQuitWithoutTicksSavesNothing(t *testing.T) {
	m, _, store := newTestModel(t, true)

	_, _ = update(t, m, runeKey('q'))
	sessions, err := store.RecentSessions("", 10)
	if err != nil {
		t.Fatalf("RecentSessions: %v", err)
	}
	if len(sessions) != 0 {
		t.Errorf("sessions = %d, expected none", len(sessions))
	}
}

func TestModelBackToMenu(t *testing.T) {
	m, _, _ := newTestModel(t, false)
	m, _ = update(t, m, TickMsg{})

	// Ignored unless the model belongs to a menu session.
	m, _ = update(t, m, runeKey('b'))
	if m.BackToMenu() {
		t.Fatal("standalone model should not go back")
	}

	m.backable = true
	m, _ = update(t, m, runeKey('b'))
	if m.BackToMenu() {
		t.Fatal("back requires the pause screen")
	}

	m, _ = update(t, m, runeKey('p'))
	m, _ = update(t, m, TickMsg{})
	m, cmd := update(t, m, runeKey('b'))
	if !m.BackToMenu() {
		t.Error("b while paused should go back")
	}
	if cmd != nil {
		t.Error("going back should not quit the program")
	}
}
