package tui

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-galaxia/internal/core"
	"github.com/vovakirdan/tui-galaxia/internal/progression"
	"github.com/vovakirdan/tui-galaxia/internal/sim"
	"github.com/vovakirdan/tui-galaxia/internal/storage"
)

// Model is the Bubble Tea model for one player's game.
type Model struct {
	engine   *sim.Engine
	screen   *core.Screen
	store    *storage.Store
	keys     *KeyMapper
	help     help.Model
	config   core.RuntimeConfig
	start    time.Time
	frame    *core.InputFrame
	pointer  *float64
	snap     sim.Snapshot
	status   string
	board    *ScoreboardModel
	quitting bool
}

// NewModel creates a Bubble Tea model driving e. store may be nil; it is
// only read for the scoreboard.
func NewModel(e *sim.Engine, store *storage.Store, cfg core.RuntimeConfig) Model {
	frame := core.NewInputFrame()
	return Model{
		engine: e,
		screen: core.NewScreen(cfg.ScreenW, max(cfg.ScreenH-1, 1)),
		store:  store,
		keys:   NewKeyMapper(),
		help:   help.New(),
		config: cfg,
		frame:  &frame,
		snap:   e.Snapshot(),
	}
}

// RunSaver returns an OnRunEnd hook that writes finished runs to store.
func RunSaver(store *storage.Store, seed int64, logger *log.Logger) func(sim.RunResult) {
	return func(r sim.RunResult) {
		if store == nil {
			return
		}
		if r.Score > 0 {
			if _, err := store.SaveScore(storage.ScoreEntry{
				Hero:     string(r.Hero),
				Score:    r.Score,
				Level:    r.Level,
				HardMode: r.HardMode,
			}); err != nil && logger != nil {
				logger.Error("cannot save score", "error", err)
			}
		}
		if _, err := store.SaveRun(storage.RunRecord{
			Seed:       seed,
			Hero:       string(r.Hero),
			HardMode:   r.HardMode,
			Score:      r.Score,
			Level:      r.Level,
			Outcome:    r.Outcome,
			Currency:   r.Currency,
			Parts:      r.Parts,
			DurationMS: int64(r.Duration),
		}); err != nil && logger != nil {
			logger.Error("cannot save run", "error", err)
		}
	}
}

// Init starts the tick loop.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.board != nil {
		return m.updateBoard(msg)
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		m.handleMouse(msg)
		return m, nil

	case tea.WindowSizeMsg:
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.screen.Resize(msg.Width, max(msg.Height-1, 1)) // last row holds the help bar
		m.help.Width = msg.Width
		return m, nil

	case tea.FocusMsg, tea.BlurMsg:
		m.keys.Release()
		return m, nil

	case TickMsg:
		return m.handleTick(time.Time(msg))
	}

	return m, nil
}

// updateBoard forwards messages to the open scoreboard. Ticks keep
// running so a paused engine clock stays in step.
func (m Model) updateBoard(msg tea.Msg) (tea.Model, tea.Cmd) {
	if tick, ok := msg.(TickMsg); ok {
		return m.handleTick(time.Time(tick))
	}
	next, cmd := m.board.Update(msg)
	board := next.(ScoreboardModel)
	switch {
	case board.IsQuitting():
		m.quitting = true
	case board.IsGoingBack():
		m.board = nil
		return m, cmd
	}
	m.board = &board
	return m, cmd
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}

	keys := m.keys.Keys()
	menu := m.snap.Mode == sim.ModeIdle
	switch {
	case key.Matches(msg, keys.Hero) && menu:
		m.cycleHero()
		return m, nil
	case key.Matches(msg, keys.Hard) && menu:
		m.status = ""
		if err := m.engine.SetHardMode(!m.engine.MenuHard()); err != nil {
			m.status = "Hard mode is locked"
		}
		m.snap = m.engine.Snapshot()
		return m, nil
	case key.Matches(msg, keys.Scores) && menu:
		board := NewScoreboardModel(m.store, m.config.ScreenW, m.config.ScreenH)
		board.embedded = true
		m.board = &board
		return m, nil
	case key.Matches(msg, keys.Buy):
		m.buy(msg.String())
		return m, nil
	}

	if m.keys.Press(msg, time.Now(), m.frame) {
		m.quitting = true
		if m.snap.Mode != sim.ModeIdle {
			if err := m.engine.ReturnToMenu(); err != nil {
				log.Debug("cannot abandon run", "error", err)
			}
		}
		return m, tea.Quit
	}
	return m, nil
}

// handleMouse converts a pointer column into an arena X.
func (m *Model) handleMouse(msg tea.MouseMsg) {
	f, ok := newField(m.screen, m.engine.Config().Arena)
	if !ok {
		return
	}
	x := (float64(msg.X-f.x0) + 0.5) / f.sx
	m.pointer = &x
}

// cycleHero selects the next unlocked hero in menu order.
func (m *Model) cycleHero() {
	i := slices.Index(progression.Heroes, m.engine.MenuHero())
	for range progression.Heroes {
		i = (i + 1) % len(progression.Heroes)
		if err := m.engine.SelectHero(progression.Heroes[i]); err == nil {
			break
		}
	}
	m.snap = m.engine.Snapshot()
}

// buy purchases the consumable bound to an f-key.
func (m *Model) buy(k string) {
	var i int
	if _, err := fmt.Sscanf(k, "f%d", &i); err != nil || i < 1 || i > len(progression.Consumables) {
		return
	}
	c := progression.Consumables[i-1]
	err := m.engine.Buy(c)
	switch {
	case err == nil:
		m.status = "Bought " + string(c)
	case errors.Is(err, progression.ErrInsufficientFunds):
		m.status = "Not enough currency"
	default:
		m.status = err.Error()
	}
	m.snap = m.engine.Snapshot()
}

// handleTick advances the engine by one frame.
func (m Model) handleTick(now time.Time) (tea.Model, tea.Cmd) {
	if m.start.IsZero() {
		m.start = now
	}
	m.keys.Hold(now, m.frame)
	in := core.TickInput{
		Now:      float64(now.Sub(m.start)) / float64(time.Millisecond),
		Frame:    m.frame.Clone(),
		PointerX: m.pointer,
	}
	prev := m.snap.Mode
	m.snap = m.engine.Tick(in)
	if m.snap.Mode != prev {
		m.status = ""
	}
	m.frame.Clear()
	m.pointer = nil
	return m, tickCmd(m.config.TickRate)
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	m.render()

	dir := filepath.Join(os.Getenv("HOME"), ".galaxia", "screenshots")
	//nolint:errcheck // Best-effort directory creation
	os.MkdirAll(dir, 0o755)

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("galaxia_%s.txt", timestamp))

	//nolint:errcheck // Best-effort save, game continues regardless
	os.WriteFile(path, []byte(m.screen.String()), 0o600)
}

func (m *Model) render() {
	Draw(m.screen, Frame{
		Snapshot: m.snap,
		Config:   m.engine.Config(),
		Record:   m.engine.Record(),
		MenuHero: m.engine.MenuHero(),
		MenuHard: m.engine.MenuHard(),
		Status:   m.status,
	})
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if m.board != nil {
		return m.board.View()
	}
	m.render()
	return RenderScreen(m.screen) + "\n" + m.help.View(m.keys.Keys())
}

// Snapshot returns the last snapshot the model drew.
func (m Model) Snapshot() sim.Snapshot {
	return m.snap
}

// Run starts the Bubble Tea program with the given engine.
func Run(e *sim.Engine, store *storage.Store, cfg core.RuntimeConfig) error {
	p := tea.NewProgram(
		NewModel(e, store, cfg),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithReportFocus(),
	)
	_, err := p.Run()
	return err
}
