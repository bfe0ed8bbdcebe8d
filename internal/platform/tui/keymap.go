package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-galaxia/internal/core"
)

// holdWindow is how long a steering key counts as held after its last
// press. Terminals only report key repeats, never releases.
const holdWindow = 150 * time.Millisecond

// GameKeyMap defines the key bindings of the game screen.
type GameKeyMap struct {
	Left    key.Binding
	Right   key.Binding
	Reload  key.Binding
	Pause   key.Binding
	Confirm key.Binding
	Back    key.Binding
	Restart key.Binding
	Choice1 key.Binding
	Choice2 key.Binding
	Choice3 key.Binding
	Hero    key.Binding
	Hard    key.Binding
	Buy     key.Binding
	Scores  key.Binding
	Quit    key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k GameKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Left, k.Right, k.Reload, k.Pause, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k GameKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Left, k.Right, k.Reload, k.Pause},
		{k.Confirm, k.Choice1, k.Choice2, k.Choice3},
		{k.Hero, k.Hard, k.Buy, k.Scores},
		{k.Back, k.Restart, k.Quit},
	}
}

// DefaultGameKeyMap returns default key bindings.
func DefaultGameKeyMap() GameKeyMap {
	return GameKeyMap{
		Left: key.NewBinding(
			key.WithKeys("left", "a"),
			key.WithHelp("←/a", "left"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "d"),
			key.WithHelp("→/d", "right"),
		),
		Reload: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "reload"),
		),
		Pause: key.NewBinding(
			key.WithKeys("p", "esc"),
			key.WithHelp("p", "pause"),
		),
		Confirm: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "confirm"),
		),
		Back: key.NewBinding(
			key.WithKeys("b"),
			key.WithHelp("b", "menu"),
		),
		Restart: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp("space", "restart"),
		),
		Choice1: key.NewBinding(
			key.WithKeys("1"),
			key.WithHelp("1", "choice 1"),
		),
		Choice2: key.NewBinding(
			key.WithKeys("2"),
			key.WithHelp("2", "choice 2"),
		),
		Choice3: key.NewBinding(
			key.WithKeys("3"),
			key.WithHelp("3", "choice 3"),
		),
		Hero: key.NewBinding(
			key.WithKeys("h"),
			key.WithHelp("h", "next hero"),
		),
		Hard: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "hard mode"),
		),
		Buy: key.NewBinding(
			key.WithKeys("f1", "f2", "f3", "f4"),
			key.WithHelp("f1-f4", "buy"),
		),
		Scores: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "scores"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// KeyMapper translates Bubble Tea key messages to game actions and keeps
// the steering keys held between repeats.
type KeyMapper struct {
	keys GameKeyMap
	held map[core.Action]time.Time
}

// NewKeyMapper creates a key mapper with the default bindings.
func NewKeyMapper() *KeyMapper {
	return &KeyMapper{
		keys: DefaultGameKeyMap(),
		held: make(map[core.Action]time.Time),
	}
}

// Keys returns the bindings, for help views.
func (km *KeyMapper) Keys() GameKeyMap {
	return km.keys
}

// MapKey translates a key message to an action. It returns ActionNone for
// keys the simulation does not know.
func (km *KeyMapper) MapKey(msg tea.KeyMsg) core.Action {
	k := km.keys
	switch {
	case key.Matches(msg, k.Quit):
		return core.ActionQuit
	case key.Matches(msg, k.Left):
		return core.ActionLeft
	case key.Matches(msg, k.Right):
		return core.ActionRight
	case key.Matches(msg, k.Reload):
		return core.ActionReload
	case key.Matches(msg, k.Pause):
		return core.ActionPause
	case key.Matches(msg, k.Confirm):
		return core.ActionConfirm
	case key.Matches(msg, k.Back):
		return core.ActionBack
	case key.Matches(msg, k.Restart):
		return core.ActionRestart
	case key.Matches(msg, k.Choice1):
		return core.ActionChoice1
	case key.Matches(msg, k.Choice2):
		return core.ActionChoice2
	case key.Matches(msg, k.Choice3):
		return core.ActionChoice3
	}
	return core.ActionNone
}

// Press records a key at now into frame. Steering keys start or refresh a
// hold and cancel the opposite one. It reports whether the key asks to quit.
func (km *KeyMapper) Press(msg tea.KeyMsg, now time.Time, frame *core.InputFrame) bool {
	a := km.MapKey(msg)
	switch a {
	case core.ActionNone:
		return false
	case core.ActionQuit:
		return true
	case core.ActionLeft:
		delete(km.held, core.ActionRight)
		km.held[a] = now
	case core.ActionRight:
		delete(km.held, core.ActionLeft)
		km.held[a] = now
	default:
		frame.Set(a)
	}
	return false
}

// Hold adds the steering keys still held at now to frame.
func (km *KeyMapper) Hold(now time.Time, frame *core.InputFrame) {
	for a, at := range km.held {
		if now.Sub(at) > holdWindow {
			delete(km.held, a)
			continue
		}
		frame.Set(a)
	}
}

// Release drops every held key.
func (km *KeyMapper) Release() {
	clear(km.held)
}
