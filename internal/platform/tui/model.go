package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-snake/internal/core"
	"github.com/vovakirdan/tui-snake/internal/snake"
)

// helpHeight is the number of rows reserved below the board for key help.
const helpHeight = 1

var tooSmallStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))

// GameModel is the Bubble Tea model for one snake game.
// It is the timer and input collaborator for the engine: ticks are
// scheduled with tea.Tick at the engine's current interval.
type GameModel struct {
	engine    *snake.Engine
	screen    *core.Screen
	keyMapper *KeyMapper
	controls  Controls
	help      help.Model
	config    core.RuntimeConfig

	gen      int // current tick schedule; stale TickMsgs are dropped
	quitting bool
}

// NewGameModel creates a model driving engine.
func NewGameModel(engine *snake.Engine, cfg core.RuntimeConfig) GameModel {
	h := help.New()
	h.Width = cfg.ScreenW

	return GameModel{
		engine:    engine,
		screen:    core.NewScreen(cfg.ScreenW, max(cfg.ScreenH-helpHeight, 0)),
		keyMapper: NewKeyMapper(),
		controls:  NewControls(),
		help:      h,
		config:    cfg,
	}
}

// Init does not schedule ticks; the game starts idle.
func (m GameModel) Init() tea.Cmd {
	return nil
}

// Update handles messages and updates the model state.
func (m GameModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		action, quit := m.keyMapper.MapKey(msg)
		if quit {
			m.quitting = true
			return m, tea.Quit
		}
		return m.apply(action)

	case tea.MouseMsg:
		if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
			return m, nil
		}
		if action, ok := m.controls.HitTest(msg.X, msg.Y); ok {
			return m.apply(action)
		}
		return m, nil

	case tea.WindowSizeMsg:
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.screen.Resize(msg.Width, max(msg.Height-helpHeight, 0))
		m.help.Width = msg.Width
		return m, nil

	case TickMsg:
		return m.handleTick(msg)
	}

	return m, nil
}

// apply feeds an action to the engine and adjusts the tick schedule.
func (m GameModel) apply(action core.Action) (tea.Model, tea.Cmd) {
	if action == core.ActionNone {
		return m, nil
	}

	wasRunning := m.engine.Status() == snake.StatusRunning
	if !m.engine.HandleAction(action) {
		return m, nil
	}
	running := m.engine.Status() == snake.StatusRunning

	switch {
	case running && !wasRunning:
		// New schedule; anything in flight belongs to an older game
		m.gen++
		return m, tickCmd(m.engine.TickDuration(), m.gen)
	case !running && wasRunning:
		m.gen++
	}
	return m, nil
}

// handleTick advances the engine and schedules the next tick at the
// interval for the current score.
func (m GameModel) handleTick(msg TickMsg) (tea.Model, tea.Cmd) {
	if msg.Gen != m.gen {
		return m, nil
	}

	m.engine.Tick()
	if m.engine.Status() != snake.StatusRunning {
		return m, nil
	}
	return m, tickCmd(m.engine.TickDuration(), m.gen)
}

// View renders the current state to a string for display.
func (m GameModel) View() string {
	if m.quitting {
		return ""
	}

	if m.config.ScreenW < snake.ViewWidth || m.config.ScreenH < snake.ViewHeight+helpHeight {
		return tooSmallStyle.Render(fmt.Sprintf(
			"Window too small: need %dx%d, have %dx%d",
			snake.ViewWidth, snake.ViewHeight+helpHeight, m.config.ScreenW, m.config.ScreenH,
		))
	}

	m.engine.Render(m.screen)
	m.controls.Render(m.screen, m.engine.Status() == snake.StatusRunning)

	return RenderScreen(m.screen) + "\n" + m.help.View(m.keyMapper.Keys())
}

// Engine returns the driven engine.
func (m GameModel) Engine() *snake.Engine {
	return m.engine
}

// IsQuitting returns true if the user requested to quit.
func (m GameModel) IsQuitting() bool {
	return m.quitting
}

// Run starts a local Bubble Tea program for engine.
func Run(engine *snake.Engine, cfg core.RuntimeConfig) error {
	p := tea.NewProgram(
		NewGameModel(engine, cfg),
		tea.WithAltScreen(),       // Use alternate screen buffer
		tea.WithMouseCellMotion(), // Direction pad clicks
	)

	_, err := p.Run()
	return err
}
