package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/boxsim/internal/core"
	"github.com/vovakirdan/boxsim/internal/registry"
	"github.com/vovakirdan/boxsim/internal/scenes"
	"github.com/vovakirdan/boxsim/internal/storage"
)

// SceneModel is the Bubble Tea model that drives one scene.
// It is used directly by the play command and embedded by the menu session.
type SceneModel struct {
	scene         registry.Scene
	screen        *core.Screen
	store         *storage.Store
	config        core.RuntimeConfig
	inputFrame    core.InputFrame
	state         core.SceneState
	keyMapper     *KeyMapper
	screenshotDir string
	started       time.Time
	standalone    bool // Back quits the program instead of returning to a menu
	quitting      bool
	backToMenu    bool
	recorded      bool // Whether the current run has been written to the store
}

// NewSceneModel resets scene for cfg and wraps it in a model.
// A zero seed is replaced by the current time.
func NewSceneModel(scene registry.Scene, store *storage.Store, cfg core.RuntimeConfig) SceneModel {
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}

	scene.Reset(cfg)
	return SceneModel{
		scene:         scene,
		screen:        core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		store:         store,
		config:        cfg,
		inputFrame:    core.NewInputFrame(),
		state:         scene.State(),
		keyMapper:     NewKeyMapper(),
		screenshotDir: defaultScreenshotDir(),
		started:       time.Now(),
	}
}

func defaultScreenshotDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".boxsim", "screenshots")
	}
	return filepath.Join(home, ".boxsim", "screenshots")
}

// Init starts the tick loop.
func (m SceneModel) Init() tea.Cmd {
	return tickCmd(m.config.TickRate)
}

// Update handles messages.
func (m SceneModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		return m.handleResize(msg)
	case TickMsg:
		return m.handleTick()
	}
	return m, nil
}

// handleKey processes keyboard input.
func (m SceneModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}

	if m.keyMapper.MapKeyToFrame(msg, &m.inputFrame) {
		m.record()
		m.quitting = true
		return m, tea.Quit
	}

	if m.inputFrame.Has(core.ActionBack) {
		m.record()
		if m.standalone {
			m.quitting = true
			return m, tea.Quit
		}
		m.backToMenu = true
	}
	return m, nil
}

// handleResize rebuilds the world for the new terminal size. A finished
// run stays on screen until it is restarted.
func (m SceneModel) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, msg.Height)

	if !m.state.GameOver {
		m.scene.Reset(m.config)
		m.state = m.scene.State()
		m.started = time.Now()
		m.recorded = false
	}
	return m, nil
}

// handleTick advances the scene by one step.
func (m SceneModel) handleTick() (tea.Model, tea.Cmd) {
	if m.backToMenu || m.quitting {
		return m, nil
	}

	if m.inputFrame.Has(core.ActionRestart) {
		m.record()
		m.config.Seed = time.Now().UnixNano()
		m.scene.Reset(m.config)
		m.state = m.scene.State()
		m.started = time.Now()
		m.recorded = false
		m.inputFrame.Clear()
		return m, tickCmd(m.config.TickRate)
	}

	result := m.scene.Step(m.inputFrame)
	m.state = result.State

	if m.state.GameOver {
		m.record()
	}

	m.inputFrame.Clear()
	return m, tickCmd(m.config.TickRate)
}

// record saves the current run once: the score when positive and a run
// record when the engine has advanced.
func (m *SceneModel) record() {
	if m.recorded || m.store == nil {
		return
	}
	m.recorded = true

	e := m.scene.Engine()
	if e == nil || e.Tick() == 0 {
		return
	}

	if m.state.Score > 0 {
		//nolint:errcheck // Best-effort save
		m.store.SaveScore(m.scene.ID(), m.state.Score)
	}

	stats := e.Stats()
	snap := e.Snapshot()
	//nolint:errcheck // Best-effort save
	m.store.SaveRun(storage.RunRecord{
		SceneID:         m.scene.ID(),
		Seed:            m.config.Seed,
		Resolver:        scenes.ResolverLabel(e),
		Ticks:           e.Tick(),
		Bodies:          e.Len(),
		Collisions:      stats.Collisions,
		WorldCollisions: stats.WorldCollisions,
		Score:           m.state.Score,
		Hash:            snap.Hash(),
		Duration:        time.Since(m.started),
	})
}

// saveScreenshot writes the current screen as plain text.
func (m *SceneModel) saveScreenshot() {
	m.scene.Render(m.screen)

	//nolint:errcheck // Best-effort directory creation
	os.MkdirAll(m.screenshotDir, 0o755)

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(m.screenshotDir, fmt.Sprintf("%s_%s.txt", m.scene.ID(), timestamp))

	//nolint:errcheck // Best-effort save, the scene continues regardless
	os.WriteFile(path, []byte(m.screen.String()), 0o600)
}

// View renders the scene.
func (m SceneModel) View() string {
	if m.quitting {
		return ""
	}

	m.scene.Render(m.screen)
	return RenderScreen(m.screen)
}

// IsQuitting returns true if the user requested to quit entirely.
func (m SceneModel) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if the user requested to go back to the menu.
func (m SceneModel) BackToMenu() bool {
	return m.backToMenu
}

// State returns the scene state after the last step.
func (m SceneModel) State() core.SceneState {
	return m.state
}

// Run plays a single scene in the terminal until the user quits.
func Run(scene registry.Scene, store *storage.Store, cfg core.RuntimeConfig) error {
	model := NewSceneModel(scene, store, cfg)
	model.standalone = true

	p := tea.NewProgram(model, tea.WithAltScreen())
	_, err := p.Run()
	return err
}
