package tui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/bubbletea"

	"github.com/vovakirdan/boxsim/internal/core"
	"github.com/vovakirdan/boxsim/internal/registry"
	"github.com/vovakirdan/boxsim/internal/storage"
)

// SSHServerConfig controls the shared boxsim server.
type SSHServerConfig struct {
	// Address is the host:port to listen on.
	Address string

	// HostKeyPath points at the server key. Empty means ~/.boxsim/host_key,
	// generated on first start.
	HostKeyPath string

	// RecordsPath is the SQLite file holding runs and best scores.
	RecordsPath string

	IdleTimeout time.Duration

	// TickRate is the frame rate handed to every session's scene.
	TickRate int

	// ShutdownGrace bounds how long open sessions get to drain.
	ShutdownGrace time.Duration
}

// DefaultSSHServerConfig returns the settings used by `boxsim serve`.
func DefaultSSHServerConfig() SSHServerConfig {
	return SSHServerConfig{
		Address:       ":23234",
		RecordsPath:   "~/.boxsim/boxsim.db",
		IdleTimeout:   30 * time.Minute,
		TickRate:      defaultTickRate,
		ShutdownGrace: 10 * time.Second,
	}
}

// SSHServer serves the scene menu to every SSH session over Wish.
type SSHServer struct {
	config  SSHServerConfig
	server  *ssh.Server
	records *storage.Store // nil when the database could not be opened
	logger  *log.Logger
}

// NewSSHServer prepares the host key and records database and builds the server.
// A records database that fails to open only disables persistence.
func NewSSHServer(cfg SSHServerConfig) (*SSHServer, error) {
	if cfg.TickRate <= 0 {
		cfg.TickRate = defaultTickRate
	}
	if cfg.ShutdownGrace <= 0 {
		cfg.ShutdownGrace = 10 * time.Second
	}

	hostKey, err := resolveHostKey(cfg.HostKeyPath)
	if err != nil {
		return nil, err
	}

	srv := &SSHServer{
		config: cfg,
		logger: log.NewWithOptions(os.Stderr, log.Options{
			ReportTimestamp: true,
			Prefix:          "boxsim-ssh",
		}),
	}
	srv.records = srv.openRecords()

	srv.server, err = wish.NewServer(
		wish.WithAddress(cfg.Address),
		wish.WithHostKeyPath(hostKey),
		wish.WithIdleTimeout(cfg.IdleTimeout),
		wish.WithMiddleware(
			bubbletea.Middleware(srv.sessionProgram),
			srv.logSessions,
		),
	)
	if err != nil {
		srv.closeRecords()
		return nil, fmt.Errorf("tui: build ssh server: %w", err)
	}
	return srv, nil
}

// resolveHostKey returns the key file to use and makes sure its directory exists.
func resolveHostKey(path string) (string, error) {
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("tui: locate home for host key: %w", err)
		}
		path = filepath.Join(home, ".boxsim", "host_key")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return "", fmt.Errorf("tui: host key directory: %w", err)
	}
	return path, nil
}

func (s *SSHServer) openRecords() *storage.Store {
	records, err := storage.Open(s.config.RecordsPath)
	if err != nil {
		s.logger.Warn("records disabled", "path", s.config.RecordsPath, "error", err)
		return nil
	}
	return records
}

func (s *SSHServer) closeRecords() {
	if s.records == nil {
		return
	}
	if err := s.records.Close(); err != nil {
		s.logger.Warn("closing records", "error", err)
	}
	s.records = nil
}

// sessionProgram sizes a new session model to the client's terminal.
func (s *SSHServer) sessionProgram(sess ssh.Session) (tea.Model, []tea.ProgramOption) {
	pty, _, ok := sess.Pty()
	if !ok {
		s.logger.Warn("session without pty", "user", sess.User())
		return nil, nil
	}

	cfg := core.RuntimeConfig{
		ScreenW:  pty.Window.Width,
		ScreenH:  pty.Window.Height,
		TickRate: s.config.TickRate,
	}
	return NewSessionModel(s.records, cfg), []tea.ProgramOption{tea.WithAltScreen()}
}

// logSessions records when each client connects and how long it stayed.
func (s *SSHServer) logSessions(next ssh.Handler) ssh.Handler {
	return func(sess ssh.Session) {
		start := time.Now()
		remote := sess.RemoteAddr().String()
		s.logger.Info("session open", "user", sess.User(), "remote", remote)
		next(sess)
		s.logger.Info("session closed", "user", sess.User(), "remote", remote,
			"duration", time.Since(start).Round(time.Second))
	}
}

// ListenAndServe serves until SIGINT or SIGTERM, then shuts down.
func (s *SSHServer) ListenAndServe() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	s.logger.Info("listening", "address", s.config.Address, "tick_rate", s.config.TickRate)
	failed := make(chan error, 1)
	go func() {
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			failed <- err
		}
	}()

	select {
	case <-ctx.Done():
		s.logger.Info("shutting down")
		return s.Shutdown()
	case err := <-failed:
		s.closeRecords()
		return fmt.Errorf("tui: ssh server: %w", err)
	}
}

// Shutdown waits up to ShutdownGrace for sessions to end and closes the records.
func (s *SSHServer) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), s.config.ShutdownGrace)
	defer cancel()
	defer s.closeRecords()
	return s.server.Shutdown(ctx)
}

// Addr returns the configured listen address.
func (s *SSHServer) Addr() string {
	return s.config.Address
}

type sessionView int

const (
	viewMenu sessionView = iota
	viewScene
	viewRecords
)

// SessionModel manages the full session flow: menu, scene and records
// browser in one program. This is the top-level model used for SSH sessions.
type SessionModel struct {
	store    *storage.Store
	config   core.RuntimeConfig
	view     sessionView
	menu     MenuModel
	scene    SceneModel
	records  RecordsModel
	quitting bool
}

// NewSessionModel creates a new session model.
func NewSessionModel(store *storage.Store, cfg core.RuntimeConfig) SessionModel {
	return SessionModel{
		store:  store,
		config: cfg,
		menu:   NewMenuModel(store, cfg),
	}
}

// Init initializes the session.
func (m SessionModel) Init() tea.Cmd {
	return m.menu.Init()
}

// Update handles messages for the session.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.config.ScreenW = wsm.Width
		m.config.ScreenH = wsm.Height
	}

	switch m.view {
	case viewScene:
		return m.updateScene(msg)
	case viewRecords:
		return m.updateRecords(msg)
	default:
		return m.updateMenu(msg)
	}
}

// updateMenu handles updates when in menu mode.
func (m SessionModel) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.menu.Update(msg)
	if menu, ok := next.(MenuModel); ok {
		m.menu = menu
	}

	switch {
	case m.menu.IsQuitting():
		m.quitting = true
		return m, tea.Quit

	case m.menu.WantsRecords():
		m.records = NewRecordsModel(m.store, m.config.ScreenW, m.config.ScreenH)
		m.view = viewRecords
		return m, m.records.Init()

	case m.menu.Selected() != nil:
		scene, err := registry.Create(m.menu.Selected().SceneID)
		if err != nil {
			// The menu only lists registered scenes
			m.menu = NewMenuModel(m.store, m.config)
			return m, nil
		}
		cfg := m.menu.Config()
		cfg.TickRate = m.config.TickRate
		cfg.Seed = time.Now().UnixNano()
		m.scene = NewSceneModel(scene, m.store, cfg)
		m.view = viewScene
		return m, m.scene.Init()
	}

	return m, cmd
}

// updateScene handles updates while a scene is running.
func (m SessionModel) updateScene(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.scene.Update(msg)
	if scene, ok := next.(SceneModel); ok {
		m.scene = scene
	}

	if m.scene.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}
	if m.scene.BackToMenu() {
		return m.backToMenu()
	}
	return m, cmd
}

// updateRecords handles updates in the records browser.
func (m SessionModel) updateRecords(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.records.Update(msg)
	if records, ok := next.(RecordsModel); ok {
		m.records = records
	}

	if m.records.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}
	if m.records.IsGoingBack() {
		return m.backToMenu()
	}
	return m, cmd
}

func (m SessionModel) backToMenu() (tea.Model, tea.Cmd) {
	m.view = viewMenu
	m.menu = NewMenuModel(m.store, m.config)
	return m, m.menu.Init()
}

// View renders the current view.
func (m SessionModel) View() string {
	if m.quitting {
		return ""
	}

	switch m.view {
	case viewScene:
		return m.scene.View()
	case viewRecords:
		return m.records.View()
	default:
		return m.menu.View()
	}
}
