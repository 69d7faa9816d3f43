// Package app contains the main application model and TEA implementation.
package app

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/riordanpawley/toastq/internal/config"
	"github.com/riordanpawley/toastq/internal/services/script"
	"github.com/riordanpawley/toastq/internal/services/toasts"
	"github.com/riordanpawley/toastq/internal/types"
	"github.com/riordanpawley/toastq/internal/ui/compose"
	"github.com/riordanpawley/toastq/internal/ui/statusbar"
	"github.com/riordanpawley/toastq/internal/ui/styles"
	"github.com/riordanpawley/toastq/internal/ui/toast"
	"golang.org/x/time/rate"
)

// durationStep is how much + and - change the default display time
const durationStep = 500 * time.Millisecond

// sampleMessages are shown by the single-key severity shortcuts
var sampleMessages = map[types.ToastLevel][]string{
	types.ToastSuccess: {"Saved", "Changes published", "Upload complete"},
	types.ToastError:   {"Upload failed", "Connection lost", "Permission denied"},
	types.ToastWarning: {"Disk almost full", "Session expires soon", "Unsaved changes"},
}

// historyEntry is one line of the activity log
type historyEntry struct {
	at    time.Time
	kind  toasts.EventKind
	level types.ToastLevel
	text  string
	// notice marks lines that do not come from the queue
	notice bool
}

// refreshInterval is how often the remaining time on toasts is redrawn
const refreshInterval = time.Second

// refreshMsg redraws the toast countdowns
type refreshMsg struct{}

func refreshCmd() tea.Cmd {
	return tea.Tick(refreshInterval, func(time.Time) tea.Msg {
		return refreshMsg{}
	})
}

// playStepMsg asks the model to play a script step
type playStepMsg struct {
	index int
}

// ConfigReloadedMsg is sent by the program when the config file changes
type ConfigReloadedMsg struct {
	Config *config.Config
}

// Model is the main application state
type Model struct {
	// Toast queue and the bridge that feeds its events into Update
	queue       *toasts.Queue
	inbox       *inbox
	unsubscribe func()

	// Activity log
	history     []historyEntry
	historySize int

	// Input state
	mode         types.Mode
	compose      *compose.Input
	composeLevel types.ToastLevel
	keys         keyMap
	composeKeys  composeKeyMap
	help         help.Model
	samples      int
	limiter      *rate.Limiter

	// Script playback
	script    *script.Script
	scriptPos int

	// Terminal size
	width  int
	height int

	// Rendering
	styles   *styles.Styles
	renderer *toast.ToastRenderer

	config *config.Config
	logger *slog.Logger
	now    func() time.Time
}

// New creates a new application model around the given queue. The model
// subscribes to the queue immediately; call Close once the program exits.
func New(cfg *config.Config, queue *toasts.Queue, logger *slog.Logger) Model {
	s := styles.New()
	box := newInbox()

	return Model{
		queue:       queue,
		inbox:       box,
		unsubscribe: queue.Subscribe(box.push),
		history:     []historyEntry{},
		historySize: cfg.Toast.HistorySize,
		mode:        types.ModeNormal,
		keys:        defaultKeyMap(),
		composeKeys: defaultComposeKeyMap(),
		help:        help.New(),
		limiter:     newLimiter(cfg.Toast.RateLimit),
		styles:      s,
		renderer:    toast.New(s).WithMaxWidth(cfg.Toast.MaxWidth),
		config:      cfg,
		logger:      logger,
		now:         time.Now,
	}
}

func newLimiter(perSecond int) *rate.Limiter {
	if perSecond <= 0 {
		return rate.NewLimiter(rate.Inf, 0)
	}
	return rate.NewLimiter(rate.Limit(perSecond), perSecond)
}

// WithScript makes the model play the script once it starts
func (m Model) WithScript(s *script.Script) Model {
	m.script = s
	m.scriptPos = 0
	return m
}

// Close detaches the model from the queue
func (m Model) Close() {
	if m.unsubscribe != nil {
		m.unsubscribe()
	}
}

// Init returns the initial command for the application
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.inbox.wait(),
		refreshCmd(),
		m.nextStepCmd(0),
	)
}

// Update handles incoming messages and updates the model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case toastsChangedMsg:
		m.recordEvents(msg.events)
		return m, m.inbox.wait()

	case refreshMsg:
		return m, refreshCmd()

	case playStepMsg:
		return m.playStep(msg.index)

	case ConfigReloadedMsg:
		m.applyConfig(msg.Config)
		return m, nil

	case compose.SubmitMsg:
		shown := m.queue.Show(msg.Message, msg.Level)
		m.logger.Info("custom toast sent", "id", shown.ID, "level", msg.Level.String())
		m.composeLevel = msg.Level
		m.closeCompose()
		return m, nil

	case compose.CancelMsg:
		m.closeCompose()
		return m, nil

	case tea.KeyMsg:
		if m.mode == types.ModeCompose {
			return m.handleComposeMode(msg)
		}
		return m.handleNormalMode(msg)
	}

	// Cursor blink and other input housekeeping
	if m.mode == types.ModeCompose && m.compose != nil {
		_, cmd := m.compose.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) handleNormalMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Success):
		m.showSample(types.ToastSuccess)
	case key.Matches(msg, m.keys.Error):
		m.showSample(types.ToastError)
	case key.Matches(msg, m.keys.Warning):
		m.showSample(types.ToastWarning)

	case key.Matches(msg, m.keys.Compose):
		m.mode = types.ModeCompose
		m.compose = compose.New(m.composeLevel, m.styles)
		return m, m.compose.Init()

	case key.Matches(msg, m.keys.Dismiss):
		if oldest, ok := m.queue.Oldest(); ok {
			m.queue.Dismiss(oldest.ID)
		}

	case key.Matches(msg, m.keys.Longer):
		m.queue.SetDefaultDuration(m.queue.DefaultDuration() + durationStep)
	case key.Matches(msg, m.keys.Shorter):
		m.queue.SetDefaultDuration(m.queue.DefaultDuration() - durationStep)

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	}

	return m, nil
}

func (m Model) handleComposeMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		return m, tea.Quit
	}
	if m.compose == nil {
		m.mode = types.ModeNormal
		return m, nil
	}
	_, cmd := m.compose.Update(msg)
	return m, cmd
}

func (m *Model) closeCompose() {
	m.mode = types.ModeNormal
	m.compose = nil
}

// applyConfig picks up a reloaded config. Toasts already shown keep their
// original duration.
func (m *Model) applyConfig(cfg *config.Config) {
	m.config = cfg
	m.queue.SetDefaultDuration(cfg.Toast.Duration())
	m.renderer = m.renderer.WithMaxWidth(cfg.Toast.MaxWidth)
	m.limiter = newLimiter(cfg.Toast.RateLimit)
	m.historySize = cfg.Toast.HistorySize
	m.history = append(m.history, historyEntry{
		at:     m.now(),
		notice: true,
		text:   fmt.Sprintf("config reloaded, default %s", cfg.Toast.Duration()),
	})
	m.trimHistory()
}

// showSample enqueues the next canned message for the level
func (m *Model) showSample(level types.ToastLevel) {
	if !m.limiter.Allow() {
		m.logger.Debug("sample toast throttled", "level", level.String())
		return
	}

	samples := sampleMessages[level]
	message := samples[m.samples%len(samples)]
	m.samples++

	shown := m.queue.Show(message, level)
	m.logger.Debug("sample toast sent", "id", shown.ID, "level", level.String())
}

// recordEvents appends queue events to the activity log, stamped with the
// time each change happened, keeping only the most recent historySize entries
func (m *Model) recordEvents(events []toasts.Event) {
	for _, ev := range events {
		m.history = append(m.history, historyEntry{
			at:    ev.At,
			kind:  ev.Kind,
			level: ev.Toast.Level,
			text:  ev.String(),
		})
	}
	m.trimHistory()
}

func (m *Model) trimHistory() {
	if over := len(m.history) - m.historySize; over > 0 {
		m.history = append([]historyEntry(nil), m.history[over:]...)
	}
}

// Script playback

func (m Model) nextStepCmd(index int) tea.Cmd {
	if m.script == nil || index >= len(m.script.Steps) {
		return nil
	}
	return tea.Tick(m.script.Steps[index].After, func(time.Time) tea.Msg {
		return playStepMsg{index: index}
	})
}

func (m Model) playStep(index int) (tea.Model, tea.Cmd) {
	if m.script == nil || index >= len(m.script.Steps) {
		return m, nil
	}

	script.Play(m.queue, m.script.Steps[index])
	m.scriptPos = index + 1
	return m, m.nextStepCmd(index + 1)
}

// View renders the application
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	sections := []string{
		m.styles.Header.Render("toastq"),
		m.renderHistory(),
	}
	if m.mode == types.ModeCompose && m.compose != nil {
		sections = append(sections, "", m.compose.View())
	}
	if m.help.ShowAll {
		sections = append(sections, "", m.help.FullHelpView(m.keys.FullHelp()))
	}
	mainView := lipgloss.JoinVertical(lipgloss.Left, sections...)

	// Render toasts in the bottom-right corner
	toastView := m.renderer.Render(m.queue.Toasts(), m.width, m.now())

	sb := statusbar.New(m.mode, m.width, m.styles).
		WithInfo(m.statusInfo()).
		WithHints(m.hints())
	statusBarView := sb.Render()

	// Fill the space above the toasts so the status bar stays at the bottom
	mainHeight := m.height - lipgloss.Height(statusBarView)
	if toastView != "" {
		mainHeight -= lipgloss.Height(toastView)
	}
	var parts []string
	if mainHeight > 0 {
		mainView = clipLines(mainView, mainHeight)
		parts = append(parts, lipgloss.Place(m.width, mainHeight, lipgloss.Left, lipgloss.Top, mainView))
	}
	if toastView != "" {
		parts = append(parts, toastView)
	}
	parts = append(parts, statusBarView)
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

// clipLines keeps at most n lines of s
func clipLines(s string, n int) string {
	lines := strings.Split(s, "\n")
	if len(lines) <= n {
		return s
	}
	return strings.Join(lines[:n], "\n")
}

func (m Model) renderHistory() string {
	if len(m.history) == 0 {
		return m.styles.Subtle.Render("No activity yet. Press s, e or w to show a toast.")
	}

	lines := make([]string, 0, len(m.history))
	for _, h := range m.history {
		stamp := m.styles.LogTime.Render(h.at.Format("15:04:05"))
		text := m.styles.LogEntry.Render(h.text)
		if !h.notice && h.kind == toasts.EventAdded {
			text = lipgloss.NewStyle().Foreground(styles.LevelColor(h.level)).Render(h.text)
		}
		lines = append(lines, stamp+" "+text)
	}
	return strings.Join(lines, "\n")
}

func (m Model) statusInfo() string {
	info := fmt.Sprintf("%d visible · %s", m.queue.Len(), m.queue.DefaultDuration())
	if m.script != nil {
		info += fmt.Sprintf(" · script %d/%d", m.scriptPos, len(m.script.Steps))
	}
	return info
}

func (m Model) hints() string {
	if m.mode == types.ModeCompose {
		return m.help.ShortHelpView(m.composeKeys.ShortHelp())
	}
	return m.help.ShortHelpView(m.keys.ShortHelp())
}
