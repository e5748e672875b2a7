// Package tui provides the BubbleTea-based profile picker.
package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jmylchreest/powerprof/internal/config"
	"github.com/jmylchreest/powerprof/internal/model"
)

const (
	titleText       = "Please choose a profile"
	explanationText = "Profile will automatically be applied upon selection."
	fetchFailedText = "Failed to fetch active profile. Is power-profiles-daemon running?"
	statusTimeout   = 4 * time.Second
)

var (
	titleStyle       = lipgloss.NewStyle().Bold(true)
	explanationStyle = lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color("8"))
	cursorStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("12")).Bold(true)
	activeStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	statusStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("7"))
	errorStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	boxStyle         = lipgloss.NewStyle().Padding(1, 2)
)

// ProfileClient is the bus client as seen by the TUI.
type ProfileClient interface {
	FetchActiveProfile(ctx context.Context) (model.Profile, error)
	SetProfile(ctx context.Context, profile model.Profile) (bool, error)
}

// Model is the main TUI model.
type Model struct {
	client  ProfileClient
	notices *model.NoticeLog
	cfg     *config.Config

	// Components
	help help.Model
	keys KeyMap

	// State
	profiles []model.Profile
	cursor   int
	active   model.Profile
	busy     bool
	width    int

	// Status message
	statusMsg string
	statusErr bool

	// External profile changes, if watching
	changes <-chan model.Profile
}

// New creates a new TUI model. notices must be the log the client reports to.
func New(cfg *config.Config, client ProfileClient, notices *model.NoticeLog, changes <-chan model.Profile) Model {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	h := help.New()
	h.ShowAll = false

	return Model{
		client:   client,
		notices:  notices,
		cfg:      cfg,
		help:     h,
		keys:     DefaultKeyMap(),
		profiles: model.Profiles(),
		active:   model.ProfileInvalid,
		busy:     true,
		changes:  changes,
	}
}

// Init fetches the active profile and starts listening for changes.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.fetchProfile,
		m.watchForChanges,
	)
}

type fetchedMsg struct {
	profile model.Profile
	err     error
}

type setResultMsg struct {
	profile model.Profile
	ok      bool
	notice  model.Notice
	noticed bool
}

type profileChangedMsg struct {
	profile model.Profile
}

type statusMsg struct {
	text  string
	isErr bool
}

type clearStatusMsg struct{}

// fetchProfile runs the blocking fetch off the UI goroutine.
func (m Model) fetchProfile() tea.Msg {
	p, err := m.client.FetchActiveProfile(context.Background())
	return fetchedMsg{profile: p, err: err}
}

func (m Model) setProfile(p model.Profile) tea.Cmd {
	return func() tea.Msg {
		ok, _ := m.client.SetProfile(context.Background(), p)
		msg := setResultMsg{profile: p, ok: ok}
		if m.notices != nil {
			msg.notice, msg.noticed = m.notices.Last()
		}
		return msg
	}
}

// watchForChanges waits for the next externally-made change.
func (m Model) watchForChanges() tea.Msg {
	if m.changes == nil {
		return nil
	}
	p, ok := <-m.changes
	if !ok {
		return nil
	}
	return profileChangedMsg{profile: p}
}

func showStatus(text string, isErr bool) tea.Cmd {
	return func() tea.Msg {
		return statusMsg{text: text, isErr: isErr}
	}
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
		return m, nil

	case fetchedMsg:
		m.busy = false
		m.setActive(msg.profile)
		if msg.err != nil || msg.profile == model.ProfileInvalid {
			return m, showStatus(fetchFailedText, true)
		}
		return m, nil

	case setResultMsg:
		m.busy = false
		if msg.ok {
			m.setActive(msg.profile)
		} else {
			m.moveCursorTo(m.active)
		}
		if msg.noticed {
			return m, showStatus(msg.notice.Message, msg.notice.IsError())
		}
		return m, nil

	case profileChangedMsg:
		m.setActive(msg.profile)
		return m, tea.Batch(
			showStatus(fmt.Sprintf("Active profile changed to: %s", msg.profile), false),
			m.watchForChanges,
		)

	case statusMsg:
		m.statusMsg = msg.text
		m.statusErr = msg.isErr
		return m, tea.Tick(statusTimeout, func(time.Time) tea.Msg {
			return clearStatusMsg{}
		})

	case clearStatusMsg:
		m.statusMsg = ""
		m.statusErr = false
		return m, nil
	}

	return m, nil
}

// handleKey handles key presses.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil

	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil

	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.profiles)-1 {
			m.cursor++
		}
		return m, nil

	case key.Matches(msg, m.keys.Refresh):
		if m.busy {
			return m, nil
		}
		m.busy = true
		return m, m.fetchProfile

	case key.Matches(msg, m.keys.Apply):
		if m.busy {
			return m, nil
		}
		selected := m.profiles[m.cursor]
		if selected == m.active {
			return m, nil
		}
		m.busy = true
		return m, m.setProfile(selected)
	}

	return m, nil
}

func (m *Model) setActive(p model.Profile) {
	m.active = p
	m.moveCursorTo(p)
}

func (m *Model) moveCursorTo(p model.Profile) {
	for i, candidate := range m.profiles {
		if candidate == p {
			m.cursor = i
			return
		}
	}
}

// Active returns the profile the daemon last reported.
func (m Model) Active() model.Profile {
	return m.active
}

// View renders the picker.
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render(titleText))
	b.WriteString("\n")
	b.WriteString(explanationStyle.Render(explanationText))
	b.WriteString("\n\n")

	for i, p := range m.profiles {
		cursor := "  "
		if i == m.cursor {
			cursor = cursorStyle.Render("> ")
		}

		radio := "( )"
		label := p.Label()
		if p == m.active {
			radio = "(•)"
			label = activeStyle.Render(label)
		}

		fmt.Fprintf(&b, "%s%s %s\n", cursor, radio, label)
	}

	b.WriteString("\n")
	switch {
	case m.statusMsg != "":
		style := statusStyle
		if m.statusErr {
			style = errorStyle
		}
		b.WriteString(style.Render(m.statusMsg))
	case m.busy:
		b.WriteString(statusStyle.Render("Talking to power-profiles-daemon..."))
	}

	if m.cfg.TUI.ShowHelp {
		b.WriteString("\n\n")
		b.WriteString(m.help.View(m.keys))
	}

	return boxStyle.Render(b.String())
}

// RunOptions configures Run.
type RunOptions struct {
	Config  *config.Config
	Client  ProfileClient
	Notices *model.NoticeLog
	Changes <-chan model.Profile
}

// Run starts the TUI and blocks until the user quits.
func Run(opts RunOptions) error {
	m := New(opts.Config, opts.Client, opts.Notices, opts.Changes)
	p := tea.NewProgram(m, tea.WithAltScreen())

	_, err := p.Run()
	return err
}
