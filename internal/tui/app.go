package tui

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mmcdole/snapfeed/internal/domain"
	"github.com/mmcdole/snapfeed/internal/feed"
	"github.com/mmcdole/snapfeed/internal/tui/components"
)

const (
	// Vertical layout: single footer line
	ChromeHeight = 1

	DefaultBannerTimeout = 4 * time.Second

	spinnerInterval = 100 * time.Millisecond
)

// Feed is the part of feed.Controller the UI drives.
type Feed interface {
	State() domain.FeedState
	Subscribe() (<-chan domain.FeedState, func())
	Events() <-chan domain.FeedEvent
	TriggerNextPage() int
}

// Options configures the model
type Options struct {
	Columns       int
	BannerTimeout time.Duration
	Logger        *slog.Logger
}

// Model is the main Bubble Tea model for the application
type Model struct {
	Ready bool

	Feed Feed
	Grid components.Grid

	// Dimensions
	Width  int
	Height int

	// Latest feed state
	Loading      bool
	ErrorMessage string

	// UI state
	StatusMsg     string
	StatusIsErr   bool
	SpinnerFrame  int
	ShowHelp      bool
	BannerTimeout time.Duration

	statusID    int
	edge        feed.EdgeDetector
	states      <-chan domain.FeedState
	events      <-chan domain.FeedEvent
	unsubscribe func()
	logger      *slog.Logger
}

// NewModel creates a new application model subscribed to f
func NewModel(f Feed, opts Options) Model {
	if opts.BannerTimeout <= 0 {
		opts.BannerTimeout = DefaultBannerTimeout
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}

	grid := components.NewGrid(opts.Columns)
	grid.SetFocused(true)

	states, unsubscribe := f.Subscribe()

	return Model{
		Feed:          f,
		Grid:          grid,
		BannerTimeout: opts.BannerTimeout,
		states:        states,
		events:        f.Events(),
		unsubscribe:   unsubscribe,
		logger:        opts.Logger,
	}
}

// Init initializes the application
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		WaitForStateCmd(m.states),
		WaitForEventCmd(m.events),
		TickCmd(spinnerInterval),
	)
}

// Update handles all messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		m.Ready = true
		m.Grid.SetSize(m.Width, m.Height-ChromeHeight)
		m.checkNearEnd()
		return m, nil

	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case TickMsg:
		m.SpinnerFrame++
		return m, TickCmd(spinnerInterval)

	case FeedStateMsg:
		m.applyState(msg.State)
		return m, WaitForStateCmd(m.states)

	case FeedEventMsg:
		var cmd tea.Cmd
		if msg.Event.Kind == domain.EventShowBanner {
			cmd = m.setStatus(msg.Event.Message, true)
		}
		return m, tea.Batch(cmd, WaitForEventCmd(m.events))

	case FeedClosedMsg:
		m.Loading = false
		m.states = nil
		return m, nil

	case ClearStatusMsg:
		if msg.ID == m.statusID {
			m.StatusMsg = ""
			m.StatusIsErr = false
		}
		return m, nil
	}

	return m, nil
}

func (m Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m.quit()
	}

	if m.ShowHelp {
		m.ShowHelp = false
		return m, nil
	}

	// Filter input owns the keyboard while typing
	if m.Grid.IsFilterTyping() {
		var cmd tea.Cmd
		m.Grid, cmd = m.Grid.Update(msg)
		m.checkNearEnd()
		return m, cmd
	}

	switch {
	case key.Matches(msg, Keys.Quit):
		return m.quit()

	case key.Matches(msg, Keys.Help):
		m.ShowHelp = true
		return m, nil

	case key.Matches(msg, Keys.Filter):
		if !m.Grid.IsFiltering() {
			m.Grid.ToggleFilter()
			return m, nil
		}

	case key.Matches(msg, Keys.Yank):
		img, ok := m.Grid.Selected()
		if !ok {
			return m, nil
		}
		if img.URL == "" {
			return m, m.setStatus(fmt.Sprintf("image %s from page %d has no url", components.Label(img), img.Page), true)
		}
		return m, m.setStatus(img.URL, false)

	case key.Matches(msg, Keys.Retry):
		page := m.Feed.TriggerNextPage()
		if page == 0 {
			return m, nil
		}
		m.logger.Debug("next page requested", "page", page)
		return m, m.setStatus(fmt.Sprintf("Requesting page %d...", page), false)
	}

	var cmd tea.Cmd
	m.Grid, cmd = m.Grid.Update(msg)
	m.checkNearEnd()
	return m, cmd
}

func (m Model) quit() (tea.Model, tea.Cmd) {
	if m.unsubscribe != nil {
		m.unsubscribe()
		m.unsubscribe = nil
	}
	return m, tea.Quit
}

// applyState replaces the view of the feed with a new snapshot. The
// edge detector is re-armed whenever the list grows so a screen that
// is still not full after a page lands keeps pulling pages.
func (m *Model) applyState(state domain.FeedState) {
	prev := m.Grid.Total()

	m.Loading = state.IsLoading
	m.ErrorMessage = state.ErrorMessage
	m.Grid.SetImages(state.ImageList)

	if len(state.ImageList) != prev {
		m.edge.Reset()
	}
	m.checkNearEnd()
}

// checkNearEnd requests the next page on the rising edge of the near-end
// signal. The first page is requested by the caller, so an empty grid
// never triggers, and a filtered grid does not reflect scroll position.
func (m *Model) checkNearEnd() {
	if !m.Ready || m.Grid.IsFiltering() || m.Grid.Total() == 0 {
		return
	}
	if !m.edge.Update(feed.NearEnd(m.Grid.LastVisible(), m.Grid.Total())) {
		return
	}
	page := m.Feed.TriggerNextPage()
	m.logger.Debug("near end of feed", "last_visible", m.Grid.LastVisible(), "total", m.Grid.Total(), "page", page)
}

func (m *Model) setStatus(text string, isErr bool) tea.Cmd {
	m.statusID++
	m.StatusMsg = text
	m.StatusIsErr = isErr
	return ClearStatusCmd(m.BannerTimeout, m.statusID)
}

// View renders the application
func (m Model) View() string {
	if !m.Ready {
		return "Loading..."
	}

	if m.ShowHelp {
		return m.renderHelp()
	}

	m.Grid.SetTitle(m.renderTitle())
	return m.Grid.View() + "\n" + m.renderFooter()
}
