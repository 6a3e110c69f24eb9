package tui

import (
	"fmt"
	"sync"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmcdole/snapfeed/internal/adapter"
	"github.com/mmcdole/snapfeed/internal/domain"
	"github.com/mmcdole/snapfeed/internal/tui/components"
)

type fakeFeed struct {
	mu           sync.Mutex
	triggers     int
	unsubscribed bool
	states       chan domain.FeedState
	events       chan domain.FeedEvent
}

func newFakeFeed() *fakeFeed {
	return &fakeFeed{
		states: make(chan domain.FeedState, 1),
		events: make(chan domain.FeedEvent, 1),
	}
}

func (f *fakeFeed) State() domain.FeedState { return domain.FeedState{} }

func (f *fakeFeed) Subscribe() (<-chan domain.FeedState, func()) {
	return f.states, func() {
		f.mu.Lock()
		f.unsubscribed = true
		f.mu.Unlock()
	}
}

func (f *fakeFeed) Events() <-chan domain.FeedEvent { return f.events }

func (f *fakeFeed) TriggerNextPage() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.triggers++
	return f.triggers + 1
}

func (f *fakeFeed) Triggers() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.triggers
}

func images(n int) []domain.ImageRecord {
	out := make([]domain.ImageRecord, n)
	for i := range out {
		out[i] = domain.ImageRecord{URL: fmt.Sprintf("https://images.example.com/photo-%d", i), Page: i/10 + 1}
	}
	return out
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// newTestModel returns a sized model whose grid shows 2 columns x 4 rows.
func newTestModel(t *testing.T) (Model, *fakeFeed) {
	t.Helper()

	f := newFakeFeed()
	m := NewModel(f, Options{Columns: 2, Logger: adapter.NullLogger()})
	gridHeight := 4 + components.BorderHeight + components.ScrollIndicatorLines + components.TitleLines
	m = update(t, m, tea.WindowSizeMsg{Width: 60, Height: gridHeight + ChromeHeight})
	require.Equal(t, 4, m.Grid.VisibleRows())
	return m, f
}

func update(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	out, ok := next.(Model)
	require.True(t, ok)
	return out
}

func TestModel_EmptyGridDoesNotTrigger(t *testing.T) {
	t.Parallel()

	m, f := newTestModel(t)
	m = update(t, m, FeedStateMsg{State: domain.FeedState{IsLoading: true}})

	assert.True(t, m.Loading)
	assert.Equal(t, 0, f.Triggers())
}

func TestModel_ShortPageFillsScreen(t *testing.T) {
	t.Parallel()

	m, f := newTestModel(t)

	// Four images on an eight-cell screen: already at the end
	m = update(t, m, FeedStateMsg{State: domain.FeedState{ImageList: images(4)}})
	assert.Equal(t, 1, f.Triggers())

	// Loading republish with the same list does not trigger again
	m = update(t, m, FeedStateMsg{State: domain.FeedState{IsLoading: true, ImageList: images(4)}})
	assert.Equal(t, 1, f.Triggers())

	// A full page pushes the end off screen
	m = update(t, m, FeedStateMsg{State: domain.FeedState{ImageList: images(20)}})
	assert.Equal(t, 1, f.Triggers())
	assert.Equal(t, 20, m.Grid.Total())
}

func TestModel_ScrollToEndTriggersOnce(t *testing.T) {
	t.Parallel()

	m, f := newTestModel(t)
	m = update(t, m, FeedStateMsg{State: domain.FeedState{ImageList: images(20)}})
	require.Equal(t, 0, f.Triggers())

	m = update(t, m, runes("G"))
	assert.Equal(t, 1, f.Triggers())

	// Moving within the last screen keeps the signal high
	m = update(t, m, runes("k"))
	m = update(t, m, runes("h"))
	assert.Equal(t, 1, f.Triggers())

	// Leaving and returning is a new rising edge
	m = update(t, m, runes("g"))
	m = update(t, m, runes("G"))
	assert.Equal(t, 2, f.Triggers())
}

func TestModel_FilteringSuppressesTrigger(t *testing.T) {
	t.Parallel()

	m, f := newTestModel(t)
	m = update(t, m, FeedStateMsg{State: domain.FeedState{ImageList: images(20)}})

	m = update(t, m, runes("/"))
	require.True(t, m.Grid.IsFilterTyping())
	m = update(t, m, runes("G"))
	assert.Equal(t, 0, f.Triggers())
}

func TestModel_BannerEvent(t *testing.T) {
	t.Parallel()

	m, _ := newTestModel(t)
	m = update(t, m, FeedEventMsg{Event: domain.FeedEvent{Kind: domain.EventShowBanner, Message: domain.MsgConnectivity}})

	assert.Equal(t, domain.MsgConnectivity, m.StatusMsg)
	assert.True(t, m.StatusIsErr)
	assert.Contains(t, m.View(), domain.MsgConnectivity)

	// A stale clear does not remove a newer banner
	m = update(t, m, FeedEventMsg{Event: domain.FeedEvent{Kind: domain.EventShowBanner, Message: domain.MsgUnauthorized}})
	m = update(t, m, ClearStatusMsg{ID: m.statusID - 1})
	assert.Equal(t, domain.MsgUnauthorized, m.StatusMsg)

	m = update(t, m, ClearStatusMsg{ID: m.statusID})
	assert.Empty(t, m.StatusMsg)
}

func TestModel_ErrorMessageShownInFooter(t *testing.T) {
	t.Parallel()

	m, _ := newTestModel(t)
	m = update(t, m, FeedStateMsg{State: domain.FeedState{ImageList: images(20), ErrorMessage: domain.MsgRemoteService}})

	assert.Equal(t, domain.MsgRemoteService, m.ErrorMessage)
	assert.Contains(t, m.renderFooter(), domain.MsgRemoteService)
}

func TestModel_RetryKey(t *testing.T) {
	t.Parallel()

	m, f := newTestModel(t)
	m = update(t, m, runes("r"))

	assert.Equal(t, 1, f.Triggers())
	assert.Equal(t, "Requesting page 2...", m.StatusMsg)
	assert.False(t, m.StatusIsErr)
}

func TestModel_YankShowsURL(t *testing.T) {
	t.Parallel()

	m, _ := newTestModel(t)
	m = update(t, m, FeedStateMsg{State: domain.FeedState{ImageList: images(20)}})
	m = update(t, m, runes("l"))
	m = update(t, m, runes("y"))

	assert.Equal(t, "https://images.example.com/photo-1", m.StatusMsg)
}

func TestModel_HelpToggle(t *testing.T) {
	t.Parallel()

	m, _ := newTestModel(t)
	m = update(t, m, runes("?"))
	require.True(t, m.ShowHelp)
	assert.Contains(t, m.View(), "NAVIGATION")

	m = update(t, m, runes("x"))
	assert.False(t, m.ShowHelp)
}

func TestModel_QuitUnsubscribes(t *testing.T) {
	t.Parallel()

	m, f := newTestModel(t)
	_, cmd := m.Update(runes("q"))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())

	f.mu.Lock()
	defer f.mu.Unlock()
	assert.True(t, f.unsubscribed)
}

func TestModel_StateChainContinues(t *testing.T) {
	t.Parallel()

	m, f := newTestModel(t)
	f.states <- domain.FeedState{ImageList: images(3)}

	_, cmd := m.Update(FeedStateMsg{State: domain.FeedState{}})
	require.NotNil(t, cmd)
	msg := cmd()
	got, ok := msg.(FeedStateMsg)
	require.True(t, ok)
	assert.Len(t, got.State.ImageList, 3)

	close(f.states)
	assert.IsType(t, FeedClosedMsg{}, WaitForStateCmd(f.states)())
}

func TestModel_StatusLineInFooter(t *testing.T) {
	t.Parallel()

	m, _ := newTestModel(t)
	m = update(t, m, FeedStateMsg{State: domain.FeedState{ImageList: images(20), ErrorMessage: domain.MsgRemoteService}})
	m = update(t, m, runes("y"))

	// A confirmation replaces the persistent error until it is cleared
	footer := m.renderFooter()
	assert.Contains(t, footer, "https://images.example.com/photo-0")
	assert.NotContains(t, footer, domain.MsgRemoteService)

	m = update(t, m, ClearStatusMsg{ID: m.statusID})
	assert.Contains(t, m.renderFooter(), domain.MsgRemoteService)
}
