package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mmcdole/snapfeed/internal/domain"
)

// WaitForStateCmd blocks for the next state snapshot. Update re-issues it
// after every FeedStateMsg so the subscription is drained continuously.
func WaitForStateCmd(ch <-chan domain.FeedState) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		state, ok := <-ch
		if !ok {
			return FeedClosedMsg{}
		}
		return FeedStateMsg{State: state}
	}
}

// WaitForEventCmd blocks for the next feed event. A closed channel ends
// the chain.
func WaitForEventCmd(ch <-chan domain.FeedEvent) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		ev, ok := <-ch
		if !ok {
			return nil
		}
		return FeedEventMsg{Event: ev}
	}
}

// TickCmd returns a command that sends a tick after a delay
func TickCmd(delay time.Duration) tea.Cmd {
	return tea.Tick(delay, func(t time.Time) tea.Msg {
		return TickMsg{}
	})
}

// ClearStatusCmd returns a command that clears status id after a delay
func ClearStatusCmd(delay time.Duration, id int) tea.Cmd {
	return tea.Tick(delay, func(t time.Time) tea.Msg {
		return ClearStatusMsg{ID: id}
	})
}
