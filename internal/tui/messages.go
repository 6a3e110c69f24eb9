package tui

import "github.com/mmcdole/snapfeed/internal/domain"

// Message types for the TUI

// FeedStateMsg carries a state snapshot published by the feed controller
type FeedStateMsg struct {
	State domain.FeedState
}

// FeedEventMsg carries a one-shot notification from the feed controller
type FeedEventMsg struct {
	Event domain.FeedEvent
}

// FeedClosedMsg signals that the controller closed its state stream
type FeedClosedMsg struct{}

// TickMsg is sent periodically for spinner animation
type TickMsg struct{}

// ClearStatusMsg clears the status line if it still shows status ID
type ClearStatusMsg struct {
	ID int
}
