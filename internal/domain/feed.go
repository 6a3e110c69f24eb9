package domain

// FeedState is the single snapshot the UI renders.
// It is replaced wholesale on every update; ImageList is never mutated once published.
type FeedState struct {
	IsLoading bool
	ImageList []ImageRecord

	// ErrorMessage is the failure reported by the current fetch. A failure
	// stays on that fetch's final Success state, so cached records and the
	// message show together. The next fetch's Loading clears it.
	ErrorMessage string
}

// HasError reports whether the last fetch ended with a failure
func (s FeedState) HasError() bool {
	return s.ErrorMessage != ""
}

// FeedEventKind identifies a one-shot UI notification
type FeedEventKind int

const (
	// EventShowBanner asks the UI to show a transient, dismissible message
	EventShowBanner FeedEventKind = iota
)

// FeedEvent is delivered once and never replayed to late subscribers
type FeedEvent struct {
	Kind    FeedEventKind
	Message string
}
