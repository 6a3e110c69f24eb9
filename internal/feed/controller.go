package feed

import (
	"context"
	"log/slog"
	"sync"

	"github.com/mmcdole/snapfeed/internal/domain"
)

const eventBufferSize = 16

// Controller aggregates pages into a single FeedState.
//
// Every TriggerNextPage advances the page cursor immediately and queues that
// page. A single worker fetches queued pages one at a time, in order, and is
// the only code that touches the aggregated list.
type Controller struct {
	fetcher Fetcher
	keys    domain.KeySource
	logger  *slog.Logger

	states *Broadcaster[domain.FeedState]
	events chan domain.FeedEvent

	mu     sync.Mutex
	cursor int   // next page to request, starts at 1
	queue  []int // pages waiting for the worker
	closed bool
	wake   chan struct{}
	done   chan struct{}

	// Owned by the worker goroutine
	images []domain.ImageRecord
}

// NewController creates a controller and starts its worker.
// Call Close to stop it.
func NewController(fetcher Fetcher, keys domain.KeySource, logger *slog.Logger) *Controller {
	if logger == nil {
		logger = slog.Default()
	}
	c := &Controller{
		fetcher: fetcher,
		keys:    keys,
		logger:  logger,
		states:  NewBroadcaster(domain.FeedState{ImageList: []domain.ImageRecord{}}),
		events:  make(chan domain.FeedEvent, eventBufferSize),
		cursor:  1,
		wake:    make(chan struct{}, 1),
		done:    make(chan struct{}),
		images:  []domain.ImageRecord{},
	}
	go c.run()
	return c
}

// State returns the latest published snapshot
func (c *Controller) State() domain.FeedState {
	return c.states.Value()
}

// Subscribe returns a latest-value channel of feed states, starting with the
// current one, and a function to stop receiving.
func (c *Controller) Subscribe() (<-chan domain.FeedState, func()) {
	return c.states.Subscribe()
}

// Events returns the one-shot notification queue. Each event is delivered to
// exactly one reader and never replayed. Closed by Close.
func (c *Controller) Events() <-chan domain.FeedEvent {
	return c.events
}

// Cursor returns the page the next trigger will request
func (c *Controller) Cursor() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cursor
}

// TriggerNextPage advances the cursor by one and queues the page it pointed
// at. It never blocks and returns the queued page, or 0 after Close.
// Callers are expected to debounce (see EdgeDetector); repeated triggers
// queue consecutive pages.
func (c *Controller) TriggerNextPage() int {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		c.logger.Warn("trigger after close ignored")
		return 0
	}
	page := c.cursor
	c.cursor++
	c.queue = append(c.queue, page)
	c.mu.Unlock()

	select {
	case c.wake <- struct{}{}:
	default:
	}

	c.logger.Debug("queued page", "page", page)
	return page
}

// Close stops accepting triggers, drops queued pages, waits for the page in
// flight to finish and closes all state and event channels.
func (c *Controller) Close() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		<-c.done
		return
	}
	c.closed = true
	c.queue = nil
	c.mu.Unlock()

	select {
	case c.wake <- struct{}{}:
	default:
	}
	<-c.done

	c.states.Close()
	close(c.events)
}

func (c *Controller) run() {
	defer close(c.done)
	for {
		page, ok := c.next()
		if !ok {
			return
		}
		c.fetch(page)
	}
}

// next blocks until a page is queued or the controller is closed
func (c *Controller) next() (int, bool) {
	for {
		c.mu.Lock()
		if c.closed {
			c.mu.Unlock()
			return 0, false
		}
		if len(c.queue) > 0 {
			page := c.queue[0]
			c.queue = c.queue[1:]
			c.mu.Unlock()
			return page, true
		}
		c.mu.Unlock()
		<-c.wake
	}
}

// fetch folds the outcomes of one page into the aggregated state.
// The in-flight fetch is not cancelled by Close.
func (c *Controller) fetch(page int) {
	var failure string

	for outcome := range c.fetcher.FetchPage(context.Background(), c.keys.AccessKey(), page) {
		switch outcome.Kind {
		case domain.OutcomeLoading:
			// Interim cache data is not merged; only the terminal Success appends
			c.states.Publish(domain.FeedState{
				IsLoading: true,
				ImageList: c.images,
			})

		case domain.OutcomeFailure:
			failure = outcome.Message
			c.notify(domain.FeedEvent{Kind: domain.EventShowBanner, Message: failure})
			c.states.Publish(domain.FeedState{
				IsLoading:    false,
				ImageList:    c.images,
				ErrorMessage: failure,
			})

		case domain.OutcomeSuccess:
			// Fresh slice so previously published snapshots stay untouched
			images := make([]domain.ImageRecord, 0, len(c.images)+len(outcome.Data))
			images = append(images, c.images...)
			images = append(images, outcome.Data...)
			c.images = images

			// A failure reported earlier in this same fetch stays visible
			c.states.Publish(domain.FeedState{
				IsLoading:    false,
				ImageList:    images,
				ErrorMessage: failure,
			})
			c.logger.Info("page loaded", "page", page, "added", len(outcome.Data), "total", len(images), "failed", failure != "")
		}
	}
}

// notify queues a one-shot event without blocking the worker
func (c *Controller) notify(ev domain.FeedEvent) {
	select {
	case c.events <- ev:
	default:
		c.logger.Warn("event queue full, dropping event", "message", ev.Message)
	}
}
