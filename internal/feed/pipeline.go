package feed

import (
	"context"
	"log/slog"
	"strconv"

	"github.com/mmcdole/snapfeed/internal/domain"
	"golang.org/x/sync/singleflight"
)

const defaultPerPage = 10

// maxOutcomes bounds the emissions of one FetchPage call:
// Loading, LoadingWith, a network Failure, a read Failure and Success.
const maxOutcomes = 5

// PageOutcome is one step of a page fetch
type PageOutcome = domain.Outcome[[]domain.ImageRecord]

// Fetcher produces the outcome sequence for one page request.
type Fetcher interface {
	FetchPage(ctx context.Context, accessKey string, page int) <-chan PageOutcome
}

var _ Fetcher = (*Pipeline)(nil)

// Pipeline implements the cache-then-network page fetch.
type Pipeline struct {
	client  domain.PhotoClient
	store   domain.ImageStore
	perPage int
	logger  *slog.Logger

	// Collapses concurrent network refreshes of the same page
	group singleflight.Group
}

// NewPipeline creates a new fetch pipeline. perPage <= 0 uses 10.
func NewPipeline(client domain.PhotoClient, store domain.ImageStore, perPage int, logger *slog.Logger) *Pipeline {
	if logger == nil {
		logger = slog.Default()
	}
	if perPage <= 0 {
		perPage = defaultPerPage
	}
	return &Pipeline{client: client, store: store, perPage: perPage, logger: logger}
}

// FetchPage starts a fetch of page and returns its outcomes in order:
//
//	Loading()                      fetch started
//	LoadingWith(cached records)    possibly empty, never skipped
//	Failure(msg)                   zero or more, only when something failed
//	Success(stored records)        always last
//
// The channel is closed after Success. Every call is a new, independent
// attempt; the sequence runs to completion even if nobody reads it.
func (p *Pipeline) FetchPage(ctx context.Context, accessKey string, page int) <-chan PageOutcome {
	out := make(chan PageOutcome, maxOutcomes)

	go func() {
		defer close(out)

		out <- domain.Loading[[]domain.ImageRecord]()

		cached, err := p.store.ImagesForPage(page)
		if err != nil {
			p.logger.Error("failed to read cached page", "error", err, "page", page)
			cached = []domain.ImageRecord{}
		}
		out <- domain.LoadingWith(cached)

		if err := p.refresh(ctx, accessKey, page); err != nil {
			out <- domain.Failure[[]domain.ImageRecord](domain.FailureMessage(err))
		}

		fresh, err := p.store.ImagesForPage(page)
		if err != nil {
			p.logger.Error("failed to re-read page", "error", err, "page", page)
			out <- domain.Failure[[]domain.ImageRecord](domain.MsgRemoteService)
			fresh = []domain.ImageRecord{}
		}
		out <- domain.Success(fresh)
	}()

	return out
}

// refresh downloads page and persists it. Concurrent calls for the same
// key and page share one network request and one write.
func (p *Pipeline) refresh(ctx context.Context, accessKey string, page int) error {
	key := accessKey + "\x00" + strconv.Itoa(page)

	_, err, shared := p.group.Do(key, func() (interface{}, error) {
		photos, err := p.client.ListPhotos(ctx, accessKey, page, p.perPage)
		if err != nil {
			p.logger.Warn("failed to fetch page", "error", err, "page", page)
			return nil, err
		}

		records := domain.ToImageRecords(photos, page)
		if err := p.store.SaveImages(records); err != nil {
			p.logger.Error("failed to save page", "error", err, "page", page)
			return nil, err
		}

		p.logger.Debug("saved page", "page", page, "count", len(records))
		return nil, nil
	})
	if shared {
		p.logger.Debug("joined in-flight refresh", "page", page)
	}
	return err
}
