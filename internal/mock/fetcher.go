package mock

import (
	"context"

	"github.com/mmcdole/snapfeed/internal/domain"
	"github.com/mmcdole/snapfeed/internal/feed"
)

var _ feed.Fetcher = (*Fetcher)(nil)

// Fetcher is a mock implementation of feed.Fetcher.
type Fetcher struct {
	FetchPageFn func(ctx context.Context, accessKey string, page int) <-chan domain.Outcome[[]domain.ImageRecord]
}

func (f *Fetcher) FetchPage(ctx context.Context, accessKey string, page int) <-chan domain.Outcome[[]domain.ImageRecord] {
	return f.FetchPageFn(ctx, accessKey, page)
}

// Outcomes returns a closed channel that yields outcomes in order
func Outcomes(outcomes ...domain.Outcome[[]domain.ImageRecord]) <-chan domain.Outcome[[]domain.ImageRecord] {
	ch := make(chan domain.Outcome[[]domain.ImageRecord], len(outcomes))
	for _, o := range outcomes {
		ch <- o
	}
	close(ch)
	return ch
}
