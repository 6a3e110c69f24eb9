package mock

import (
	"context"

	"github.com/mmcdole/snapfeed/internal/domain"
)

var _ domain.PhotoClient = (*PhotoClient)(nil)

// PhotoClient is a mock implementation of domain.PhotoClient.
type PhotoClient struct {
	ListPhotosFn func(ctx context.Context, accessKey string, page, perPage int) ([]domain.Photo, error)
}

func (c *PhotoClient) ListPhotos(ctx context.Context, accessKey string, page, perPage int) ([]domain.Photo, error) {
	return c.ListPhotosFn(ctx, accessKey, page, perPage)
}
