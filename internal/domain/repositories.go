package domain

import "context"

// PhotoClient lists photos from the remote paged API.
// Errors wrap ErrUnauthorized, ErrRemoteService or ErrConnectivity.
type PhotoClient interface {
	ListPhotos(ctx context.Context, accessKey string, page, perPage int) ([]Photo, error)
}

// KeySource returns the static access key used for API calls
type KeySource interface {
	AccessKey() string
}
