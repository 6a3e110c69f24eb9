package unsplash

import (
	"time"

	"github.com/mmcdole/snapfeed/internal/domain"
)

// MapPhotos converts API photos to domain photos, preserving order
func MapPhotos(photos []Photo) []domain.Photo {
	out := make([]domain.Photo, len(photos))
	for i, p := range photos {
		out[i] = MapPhoto(p)
	}
	return out
}

// MapPhoto converts a single API photo to a domain photo
func MapPhoto(p Photo) domain.Photo {
	return domain.Photo{
		ID:             p.ID,
		Width:          p.Width,
		Height:         p.Height,
		Color:          p.Color,
		BlurHash:       p.BlurHash,
		Description:    deref(p.Description),
		AltDescription: deref(p.AltDescription),
		Likes:          p.Likes,
		CreatedAt:      parseTime(p.CreatedAt),
		UpdatedAt:      parseTime(p.UpdatedAt),
		PromotedAt:     parseTime(deref(p.PromotedAt)),
		URLs: domain.PhotoURLs{
			Raw:     deref(p.URLs.Raw),
			Full:    deref(p.URLs.Full),
			Regular: deref(p.URLs.Regular),
			Small:   deref(p.URLs.Small),
			Thumb:   deref(p.URLs.Thumb),
		},
		Links: domain.PhotoLinks{
			Self:             p.Links.Self,
			HTML:             p.Links.HTML,
			Download:         p.Links.Download,
			DownloadLocation: p.Links.DownloadLocation,
		},
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// parseTime parses an RFC 3339 timestamp, returning the zero time when empty or malformed
func parseTime(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}
	}
	return t
}
