package domain

import "time"

// ImageRecord is the persisted unit of the feed.
// URL is the primary key; saving a record with an existing URL replaces it.
type ImageRecord struct {
	URL  string `json:"url"`
	Page int    `json:"page"`
}

// Photo is a photo descriptor as returned by the remote listing API.
// It only lives for the duration of one fetch before being projected to an ImageRecord.
type Photo struct {
	ID             string
	Width          int
	Height         int
	Color          string
	BlurHash       string
	Description    string
	AltDescription string
	Likes          int
	CreatedAt      time.Time
	UpdatedAt      time.Time
	PromotedAt     time.Time
	URLs           PhotoURLs
	Links          PhotoLinks
}

// PhotoURLs holds the available resolutions of a photo
type PhotoURLs struct {
	Raw     string
	Full    string
	Regular string
	Small   string
	Thumb   string
}

// PhotoLinks holds the related API and web links of a photo
type PhotoLinks struct {
	Self             string
	HTML             string
	Download         string
	DownloadLocation string
}

// ToImageRecord projects the photo down to its persisted form using the small
// resolution URL (empty if the API did not return one).
func (p Photo) ToImageRecord(page int) ImageRecord {
	return ImageRecord{URL: p.URLs.Small, Page: page}
}

// ToImageRecords projects a page of photos, preserving order
func ToImageRecords(photos []Photo, page int) []ImageRecord {
	records := make([]ImageRecord, len(photos))
	for i, p := range photos {
		records[i] = p.ToImageRecord(page)
	}
	return records
}
