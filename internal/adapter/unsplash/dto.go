package unsplash

// Photo represents one entry of the /photos listing
type Photo struct {
	ID             string  `json:"id"`
	CreatedAt      string  `json:"created_at"`
	UpdatedAt      string  `json:"updated_at"`
	PromotedAt     *string `json:"promoted_at"`
	Width          int     `json:"width"`
	Height         int     `json:"height"`
	Color          string  `json:"color"`
	BlurHash       string  `json:"blur_hash"`
	Description    *string `json:"description"`
	AltDescription *string `json:"alt_description"`
	Likes          int     `json:"likes"`
	URLs           URLs    `json:"urls"`
	Links          Links   `json:"links"`
}

// URLs contains the resolutions the API serves for a photo.
// Any of them may be missing.
type URLs struct {
	Raw     *string `json:"raw"`
	Full    *string `json:"full"`
	Regular *string `json:"regular"`
	Small   *string `json:"small"`
	Thumb   *string `json:"thumb"`
}

// Links contains API and web links for a photo
type Links struct {
	Self             string `json:"self"`
	HTML             string `json:"html"`
	Download         string `json:"download"`
	DownloadLocation string `json:"download_location"`
}

// ErrorResponse is the body the API sends with non-2xx statuses
type ErrorResponse struct {
	Errors []string `json:"errors"`
}
