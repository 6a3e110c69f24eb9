package domain

// ImageStore persists image records keyed by URL.
// Implementations must be safe for concurrent use.
type ImageStore interface {
	// SaveImages upserts records by URL; the last write wins.
	SaveImages(records []ImageRecord) error

	// ImagesForPage returns the records of a page in insertion order.
	// The result is never nil.
	ImagesForPage(page int) ([]ImageRecord, error)

	// Pages returns the page numbers that have at least one record, ascending.
	Pages() ([]int, error)

	// Count returns the total number of stored records.
	Count() (int, error)

	// Clear removes every record.
	Clear() error

	Close() error
}
