package mock

import "github.com/mmcdole/snapfeed/internal/domain"

var _ domain.ImageStore = (*ImageStore)(nil)

// ImageStore is a mock implementation of domain.ImageStore.
type ImageStore struct {
	SaveImagesFn    func(records []domain.ImageRecord) error
	ImagesForPageFn func(page int) ([]domain.ImageRecord, error)
	PagesFn         func() ([]int, error)
	CountFn         func() (int, error)
	ClearFn         func() error
	CloseFn         func() error
}

func (s *ImageStore) SaveImages(records []domain.ImageRecord) error {
	return s.SaveImagesFn(records)
}

func (s *ImageStore) ImagesForPage(page int) ([]domain.ImageRecord, error) {
	return s.ImagesForPageFn(page)
}

func (s *ImageStore) Pages() ([]int, error) {
	return s.PagesFn()
}

func (s *ImageStore) Count() (int, error) {
	return s.CountFn()
}

func (s *ImageStore) Clear() error {
	return s.ClearFn()
}

func (s *ImageStore) Close() error {
	return s.CloseFn()
}
