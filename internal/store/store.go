package store

import (
	"bytes"
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/mmcdole/snapfeed/internal/domain"
	bolt "go.etcd.io/bbolt"
)

// Bucket names
var (
	bucketImages = []byte("images") // imageKey(url) -> imageEntry
	bucketPages  = []byte("pages")  // page|seq -> imageKey(url)
)

// keyPrefix leads every image key. bolt rejects empty keys and a photo
// without a small URL is stored under URL "".
const keyPrefix = 'u'

var _ domain.ImageStore = (*ImageStore)(nil)

// imageEntry is the stored form of a record. Seq orders records within a page
// and is reassigned on every write, matching replace-on-conflict semantics.
type imageEntry struct {
	URL  string `json:"url"`
	Page int    `json:"page"`
	Seq  uint64 `json:"seq"`
}

// ImageStore implements domain.ImageStore using BoltDB.
type ImageStore struct {
	db *bolt.DB

	// Memory-only mode (db == nil)
	mu     sync.RWMutex
	images map[string]imageEntry
	seq    uint64
}

// NewImageStore opens the store under baseCacheDir, namespaced by the API base URL
// so caches from different endpoints never mix. An empty baseCacheDir selects
// memory-only mode.
func NewImageStore(baseCacheDir, apiURL string) (*ImageStore, error) {
	if baseCacheDir == "" {
		return &ImageStore{images: make(map[string]imageEntry)}, nil
	}

	dir := baseCacheDir
	if apiURL != "" {
		dir = filepath.Join(baseCacheDir, hashAPIURL(apiURL))
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}

	dbPath := filepath.Join(dir, "images.db")
	db, err := bolt.Open(dbPath, 0600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open bolt db: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		for _, bucket := range [][]byte{bucketImages, bucketPages} {
			if _, err := tx.CreateBucketIfNotExists(bucket); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, err
	}

	return &ImageStore{db: db}, nil
}

func hashAPIURL(apiURL string) string {
	normalized := strings.TrimRight(strings.ToLower(apiURL), "/")
	hash := sha256.Sum256([]byte(normalized))
	return hex.EncodeToString(hash[:6])
}

// Path returns the database file path, or "" in memory-only mode
func (s *ImageStore) Path() string {
	if s.db == nil {
		return ""
	}
	return s.db.Path()
}

func (s *ImageStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// pageKey builds the page index key: 8-byte big-endian page then 8-byte seq,
// so a cursor walks one page in insertion order.
func pageKey(page int, seq uint64) []byte {
	k := make([]byte, 16)
	binary.BigEndian.PutUint64(k[:8], uint64(page))
	binary.BigEndian.PutUint64(k[8:], seq)
	return k
}

func pagePrefix(page int) []byte {
	p := make([]byte, 8)
	binary.BigEndian.PutUint64(p, uint64(page))
	return p
}

func imageKey(url string) []byte {
	k := make([]byte, 0, len(url)+1)
	k = append(k, keyPrefix)
	return append(k, url...)
}

func urlFromKey(k []byte) string {
	if len(k) == 0 {
		return ""
	}
	return string(k[1:])
}

// SaveImages upserts records by URL in a single transaction.
// A URL seen again replaces the previous row, including its page.
func (s *ImageStore) SaveImages(records []domain.ImageRecord) error {
	if len(records) == 0 {
		return nil
	}

	if s.db == nil {
		s.mu.Lock()
		defer s.mu.Unlock()
		for _, r := range records {
			s.seq++
			s.images[r.URL] = imageEntry{URL: r.URL, Page: r.Page, Seq: s.seq}
		}
		return nil
	}

	err := s.db.Update(func(tx *bolt.Tx) error {
		images := tx.Bucket(bucketImages)
		pages := tx.Bucket(bucketPages)

		for _, r := range records {
			key := imageKey(r.URL)

			// Drop the old index entry so the record moves to its new page/position
			if v := images.Get(key); v != nil {
				var old imageEntry
				if err := json.Unmarshal(v, &old); err == nil {
					if err := pages.Delete(pageKey(old.Page, old.Seq)); err != nil {
						return err
					}
				}
			}

			seq, err := images.NextSequence()
			if err != nil {
				return err
			}
			entry := imageEntry{URL: r.URL, Page: r.Page, Seq: seq}
			data, err := json.Marshal(entry)
			if err != nil {
				return err
			}
			if err := images.Put(key, data); err != nil {
				return err
			}
			if err := pages.Put(pageKey(r.Page, seq), key); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("%w: save images: %v", domain.ErrStorage, err)
	}
	return nil
}

// ImagesForPage returns the records of a page in insertion order.
func (s *ImageStore) ImagesForPage(page int) ([]domain.ImageRecord, error) {
	records := []domain.ImageRecord{}

	if s.db == nil {
		s.mu.RLock()
		var entries []imageEntry
		for _, e := range s.images {
			if e.Page == page {
				entries = append(entries, e)
			}
		}
		s.mu.RUnlock()

		sort.Slice(entries, func(i, j int) bool { return entries[i].Seq < entries[j].Seq })
		for _, e := range entries {
			records = append(records, domain.ImageRecord{URL: e.URL, Page: e.Page})
		}
		return records, nil
	}

	prefix := pagePrefix(page)
	err := s.db.View(func(tx *bolt.Tx) error {
		c := tx.Bucket(bucketPages).Cursor()
		for k, v := c.Seek(prefix); k != nil && bytes.HasPrefix(k, prefix); k, v = c.Next() {
			records = append(records, domain.ImageRecord{URL: urlFromKey(v), Page: page})
		}
		return nil
	})
	if err != nil {
		return []domain.ImageRecord{}, fmt.Errorf("%w: read page %d: %v", domain.ErrStorage, page, err)
	}
	return records, nil
}

// Pages returns the distinct page numbers with stored records, ascending.
func (s *ImageStore) Pages() ([]int, error) {
	if s.db == nil {
		s.mu.RLock()
		seen := make(map[int]struct{})
		for _, e := range s.images {
			seen[e.Page] = struct{}{}
		}
		s.mu.RUnlock()

		pages := make([]int, 0, len(seen))
		for p := range seen {
			pages = append(pages, p)
		}
		sort.Ints(pages)
		return pages, nil
	}

	var pages []int
	err := s.db.View(func(tx *bolt.Tx) error {
		c := tx.Bucket(bucketPages).Cursor()
		for k, _ := c.First(); k != nil; {
			page := binary.BigEndian.Uint64(k[:8])
			pages = append(pages, int(page))
			// Jump to the first key of the next page
			k, _ = c.Seek(pagePrefix(int(page) + 1))
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: list pages: %v", domain.ErrStorage, err)
	}
	return pages, nil
}

// Count returns the number of stored records
func (s *ImageStore) Count() (int, error) {
	if s.db == nil {
		s.mu.RLock()
		defer s.mu.RUnlock()
		return len(s.images), nil
	}

	var n int
	err := s.db.View(func(tx *bolt.Tx) error {
		n = tx.Bucket(bucketImages).Stats().KeyN
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("%w: count: %v", domain.ErrStorage, err)
	}
	return n, nil
}

// Clear removes every record
func (s *ImageStore) Clear() error {
	if s.db == nil {
		s.mu.Lock()
		s.images = make(map[string]imageEntry)
		s.mu.Unlock()
		return nil
	}

	err := s.db.Update(func(tx *bolt.Tx) error {
		for _, bucket := range [][]byte{bucketImages, bucketPages} {
			if err := tx.DeleteBucket(bucket); err != nil && !errors.Is(err, bolt.ErrBucketNotFound) {
				return err
			}
			if _, err := tx.CreateBucket(bucket); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("%w: clear: %v", domain.ErrStorage, err)
	}
	return nil
}
