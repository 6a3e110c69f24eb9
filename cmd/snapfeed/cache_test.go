package main_test

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	main "github.com/mmcdole/snapfeed/cmd/snapfeed"
	"github.com/mmcdole/snapfeed/internal/adapter"
	"github.com/mmcdole/snapfeed/internal/domain"
	"github.com/mmcdole/snapfeed/internal/mock"
)

func newDeps(store domain.ImageStore) (*main.Dependencies, *bytes.Buffer, *bytes.Buffer) {
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	return &main.Dependencies{
		Ctx:    context.Background(),
		Stdout: stdout,
		Stderr: stderr,
		Config: adapter.DefaultConfig(),
		Logger: adapter.NullLogger(),
		Store:  store,
	}, stdout, stderr
}

func cachedStore() *mock.ImageStore {
	byPage := map[int][]domain.ImageRecord{
		1: {
			{URL: "https://images.example.com/photo-mountain", Page: 1},
			{URL: "https://images.example.com/photo-river", Page: 1},
		},
		2: {
			{URL: "https://images.example.com/photo-forest", Page: 2},
			{URL: "", Page: 2},
		},
	}
	return &mock.ImageStore{
		PagesFn: func() ([]int, error) { return []int{1, 2}, nil },
		ImagesForPageFn: func(page int) ([]domain.ImageRecord, error) {
			if r, ok := byPage[page]; ok {
				return r, nil
			}
			return []domain.ImageRecord{}, nil
		},
		CountFn: func() (int, error) { return 4, nil },
	}
}

func TestCacheLsCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("lists every page in order", func(t *testing.T) {
		t.Parallel()

		deps, stdout, _ := newDeps(cachedStore())
		require.NoError(t, (&main.CacheLsCmd{}).Run(deps))

		out := stdout.String()
		assert.Less(t, bytes.Index(stdout.Bytes(), []byte("photo-mountain")), bytes.Index(stdout.Bytes(), []byte("photo-forest")))
		assert.Contains(t, out, "photo-river")
		assert.Contains(t, out, "(no url)")
		assert.Contains(t, out, "4 of 4 cached images")
	})

	t.Run("limits to one page", func(t *testing.T) {
		t.Parallel()

		store := cachedStore()
		store.PagesFn = func() ([]int, error) {
			t.Error("Pages should not be called when a page is given")
			return nil, nil
		}

		deps, stdout, _ := newDeps(store)
		require.NoError(t, (&main.CacheLsCmd{Page: 2}).Run(deps))

		out := stdout.String()
		assert.Contains(t, out, "photo-forest")
		assert.NotContains(t, out, "photo-mountain")
		assert.Contains(t, out, "2 of 4 cached images")
	})

	t.Run("fuzzy matches urls", func(t *testing.T) {
		t.Parallel()

		deps, stdout, _ := newDeps(cachedStore())
		require.NoError(t, (&main.CacheLsCmd{Match: "RVR"}).Run(deps))

		out := stdout.String()
		assert.Contains(t, out, "photo-river")
		assert.NotContains(t, out, "photo-mountain")
		assert.NotContains(t, out, "photo-forest")
	})

	t.Run("empty cache", func(t *testing.T) {
		t.Parallel()

		store := &mock.ImageStore{
			PagesFn: func() ([]int, error) { return []int{}, nil },
		}
		deps, stdout, _ := newDeps(store)
		require.NoError(t, (&main.CacheLsCmd{}).Run(deps))
		assert.Contains(t, stdout.String(), "No cached images found")
	})

	t.Run("store error", func(t *testing.T) {
		t.Parallel()

		storeErr := errors.New("disk on fire")
		store := &mock.ImageStore{
			PagesFn: func() ([]int, error) { return nil, storeErr },
		}
		deps, _, stderr := newDeps(store)
		err := (&main.CacheLsCmd{}).Run(deps)
		require.ErrorIs(t, err, storeErr)
		assert.Contains(t, stderr.String(), "disk on fire")
	})
}

func TestCacheClearCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("clears the store", func(t *testing.T) {
		t.Parallel()

		cleared := false
		store := &mock.ImageStore{
			CountFn: func() (int, error) { return 7, nil },
			ClearFn: func() error {
				cleared = true
				return nil
			},
		}

		deps, stdout, _ := newDeps(store)
		require.NoError(t, (&main.CacheClearCmd{}).Run(deps))
		assert.True(t, cleared)
		assert.Contains(t, stdout.String(), "Removed 7 cached images")
	})

	t.Run("all removes the cache directory", func(t *testing.T) {
		t.Parallel()

		dir := filepath.Join(t.TempDir(), "cache")
		require.NoError(t, os.MkdirAll(filepath.Join(dir, "abc123"), 0755))

		deps, stdout, _ := newDeps(nil)
		deps.Config.Cache.Dir = dir

		require.NoError(t, (&main.CacheClearCmd{All: true}).Run(deps))
		assert.NoDirExists(t, dir)
		assert.Contains(t, stdout.String(), dir)
	})

	t.Run("all with memory-only cache", func(t *testing.T) {
		t.Parallel()

		deps, stdout, _ := newDeps(nil)
		deps.Config.Cache.MemoryOnly = true

		require.NoError(t, (&main.CacheClearCmd{All: true}).Run(deps))
		assert.Contains(t, stdout.String(), "memory-only")
	})
}
