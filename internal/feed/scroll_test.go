package feed_test

import (
	"testing"

	"github.com/mmcdole/snapfeed/internal/feed"
	"github.com/stretchr/testify/assert"
)

func TestNearEnd(t *testing.T) {
	t.Parallel()

	tests := []struct {
		lastVisible, total int
		want               bool
	}{
		{lastVisible: 0, total: 0, want: true},
		{lastVisible: -1, total: 0, want: true},
		{lastVisible: 7, total: 10, want: false},
		{lastVisible: 8, total: 10, want: false},
		{lastVisible: 9, total: 10, want: true},
		{lastVisible: 3, total: 20, want: false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, feed.NearEnd(tt.lastVisible, tt.total), "NearEnd(%d, %d)", tt.lastVisible, tt.total)
	}
}

func TestEdgeDetector(t *testing.T) {
	t.Parallel()

	var e feed.EdgeDetector

	assert.False(t, e.Update(false))
	assert.True(t, e.Update(true))
	assert.False(t, e.Update(true), "stays high without firing again")
	assert.False(t, e.Update(false))
	assert.True(t, e.Update(true))

	e.Reset()
	assert.True(t, e.Update(true))
}
