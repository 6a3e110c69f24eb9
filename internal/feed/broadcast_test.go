package feed_test

import (
	"testing"

	"github.com/mmcdole/snapfeed/internal/feed"
	"github.com/stretchr/testify/assert"
)

func TestBroadcaster(t *testing.T) {
	t.Parallel()

	t.Run("replays current value to new subscribers", func(t *testing.T) {
		t.Parallel()

		b := feed.NewBroadcaster(1)
		b.Publish(2)

		ch, cancel := b.Subscribe()
		defer cancel()
		assert.Equal(t, 2, <-ch)
	})

	t.Run("slow subscribers only see the latest value", func(t *testing.T) {
		t.Parallel()

		b := feed.NewBroadcaster(0)
		ch, cancel := b.Subscribe()
		defer cancel()

		for i := 1; i <= 10; i++ {
			b.Publish(i)
		}
		assert.Equal(t, 10, <-ch)
		assert.Equal(t, 10, b.Value())

		select {
		case v := <-ch:
			t.Fatalf("unexpected extra value %d", v)
		default:
		}
	})

	t.Run("fans out to every subscriber", func(t *testing.T) {
		t.Parallel()

		b := feed.NewBroadcaster("a")
		ch1, cancel1 := b.Subscribe()
		ch2, cancel2 := b.Subscribe()
		defer cancel1()
		defer cancel2()
		<-ch1
		<-ch2

		b.Publish("b")
		assert.Equal(t, "b", <-ch1)
		assert.Equal(t, "b", <-ch2)
	})

	t.Run("cancel closes the channel and is idempotent", func(t *testing.T) {
		t.Parallel()

		b := feed.NewBroadcaster(0)
		ch, cancel := b.Subscribe()
		<-ch
		cancel()
		cancel()

		_, ok := <-ch
		assert.False(t, ok)
		b.Publish(1)
	})

	t.Run("close ends all subscriptions", func(t *testing.T) {
		t.Parallel()

		b := feed.NewBroadcaster(0)
		ch, cancel := b.Subscribe()
		<-ch
		b.Close()
		cancel()

		_, ok := <-ch
		assert.False(t, ok)

		late, _ := b.Subscribe()
		_, ok = <-late
		assert.False(t, ok)
	})
}
