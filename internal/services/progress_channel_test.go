package services

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tally/internal/domain"
)

func TestProgressChannel_SendsNeverBlock(t *testing.T) {
	ch := newProgressChannel()
	sender := ch.Sender()

	// nobody is receiving yet
	for i := 0; i < 10000; i++ {
		require.True(t, sender.Send(domain.ProgressEvent{SourceURI: "a", Current: i, Total: 10000}))
	}
	sender.Release()

	count := 0
	for {
		ev, ok := ch.Recv()
		if !ok {
			break
		}
		assert.Equal(t, count, ev.Current)
		count++
	}
	assert.Equal(t, 10000, count)
}

func TestProgressChannel_ClosesAfterLastSender(t *testing.T) {
	ch := newProgressChannel()
	senders := []*progressSender{ch.Sender(), ch.Sender(), ch.Sender()}

	var wg sync.WaitGroup
	for i, s := range senders {
		wg.Add(1)
		go func() {
			defer wg.Done()
			defer s.Release()
			for j := 0; j < 100; j++ {
				s.Send(domain.ProgressEvent{SourceURI: string(rune('a' + i)), Current: j, Total: 100})
			}
		}()
	}

	lastPerURI := map[string]int{}
	received := 0
	for {
		ev, ok := ch.Recv()
		if !ok {
			break
		}
		// per-producer order is preserved
		if prev, seen := lastPerURI[ev.SourceURI]; seen {
			assert.Greater(t, ev.Current, prev)
		}
		lastPerURI[ev.SourceURI] = ev.Current
		received++
	}
	wg.Wait()

	assert.Equal(t, 300, received)
}

func TestProgressSender_SendAfterReleaseIsDropped(t *testing.T) {
	ch := newProgressChannel()
	s := ch.Sender()
	s.Release()
	s.Release()

	assert.False(t, s.Send(domain.ProgressEvent{SourceURI: "a"}))
	_, ok := ch.Recv()
	assert.False(t, ok)
}
