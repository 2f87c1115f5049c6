package services

import (
	"sync"

	"tally/internal/domain"
)

// progressChannel is an unbounded multi-producer, single-consumer queue.
// Sends never block. It closes once every sender has been released.
type progressChannel struct {
	closed  bool
	cond    *sync.Cond
	mu      sync.Mutex
	queue   []domain.ProgressEvent
	senders int
}

func newProgressChannel() *progressChannel {
	c := &progressChannel{}
	c.cond = sync.NewCond(&c.mu)
	return c
}

// progressSender is one producer's handle on a progressChannel
type progressSender struct {
	ch       *progressChannel
	released bool
}

// Sender registers a new producer. All senders must be registered before the
// last existing one is released, otherwise the channel may already be closed.
func (c *progressChannel) Sender() *progressSender {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.senders++
	return &progressSender{ch: c}
}

// Send enqueues ev. It reports false if the channel is already closed.
func (s *progressSender) Send(ev domain.ProgressEvent) bool {
	c := s.ch
	c.mu.Lock()
	if c.closed || s.released {
		c.mu.Unlock()
		return false
	}
	c.queue = append(c.queue, ev)
	c.mu.Unlock()
	c.cond.Signal()
	return true
}

// Release drops this producer; releasing twice is a no-op
func (s *progressSender) Release() {
	c := s.ch
	c.mu.Lock()
	if s.released {
		c.mu.Unlock()
		return
	}
	s.released = true
	c.senders--
	if c.senders <= 0 {
		c.closed = true
	}
	c.mu.Unlock()
	c.cond.Broadcast()
}

// Recv blocks until an event is available or the channel is closed and drained
func (c *progressChannel) Recv() (domain.ProgressEvent, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for len(c.queue) == 0 && !c.closed {
		c.cond.Wait()
	}
	if len(c.queue) == 0 {
		return domain.ProgressEvent{}, false
	}
	ev := c.queue[0]
	c.queue[0] = domain.ProgressEvent{}
	c.queue = c.queue[1:]
	return ev, true
}
