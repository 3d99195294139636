package statekit

import "context"

// watchBuffer is the channel buffer handed to each watcher. Updates are
// sent non-blocking; a watcher whose buffer is full misses the update
// rather than stalling the write path.
const watchBuffer = 100

// Watch returns a channel of committed views.
//
// Watch is the channel-shaped alternative to [Store.Subscribe] for hosts
// that integrate via select loops. Unlike listeners, watchers observe
// state after it is committed and are never gated by equality predicates.
//
// The channel is buffered; if the watcher falls behind, updates are
// dropped for it rather than blocking writers. The channel is closed and
// the watcher removed when ctx is done.
//
// Example:
//
//	ctx, cancel := context.WithCancel(context.Background())
//	defer cancel()
//	for v := range store.Watch(ctx) {
//	    render(v.State())
//	}
func (s *Store[S]) Watch(ctx context.Context) <-chan View[S] {
	ch := make(chan View[S], watchBuffer)

	s.watchMu.Lock()
	s.watchers[ch] = struct{}{}
	s.watchMu.Unlock()

	go func() {
		<-ctx.Done()
		s.watchMu.Lock()
		defer s.watchMu.Unlock()
		if _, ok := s.watchers[ch]; ok {
			delete(s.watchers, ch)
			close(ch)
		}
	}()

	return ch
}

// broadcast sends a committed view to all active watchers.
//
// Non-blocking: if a watcher's buffer is full, the view is dropped for
// that watcher rather than blocking the write path.
func (s *Store[S]) broadcast(v View[S]) {
	s.watchMu.RLock()
	defer s.watchMu.RUnlock()

	for ch := range s.watchers {
		select {
		case ch <- v:
		default:
			// watcher is slow, drop the update
		}
	}
}
