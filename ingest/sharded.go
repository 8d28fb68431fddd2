package ingest

import (
	"errors"

	"golang.org/x/sync/errgroup"

	"github.com/paystream/transaction-engine/core"
)

const shardChannelBuffer = 1024

// ErrShardedClosed is returned when routing into a Sharded that was already closed.
var ErrShardedClosed = errors.New("sharded ingestor is closed")

// Sharded fans commands out to worker goroutines by client id. Accounts share
// no mutable state across clients, so each worker owns a private Router and a
// private slice of the client space; commands for one client always land on
// the same worker, in arrival order. This keeps at most one in-flight
// Handle+Apply pair per client without any locking.
//
// Route dispatches asynchronously; rejected commands surface through the
// configured Logger and MetricsCollector, not through Route's caller.
// Snapshot is only valid after Close has returned.
type Sharded struct {
	routers []*Router
	inputs  []chan core.Command
	group   errgroup.Group
	closed  bool
}

// NewSharded creates a sharded ingestor with the given number of workers.
// Each worker's Router is built from the same options, so a shared
// MetricsCollector or EventSink must be safe for concurrent use.
func NewSharded(shards int, opts ...Option) *Sharded {
	if shards < 1 {
		shards = 1
	}

	s := &Sharded{
		routers: make([]*Router, shards),
		inputs:  make([]chan core.Command, shards),
	}

	for i := 0; i < shards; i++ {
		s.routers[i] = NewRouter(opts...)
		s.inputs[i] = make(chan core.Command, shardChannelBuffer)
	}

	for i := 0; i < shards; i++ {
		input := s.inputs[i]
		router := s.routers[i]

		s.group.Go(func() error {
			for command := range input {
				_ = router.Route(command) // rejections are reported by the router itself
			}

			return nil
		})
	}

	return s
}

// Route dispatches the command to the worker owning its client.
func (s *Sharded) Route(command core.Command) error {
	if s.closed {
		return ErrShardedClosed
	}

	s.inputs[int(command.Client)%len(s.inputs)] <- command

	return nil
}

// Close stops accepting commands and waits for all workers to drain.
func (s *Sharded) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true

	for _, input := range s.inputs {
		close(input)
	}

	return s.group.Wait()
}

// Snapshot merges the per-worker snapshots. Call only after Close.
func (s *Sharded) Snapshot() map[core.ClientID]AccountView {
	views := make(map[core.ClientID]AccountView)

	for _, router := range s.routers {
		for client, view := range router.Snapshot() {
			views[client] = view
		}
	}

	return views
}
