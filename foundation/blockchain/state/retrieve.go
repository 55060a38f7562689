package state

import (
	"github.com/babybtc/quantlab/foundation/blockchain/database"
	"github.com/babybtc/quantlab/foundation/blockchain/eventlog"
)

// RetrieveLatestBlock returns a copy of the most recent block.
func (s *State) RetrieveLatestBlock() (database.Block, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.storage.Latest()
}

// RetrieveChainHeight returns the number of blocks in the chain.
func (s *State) RetrieveChainHeight() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.storage.Height()
}

// RetrieveRecentBlocks returns up to limit blocks, most recent first.
func (s *State) RetrieveRecentBlocks(limit int) []database.Block {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.storage.Recent(limit)
}

// RetrieveRecentEvents returns up to limit events, most recent first.
func (s *State) RetrieveRecentEvents(limit int) []eventlog.Event {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.recentEvents(limit)
}

// RetrievePending returns a copy of the pending pool in arrival order.
func (s *State) RetrievePending() []database.Tx {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.mempool.Copy()
}

// RetrieveEventCount returns the number of events logged.
func (s *State) RetrieveEventCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.events)
}

// =============================================================================

// recentEvents must be called with the lock held.
func (s *State) recentEvents(limit int) []eventlog.Event {
	limit = min(max(limit, 0), len(s.events))

	out := make([]eventlog.Event, 0, limit)
	for i := len(s.events) - 1; i >= len(s.events)-limit; i-- {
		out = append(out, s.events[i])
	}

	return out
}
