package state

import (
	"fmt"

	"github.com/babybtc/quantlab/foundation/blockchain/database"
	"github.com/babybtc/quantlab/foundation/blockchain/eventlog"
)

// AddPlayer inserts a new player and indexes it by address.
func (s *State) AddPlayer(player database.Player) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.addPlayer(player)
}

// AddBlock appends the block to the chain and removes every transaction
// it carries from the pending pool.
func (s *State) AddBlock(block database.Block) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.addBlock(block)
}

// AddPendingTransaction appends the transaction to the pending pool. Ids
// are not de-duplicated.
func (s *State) AddPendingTransaction(tx database.Tx) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.mempool.Add(tx)
}

// UpdatePlayerBalance adds the delta to the player's balance. There is no
// floor applied to the result.
func (s *State) UpdatePlayerBalance(playerID string, delta float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.updateBalance(playerID, delta)
}

// AddEvent appends the event to the log.
func (s *State) AddEvent(ev eventlog.Event) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.addEvent(ev)
}

// =============================================================================

// addPlayer must be called with the lock held.
func (s *State) addPlayer(player database.Player) error {
	if _, exists := s.players[player.ID]; exists {
		return fmt.Errorf("id %q: %w", player.ID, ErrDuplicatePlayer)
	}

	if _, exists := s.addresses[player.Address]; exists {
		return fmt.Errorf("address %q: %w", player.Address, ErrDuplicatePlayer)
	}

	s.players[player.ID] = player.Copy()
	s.addresses[player.Address] = player.ID

	return nil
}

// addBlock must be called with the lock held.
func (s *State) addBlock(block database.Block) error {
	if err := s.storage.Write(block); err != nil {
		return fmt.Errorf("writing block %d: %w", block.Index, err)
	}

	removed := s.mempool.Delete(database.TxIDs(block.Transactions)...)
	s.evHandler("state: addBlock: blk[%d]: removed[%d] from mempool", block.Index, removed)

	return nil
}

// updateBalance must be called with the lock held.
func (s *State) updateBalance(playerID string, delta float64) error {
	player, exists := s.players[playerID]
	if !exists {
		return ErrPlayerNotFound
	}

	player.Balance += delta
	s.players[playerID] = player

	return nil
}

// addEvent must be called with the lock held.
func (s *State) addEvent(ev eventlog.Event) {
	s.events = append(s.events, ev)

	s.evHandler("state: event: %s", ev)

	if s.evSink != nil {
		s.evSink(ev)
	}
}

// playerByAddress must be called with the lock held.
func (s *State) playerByAddress(address string) (database.Player, bool) {
	id, exists := s.addresses[address]
	if !exists {
		return database.Player{}, false
	}

	player, exists := s.players[id]
	return player, exists
}
