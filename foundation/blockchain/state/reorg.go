package state

import (
	"fmt"

	"github.com/babybtc/quantlab/foundation/blockchain/database"
	"github.com/babybtc/quantlab/foundation/blockchain/eventlog"
)

// Mutation is the result of overwriting a player's balance.
type Mutation struct {
	PlayerID   string
	OldBalance float64
	NewBalance float64
}

// MutateBalance overwrites the player's balance to simulate tampering with
// the ledger. Any value is accepted, including negative ones.
func (s *State) MutateBalance(playerID string, newBalance float64) (Mutation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	player, exists := s.players[playerID]
	if !exists {
		return Mutation{}, ErrPlayerNotFound
	}

	oldBalance := player.Balance
	player.Balance = newBalance
	s.players[playerID] = player

	s.evHandler("state: MutateBalance: player[%s] old[%v] new[%v]", playerID, oldBalance, newBalance)
	s.addEvent(eventlog.NewBalanceMutated(player, oldBalance, newBalance, s.now()))

	mut := Mutation{
		PlayerID:   playerID,
		OldBalance: oldBalance,
		NewBalance: newBalance,
	}

	return mut, nil
}

// Rollback pops the most recent blocks off the chain to simulate a
// reorganization. Balances and the pending pool are left untouched, which
// is exactly the inconsistency the simulation demonstrates.
func (s *State) Rollback(blocks int) ([]database.Block, error) {
	if blocks < 1 {
		return nil, ErrRollbackTooFew
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if blocks >= s.storage.Height() {
		return nil, fmt.Errorf("removing %d of %d blocks: %w", blocks, s.storage.Height(), ErrRollbackGenesis)
	}

	removed := s.storage.Pop(blocks)

	s.evHandler("state: Rollback: removed[%d] height[%d]", len(removed), s.storage.Height())
	s.addEvent(eventlog.NewChainRolledBack(removed, s.now()))

	return removed, nil
}
