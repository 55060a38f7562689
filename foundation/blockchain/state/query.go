package state

import (
	"github.com/babybtc/quantlab/foundation/blockchain/database"
)

// QueryPlayer returns a copy of the player with the specified id.
func (s *State) QueryPlayer(playerID string) (database.Player, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	player, exists := s.players[playerID]
	if !exists {
		return database.Player{}, ErrPlayerNotFound
	}

	return player.Copy(), nil
}

// QueryPlayerByAddress returns a copy of the player owning the address.
func (s *State) QueryPlayerByAddress(address string) (database.Player, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	player, exists := s.playerByAddress(address)
	if !exists {
		return database.Player{}, ErrPlayerNotFound
	}

	return player.Copy(), nil
}

// QueryPlayers returns a copy of every registered player.
func (s *State) QueryPlayers() []database.Player {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.copyPlayers()
}

// =============================================================================

// copyPlayers must be called with the lock held.
func (s *State) copyPlayers() []database.Player {
	players := make([]database.Player, 0, len(s.players))
	for _, player := range s.players {
		players = append(players, player.Copy())
	}

	return players
}

// minerName resolves the display name of a block's miner. Must be called
// with the lock held.
func (s *State) minerName(minerID string) string {
	player, exists := s.players[minerID]
	if !exists {
		return "Unknown"
	}

	return player.DisplayName()
}
