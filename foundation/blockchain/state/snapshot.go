package state

import (
	"time"

	"github.com/babybtc/quantlab/foundation/blockchain/database"
)

// snapshotBlocks is the number of recent blocks carried in a snapshot.
const snapshotBlocks = 5

// BlockSummary is the short form of a block shown to players.
type BlockSummary struct {
	Index     uint64
	MinerName string
	MinerID   string
	TimeStamp time.Time
	TxCount   int
	Reward    float64
}

// Snapshot is the view of the game a player sees after each action.
type Snapshot struct {
	ChainHeight  int
	Difficulty   uint64
	RecentBlocks []BlockSummary
	Player       *database.Player
}

// Snapshot returns the chain height, difficulty, the most recent blocks and
// the player record when the id is known.
func (s *State) Snapshot(playerID string) Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.snapshot(playerID)
}

// snapshot must be called with the lock held.
func (s *State) snapshot(playerID string) Snapshot {
	recent := s.storage.Recent(snapshotBlocks)

	blocks := make([]BlockSummary, len(recent))
	for i, block := range recent {
		blocks[i] = BlockSummary{
			Index:     block.Index,
			MinerName: s.minerName(block.MinerID),
			MinerID:   block.MinerID,
			TimeStamp: block.TimeStamp,
			TxCount:   len(block.Transactions),
			Reward:    s.reward,
		}
	}

	snap := Snapshot{
		ChainHeight:  s.storage.Height(),
		Difficulty:   s.difficulty,
		RecentBlocks: blocks,
	}

	if player, exists := s.players[playerID]; exists {
		cpy := player.Copy()
		snap.Player = &cpy
	}

	return snap
}
