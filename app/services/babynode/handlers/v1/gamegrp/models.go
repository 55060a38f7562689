package gamegrp

import (
	"time"

	"github.com/babybtc/quantlab/foundation/blockchain/database"
	"github.com/babybtc/quantlab/foundation/blockchain/digest"
	"github.com/babybtc/quantlab/foundation/blockchain/state"
)

type registerRequest struct {
	Name string `json:"name" validate:"omitempty,max=64"`
}

type registerResponse struct {
	PlayerID string   `json:"player_id"`
	Address  string   `json:"address"`
	Mnemonic string   `json:"mnemonic"`
	State    snapshot `json:"state"`
}

// =============================================================================

type mineRequest struct {
	PlayerID string `json:"player_id" validate:"required"`
	Nonce    *int64 `json:"nonce" validate:"required"`
}

type components struct {
	Index      uint64 `json:"index"`
	PrevHash   string `json:"prev_hash"`
	MerkleRoot string `json:"merkle_root"`
	Timestamp  string `json:"timestamp"`
	Nonce      uint64 `json:"nonce"`
}

type mineDetails struct {
	Formula     string     `json:"formula"`
	BlockHeader string     `json:"block_header"`
	Components  components `json:"components"`
	HashValue   uint64     `json:"hash_value"`
	Difficulty  uint64     `json:"difficulty"`
	Equation    string     `json:"equation"`
	Solved      bool       `json:"solved"`
}

type mineResponse struct {
	Success    bool        `json:"success"`
	BlockIndex *uint64     `json:"block_index"`
	Reward     float64     `json:"reward"`
	Message    string      `json:"message"`
	Details    mineDetails `json:"details"`
}

func toMineDetails(a database.Attempt) mineDetails {
	ts := a.Header.Timestamp
	if len(ts) > 19 {
		ts = ts[:19]
	}

	return mineDetails{
		Formula:     a.Formula(),
		BlockHeader: a.Header.String(),
		Components: components{
			Index:      a.Header.Index,
			PrevHash:   digest.Prefix(a.Header.PrevHash) + "...",
			MerkleRoot: digest.Prefix(a.Header.MerkleRoot) + "...",
			Timestamp:  ts,
			Nonce:      a.Header.Nonce,
		},
		HashValue:  a.HashValue,
		Difficulty: a.Difficulty,
		Equation:   a.Equation(),
		Solved:     a.Solved,
	}
}

// =============================================================================

type transferRequest struct {
	FromPlayerID string  `json:"from_player_id" validate:"required"`
	ToPlayerID   string  `json:"to_player_id" validate:"required"`
	Amount       float64 `json:"amount"`
	Signature    string  `json:"signature"`
}

type transferResponse struct {
	TxID        string  `json:"tx_id"`
	FromAddress string  `json:"from_address"`
	ToAddress   string  `json:"to_address"`
	Amount      float64 `json:"amount"`
	Status      string  `json:"status"`
}

// =============================================================================

type blockSummary struct {
	Index     uint64    `json:"index"`
	MinerName string    `json:"miner_name"`
	MinerID   string    `json:"miner_id"`
	Timestamp time.Time `json:"timestamp"`
	TxCount   int       `json:"tx_count"`
	Reward    float64   `json:"reward"`
}

type playerStats struct {
	BlocksMined    int        `json:"blocks_mined"`
	MiningAttempts int        `json:"mining_attempts"`
	LastActiveAt   *time.Time `json:"last_active_at"`
}

type player struct {
	ID      string      `json:"id"`
	Name    string      `json:"name"`
	Address string      `json:"address"`
	Balance float64     `json:"balance_baby"`
	Stats   playerStats `json:"stats"`
}

type snapshot struct {
	ChainHeight  int            `json:"chain_height"`
	Difficulty   uint64         `json:"current_difficulty"`
	RecentBlocks []blockSummary `json:"recent_blocks"`
	Player       *player        `json:"player"`
}

func toSnapshot(snap state.Snapshot) snapshot {
	blocks := make([]blockSummary, len(snap.RecentBlocks))
	for i, b := range snap.RecentBlocks {
		blocks[i] = blockSummary{
			Index:     b.Index,
			MinerName: b.MinerName,
			MinerID:   b.MinerID,
			Timestamp: b.TimeStamp,
			TxCount:   b.TxCount,
			Reward:    b.Reward,
		}
	}

	out := snapshot{
		ChainHeight:  snap.ChainHeight,
		Difficulty:   snap.Difficulty,
		RecentBlocks: blocks,
	}

	if p := snap.Player; p != nil {
		out.Player = &player{
			ID:      p.ID,
			Name:    p.Name,
			Address: p.Address,
			Balance: p.Balance,
			Stats: playerStats{
				BlocksMined:    p.Stats.BlocksMined,
				MiningAttempts: p.Stats.MiningAttempts,
				LastActiveAt:   p.Stats.LastActiveAt,
			},
		}
	}

	return out
}
