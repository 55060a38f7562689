package admingrp

import (
	"time"

	"github.com/babybtc/quantlab/foundation/blockchain/database"
	"github.com/babybtc/quantlab/foundation/blockchain/state"
)

type tx struct {
	ID     string  `json:"id"`
	From   *string `json:"from"`
	To     string  `json:"to"`
	Amount float64 `json:"amount"`
	Memo   string  `json:"memo,omitempty"`
}

type block struct {
	Index        uint64    `json:"index"`
	Timestamp    time.Time `json:"timestamp"`
	PrevHash     string    `json:"prev_hash"`
	HashValue    uint64    `json:"hash_value"`
	Nonce        uint64    `json:"nonce"`
	MinerID      string    `json:"miner_id"`
	Difficulty   uint64    `json:"difficulty"`
	Transactions []tx      `json:"transactions"`
}

type player struct {
	ID             string  `json:"id"`
	Name           string  `json:"name"`
	Address        string  `json:"address"`
	Balance        float64 `json:"balance"`
	BlocksMined    int     `json:"blocks_mined"`
	MiningAttempts int     `json:"mining_attempts"`
}

type chainSnapshot struct {
	ChainHeight    int               `json:"chain_height"`
	Difficulty     uint64            `json:"current_difficulty"`
	RewardPerBlock float64           `json:"reward_per_block"`
	Blocks         []block           `json:"blocks"`
	Players        map[string]player `json:"players"`
	Pending        []tx              `json:"pending_transactions"`
	TotalEvents    int               `json:"total_events"`
}

func toTx(t database.Tx, withMemo bool) tx {
	out := tx{
		ID:     t.ID,
		To:     t.To,
		Amount: t.Amount,
	}

	if !t.IsCoinbase() {
		from := t.From
		out.From = &from
	}

	if withMemo {
		out.Memo = t.Memo
	}

	return out
}

func toChainSnapshot(dump state.ChainDump) chainSnapshot {
	blocks := make([]block, len(dump.Blocks))
	for i, b := range dump.Blocks {
		txs := make([]tx, len(b.Transactions))
		for j, t := range b.Transactions {
			txs[j] = toTx(t, true)
		}

		blocks[i] = block{
			Index:        b.Index,
			Timestamp:    b.TimeStamp,
			PrevHash:     b.PrevHash,
			HashValue:    b.HashValue,
			Nonce:        b.Nonce,
			MinerID:      b.MinerID,
			Difficulty:   b.Difficulty,
			Transactions: txs,
		}
	}

	players := make(map[string]player, len(dump.Players))
	for _, p := range dump.Players {
		players[p.ID] = player{
			ID:             p.ID,
			Name:           p.Name,
			Address:        p.Address,
			Balance:        p.Balance,
			BlocksMined:    p.Stats.BlocksMined,
			MiningAttempts: p.Stats.MiningAttempts,
		}
	}

	pending := make([]tx, len(dump.Pending))
	for i, t := range dump.Pending {
		pending[i] = toTx(t, false)
	}

	return chainSnapshot{
		ChainHeight:    dump.ChainHeight,
		Difficulty:     dump.Difficulty,
		RewardPerBlock: dump.RewardPerBlock,
		Blocks:         blocks,
		Players:        players,
		Pending:        pending,
		TotalEvents:    dump.TotalEvents,
	}
}

// =============================================================================

type mutateResponse struct {
	Success    bool    `json:"success"`
	PlayerID   string  `json:"player_id"`
	OldBalance float64 `json:"old_balance"`
	NewBalance float64 `json:"new_balance"`
}

type rollbackResponse struct {
	Success        bool `json:"success"`
	BlocksRemoved  int  `json:"blocks_removed"`
	NewChainHeight int  `json:"new_chain_height"`
}
