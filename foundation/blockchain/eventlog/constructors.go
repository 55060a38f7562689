package eventlog

import (
	"time"

	"github.com/babybtc/quantlab/foundation/blockchain/database"
)

// NewBlockMined constructs the event for a block mined by a player.
func NewBlockMined(block database.Block, miner database.Player, reward float64, now time.Time) Event {
	payload := BlockMined{
		BlockIndex:   block.Index,
		BlockHash:    block.HashValue,
		MinerName:    miner.DisplayName(),
		MinerAddress: miner.Address,
		Reward:       reward,
		Difficulty:   block.Difficulty,
		Nonce:        block.Nonce,
		TxCount:      len(block.Transactions),
	}

	return New(miner.ID, payload, now)
}

// NewTxCreated constructs the event for a transfer entering the pending
// pool. A missing receiver is named Unknown.
func NewTxCreated(tx database.Tx, from database.Player, to *database.Player, now time.Time) Event {
	toName := "Unknown"
	if to != nil {
		toName = to.DisplayName()
	}

	payload := TxCreated{
		TxID:        tx.ID,
		FromAddress: tx.From,
		FromName:    from.DisplayName(),
		ToAddress:   tx.To,
		ToName:      toName,
		Amount:      tx.Amount,
		Memo:        tx.Memo,
	}

	return New(from.ID, payload, now)
}

// NewBalanceMutated constructs the event for an overwritten balance.
func NewBalanceMutated(player database.Player, oldBalance float64, newBalance float64, now time.Time) Event {
	payload := BalanceMutation{
		AttackType: AttackBalanceMutation,
		TargetID:   player.ID,
		Details: BalanceMutationDetails{
			OldBalance: oldBalance,
			NewBalance: newBalance,
			PlayerName: player.DisplayName(),
		},
	}

	return New(player.ID, payload, now)
}

// NewChainRolledBack constructs the event for blocks popped off the chain.
func NewChainRolledBack(removed []database.Block, now time.Time) Event {
	blocks := make([]RemovedBlock, len(removed))
	for i, block := range removed {
		blocks[i] = RemovedBlock{
			Index:   block.Index,
			MinerID: block.MinerID,
		}
	}

	payload := ChainRollback{
		AttackType: AttackChainRollback,
		TargetID:   "blockchain",
		Details: ChainRollbackDetails{
			BlocksRemoved: len(removed),
			RemovedBlocks: blocks,
		},
	}

	return New("", payload, now)
}

// NewSnapshotPrinted constructs the event for a full chain dump.
func NewSnapshotPrinted(now time.Time) Event {
	payload := SnapshotPrinted{
		TimeStamp: now.Format(time.RFC3339Nano),
		Purpose:   "debug",
	}

	return New("", payload, now)
}
