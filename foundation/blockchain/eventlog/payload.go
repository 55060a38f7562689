package eventlog

import (
	"fmt"
	"strconv"
)

// BlockMined is logged when a player mines a block.
type BlockMined struct {
	BlockIndex   uint64  `json:"block_index"`
	BlockHash    uint64  `json:"block_hash"`
	MinerName    string  `json:"miner_name"`
	MinerAddress string  `json:"miner_address"`
	Reward       float64 `json:"reward"`
	Difficulty   uint64  `json:"difficulty"`
	Nonce        uint64  `json:"nonce"`
	TxCount      int     `json:"tx_count"`
}

// Type implements the Payload interface.
func (BlockMined) Type() Type { return TypeBlockMined }

// Describe implements the Payload interface.
func (p BlockMined) Describe() string {
	return fmt.Sprintf("%s mined block #%d and earned %s BABY tokens", p.MinerName, p.BlockIndex, amount(p.Reward))
}

// TxCreated is logged when a transfer enters the pending pool.
type TxCreated struct {
	TxID        string  `json:"tx_id"`
	FromAddress string  `json:"from_address"`
	FromName    string  `json:"from_name"`
	ToAddress   string  `json:"to_address"`
	ToName      string  `json:"to_name"`
	Amount      float64 `json:"amount"`
	Memo        string  `json:"memo"`
}

// Type implements the Payload interface.
func (TxCreated) Type() Type { return TypeTxCreated }

// Describe implements the Payload interface.
func (p TxCreated) Describe() string {
	return fmt.Sprintf("%s sent %s BABY to %s", p.FromName, amount(p.Amount), p.ToName)
}

// BalanceMutation is logged when a balance is overwritten by the attack
// simulation.
type BalanceMutation struct {
	AttackType string                 `json:"attack_type"`
	TargetID   string                 `json:"target_id"`
	Details    BalanceMutationDetails `json:"details"`
}

// BalanceMutationDetails records the overwritten balance.
type BalanceMutationDetails struct {
	OldBalance float64 `json:"old_balance"`
	NewBalance float64 `json:"new_balance"`
	PlayerName string  `json:"player_name"`
}

// Type implements the Payload interface.
func (BalanceMutation) Type() Type { return TypeAttackMutation }

// Describe implements the Payload interface.
func (p BalanceMutation) Describe() string {
	return fmt.Sprintf("Attack simulation: %s on %s", p.AttackType, p.TargetID)
}

// RemovedBlock identifies a block dropped by a rollback.
type RemovedBlock struct {
	Index   uint64 `json:"index"`
	MinerID string `json:"miner_id"`
}

// ChainRollback is logged when blocks are popped off the chain by the
// attack simulation.
type ChainRollback struct {
	AttackType string               `json:"attack_type"`
	TargetID   string               `json:"target_id"`
	Details    ChainRollbackDetails `json:"details"`
}

// ChainRollbackDetails lists the blocks dropped by a rollback.
type ChainRollbackDetails struct {
	BlocksRemoved int            `json:"blocks_removed"`
	RemovedBlocks []RemovedBlock `json:"removed_blocks"`
}

// Type implements the Payload interface.
func (ChainRollback) Type() Type { return TypeAttackMutation }

// Describe implements the Payload interface.
func (p ChainRollback) Describe() string {
	return fmt.Sprintf("Attack simulation: %s on %s", p.AttackType, p.TargetID)
}

// SnapshotPrinted is logged when the full chain is dumped.
type SnapshotPrinted struct {
	TimeStamp string `json:"timestamp"`
	Purpose   string `json:"purpose"`
}

// Type implements the Payload interface.
func (SnapshotPrinted) Type() Type { return TypeSnapshotPrinted }

// Describe implements the Payload interface.
func (SnapshotPrinted) Describe() string {
	return "System event"
}

// amount renders a token amount without trailing zeros.
func amount(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
