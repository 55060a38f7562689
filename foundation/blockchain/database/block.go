package database

import (
	"fmt"
	"strconv"
	"time"

	"github.com/babybtc/quantlab/foundation/blockchain/digest"
)

// Block represents a group of transactions batched together. The first
// transaction of every mined block is the coinbase.
type Block struct {
	Index        uint64    `json:"index"`
	TimeStamp    time.Time `json:"timestamp"`
	PrevHash     string    `json:"prev_hash"`
	Nonce        uint64    `json:"nonce"`
	MinerID      string    `json:"miner_id"`
	Transactions []Tx      `json:"transactions"`
	HashValue    uint64    `json:"hash_value"`
	Difficulty   uint64    `json:"difficulty"`
}

// Genesis constructs the first block of the chain.
func Genesis(difficulty uint64, now time.Time) Block {
	return Block{
		Index:        0,
		TimeStamp:    now,
		PrevHash:     "0",
		Nonce:        0,
		MinerID:      SystemMinerID,
		Transactions: []Tx{},
		HashValue:    0,
		Difficulty:   difficulty,
	}
}

// Hash returns the block hash in the string form used as the previous
// hash of the next block.
func (b Block) Hash() string {
	return strconv.FormatUint(b.HashValue, 10)
}

// Copy returns a copy of the block with its own transaction slice.
func (b Block) Copy() Block {
	txs := make([]Tx, len(b.Transactions))
	copy(txs, b.Transactions)
	b.Transactions = txs
	return b
}

// =============================================================================

// MineArgs represents the set of arguments required to evaluate a single
// mining attempt.
type MineArgs struct {
	Index        uint64
	PrevHash     string
	Nonce        uint64
	Transactions []Tx
	Difficulty   uint64
	Modulo       uint64
	MinerID      string
	Now          time.Time
}

// Attempt describes how a mining attempt was evaluated so it can be shown
// back to the player whether it succeeded or not.
type Attempt struct {
	Header     digest.Header
	HashValue  uint64
	Difficulty uint64
	Modulo     uint64
	Solved     bool
}

// Formula describes how the digest is computed.
func (a Attempt) Formula() string {
	return fmt.Sprintf("MD5(BlockHeader) %% %d", a.Modulo)
}

// Equation is the comparison that decides the attempt.
func (a Attempt) Equation() string {
	return fmt.Sprintf("%d < %d", a.HashValue, a.Difficulty)
}

// AttemptMine evaluates exactly one nonce. The caller supplies the nonce
// and the full transaction list with the coinbase already first. The block
// is only populated when the digest is strictly less than the difficulty.
func AttemptMine(args MineArgs) (Block, Attempt) {
	now := args.Now
	if now.IsZero() {
		now = time.Now()
	}

	modulo := args.Modulo
	if modulo == 0 {
		modulo = digest.HashModulo
	}

	root := digest.MerkleRoot(TxIDs(args.Transactions))
	header := digest.NewHeader(args.Index, args.PrevHash, root, now, args.Nonce)
	hashValue := digest.Sum(header, modulo)

	attempt := Attempt{
		Header:     header,
		HashValue:  hashValue,
		Difficulty: args.Difficulty,
		Modulo:     modulo,
		Solved:     hashValue < args.Difficulty,
	}

	if !attempt.Solved {
		return Block{}, attempt
	}

	block := Block{
		Index:        args.Index,
		TimeStamp:    now,
		PrevHash:     args.PrevHash,
		Nonce:        args.Nonce,
		MinerID:      args.MinerID,
		Transactions: args.Transactions,
		HashValue:    hashValue,
		Difficulty:   args.Difficulty,
	}

	return block, attempt
}
