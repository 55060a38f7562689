// Package storage defines the behavior required to keep the blocks of the
// chain. The chain is never persisted, implementations hold blocks in
// process memory only.
package storage

import (
	"errors"

	"github.com/babybtc/quantlab/foundation/blockchain/database"
)

// Set of errors returned by storage implementations.
var (
	ErrOutOfOrder    = errors.New("block is out of order")
	ErrBlockNotFound = errors.New("block does not exist")
	ErrEndOfChain    = errors.New("end of chain")
)

// Storage interface represents the behavior required to be implemented by
// any package providing support for storing and reading the blockchain.
type Storage interface {
	Write(block database.Block) error
	GetBlock(index uint64) (database.Block, error)
	Latest() (database.Block, error)
	Height() int
	Recent(limit int) []database.Block
	Pop(n int) []database.Block
	ForEach() Iterator
	Reset() error
}

// Iterator interface represents the behavior required to be implemented by
// any package providing support to iterate over the blocks.
type Iterator interface {
	Next() (database.Block, error)
	Done() bool
}
