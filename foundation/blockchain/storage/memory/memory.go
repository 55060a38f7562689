// Package memory implements the ability to read and write blocks to memory
// using a slice.
package memory

import (
	"sync"

	"github.com/babybtc/quantlab/foundation/blockchain/database"
	"github.com/babybtc/quantlab/foundation/blockchain/storage"
)

// Memory represents the implementation for reading and storing blocks in
// memory using a slice. This implements the storage.Storage interface.
type Memory struct {
	mu     sync.RWMutex
	blocks []database.Block
}

// New constructs an Memory value for use.
func New() (*Memory, error) {
	return &Memory{}, nil
}

// Write takes the specified block and stores it in memory. The block index
// must be the next index of the chain.
func (m *Memory) Write(block database.Block) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if uint64(len(m.blocks)) != block.Index {
		return storage.ErrOutOfOrder
	}

	m.blocks = append(m.blocks, block.Copy())

	return nil
}

// GetBlock searches the blockchain to locate and return the contents of
// the specified block by index.
func (m *Memory) GetBlock(index uint64) (database.Block, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if index >= uint64(len(m.blocks)) {
		return database.Block{}, storage.ErrBlockNotFound
	}

	return m.blocks[index].Copy(), nil
}

// Latest returns the last block of the chain.
func (m *Memory) Latest() (database.Block, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if len(m.blocks) == 0 {
		return database.Block{}, storage.ErrBlockNotFound
	}

	return m.blocks[len(m.blocks)-1].Copy(), nil
}

// Height returns the number of blocks in the chain.
func (m *Memory) Height() int {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return len(m.blocks)
}

// Recent returns up to limit blocks, most recent first.
func (m *Memory) Recent(limit int) []database.Block {
	m.mu.RLock()
	defer m.mu.RUnlock()

	limit = min(max(limit, 0), len(m.blocks))

	out := make([]database.Block, 0, limit)
	for i := len(m.blocks) - 1; i >= len(m.blocks)-limit; i-- {
		out = append(out, m.blocks[i].Copy())
	}

	return out
}

// Pop removes up to n blocks from the end of the chain and returns them,
// most recent first.
func (m *Memory) Pop(n int) []database.Block {
	m.mu.Lock()
	defer m.mu.Unlock()

	n = min(max(n, 0), len(m.blocks))

	removed := make([]database.Block, 0, n)
	for range n {
		last := len(m.blocks) - 1
		removed = append(removed, m.blocks[last])
		m.blocks[last] = database.Block{}
		m.blocks = m.blocks[:last]
	}

	return removed
}

// ForEach returns an iterator to walk through all the blocks
// starting with the genesis block.
func (m *Memory) ForEach() storage.Iterator {
	return &memoryIterator{storage: m}
}

// Reset will clear out the blockchain.
func (m *Memory) Reset() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.blocks = nil
	return nil
}

// =============================================================================

// memoryIterator represents the iteration implementation for walking
// through the blocks in memory. This implements the storage Iterator
// interface.
type memoryIterator struct {
	storage *Memory // Access to the storage API.
	current uint64  // Current block index being iterated over.
	eoc     bool    // Represents the iterator is at the end of the chain.
}

// Next retrieves the next block.
func (mi *memoryIterator) Next() (database.Block, error) {
	if mi.eoc {
		return database.Block{}, storage.ErrEndOfChain
	}

	block, err := mi.storage.GetBlock(mi.current)
	if err != nil {
		mi.eoc = true
		return database.Block{}, storage.ErrEndOfChain
	}

	mi.current++

	return block, nil
}

// Done returns the end of chain value.
func (mi *memoryIterator) Done() bool {
	return mi.eoc
}
