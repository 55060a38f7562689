// Package mempool maintains the pool of pending transactions waiting to be
// mined into a block.
package mempool

import (
	"sync"

	"github.com/babybtc/quantlab/foundation/blockchain/database"
	"github.com/babybtc/quantlab/foundation/blockchain/mempool/selector"
)

// Mempool represents the pending transactions in arrival order. Ids are not
// de-duplicated.
type Mempool struct {
	pool     []database.Tx
	mu       sync.RWMutex
	selectFn selector.Func
}

// New constructs a new mempool using the default select strategy.
func New() (*Mempool, error) {
	return NewWithStrategy(selector.StrategyAffordable)
}

// NewWithStrategy constructs a new mempool with specified select strategy.
func NewWithStrategy(strategy string) (*Mempool, error) {
	selectFn, err := selector.Retrieve(strategy)
	if err != nil {
		return nil, err
	}

	mp := Mempool{
		selectFn: selectFn,
	}

	return &mp, nil
}

// Count returns the current number of transaction in the pool.
func (mp *Mempool) Count() int {
	mp.mu.RLock()
	defer mp.mu.RUnlock()

	return len(mp.pool)
}

// Add appends a transaction to the end of the pool.
func (mp *Mempool) Add(tx database.Tx) int {
	mp.mu.Lock()
	defer mp.mu.Unlock()

	mp.pool = append(mp.pool, tx)

	return len(mp.pool)
}

// Delete removes every transaction whose id is in the specified set and
// returns how many were removed. Transactions not named are untouched.
func (mp *Mempool) Delete(ids ...string) int {
	mp.mu.Lock()
	defer mp.mu.Unlock()

	remove := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		remove[id] = struct{}{}
	}

	kept := mp.pool[:0]
	for _, tx := range mp.pool {
		if _, exists := remove[tx.ID]; exists {
			continue
		}
		kept = append(kept, tx)
	}

	removed := len(mp.pool) - len(kept)

	// Clear the tail so removed transactions can be collected.
	clear(mp.pool[len(kept):])
	mp.pool = kept

	return removed
}

// Truncate clears all the transactions from the pool.
func (mp *Mempool) Truncate() {
	mp.mu.Lock()
	defer mp.mu.Unlock()

	mp.pool = nil
}

// Copy returns a copy of the pool in arrival order.
func (mp *Mempool) Copy() []database.Tx {
	mp.mu.RLock()
	defer mp.mu.RUnlock()

	cpy := make([]database.Tx, len(mp.pool))
	copy(cpy, mp.pool)

	return cpy
}

// PickBest uses the configured select strategy to return the set of
// transactions for the next block given the current balances.
func (mp *Mempool) PickBest(balances map[string]float64) []database.Tx {
	return mp.selectFn(mp.Copy(), balances)
}
