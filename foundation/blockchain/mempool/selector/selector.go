// Package selector provides different transaction selecting algorithms for
// choosing which pending transactions go into the next block.
package selector

import (
	"fmt"

	"github.com/babybtc/quantlab/foundation/blockchain/database"
)

// List of different select strategies.
const (
	StrategyFIFO       = "fifo"
	StrategyAffordable = "affordable"
)

// Map of different select strategies with functions.
var strategies = map[string]Func{
	StrategyFIFO:       fifoSelect,
	StrategyAffordable: affordableSelect,
}

// Func defines a function that takes the pending transactions in arrival
// order plus the current balance of every address and selects the
// transactions for the next block. All selector functions MUST respect
// arrival order.
type Func func(transactions []database.Tx, balances map[string]float64) []database.Tx

// Retrieve returns the specified select strategy function.
func Retrieve(strategy string) (Func, error) {
	fn, exists := strategies[strategy]
	if !exists {
		return nil, fmt.Errorf("strategy %q does not exist", strategy)
	}
	return fn, nil
}
