package selector

import "github.com/babybtc/quantlab/foundation/blockchain/database"

// fifoSelect returns every pending transaction in arrival order.
var fifoSelect = func(transactions []database.Tx, balances map[string]float64) []database.Tx {
	final := make([]database.Tx, len(transactions))
	copy(final, transactions)
	return final
}
