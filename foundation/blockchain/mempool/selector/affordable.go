package selector

import "github.com/babybtc/quantlab/foundation/blockchain/database"

// affordableSelect walks the pending transactions in arrival order and
// keeps those the sender can still cover after every earlier selected
// transaction is applied. Skipped transactions stay pending.
var affordableSelect = func(transactions []database.Tx, balances map[string]float64) []database.Tx {
	running := make(map[string]float64, len(balances))
	for addr, bal := range balances {
		running[addr] = bal
	}

	var final []database.Tx
	for _, tx := range transactions {
		if !tx.IsCoinbase() {
			if running[tx.From] < tx.Amount {
				continue
			}
			running[tx.From] -= tx.Amount
		}

		running[tx.To] += tx.Amount
		final = append(final, tx)
	}

	return final
}
