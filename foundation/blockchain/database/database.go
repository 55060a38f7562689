// Package database holds the data model of the chain: players, transactions
// and blocks. It also provides the single-attempt mining evaluator and the
// transaction validator that guard what goes into a block.
package database

import "errors"

// Set of errors returned by the validator.
var (
	ErrInsufficientBalance = errors.New("insufficient balance")
	ErrNonPositiveAmount   = errors.New("amount must be positive")
	ErrMissingSignature    = errors.New("transaction is not signed")
)

// Identities used by the chain itself rather than by a player.
const (
	SystemMinerID = "system"
	CoinbaseSig   = "coinbase"
	CoinbaseMemo  = "Block mining reward"
)
