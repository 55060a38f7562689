package database

import (
	"time"

	"github.com/google/uuid"
)

// Tx is a transfer of tokens between two addresses. A Tx with no From
// address is a coinbase transaction that pays the block reward.
type Tx struct {
	ID        string    `json:"id"`
	From      string    `json:"from"`
	To        string    `json:"to"`
	Amount    float64   `json:"amount"`
	Signature string    `json:"signature"`
	Memo      string    `json:"memo,omitempty"`
	TimeStamp time.Time `json:"timestamp"`
}

// NewTx constructs a transfer between two addresses.
func NewTx(from string, to string, amount float64, signature string, memo string, now time.Time) Tx {
	return Tx{
		ID:        uuid.NewString(),
		From:      from,
		To:        to,
		Amount:    amount,
		Signature: signature,
		Memo:      memo,
		TimeStamp: now,
	}
}

// NewCoinbaseTx constructs the reward transaction for the miner of a block.
func NewCoinbaseTx(minerAddress string, reward float64, now time.Time) Tx {
	return NewTx("", minerAddress, reward, CoinbaseSig, CoinbaseMemo, now)
}

// IsCoinbase reports whether the transaction pays a block reward.
func (tx Tx) IsCoinbase() bool {
	return tx.From == ""
}

// ValidateTransaction checks the sender can cover the transfer. The
// signature is only checked for presence here, verification is the job
// of a credential.Verifier.
func ValidateTransaction(tx Tx, sender Player) error {
	if sender.Balance < tx.Amount {
		return ErrInsufficientBalance
	}

	if tx.Amount <= 0 {
		return ErrNonPositiveAmount
	}

	if tx.Signature == "" {
		return ErrMissingSignature
	}

	return nil
}

// TxIDs returns the ids of the transactions in order.
func TxIDs(txs []Tx) []string {
	ids := make([]string, len(txs))
	for i, tx := range txs {
		ids[i] = tx.ID
	}
	return ids
}
