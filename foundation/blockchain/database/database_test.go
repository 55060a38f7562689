package database_test

import (
	"errors"
	"testing"
	"time"

	"github.com/babybtc/quantlab/foundation/blockchain/database"
	"github.com/babybtc/quantlab/foundation/blockchain/digest"
)

// Success and failure markers.
const (
	success = "\u2713"
	failed  = "\u2717"
)

var now = time.Date(2024, time.March, 9, 14, 30, 15, 123456000, time.UTC)

func mineArgs(difficulty uint64) database.MineArgs {
	coinbase := database.NewCoinbaseTx("BABY0123456789ABCDEF", 10, now)

	return database.MineArgs{
		Index:        1,
		PrevHash:     "0",
		Nonce:        42,
		Transactions: []database.Tx{coinbase},
		Difficulty:   difficulty,
		Modulo:       digest.HashModulo,
		MinerID:      "a1b2c3d4",
		Now:          now,
	}
}

// =============================================================================

func Test_AttemptMine(t *testing.T) {
	t.Log("Given the need to evaluate a single mining attempt.")
	{
		args := mineArgs(0)

		_, probe := database.AttemptMine(args)
		if probe.Solved {
			t.Fatalf("\t%s\tShould never solve with a zero difficulty.", failed)
		}
		t.Logf("\t%s\tShould never solve with a zero difficulty.", success)

		args.Difficulty = probe.HashValue
		block, attempt := database.AttemptMine(args)
		if attempt.Solved || block.Index != 0 || block.Transactions != nil {
			t.Fatalf("\t%s\tShould fail when the digest equals the difficulty: %s", failed, attempt.Equation())
		}
		t.Logf("\t%s\tShould fail when the digest equals the difficulty.", success)

		args.Difficulty = probe.HashValue + 1
		block, attempt = database.AttemptMine(args)
		if !attempt.Solved {
			t.Fatalf("\t%s\tShould solve when the digest is below the difficulty: %s", failed, attempt.Equation())
		}
		t.Logf("\t%s\tShould solve when the digest is below the difficulty.", success)

		if block.HashValue != probe.HashValue || block.Difficulty != args.Difficulty {
			t.Logf("\t\tgot: %d / %d", block.HashValue, block.Difficulty)
			t.Logf("\t\texp: %d / %d", probe.HashValue, args.Difficulty)
			t.Fatalf("\t%s\tShould carry the digest and difficulty on the block.", failed)
		}
		t.Logf("\t%s\tShould carry the digest and difficulty on the block.", success)

		if len(block.Transactions) != 1 || block.Transactions[0].ID != args.Transactions[0].ID {
			t.Fatalf("\t%s\tShould carry the exact transaction list.", failed)
		}
		t.Logf("\t%s\tShould carry the exact transaction list.", success)

		if block.Index != 1 || block.Nonce != 42 || block.MinerID != "a1b2c3d4" || block.PrevHash != "0" {
			t.Fatalf("\t%s\tShould populate the block header fields: %+v", failed, block)
		}
		t.Logf("\t%s\tShould populate the block header fields.", success)
	}
}

func Test_AttemptMineFullDifficulty(t *testing.T) {
	t.Log("Given a difficulty equal to the digest space.")
	{
		for nonce := uint64(0); nonce < 50; nonce++ {
			args := mineArgs(digest.HashModulo)
			args.Nonce = nonce

			_, attempt := database.AttemptMine(args)
			if !attempt.Solved {
				t.Fatalf("\t%s\tShould always solve, nonce %d: %s", failed, nonce, attempt.Equation())
			}
		}
		t.Logf("\t%s\tShould always solve.", success)
	}
}

func Test_AttemptFormula(t *testing.T) {
	_, attempt := database.AttemptMine(mineArgs(400_000))

	if attempt.Formula() != "MD5(BlockHeader) % 1000000" {
		t.Fatalf("Should get back the formula, got %q", attempt.Formula())
	}

	if attempt.Header.Timestamp != "2024-03-09T14:30:15.123456" {
		t.Fatalf("Should render the header timestamp, got %q", attempt.Header.Timestamp)
	}
}

func Test_ValidateTransaction(t *testing.T) {
	type table struct {
		name    string
		balance float64
		amount  float64
		sig     string
		err     error
	}

	tt := []table{
		{name: "valid", balance: 100, amount: 30, sig: "demo_signature"},
		{name: "whole-balance", balance: 100, amount: 100, sig: "demo_signature"},
		{name: "insufficient", balance: 100, amount: 100.5, sig: "demo_signature", err: database.ErrInsufficientBalance},
		{name: "zero", balance: 100, amount: 0, sig: "demo_signature", err: database.ErrNonPositiveAmount},
		{name: "negative", balance: 100, amount: -5, sig: "demo_signature", err: database.ErrNonPositiveAmount},
		{name: "unsigned", balance: 100, amount: 5, sig: "", err: database.ErrMissingSignature},
	}

	t.Log("Given the need to validate transfers.")
	{
		for testID, tst := range tt {
			t.Logf("\tTest %d:\tWhen handling a %s transfer.", testID, tst.name)
			{
				f := func(t *testing.T) {
					sender := database.Player{ID: "a1b2c3d4", Balance: tst.balance}
					tx := database.NewTx("BABYFROM", "BABYTO", tst.amount, tst.sig, "", now)

					err := database.ValidateTransaction(tx, sender)
					if !errors.Is(err, tst.err) {
						t.Logf("\t\tTest %d:\tgot: %v", testID, err)
						t.Logf("\t\tTest %d:\texp: %v", testID, tst.err)
						t.Fatalf("\t%s\tTest %d:\tShould get back the right validation result.", failed, testID)
					}
					t.Logf("\t%s\tTest %d:\tShould get back the right validation result.", success, testID)
				}

				t.Run(tst.name, f)
			}
		}
	}
}

func Test_Coinbase(t *testing.T) {
	tx := database.NewCoinbaseTx("BABYMINER", 10, now)

	if !tx.IsCoinbase() {
		t.Fatal("Should recognize the coinbase transaction.")
	}

	if tx.Signature != database.CoinbaseSig || tx.Amount != 10 || tx.To != "BABYMINER" {
		t.Fatalf("Should populate the coinbase transaction: %+v", tx)
	}
}

func Test_DefaultName(t *testing.T) {
	p := database.Player{ID: "9f8e7d6c"}

	if got := p.DisplayName(); got != "miner-9f8e" {
		t.Fatalf("Should generate the name from the id prefix, got %q", got)
	}
}
