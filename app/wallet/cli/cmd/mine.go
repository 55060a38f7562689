package cmd

import (
	"context"
	"fmt"
	"log"
	"math/rand/v2"

	"github.com/babybtc/quantlab/business/web/client"
	"github.com/spf13/cobra"
)

var (
	startNonce int64
	maxNonce   int64
	attempts   int
	verbose    bool
)

var mineCmd = &cobra.Command{
	Use:   "mine",
	Short: "Search for a nonce that solves the next block",
	Run:   mineRun,
}

func init() {
	rootCmd.AddCommand(mineCmd)
	mineCmd.Flags().StringVarP(&playerID, "player", "p", "", "Your player id.")
	mineCmd.Flags().Int64VarP(&startNonce, "start", "s", -1, "First nonce to try, random when negative.")
	mineCmd.Flags().Int64Var(&maxNonce, "max-nonce", 9999, "Largest nonce the node accepts.")
	mineCmd.Flags().IntVarP(&attempts, "attempts", "n", 100, "Number of nonces to try before giving up.")
	mineCmd.Flags().BoolVar(&verbose, "verbose", false, "Print every attempt.")
	mineCmd.MarkFlagRequired("player")
}

func mineRun(cmd *cobra.Command, args []string) {
	nonce := startNonce
	if nonce < 0 {
		nonce = rand.Int64N(maxNonce + 1)
	}

	res, tried, err := mine(context.Background(), newClient(), playerID, nonce, maxNonce, attempts, func(n int64, res client.MineResult) {
		if verbose {
			fmt.Printf("nonce %5d: %s\n", n, res.Details.Equation)
		}
	})
	if err != nil {
		log.Fatal(err)
	}

	if !res.Success {
		fmt.Printf("No solution after %d attempts.\n", tried)
		return
	}

	fmt.Printf("%s (%d attempts)\n", res.Message, tried)
	fmt.Println(res.Details.Formula)
	fmt.Println(res.Details.Equation)
}

// mine walks the nonce space from start, wrapping at maxNonce, until the
// node accepts a block or the attempts run out.
func mine(ctx context.Context, c *client.Client, playerID string, start int64, maxNonce int64, attempts int, fn func(int64, client.MineResult)) (client.MineResult, int, error) {
	var res client.MineResult

	nonce := start
	for tried := 1; tried <= attempts; tried++ {
		ctx, cancel := context.WithTimeout(ctx, timeout)
		r, err := c.Mine(ctx, playerID, nonce)
		cancel()
		if err != nil {
			return client.MineResult{}, tried, err
		}

		fn(nonce, r)
		if r.Success {
			return r, tried, nil
		}
		res = r

		if nonce++; nonce > maxNonce {
			nonce = 0
		}
	}

	return res, attempts, nil
}
