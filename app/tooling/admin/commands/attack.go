package commands

import (
	"context"
	"fmt"
	"strconv"

	"github.com/babybtc/quantlab/business/web/client"
)

// Mutate overwrites the balance of a player.
func Mutate(ctx context.Context, c *client.Client, playerID string, balance string) error {
	if playerID == "" || balance == "" {
		return fmt.Errorf("usage: mutate <player_id> <new_balance>")
	}

	newBalance, err := strconv.ParseFloat(balance, 64)
	if err != nil {
		return fmt.Errorf("invalid balance %q: %w", balance, err)
	}

	raw, err := c.MutatePlayer(ctx, playerID, newBalance)
	if err != nil {
		return err
	}

	return printJSON(raw)
}

// Rollback removes blocks from the end of the chain, one unless a count
// is provided.
func Rollback(ctx context.Context, c *client.Client, count string) error {
	n := 1
	if count != "" {
		var err error
		if n, err = strconv.Atoi(count); err != nil {
			return fmt.Errorf("invalid count %q: %w", count, err)
		}
	}

	raw, err := c.Rollback(ctx, n)
	if err != nil {
		return err
	}

	return printJSON(raw)
}
