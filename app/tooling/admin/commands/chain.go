package commands

import (
	"context"
	"fmt"
	"strconv"

	"github.com/babybtc/quantlab/business/web/client"
)

// Snapshot prints every block, player and pending transaction.
func Snapshot(ctx context.Context, c *client.Client) error {
	raw, err := c.ChainSnapshot(ctx)
	if err != nil {
		return err
	}

	return printJSON(raw)
}

// Summary prints the aggregate view of the chain.
func Summary(ctx context.Context, c *client.Client) error {
	raw, err := c.ChainSummary(ctx)
	if err != nil {
		return err
	}

	return printJSON(raw)
}

// Events prints the most recent events, 20 unless a limit is provided.
func Events(ctx context.Context, c *client.Client, limit string) error {
	n := 20
	if limit != "" {
		var err error
		if n, err = strconv.Atoi(limit); err != nil {
			return fmt.Errorf("invalid limit %q: %w", limit, err)
		}
	}

	raw, err := c.RecentEvents(ctx, n)
	if err != nil {
		return err
	}

	return printJSON(raw)
}

// Stats prints the analysis view of a player.
func Stats(ctx context.Context, c *client.Client, playerID string) error {
	if playerID == "" {
		return fmt.Errorf("missing player id")
	}

	raw, err := c.PlayerStats(ctx, playerID)
	if err != nil {
		return err
	}

	return printJSON(raw)
}
