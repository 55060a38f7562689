package commands

import (
	"context"
	"fmt"

	"github.com/babybtc/quantlab/business/core/scenario"
	"github.com/babybtc/quantlab/business/web/client"
)

// Scenarios lists the scenarios the node documents.
func Scenarios() error {
	keys, err := scenario.Keys()
	if err != nil {
		return err
	}

	for _, key := range keys {
		a, err := scenario.Lookup(key)
		if err != nil {
			return err
		}
		fmt.Printf("%-16s risk: %s\n", key, a.RiskLevel)
	}

	return nil
}

// Analyze prints the node's analysis of a scenario.
func Analyze(ctx context.Context, c *client.Client, key string) error {
	if key == "" {
		return fmt.Errorf("missing scenario")
	}

	raw, err := c.AnalyzeScenario(ctx, key, nil)
	if err != nil {
		return err
	}

	return printJSON(raw)
}
