// Package cmd contains wallet app
package cmd

import (
	"context"
	"os"
	"time"

	"github.com/babybtc/quantlab/business/web/client"
	"github.com/spf13/cobra"
)

var (
	nodeURL string
	timeout time.Duration
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&nodeURL, "url", "u", "http://localhost:8000", "Url of the node.")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 10*time.Second, "Timeout for each call to the node.")
}

var rootCmd = &cobra.Command{
	Use:   "wallet",
	Short: "Your BabyBTC wallet",
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func newClient() *client.Client {
	return client.New(nodeURL, timeout)
}

func newContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}
