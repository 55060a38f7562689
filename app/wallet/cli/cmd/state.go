package cmd

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"

	"github.com/spf13/cobra"
)

var playerID string

var stateCmd = &cobra.Command{
	Use:   "state",
	Short: "Print the chain as seen by a player",
	Run:   stateRun,
}

func init() {
	rootCmd.AddCommand(stateCmd)
	stateCmd.Flags().StringVarP(&playerID, "player", "p", "", "Your player id.")
	stateCmd.MarkFlagRequired("player")
}

func stateRun(cmd *cobra.Command, args []string) {
	ctx, cancel := newContext()
	defer cancel()

	_, raw, err := newClient().State(ctx, playerID)
	if err != nil {
		log.Fatal(err)
	}

	var out bytes.Buffer
	if err := json.Indent(&out, raw, "", "  "); err != nil {
		log.Fatal(err)
	}

	fmt.Println(out.String())
}
