package cmd

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"
)

var balanceCmd = &cobra.Command{
	Use:   "balance",
	Short: "Print your balance.",
	Run:   balanceRun,
}

func init() {
	rootCmd.AddCommand(balanceCmd)
	balanceCmd.Flags().StringVarP(&playerID, "player", "p", "", "Your player id.")
	balanceCmd.MarkFlagRequired("player")
}

func balanceRun(cmd *cobra.Command, args []string) {
	ctx, cancel := newContext()
	defer cancel()

	snap, _, err := newClient().State(ctx, playerID)
	if err != nil {
		log.Fatal(err)
	}

	fmt.Println("For Player:", snap.Player.ID, snap.Player.Address)
	fmt.Println(snap.Player.Balance)
}
