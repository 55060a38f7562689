package cmd

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"
)

var playerName string

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Register a new player with the node",
	Run:   registerRun,
}

func init() {
	rootCmd.AddCommand(registerCmd)
	registerCmd.Flags().StringVarP(&playerName, "name", "n", "", "Display name, defaults to miner-<id>.")
}

func registerRun(cmd *cobra.Command, args []string) {
	ctx, cancel := newContext()
	defer cancel()

	reg, err := newClient().Register(ctx, playerName)
	if err != nil {
		log.Fatal(err)
	}

	fmt.Println("Player:  ", reg.PlayerID)
	fmt.Println("Address: ", reg.Address)
	fmt.Println("Mnemonic:", reg.Mnemonic)
	fmt.Println()
	fmt.Println("The mnemonic is only shown once. Keep it to sign transfers.")
}
