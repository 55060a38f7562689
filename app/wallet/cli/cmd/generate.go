package cmd

import (
	"fmt"
	"log"

	"github.com/babybtc/quantlab/foundation/blockchain/credential"
	"github.com/spf13/cobra"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a new mnemonic offline",
	Run:   generateRun,
}

func init() {
	rootCmd.AddCommand(generateCmd)
}

func generateRun(cmd *cobra.Command, args []string) {
	creds, err := credential.New()
	if err != nil {
		log.Fatal(err)
	}

	fmt.Println("Mnemonic:", creds.Mnemonic)
	fmt.Println("Address: ", creds.Address)
	fmt.Println("Signer:  ", creds.SignerAccount)
}
