package cmd

import (
	"fmt"
	"log"

	"github.com/babybtc/quantlab/foundation/blockchain/credential"
	"github.com/spf13/cobra"
)

var mnemonic string

var accountCmd = &cobra.Command{
	Use:   "account",
	Short: "Print the address and signer account for a mnemonic",
	Run:   accountRun,
}

func init() {
	rootCmd.AddCommand(accountCmd)
	accountCmd.Flags().StringVarP(&mnemonic, "mnemonic", "m", "", "The 12 word mnemonic returned at registration.")
	accountCmd.MarkFlagRequired("mnemonic")
}

func accountRun(cmd *cobra.Command, args []string) {
	creds, err := credential.FromMnemonic(mnemonic)
	if err != nil {
		log.Fatal(err)
	}

	fmt.Println("Address:", creds.Address)
	fmt.Println("Signer: ", creds.SignerAccount)
}
