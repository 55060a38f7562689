package cmd

import (
	"fmt"
	"log"

	"github.com/babybtc/quantlab/foundation/blockchain/credential"
	"github.com/spf13/cobra"
)

var (
	from   string
	to     string
	amount float64
)

var signCmd = &cobra.Command{
	Use:   "sign",
	Short: "Sign a transfer offline",
	Run:   signRun,
}

func init() {
	rootCmd.AddCommand(signCmd)
	signCmd.Flags().StringVarP(&mnemonic, "mnemonic", "m", "", "The sender's mnemonic.")
	signCmd.Flags().StringVarP(&from, "from", "f", "", "Sender player id.")
	signCmd.Flags().StringVarP(&to, "to", "t", "", "Receiver player id.")
	signCmd.Flags().Float64VarP(&amount, "amount", "v", 0, "Amount to send.")
	signCmd.MarkFlagRequired("mnemonic")
	signCmd.MarkFlagRequired("from")
	signCmd.MarkFlagRequired("to")
}

func signRun(cmd *cobra.Command, args []string) {
	sig, err := signTransfer(mnemonic, from, to, amount)
	if err != nil {
		log.Fatal(err)
	}

	fmt.Println(sig)
}

// signTransfer produces the secp256k1 signature a node in strict mode
// expects for the transfer.
func signTransfer(mnemonic string, from string, to string, amount float64) (string, error) {
	creds, err := credential.FromMnemonic(mnemonic)
	if err != nil {
		return "", err
	}

	return credential.SignTransfer(creds.PrivateKey, credential.TransferMessage(from, to, amount))
}
