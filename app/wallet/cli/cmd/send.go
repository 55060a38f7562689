package cmd

import (
	"fmt"
	"log"

	"github.com/babybtc/quantlab/business/web/client"
	"github.com/spf13/cobra"
)

// sendCmd represents the send command
var sendCmd = &cobra.Command{
	Use:   "send",
	Short: "Send transaction",
	Run:   sendRun,
}

func init() {
	rootCmd.AddCommand(sendCmd)
	sendCmd.Flags().StringVarP(&from, "from", "f", "", "Sender player id.")
	sendCmd.Flags().StringVarP(&to, "to", "t", "", "Receiver player id.")
	sendCmd.Flags().Float64VarP(&amount, "amount", "v", 0, "Amount to send.")
	sendCmd.Flags().StringVarP(&mnemonic, "mnemonic", "m", "", "Sign the transfer with this mnemonic. Required when the node verifies signatures.")
	sendCmd.MarkFlagRequired("from")
	sendCmd.MarkFlagRequired("to")
}

func sendRun(cmd *cobra.Command, args []string) {
	req := client.TransferRequest{
		FromPlayerID: from,
		ToPlayerID:   to,
		Amount:       amount,
	}

	if mnemonic != "" {
		sig, err := signTransfer(mnemonic, from, to, amount)
		if err != nil {
			log.Fatal(err)
		}
		req.Signature = sig
	}

	ctx, cancel := newContext()
	defer cancel()

	tx, err := newClient().Transfer(ctx, req)
	if err != nil {
		log.Fatal(err)
	}

	fmt.Printf("Transaction %s %s: %v BABY %s -> %s\n", tx.TxID, tx.Status, tx.Amount, tx.FromAddress, tx.ToAddress)
}
