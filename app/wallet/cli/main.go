// This program is the player wallet for the BabyBTC node.
package main

import "github.com/babybtc/quantlab/app/wallet/cli/cmd"

func main() {
	cmd.Execute()
}
