// The Licensed Work is (c) 2022 Sygma
// SPDX-License-Identifier: LGPL-3.0-only

package tx

import (
	"encoding/json"
	"fmt"

	"github.com/davecgh/go-spew/spew"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/sygmaprotocol/txtool/chains/btc/transaction"
	"github.com/sygmaprotocol/txtool/cli/flags"
)

var (
	DecodeTxCMD = &cobra.Command{
		Use:   "decode-tx RAW_TX_HEX",
		Short: "Decode a raw transaction",
		Long:  "Decode a hex encoded transaction and print its structure",
		Args:  cobra.ExactArgs(1),
		RunE:  decodeTx,
	}
)

var dumpConfig = spew.ConfigState{
	Indent:                  "  ",
	DisablePointerAddresses: true,
	DisableCapacities:       true,
	SortKeys:                true,
}

func init() {
	DecodeTxCMD.Flags().Bool("json", false, "Print the transaction as JSON with addresses for the configured network")
}

func decodeTx(cmd *cobra.Command, args []string) error {
	tx, err := transaction.Decode(args[0])
	if err != nil {
		return err
	}
	log.Debug().Str("txid", tx.TxHash().String()).Msgf("Decoded transaction with %d inputs and %d outputs", len(tx.TxIn), len(tx.TxOut))

	asJSON, err := cmd.Flags().GetBool("json")
	if err != nil {
		return err
	}
	if !asJSON {
		fmt.Fprint(cmd.OutOrStdout(), dumpConfig.Sdump(tx))
		return nil
	}

	cfg, err := flags.LoadConfig()
	if err != nil {
		return err
	}
	out, err := json.MarshalIndent(transaction.DecodeResult(tx, &cfg.Network), "", "  ")
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(out))
	return nil
}
