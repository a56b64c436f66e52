// The Licensed Work is (c) 2022 Sygma
// SPDX-License-Identifier: LGPL-3.0-only

package tx

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/sygmaprotocol/txtool/chains/btc/transaction"
)

var (
	MakeTxCMD = &cobra.Command{
		Use:   "make-tx inputs [TXID VOUT SCRIPT_SIG SEQUENCE]... outputs [VALUE SCRIPT_PUBKEY]... [LOCKTIME]",
		Short: "Build an unsigned transaction",
		Long: `Build a version 1 transaction from a flat list of inputs and outputs and print it hex encoded.
TXID is given in display byte order. SCRIPT_SIG may be an empty string.`,
		Args: cobra.MinimumNArgs(1),
		RunE: makeTx,
	}
)

func makeTx(cmd *cobra.Command, args []string) error {
	tpl, err := transaction.ParseArgs(args)
	if err != nil {
		return err
	}

	tx := tpl.MsgTx()
	raw, err := transaction.Encode(tx)
	if err != nil {
		return err
	}
	log.Debug().Str("txid", tx.TxHash().String()).Msgf("Built transaction with %d inputs and %d outputs", len(tx.TxIn), len(tx.TxOut))

	fmt.Fprintln(cmd.OutOrStdout(), raw)
	return nil
}
