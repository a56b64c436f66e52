// The Licensed Work is (c) 2022 Sygma
// SPDX-License-Identifier: LGPL-3.0-only

package tx

import (
	"encoding/hex"
	"fmt"
	"strconv"

	"github.com/btcsuite/btcd/chaincfg"
	"github.com/btcsuite/btcd/txscript"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/sygmaprotocol/txtool/chains/btc/signer"
	"github.com/sygmaprotocol/txtool/chains/btc/transaction"
	"github.com/sygmaprotocol/txtool/cli/flags"
)

var (
	SignTxCMD = &cobra.Command{
		Use:   "sign-tx RAW_TX_HEX SCRIPT_PUBKEY_HEX KEY_BUNDLE INPUT_INDEX [SIGHASH]",
		Short: "Sign a transaction input",
		Long: `Sign the input at INPUT_INDEX with the WIF encoded private key KEY_BUNDLE and print the signed transaction.
SCRIPT_PUBKEY_HEX is the script of the output being spent. SIGHASH defaults to 1 (ALL).`,
		Args: cobra.RangeArgs(4, 5),
		RunE: signTx,
	}
)

func signTx(cmd *cobra.Command, args []string) error {
	cfg, err := flags.LoadConfig()
	if err != nil {
		return err
	}

	tx, err := transaction.Decode(args[0])
	if err != nil {
		return err
	}
	pkScript, err := hex.DecodeString(args[1])
	if err != nil {
		return fmt.Errorf("invalid script pubkey hex: %w", err)
	}

	var params *chaincfg.Params
	if cfg.StrictNetwork {
		params = &cfg.Network
	}
	sgn, err := signer.NewSigner(args[2], params)
	if err != nil {
		return err
	}

	idx, err := strconv.Atoi(args[3])
	if err != nil {
		return fmt.Errorf("invalid input index %s: %w", args[3], err)
	}

	hashType := signer.DefaultHashType
	if len(args) == 5 {
		v, err := strconv.ParseUint(args[4], 10, 32)
		if err != nil {
			return fmt.Errorf("invalid sighash %s: %w", args[4], err)
		}
		hashType = txscript.SigHashType(v)
	}

	err = sgn.Sign(tx, pkScript, idx, hashType)
	if err != nil {
		return err
	}
	log.Debug().Str("txid", tx.TxHash().String()).Msgf("Signed input %d with sighash type %d", idx, hashType)

	raw, err := transaction.Encode(tx)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), raw)
	return nil
}
