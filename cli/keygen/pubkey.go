// The Licensed Work is (c) 2022 Sygma
// SPDX-License-Identifier: LGPL-3.0-only

package keygen

import (
	"encoding/hex"
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/sygmaprotocol/txtool/crypto/eddsa"
)

var (
	PubKeyCMD = &cobra.Command{
		Use:   "eddsa-pubkey PRIVKEY_HEX",
		Short: "Derive an EdDSA public key",
		Long:  "Derive the Ed25519 public key of a hex encoded 32 byte private key",
		Args:  cobra.ExactArgs(1),
		RunE:  derivePubKey,
	}
	PubKeyCheckCMD = &cobra.Command{
		Use:   "eddsa-pubkey-check PUBKEY_HEX",
		Short: "Validate an EdDSA public key",
		Long:  "Exit with status 0 if the hex encoded public key is a valid Ed25519 point that is not of small order",
		Args:  cobra.ExactArgs(1),
		RunE:  checkPubKey,
	}
)

func derivePubKey(cmd *cobra.Command, args []string) error {
	priv, err := hex.DecodeString(args[0])
	if err != nil {
		return fmt.Errorf("invalid private key hex: %w", err)
	}

	pub, err := eddsa.PublicKey(priv)
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), hex.EncodeToString(pub))
	return nil
}

func checkPubKey(cmd *cobra.Command, args []string) error {
	pub, err := hex.DecodeString(args[0])
	if err != nil {
		return fmt.Errorf("invalid public key hex: %w", err)
	}

	err = eddsa.CheckPublicKey(pub)
	if err != nil {
		return err
	}

	log.Debug().Str("pubkey", args[0]).Msg("Valid public key")
	return nil
}
