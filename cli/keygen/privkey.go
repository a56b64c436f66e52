// The Licensed Work is (c) 2022 Sygma
// SPDX-License-Identifier: LGPL-3.0-only

package keygen

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/sygmaprotocol/txtool/crypto/eddsa"
)

var (
	PrivKeyCMD = &cobra.Command{
		Use:   "eddsa-privkey",
		Short: "Generate an EdDSA private key",
		Long:  "Generate a random 32 byte Ed25519 private key and print it hex encoded",
		Args:  cobra.NoArgs,
		RunE:  generatePrivKey,
	}
)

func generatePrivKey(cmd *cobra.Command, args []string) error {
	priv, err := eddsa.GeneratePrivateKey(rand.Reader)
	if err != nil {
		return fmt.Errorf("failed to generate private key: %w", err)
	}

	fmt.Fprintln(cmd.OutOrStdout(), hex.EncodeToString(priv))
	return nil
}
