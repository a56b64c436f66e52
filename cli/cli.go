// The Licensed Work is (c) 2022 Sygma
// SPDX-License-Identifier: LGPL-3.0-only

package cli

import (
	"errors"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/sygmaprotocol/txtool/cli/flags"
	"github.com/sygmaprotocol/txtool/cli/keygen"
	"github.com/sygmaprotocol/txtool/cli/tx"
	"github.com/sygmaprotocol/txtool/logger"
)

var ErrNoCommand = errors.New("no command given, see --help for the list of commands")

var (
	rootCMD = &cobra.Command{
		Use:           "txtool",
		Short:         "Build, decode and sign Bitcoin transactions and manage EdDSA keys",
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := flags.LoadConfig()
			if err != nil {
				return err
			}
			logger.ConfigureLogger(cfg.LogLevel, os.Stderr)
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return ErrNoCommand
		},
	}
)

func init() {
	flags.BindFlags(rootCMD)
	rootCMD.AddCommand(
		tx.DecodeTxCMD,
		tx.MakeTxCMD,
		tx.SignTxCMD,
		keygen.PrivKeyCMD,
		keygen.PubKeyCMD,
		keygen.PubKeyCheckCMD,
	)
}

func Execute() {
	if err := rootCMD.Execute(); err != nil {
		log.Fatal().Err(err).Msg("failed to execute root cmd")
	}
}
