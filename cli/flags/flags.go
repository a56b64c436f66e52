// The Licensed Work is (c) 2022 Sygma
// SPDX-License-Identifier: LGPL-3.0-only

package flags

import (
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/sygmaprotocol/txtool/config"
)

const (
	ConfigFlagName        = "config"
	LogLevelFlagName      = "log-level"
	NetworkFlagName       = "network"
	StrictNetworkFlagName = "strict-network"
)

// BindFlags adds the global flags to rootCMD and binds them to the
// matching config keys
func BindFlags(rootCMD *cobra.Command) {
	flagSet := rootCMD.PersistentFlags()

	flagSet.String(ConfigFlagName, "", "Path to a JSON, YAML or TOML configuration file")
	bindFlag(flagSet, ConfigFlagName, ConfigFlagName)

	flagSet.String(LogLevelFlagName, "", "Log level (trace, debug, info, warn, error)")
	bindFlag(flagSet, "logLevel", LogLevelFlagName)

	flagSet.String(NetworkFlagName, "", "Bitcoin network (mainnet, testnet, regtest, signet)")
	bindFlag(flagSet, "network", NetworkFlagName)

	flagSet.Bool(StrictNetworkFlagName, false, "Reject private keys encoded for a different network")
	bindFlag(flagSet, "strictNetwork", StrictNetworkFlagName)
}

func bindFlag(flagSet *pflag.FlagSet, key string, name string) {
	_ = viper.BindPFlag(key, flagSet.Lookup(name))
}

// LoadConfig parses configuration from the config file, environment and
// global flags
func LoadConfig() (*config.Config, error) {
	return config.GetConfig(viper.GetViper(), viper.GetString(ConfigFlagName))
}
