// The Licensed Work is (c) 2022 Sygma
// SPDX-License-Identifier: LGPL-3.0-only

package config

import (
	"fmt"

	"github.com/btcsuite/btcd/chaincfg"
	"github.com/creasty/defaults"
	"github.com/mitchellh/mapstructure"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/spf13/viper"
)

const EnvPrefix = "TXTOOL"

type RawConfig struct {
	LogLevel      string `mapstructure:"logLevel" default:"info"`
	Network       string `mapstructure:"network" default:"mainnet"`
	StrictNetwork bool   `mapstructure:"strictNetwork"`
}

func (c *RawConfig) Validate() error {
	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("unknown log level: %s", c.LogLevel)
	}
	return nil
}

type Config struct {
	LogLevel zerolog.Level
	// Network is used to render addresses and, with StrictNetwork, to
	// reject private keys encoded for another network
	Network       chaincfg.Params
	StrictNetwork bool
}

// NewConfig decodes and validates an instance of Config from
// raw settings
func NewConfig(rawConfig map[string]interface{}) (*Config, error) {
	var c RawConfig
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		Result:           &c,
	})
	if err != nil {
		return nil, err
	}
	err = decoder.Decode(rawConfig)
	if err != nil {
		return nil, err
	}

	err = defaults.Set(&c)
	if err != nil {
		return nil, err
	}

	err = c.Validate()
	if err != nil {
		return nil, err
	}

	logLevel, _ := zerolog.ParseLevel(c.LogLevel)
	networkParams, err := networkParams(c.Network)
	if err != nil {
		return nil, err
	}

	return &Config{
		LogLevel:      logLevel,
		Network:       networkParams,
		StrictNetwork: c.StrictNetwork,
	}, nil
}

// GetConfig merges the config file at path, if any, with the environment
// and flags already bound to v and parses the result.
//
// Environment variables are prefixed with TXTOOL, for example
// TXTOOL_NETWORK=testnet.
func GetConfig(v *viper.Viper, path string) (*Config, error) {
	v.SetEnvPrefix(EnvPrefix)
	for _, key := range []string{"logLevel", "network", "strictNetwork"} {
		_ = v.BindEnv(key)
	}

	if path != "" {
		v.SetConfigFile(path)
		err := v.ReadInConfig()
		if err != nil {
			return nil, errors.Wrap(err, "failed to read config file")
		}
	}

	return NewConfig(v.AllSettings())
}

func networkParams(network string) (chaincfg.Params, error) {
	switch network {
	case "mainnet":
		return chaincfg.MainNetParams, nil
	case "testnet":
		return chaincfg.TestNet3Params, nil
	case "regtest":
		return chaincfg.RegressionNetParams, nil
	case "signet":
		return chaincfg.SigNetParams, nil
	default:
		return chaincfg.Params{}, fmt.Errorf("unknown network %s", network)
	}
}
