package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

const (
	configFileName = "sqnut"
	configFileType = "yaml"
	envPrefix      = "SQNUT"

	cfgKeyStandard   = "standard"
	cfgKeySize       = "size"
	cfgKeyThread     = "thread"
	cfgKeyKernel     = "kernel"
	cfgKeyResolution = "resolution"
	cfgKeyOutput     = "output"
	cfgKeyPreview    = "preview"

	defaultStandard   = "DIN557"
	defaultSize       = "M6"
	defaultResolution = 200
)

// loadConfig reads sqnut.yaml from the working directory, or path when
// set, and SQNUT_* environment variables. A missing sqnut.yaml is not an
// error.
func loadConfig(path string) (*viper.Viper, error) {
	v := viper.New()
	v.SetDefault(cfgKeyStandard, defaultStandard)
	v.SetDefault(cfgKeySize, defaultSize)
	v.SetDefault(cfgKeyThread, true)
	v.SetDefault(cfgKeyKernel, kernelNative)
	v.SetDefault(cfgKeyResolution, defaultResolution)
	v.SetDefault(cfgKeyOutput, "")
	v.SetDefault(cfgKeyPreview, "")

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName(configFileName)
		v.SetConfigType(configFileType)
		v.AddConfigPath(".")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return v, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}
	return v, nil
}
