package main

import (
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

type app struct {
	configFile string
	verbose    bool
	cfg        *viper.Viper
	log        zerolog.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:           "sqnut",
		Short:         "Square nut generator for DIN 557 and DIN 562",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(a.configFile)
			if err != nil {
				return err
			}
			if err := cfg.BindPFlags(cmd.Flags()); err != nil {
				return err
			}
			a.cfg = cfg
			level := zerolog.InfoLevel
			if a.verbose {
				level = zerolog.DebugLevel
			}
			a.log = log.Logger.Level(level)
			return nil
		},
	}
	root.PersistentFlags().StringVar(&a.configFile, "config", "", "config file (default ./sqnut.yaml)")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "log debug messages")
	root.AddCommand(buildCmd(a), sizesCmd(a), dimsCmd(a))
	return root
}
