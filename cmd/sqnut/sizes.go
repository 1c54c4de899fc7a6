package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/soypat/sqnut/nut"
)

func sizesCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "sizes [standard]",
		Short: "List the nominal sizes of each standard",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			stds := nut.Standards
			if len(args) == 1 {
				std, err := nut.ParseStandard(args[0])
				if err != nil {
					return err
				}
				stds = []nut.Standard{std}
			}
			for _, std := range stds {
				sizes, err := nut.Sizes(std)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%v: %s\n", std, strings.Join(sizes, " "))
			}
			return nil
		},
	}
}

// dimsDoc is the YAML view of nut dimensions.
type dimsDoc struct {
	Standard string   `yaml:"standard"`
	Size     string   `yaml:"size"`
	S        float64  `yaml:"s"`
	M        float64  `yaml:"m"`
	Di       float64  `yaml:"di"`
	Dw       *float64 `yaml:"dw,omitempty"`
	P        float64  `yaml:"pitch"`
	Turns    int      `yaml:"turns"`
}

func dimsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "dims <standard> <size>",
		Short: "Print the dimensions of a nut as YAML",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			std, err := nut.ParseStandard(args[0])
			if err != nil {
				return err
			}
			d, err := nut.Lookup(std, args[1])
			if err != nil {
				return err
			}
			doc := dimsDoc{
				Standard: std.String(),
				Size:     strings.ToUpper(strings.TrimSpace(args[1])),
				S:        d.S,
				M:        d.M,
				Di:       d.Di,
				P:        d.P,
				Turns:    nut.Turns(d.M, d.P),
			}
			if dw, ok := d.Washer.Diameter(); ok {
				doc.Dw = &dw
			}
			enc := yaml.NewEncoder(cmd.OutOrStdout())
			defer enc.Close()
			return enc.Encode(doc)
		},
	}
}
