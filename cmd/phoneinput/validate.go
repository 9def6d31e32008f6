package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-phoneinput/components/phonedata"
	"github.com/goliatone/go-phoneinput/pkg/intltel"
)

func validateCmd(g *globalFlags) *cobra.Command {
	var (
		country string
		asJSON  bool
	)

	cmd := &cobra.Command{
		Use:   "validate <number>",
		Short: "Validate a phone number the way the widget does",
		Example: `  phoneinput validate +14155552671
  phoneinput validate "020 7183 8750" --country gb --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, err := g.logger(cmd)
			if err != nil {
				return err
			}
			result, err := phonedata.Validate(intltel.NewLibrary(), args[0], country)
			if err != nil {
				return err
			}
			logger.Debug("validated", "number", args[0], "country", country, "valid", result.IsValid)

			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				if err := enc.Encode(result); err != nil {
					return err
				}
			} else if result.IsValid {
				name := ""
				if result.Country != nil {
					name = " (" + result.Country.Name + ")"
				}
				fmt.Fprintf(out, "valid: %s%s\n", result.Number, name)
			}
			if !result.IsValid {
				return fmt.Errorf("invalid number %q: %s", args[0], result.Error)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&country, "country", "", "ISO2 code used for numbers without a + prefix")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the full result as JSON")
	return cmd
}
