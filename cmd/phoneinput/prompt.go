package main

import (
	"github.com/spf13/cobra"

	"github.com/goliatone/go-phoneinput/pkg/page"
	"github.com/goliatone/go-phoneinput/pkg/prompt"
)

func promptCmd(g *globalFlags) *cobra.Command {
	attrs := &attrFlags{}
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "prompt",
		Short: "Ask for a phone number in the terminal",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, err := g.logger(cmd)
			if err != nil {
				return err
			}
			resolved, err := attrs.resolve(cmd)
			if err != nil {
				return err
			}
			format := prompt.OutputFormatPrettyText
			if asJSON {
				format = prompt.OutputFormatJSON
			}
			p := prompt.New(
				prompt.WithDriver(prompt.NewSurveyDriver(cmd.OutOrStdout())),
				prompt.WithOutputFormat(format),
				prompt.WithLogger(logger),
				prompt.WithPageOptions(page.WithLoader(page.NopLoader)),
			)
			_, err = p.Run(cmd.Context(), resolved)
			return err
		},
	}
	attrs.register(cmd.Flags())
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the accepted number as JSON")
	return cmd
}
