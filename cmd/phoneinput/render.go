package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-phoneinput"
	"github.com/goliatone/go-phoneinput/pkg/widget"
)

func renderCmd(g *globalFlags) *cobra.Command {
	attrs := &attrFlags{}
	var output string

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render a page holding one phone-input widget",
		Example: `  phoneinput render --name mobile --label Mobile --required --initial-country us
  phoneinput render -c widget.yaml -o page.html`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, err := g.logger(cmd)
			if err != nil {
				return err
			}
			resolved, err := attrs.resolve(cmd)
			if err != nil {
				return err
			}
			doc, err := phoneinput.RenderHTML(cmd.Context(), resolved, widget.WithLogger(logger))
			if err != nil {
				return err
			}
			if output == "" {
				_, err = fmt.Fprintln(cmd.OutOrStdout(), doc)
				return err
			}
			if err := os.WriteFile(output, []byte(doc+"\n"), 0o644); err != nil {
				return fmt.Errorf("write output: %w", err)
			}
			logger.Info("page written", "path", output)
			return nil
		},
	}
	attrs.register(cmd.Flags())
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (stdout if empty)")
	return cmd
}
