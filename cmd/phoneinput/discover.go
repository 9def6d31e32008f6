package main

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-phoneinput"
	"github.com/goliatone/go-phoneinput/pkg/openapi"
)

func discoverCmd(g *globalFlags) *cobra.Command {
	var (
		asJSON  bool
		timeout time.Duration
	)

	cmd := &cobra.Command{
		Use:   "discover <openapi document>",
		Short: "List phone fields in an OpenAPI document",
		Long: `discover lists request body properties that should render as phone-input
widgets: string properties with format tel, phone, phone-number or e164, and
properties carrying the x-phone-input extension.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, err := g.logger(cmd)
			if err != nil {
				return err
			}
			src, err := openapi.ParseSource(args[0])
			if err != nil {
				return err
			}
			var opts []openapi.LoaderOption
			if src.Kind() == openapi.SourceKindURL {
				opts = append(opts, openapi.WithHTTPFallback(timeout))
			}
			fields, err := phoneinput.DiscoverPhoneFields(cmd.Context(), src, opts...)
			if err != nil {
				return err
			}
			logger.Debug("discovered phone fields", "source", src.Location(), "count", len(fields))

			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(fields)
			}
			if len(fields) == 0 {
				_, err := fmt.Fprintln(out, "no phone fields found")
				return err
			}
			tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "OPERATION\tMETHOD\tPATH\tFIELD\tATTRIBUTES")
			for _, f := range fields {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", f.OperationID, f.Method, f.Path, f.Field, formatAttributes(f.Attributes))
			}
			return tw.Flush()
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print fields as JSON")
	cmd.Flags().DurationVar(&timeout, "timeout", 30*time.Second, "timeout for remote documents")
	return cmd
}

func formatAttributes(attrs map[string]string) string {
	names := make([]string, 0, len(attrs))
	for name := range attrs {
		names = append(names, name)
	}
	sort.Strings(names)
	parts := make([]string, 0, len(names))
	for _, name := range names {
		if attrs[name] == "" {
			parts = append(parts, name)
			continue
		}
		parts = append(parts, name+"="+attrs[name])
	}
	return strings.Join(parts, " ")
}
