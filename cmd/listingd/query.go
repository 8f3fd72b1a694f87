package main

import (
	"fmt"

	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/theplant/facet"
	"github.com/theplant/facet/catalog"
	"github.com/theplant/facet/listinghttp"
)

var (
	upstream  string
	flatQuery bool
	limit     int
)

var queryCmd = &cobra.Command{
	Use:   "query <entity> [query-string]",
	Short: "Load one listing page from a listing service",
	Long: `Decodes the query string against the entity schema, prints the active filter
chips and loads the matching page from the upstream listing service.

Example:
  listingd query vehicles "make=toyota&priceRange=0,3000000&sort=price_asc" --upstream http://localhost:8080`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		schema := catalog.Schema(args[0])
		if schema == nil {
			return errors.Errorf("unknown entity %q, expected one of %v", args[0], catalog.Entities())
		}
		var raw string
		if len(args) > 1 {
			raw = args[1]
		}
		q := facet.DecodeQuery(raw, schema)

		out := cmd.OutOrStdout()
		for _, chip := range facet.Chips(q.Values, schema) {
			fmt.Fprintf(out, "%s: %s\n", chip.Title, chip.Text)
		}

		var clientOpts []listinghttp.ClientOption
		if flatQuery {
			clientOpts = append(clientOpts, listinghttp.WithFlatParams())
		}
		loader := facet.NewLoader(schema,
			facet.Fetcher[facet.MapRecord](listinghttp.NewClient[facet.MapRecord](upstream, clientOpts...)),
			facet.WithLogger[facet.MapRecord](log),
			facet.WithTimeout[facet.MapRecord](cfg.FetchTimeout),
			facet.WithLimits[facet.MapRecord](cfg.Limits),
		)
		result, err := loader.Load(cmd.Context(), q, limit)
		if err != nil {
			return err
		}

		data, err := jsoniter.ConfigCompatibleWithStandardLibrary.MarshalIndent(result, "", "  ")
		if err != nil {
			return errors.Wrap(err, "encode result")
		}
		fmt.Fprintln(out, string(data))
		return nil
	},
}

func init() {
	queryCmd.Flags().StringVar(&upstream, "upstream", "http://localhost:8080", "base URL of the listing service")
	queryCmd.Flags().BoolVar(&flatQuery, "flat", false, "send flattened min/max parameters instead of the query string")
	queryCmd.Flags().IntVar(&limit, "limit", 0, "page size, 0 for the default")
}
