package main

import (
	"fmt"
	"io"

	"github.com/fekuna/omnipos-storefront-service/internal/category"
	"github.com/spf13/cobra"
)

func newBucketCmd() *cobra.Command {
	var requested bool
	cmd := &cobra.Command{
		Use:   "bucket <category>...",
		Short: "Show the bucket a raw category normalizes into",
		Long: `Normalize each argument the way product categories are normalized.

With --requested the arguments are read as filter slugs instead, the way the
storefront reads ?category= from a link.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return printBuckets(cmd.OutOrStdout(), args, requested)
		},
	}
	cmd.Flags().BoolVar(&requested, "requested", false, "Treat arguments as requested filter slugs")
	return cmd
}

func printBuckets(w io.Writer, raws []string, requested bool) error {
	for _, raw := range raws {
		b := category.Normalize(raw)
		if requested {
			b = category.NormalizeRequested(raw)
		}
		if _, err := fmt.Fprintf(w, "%q\t%s\n", raw, b); err != nil {
			return err
		}
	}
	return nil
}
