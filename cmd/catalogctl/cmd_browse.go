package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/fekuna/omnipos-storefront-service/internal/category"
	"github.com/fekuna/omnipos-storefront-service/internal/model"
	"github.com/fekuna/omnipos-storefront-service/internal/product"
	"github.com/fekuna/omnipos-storefront-service/internal/product/dto"
	"github.com/fekuna/omnipos-storefront-service/internal/product/pipeline"
	"github.com/fekuna/omnipos-storefront-service/internal/product/repository"
	"github.com/spf13/cobra"
)

type browseOptions struct {
	remote  string
	file    string
	filters dto.ProductFilters
	asJSON  bool
}

func newBrowseCmd() *cobra.Command {
	var opts browseOptions
	cmd := &cobra.Command{
		Use:   "browse",
		Short: "Filter, sort and page the catalog",
		Long: `Load the catalog from a products API (--remote) or a JSON export (--file)
and print one page of results.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			repo, err := opts.repository()
			if err != nil {
				return err
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
			defer cancel()
			return runBrowse(ctx, cmd.OutOrStdout(), repo, opts)
		},
	}

	f := cmd.Flags()
	f.StringVar(&opts.remote, "remote", "", "Products API base URL (default CATALOG_REMOTE_URL)")
	f.StringVar(&opts.file, "file", "", "Catalog JSON file")
	f.StringVarP(&opts.filters.SearchQuery, "search", "s", "", "Search text")
	f.StringVarP(&opts.filters.Category, "category", "c", "", "Bucket or category slug")
	f.StringVar(&opts.filters.MinPrice, "min", "", "Minimum price")
	f.StringVar(&opts.filters.MaxPrice, "max", "", "Maximum price")
	f.StringVar(&opts.filters.SortBy, "sort", "", "price-low, price-high or name")
	f.IntVarP(&opts.filters.Page, "page", "p", 1, "Page number")
	f.IntVarP(&opts.filters.PageSize, "limit", "n", dto.DefaultPageSize, "Page size")
	f.BoolVar(&opts.asJSON, "json", false, "Print JSON instead of a table")
	return cmd
}

func (o browseOptions) repository() (product.Repository, error) {
	switch {
	case o.file != "":
		return repository.NewFileRepository(o.file), nil
	case o.remote != "":
		return repository.NewRemoteRepository(o.remote, timeout), nil
	case cfg != nil && cfg.Catalog.RemoteURL != "":
		return repository.NewRemoteRepository(cfg.Catalog.RemoteURL, timeout), nil
	default:
		return nil, fmt.Errorf("no catalog source: pass --remote or --file")
	}
}

func runBrowse(ctx context.Context, w io.Writer, repo product.Repository, opts browseOptions) error {
	q, err := opts.filters.ToFilterQuery()
	if err != nil {
		return err
	}
	page, pageSize := opts.filters.Pagination()

	products, err := repo.FindAll(ctx)
	if err != nil {
		return fmt.Errorf("failed to load catalog: %w", err)
	}
	res, err := pipeline.Apply(products, q, page, pageSize)
	if err != nil {
		return err
	}

	if opts.asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(map[string]any{
			"data":        dto.NewProductResponses(res.Visible),
			"page":        page,
			"limit":       pageSize,
			"total":       res.TotalCount,
			"total_pages": res.TotalPages,
		})
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tPRICE\tSTOCK\tBUCKET")
	for _, p := range res.Visible {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%s\n", p.ID, p.Name, formatPrice(p), p.StockQuantity, category.Normalize(p.Category))
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "page %d of %d, %d products\n", page, res.TotalPages, res.TotalCount)
	return err
}

func formatPrice(p model.Product) string {
	if !p.Price.Valid {
		return "-"
	}
	return p.Price.Decimal.StringFixed(2)
}
