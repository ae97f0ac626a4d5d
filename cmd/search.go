package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"sixgo.GO/products"
)

var (
	searchMain     string
	searchTerm     string
	searchPage     int
	searchPageSize int
	searchCats     []string
	searchLangs    []string
	searchLocs     []string
)

var productSearchCmd = &cobra.Command{
	Use:   "products:search",
	Short: "Run a one-shot product search from the terminal",
	Run: func(cmd *cobra.Command, args []string) {
		params := products.DefaultFilters()
		params.MainCategoryCode = searchMain
		params.SearchTerm = searchTerm
		if searchPage > 0 {
			params.PageNumber = searchPage
		}
		if searchPageSize > 0 {
			params.PageSize = searchPageSize
		}
		if len(searchCats) > 0 {
			params.CategoryCodes = searchCats
		}
		if len(searchLangs) > 0 {
			params.LangCodes = searchLangs
		}
		if len(searchLocs) > 0 {
			params.LocationCodes = searchLocs
		}

		svc := bootstrap()
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		page, err := svc.Search.Search(ctx, params)
		if err != nil {
			fmt.Printf("Search failed: %v\n", err)
			os.Exit(1)
		}

		fmt.Printf("Page %d/%d (%d records)\n", page.PageNumber, page.TotalPages, page.TotalRecords)
		for _, p := range page.Items {
			note := ""
			if p.CSImportantNote != "" {
				note = "  [note] " + p.CSImportantNote
			}
			fmt.Printf("  %-14s %s%s\n", p.ProductID, p.Name, note)
		}
	},
}

func init() {
	productSearchCmd.Flags().StringVarP(&searchMain, "main", "m", "", "Main category code (required)")
	productSearchCmd.Flags().StringVarP(&searchTerm, "term", "t", "", "Search term")
	productSearchCmd.Flags().IntVarP(&searchPage, "page", "p", 0, "Page number")
	productSearchCmd.Flags().IntVarP(&searchPageSize, "size", "s", 0, "Page size")
	productSearchCmd.Flags().StringSliceVar(&searchCats, "categories", nil, "Sub-category codes")
	productSearchCmd.Flags().StringSliceVar(&searchLangs, "languages", nil, "Language codes")
	productSearchCmd.Flags().StringSliceVar(&searchLocs, "locations", nil, "Location codes")
	productSearchCmd.MarkFlagRequired("main")
	rootCmd.AddCommand(productSearchCmd)
}
