package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
)

var resourcesRefreshCmd = &cobra.Command{
	Use:   "resources:refresh",
	Short: "Force a refetch of the resource catalog and re-warm the cache",
	Run: func(cmd *cobra.Command, args []string) {
		svc := bootstrap()
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		data, err := svc.Resources.Refresh(ctx)
		if err != nil {
			fmt.Printf("Refresh failed: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Refreshed: %d category trees, %d languages, %d locations, %d process method sets\n",
			len(data.Categories), len(data.Languages), len(data.Locations), len(data.ProcessMethods))
	},
}

var resourcesStatusCmd = &cobra.Command{
	Use:   "resources:status",
	Short: "Show the cached taxonomy summary without forcing a refetch",
	Run: func(cmd *cobra.Command, args []string) {
		svc := bootstrap()
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		mains, err := svc.Resources.MainCategories(ctx)
		if err != nil {
			fmt.Printf("Resource lookup failed: %v\n", err)
			os.Exit(1)
		}
		langs, _ := svc.Resources.Languages(ctx)
		locs, _ := svc.Resources.CountryLocations(ctx)

		fmt.Printf("Main categories (%d):\n", len(mains))
		for _, cat := range mains {
			fmt.Printf("  %-18s %s\n", cat.Code, cat.Name)
		}
		fmt.Printf("Languages: %d   Country locations: %d\n", len(langs), len(locs))
	},
}

func init() {
	rootCmd.AddCommand(resourcesRefreshCmd)
	rootCmd.AddCommand(resourcesStatusCmd)
}
