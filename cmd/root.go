package cmd

import (
	"fmt"
	"math/rand"
	"os"

	"github.com/common-nighthawk/go-figure"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "6ixgo-cs",
	Short: "6ixgo customer-support console CLI",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if os.Getenv("NO_BANNER") != "" {
			return
		}
		fonts := []string{"banner", "big", "slant", "standard", "small", "shadow", "speed", "thick", "doom"}
		fig := figure.NewFigure("6ixgo CS", fonts[rand.Intn(len(fonts))], true)
		fig.Print()
	},
}

// Execute runs the CLI. Registered extension commands are attached first.
func Execute() {
	Apply()
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
