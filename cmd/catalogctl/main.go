// Command catalogctl inspects the storefront catalog from a terminal and
// publishes stock changes onto the inventory topic.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/fekuna/omnipos-storefront-service/config"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var (
	cfg     *config.Config
	timeout time.Duration
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:           "catalogctl",
	Short:         "Storefront catalog tooling",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		_ = godotenv.Load()
		cfg = config.LoadEnv()
	},
}

func init() {
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 10*time.Second, "Operation timeout")

	rootCmd.AddCommand(newBrowseCmd())
	rootCmd.AddCommand(newBucketCmd())
	rootCmd.AddCommand(newStockCmd())
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
