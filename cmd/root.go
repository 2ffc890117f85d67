package cmd

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "immich-deduper",
	Short: "A tool for resolving duplicate photos in Immich",
	Long: `Immich Deduper connects to an Immich instance, scores the members of
each duplicate cluster against a weighted set of criteria and selects
the best asset per cluster, so the rest can be reviewed and trashed.`,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)
}

func initConfig() {
	// .env file is optional, don't fail if not found
	_ = godotenv.Load()
}
