// Package main implements magangctl, a command-line view over the vacancy
// dataset: the same filtering, ranking, reports and CSV export the API serves.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var dataLocation string

var rootCmd = &cobra.Command{
	Use:   "magangctl",
	Short: "Query the internship vacancy dataset",
	Long:  "magangctl loads a vacancy dataset from a file or URL and runs dashboard queries, reports and CSV exports against it.",
}

func init() {
	def := os.Getenv("DATASET_URL")
	if def == "" {
		def = "./data/data.json"
	}
	rootCmd.PersistentFlags().StringVarP(&dataLocation, "data", "d", def, "Dataset file path or http(s) URL")
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
