// Command report renders offline achievement reports from a result-set
// JSON file, without needing a running service.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var datasetPath string

var rootCmd = &cobra.Command{
	Use:   "report",
	Short: "Annual competition achievement reports",
	Long:  "Compute medal tables, achievement awards and points leaderboards from a result-set JSON file.",
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&datasetPath, "data", "results.json", "path to result-set JSON file")

	rootCmd.AddCommand(medalsCmd)
	rootCmd.AddCommand(pointsCmd)
	rootCmd.AddCommand(achievementsCmd)
}
