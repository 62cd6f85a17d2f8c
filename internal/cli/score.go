package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jamie-anson/prdgen/internal/store"
)

var scoreLimit int

// scoreCmd shows comprehension score history from recorded runs.
var scoreCmd = &cobra.Command{
	Use:   "score",
	Short: "Show comprehension score history",
	Long: `Score lists previous generation runs with their comprehension scores,
newest first. Run 'prdgen generate' to record a new score.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		root, cfg, err := loadWorkspaceConfig()
		if err != nil {
			return err
		}

		cache, err := store.Open(cachePath(root, cfg))
		if err != nil {
			return fmt.Errorf("failed to open summary cache: %w", err)
		}
		defer cache.Close()

		runs, err := cache.ListRuns(scoreLimit)
		if err != nil {
			return err
		}
		if len(runs) == 0 {
			fmt.Println("No runs recorded yet. Run 'prdgen generate' first.")
			return nil
		}

		fmt.Printf("%-20s  %-6s  %-7s  %-8s\n", "STARTED", "SCORE", "FILES", "SYMBOLS")
		for _, run := range runs {
			fmt.Printf("%-20s  %-6d  %-7d  %-8d\n",
				run.StartedAt.Local().Format("2006-01-02 15:04:05"),
				run.Score, run.SourceFiles, run.Symbols)
		}
		return nil
	},
}

func init() {
	scoreCmd.Flags().IntVarP(&scoreLimit, "limit", "n", 10, "number of runs to show")
	rootCmd.AddCommand(scoreCmd)
}
