package cli

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jamie-anson/prdgen/internal/search"
)

var searchLimit int

// searchCmd searches generated context cards from the terminal.
var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search generated context cards",
	Long: `Search runs a full-text query over the context cards in the output
directory. Supports field scoping (symbols:login, path:auth), boolean
operators, phrases, and wildcards.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		root, cfg, err := loadWorkspaceConfig()
		if err != nil {
			return err
		}

		cardsDir := filepath.Join(root, cfg.Output.Dir, "context")
		docs, err := search.LoadCards(cardsDir)
		if err != nil {
			return fmt.Errorf("no context cards found; run 'prdgen generate' first: %w", err)
		}

		searcher, err := search.NewSearcher(cmd.Context(), docs)
		if err != nil {
			return err
		}
		defer searcher.Close()

		query := strings.Join(args, " ")
		results, err := searcher.Search(cmd.Context(), query, searchLimit)
		if err != nil {
			return err
		}

		if len(results) == 0 {
			fmt.Println("No matches.")
			return nil
		}

		for _, result := range results {
			fmt.Printf("%s  (%.2f)\n", result.Path, result.Score)
			if result.Summary != "" {
				fmt.Printf("  %s\n", result.Summary)
			}
			for _, highlight := range result.Highlights {
				fmt.Printf("  … %s\n", stripEmphasis(highlight))
			}
			fmt.Println()
		}
		return nil
	},
}

// stripEmphasis removes the <em> markers bleve uses for highlighting.
func stripEmphasis(s string) string {
	s = strings.ReplaceAll(s, "<em>", "")
	s = strings.ReplaceAll(s, "</em>", "")
	return strings.ReplaceAll(s, "\n", " ")
}

func init() {
	searchCmd.Flags().IntVarP(&searchLimit, "limit", "n", 10, "maximum results")
	rootCmd.AddCommand(searchCmd)
}
