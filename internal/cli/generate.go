package cli

import (
	"context"
	"fmt"
	"log"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/jamie-anson/prdgen/internal/generator"
	"github.com/jamie-anson/prdgen/internal/store"
)

var noCache bool

// generateCmd runs a full documentation pass over the workspace.
var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Analyze the workspace and generate documentation artifacts",
	Long: `Generate discovers source files, extracts functions and classes,
summarizes them with the configured provider, links same-file call
dependencies, and writes context cards, a README, a PRD skeleton, a
codebase map, and a comprehension score report.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		root, cfg, err := loadWorkspaceConfig()
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(context.Background(),
			syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		opts := []generator.Option{
			generator.WithProgress(NewCLIProgressReporter(quiet)),
		}

		if !noCache {
			cache, err := store.Open(cachePath(root, cfg))
			if err != nil {
				log.Printf("Warning: summary cache unavailable: %v", err)
			} else {
				defer cache.Close()
				opts = append(opts, generator.WithStore(cache))
			}
		}

		g, err := generator.New(cfg, root, opts...)
		if err != nil {
			return err
		}

		result, err := g.Run(ctx)
		if err != nil {
			return err
		}

		fmt.Printf("✓ Generated documentation for %d source files (%d symbols) in %.1fs\n",
			result.SourceFiles, result.Symbols, result.Duration.Seconds())
		fmt.Printf("  Output:              %s\n", result.OutputDir)
		fmt.Printf("  Comprehension score: %d/100 (%s)\n",
			result.Score.Value, result.Score.Grade)
		return nil
	},
}

func init() {
	generateCmd.Flags().BoolVar(&noCache, "no-cache", false, "bypass the summary cache")
	rootCmd.AddCommand(generateCmd)
}
