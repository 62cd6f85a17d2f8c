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
	"github.com/jamie-anson/prdgen/internal/watcher"
)

// watchCmd regenerates documentation whenever source files change.
var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Watch the workspace and regenerate documentation on change",
	Long: `Watch runs an initial generation pass, then monitors source files and
regenerates artifacts after each debounced batch of changes. Stop with
Ctrl-C.`,
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
		cache, err := store.Open(cachePath(root, cfg))
		if err != nil {
			log.Printf("Warning: summary cache unavailable: %v", err)
		} else {
			defer cache.Close()
			opts = append(opts, generator.WithStore(cache))
		}

		g, err := generator.New(cfg, root, opts...)
		if err != nil {
			return err
		}

		runOnce := func() {
			result, err := g.Run(ctx)
			if err != nil {
				if ctx.Err() != nil {
					return
				}
				log.Printf("Generation failed: %v", err)
				return
			}
			fmt.Printf("✓ Regenerated: %d files, score %d/100\n",
				result.SourceFiles, result.Score.Value)
		}

		runOnce()

		w, err := watcher.New(root, cfg.GetSourceExtensions())
		if err != nil {
			return fmt.Errorf("failed to start file watcher: %w", err)
		}
		defer w.Stop()

		if err := w.Start(ctx, func(files []string) {
			log.Printf("Detected %d changed files, regenerating...", len(files))
			runOnce()
		}); err != nil {
			return err
		}

		fmt.Println("Watching for changes. Press Ctrl-C to stop.")
		<-ctx.Done()
		return nil
	},
}

func init() {
	rootCmd.AddCommand(watchCmd)
}
