package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/jamie-anson/prdgen/internal/config"
)

var (
	rootDir string
	quiet   bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "prdgen",
	Short: "prdgen - generate living documentation from your codebase",
	Long: `prdgen analyzes a TypeScript/JavaScript workspace and generates
documentation artifacts: per-file context cards, a README, a PRD skeleton,
a codebase map, and a comprehension score.

Configuration lives in .prdgen/config.yml with PRDGEN_* environment
variable overrides.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&rootDir, "dir", "d", ".", "workspace root directory")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "suppress progress output")
}

// workspaceRoot resolves the --dir flag to an absolute path.
func workspaceRoot() (string, error) {
	abs, err := filepath.Abs(rootDir)
	if err != nil {
		return "", fmt.Errorf("failed to resolve workspace root: %w", err)
	}
	if info, err := os.Stat(abs); err != nil || !info.IsDir() {
		return "", fmt.Errorf("workspace root is not a directory: %s", abs)
	}
	return abs, nil
}

// loadWorkspaceConfig loads the workspace configuration for the resolved root.
func loadWorkspaceConfig() (string, *config.Config, error) {
	root, err := workspaceRoot()
	if err != nil {
		return "", nil, err
	}
	cfg, err := config.LoadConfigFromDir(root)
	if err != nil {
		return "", nil, err
	}
	return root, cfg, nil
}

// cachePath resolves the summary cache location for a workspace.
func cachePath(root string, cfg *config.Config) string {
	if cfg.Cache.Location != "" {
		if filepath.IsAbs(cfg.Cache.Location) {
			return cfg.Cache.Location
		}
		return filepath.Join(root, cfg.Cache.Location)
	}
	return filepath.Join(root, ".prdgen", "cache.db")
}
