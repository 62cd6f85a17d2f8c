package cli

import (
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/jamie-anson/prdgen/internal/mcpserver"
)

// mcpCmd serves generated context cards to MCP clients over stdio.
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Serve context cards to MCP clients over stdio",
	Long: `Mcp starts a Model Context Protocol server on stdio exposing the
prdgen_search tool over the generated context cards, so coding assistants
can query the workspace documentation.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		root, cfg, err := loadWorkspaceConfig()
		if err != nil {
			return err
		}

		cardsDir := filepath.Join(root, cfg.Output.Dir, "context")
		srv, err := mcpserver.New(cmd.Context(), cardsDir, Version)
		if err != nil {
			return err
		}
		defer srv.Close()

		return srv.Serve(cmd.Context())
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
