package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	mcpserver "github.com/ziadkadry99/knowledgehub/internal/mcp"
	"github.com/ziadkadry99/knowledgehub/internal/store"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Serve the knowledge base over MCP on stdio",
	Long: `Exposes the knowledge base as MCP tools (list, get, search and ask)
over stdin/stdout, for use by AI agents such as Claude Desktop.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		database, err := openDatabase(cfg)
		if err != nil {
			return fmt.Errorf("opening database: %w", err)
		}
		defer database.Close()

		client := buildClient(cfg)
		index := buildIndex(cfg)

		mcpserver.Version = Version
		srv := mcpserver.NewServer(store.NewStore(database), index, client)

		// Stdout carries the protocol; status goes to stderr.
		fmt.Fprintln(os.Stderr, "knowledgehub MCP server listening on stdio")
		return srv.Serve()
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
