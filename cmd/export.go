package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ziadkadry99/knowledgehub/internal/export"
	"github.com/ziadkadry99/knowledgehub/internal/store"
)

var exportOut string

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export all documents as a static HTML site",
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

		renderer, err := export.NewRenderer()
		if err != nil {
			return err
		}

		n, err := renderer.ExportAll(cmd.Context(), store.NewStore(database), exportOut)
		if err != nil {
			return err
		}
		fmt.Printf("Exported %d documents to %s\n", n, exportOut)
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVar(&exportOut, "out", "site", "output directory")
	rootCmd.AddCommand(exportCmd)
}
