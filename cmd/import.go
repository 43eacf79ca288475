package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ziadkadry99/knowledgehub/internal/importer"
	"github.com/ziadkadry99/knowledgehub/internal/store"
)

var (
	importInclude []string
	importExclude []string
)

var importCmd = &cobra.Command{
	Use:   "import <dir>",
	Short: "Import documents from a directory tree",
	Long: `Walks a directory and imports each matching file as a document.
Text files are stored with their content so the assistant can answer
questions about them; binary formats are imported as metadata only.`,
	Args: cobra.ExactArgs(1),
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

		include := importInclude
		if len(include) == 0 {
			include = cfg.Import.Include
		}
		exclude := importExclude
		if len(exclude) == 0 {
			exclude = cfg.Import.Exclude
		}

		index := buildIndex(cfg)
		im := importer.New(store.NewStore(database), index, importer.NewReporter())

		result, err := im.Run(cmd.Context(), args[0], importer.Options{
			IncludeGlobs: include,
			ExcludeGlobs: exclude,
		})
		if err != nil {
			return err
		}

		persistIndex(index, cfg)
		fmt.Printf("Imported %d documents (%d skipped)\n", result.Imported, result.Skipped)
		return nil
	},
}

func init() {
	importCmd.Flags().StringSliceVar(&importInclude, "include", nil, "glob patterns to include (default from config)")
	importCmd.Flags().StringSliceVar(&importExclude, "exclude", nil, "glob patterns to exclude (default from config)")
	rootCmd.AddCommand(importCmd)
}
