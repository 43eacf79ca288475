package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ziadkadry99/knowledgehub/internal/config"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a config file interactively",
	Long: `Walks through provider, quality and server settings and writes them
to ` + config.DefaultPath + ` in the current directory.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.RunWizard()
		if err != nil {
			return err
		}
		fmt.Printf("\nWrote %s (provider %s, model %s)\n", config.DefaultPath, cfg.Provider, cfg.Model)
		fmt.Println("Next: `khub import <dir>` to load documents, then `khub serve`.")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
