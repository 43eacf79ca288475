package cmd

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/ziadkadry99/knowledgehub/internal/store"
)

var docsCmd = &cobra.Command{
	Use:   "docs",
	Short: "Quick document operations",
}

var docsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List documents",
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

		docs, err := store.NewStore(database).List(cmd.Context(), store.ListFilter{
			Tag:           docsTag,
			FavoritesOnly: docsFavorites,
		})
		if err != nil {
			return err
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tNAME\tTYPE\tTAGS")
		for _, d := range docs {
			fav := ""
			if d.IsFavorite {
				fav = " *"
			}
			fmt.Fprintf(w, "%s\t%s%s\t%s\t%s\n", d.ID, d.Name, fav, d.Type, strings.Join(d.Tags, ","))
		}
		return w.Flush()
	},
}

var docsAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Add a document record",
	Args:  cobra.ExactArgs(1),
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

		doc := store.Document{
			Name:           args[0],
			Type:           store.DocumentType(strings.ToUpper(docsType)),
			Tags:           docsAddTags,
			ContentSnippet: docsSnippet,
			SourceURL:      docsURL,
		}
		created, err := store.NewStore(database).Create(cmd.Context(), doc)
		if err != nil {
			return err
		}
		fmt.Printf("Added %s (%s)\n", created.Name, created.ID)
		return nil
	},
}

var docsRmCmd = &cobra.Command{
	Use:   "rm <id>",
	Short: "Delete a document record",
	Args:  cobra.ExactArgs(1),
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

		if err := store.NewStore(database).Delete(cmd.Context(), args[0]); err != nil {
			return err
		}
		fmt.Println("Deleted", args[0])
		return nil
	},
}

var (
	docsTag       string
	docsFavorites bool
	docsType      string
	docsAddTags   []string
	docsSnippet   string
	docsURL       string
)

func init() {
	docsListCmd.Flags().StringVar(&docsTag, "tag", "", "filter by tag")
	docsListCmd.Flags().BoolVar(&docsFavorites, "favorites", false, "only favorites")
	docsAddCmd.Flags().StringVar(&docsType, "type", "TEXT", "document type (PDF, WORD, EXCEL, TEXT, URL, VIDEO_LINK)")
	docsAddCmd.Flags().StringSliceVar(&docsAddTags, "tags", nil, "tags")
	docsAddCmd.Flags().StringVar(&docsSnippet, "snippet", "", "content snippet")
	docsAddCmd.Flags().StringVar(&docsURL, "url", "", "source URL")
	docsCmd.AddCommand(docsListCmd, docsAddCmd, docsRmCmd)
	rootCmd.AddCommand(docsCmd)
}
