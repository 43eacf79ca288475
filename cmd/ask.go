package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ziadkadry99/knowledgehub/internal/assistant"
	"github.com/ziadkadry99/knowledgehub/internal/store"
)

var askCmd = &cobra.Command{
	Use:   "ask <question>",
	Short: "Ask the knowledge base a question",
	Long: `Runs one chat turn against the stored documents and streams the
answer to stdout, followed by the source documents it was grounded in.`,
	Args: cobra.MinimumNArgs(1),
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
		a := assistant.New(client, store.NewStore(database))

		question := strings.Join(args, " ")
		printed := 0
		var sources []string

		err = a.Ask(cmd.Context(), question, func(ev assistant.Event) {
			switch ev.Kind {
			case assistant.EventChunk:
				// Text accumulates; print only the suffix we have
				// not written yet.
				fmt.Print(ev.Message.Text[printed:])
				printed = len(ev.Message.Text)
			case assistant.EventDone:
				fmt.Print(ev.Message.Text[printed:])
				printed = len(ev.Message.Text)
			case assistant.EventError:
				// The error text replaces partial output rather than
				// extending it.
				if printed > 0 {
					fmt.Println()
				}
				fmt.Print(ev.Message.Text)
			case assistant.EventSources:
				sources = ev.Message.Sources
			}
		})
		if err != nil {
			return err
		}

		fmt.Println()
		if len(sources) > 0 {
			fmt.Fprintf(os.Stdout, "\nSources: %s\n", strings.Join(sources, ", "))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(askCmd)
}
