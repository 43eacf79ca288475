package cmd

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/ziadkadry99/knowledgehub/internal/server"
	"github.com/ziadkadry99/knowledgehub/internal/store"
)

var serveAllowAll bool

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the knowledgehub HTTP server",
	Long: `Starts the HTTP server exposing the document API, search, HTML export
and the streaming chat assistant (REST and WebSocket).`,
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

		// Rebuild an empty index from the repository so search works
		// after a fresh start.
		if index != nil && index.Count() == 0 {
			st := store.NewStore(database)
			docs, err := st.List(cmd.Context(), store.ListFilter{})
			if err == nil && len(docs) > 0 {
				if err := index.Sync(cmd.Context(), docs); err != nil {
					fmt.Fprintf(os.Stderr, "Warning: rebuilding search index: %v\n", err)
				}
			}
		}

		srv, err := server.New(server.Config{
			Port:           cfg.Port,
			RequestTimeout: time.Duration(cfg.RequestTimeoutSec) * time.Second,
			AllowAll:       serveAllowAll,
		}, database, client, index)
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		errCh := make(chan error, 1)
		go func() {
			errCh <- srv.Start()
		}()

		select {
		case err := <-errCh:
			if err != nil && err != http.ErrServerClosed {
				return err
			}
		case <-ctx.Done():
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			if err := srv.Shutdown(shutdownCtx); err != nil {
				return fmt.Errorf("shutting down: %w", err)
			}
		}

		persistIndex(index, cfg)
		return nil
	},
}

func init() {
	serveCmd.Flags().BoolVar(&serveAllowAll, "allow-all-origins", false, "allow all CORS origins (dev mode)")
	rootCmd.AddCommand(serveCmd)
}
