package cli

import (
	"context"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/floorkit/hbstar/pkg/api"
	"github.com/floorkit/hbstar/pkg/store"
	"github.com/floorkit/hbstar/pkg/timeout"
)

// serveCommand starts the chi-routed HTTP API (§4.13, C16).
func (c *CLI) serveCommand() *cobra.Command {
	var addr string
	var mongoURI string
	var jobBudget time.Duration

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the HTTP placement job API",
		RunE: func(cmd *cobra.Command, args []string) error {
			runStore, err := openRunStore(cmd.Context(), mongoURI)
			if err != nil {
				return err
			}
			defer runStore.Close(cmd.Context())

			srv := api.NewServer(jobBudget, runStore)
			c.Logger.Infof("listening on %s", addr)
			return http.ListenAndServe(addr, srv.Router())
		},
	}
	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")
	cmd.Flags().StringVar(&mongoURI, "mongo-uri", "", "MongoDB URI for run persistence (in-memory store if empty)")
	cmd.Flags().DurationVar(&jobBudget, "job-timeout", timeout.DefaultBudget, "per-job annealing budget")
	return cmd
}

func openRunStore(ctx context.Context, mongoURI string) (store.Store, error) {
	if mongoURI == "" {
		return store.NewMemoryStore(), nil
	}
	return store.NewMongoStore(ctx, mongoURI, "hbstar")
}
