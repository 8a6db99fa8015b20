package database

import (
	"context"
	"fmt"

	"github.com/crucial707/watchlist/cmd/cli/config"
	"github.com/crucial707/watchlist/cmd/cli/root"
	"github.com/crucial707/watchlist/internal/db"
	"github.com/crucial707/watchlist/internal/repo"
	"github.com/spf13/cobra"
)

// sampleMovies is the catalog loaded by forge.
var sampleMovies = []struct{ Title, Year string }{
	{"My Neighbor Totoro", "1988"},
	{"Dead Poets Society", "1989"},
	{"A Perfect World", "1993"},
	{"Leon", "1994"},
	{"Mahjong", "1996"},
	{"Swallowtail Butterfly", "1996"},
	{"King of Comedy", "1999"},
	{"Devils on the Doorstep", "1999"},
	{"WALL-E", "2008"},
	{"The Pork of Music", "2012"},
}

// ==========================
// CLI Command Init
// ==========================
func init() {
	root.GetRoot().AddCommand(initdbCmd(), forgeCmd())
}

// ==========================
// initdb
// ==========================
func initdbCmd() *cobra.Command {
	var drop bool
	cmd := &cobra.Command{
		Use:   "initdb",
		Short: "Initialize the database",
		Long:  "Apply all schema migrations. With --drop, roll every migration back first, deleting all data.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := config.Open(cmd.Context())
			if err != nil {
				return err
			}
			defer store.Close()

			if err := store.Migrate(cmd.Context(), drop); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Initialized database.")
			return nil
		},
	}
	cmd.Flags().BoolVar(&drop, "drop", false, "Create after drop.")
	return cmd
}

// ==========================
// forge
// ==========================
func forgeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "forge",
		Short: "Load sample movies",
		Long:  "Apply pending migrations, then add ten sample movies to the catalog.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := config.Open(cmd.Context())
			if err != nil {
				return err
			}
			defer store.Close()

			if err := store.Migrate(cmd.Context(), false); err != nil {
				return err
			}

			err = db.WithTx(cmd.Context(), store.DB, func(ctx context.Context, tx db.DBTX) error {
				movies := repo.NewMovieRepo(tx)
				for _, m := range sampleMovies {
					if _, err := movies.Create(ctx, m.Title, m.Year); err != nil {
						return fmt.Errorf("add %q: %w", m.Title, err)
					}
				}
				return nil
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added %d movies.\n", len(sampleMovies))
			return nil
		},
	}
}
