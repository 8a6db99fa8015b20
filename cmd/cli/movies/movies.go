package movies

import (
	"encoding/json"
	"fmt"

	"github.com/crucial707/watchlist/cmd/cli/config"
	"github.com/crucial707/watchlist/cmd/cli/output"
	"github.com/crucial707/watchlist/cmd/cli/root"
	"github.com/crucial707/watchlist/internal/models"
	"github.com/crucial707/watchlist/internal/repo"
	"github.com/spf13/cobra"
)

// ==========================
// CLI Command Init
// ==========================
func init() {
	root.GetRoot().AddCommand(listMoviesCmd())
}

// ==========================
// List Movies
// ==========================
func listMoviesCmd() *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "movies",
		Short: "List the catalog",
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

			movies, err := repo.NewMovieRepo(store.DB).List(cmd.Context())
			if err != nil {
				return fmt.Errorf("list movies: %w", err)
			}
			if movies == nil {
				movies = []models.Movie{}
			}

			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(movies)
			}

			rows := make([][]interface{}, 0, len(movies))
			for _, m := range movies {
				rows = append(rows, []interface{}{m.ID, m.Title, m.Year})
			}
			output.RenderTable(out, []string{"ID", "Title", "Year"}, rows)
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print JSON instead of a table")
	return cmd
}
