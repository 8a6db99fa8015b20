package root

import (
	"github.com/spf13/cobra"
)

// Exported RootCmd
var RootCmd = &cobra.Command{
	Use:   "watchlist",
	Short: "Watchlist admin CLI",
	Long: `Administer the watchlist database: create or reset the schema, load
sample movies, set the administrator's credentials and list the catalog.

Database settings are read from the same environment variables (and optional
WATCHLIST_CONFIG file) as the web server.`,
	SilenceUsage: true,
}

// GetRoot returns the RootCmd
func GetRoot() *cobra.Command {
	return RootCmd
}
