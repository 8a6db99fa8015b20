package admin

import (
	"bufio"
	"errors"
	"fmt"

	"github.com/crucial707/watchlist/cmd/cli/config"
	"github.com/crucial707/watchlist/cmd/cli/root"
	"github.com/crucial707/watchlist/internal/auth"
	"github.com/crucial707/watchlist/internal/forms"
	"github.com/crucial707/watchlist/internal/models"
	"github.com/crucial707/watchlist/internal/repo"
	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"
)

// maxUsernameLen mirrors forms.Admin.
const maxUsernameLen = 20

// ==========================
// CLI Command Init
// ==========================
func init() {
	root.GetRoot().AddCommand(adminCmd())
}

func adminCmd() *cobra.Command {
	var username, password string
	cmd := &cobra.Command{
		Use:   "admin",
		Short: "Create or update the administrator",
		Long: `Set the administrator's username and password. The first user is updated
if one exists, otherwise it is created with the display name "Admin".
Missing values are prompted for; the password is read without echo.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			in := bufio.NewReader(cmd.InOrStdin())
			out := cmd.OutOrStdout()

			var err error
			if username == "" {
				if username, err = promptText(in, out, "Username"); err != nil {
					return err
				}
			}
			if username == "" {
				return errors.New("username is required")
			}
			if err := forms.Validate(forms.Admin{Username: username}); err != nil {
				return fmt.Errorf("username must be at most %d characters", maxUsernameLen)
			}
			if !cmd.Flags().Changed("password") {
				if password, err = promptPassword(out); err != nil {
					return err
				}
			}
			if password == "" {
				return errors.New("password is required")
			}

			u := &models.User{}
			if err := auth.SetPassword(u, password); err != nil {
				if errors.Is(err, bcrypt.ErrPasswordTooLong) {
					return fmt.Errorf("password must be at most %d bytes", auth.MaxPasswordBytes)
				}
				return err
			}

			store, err := config.Open(cmd.Context())
			if err != nil {
				return err
			}
			defer store.Close()

			if err := store.Migrate(cmd.Context(), false); err != nil {
				return err
			}

			user, created, err := repo.NewUserRepo(store.DB).SaveAdmin(cmd.Context(), username, u.PasswordHash)
			if err != nil {
				return fmt.Errorf("save administrator: %w", err)
			}
			if created {
				fmt.Fprintf(out, "Created administrator %q (id %d).\n", user.Username, user.ID)
			} else {
				fmt.Fprintf(out, "Updated administrator %q (id %d).\n", user.Username, user.ID)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&username, "username", "", "Login username")
	cmd.Flags().StringVar(&password, "password", "", "Login password (prompted without echo when omitted)")
	return cmd
}
