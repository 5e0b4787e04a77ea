package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/inkwell-cms/inkwell-go/internal/client"
	"github.com/inkwell-cms/inkwell-go/internal/tokenstore"
)

var (
	flagUsername string
	flagEmail    string
)

func init() {
	profileUpdateCmd.Flags().StringVar(&flagUsername, "username", "", "new username")
	profileUpdateCmd.Flags().StringVar(&flagEmail, "email", "", "new email")

	profileCmd.AddCommand(profileShowCmd, profileUpdateCmd)
	rootCmd.AddCommand(profileCmd, themeCmd)
}

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "View and edit profiles",
}

var profileShowCmd = &cobra.Command{
	Use:   "show [id]",
	Short: "Show a profile (own profile without an id)",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, closer, err := newAPIClient()
		if err != nil {
			return err
		}
		defer closer()

		var u any
		if len(args) == 1 {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			u, err = c.Profiles.Get(cmd.Context(), id)
			if err != nil {
				return friendly(err)
			}
		} else {
			u, err = c.Profiles.Self(cmd.Context())
			if err != nil {
				return friendly(err)
			}
		}
		printJSON(u)
		return nil
	},
}

var profileUpdateCmd = &cobra.Command{
	Use:   "update",
	Short: "Update the current user's profile",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, closer, err := newAPIClient()
		if err != nil {
			return err
		}
		defer closer()

		cur := c.Auth.CurrentUser()
		if cur == nil {
			return fmt.Errorf("not logged in (run `inkwell login`)")
		}

		u, err := c.Profiles.Update(cmd.Context(), cur.ID, client.ProfileInput{
			Username: flagUsername,
			Email:    flagEmail,
		})
		if err != nil {
			return friendly(err)
		}
		printJSON(u)
		return nil
	},
}

var themeCmd = &cobra.Command{
	Use:   "theme [value]",
	Short: "Show or set the UI theme preference",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, closer, err := newAPIClient()
		if err != nil {
			return err
		}
		defer closer()

		store := c.Store()
		if len(args) == 0 {
			v := store.Preference(tokenstore.KeyPrefTheme)
			if v == "" {
				v = "default"
			}
			fmt.Println(v)
			return nil
		}
		return store.SetPreference(tokenstore.KeyPrefTheme, args[0])
	},
}
