package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/inkwell-cms/inkwell-go/internal/client"
)

func init() {
	rootCmd.AddCommand(loginCmd, logoutCmd, registerCmd, whoamiCmd, refreshCmd)
}

// readPassword prompts for a password with masked input, falling back to
// a plain line read when stdin is not a terminal (piped input, tests).
func readPassword(prompt string) (string, error) {
	fmt.Fprint(os.Stderr, prompt)
	if term.IsTerminal(int(os.Stdin.Fd())) {
		b, err := term.ReadPassword(int(os.Stdin.Fd()))
		fmt.Fprintln(os.Stderr)
		if err != nil {
			return "", err
		}
		return string(b), nil
	}
	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

var loginCmd = &cobra.Command{
	Use:   "login [username]",
	Short: "Authenticate and store the session locally",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		password, err := readPassword("Password: ")
		if err != nil {
			return err
		}

		c, closer, err := newAPIClient()
		if err != nil {
			return err
		}
		defer closer()

		u, err := c.Auth.Login(cmd.Context(), args[0], password)
		if err != nil {
			return err
		}
		fmt.Printf("logged in as %s\n", u.Username)
		return nil
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Discard the stored session",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, closer, err := newAPIClient()
		if err != nil {
			return err
		}
		defer closer()

		if err := c.Auth.Logout(); err != nil {
			return err
		}
		fmt.Println("logged out")
		return nil
	},
}

var registerCmd = &cobra.Command{
	Use:   "register [username] [email]",
	Short: "Create an account and log in",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		password, err := readPassword("Password: ")
		if err != nil {
			return err
		}
		confirm, err := readPassword("Confirm password: ")
		if err != nil {
			return err
		}
		if password != confirm {
			return fmt.Errorf("passwords do not match")
		}

		c, closer, err := newAPIClient()
		if err != nil {
			return err
		}
		defer closer()

		u, err := c.Auth.Register(cmd.Context(), client.RegisterInput{
			Username: args[0],
			Email:    args[1],
			Password: password,
		})
		if err != nil {
			return err
		}
		fmt.Printf("registered as %s\n", u.Username)
		return nil
	},
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the stored user and session flags",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, closer, err := newAPIClient()
		if err != nil {
			return err
		}
		defer closer()

		u := c.Auth.CurrentUser()
		if u == nil {
			fmt.Println("not logged in")
			return nil
		}

		out := map[string]any{
			"user":    u,
			"session": c.Session(),
		}
		if exp, ok := c.Auth.TokenExpiry(); ok {
			out["token_expires"] = exp.Format(time.RFC3339)
		}
		printJSON(out)
		return nil
	},
}

var refreshCmd = &cobra.Command{
	Use:   "refresh",
	Short: "Force an access token renewal",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, closer, err := newAPIClient()
		if err != nil {
			return err
		}
		defer closer()

		if _, err := c.Auth.Refresh(cmd.Context()); err != nil {
			return friendly(err)
		}
		fmt.Println("token renewed")
		return nil
	},
}
