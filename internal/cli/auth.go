package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/soundplus/storefront/internal/transport"
)

func (a *app) loginCommand() *cobra.Command {
	var form transport.LoginForm
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in and keep the session for later commands",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var err error
			if form.Email == "" {
				if form.Email, err = a.prompt("Email: "); err != nil {
					return err
				}
			}
			if form.Password == "" {
				if form.Password, err = a.prompt("Password: "); err != nil {
					return err
				}
			}

			sess, err := a.auth.Login(cmd.Context(), a.store, form)
			if err != nil {
				return fmt.Errorf("login failed: %w", err)
			}
			fmt.Fprintf(a.out, "Logged in as %s (%s)\n", sess.Username, sess.Role)
			return nil
		},
	}
	cmd.Flags().StringVar(&form.Email, "email", "", "account email")
	cmd.Flags().StringVar(&form.Password, "password", "", "account password; prompted when empty")
	return cmd
}

func (a *app) logoutCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the stored session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.auth.Logout(cmd.Context(), a.store); err != nil {
				return err
			}
			fmt.Fprintln(a.out, "Logged out")
			return nil
		},
	}
}

func (a *app) whoamiCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed-in user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			sess, ok := a.store.Session()
			if !ok {
				fmt.Fprintln(a.out, "Not logged in")
				return nil
			}
			fmt.Fprintf(a.out, "%s (%s) id=%s\n", sess.Username, sess.Role, sess.ID)
			return nil
		},
	}
}
