package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"quizhub/internal/session"
)

func newLoginCmd(o *options) *cobra.Command {
	var token string
	var username string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Store a bearer token for authenticated requests",
		Long: "Store a bearer token in the session file. Pass --token with a token\n" +
			"obtained from your identity provider, or --username to request one from\n" +
			"a quizhub-dev server.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := o.newApp(cmd)
			if err != nil {
				return err
			}

			switch {
			case token != "":
			case username != "":
				token, err = a.client.DevLogin(cmd.Context(), username)
				if err != nil {
					return describeClientError(a, err)
				}
			default:
				return errors.New("pass --token or --username")
			}

			sess := session.Session{ServerURL: a.serverURL, Token: token}
			if err := session.Save(a.cfgPath, sess); err != nil {
				return err
			}
			fmt.Fprintf(a.out, "Logged in against %s.\n", a.serverURL)
			return nil
		},
	}

	cmd.Flags().StringVar(&token, "token", "", "bearer token to store")
	cmd.Flags().StringVar(&username, "username", "", "request a dev-server token for this username")
	return cmd
}

func newLogoutCmd(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the stored bearer token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := o.newApp(cmd)
			if err != nil {
				return err
			}

			a.sess.Token = ""
			if err := session.Save(a.cfgPath, a.sess); err != nil {
				return err
			}
			fmt.Fprintln(a.out, "Logged out.")
			return nil
		},
	}
}
