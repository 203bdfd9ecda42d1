package cli

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/onepass/internal/client/client"
	"github.com/spf13/cobra"
)

// username returns args[0] or asks for it.
func username(p *prompter, args []string) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}
	return p.Text("Username")
}

func newRegisterCmd(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "register [username]",
		Short: "Create an account",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p := newPrompter(cmd.InOrStdin(), cmd.OutOrStdout())
			name, err := username(p, args)
			if err != nil {
				return err
			}
			password, err := p.NewPassword("Master password")
			if err != nil {
				return err
			}

			return o.call(cmd, false, func(ctx context.Context, c vaultAPI) error {
				if _, err := c.Register(ctx, name, password); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Registered %s\n", name)
				return nil
			})
		},
	}
}

func newLoginCmd(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "login [username]",
		Short: "Start a session",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p := newPrompter(cmd.InOrStdin(), cmd.OutOrStdout())
			name, err := username(p, args)
			if err != nil {
				return err
			}
			password, err := p.Password("Master password")
			if err != nil {
				return err
			}

			return o.call(cmd, false, func(ctx context.Context, c vaultAPI) error {
				resp, err := c.Login(ctx, name, password)
				if err != nil {
					return err
				}
				err = o.sessions().Save(&client.Session{Token: resp.Token, Username: name, ExpiresAt: resp.ExpiresAt})
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Logged in as %s until %s\n", name, resp.ExpiresAt.Local().Format(time.DateTime))
				return nil
			})
		},
	}
}

func newLogoutCmd(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "End the current session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			err := o.call(cmd, true, func(ctx context.Context, c vaultAPI) error {
				return c.Logout(ctx)
			})
			switch {
			case errors.Is(err, client.ErrNotLoggedIn), errors.Is(err, errSessionEnded):
			case err != nil:
				return err
			}
			if err := o.sessions().Clear(); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Logged out")
			return nil
		},
	}
}

func newStatusCmd(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the logged in user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return o.call(cmd, true, func(ctx context.Context, c vaultAPI) error {
				st, err := c.Status(ctx)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Logged in as %s (%s) until %s\n",
					st.Username, st.UserID, st.ExpiresAt.Local().Format(time.DateTime))
				return nil
			})
		},
	}
}

func newPasswdCmd(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "passwd",
		Short: "Change the master password",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p := newPrompter(cmd.InOrStdin(), cmd.OutOrStdout())
			oldPassword, err := p.Password("Current master password")
			if err != nil {
				return err
			}
			newPassword, err := p.NewPassword("New master password")
			if err != nil {
				return err
			}

			return o.call(cmd, true, func(ctx context.Context, c vaultAPI) error {
				if err := c.ChangePassword(ctx, oldPassword, newPassword); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "Master password changed")
				return nil
			})
		},
	}
}

func newDeleteAccountCmd(o *options) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "delete-account",
		Short: "Delete the account and every entry in it",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := o.sessions().Load()
			if err != nil {
				return err
			}
			if !yes {
				p := newPrompter(cmd.InOrStdin(), cmd.OutOrStdout())
				answer, err := p.Text(fmt.Sprintf("Type %q to delete the account", sess.Username))
				if err != nil {
					return err
				}
				if answer != sess.Username {
					return fmt.Errorf("account not deleted")
				}
			}

			err = o.call(cmd, true, func(ctx context.Context, c vaultAPI) error {
				return c.DeleteAccount(ctx)
			})
			if err != nil {
				return err
			}
			if err := o.sessions().Clear(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted account %s\n", sess.Username)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "do not ask for confirmation")
	return cmd
}

// NeedsLogin reports errors that mean the user has to log in again.
func NeedsLogin(err error) bool {
	return errors.Is(err, client.ErrNotLoggedIn) || errors.Is(err, errSessionEnded)
}
