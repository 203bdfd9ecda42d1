package cli

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"

	"github.com/dmitrijs2005/onepass/internal/api"
	"github.com/spf13/cobra"
)

func orDash(s *string) string {
	if s == nil {
		return "-"
	}
	return *s
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func printSummaries(w io.Writer, items []api.Summary) error {
	if len(items) == 0 {
		_, err := fmt.Fprintln(w, "No entries")
		return err
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tTITLE\tURL\tUSERNAME")
	for _, s := range items {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", s.ID, s.Title, orDash(s.URL), orDash(s.Username))
	}
	return tw.Flush()
}

func printEntry(w io.Writer, e *api.Entry, showPassword bool) error {
	password := orDash(e.Password)
	if e.Password != nil && !showPassword {
		password = "********"
	}
	tw := tabwriter.NewWriter(w, 0, 0, 1, ' ', 0)
	fmt.Fprintf(tw, "ID:\t%d\n", e.ID)
	fmt.Fprintf(tw, "Title:\t%s\n", e.Title)
	fmt.Fprintf(tw, "URL:\t%s\n", orDash(e.URL))
	fmt.Fprintf(tw, "Username:\t%s\n", orDash(e.Username))
	fmt.Fprintf(tw, "Password:\t%s\n", password)
	return tw.Flush()
}

func printAdvice(w io.Writer, a *api.AdviceResponse) error {
	_, err := fmt.Fprintln(w, a.Message)
	return err
}

func entryID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid entry id %q", arg)
	}
	return id, nil
}

func newListCmd(o *options) *cobra.Command {
	var sortBy string

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List vault entries",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return o.call(cmd, true, func(ctx context.Context, c vaultAPI) error {
				items, err := c.List(ctx, sortBy)
				if err != nil {
					return err
				}
				return printSummaries(cmd.OutOrStdout(), items)
			})
		},
	}

	cmd.Flags().StringVarP(&sortBy, "sort", "s", "title",
		"order: title, title_reversed, date_added, date_added_reversed")
	return cmd
}

func newSearchCmd(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "search <query>",
		Short: "Find entries by title, URL or username",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return o.call(cmd, true, func(ctx context.Context, c vaultAPI) error {
				items, err := c.Search(ctx, args[0])
				if err != nil {
					return err
				}
				return printSummaries(cmd.OutOrStdout(), items)
			})
		},
	}
}

func newAddCmd(o *options) *cobra.Command {
	var url, user string
	var noPassword bool

	cmd := &cobra.Command{
		Use:   "add <title>",
		Short: "Add an entry; the password is asked for",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := &api.AddRequest{Title: args[0], URL: optional(url), Username: optional(user)}
			if !noPassword {
				p := newPrompter(cmd.InOrStdin(), cmd.OutOrStdout())
				pw, err := p.Password("Entry password")
				if err != nil {
					return err
				}
				req.Password = optional(pw)
			}

			return o.call(cmd, true, func(ctx context.Context, c vaultAPI) error {
				e, err := c.Add(ctx, req)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Added entry %d\n", e.ID)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&url, "url", "", "entry URL")
	cmd.Flags().StringVarP(&user, "username", "u", "", "entry username")
	cmd.Flags().BoolVar(&noPassword, "no-password", false, "store the entry without a password")
	return cmd
}

func newGetCmd(o *options) *cobra.Command {
	var show bool

	cmd := &cobra.Command{
		Use:   "get <id>",
		Short: "Show an entry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := entryID(args[0])
			if err != nil {
				return err
			}
			return o.call(cmd, true, func(ctx context.Context, c vaultAPI) error {
				e, err := c.Get(ctx, id)
				if err != nil {
					return err
				}
				return printEntry(cmd.OutOrStdout(), e, show)
			})
		},
	}

	cmd.Flags().BoolVarP(&show, "show-password", "p", false, "print the password in clear")
	return cmd
}

func newEditCmd(o *options) *cobra.Command {
	var title, url, user string
	var password, clearURL, clearUser, clearPassword bool

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Change some fields of an entry",
		Long: "Change the fields named by flags and keep the rest. --password asks for\n" +
			"the new password; the --clear-* flags remove a field.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := entryID(args[0])
			if err != nil {
				return err
			}

			req := &api.UpdateRequest{ID: id}
			flags := cmd.Flags()
			if flags.Changed("title") {
				req.Title = api.String(title)
			}
			switch {
			case clearURL:
				req.URL = api.Null()
			case flags.Changed("url"):
				req.URL = api.String(url)
			}
			switch {
			case clearUser:
				req.Username = api.Null()
			case flags.Changed("username"):
				req.Username = api.String(user)
			}
			switch {
			case clearPassword:
				req.Password = api.Null()
			case password:
				p := newPrompter(cmd.InOrStdin(), cmd.OutOrStdout())
				pw, err := p.Password("New entry password")
				if err != nil {
					return err
				}
				req.Password = api.String(pw)
			}

			return o.call(cmd, true, func(ctx context.Context, c vaultAPI) error {
				e, err := c.Update(ctx, req)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Updated entry %d\n", e.ID)
				return nil
			})
		},
	}

	f := cmd.Flags()
	f.StringVar(&title, "title", "", "new title")
	f.StringVar(&url, "url", "", "new URL")
	f.StringVarP(&user, "username", "u", "", "new username")
	f.BoolVarP(&password, "password", "p", false, "ask for a new password")
	f.BoolVar(&clearURL, "clear-url", false, "remove the URL")
	f.BoolVar(&clearUser, "clear-username", false, "remove the username")
	f.BoolVar(&clearPassword, "clear-password", false, "remove the password")
	cmd.MarkFlagsMutuallyExclusive("url", "clear-url")
	cmd.MarkFlagsMutuallyExclusive("username", "clear-username")
	cmd.MarkFlagsMutuallyExclusive("password", "clear-password")
	return cmd
}

func newRmCmd(o *options) *cobra.Command {
	return &cobra.Command{
		Use:     "rm <id>",
		Aliases: []string{"delete"},
		Short:   "Delete an entry",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := entryID(args[0])
			if err != nil {
				return err
			}
			return o.call(cmd, true, func(ctx context.Context, c vaultAPI) error {
				if err := c.Delete(ctx, id); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Deleted entry %d\n", id)
				return nil
			})
		},
	}
}

func newCheckCmd(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "check [id]",
		Short: "Check a stored password, or one typed at the prompt, against known lists",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				id, err := entryID(args[0])
				if err != nil {
					return err
				}
				return o.call(cmd, true, func(ctx context.Context, c vaultAPI) error {
					a, err := c.Check(ctx, id)
					if err != nil {
						return err
					}
					return printAdvice(cmd.OutOrStdout(), a)
				})
			}

			p := newPrompter(cmd.InOrStdin(), cmd.OutOrStdout())
			pw, err := p.Password("Password to check")
			if err != nil {
				return err
			}
			return o.call(cmd, false, func(ctx context.Context, c vaultAPI) error {
				a, err := c.CheckPassword(ctx, pw)
				if err != nil {
					return err
				}
				return printAdvice(cmd.OutOrStdout(), a)
			})
		},
	}
}
