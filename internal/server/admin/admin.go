// Package admin implements the onepass-admin command line: schema
// migrations, encrypted backups and backup key generation.
package admin

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/dmitrijs2005/onepass/internal/filex"
	"github.com/dmitrijs2005/onepass/internal/logging"
	"github.com/dmitrijs2005/onepass/internal/server"
	"github.com/dmitrijs2005/onepass/internal/server/backup"
	"github.com/dmitrijs2005/onepass/internal/server/config"
	"github.com/spf13/cobra"
)

type options struct {
	configFile string
	dsn        string
	backupDir  string
	logLevel   string
}

// loadConfig builds the server configuration the same way the server
// does, then applies the admin overrides.
func (o *options) loadConfig() (*config.Config, error) {
	var args []string
	if o.configFile != "" {
		args = append(args, "-c", o.configFile)
	}
	cfg, err := config.Load(args)
	if err != nil {
		return nil, err
	}
	if o.dsn != "" {
		cfg.DatabaseDSN = o.dsn
	}
	if o.backupDir != "" {
		cfg.BackupDir = o.backupDir
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (o *options) logger(w io.Writer) (logging.Logger, error) {
	return logging.New(w, o.logLevel, "text")
}

// NewRootCmd returns the onepass-admin command tree.
func NewRootCmd() *cobra.Command {
	o := &options{}

	root := &cobra.Command{
		Use:           "onepass-admin",
		Short:         "Onepass server administration",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVarP(&o.configFile, "config", "c", "", "server config file (.json or .toml)")
	root.PersistentFlags().StringVarP(&o.dsn, "dsn", "d", "", "database DSN, overrides the config file")
	root.PersistentFlags().StringVar(&o.backupDir, "backup-dir", "", "backup directory for the file target")
	root.PersistentFlags().StringVar(&o.logLevel, "log-level", "warn", "log level")

	root.AddCommand(
		newMigrateCmd(o),
		newBackupCmd(o),
		newRestoreCmd(o),
		newKeygenCmd(),
	)
	return root
}

func newMigrateCmd(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply database migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := o.loadConfig()
			if err != nil {
				return err
			}
			db, _, err := server.OpenDatabase(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer db.Close()

			fmt.Fprintln(cmd.OutOrStdout(), "Migrations applied")
			return nil
		},
	}
}

// withBackupService opens the database and the configured backup store for fn.
func withBackupService(ctx context.Context, cmd *cobra.Command, o *options, fn func(cfg *config.Config, s *backup.Service) error) error {
	cfg, err := o.loadConfig()
	if err != nil {
		return err
	}
	l, err := o.logger(cmd.ErrOrStderr())
	if err != nil {
		return err
	}

	db, rm, err := server.OpenDatabase(ctx, cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	s, err := server.NewBackupService(ctx, cfg, db, rm, l)
	if err != nil {
		return err
	}
	return fn(cfg, s)
}

func newBackupCmd(o *options) *cobra.Command {
	var recipient string

	cmd := &cobra.Command{
		Use:   "backup",
		Short: "Write an encrypted dump of the database to the backup target",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withBackupService(cmd.Context(), cmd, o, func(cfg *config.Config, s *backup.Service) error {
				if recipient == "" {
					recipient = cfg.BackupRecipient
				}
				if recipient == "" {
					return errors.New("no backup recipient: pass --recipient or set backup_recipient")
				}
				r, err := backup.ParseRecipient(recipient)
				if err != nil {
					return err
				}

				stats, err := s.Dump(cmd.Context(), r)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Backup %s written: %d users, %d entries\n", stats.Name, stats.Users, stats.Entries)
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&recipient, "recipient", "r", "", "age public key (age1...)")
	return cmd
}

func newRestoreCmd(o *options) *cobra.Command {
	var identityFile string

	cmd := &cobra.Command{
		Use:   "restore [name]",
		Short: "Restore a backup into an empty database (the newest one by default)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withBackupService(cmd.Context(), cmd, o, func(cfg *config.Config, s *backup.Service) error {
				if identityFile == "" {
					identityFile = cfg.BackupIdentityFile
				}
				if identityFile == "" {
					return errors.New("no identity file: pass --identity or set backup_identity_file")
				}
				ids, err := backup.LoadIdentities(identityFile)
				if err != nil {
					return err
				}

				var name string
				if len(args) == 1 {
					name = args[0]
				}

				stats, err := s.Restore(cmd.Context(), name, ids...)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Backup %s restored: %d users, %d entries\n", stats.Name, stats.Users, stats.Entries)
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&identityFile, "identity", "i", "", "age identity file")
	return cmd
}

func newKeygenCmd() *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "keygen",
		Short: "Generate an age key pair for backups",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := backup.GenerateKey()
			if err != nil {
				return err
			}
			pub := id.Recipient().String()

			if out == "" {
				fmt.Fprintf(cmd.OutOrStdout(), "# public key: %s\n%s\n", pub, id.String())
				return nil
			}

			if _, err := os.Stat(out); err == nil {
				return fmt.Errorf("%s already exists", out)
			}
			if _, err := filex.EnsureDir(filepath.Dir(out)); err != nil {
				return err
			}
			content := fmt.Sprintf("# public key: %s\n%s\n", pub, id.String())
			if err := filex.WriteFileAtomic(out, []byte(content), 0o600); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Public key: %s\n", pub)
			return nil
		},
	}

	cmd.Flags().StringVarP(&out, "output", "o", "", "write the identity to this file instead of stdout")
	return cmd
}
