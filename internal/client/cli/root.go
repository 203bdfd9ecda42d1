package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/onepass/internal/api"
	"github.com/dmitrijs2005/onepass/internal/client/client"
	"github.com/dmitrijs2005/onepass/internal/client/config"
	"github.com/dmitrijs2005/onepass/internal/common"
	"github.com/spf13/cobra"
)

// vaultAPI is the part of client.GRPCClient the commands use.
type vaultAPI interface {
	SetToken(token string)
	Close() error

	Register(ctx context.Context, username, password string) (string, error)
	Login(ctx context.Context, username, password string) (*api.LoginResponse, error)
	Logout(ctx context.Context) error
	Status(ctx context.Context) (*api.StatusResponse, error)
	ChangePassword(ctx context.Context, oldPassword, newPassword string) error
	DeleteAccount(ctx context.Context) error

	List(ctx context.Context, sortBy string) ([]api.Summary, error)
	Search(ctx context.Context, query string) ([]api.Summary, error)
	Add(ctx context.Context, req *api.AddRequest) (*api.Entry, error)
	Get(ctx context.Context, id int64) (*api.Entry, error)
	Update(ctx context.Context, req *api.UpdateRequest) (*api.Entry, error)
	Delete(ctx context.Context, id int64) error
	Check(ctx context.Context, id int64) (*api.AdviceResponse, error)
	CheckPassword(ctx context.Context, password string) (*api.AdviceResponse, error)
}

// newClient is a test seam for client.NewGRPCClient.
var newClient = func(cfg *config.Config) (vaultAPI, error) {
	return client.NewGRPCClient(cfg.ServerAddress)
}

var errSessionEnded = errors.New("session ended, log in again")

type options struct {
	configFile  string
	server      string
	sessionFile string

	cfg *config.Config
}

func (o *options) load() error {
	cfg, err := config.Load(o.configFile)
	if err != nil {
		return err
	}
	if o.server != "" {
		cfg.ServerAddress = o.server
	}
	if o.sessionFile != "" {
		cfg.SessionFile = o.sessionFile
	}
	o.cfg = cfg
	return nil
}

func (o *options) sessions() *client.SessionFile {
	return client.NewSessionFile(o.cfg.SessionFile)
}

// call runs fn against a fresh connection under the configured timeout.
// With authenticated set the stored session token is attached, and a
// token the server rejects is forgotten.
func (o *options) call(cmd *cobra.Command, authenticated bool, fn func(ctx context.Context, c vaultAPI) error) error {
	var sess *client.Session
	if authenticated {
		s, err := o.sessions().Load()
		if err != nil {
			return err
		}
		sess = s
	}

	c, err := newClient(o.cfg)
	if err != nil {
		return err
	}
	defer c.Close()
	if sess != nil {
		c.SetToken(sess.Token)
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), o.cfg.Timeout)
	defer cancel()

	err = fn(ctx, c)
	if authenticated && (errors.Is(err, common.ErrTokenExpired) || errors.Is(err, common.ErrTokenInvalid)) {
		if cerr := o.sessions().Clear(); cerr != nil {
			return errors.Join(err, cerr)
		}
		return fmt.Errorf("%w: %w", errSessionEnded, err)
	}
	return err
}

// NewRootCmd returns the onepass command tree.
func NewRootCmd() *cobra.Command {
	o := &options{}

	root := &cobra.Command{
		Use:           "onepass",
		Short:         "Onepass password vault client",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return o.load()
		},
	}

	root.PersistentFlags().StringVarP(&o.configFile, "config", "c", "", "client config file (.json or .toml)")
	root.PersistentFlags().StringVarP(&o.server, "server", "a", "", "server gRPC address, host:port")
	root.PersistentFlags().StringVar(&o.sessionFile, "session-file", "", "where the session token is kept")

	root.AddCommand(
		newRegisterCmd(o),
		newLoginCmd(o),
		newLogoutCmd(o),
		newStatusCmd(o),
		newPasswdCmd(o),
		newDeleteAccountCmd(o),
		newListCmd(o),
		newSearchCmd(o),
		newAddCmd(o),
		newGetCmd(o),
		newEditCmd(o),
		newRmCmd(o),
		newCheckCmd(o),
	)
	return root
}
