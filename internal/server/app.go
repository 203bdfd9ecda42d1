// Package server wires the Onepass server together: it opens the database,
// runs migrations, builds the services and runs the gRPC and HTTP listeners
// until a signal or a listener failure stops them.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/onepass/internal/dbx"
	"github.com/dmitrijs2005/onepass/internal/logging"
	"github.com/dmitrijs2005/onepass/internal/server/advisor"
	"github.com/dmitrijs2005/onepass/internal/server/config"
	"github.com/dmitrijs2005/onepass/internal/server/httpapi"
	"github.com/dmitrijs2005/onepass/internal/server/ratelimit"
	"github.com/dmitrijs2005/onepass/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/onepass/internal/server/services"
	"github.com/dmitrijs2005/onepass/internal/server/sessions"
	"golang.org/x/sync/errgroup"

	gs "github.com/dmitrijs2005/onepass/internal/server/grpc"
)

type App struct {
	config  *config.Config
	logger  logging.Logger
	db      *sql.DB
	keeper  *services.Keeper
	limiter *ratelimit.Limiter
}

// OpenDatabase opens the configured database and brings its schema up to date.
func OpenDatabase(ctx context.Context, c *config.Config) (*sql.DB, *repomanager.SQLRepositoryManager, error) {
	db, dialect, err := dbx.Open(c.DatabaseDSN)
	if err != nil {
		return nil, nil, fmt.Errorf("db init error: %w", err)
	}

	rm, err := repomanager.NewSQLRepositoryManager(dialect)
	if err != nil {
		db.Close()
		return nil, nil, err
	}

	if err := rm.RunMigrations(ctx, db); err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("migrations: %w", err)
	}

	return db, rm, nil
}

// NewAdvisor builds the password advisor from the configured sources.
func NewAdvisor(c *config.Config, l logging.Logger) (*advisor.Advisor, error) {
	var common *advisor.CommonList
	if c.CommonPasswordsFile != "" {
		list, err := advisor.LoadCommonList(c.CommonPasswordsFile)
		if err != nil {
			return nil, err
		}
		common = list
	}

	var pwned advisor.RangeClient
	if c.PwnedCheck {
		pwned = advisor.NewPwnedClient(c.PwnedURL, c.PwnedTimeout)
	}

	return advisor.New(common, pwned, l), nil
}

func NewApp(ctx context.Context, c *config.Config, l logging.Logger) (*App, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	db, rm, err := OpenDatabase(ctx, c)
	if err != nil {
		return nil, err
	}

	adv, err := NewAdvisor(c, l)
	if err != nil {
		db.Close()
		return nil, err
	}

	identities := services.NewIdentityService(db, rm, c)
	vault := services.NewVaultService(db, rm)
	sm := sessions.NewManager(c.SessionTTL)
	keeper := services.NewKeeper(identities, vault, sm, adv, l)

	return &App{
		config:  c,
		logger:  l,
		db:      db,
		keeper:  keeper,
		limiter: ratelimit.New(c.LoginRatePerMinute, c.LoginBurst),
	}, nil
}

func (app *App) initSignalHandler(ctx context.Context, cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		defer signal.Stop(sigs)
		select {
		case sig := <-sigs:
			app.logger.Info(ctx, "Signal received", "signal", sig.String())
			cancelFunc()
		case <-ctx.Done():
		}
	}()
}

// Run serves until ctx is cancelled, a signal arrives or a listener fails.
// Either way both listeners are stopped before it returns.
func (app *App) Run(ctx context.Context) error {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(ctx, cancelFunc)

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		s := gs.NewGRPCServer(app.config.GRPCAddress, app.keeper, app.limiter, app.logger)
		return s.Run(ctx)
	})

	if app.config.HTTPAddress != "" {
		g.Go(func() error {
			s := httpapi.NewHTTPServer(app.config.HTTPAddress, app.keeper, app.limiter, app.logger)
			return s.Run(ctx)
		})
	}

	err := g.Wait()
	app.logger.Info(context.Background(), "App stopped")
	return err
}

func (app *App) Close() error {
	return app.db.Close()
}
