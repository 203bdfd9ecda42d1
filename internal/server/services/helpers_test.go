package services

import (
	"context"
	"database/sql"
	"sync"
	"testing"
	"time"

	"github.com/dmitrijs2005/onepass/internal/dbx"
	"github.com/dmitrijs2005/onepass/internal/server/advisor"
	"github.com/dmitrijs2005/onepass/internal/server/config"
	"github.com/dmitrijs2005/onepass/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/onepass/internal/server/sessions"
	"github.com/stretchr/testify/require"
)

// testIterations keeps the KDF cheap; production config never goes this low.
const testIterations = 1000

type testEnv struct {
	db         *sql.DB
	rm         *repomanager.SQLRepositoryManager
	identities *IdentityService
	vault      *VaultService
	sessions   *sessions.Manager
	clock      *fakeClock
	checker    *fakeChecker
	keeper     *Keeper
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, dialect, err := dbx.Open("sqlite://:memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	rm, err := repomanager.NewSQLRepositoryManager(dialect)
	require.NoError(t, err)
	require.NoError(t, rm.RunMigrations(context.Background(), db))

	cfg := &config.Config{KDFIterations: testIterations}
	clock := &fakeClock{t: time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)}

	env := &testEnv{
		db:         db,
		rm:         rm,
		identities: NewIdentityService(db, rm, cfg),
		vault:      NewVaultService(db, rm),
		sessions:   sessions.NewManager(30*time.Minute, sessions.WithClock(clock.Now)),
		clock:      clock,
		checker:    &fakeChecker{advice: advisor.Advice{Place: -1, Message: advisor.NoProblems}},
	}
	env.keeper = NewKeeper(env.identities, env.vault, env.sessions, env.checker, nil)
	return env
}

// register creates a user and returns its id and secret key.
func (e *testEnv) register(t *testing.T, username, password string) (string, []byte) {
	t.Helper()
	ctx := context.Background()
	id, err := e.identities.Register(ctx, username, []byte(password))
	require.NoError(t, err)
	identity, err := e.identities.Authenticate(ctx, username, []byte(password))
	require.NoError(t, err)
	return id, identity.SecretKey
}

type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.t = c.t.Add(d)
	c.mu.Unlock()
}

type fakeChecker struct {
	advice  advisor.Advice
	err     error
	checked []string
}

func (f *fakeChecker) Check(_ context.Context, password string) (advisor.Advice, error) {
	f.checked = append(f.checked, password)
	return f.advice, f.err
}

func strPtr(s string) *string { return &s }
