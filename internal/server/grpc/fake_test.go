package grpc

import (
	"context"
	"sync"
	"time"

	"github.com/dmitrijs2005/onepass/internal/common"
	"github.com/dmitrijs2005/onepass/internal/server/advisor"
	"github.com/dmitrijs2005/onepass/internal/server/models"
	"github.com/dmitrijs2005/onepass/internal/server/services"
)

const validToken = "good-token"

// fakeKeeper accepts validToken only and keeps entries in a map.
type fakeKeeper struct {
	mu      sync.Mutex
	entries map[int64]*models.Entry
	nextID  int64
	lastUpd models.EntryUpdate
	err     error
}

func newFakeKeeper() *fakeKeeper {
	return &fakeKeeper{entries: map[int64]*models.Entry{}, nextID: 1}
}

var _ services.KeeperService = (*fakeKeeper)(nil)

func (f *fakeKeeper) auth(token string) error {
	if f.err != nil {
		return f.err
	}
	if token != validToken {
		return common.ErrTokenInvalid
	}
	return nil
}

func (f *fakeKeeper) Register(_ context.Context, username, password string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	if username == "taken" {
		return "", common.ErrUsernameTaken
	}
	return "uid-" + username, nil
}

func (f *fakeKeeper) Login(_ context.Context, username, password string) (*services.LoginResult, error) {
	if f.err != nil {
		return nil, f.err
	}
	if password != "pw" {
		return nil, common.ErrAccessUnauthorized
	}
	return &services.LoginResult{Token: validToken, ExpiresAt: time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)}, nil
}

func (f *fakeKeeper) Logout(_ context.Context, token string) error {
	return f.auth(token)
}

func (f *fakeKeeper) Status(_ context.Context, token string) (*services.SessionStatus, error) {
	if err := f.auth(token); err != nil {
		return nil, err
	}
	return &services.SessionStatus{UserID: "uid-alice", UserName: "alice", ExpiresAt: time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)}, nil
}

func (f *fakeKeeper) ChangePassword(_ context.Context, token, oldPassword, newPassword string) error {
	if err := f.auth(token); err != nil {
		return err
	}
	if newPassword == "" {
		return common.MissingField("new_password")
	}
	return nil
}

func (f *fakeKeeper) DeleteAccount(_ context.Context, token string) error {
	return f.auth(token)
}

func (f *fakeKeeper) VaultList(_ context.Context, token, sortBy string) ([]models.Summary, error) {
	if err := f.auth(token); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Summary
	for id := int64(1); id < f.nextID; id++ {
		if e, ok := f.entries[id]; ok {
			out = append(out, models.Summary{ID: e.ID, Title: e.Title, URL: e.URL, Username: e.Username})
		}
	}
	return out, nil
}

func (f *fakeKeeper) VaultAdd(_ context.Context, token string, in models.NewEntry) (*models.Entry, error) {
	if err := f.auth(token); err != nil {
		return nil, err
	}
	if in.Title == "" {
		return nil, common.MissingField("title")
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	e := &models.Entry{ID: f.nextID, Title: in.Title, URL: in.URL, Username: in.Username, Password: in.Password}
	f.entries[e.ID] = e
	f.nextID++
	return e, nil
}

func (f *fakeKeeper) VaultSearch(ctx context.Context, token, query string) ([]models.Summary, error) {
	return f.VaultList(ctx, token, "")
}

func (f *fakeKeeper) VaultGet(_ context.Context, token string, id int64) (*models.Entry, error) {
	if err := f.auth(token); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	e, ok := f.entries[id]
	if !ok {
		return nil, common.ErrEntryNotFound
	}
	return e, nil
}

func (f *fakeKeeper) VaultUpdate(ctx context.Context, token string, id int64, u models.EntryUpdate) (*models.Entry, error) {
	e, err := f.VaultGet(ctx, token, id)
	if err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lastUpd = u
	if u.URL.Set {
		e.URL = u.URL.Value
	}
	if u.Title.Set && u.Title.Value != nil {
		e.Title = *u.Title.Value
	}
	return e, nil
}

func (f *fakeKeeper) VaultDelete(ctx context.Context, token string, id int64) error {
	if _, err := f.VaultGet(ctx, token, id); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.entries, id)
	return nil
}

func (f *fakeKeeper) VaultCheck(ctx context.Context, token string, id int64) (advisor.Advice, error) {
	e, err := f.VaultGet(ctx, token, id)
	if err != nil {
		return advisor.Advice{}, err
	}
	if e.Password == nil {
		return advisor.Advice{}, common.MissingField("password")
	}
	return f.CheckPassword(ctx, *e.Password)
}

func (f *fakeKeeper) CheckPassword(_ context.Context, password string) (advisor.Advice, error) {
	if password == "password" {
		return advisor.Advice{Place: 1, Message: "Password is at place 1 of 1 in the list of most used passwords"}, nil
	}
	return advisor.Advice{Place: -1, Message: advisor.NoProblems}, nil
}
