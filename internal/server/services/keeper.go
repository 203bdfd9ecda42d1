package services

import (
	"context"
	"time"

	"github.com/dmitrijs2005/onepass/internal/common"
	"github.com/dmitrijs2005/onepass/internal/logging"
	"github.com/dmitrijs2005/onepass/internal/server/advisor"
	"github.com/dmitrijs2005/onepass/internal/server/models"
	"github.com/dmitrijs2005/onepass/internal/server/sessions"
)

// PasswordChecker scores a password; *advisor.Advisor implements it.
type PasswordChecker interface {
	Check(ctx context.Context, password string) (advisor.Advice, error)
}

// LoginResult is handed out on a successful login.
type LoginResult struct {
	Token     string
	ExpiresAt time.Time
}

// SessionStatus describes the session behind a token.
type SessionStatus struct {
	UserID    string
	UserName  string
	ExpiresAt time.Time
}

// KeeperService is what the gRPC and HTTP transports need from a Keeper.
type KeeperService interface {
	Register(ctx context.Context, username, password string) (string, error)
	Login(ctx context.Context, username, password string) (*LoginResult, error)
	Logout(ctx context.Context, token string) error
	Status(ctx context.Context, token string) (*SessionStatus, error)
	ChangePassword(ctx context.Context, token, oldPassword, newPassword string) error
	DeleteAccount(ctx context.Context, token string) error
	VaultList(ctx context.Context, token, sortBy string) ([]models.Summary, error)
	VaultAdd(ctx context.Context, token string, in models.NewEntry) (*models.Entry, error)
	VaultSearch(ctx context.Context, token, query string) ([]models.Summary, error)
	VaultGet(ctx context.Context, token string, id int64) (*models.Entry, error)
	VaultUpdate(ctx context.Context, token string, id int64, u models.EntryUpdate) (*models.Entry, error)
	VaultDelete(ctx context.Context, token string, id int64) error
	VaultCheck(ctx context.Context, token string, id int64) (advisor.Advice, error)
	CheckPassword(ctx context.Context, password string) (advisor.Advice, error)
}

var _ KeeperService = (*Keeper)(nil)

// Keeper is the boundary the transports talk to: it authenticates tokens
// against the session table and forwards to the identity and vault services.
type Keeper struct {
	identities *IdentityService
	vault      *VaultService
	sessions   *sessions.Manager
	advisor    PasswordChecker
	logger     logging.Logger
}

func NewKeeper(identities *IdentityService, vault *VaultService, sm *sessions.Manager, pc PasswordChecker, l logging.Logger) *Keeper {
	if l == nil {
		l = logging.Nop{}
	}
	return &Keeper{
		identities: identities,
		vault:      vault,
		sessions:   sm,
		advisor:    pc,
		logger:     l.With("module", "keeper"),
	}
}

func (k *Keeper) Register(ctx context.Context, username, password string) (string, error) {
	id, err := k.identities.Register(ctx, username, []byte(password))
	if err != nil {
		return "", err
	}
	k.logger.Info(ctx, "user registered", "user_id", id)
	return id, nil
}

func (k *Keeper) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	identity, err := k.identities.Authenticate(ctx, username, []byte(password))
	if err != nil {
		return nil, err
	}
	defer common.WipeByteArray(identity.SecretKey)

	token, exp, err := k.sessions.Issue(identity)
	if err != nil {
		return nil, err
	}
	k.logger.Info(ctx, "session issued", "user_id", identity.UserID, "expires_at", exp)
	return &LoginResult{Token: token, ExpiresAt: exp}, nil
}

// Logout fails for tokens that are unknown or expired, and revokes otherwise.
func (k *Keeper) Logout(ctx context.Context, token string) error {
	sess, err := k.session(token)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(sess.SecretKey)
	k.sessions.Revoke(token)
	k.logger.Info(ctx, "session revoked", "user_id", sess.UserID)
	return nil
}

func (k *Keeper) Status(ctx context.Context, token string) (*SessionStatus, error) {
	sess, err := k.session(token)
	if err != nil {
		return nil, err
	}
	defer common.WipeByteArray(sess.SecretKey)
	return &SessionStatus{UserID: sess.UserID, UserName: sess.UserName, ExpiresAt: sess.ExpiresAt}, nil
}

// ChangePassword re-wraps the caller's key. Live sessions stay valid since
// the key itself does not change.
func (k *Keeper) ChangePassword(ctx context.Context, token, oldPassword, newPassword string) error {
	sess, err := k.session(token)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(sess.SecretKey)
	if err := k.identities.ChangeMasterPassword(ctx, sess.UserID, []byte(oldPassword), []byte(newPassword)); err != nil {
		return err
	}
	k.logger.Info(ctx, "master password changed", "user_id", sess.UserID)
	return nil
}

// DeleteAccount removes the caller and every session they hold.
func (k *Keeper) DeleteAccount(ctx context.Context, token string) error {
	sess, err := k.session(token)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(sess.SecretKey)
	if err := k.identities.Delete(ctx, sess.UserID); err != nil {
		return err
	}
	n := k.sessions.RevokeUser(sess.UserID)
	k.logger.Info(ctx, "account deleted", "user_id", sess.UserID, "sessions_revoked", n)
	return nil
}

func (k *Keeper) VaultList(ctx context.Context, token, sortBy string) ([]models.Summary, error) {
	sess, err := k.session(token)
	if err != nil {
		return nil, err
	}
	defer common.WipeByteArray(sess.SecretKey)
	return k.vault.List(ctx, sess.UserID, sess.SecretKey, sortBy)
}

func (k *Keeper) VaultAdd(ctx context.Context, token string, in models.NewEntry) (*models.Entry, error) {
	sess, err := k.session(token)
	if err != nil {
		return nil, err
	}
	defer common.WipeByteArray(sess.SecretKey)
	return k.vault.Add(ctx, sess.UserID, sess.SecretKey, in)
}

func (k *Keeper) VaultSearch(ctx context.Context, token, query string) ([]models.Summary, error) {
	sess, err := k.session(token)
	if err != nil {
		return nil, err
	}
	defer common.WipeByteArray(sess.SecretKey)
	return k.vault.Search(ctx, sess.UserID, sess.SecretKey, query)
}

func (k *Keeper) VaultGet(ctx context.Context, token string, id int64) (*models.Entry, error) {
	sess, err := k.session(token)
	if err != nil {
		return nil, err
	}
	defer common.WipeByteArray(sess.SecretKey)
	return k.vault.Get(ctx, sess.UserID, sess.SecretKey, id)
}

func (k *Keeper) VaultUpdate(ctx context.Context, token string, id int64, u models.EntryUpdate) (*models.Entry, error) {
	sess, err := k.session(token)
	if err != nil {
		return nil, err
	}
	defer common.WipeByteArray(sess.SecretKey)
	return k.vault.Update(ctx, sess.UserID, sess.SecretKey, id, u)
}

func (k *Keeper) VaultDelete(ctx context.Context, token string, id int64) error {
	sess, err := k.session(token)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(sess.SecretKey)
	return k.vault.Delete(ctx, sess.UserID, id)
}

// VaultCheck runs the advisor over the stored password of entry id.
func (k *Keeper) VaultCheck(ctx context.Context, token string, id int64) (advisor.Advice, error) {
	entry, err := k.VaultGet(ctx, token, id)
	if err != nil {
		return advisor.Advice{}, err
	}
	if entry.Password == nil {
		return advisor.Advice{}, common.MissingField("password")
	}
	return k.CheckPassword(ctx, *entry.Password)
}

// CheckPassword needs no session.
func (k *Keeper) CheckPassword(ctx context.Context, password string) (advisor.Advice, error) {
	if password == "" {
		return advisor.Advice{}, common.MissingField("password")
	}
	if k.advisor == nil {
		return advisor.Advice{Place: -1, Message: advisor.NoProblems}, nil
	}
	return k.advisor.Check(ctx, password)
}

// session resolves token. Callers wipe the returned key copy when done.
func (k *Keeper) session(token string) (*sessions.Session, error) {
	if token == "" {
		return nil, common.ErrTokenInvalid
	}
	return k.sessions.Validate(token)
}
