package session

import (
	"context"
	"strings"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
	"github.com/primehomes/primehomes/internal/repository"
	"github.com/primehomes/primehomes/pkg/common"
	"go.uber.org/zap"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Validity is the fixed session window. A token at or beyond this age
// is expired and removed on restore.
const Validity = 24 * time.Hour

// ErrInvalidCredentials reports a failed credential match. It is kept
// distinguishable from storage errors so callers can decide how much
// to reveal; the HTTP layer collapses both into one generic message.
var ErrInvalidCredentials = errors.New("invalid email or password")

// TokenStore is the persistent local key-value store owning the
// session record. Implementations read and write the blob atomically
// as a whole.
type TokenStore interface {
	Get() ([]byte, error)
	Set(data []byte) error
	Delete() error
}

// Token is the persisted session record
type Token struct {
	ID        int64     `json:"id,string"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	LoginTime time.Time `json:"loginTime"`
}

// Gate decides whether a persisted token authorizes admin access
type Gate struct {
	store  TokenStore
	admins repository.AdminRepository
	now    func() time.Time
}

func NewGate(store TokenStore, admins repository.AdminRepository) *Gate {
	return &Gate{store: store, admins: admins, now: time.Now}
}

// Restore checks the persisted token. A missing token is simply
// unauthorized; a corrupt or expired token is treated as an implicit
// logout and deleted.
func (g *Gate) Restore() (*Token, bool) {
	raw, err := g.store.Get()
	if err != nil || len(raw) == 0 {
		return nil, false
	}

	var tok Token
	if err := json.Unmarshal(raw, &tok); err != nil || tok.LoginTime.IsZero() {
		zap.L().Warn("removing unparsable session token", zap.Error(err))
		_ = g.store.Delete()
		return nil, false
	}

	if g.now().Sub(tok.LoginTime) >= Validity {
		_ = g.store.Delete()
		return nil, false
	}
	return &tok, true
}

// Login delegates the credential check to the admins repository and
// on success persists a fresh token stamped with the current time.
// The secret is hashed here only for transport to the exact-match
// query; validation policy belongs to the collaborator.
func (g *Gate) Login(ctx context.Context, email, password string) (*Token, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	hashed := common.Sha256HashWithSalt(password, common.GetSecretSalt())

	admin, err := g.admins.FindByCredentials(ctx, email, hashed)
	if errors.Is(err, repository.ErrNoMatch) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, errors.Wrap(err, "credential check")
	}

	if err := g.admins.TouchLastLogin(ctx, admin.ID); err != nil {
		zap.L().Warn("failed to record last login", zap.Error(err))
	}

	tok := &Token{
		ID:        admin.ID,
		Email:     admin.Email,
		Name:      admin.Name,
		LoginTime: g.now(),
	}
	raw, err := json.Marshal(tok)
	if err != nil {
		return nil, err
	}
	if err := g.store.Set(raw); err != nil {
		return nil, errors.Wrap(err, "persist session token")
	}
	return tok, nil
}

// Logout unconditionally deletes the stored token
func (g *Gate) Logout() error {
	return g.store.Delete()
}
