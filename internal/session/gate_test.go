package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/primehomes/primehomes/internal/domain"
	"github.com/primehomes/primehomes/internal/repository"
	"github.com/primehomes/primehomes/pkg/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memTokenStore struct {
	data []byte
	err  error
}

func (m *memTokenStore) Get() ([]byte, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.data, nil
}
func (m *memTokenStore) Set(data []byte) error {
	m.data = data
	return nil
}
func (m *memTokenStore) Delete() error {
	m.data = nil
	return nil
}

type fakeAdminRepo struct {
	admin      *domain.SysAdmin
	err        error
	lastEmail  string
	lastHashed string
	touched    int64
}

func (f *fakeAdminRepo) FindByCredentials(ctx context.Context, email, hashedPassword string) (*domain.SysAdmin, error) {
	f.lastEmail = email
	f.lastHashed = hashedPassword
	if f.err != nil {
		return nil, f.err
	}
	return f.admin, nil
}
func (f *fakeAdminRepo) TouchLastLogin(ctx context.Context, id int64) error {
	f.touched = id
	return nil
}

func newTestGate(store TokenStore, admins repository.AdminRepository, at time.Time) *Gate {
	g := NewGate(store, admins)
	g.now = func() time.Time { return at }
	return g
}

func storedToken(t *testing.T, loginTime time.Time) []byte {
	raw, err := json.Marshal(&Token{ID: 42, Email: "admin@primehomes.mw", Name: "Admin", LoginTime: loginTime})
	require.NoError(t, err)
	return raw
}

func TestRestoreMissingToken(t *testing.T) {
	g := newTestGate(&memTokenStore{}, &fakeAdminRepo{}, time.Now())
	tok, ok := g.Restore()
	assert.False(t, ok)
	assert.Nil(t, tok)
}

func TestRestoreFreshToken(t *testing.T) {
	now := time.Now()
	store := &memTokenStore{data: storedToken(t, now.Add(-23*time.Hour-59*time.Minute))}
	g := newTestGate(store, &fakeAdminRepo{}, now)

	tok, ok := g.Restore()
	require.True(t, ok)
	assert.Equal(t, int64(42), tok.ID)
	assert.Equal(t, "admin@primehomes.mw", tok.Email)
	assert.NotNil(t, store.data)
}

func TestRestoreExpiredTokenDeleted(t *testing.T) {
	now := time.Now()
	store := &memTokenStore{data: storedToken(t, now.Add(-24*time.Hour-time.Minute))}
	g := newTestGate(store, &fakeAdminRepo{}, now)

	tok, ok := g.Restore()
	assert.False(t, ok)
	assert.Nil(t, tok)
	assert.Nil(t, store.data)
}

func TestRestoreExactlyAtExpiry(t *testing.T) {
	now := time.Now()
	store := &memTokenStore{data: storedToken(t, now.Add(-Validity))}
	g := newTestGate(store, &fakeAdminRepo{}, now)

	_, ok := g.Restore()
	assert.False(t, ok)
	assert.Nil(t, store.data)
}

func TestRestoreCorruptTokenDeleted(t *testing.T) {
	store := &memTokenStore{data: []byte("{not json")}
	g := newTestGate(store, &fakeAdminRepo{}, time.Now())

	tok, ok := g.Restore()
	assert.False(t, ok)
	assert.Nil(t, tok)
	assert.Nil(t, store.data)
}

func TestRestoreStoreErrorUnauthorized(t *testing.T) {
	store := &memTokenStore{err: errors.New("disk gone")}
	g := newTestGate(store, &fakeAdminRepo{}, time.Now())

	_, ok := g.Restore()
	assert.False(t, ok)
}

func TestLoginSuccess(t *testing.T) {
	now := time.Now()
	store := &memTokenStore{}
	admins := &fakeAdminRepo{admin: &domain.SysAdmin{ID: 42, Email: "admin@primehomes.mw", Name: "Admin"}}
	g := newTestGate(store, admins, now)

	tok, err := g.Login(context.Background(), "  Admin@Primehomes.MW ", "primehomes")
	require.NoError(t, err)
	assert.Equal(t, int64(42), tok.ID)
	assert.Equal(t, now, tok.LoginTime)

	// email is normalized, password hashed before the lookup
	assert.Equal(t, "admin@primehomes.mw", admins.lastEmail)
	assert.Equal(t, common.Sha256HashWithSalt("primehomes", common.GetSecretSalt()), admins.lastHashed)
	assert.Equal(t, int64(42), admins.touched)
	assert.NotNil(t, store.data)
}

func TestLoginThenRestore(t *testing.T) {
	now := time.Now()
	store := &memTokenStore{}
	admins := &fakeAdminRepo{admin: &domain.SysAdmin{ID: 7, Email: "admin@primehomes.mw", Name: "Admin"}}
	g := newTestGate(store, admins, now)

	_, err := g.Login(context.Background(), "admin@primehomes.mw", "primehomes")
	require.NoError(t, err)

	tok, ok := g.Restore()
	require.True(t, ok)
	assert.Equal(t, int64(7), tok.ID)

	// the same token read back a day later is rejected
	g.now = func() time.Time { return now.Add(Validity + time.Second) }
	_, ok = g.Restore()
	assert.False(t, ok)
}

func TestLoginInvalidCredentials(t *testing.T) {
	admins := &fakeAdminRepo{err: repository.ErrNoMatch}
	g := newTestGate(&memTokenStore{}, admins, time.Now())

	_, err := g.Login(context.Background(), "admin@primehomes.mw", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginStorageErrorDistinguishable(t *testing.T) {
	admins := &fakeAdminRepo{err: errors.New("connection refused")}
	g := newTestGate(&memTokenStore{}, admins, time.Now())

	_, err := g.Login(context.Background(), "admin@primehomes.mw", "primehomes")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrInvalidCredentials)
}

func TestLogout(t *testing.T) {
	store := &memTokenStore{data: storedToken(t, time.Now())}
	g := newTestGate(store, &fakeAdminRepo{}, time.Now())

	require.NoError(t, g.Logout())
	assert.Nil(t, store.data)

	_, ok := g.Restore()
	assert.False(t, ok)
}
