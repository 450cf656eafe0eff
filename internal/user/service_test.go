package user

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type fakeRepository struct {
	mu     sync.Mutex
	nextID int
	users  map[int]*User
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{nextID: 1, users: map[int]*User{}}
}

func (f *fakeRepository) Create(u User) (User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u.ID = f.nextID
	f.nextID++
	stored := u
	f.users[u.ID] = &stored
	return u, nil
}

func (f *fakeRepository) GetByID(id int) (User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok {
		return User{}, ErrNotFound
	}
	return *u, nil
}

func (f *fakeRepository) GetByEmail(email string) (User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Email == email {
			return *u, nil
		}
	}
	return User{}, ErrNotFound
}

func (f *fakeRepository) List() ([]User, error) { return nil, nil }

func (f *fakeRepository) Update(id int, u User) (User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	stored, ok := f.users[id]
	if !ok {
		return User{}, ErrNotFound
	}
	*stored = u
	return u, nil
}

func (f *fakeRepository) SetPassword(id int, hashed string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok {
		return ErrNotFound
	}
	u.Password = hashed
	return nil
}

func (f *fakeRepository) SetBlocked(id int, blocked bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok {
		return ErrNotFound
	}
	u.IsBlocked = blocked
	return nil
}

type fakeOTPStore struct {
	mu    sync.Mutex
	codes map[string]string
}

func newFakeOTPStore() *fakeOTPStore {
	return &fakeOTPStore{codes: map[string]string{}}
}

func (f *fakeOTPStore) Set(ctx context.Context, email, code string, ttl time.Duration) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.codes[email] = code
	return nil
}

func (f *fakeOTPStore) Get(ctx context.Context, email string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	code, ok := f.codes[email]
	if !ok {
		return "", ErrInvalidOTP
	}
	return code, nil
}

func (f *fakeOTPStore) Delete(ctx context.Context, email string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.codes, email)
	return nil
}

func TestRegisterHashesPassword(t *testing.T) {
	repo := newFakeRepository()
	s := NewService(repo, newFakeOTPStore(), nil)

	created, err := s.Register(User{Name: "Asha", Email: "asha@example.com", Password: "secret-password"})
	require.NoError(t, err)

	stored := repo.users[created.ID]
	assert.NotEqual(t, "secret-password", stored.Password)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.Password), []byte("secret-password")))
}

func TestRegisterDuplicateEmail(t *testing.T) {
	repo := newFakeRepository()
	s := NewService(repo, newFakeOTPStore(), nil)

	_, err := s.Register(User{Email: "asha@example.com", Password: "secret-password"})
	require.NoError(t, err)

	_, err = s.Register(User{Email: "asha@example.com", Password: "another-password"})
	assert.ErrorIs(t, err, ErrEmailExists)
}

func TestAuthenticate(t *testing.T) {
	repo := newFakeRepository()
	s := NewService(repo, newFakeOTPStore(), nil)

	_, err := s.Register(User{Email: "asha@example.com", Password: "secret-password"})
	require.NoError(t, err)

	u, err := s.Authenticate("asha@example.com", "secret-password")
	require.NoError(t, err)
	assert.Equal(t, "asha@example.com", u.Email)

	_, err = s.Authenticate("asha@example.com", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = s.Authenticate("nobody@example.com", "secret-password")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthenticateBlockedAccount(t *testing.T) {
	repo := newFakeRepository()
	s := NewService(repo, newFakeOTPStore(), nil)

	created, err := s.Register(User{Email: "asha@example.com", Password: "secret-password"})
	require.NoError(t, err)
	require.NoError(t, s.SetBlocked(created.ID, true))

	_, err = s.Authenticate("asha@example.com", "secret-password")
	assert.ErrorIs(t, err, ErrBlocked)
}

func TestPasswordResetFlow(t *testing.T) {
	repo := newFakeRepository()
	otps := newFakeOTPStore()
	s := NewService(repo, otps, nil)

	_, err := s.Register(User{Email: "asha@example.com", Password: "secret-password"})
	require.NoError(t, err)

	ctx := context.Background()
	require.NoError(t, s.RequestPasswordReset(ctx, "asha@example.com"))

	code := otps.codes["asha@example.com"]
	require.Len(t, code, 6)

	require.NoError(t, s.ResetPassword(ctx, "asha@example.com", code, "new-password-123"))

	_, err = s.Authenticate("asha@example.com", "new-password-123")
	assert.NoError(t, err)

	// the code is consumed and cannot be replayed
	err = s.ResetPassword(ctx, "asha@example.com", code, "yet-another-pass")
	assert.ErrorIs(t, err, ErrInvalidOTP)
}

func TestResetPasswordWrongCode(t *testing.T) {
	repo := newFakeRepository()
	s := NewService(repo, newFakeOTPStore(), nil)

	_, err := s.Register(User{Email: "asha@example.com", Password: "secret-password"})
	require.NoError(t, err)

	ctx := context.Background()
	require.NoError(t, s.RequestPasswordReset(ctx, "asha@example.com"))

	err = s.ResetPassword(ctx, "asha@example.com", "000000", "new-password-123")
	assert.ErrorIs(t, err, ErrInvalidOTP)
}

func TestRequestPasswordResetUnknownEmailIsSilent(t *testing.T) {
	otps := newFakeOTPStore()
	s := NewService(newFakeRepository(), otps, nil)

	require.NoError(t, s.RequestPasswordReset(context.Background(), "nobody@example.com"))
	assert.Empty(t, otps.codes)
}
