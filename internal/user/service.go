package user

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"time"

	"golang.org/x/crypto/bcrypt"
)

// Mailer is the slice of the mail transport the user flows need. Sends are
// fire-and-forget; implementations log their own failures.
type Mailer interface {
	Welcome(email, name string)
	PasswordReset(email, code string)
}

// OTPStore keeps password-reset codes with an expiry. Backed by redis so
// codes survive restarts and are shared across instances.
type OTPStore interface {
	Set(ctx context.Context, email, code string, ttl time.Duration) error
	Get(ctx context.Context, email string) (string, error)
	Delete(ctx context.Context, email string) error
}

const otpTTL = 10 * time.Minute

type Service struct {
	repo   Repository
	otps   OTPStore
	mailer Mailer
}

func NewService(repo Repository, otps OTPStore, mailer Mailer) *Service {
	return &Service{repo: repo, otps: otps, mailer: mailer}
}

func (s *Service) GetByID(id int) (User, error) {
	return s.repo.GetByID(id)
}

func (s *Service) List() ([]User, error) {
	return s.repo.List()
}

func (s *Service) Register(u User) (User, error) {
	if _, err := s.repo.GetByEmail(u.Email); err == nil {
		return User{}, ErrEmailExists
	} else if err != ErrNotFound {
		return User{}, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(u.Password), bcrypt.DefaultCost)
	if err != nil {
		return User{}, err
	}
	u.Password = string(hashed)

	created, err := s.repo.Create(u)
	if err != nil {
		return User{}, err
	}
	if s.mailer != nil {
		go s.mailer.Welcome(created.Email, created.Name)
	}
	return created, nil
}

func (s *Service) Authenticate(email, password string) (User, error) {
	u, err := s.repo.GetByEmail(email)
	if err != nil {
		return User{}, ErrInvalidCredentials
	}
	if u.IsBlocked {
		return User{}, ErrBlocked
	}
	if bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password)) != nil {
		return User{}, ErrInvalidCredentials
	}
	return u, nil
}

func (s *Service) UpdateProfile(id int, name, email string) (User, error) {
	existing, err := s.repo.GetByID(id)
	if err != nil {
		return User{}, err
	}
	if name != "" {
		existing.Name = name
	}
	if email != "" {
		existing.Email = email
	}
	existing.UpdatedAt = time.Now().UTC().Format(time.RFC3339)
	return s.repo.Update(id, existing)
}

func (s *Service) SetBlocked(id int, blocked bool) error {
	return s.repo.SetBlocked(id, blocked)
}

// RequestPasswordReset generates a 6-digit OTP valid for 10 minutes and
// mails it. An unknown email is not an error: the caller responds the same
// way either way so addresses cannot be probed.
func (s *Service) RequestPasswordReset(ctx context.Context, email string) error {
	u, err := s.repo.GetByEmail(email)
	if err == ErrNotFound {
		return nil
	}
	if err != nil {
		return err
	}

	code, err := generateOTP()
	if err != nil {
		return err
	}
	if err := s.otps.Set(ctx, u.Email, code, otpTTL); err != nil {
		return err
	}
	if s.mailer != nil {
		go s.mailer.PasswordReset(u.Email, code)
	}
	return nil
}

// ResetPassword consumes a valid OTP and replaces the password.
func (s *Service) ResetPassword(ctx context.Context, email, code, newPassword string) error {
	stored, err := s.otps.Get(ctx, email)
	if err != nil {
		return ErrInvalidOTP
	}
	if stored != code {
		return ErrInvalidOTP
	}

	u, err := s.repo.GetByEmail(email)
	if err != nil {
		return err
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	if err := s.repo.SetPassword(u.ID, string(hashed)); err != nil {
		return err
	}
	// consume the code so it cannot be replayed
	return s.otps.Delete(ctx, email)
}

func generateOTP() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()+100000), nil
}
