package newsletter

import (
	"errors"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"
)

var ErrInvalidEmail = errors.New("invalid email address")

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo, now: time.Now}
}

// Subscribe adds the address to the list. Resubscribing a previously
// unsubscribed address reactivates it; an already active one is an error.
func (s *Service) Subscribe(email string) (Subscriber, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if _, err := mail.ParseAddress(email); err != nil {
		return Subscriber{}, ErrInvalidEmail
	}

	existing, err := s.repo.GetByEmail(email)
	if err == nil {
		if existing.IsActive {
			return Subscriber{}, ErrAlreadySubscribed
		}
		token := uuid.NewString()
		if err := s.repo.Reactivate(email, token); err != nil {
			return Subscriber{}, err
		}
		existing.IsActive = true
		existing.Token = token
		return existing, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return Subscriber{}, err
	}

	return s.repo.Create(Subscriber{
		Email:        email,
		Token:        uuid.NewString(),
		IsActive:     true,
		SubscribedAt: s.now(),
	})
}

// Unsubscribe deactivates the subscription matching the token. Unknown or
// already inactive tokens report not found.
func (s *Service) Unsubscribe(token string) error {
	ok, err := s.repo.DeactivateByToken(token)
	if err != nil {
		return err
	}
	if !ok {
		return ErrNotFound
	}
	return nil
}

func (s *Service) List() ([]Subscriber, error) {
	return s.repo.List()
}

func (s *Service) Delete(id int) error {
	return s.repo.Delete(id)
}
