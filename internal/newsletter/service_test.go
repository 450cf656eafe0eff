package newsletter

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRepository struct {
	nextID int
	subs   map[string]*Subscriber
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{nextID: 1, subs: map[string]*Subscriber{}}
}

func (f *fakeRepository) Create(sub Subscriber) (Subscriber, error) {
	if _, ok := f.subs[sub.Email]; ok {
		return Subscriber{}, ErrAlreadySubscribed
	}
	sub.ID = f.nextID
	f.nextID++
	stored := sub
	f.subs[sub.Email] = &stored
	return sub, nil
}

func (f *fakeRepository) GetByEmail(email string) (Subscriber, error) {
	sub, ok := f.subs[email]
	if !ok {
		return Subscriber{}, ErrNotFound
	}
	return *sub, nil
}

func (f *fakeRepository) Reactivate(email, token string) error {
	sub, ok := f.subs[email]
	if !ok {
		return ErrNotFound
	}
	sub.IsActive = true
	sub.Token = token
	return nil
}

func (f *fakeRepository) DeactivateByToken(token string) (bool, error) {
	for _, sub := range f.subs {
		if sub.Token == token && sub.IsActive {
			sub.IsActive = false
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeRepository) List() ([]Subscriber, error) { return nil, nil }

func (f *fakeRepository) Delete(id int) error { return nil }

func newTestService(repo Repository) *Service {
	s := NewService(repo)
	s.now = func() time.Time { return time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC) }
	return s
}

func TestSubscribeNormalizesEmail(t *testing.T) {
	repo := newFakeRepository()
	s := newTestService(repo)

	sub, err := s.Subscribe("  Asha@Example.COM ")
	require.NoError(t, err)
	assert.Equal(t, "asha@example.com", sub.Email)
	assert.NotEmpty(t, sub.Token)
}

func TestSubscribeRejectsInvalidEmail(t *testing.T) {
	s := newTestService(newFakeRepository())

	_, err := s.Subscribe("not-an-email")
	assert.ErrorIs(t, err, ErrInvalidEmail)
}

func TestSubscribeTwiceFails(t *testing.T) {
	s := newTestService(newFakeRepository())

	_, err := s.Subscribe("asha@example.com")
	require.NoError(t, err)

	_, err = s.Subscribe("asha@example.com")
	assert.ErrorIs(t, err, ErrAlreadySubscribed)
}

func TestUnsubscribeAndResubscribe(t *testing.T) {
	repo := newFakeRepository()
	s := newTestService(repo)

	sub, err := s.Subscribe("asha@example.com")
	require.NoError(t, err)

	require.NoError(t, s.Unsubscribe(sub.Token))
	assert.False(t, repo.subs["asha@example.com"].IsActive)

	// a second unsubscribe with the same token reports not found
	assert.ErrorIs(t, s.Unsubscribe(sub.Token), ErrNotFound)

	// resubscribing reactivates with a fresh token
	again, err := s.Subscribe("asha@example.com")
	require.NoError(t, err)
	assert.True(t, again.IsActive)
	assert.NotEqual(t, sub.Token, again.Token)
}

func TestUnsubscribeUnknownToken(t *testing.T) {
	s := newTestService(newFakeRepository())

	assert.ErrorIs(t, s.Unsubscribe("bogus"), ErrNotFound)
}
