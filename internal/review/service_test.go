package review

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRepository struct {
	nextID  int
	reviews map[int]*Review
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{nextID: 1, reviews: map[int]*Review{}}
}

func (f *fakeRepository) Create(rv Review) (Review, error) {
	for _, existing := range f.reviews {
		if existing.UserID == rv.UserID && existing.ProductID == rv.ProductID {
			return Review{}, ErrAlreadyReviewed
		}
	}
	rv.ID = f.nextID
	rv.IsApproved = true
	f.nextID++
	stored := rv
	f.reviews[rv.ID] = &stored
	return rv, nil
}

func (f *fakeRepository) GetByID(id int) (Review, error) {
	rv, ok := f.reviews[id]
	if !ok {
		return Review{}, ErrNotFound
	}
	return *rv, nil
}

func (f *fakeRepository) GetByUserAndProduct(userID, productID int) (Review, error) {
	for _, rv := range f.reviews {
		if rv.UserID == userID && rv.ProductID == productID {
			return *rv, nil
		}
	}
	return Review{}, ErrNotFound
}

func (f *fakeRepository) ListApprovedByProduct(productID int) ([]Review, error) {
	out := make([]Review, 0)
	for _, rv := range f.reviews {
		if rv.ProductID == productID && rv.IsApproved {
			out = append(out, *rv)
		}
	}
	return out, nil
}

func (f *fakeRepository) ListByUser(userID int) ([]Review, error) { return nil, nil }

func (f *fakeRepository) ListAll() ([]Review, error) { return nil, nil }

func (f *fakeRepository) Update(id int, rv Review) (Review, error) {
	stored, ok := f.reviews[id]
	if !ok {
		return Review{}, ErrNotFound
	}
	*stored = rv
	return rv, nil
}

func (f *fakeRepository) SetApproved(id int, approved bool) error {
	rv, ok := f.reviews[id]
	if !ok {
		return ErrNotFound
	}
	rv.IsApproved = approved
	return nil
}

func (f *fakeRepository) IncrementHelpful(id int) error {
	rv, ok := f.reviews[id]
	if !ok {
		return ErrNotFound
	}
	rv.HelpfulCount++
	return nil
}

func (f *fakeRepository) Delete(id int) error {
	if _, ok := f.reviews[id]; !ok {
		return ErrNotFound
	}
	delete(f.reviews, id)
	return nil
}

func (f *fakeRepository) SummaryByProduct(productID int) (Summary, error) {
	var sum, count int
	for _, rv := range f.reviews {
		if rv.ProductID == productID && rv.IsApproved {
			sum += rv.Rating
			count++
		}
	}
	if count == 0 {
		return Summary{}, nil
	}
	return Summary{AverageRating: float64(sum) / float64(count), ReviewCount: count}, nil
}

type fakePurchases struct {
	delivered map[[2]int]bool
}

func (f fakePurchases) HasDeliveredPurchase(userID, productID int) (bool, error) {
	return f.delivered[[2]int{userID, productID}], nil
}

func newTestService(repo Repository, delivered ...[2]int) *Service {
	purchases := fakePurchases{delivered: map[[2]int]bool{}}
	for _, d := range delivered {
		purchases.delivered[d] = true
	}
	s := NewService(repo, purchases)
	s.now = func() time.Time { return time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC) }
	return s
}

func TestAddRequiresDeliveredPurchase(t *testing.T) {
	s := newTestService(newFakeRepository())

	_, err := s.Add(Review{UserID: 7, ProductID: 1, Rating: 5})
	assert.ErrorIs(t, err, ErrNotPurchased)
}

func TestAddForDeliveredPurchase(t *testing.T) {
	s := newTestService(newFakeRepository(), [2]int{7, 1})

	created, err := s.Add(Review{UserID: 7, ProductID: 1, Rating: 4, Comment: "Fits well"})
	require.NoError(t, err)
	assert.True(t, created.IsApproved)
	assert.Equal(t, 4, created.Rating)
}

func TestAddRejectsSecondReview(t *testing.T) {
	s := newTestService(newFakeRepository(), [2]int{7, 1})

	_, err := s.Add(Review{UserID: 7, ProductID: 1, Rating: 4})
	require.NoError(t, err)

	_, err = s.Add(Review{UserID: 7, ProductID: 1, Rating: 2})
	assert.ErrorIs(t, err, ErrAlreadyReviewed)
}

func TestAddRejectsOutOfRangeRating(t *testing.T) {
	s := newTestService(newFakeRepository(), [2]int{7, 1})

	_, err := s.Add(Review{UserID: 7, ProductID: 1, Rating: 0})
	assert.ErrorIs(t, err, ErrInvalidRating)
	_, err = s.Add(Review{UserID: 7, ProductID: 1, Rating: 6})
	assert.ErrorIs(t, err, ErrInvalidRating)
}

func TestCanReview(t *testing.T) {
	s := newTestService(newFakeRepository(), [2]int{7, 1})

	ok, err := s.CanReview(7, 1)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = s.CanReview(7, 2)
	require.NoError(t, err)
	assert.False(t, ok, "product 2 was never delivered to user 7")

	_, err = s.Add(Review{UserID: 7, ProductID: 1, Rating: 5})
	require.NoError(t, err)

	ok, err = s.CanReview(7, 1)
	require.NoError(t, err)
	assert.False(t, ok, "already reviewed")
}

func TestUpdateByNonOwnerFails(t *testing.T) {
	s := newTestService(newFakeRepository(), [2]int{7, 1})

	created, err := s.Add(Review{UserID: 7, ProductID: 1, Rating: 5})
	require.NoError(t, err)

	_, err = s.Update(created.ID, 999, 1, "", "bad")
	assert.ErrorIs(t, err, ErrNotOwner)
}

func TestModerationHidesReview(t *testing.T) {
	repo := newFakeRepository()
	s := newTestService(repo, [2]int{7, 1})

	created, err := s.Add(Review{UserID: 7, ProductID: 1, Rating: 5})
	require.NoError(t, err)

	require.NoError(t, s.Moderate(created.ID, false))

	reviews, summary, err := s.ListByProduct(1)
	require.NoError(t, err)
	assert.Empty(t, reviews)
	assert.Equal(t, 0, summary.ReviewCount)
}
