package review

import (
	"errors"
	"time"
)

var (
	ErrNotFound        = errors.New("review not found")
	ErrNotPurchased    = errors.New("product not purchased")
	ErrAlreadyReviewed = errors.New("product already reviewed")
	ErrInvalidRating   = errors.New("rating must be between 1 and 5")
	ErrNotOwner        = errors.New("not the review owner")
)

// PurchaseChecker reports whether the user received the product in a
// delivered order. Only verified buyers may review.
type PurchaseChecker interface {
	HasDeliveredPurchase(userID, productID int) (bool, error)
}

type Service struct {
	repo      Repository
	purchases PurchaseChecker
	now       func() time.Time
}

func NewService(repo Repository, purchases PurchaseChecker) *Service {
	return &Service{repo: repo, purchases: purchases, now: time.Now}
}

// CanReview reports whether the user may review the product: they must have
// a delivered order containing it and no existing review for it.
func (s *Service) CanReview(userID, productID int) (bool, error) {
	purchased, err := s.purchases.HasDeliveredPurchase(userID, productID)
	if err != nil {
		return false, err
	}
	if !purchased {
		return false, nil
	}
	_, err = s.repo.GetByUserAndProduct(userID, productID)
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return false, err
	}
	return true, nil
}

func (s *Service) Add(rv Review) (Review, error) {
	if rv.Rating < 1 || rv.Rating > 5 {
		return Review{}, ErrInvalidRating
	}
	purchased, err := s.purchases.HasDeliveredPurchase(rv.UserID, rv.ProductID)
	if err != nil {
		return Review{}, err
	}
	if !purchased {
		return Review{}, ErrNotPurchased
	}
	rv.CreatedAt = s.now()
	rv.UpdatedAt = rv.CreatedAt
	return s.repo.Create(rv)
}

func (s *Service) Update(reviewID, userID int, rating int, title, comment string) (Review, error) {
	if rating < 1 || rating > 5 {
		return Review{}, ErrInvalidRating
	}
	existing, err := s.repo.GetByID(reviewID)
	if err != nil {
		return Review{}, err
	}
	if existing.UserID != userID {
		return Review{}, ErrNotOwner
	}
	existing.Rating = rating
	existing.Title = title
	existing.Comment = comment
	existing.UpdatedAt = s.now()
	return s.repo.Update(reviewID, existing)
}

// Delete removes the caller's own review. Admin deletion goes through
// AdminDelete and skips the ownership check.
func (s *Service) Delete(reviewID, userID int) error {
	existing, err := s.repo.GetByID(reviewID)
	if err != nil {
		return err
	}
	if existing.UserID != userID {
		return ErrNotOwner
	}
	return s.repo.Delete(reviewID)
}

func (s *Service) AdminDelete(reviewID int) error {
	return s.repo.Delete(reviewID)
}

func (s *Service) Moderate(reviewID int, approved bool) error {
	return s.repo.SetApproved(reviewID, approved)
}

func (s *Service) MarkHelpful(reviewID int) error {
	return s.repo.IncrementHelpful(reviewID)
}

func (s *Service) ListByProduct(productID int) ([]Review, Summary, error) {
	reviews, err := s.repo.ListApprovedByProduct(productID)
	if err != nil {
		return nil, Summary{}, err
	}
	summary, err := s.repo.SummaryByProduct(productID)
	if err != nil {
		return nil, Summary{}, err
	}
	return reviews, summary, nil
}

func (s *Service) ListByUser(userID int) ([]Review, error) {
	return s.repo.ListByUser(userID)
}

func (s *Service) ListAll() ([]Review, error) {
	return s.repo.ListAll()
}
