package coupon

import (
	"errors"
	"math"
	"strings"
	"time"
)

var (
	ErrNotFound          = errors.New("invalid coupon code")
	ErrCodeExists        = errors.New("coupon code already exists")
	ErrInactive          = errors.New("coupon no longer active")
	ErrExpired           = errors.New("coupon has expired")
	ErrUsageLimitReached = errors.New("coupon usage limit reached")
	ErrMinimumNotMet     = errors.New("minimum order amount not met")
)

// Service provides coupon validation, redemption and admin management.
type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo, now: time.Now}
}

// Validate checks a code against an order subtotal and returns the discount.
// Checks run in fixed order: existence, active flag, expiry, usage cap,
// minimum amount. Expiry always wins over the remaining checks.
func (s *Service) Validate(code string, orderAmount float64) (float64, Coupon, error) {
	cp, err := s.repo.GetByCode(code)
	if err != nil {
		return 0, Coupon{}, err
	}
	if !cp.IsActive {
		return 0, Coupon{}, ErrInactive
	}
	if s.now().After(cp.ExpiryDate) {
		return 0, Coupon{}, ErrExpired
	}
	if cp.MaxUses > 0 && cp.UsedCount >= cp.MaxUses {
		return 0, Coupon{}, ErrUsageLimitReached
	}
	if orderAmount < cp.MinOrderAmount {
		// coupon returned so callers can surface the required minimum
		return 0, cp, ErrMinimumNotMet
	}
	return Discount(cp, orderAmount), cp, nil
}

// Discount computes the rupee discount a coupon yields on an order amount:
// percentage clamped to the max-discount cap when one is set, fixed taken
// flat, and the result clamped to [0, orderAmount] and rounded to the
// nearest whole unit.
func Discount(cp Coupon, orderAmount float64) float64 {
	var discount float64
	if cp.Type == TypePercentage {
		discount = orderAmount * cp.Value / 100
		if cp.MaxDiscount > 0 && discount > cp.MaxDiscount {
			discount = cp.MaxDiscount
		}
	} else {
		discount = cp.Value
	}
	if discount > orderAmount {
		discount = orderAmount
	}
	if discount < 0 {
		discount = 0
	}
	return math.Round(discount)
}

// Apply redeems one use of the coupon. The repository increment is guarded
// by the usage cap, so a code cannot be redeemed past maxUses even by
// concurrent checkouts.
func (s *Service) Apply(code string) error {
	ok, err := s.repo.IncrementUsage(code)
	if err != nil {
		return err
	}
	if !ok {
		// distinguish an exhausted code from an unknown one
		if _, err := s.repo.GetByCode(code); err != nil {
			return err
		}
		return ErrUsageLimitReached
	}
	return nil
}

func (s *Service) Create(cp Coupon) (Coupon, error) {
	cp.Code = strings.ToUpper(strings.TrimSpace(cp.Code))
	if cp.Code == "" {
		return Coupon{}, ErrNotFound
	}
	if cp.Type != TypePercentage && cp.Type != TypeFixed {
		return Coupon{}, errors.New("type must be percentage or fixed")
	}
	cp.CreatedAt = s.now()
	return s.repo.Create(cp)
}

func (s *Service) List() ([]Coupon, error) {
	return s.repo.List()
}

func (s *Service) Update(id int, cp Coupon) error {
	return s.repo.Update(id, cp)
}

func (s *Service) Delete(id int) error {
	return s.repo.Delete(id)
}

func (s *Service) SetActive(id int, active bool) error {
	return s.repo.SetActive(id, active)
}
