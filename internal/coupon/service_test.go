package coupon

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRepository struct {
	coupons     map[string]*Coupon
	incrementOK bool
}

func newFakeRepository(coupons ...Coupon) *fakeRepository {
	repo := &fakeRepository{coupons: map[string]*Coupon{}, incrementOK: true}
	for i := range coupons {
		cp := coupons[i]
		repo.coupons[cp.Code] = &cp
	}
	return repo
}

func (f *fakeRepository) Create(cp Coupon) (Coupon, error) {
	if _, ok := f.coupons[cp.Code]; ok {
		return Coupon{}, ErrCodeExists
	}
	cp.ID = len(f.coupons) + 1
	f.coupons[cp.Code] = &cp
	return cp, nil
}

func (f *fakeRepository) GetByCode(code string) (Coupon, error) {
	cp, ok := f.coupons[code]
	if !ok {
		return Coupon{}, ErrNotFound
	}
	return *cp, nil
}

func (f *fakeRepository) List() ([]Coupon, error) { return nil, nil }

func (f *fakeRepository) Update(id int, cp Coupon) error { return nil }

func (f *fakeRepository) Delete(id int) error { return nil }

func (f *fakeRepository) SetActive(id int, active bool) error { return nil }

func (f *fakeRepository) IncrementUsage(code string) (bool, error) {
	cp, ok := f.coupons[code]
	if !ok {
		return false, nil
	}
	if cp.MaxUses > 0 && cp.UsedCount >= cp.MaxUses {
		return false, nil
	}
	cp.UsedCount++
	return true, nil
}

func newTestService(repo Repository) *Service {
	s := NewService(repo)
	s.now = func() time.Time { return time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC) }
	return s
}

func validCoupon() Coupon {
	return Coupon{
		Code:       "SAVE20",
		Type:       TypePercentage,
		Value:      20,
		IsActive:   true,
		ExpiryDate: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func TestValidatePercentageDiscount(t *testing.T) {
	s := newTestService(newFakeRepository(validCoupon()))

	discount, cp, err := s.Validate("SAVE20", 500)
	require.NoError(t, err)
	assert.Equal(t, float64(100), discount)
	assert.Equal(t, "SAVE20", cp.Code)
}

func TestValidatePercentageCappedByMaxDiscount(t *testing.T) {
	cp := validCoupon()
	cp.MaxDiscount = 100
	s := newTestService(newFakeRepository(cp))

	discount, _, err := s.Validate("SAVE20", 1000)
	require.NoError(t, err)
	assert.Equal(t, float64(100), discount, "20 percent of 1000 is 200 but the cap is 100")
}

func TestValidateFixedDiscountClampedToOrderAmount(t *testing.T) {
	cp := validCoupon()
	cp.Code = "FLAT50"
	cp.Type = TypeFixed
	cp.Value = 50
	s := newTestService(newFakeRepository(cp))

	discount, _, err := s.Validate("FLAT50", 30)
	require.NoError(t, err)
	assert.Equal(t, float64(30), discount)
}

func TestValidateUnknownCode(t *testing.T) {
	s := newTestService(newFakeRepository())

	_, _, err := s.Validate("NOPE", 100)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestValidateInactive(t *testing.T) {
	cp := validCoupon()
	cp.IsActive = false
	s := newTestService(newFakeRepository(cp))

	_, _, err := s.Validate("SAVE20", 500)
	assert.ErrorIs(t, err, ErrInactive)
}

func TestValidateExpired(t *testing.T) {
	cp := validCoupon()
	cp.ExpiryDate = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	s := newTestService(newFakeRepository(cp))

	_, _, err := s.Validate("SAVE20", 500)
	assert.ErrorIs(t, err, ErrExpired)
}

func TestValidateExpiryWinsOverUsageLimit(t *testing.T) {
	cp := validCoupon()
	cp.ExpiryDate = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	cp.MaxUses = 1
	cp.UsedCount = 1
	s := newTestService(newFakeRepository(cp))

	_, _, err := s.Validate("SAVE20", 500)
	assert.ErrorIs(t, err, ErrExpired)
}

func TestValidateUsageLimitReached(t *testing.T) {
	cp := validCoupon()
	cp.MaxUses = 10
	cp.UsedCount = 10
	s := newTestService(newFakeRepository(cp))

	_, _, err := s.Validate("SAVE20", 500)
	assert.ErrorIs(t, err, ErrUsageLimitReached)
}

func TestValidateMinimumNotMetReturnsCoupon(t *testing.T) {
	cp := validCoupon()
	cp.MinOrderAmount = 1000
	s := newTestService(newFakeRepository(cp))

	_, got, err := s.Validate("SAVE20", 500)
	assert.ErrorIs(t, err, ErrMinimumNotMet)
	assert.Equal(t, float64(1000), got.MinOrderAmount)
}

func TestValidateZeroMaxUsesMeansUnlimited(t *testing.T) {
	cp := validCoupon()
	cp.MaxUses = 0
	cp.UsedCount = 100000
	s := newTestService(newFakeRepository(cp))

	_, _, err := s.Validate("SAVE20", 500)
	assert.NoError(t, err)
}

func TestApplyIncrementsUsage(t *testing.T) {
	repo := newFakeRepository(validCoupon())
	s := newTestService(repo)

	require.NoError(t, s.Apply("SAVE20"))
	assert.Equal(t, 1, repo.coupons["SAVE20"].UsedCount)
}

func TestApplyExhaustedCode(t *testing.T) {
	cp := validCoupon()
	cp.MaxUses = 1
	cp.UsedCount = 1
	s := newTestService(newFakeRepository(cp))

	assert.ErrorIs(t, s.Apply("SAVE20"), ErrUsageLimitReached)
}

func TestApplyUnknownCode(t *testing.T) {
	s := newTestService(newFakeRepository())

	assert.ErrorIs(t, s.Apply("NOPE"), ErrNotFound)
}

func TestCreateNormalizesCode(t *testing.T) {
	repo := newFakeRepository()
	s := newTestService(repo)

	created, err := s.Create(Coupon{Code: "  welcome10 ", Type: TypeFixed, Value: 10})
	require.NoError(t, err)
	assert.Equal(t, "WELCOME10", created.Code)
}

func TestCreateRejectsUnknownType(t *testing.T) {
	s := newTestService(newFakeRepository())

	_, err := s.Create(Coupon{Code: "X", Type: "bogus", Value: 10})
	assert.Error(t, err)
}

func TestDiscountNegativeValueClampsToZero(t *testing.T) {
	cp := Coupon{Type: TypeFixed, Value: -5}
	assert.Equal(t, float64(0), Discount(cp, 100))
}
