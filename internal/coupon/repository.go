package coupon

// Repository defines persistence operations for coupons.
type Repository interface {
	Create(cp Coupon) (Coupon, error)
	GetByCode(code string) (Coupon, error)
	List() ([]Coupon, error)
	Update(id int, cp Coupon) error
	Delete(id int) error
	SetActive(id int, active bool) error

	// IncrementUsage bumps used_count by one, but only while the usage cap
	// is not exhausted. The returned bool is false when the cap blocked the
	// increment. A single guarded statement, so concurrent checkouts cannot
	// both take the last remaining use.
	IncrementUsage(code string) (bool, error)
}
