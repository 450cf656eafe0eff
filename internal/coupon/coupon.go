package coupon

import "time"

// Discount types.
const (
	TypePercentage = "percentage"
	TypeFixed      = "fixed"
)

// Coupon is a named discount rule. Codes are stored uppercase. MaxUses of 0
// means unlimited; MaxDiscount of 0 means an uncapped percentage.
type Coupon struct {
	ID             int       `json:"couponId"`
	Code           string    `json:"code"`
	Type           string    `json:"type"`
	Value          float64   `json:"value"`
	MinOrderAmount float64   `json:"minOrderAmount"`
	MaxDiscount    float64   `json:"maxDiscount"`
	MaxUses        int       `json:"maxUses"`
	UsedCount      int       `json:"usedCount"`
	ExpiryDate     time.Time `json:"expiryDate"`
	IsActive       bool      `json:"isActive"`
	Description    string    `json:"description"`
	CreatedAt      time.Time `json:"createdAt"`
}
