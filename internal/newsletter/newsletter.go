package newsletter

import "time"

// Subscriber is one mailing list entry. The token authenticates
// unsubscribe links without a login.
type Subscriber struct {
	ID           int       `json:"subscriberId"`
	Email        string    `json:"email"`
	Token        string    `json:"-"`
	IsActive     bool      `json:"isActive"`
	SubscribedAt time.Time `json:"subscribedAt"`
}
