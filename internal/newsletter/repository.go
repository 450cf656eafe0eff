package newsletter

import "errors"

var (
	ErrNotFound          = errors.New("subscriber not found")
	ErrAlreadySubscribed = errors.New("email already subscribed")
)

type Repository interface {
	Create(sub Subscriber) (Subscriber, error)
	GetByEmail(email string) (Subscriber, error)
	Reactivate(email, token string) error
	DeactivateByToken(token string) (bool, error)
	List() ([]Subscriber, error)
	Delete(id int) error
}
