package user

import "errors"

var (
	ErrNotFound           = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailExists        = errors.New("email already exists")
	ErrBlocked            = errors.New("account is blocked")
)

// Repository defines persistence operations for users.
type Repository interface {
	Create(u User) (User, error)
	GetByID(id int) (User, error)
	GetByEmail(email string) (User, error)
	List() ([]User, error)
	Update(id int, u User) (User, error)
	SetPassword(id int, hashed string) error
	SetBlocked(id int, blocked bool) error
}
