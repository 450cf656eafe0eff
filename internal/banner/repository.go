package banner

import "errors"

var ErrNotFound = errors.New("banner not found")

type Repository interface {
	Create(b Banner) (Banner, error)
	List() ([]Banner, error)
	ListActive() ([]Banner, error)
	Update(id int, b Banner) (Banner, error)
	SetActive(id int, active bool) error
	Delete(id int) error
}
