package product

import (
	"errors"
	"time"
)

var (
	ErrNotFound          = errors.New("product not found")
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrInvalidQuantity   = errors.New("quantity must be positive")
)

// Service provides catalog and inventory operations. The stock methods are
// what the order flows call on confirmed purchase and cancellation.
type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Create(p Product) (Product, error) {
	if p.Name == "" || p.Price < 0 {
		return Product{}, errors.New("name required and price must be non-negative")
	}
	if p.Date.IsZero() {
		p.Date = time.Now().UTC()
	}
	return s.repo.Create(p)
}

func (s *Service) GetByID(id int) (Product, error) {
	return s.repo.GetByID(id)
}

func (s *Service) List() ([]Product, error) {
	return s.repo.List()
}

func (s *Service) Delete(id int) error {
	return s.repo.Delete(id)
}

func (s *Service) SetStock(id int, stock int) error {
	if stock < 0 {
		return ErrInvalidQuantity
	}
	return s.repo.SetStock(id, stock)
}

// DeductStock removes qty units from a product. Fails without writing when
// fewer than qty units remain.
func (s *Service) DeductStock(id int, qty int) error {
	if qty <= 0 {
		return ErrInvalidQuantity
	}
	ok, err := s.repo.DeductStock(id, qty)
	if err != nil {
		return err
	}
	if !ok {
		if _, err := s.repo.GetByID(id); err != nil {
			return err
		}
		return ErrInsufficientStock
	}
	return nil
}

// RestockStock returns qty units to a product after a cancellation.
func (s *Service) RestockStock(id int, qty int) error {
	if qty <= 0 {
		return ErrInvalidQuantity
	}
	return s.repo.AddStock(id, qty)
}

func (s *Service) ListLowStock(threshold int) ([]Product, error) {
	if threshold <= 0 {
		threshold = 10
	}
	return s.repo.ListLowStock(threshold)
}
