package cart

import "errors"

var (
	ErrUserNotFound = errors.New("user not found")
	ErrInvalidItem  = errors.New("invalid item")
)

// Service orchestrates cart operations. Order confirmation clears carts
// through ClearCart.
type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Add puts one unit of item/size into the cart.
func (s *Service) Add(userID int, itemID, size string) (Data, error) {
	if userID <= 0 || itemID == "" || size == "" {
		return nil, ErrInvalidItem
	}
	data, err := s.repo.Get(userID)
	if err != nil {
		return nil, err
	}
	if data[itemID] == nil {
		data[itemID] = make(map[string]int)
	}
	data[itemID][size]++
	if err := s.repo.Save(userID, data); err != nil {
		return nil, err
	}
	return data, nil
}

// Update sets the quantity for item/size; zero removes the entry.
func (s *Service) Update(userID int, itemID, size string, quantity int) (Data, error) {
	if userID <= 0 || itemID == "" || size == "" || quantity < 0 {
		return nil, ErrInvalidItem
	}
	data, err := s.repo.Get(userID)
	if err != nil {
		return nil, err
	}
	if quantity == 0 {
		if sizes, ok := data[itemID]; ok {
			delete(sizes, size)
			if len(sizes) == 0 {
				delete(data, itemID)
			}
		}
	} else {
		if data[itemID] == nil {
			data[itemID] = make(map[string]int)
		}
		data[itemID][size] = quantity
	}
	if err := s.repo.Save(userID, data); err != nil {
		return nil, err
	}
	return data, nil
}

func (s *Service) Get(userID int) (Data, error) {
	if userID <= 0 {
		return nil, ErrUserNotFound
	}
	return s.repo.Get(userID)
}

// ClearCart empties the cart after a confirmed purchase.
func (s *Service) ClearCart(userID int) error {
	if userID <= 0 {
		return ErrUserNotFound
	}
	return s.repo.Clear(userID)
}
