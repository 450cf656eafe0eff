package product

// Repository defines persistence operations for products and their stock.
type Repository interface {
	Create(p Product) (Product, error)
	GetByID(id int) (Product, error)
	List() ([]Product, error)
	Delete(id int) error

	// SetStock overwrites the stock count (admin stock edit).
	SetStock(id int, stock int) error

	// DeductStock conditionally decrements: the update only applies when at
	// least qty units remain, so stock can never go negative. The bool is
	// false when the floor blocked the decrement.
	DeductStock(id int, qty int) (bool, error)

	// AddStock increments stock, used when a cancelled order is restocked.
	AddStock(id int, qty int) error

	// ListLowStock returns products at or below the threshold.
	ListLowStock(threshold int) ([]Product, error)
}
