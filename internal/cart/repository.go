package cart

// Data maps product id -> size -> quantity, mirroring the jsonb cart_data
// column on users.
type Data map[string]map[string]int

// Repository defines persistence operations for user carts.
type Repository interface {
	Get(userID int) (Data, error)
	Save(userID int, data Data) error
	Clear(userID int) error
}
