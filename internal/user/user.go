package user

// User is one store account.
type User struct {
	ID        int    `json:"userId"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Password  string `json:"password,omitempty"`
	IsBlocked bool   `json:"isBlocked"`
	CreatedAt string `json:"createdAt,omitempty"`
	UpdatedAt string `json:"updatedAt,omitempty"`
}
