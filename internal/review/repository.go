package review

type Repository interface {
	Create(rv Review) (Review, error)
	GetByID(id int) (Review, error)
	GetByUserAndProduct(userID, productID int) (Review, error)
	ListApprovedByProduct(productID int) ([]Review, error)
	ListByUser(userID int) ([]Review, error)
	ListAll() ([]Review, error)
	Update(id int, rv Review) (Review, error)
	SetApproved(id int, approved bool) error
	IncrementHelpful(id int) error
	Delete(id int) error
	SummaryByProduct(productID int) (Summary, error)
}
