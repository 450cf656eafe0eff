package order

import "time"

// Repository defines persistence operations for orders. The payment
// transitions (ConfirmPayment, CollectCOD, MarkPaymentFailed) are guarded:
// they only apply when the order is still in the expected non-terminal
// payment status, so replayed confirmations affect nothing.
type Repository interface {
	Create(ord Order) (Order, error)
	GetByID(id int) (Order, error)
	List() ([]Order, error)
	ListByUser(userID int) ([]Order, error)

	// SetGatewayOrder stores the Razorpay order id and attempt count after
	// the gateway accepted the order.
	SetGatewayOrder(id int, gatewayOrderID string, attempts int) error

	// ConfirmPayment moves a pending order to paid. The returned bool is
	// false when the order was not in the pending state.
	ConfirmPayment(id int, gatewayPaymentID string, at time.Time) (bool, error)

	// CollectCOD moves a cod_pending order to cod_collected and appends the
	// collection history entry. False when the order was not cod_pending.
	CollectCOD(id int, at time.Time) (bool, error)

	// MarkPaymentFailed records a failure reason and timestamp. Only applies
	// while the order is still pending, never clobbers a settled payment.
	MarkPaymentFailed(id int, reason string, at time.Time) error

	// UpdateStatus sets the lifecycle status and appends the history event.
	UpdateStatus(id int, status string, ev StatusEvent) error

	// HasDeliveredItem reports whether the user has a delivered order
	// containing the product. Used to gate product reviews.
	HasDeliveredItem(userID, productID int) (bool, error)
}
