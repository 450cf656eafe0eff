package order

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Payment methods accepted at checkout.
const (
	MethodCOD      = "COD"
	MethodStripe   = "Stripe"
	MethodRazorpay = "Razorpay"
)

// Payment statuses. paid, failed, refunded and cod_collected are terminal:
// once an order reaches one of them no payment transition may touch it again.
const (
	PaymentPending      = "pending"
	PaymentPaid         = "paid"
	PaymentFailed       = "failed"
	PaymentRefunded     = "refunded"
	PaymentCODPending   = "cod_pending"
	PaymentCODCollected = "cod_collected"
)

// Lifecycle statuses.
const (
	StatusPlaced         = "Order Placed"
	StatusPacking        = "Packing"
	StatusShipped        = "Shipped"
	StatusOutForDelivery = "Out for delivery"
	StatusDelivered      = "Delivered"
	StatusCancelled      = "Cancelled"
)

// transitions lists the statuses an order may move into from its current
// status. Anything not listed is rejected, including backward moves.
var transitions = map[string][]string{
	StatusPlaced:         {StatusPacking, StatusShipped, StatusCancelled},
	StatusPacking:        {StatusShipped, StatusCancelled},
	StatusShipped:        {StatusOutForDelivery},
	StatusOutForDelivery: {StatusDelivered},
	StatusDelivered:      {},
	StatusCancelled:      {},
}

// CanTransition reports whether an order in status from may move to status to.
func CanTransition(from, to string) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// TerminalPayment reports whether a payment status permits no further
// payment transitions.
func TerminalPayment(status string) bool {
	switch status {
	case PaymentPaid, PaymentFailed, PaymentRefunded, PaymentCODCollected:
		return true
	}
	return false
}

// Item is one purchased line: a snapshot of the product at checkout time.
type Item struct {
	ProductID int     `json:"productId"`
	Name      string  `json:"name"`
	Size      string  `json:"size"`
	Quantity  int     `json:"quantity"`
	Price     float64 `json:"price"`
	Image     string  `json:"image"`
}

// Address is the shipping address snapshot stored on the order.
type Address struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Street    string `json:"street"`
	City      string `json:"city"`
	State     string `json:"state"`
	Zipcode   string `json:"zipcode"`
	Country   string `json:"country"`
	Phone     string `json:"phone"`
}

// StatusEvent is one entry of the append-only status history.
type StatusEvent struct {
	Status string    `json:"status"`
	Date   time.Time `json:"date"`
	Note   string    `json:"note"`
}

// PaymentDetails holds gateway correlation ids and failure bookkeeping.
type PaymentDetails struct {
	RazorpayOrderID   string     `json:"razorpayOrderId,omitempty"`
	RazorpayPaymentID string     `json:"razorpayPaymentId,omitempty"`
	FailedReason      string     `json:"failedReason,omitempty"`
	PaidAt            *time.Time `json:"paidAt,omitempty"`
	FailedAt          *time.Time `json:"failedAt,omitempty"`
	Attempts          int        `json:"attempts,omitempty"`
}

// Order represents one checkout attempt and its lifecycle.
type Order struct {
	ID             int            `json:"orderId"`
	UserID         int            `json:"userId"`
	Items          []Item         `json:"items"`
	Amount         float64        `json:"amount"`
	Address        Address        `json:"address"`
	Status         string         `json:"status"`
	PaymentMethod  string         `json:"paymentMethod"`
	Payment        bool           `json:"payment"`
	PaymentStatus  string         `json:"paymentStatus"`
	PaymentDetails PaymentDetails `json:"paymentDetails"`
	DiscountAmount float64        `json:"discountAmount"`
	CouponCode     string         `json:"couponCode"`
	DeliveryFee    float64        `json:"deliveryFee"`
	TrackingNumber string         `json:"trackingNumber"`
	StatusHistory  []StatusEvent  `json:"statusHistory"`
	InvoiceNumber  string         `json:"invoiceNumber"`
	Date           time.Time      `json:"date"`
}

// NewInvoiceNumber generates an INV-<8digits>-<4chars> invoice number from
// the millisecond timestamp plus a random suffix. Assigned once at creation.
func NewInvoiceNumber(now time.Time) string {
	ts := strconv.FormatInt(now.UnixMilli(), 10)
	if len(ts) > 8 {
		ts = ts[len(ts)-8:]
	}
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:4])
	return fmt.Sprintf("INV-%s-%s", ts, suffix)
}
