package order

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

var (
	ErrNotFound          = errors.New("order not found")
	ErrNotOwner          = errors.New("not authorized")
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrAlreadyProcessed  = errors.New("payment already processed")
	ErrAlreadyCollected  = errors.New("payment already collected")
	ErrNotCOD            = errors.New("not a cod order")
	ErrPaymentFailed     = errors.New("payment failed")
	ErrEmptyOrder        = errors.New("order has no items")
)

// CheckoutLine is one Stripe checkout session line item. UnitAmount is in
// minor currency units.
type CheckoutLine struct {
	Name       string
	UnitAmount int64
	Quantity   int64
}

// CheckoutRequest describes the checkout session handed to Stripe.
type CheckoutRequest struct {
	Lines      []CheckoutLine
	Currency   string
	SuccessURL string
	CancelURL  string
}

// GatewayOrder is the slice of a Razorpay order this service cares about.
type GatewayOrder struct {
	ID       string
	Status   string
	Receipt  string
	Attempts int
}

// StripePayments creates hosted checkout sessions and returns the redirect URL.
type StripePayments interface {
	CreateCheckoutSession(ctx context.Context, req CheckoutRequest) (string, error)
}

// RazorpayPayments creates and fetches gateway orders.
type RazorpayPayments interface {
	CreateOrder(ctx context.Context, amountMinor int64, currency, receipt string) (GatewayOrder, error)
	FetchOrder(ctx context.Context, gatewayOrderID string) (GatewayOrder, error)
}

// StockKeeper adjusts product stock. Deduction refuses to cross the zero
// floor; both directions are per-item and best-effort from this package's
// point of view.
type StockKeeper interface {
	DeductStock(productID, qty int) error
	RestockStock(productID, qty int) error
}

// CartClearer empties a user's cart after a confirmed purchase.
type CartClearer interface {
	ClearCart(userID int) error
}

// Notifier delivers customer mails. Implementations log and swallow their
// own failures; the service always calls them in a goroutine so a slow or
// dead mail server never blocks an order.
type Notifier interface {
	OrderConfirmation(ord Order)
	StatusUpdate(ord Order, status string)
}

// Logger matches the subset of log.Logger the service uses for side-effect
// failures that must not fail the request.
type Logger interface {
	Printf(format string, v ...interface{})
}

// Deps bundles the collaborators the order service needs besides its own
// repository.
type Deps struct {
	Stock       StockKeeper
	Carts       CartClearer
	Stripe      StripePayments
	Razorpay    RazorpayPayments
	Notifier    Notifier
	Logger      Logger
	Currency    string
	DeliveryFee float64
	FrontendURL string
}

// Service implements order placement, payment reconciliation and the
// post-purchase status lifecycle.
type Service struct {
	repo Repository
	deps Deps
	now  func() time.Time
}

func NewService(repo Repository, deps Deps) *Service {
	if deps.Currency == "" {
		deps.Currency = "inr"
	}
	return &Service{repo: repo, deps: deps, now: time.Now}
}

// PlaceRequest carries the checkout payload shared by all payment methods.
type PlaceRequest struct {
	UserID         int
	Items          []Item
	Amount         float64
	Address        Address
	CouponCode     string
	DiscountAmount float64
}

func (s *Service) newOrder(req PlaceRequest, method, paymentStatus, historyNote string) Order {
	now := s.now()
	return Order{
		UserID:         req.UserID,
		Items:          req.Items,
		Amount:         req.Amount,
		Address:        req.Address,
		Status:         StatusPlaced,
		PaymentMethod:  method,
		Payment:        false,
		PaymentStatus:  paymentStatus,
		DiscountAmount: req.DiscountAmount,
		CouponCode:     req.CouponCode,
		DeliveryFee:    s.deps.DeliveryFee,
		StatusHistory:  []StatusEvent{{Status: StatusPlaced, Date: now, Note: historyNote}},
		InvoiceNumber:  NewInvoiceNumber(now),
		Date:           now,
	}
}

func (s *Service) validatePlace(req PlaceRequest) error {
	if req.UserID <= 0 {
		return ErrNotOwner
	}
	if len(req.Items) == 0 {
		return ErrEmptyOrder
	}
	if req.Amount < 0 {
		return fmt.Errorf("%w: negative amount", ErrEmptyOrder)
	}
	return nil
}

// PlaceCOD persists a cash-on-delivery order, deducts stock immediately,
// clears the cart and fires the confirmation mail.
func (s *Service) PlaceCOD(req PlaceRequest) (Order, error) {
	if err := s.validatePlace(req); err != nil {
		return Order{}, err
	}
	ord, err := s.repo.Create(s.newOrder(req, MethodCOD, PaymentCODPending, "COD order placed"))
	if err != nil {
		return Order{}, err
	}
	s.deductStock(ord.Items)
	s.clearCart(ord.UserID)
	go s.deps.Notifier.OrderConfirmation(ord)
	return ord, nil
}

// PlaceStripe persists a pending order and builds a checkout session with
// one line per product plus a delivery fee line. Stock is not deducted
// until the payment is verified.
func (s *Service) PlaceStripe(ctx context.Context, req PlaceRequest, origin string) (Order, string, error) {
	if err := s.validatePlace(req); err != nil {
		return Order{}, "", err
	}
	ord, err := s.repo.Create(s.newOrder(req, MethodStripe, PaymentPending, "Awaiting payment"))
	if err != nil {
		return Order{}, "", err
	}

	if origin == "" {
		origin = s.deps.FrontendURL
	}
	checkout := CheckoutRequest{
		Currency:   s.deps.Currency,
		SuccessURL: fmt.Sprintf("%s/verify?success=true&orderId=%d", origin, ord.ID),
		CancelURL:  fmt.Sprintf("%s/verify?success=false&orderId=%d", origin, ord.ID),
	}
	for _, item := range ord.Items {
		checkout.Lines = append(checkout.Lines, CheckoutLine{
			Name:       item.Name,
			UnitAmount: toMinorUnits(item.Price),
			Quantity:   int64(item.Quantity),
		})
	}
	checkout.Lines = append(checkout.Lines, CheckoutLine{
		Name:       "Delivery Charges",
		UnitAmount: toMinorUnits(s.deps.DeliveryFee),
		Quantity:   1,
	})

	url, err := s.deps.Stripe.CreateCheckoutSession(ctx, checkout)
	if err != nil {
		if ferr := s.repo.MarkPaymentFailed(ord.ID, err.Error(), s.now()); ferr != nil {
			s.logf("order %d: mark stripe failure: %v", ord.ID, ferr)
		}
		return Order{}, "", fmt.Errorf("stripe session: %w", err)
	}
	return ord, url, nil
}

// PlaceRazorpay persists a pending order and creates the gateway order with
// the local order id as receipt. Gateway rejection marks the order failed
// but keeps it around.
func (s *Service) PlaceRazorpay(ctx context.Context, req PlaceRequest) (Order, GatewayOrder, error) {
	if err := s.validatePlace(req); err != nil {
		return Order{}, GatewayOrder{}, err
	}
	ord, err := s.repo.Create(s.newOrder(req, MethodRazorpay, PaymentPending, "Awaiting payment"))
	if err != nil {
		return Order{}, GatewayOrder{}, err
	}

	gw, err := s.deps.Razorpay.CreateOrder(ctx, toMinorUnits(ord.Amount),
		strings.ToUpper(s.deps.Currency), strconv.Itoa(ord.ID))
	if err != nil {
		if ferr := s.repo.MarkPaymentFailed(ord.ID, err.Error(), s.now()); ferr != nil {
			s.logf("order %d: mark razorpay failure: %v", ord.ID, ferr)
		}
		return Order{}, GatewayOrder{}, fmt.Errorf("razorpay order: %w", err)
	}
	if err := s.repo.SetGatewayOrder(ord.ID, gw.ID, gw.Attempts); err != nil {
		return Order{}, GatewayOrder{}, err
	}
	ord.PaymentDetails.RazorpayOrderID = gw.ID
	ord.PaymentDetails.Attempts = gw.Attempts
	return ord, gw, nil
}

// VerifyStripe reconciles the checkout callback. A cancelled payment keeps
// the order with paymentStatus=failed; a confirmed one transitions
// pending -> paid exactly once, then deducts stock and clears the cart.
func (s *Service) VerifyStripe(orderID int, success bool, userID int) error {
	ord, err := s.repo.GetByID(orderID)
	if err != nil {
		return err
	}
	if !success {
		if err := s.repo.MarkPaymentFailed(orderID, "Payment cancelled", s.now()); err != nil {
			return err
		}
		return ErrPaymentFailed
	}

	ok, err := s.repo.ConfirmPayment(orderID, "", s.now())
	if err != nil {
		return err
	}
	if !ok {
		return ErrAlreadyProcessed
	}

	s.deductStock(ord.Items)
	s.clearCart(userID)
	ord.Payment = true
	ord.PaymentStatus = PaymentPaid
	go s.deps.Notifier.OrderConfirmation(ord)
	return nil
}

// VerifyRazorpay fetches the gateway order, whose receipt carries the local
// order id, and reconciles it the same way.
func (s *Service) VerifyRazorpay(ctx context.Context, userID int, gatewayOrderID string) error {
	gw, err := s.deps.Razorpay.FetchOrder(ctx, gatewayOrderID)
	if err != nil {
		return fmt.Errorf("razorpay fetch: %w", err)
	}
	orderID, err := strconv.Atoi(gw.Receipt)
	if err != nil {
		return ErrNotFound
	}

	if gw.Status != "paid" {
		if err := s.repo.MarkPaymentFailed(orderID, "Payment not completed", s.now()); err != nil {
			return err
		}
		return ErrPaymentFailed
	}

	ok, err := s.repo.ConfirmPayment(orderID, gw.ID, s.now())
	if err != nil {
		return err
	}
	if !ok {
		return ErrAlreadyProcessed
	}

	ord, err := s.repo.GetByID(orderID)
	if err != nil {
		return err
	}
	s.deductStock(ord.Items)
	s.clearCart(userID)
	go s.deps.Notifier.OrderConfirmation(ord)
	return nil
}

// MarkCODCollected settles a cash-on-delivery order. Admin only. The second
// call on the same order fails: CollectCOD only applies from cod_pending.
func (s *Service) MarkCODCollected(orderID int) error {
	ord, err := s.repo.GetByID(orderID)
	if err != nil {
		return err
	}
	if ord.PaymentMethod != MethodCOD {
		return ErrNotCOD
	}
	ok, err := s.repo.CollectCOD(orderID, s.now())
	if err != nil {
		return err
	}
	if !ok {
		return ErrAlreadyCollected
	}
	return nil
}

// UpdateStatus moves an order through the lifecycle. The transition table
// rejects backward or unknown moves instead of accepting any string.
func (s *Service) UpdateStatus(orderID int, status string) error {
	ord, err := s.repo.GetByID(orderID)
	if err != nil {
		return err
	}
	if !CanTransition(ord.Status, status) {
		return ErrInvalidTransition
	}
	ev := StatusEvent{Status: status, Date: s.now(), Note: "Status updated to " + status}
	if err := s.repo.UpdateStatus(orderID, status, ev); err != nil {
		return err
	}
	go s.deps.Notifier.StatusUpdate(ord, status)
	return nil
}

// Cancel lets the owning customer cancel before shipping. Items go back
// into stock only when they were taken: at COD placement or after a
// confirmed gateway payment. A pending or failed gateway order never
// deducted anything.
func (s *Service) Cancel(orderID, userID int) error {
	ord, err := s.repo.GetByID(orderID)
	if err != nil {
		return err
	}
	if ord.UserID != userID {
		return ErrNotOwner
	}
	switch ord.Status {
	case StatusShipped, StatusOutForDelivery, StatusDelivered, StatusCancelled:
		return ErrInvalidTransition
	}

	ev := StatusEvent{Status: StatusCancelled, Date: s.now(), Note: "Order cancelled by customer"}
	if err := s.repo.UpdateStatus(orderID, StatusCancelled, ev); err != nil {
		return err
	}
	if ord.PaymentMethod == MethodCOD || ord.Payment {
		for _, item := range ord.Items {
			if err := s.deps.Stock.RestockStock(item.ProductID, item.Quantity); err != nil {
				s.logf("order %d: restock product %d: %v", orderID, item.ProductID, err)
			}
		}
	}
	go s.deps.Notifier.StatusUpdate(ord, StatusCancelled)
	return nil
}

func (s *Service) GetByID(orderID int) (Order, error) {
	return s.repo.GetByID(orderID)
}

func (s *Service) List() ([]Order, error) {
	return s.repo.List()
}

func (s *Service) ListByUser(userID int) ([]Order, error) {
	if userID <= 0 {
		return nil, ErrNotOwner
	}
	return s.repo.ListByUser(userID)
}

// HasDeliveredPurchase reports whether the user received the product in a
// delivered order. The review service gates on this.
func (s *Service) HasDeliveredPurchase(userID, productID int) (bool, error) {
	return s.repo.HasDeliveredItem(userID, productID)
}

func (s *Service) deductStock(items []Item) {
	for _, item := range items {
		if err := s.deps.Stock.DeductStock(item.ProductID, item.Quantity); err != nil {
			s.logf("stock deduction for product %d failed: %v", item.ProductID, err)
		}
	}
}

func (s *Service) clearCart(userID int) {
	if err := s.deps.Carts.ClearCart(userID); err != nil {
		s.logf("clear cart for user %d failed: %v", userID, err)
	}
}

func (s *Service) logf(format string, v ...interface{}) {
	if s.deps.Logger != nil {
		s.deps.Logger.Printf(format, v...)
	}
}

func toMinorUnits(amount float64) int64 {
	return int64(math.Round(amount * 100))
}
