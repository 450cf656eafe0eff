package order

import (
	"database/sql"
	"encoding/json"
	"time"
)

type PostgresRepository struct {
	db *sql.DB
}

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const orderColumns = `order_id, user_id, items, amount, address, status, payment_method, payment,
        payment_status, payment_details, discount_amount, coupon_code, delivery_fee,
        tracking_number, status_history, invoice_number, date`

func (r *PostgresRepository) Create(ord Order) (Order, error) {
	itemsJSON, err := json.Marshal(ord.Items)
	if err != nil {
		return Order{}, err
	}
	addressJSON, err := json.Marshal(ord.Address)
	if err != nil {
		return Order{}, err
	}
	detailsJSON, err := json.Marshal(ord.PaymentDetails)
	if err != nil {
		return Order{}, err
	}
	historyJSON, err := json.Marshal(ord.StatusHistory)
	if err != nil {
		return Order{}, err
	}

	err = r.db.QueryRow(`INSERT INTO orders
        (user_id, items, amount, address, status, payment_method, payment, payment_status,
         payment_details, discount_amount, coupon_code, delivery_fee, tracking_number,
         status_history, invoice_number, date)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16)
        RETURNING order_id`,
		ord.UserID, itemsJSON, ord.Amount, addressJSON, ord.Status, ord.PaymentMethod,
		ord.Payment, ord.PaymentStatus, detailsJSON, ord.DiscountAmount, ord.CouponCode,
		ord.DeliveryFee, ord.TrackingNumber, historyJSON, ord.InvoiceNumber, ord.Date).
		Scan(&ord.ID)
	if err != nil {
		return Order{}, err
	}
	return ord, nil
}

func (r *PostgresRepository) GetByID(id int) (Order, error) {
	row := r.db.QueryRow(`SELECT `+orderColumns+` FROM orders WHERE order_id = $1`, id)
	ord, err := scanOrder(row)
	if err == sql.ErrNoRows {
		return Order{}, ErrNotFound
	}
	return ord, err
}

func (r *PostgresRepository) List() ([]Order, error) {
	rows, err := r.db.Query(`SELECT ` + orderColumns + ` FROM orders ORDER BY date DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectOrders(rows)
}

func (r *PostgresRepository) ListByUser(userID int) ([]Order, error) {
	rows, err := r.db.Query(`SELECT `+orderColumns+` FROM orders WHERE user_id = $1 ORDER BY date DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectOrders(rows)
}

func (r *PostgresRepository) SetGatewayOrder(id int, gatewayOrderID string, attempts int) error {
	patch, err := json.Marshal(map[string]interface{}{
		"razorpayOrderId": gatewayOrderID,
		"attempts":        attempts,
	})
	if err != nil {
		return err
	}
	_, err = r.db.Exec(`UPDATE orders SET payment_details = payment_details || $2::jsonb
        WHERE order_id = $1`, id, patch)
	return err
}

// ConfirmPayment is a single conditional update: the WHERE clause on
// payment_status makes replayed confirmations no-ops, which is what keeps
// stock from being deducted twice.
func (r *PostgresRepository) ConfirmPayment(id int, gatewayPaymentID string, at time.Time) (bool, error) {
	fields := map[string]interface{}{"paidAt": at}
	if gatewayPaymentID != "" {
		fields["razorpayPaymentId"] = gatewayPaymentID
	}
	patch, err := json.Marshal(fields)
	if err != nil {
		return false, err
	}
	res, err := r.db.Exec(`UPDATE orders
        SET payment = TRUE, payment_status = $2, payment_details = payment_details || $3::jsonb
        WHERE order_id = $1 AND payment_status = $4`,
		id, PaymentPaid, patch, PaymentPending)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

func (r *PostgresRepository) CollectCOD(id int, at time.Time) (bool, error) {
	patch, err := json.Marshal(map[string]interface{}{"paidAt": at})
	if err != nil {
		return false, err
	}
	event, err := json.Marshal([]StatusEvent{{Status: "Payment Collected", Date: at, Note: "COD payment collected"}})
	if err != nil {
		return false, err
	}
	res, err := r.db.Exec(`UPDATE orders
        SET payment = TRUE, payment_status = $2,
            payment_details = payment_details || $3::jsonb,
            status_history = status_history || $4::jsonb
        WHERE order_id = $1 AND payment_status = $5`,
		id, PaymentCODCollected, patch, event, PaymentCODPending)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

func (r *PostgresRepository) MarkPaymentFailed(id int, reason string, at time.Time) error {
	patch, err := json.Marshal(map[string]interface{}{
		"failedReason": reason,
		"failedAt":     at,
	})
	if err != nil {
		return err
	}
	_, err = r.db.Exec(`UPDATE orders
        SET payment_status = $2, payment_details = payment_details || $3::jsonb
        WHERE order_id = $1 AND payment_status = $4`,
		id, PaymentFailed, patch, PaymentPending)
	return err
}

func (r *PostgresRepository) UpdateStatus(id int, status string, ev StatusEvent) error {
	event, err := json.Marshal([]StatusEvent{ev})
	if err != nil {
		return err
	}
	res, err := r.db.Exec(`UPDATE orders
        SET status = $2, status_history = status_history || $3::jsonb
        WHERE order_id = $1`, id, status, event)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PostgresRepository) HasDeliveredItem(userID, productID int) (bool, error) {
	var exists bool
	err := r.db.QueryRow(`SELECT EXISTS (
        SELECT 1 FROM orders, jsonb_array_elements(items) AS item
        WHERE user_id = $1 AND status = $2 AND (item->>'productId')::int = $3)`,
		userID, StatusDelivered, productID).Scan(&exists)
	return exists, err
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanOrder(row rowScanner) (Order, error) {
	var ord Order
	var itemsJSON, addressJSON, detailsJSON, historyJSON []byte
	err := row.Scan(&ord.ID, &ord.UserID, &itemsJSON, &ord.Amount, &addressJSON, &ord.Status,
		&ord.PaymentMethod, &ord.Payment, &ord.PaymentStatus, &detailsJSON,
		&ord.DiscountAmount, &ord.CouponCode, &ord.DeliveryFee, &ord.TrackingNumber,
		&historyJSON, &ord.InvoiceNumber, &ord.Date)
	if err != nil {
		return Order{}, err
	}
	if err := json.Unmarshal(itemsJSON, &ord.Items); err != nil {
		return Order{}, err
	}
	if err := json.Unmarshal(addressJSON, &ord.Address); err != nil {
		return Order{}, err
	}
	if err := json.Unmarshal(detailsJSON, &ord.PaymentDetails); err != nil {
		return Order{}, err
	}
	if err := json.Unmarshal(historyJSON, &ord.StatusHistory); err != nil {
		return Order{}, err
	}
	return ord, nil
}

func collectOrders(rows *sql.Rows) ([]Order, error) {
	orders := make([]Order, 0)
	for rows.Next() {
		ord, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, ord)
	}
	return orders, rows.Err()
}
