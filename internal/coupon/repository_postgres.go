package coupon

import (
	"database/sql"
	"strings"

	"github.com/lib/pq"
)

type PostgresRepository struct {
	db *sql.DB
}

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const couponColumns = `coupon_id, code, type, value, min_order_amount, max_discount,
        max_uses, used_count, expiry_date, is_active, description, created_at`

func (r *PostgresRepository) Create(cp Coupon) (Coupon, error) {
	err := r.db.QueryRow(`INSERT INTO coupons
        (code, type, value, min_order_amount, max_discount, max_uses, expiry_date, is_active, description, created_at)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
        RETURNING coupon_id, used_count`,
		strings.ToUpper(cp.Code), cp.Type, cp.Value, cp.MinOrderAmount, cp.MaxDiscount,
		cp.MaxUses, cp.ExpiryDate, cp.IsActive, cp.Description, cp.CreatedAt).
		Scan(&cp.ID, &cp.UsedCount)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
			return Coupon{}, ErrCodeExists
		}
		return Coupon{}, err
	}
	cp.Code = strings.ToUpper(cp.Code)
	return cp, nil
}

func (r *PostgresRepository) GetByCode(code string) (Coupon, error) {
	row := r.db.QueryRow(`SELECT `+couponColumns+` FROM coupons WHERE code = $1`,
		strings.ToUpper(code))
	var cp Coupon
	err := row.Scan(&cp.ID, &cp.Code, &cp.Type, &cp.Value, &cp.MinOrderAmount, &cp.MaxDiscount,
		&cp.MaxUses, &cp.UsedCount, &cp.ExpiryDate, &cp.IsActive, &cp.Description, &cp.CreatedAt)
	if err == sql.ErrNoRows {
		return Coupon{}, ErrNotFound
	}
	if err != nil {
		return Coupon{}, err
	}
	return cp, nil
}

func (r *PostgresRepository) List() ([]Coupon, error) {
	rows, err := r.db.Query(`SELECT ` + couponColumns + ` FROM coupons ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	coupons := make([]Coupon, 0)
	for rows.Next() {
		var cp Coupon
		if err := rows.Scan(&cp.ID, &cp.Code, &cp.Type, &cp.Value, &cp.MinOrderAmount,
			&cp.MaxDiscount, &cp.MaxUses, &cp.UsedCount, &cp.ExpiryDate, &cp.IsActive,
			&cp.Description, &cp.CreatedAt); err != nil {
			return nil, err
		}
		coupons = append(coupons, cp)
	}
	return coupons, rows.Err()
}

func (r *PostgresRepository) Update(id int, cp Coupon) error {
	res, err := r.db.Exec(`UPDATE coupons
        SET code = $2, type = $3, value = $4, min_order_amount = $5, max_discount = $6,
            max_uses = $7, expiry_date = $8, description = $9
        WHERE coupon_id = $1`,
		id, strings.ToUpper(cp.Code), cp.Type, cp.Value, cp.MinOrderAmount, cp.MaxDiscount,
		cp.MaxUses, cp.ExpiryDate, cp.Description)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PostgresRepository) Delete(id int) error {
	res, err := r.db.Exec(`DELETE FROM coupons WHERE coupon_id = $1`, id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PostgresRepository) SetActive(id int, active bool) error {
	res, err := r.db.Exec(`UPDATE coupons SET is_active = $2 WHERE coupon_id = $1`, id, active)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PostgresRepository) IncrementUsage(code string) (bool, error) {
	res, err := r.db.Exec(`UPDATE coupons SET used_count = used_count + 1
        WHERE code = $1 AND (max_uses = 0 OR used_count < max_uses)`,
		strings.ToUpper(code))
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}
