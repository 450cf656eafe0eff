package product

import (
	"database/sql"

	"github.com/lib/pq"
)

type PostgresRepository struct {
	db *sql.DB
}

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const productColumns = `product_id, name, description, price, images, category, sub_category,
        sizes, bestseller, stock, date`

func (r *PostgresRepository) Create(p Product) (Product, error) {
	err := r.db.QueryRow(`INSERT INTO products
        (name, description, price, images, category, sub_category, sizes, bestseller, stock, date)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
        RETURNING product_id`,
		p.Name, p.Description, p.Price, pq.Array(p.Images), p.Category, p.SubCategory,
		pq.Array(p.Sizes), p.Bestseller, p.Stock, p.Date).
		Scan(&p.ID)
	if err != nil {
		return Product{}, err
	}
	return p, nil
}

func (r *PostgresRepository) GetByID(id int) (Product, error) {
	row := r.db.QueryRow(`SELECT `+productColumns+` FROM products WHERE product_id = $1`, id)
	p, err := scanProduct(row)
	if err == sql.ErrNoRows {
		return Product{}, ErrNotFound
	}
	return p, err
}

func (r *PostgresRepository) List() ([]Product, error) {
	rows, err := r.db.Query(`SELECT ` + productColumns + ` FROM products ORDER BY date DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectProducts(rows)
}

func (r *PostgresRepository) Delete(id int) error {
	res, err := r.db.Exec(`DELETE FROM products WHERE product_id = $1`, id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PostgresRepository) SetStock(id int, stock int) error {
	res, err := r.db.Exec(`UPDATE products SET stock = $2 WHERE product_id = $1`, id, stock)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

// DeductStock is the guarded decrement: the stock >= qty predicate keeps the
// count from ever crossing zero, even under concurrent checkouts.
func (r *PostgresRepository) DeductStock(id int, qty int) (bool, error) {
	res, err := r.db.Exec(`UPDATE products SET stock = stock - $2
        WHERE product_id = $1 AND stock >= $2`, id, qty)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

func (r *PostgresRepository) AddStock(id int, qty int) error {
	res, err := r.db.Exec(`UPDATE products SET stock = stock + $2 WHERE product_id = $1`, id, qty)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PostgresRepository) ListLowStock(threshold int) ([]Product, error) {
	rows, err := r.db.Query(`SELECT `+productColumns+` FROM products
        WHERE stock <= $1 ORDER BY stock ASC`, threshold)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectProducts(rows)
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanProduct(row rowScanner) (Product, error) {
	var p Product
	err := row.Scan(&p.ID, &p.Name, &p.Description, &p.Price, pq.Array(&p.Images),
		&p.Category, &p.SubCategory, pq.Array(&p.Sizes), &p.Bestseller, &p.Stock, &p.Date)
	if err != nil {
		return Product{}, err
	}
	return p, nil
}

func collectProducts(rows *sql.Rows) ([]Product, error) {
	products := make([]Product, 0)
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, rows.Err()
}
