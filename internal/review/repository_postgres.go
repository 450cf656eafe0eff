package review

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

const reviewColumns = `review_id, product_id, user_id, user_name, rating, title, comment, is_approved, helpful_count, created_at, updated_at`

func (r *PostgresRepository) Create(rv Review) (Review, error) {
	err := r.db.QueryRow(`INSERT INTO reviews (product_id, user_id, user_name, rating, title, comment, is_approved, helpful_count, created_at, updated_at)
        VALUES ($1,$2,$3,$4,$5,$6,TRUE,0,$7,$7)
        RETURNING review_id, is_approved, helpful_count`,
		rv.ProductID, rv.UserID, rv.UserName, rv.Rating, rv.Title, rv.Comment, rv.CreatedAt).
		Scan(&rv.ID, &rv.IsApproved, &rv.HelpfulCount)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
			return Review{}, ErrAlreadyReviewed
		}
		return Review{}, err
	}
	rv.UpdatedAt = rv.CreatedAt
	return rv, nil
}

func (r *PostgresRepository) GetByID(id int) (Review, error) {
	row := r.db.QueryRow(`SELECT `+reviewColumns+` FROM reviews WHERE review_id = $1`, id)
	return scanReview(row)
}

func (r *PostgresRepository) GetByUserAndProduct(userID, productID int) (Review, error) {
	row := r.db.QueryRow(`SELECT `+reviewColumns+` FROM reviews WHERE user_id = $1 AND product_id = $2`, userID, productID)
	return scanReview(row)
}

func (r *PostgresRepository) ListApprovedByProduct(productID int) ([]Review, error) {
	return r.query(`SELECT `+reviewColumns+` FROM reviews WHERE product_id = $1 AND is_approved ORDER BY created_at DESC`, productID)
}

func (r *PostgresRepository) ListByUser(userID int) ([]Review, error) {
	return r.query(`SELECT `+reviewColumns+` FROM reviews WHERE user_id = $1 ORDER BY created_at DESC`, userID)
}

func (r *PostgresRepository) ListAll() ([]Review, error) {
	return r.query(`SELECT ` + reviewColumns + ` FROM reviews ORDER BY created_at DESC`)
}

func (r *PostgresRepository) query(q string, args ...interface{}) ([]Review, error) {
	rows, err := r.db.Query(q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	reviews := make([]Review, 0)
	for rows.Next() {
		var rv Review
		if err := rows.Scan(&rv.ID, &rv.ProductID, &rv.UserID, &rv.UserName, &rv.Rating, &rv.Title,
			&rv.Comment, &rv.IsApproved, &rv.HelpfulCount, &rv.CreatedAt, &rv.UpdatedAt); err != nil {
			return nil, err
		}
		reviews = append(reviews, rv)
	}
	return reviews, rows.Err()
}

func (r *PostgresRepository) Update(id int, rv Review) (Review, error) {
	err := r.db.QueryRow(`UPDATE reviews SET rating = $2, title = $3, comment = $4, updated_at = $5
        WHERE review_id = $1
        RETURNING `+reviewColumns,
		id, rv.Rating, rv.Title, rv.Comment, rv.UpdatedAt).
		Scan(&rv.ID, &rv.ProductID, &rv.UserID, &rv.UserName, &rv.Rating, &rv.Title,
			&rv.Comment, &rv.IsApproved, &rv.HelpfulCount, &rv.CreatedAt, &rv.UpdatedAt)
	if err == sql.ErrNoRows {
		return Review{}, ErrNotFound
	}
	if err != nil {
		return Review{}, err
	}
	return rv, nil
}

func (r *PostgresRepository) SetApproved(id int, approved bool) error {
	return r.exec(`UPDATE reviews SET is_approved = $2 WHERE review_id = $1`, id, approved)
}

func (r *PostgresRepository) IncrementHelpful(id int) error {
	return r.exec(`UPDATE reviews SET helpful_count = helpful_count + 1 WHERE review_id = $1`, id)
}

func (r *PostgresRepository) Delete(id int) error {
	return r.exec(`DELETE FROM reviews WHERE review_id = $1`, id)
}

func (r *PostgresRepository) exec(q string, args ...interface{}) error {
	res, err := r.db.Exec(q, args...)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PostgresRepository) SummaryByProduct(productID int) (Summary, error) {
	var s Summary
	err := r.db.QueryRow(`SELECT COALESCE(AVG(rating), 0), COUNT(*)
        FROM reviews WHERE product_id = $1 AND is_approved`, productID).
		Scan(&s.AverageRating, &s.ReviewCount)
	if err != nil {
		return Summary{}, err
	}
	return s, nil
}

func scanReview(row *sql.Row) (Review, error) {
	var rv Review
	err := row.Scan(&rv.ID, &rv.ProductID, &rv.UserID, &rv.UserName, &rv.Rating, &rv.Title,
		&rv.Comment, &rv.IsApproved, &rv.HelpfulCount, &rv.CreatedAt, &rv.UpdatedAt)
	if err == sql.ErrNoRows {
		return Review{}, ErrNotFound
	}
	if err != nil {
		return Review{}, err
	}
	return rv, nil
}
