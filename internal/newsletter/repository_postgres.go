package newsletter

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

func (r *PostgresRepository) Create(sub Subscriber) (Subscriber, error) {
	err := r.db.QueryRow(`INSERT INTO newsletter_subscribers (email, token, is_active, subscribed_at)
        VALUES ($1,$2,TRUE,$3)
        RETURNING subscriber_id`,
		sub.Email, sub.Token, sub.SubscribedAt).Scan(&sub.ID)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
			return Subscriber{}, ErrAlreadySubscribed
		}
		return Subscriber{}, err
	}
	return sub, nil
}

func (r *PostgresRepository) GetByEmail(email string) (Subscriber, error) {
	var sub Subscriber
	err := r.db.QueryRow(`SELECT subscriber_id, email, token, is_active, subscribed_at
        FROM newsletter_subscribers WHERE email = $1`, email).
		Scan(&sub.ID, &sub.Email, &sub.Token, &sub.IsActive, &sub.SubscribedAt)
	if err == sql.ErrNoRows {
		return Subscriber{}, ErrNotFound
	}
	if err != nil {
		return Subscriber{}, err
	}
	return sub, nil
}

// Reactivate flips a previously unsubscribed address back on with a fresh
// token.
func (r *PostgresRepository) Reactivate(email, token string) error {
	res, err := r.db.Exec(`UPDATE newsletter_subscribers SET is_active = TRUE, token = $2 WHERE email = $1`, email, token)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PostgresRepository) DeactivateByToken(token string) (bool, error) {
	res, err := r.db.Exec(`UPDATE newsletter_subscribers SET is_active = FALSE WHERE token = $1 AND is_active`, token)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *PostgresRepository) List() ([]Subscriber, error) {
	rows, err := r.db.Query(`SELECT subscriber_id, email, token, is_active, subscribed_at
        FROM newsletter_subscribers ORDER BY subscribed_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	subs := make([]Subscriber, 0)
	for rows.Next() {
		var sub Subscriber
		if err := rows.Scan(&sub.ID, &sub.Email, &sub.Token, &sub.IsActive, &sub.SubscribedAt); err != nil {
			return nil, err
		}
		subs = append(subs, sub)
	}
	return subs, rows.Err()
}

func (r *PostgresRepository) Delete(id int) error {
	res, err := r.db.Exec(`DELETE FROM newsletter_subscribers WHERE subscriber_id = $1`, id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}
