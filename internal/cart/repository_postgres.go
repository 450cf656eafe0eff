package cart

import (
	"database/sql"
	"encoding/json"
)

type PostgresRepository struct {
	db *sql.DB
}

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Get(userID int) (Data, error) {
	var raw []byte
	err := r.db.QueryRow(`SELECT cart_data FROM users WHERE user_id = $1`, userID).Scan(&raw)
	if err == sql.ErrNoRows {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}

	data := make(Data)
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &data); err != nil {
			return nil, err
		}
	}
	return data, nil
}

func (r *PostgresRepository) Save(userID int, data Data) error {
	raw, err := json.Marshal(data)
	if err != nil {
		return err
	}
	res, err := r.db.Exec(`UPDATE users SET cart_data = $2 WHERE user_id = $1`, userID, raw)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrUserNotFound
	}
	return nil
}

func (r *PostgresRepository) Clear(userID int) error {
	res, err := r.db.Exec(`UPDATE users SET cart_data = '{}' WHERE user_id = $1`, userID)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrUserNotFound
	}
	return nil
}
