package user

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

const userColumns = `user_id, name, email, password, is_blocked, created_at, updated_at`

func (r *PostgresRepository) Create(u User) (User, error) {
	err := r.db.QueryRow(`INSERT INTO users (name, email, password, cart_data, is_blocked, created_at, updated_at)
        VALUES ($1,$2,$3,'{}',FALSE,$4,$5)
        RETURNING user_id`,
		u.Name, u.Email, u.Password, u.CreatedAt, u.UpdatedAt).Scan(&u.ID)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
			return User{}, ErrEmailExists
		}
		return User{}, err
	}
	return u, nil
}

func (r *PostgresRepository) GetByID(id int) (User, error) {
	row := r.db.QueryRow(`SELECT `+userColumns+` FROM users WHERE user_id = $1`, id)
	return scanUser(row)
}

func (r *PostgresRepository) GetByEmail(email string) (User, error) {
	row := r.db.QueryRow(`SELECT `+userColumns+` FROM users WHERE email = $1`, email)
	return scanUser(row)
}

func (r *PostgresRepository) List() ([]User, error) {
	rows, err := r.db.Query(`SELECT ` + userColumns + ` FROM users ORDER BY user_id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := make([]User, 0)
	for rows.Next() {
		var u User
		if err := rows.Scan(&u.ID, &u.Name, &u.Email, &u.Password, &u.IsBlocked, &u.CreatedAt, &u.UpdatedAt); err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

func (r *PostgresRepository) Update(id int, u User) (User, error) {
	err := r.db.QueryRow(`UPDATE users SET name = $2, email = $3, updated_at = $4
        WHERE user_id = $1
        RETURNING `+userColumns,
		id, u.Name, u.Email, u.UpdatedAt).
		Scan(&u.ID, &u.Name, &u.Email, &u.Password, &u.IsBlocked, &u.CreatedAt, &u.UpdatedAt)
	if err == sql.ErrNoRows {
		return User{}, ErrNotFound
	}
	if err != nil {
		return User{}, err
	}
	return u, nil
}

func (r *PostgresRepository) SetPassword(id int, hashed string) error {
	res, err := r.db.Exec(`UPDATE users SET password = $2 WHERE user_id = $1`, id, hashed)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PostgresRepository) SetBlocked(id int, blocked bool) error {
	res, err := r.db.Exec(`UPDATE users SET is_blocked = $2 WHERE user_id = $1`, id, blocked)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

func scanUser(row *sql.Row) (User, error) {
	var u User
	err := row.Scan(&u.ID, &u.Name, &u.Email, &u.Password, &u.IsBlocked, &u.CreatedAt, &u.UpdatedAt)
	if err == sql.ErrNoRows {
		return User{}, ErrNotFound
	}
	if err != nil {
		return User{}, err
	}
	return u, nil
}
