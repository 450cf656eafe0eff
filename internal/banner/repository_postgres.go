package banner

import "database/sql"

type PostgresRepository struct {
	db *sql.DB
}

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const bannerColumns = `banner_id, title, mobile_image, desktop_image, link, is_active, ord`

func (r *PostgresRepository) Create(b Banner) (Banner, error) {
	err := r.db.QueryRow(`INSERT INTO banners (title, mobile_image, desktop_image, link, is_active, ord)
        VALUES ($1,$2,$3,$4,$5,$6)
        RETURNING banner_id`,
		b.Title, b.MobileImage, b.DesktopImage, b.Link, b.IsActive, b.Ord).Scan(&b.ID)
	if err != nil {
		return Banner{}, err
	}
	return b, nil
}

func (r *PostgresRepository) List() ([]Banner, error) {
	return r.query(`SELECT ` + bannerColumns + ` FROM banners ORDER BY ord, banner_id`)
}

func (r *PostgresRepository) ListActive() ([]Banner, error) {
	return r.query(`SELECT ` + bannerColumns + ` FROM banners WHERE is_active ORDER BY ord, banner_id`)
}

func (r *PostgresRepository) query(q string) ([]Banner, error) {
	rows, err := r.db.Query(q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	banners := make([]Banner, 0)
	for rows.Next() {
		var b Banner
		if err := rows.Scan(&b.ID, &b.Title, &b.MobileImage, &b.DesktopImage, &b.Link, &b.IsActive, &b.Ord); err != nil {
			return nil, err
		}
		banners = append(banners, b)
	}
	return banners, rows.Err()
}

func (r *PostgresRepository) Update(id int, b Banner) (Banner, error) {
	err := r.db.QueryRow(`UPDATE banners SET title = $2, mobile_image = $3, desktop_image = $4, link = $5, ord = $6
        WHERE banner_id = $1
        RETURNING `+bannerColumns,
		id, b.Title, b.MobileImage, b.DesktopImage, b.Link, b.Ord).
		Scan(&b.ID, &b.Title, &b.MobileImage, &b.DesktopImage, &b.Link, &b.IsActive, &b.Ord)
	if err == sql.ErrNoRows {
		return Banner{}, ErrNotFound
	}
	if err != nil {
		return Banner{}, err
	}
	return b, nil
}

func (r *PostgresRepository) SetActive(id int, active bool) error {
	res, err := r.db.Exec(`UPDATE banners SET is_active = $2 WHERE banner_id = $1`, id, active)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PostgresRepository) Delete(id int) error {
	res, err := r.db.Exec(`DELETE FROM banners WHERE banner_id = $1`, id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}
