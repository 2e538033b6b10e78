package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"contact-api/internal/domain"
)

// UserRepository define el contrato de persistencia para usuarios y sus telefonos.
type UserRepository interface {
	Create(ctx context.Context, user domain.User) error
	GetByID(ctx context.Context, id string) (domain.User, error)
	GetByEmail(ctx context.Context, email string) (domain.User, error)
	List(ctx context.Context) ([]domain.User, error)
	UpdateLogin(ctx context.Context, id, token string, at time.Time) error
}

// PgUserRepository implementa UserRepository usando pgxpool.
type PgUserRepository struct {
	pool *pgxpool.Pool
}

func NewPgUserRepository(pool *pgxpool.Pool) *PgUserRepository {
	return &PgUserRepository{pool: pool}
}

// Create inserta el usuario y sus telefonos en una sola transaccion.
func (r *PgUserRepository) Create(ctx context.Context, user domain.User) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	const insertUser = `
		INSERT INTO users (id, name, email, password_hash, created, last_login, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	if _, err := tx.Exec(ctx, insertUser,
		user.ID,
		user.Name,
		user.Email,
		user.PasswordHash,
		user.Created,
		user.LastLogin,
		user.IsActive,
	); err != nil {
		return err
	}

	const insertPhone = `
		INSERT INTO phones (user_id, number, city_code, country_code)
		VALUES ($1, $2, $3, $4)
	`
	for _, p := range user.Phones {
		if _, err := tx.Exec(ctx, insertPhone, user.ID, p.Number, p.CityCode, p.CountryCode); err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

func (r *PgUserRepository) GetByID(ctx context.Context, id string) (domain.User, error) {
	const query = `
		SELECT id, name, email, password_hash, created, modified, last_login, token, is_active
		FROM users
		WHERE id = $1
	`
	user, err := scanUser(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		return domain.User{}, err
	}
	phones, err := r.phonesByUser(ctx, user.ID)
	if err != nil {
		return domain.User{}, err
	}
	user.Phones = phones
	return user, nil
}

func (r *PgUserRepository) GetByEmail(ctx context.Context, email string) (domain.User, error) {
	const query = `
		SELECT id, name, email, password_hash, created, modified, last_login, token, is_active
		FROM users
		WHERE email = $1
	`
	user, err := scanUser(r.pool.QueryRow(ctx, query, email))
	if err != nil {
		return domain.User{}, err
	}
	phones, err := r.phonesByUser(ctx, user.ID)
	if err != nil {
		return domain.User{}, err
	}
	user.Phones = phones
	return user, nil
}

func (r *PgUserRepository) List(ctx context.Context) ([]domain.User, error) {
	const query = `
		SELECT id, name, email, password_hash, created, modified, last_login, token, is_active
		FROM users
		ORDER BY created
	`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := make([]domain.User, 0)
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		user.Phones = []domain.Phone{}
		users = append(users, user)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	const phonesQuery = `
		SELECT user_id, number, city_code, country_code
		FROM phones
	`
	phoneRows, err := r.pool.Query(ctx, phonesQuery)
	if err != nil {
		return nil, err
	}
	defer phoneRows.Close()

	byUser := make(map[string][]domain.Phone)
	for phoneRows.Next() {
		var userID string
		var p domain.Phone
		if err := phoneRows.Scan(&userID, &p.Number, &p.CityCode, &p.CountryCode); err != nil {
			return nil, err
		}
		byUser[userID] = append(byUser[userID], p)
	}
	if err := phoneRows.Err(); err != nil {
		return nil, err
	}

	for i := range users {
		if phones, ok := byUser[users[i].ID]; ok {
			users[i].Phones = phones
		}
	}
	return users, nil
}

// UpdateLogin guarda el token de sesion y marca last_login/modified.
func (r *PgUserRepository) UpdateLogin(ctx context.Context, id, token string, at time.Time) error {
	const query = `
		UPDATE users
		SET token = $2, last_login = $3, modified = $3
		WHERE id = $1
	`
	ct, err := r.pool.Exec(ctx, query, id, token, at)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *PgUserRepository) phonesByUser(ctx context.Context, userID string) ([]domain.Phone, error) {
	const query = `
		SELECT number, city_code, country_code
		FROM phones
		WHERE user_id = $1
	`
	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	phones := make([]domain.Phone, 0)
	for rows.Next() {
		var p domain.Phone
		if err := rows.Scan(&p.Number, &p.CityCode, &p.CountryCode); err != nil {
			return nil, err
		}
		phones = append(phones, p)
	}
	return phones, rows.Err()
}

func scanUser(row pgx.Row) (domain.User, error) {
	var u domain.User
	err := row.Scan(
		&u.ID,
		&u.Name,
		&u.Email,
		&u.PasswordHash,
		&u.Created,
		&u.Modified,
		&u.LastLogin,
		&u.Token,
		&u.IsActive,
	)
	return u, err
}
