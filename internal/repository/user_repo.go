package repository

import (
	"database/sql"

	"github.com/jmoiron/sqlx"

	"github.com/TanzilStore/store_api/internal/models"
)

// UserRepository handles data access for dashboard accounts.
type UserRepository struct {
	db *sqlx.DB
}

// NewUserRepository creates a new UserRepository.
func NewUserRepository(db *sqlx.DB) *UserRepository {
	return &UserRepository{db: db}
}

// GetAll returns the full user collection, newest first.
func (r *UserRepository) GetAll() ([]models.User, error) {
	const q = `SELECT * FROM users ORDER BY created_at DESC, id`
	users := []models.User{}
	if err := r.db.Select(&users, q); err != nil {
		return nil, err
	}
	return users, nil
}

// GetByID returns a single user by id.
func (r *UserRepository) GetByID(id string) (*models.User, error) {
	const q = `SELECT * FROM users WHERE id = $1 LIMIT 1`
	var u models.User
	if err := r.db.Get(&u, q, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, sql.ErrNoRows
		}
		return nil, err
	}
	return &u, nil
}

// GetByEmail returns a single user by email.
func (r *UserRepository) GetByEmail(email string) (*models.User, error) {
	const q = `SELECT * FROM users WHERE email = $1 LIMIT 1`
	var u models.User
	if err := r.db.Get(&u, q, email); err != nil {
		if err == sql.ErrNoRows {
			return nil, sql.ErrNoRows
		}
		return nil, err
	}
	return &u, nil
}

// Create inserts a new user.
func (r *UserRepository) Create(user *models.User) error {
	const q = `
        INSERT INTO users (id, name, email, phone, role, is_active, avatar, password_hash)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
        RETURNING created_at, updated_at`

	return r.db.QueryRowx(q,
		user.ID,
		user.Name,
		user.Email,
		user.Phone,
		user.Role,
		user.IsActive,
		user.Avatar,
		user.PasswordHash,
	).Scan(&user.CreatedAt, &user.UpdatedAt)
}

// UpdateLastLogin stamps the last successful login time.
func (r *UserRepository) UpdateLastLogin(id string) error {
	_, err := r.db.Exec(`UPDATE users SET last_login = NOW(), updated_at = NOW() WHERE id = $1`, id)
	return err
}
