package repository

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
	_ "github.com/lib/pq"

	"complaint-service/internal/model"
)

type UserRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

const userColumns = `id, first_name, last_name, email, password_hash, phone, address, role, status, last_login, created_at`

func (r *UserRepository) Create(user *model.User) error {
	query := `
		INSERT INTO users (id, first_name, last_name, email, password_hash, phone, address, role, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`
	_, err := r.db.Exec(query,
		user.ID,
		user.FirstName,
		user.LastName,
		user.Email,
		user.PasswordHash,
		user.Phone,
		user.Address,
		user.Role,
		user.Status,
		user.CreatedAt,
	)
	return err
}

func scanUser(row *sql.Row) (*model.User, error) {
	user := &model.User{}
	var phone, address sql.NullString
	var lastLogin sql.NullTime

	err := row.Scan(
		&user.ID,
		&user.FirstName,
		&user.LastName,
		&user.Email,
		&user.PasswordHash,
		&phone,
		&address,
		&user.Role,
		&user.Status,
		&lastLogin,
		&user.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	if phone.Valid {
		user.Phone = &phone.String
	}
	if address.Valid {
		user.Address = &address.String
	}
	if lastLogin.Valid {
		t := lastLogin.Time
		user.LastLogin = &t
	}

	return user, nil
}

func (r *UserRepository) FindByEmail(email string) (*model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`
	user, err := scanUser(r.db.QueryRow(query, email))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return user, nil
}

func (r *UserRepository) FindByID(id uuid.UUID) (*model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	user, err := scanUser(r.db.QueryRow(query, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return user, nil
}

func (r *UserRepository) EmailExists(email string) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM users WHERE email = $1)`
	var exists bool
	err := r.db.QueryRow(query, email).Scan(&exists)
	return exists, err
}

func (r *UserRepository) UpdateLastLogin(id uuid.UUID, at time.Time) error {
	query := `UPDATE users SET last_login = $2 WHERE id = $1`
	_, err := r.db.Exec(query, id, at)
	return err
}

func (r *UserRepository) UpdateStatus(id uuid.UUID, status model.UserStatus) (bool, error) {
	query := `UPDATE users SET status = $2 WHERE id = $1`
	result, err := r.db.Exec(query, id, status)
	if err != nil {
		return false, err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}
