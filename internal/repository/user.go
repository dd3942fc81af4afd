package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"panel/internal/models"
)

type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	GetByRole(ctx context.Context, role string) ([]*models.User, error)
	UpdateProfile(ctx context.Context, id string, update models.ProfileUpdate) (*models.User, error)
	UpdateAvatar(ctx context.Context, id string, avatar string) (*models.User, error)
	UpdatePasswordHash(ctx context.Context, id string, hash string) error
	UpdateRole(ctx context.Context, id string, role string) error
}

type userRepository struct {
	db     *sqlx.DB
	logger *zap.Logger
}

func NewUserRepository(db *sqlx.DB, logger *zap.Logger) UserRepository {
	return &userRepository{db: db, logger: logger}
}

const userColumns = `id, username, password_hash, full_name, email, phone, location, avatar, role, created_at`

func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	if user.Role == "" {
		user.Role = models.RoleMember
	}
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now().UTC()
	}
	query := `INSERT INTO users (id, username, password_hash, full_name, email, phone, location, avatar, role, created_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.db.ExecContext(ctx, query, user.ID, user.Username, user.PasswordHash,
		user.FullName, user.Email, user.Phone, user.Location, user.Avatar, user.Role, user.CreatedAt)
	return err
}

func (r *userRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	var user models.User
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	if err := r.db.GetContext(ctx, &user, query, id); err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	query := `SELECT ` + userColumns + ` FROM users WHERE username = $1`
	if err := r.db.GetContext(ctx, &user, query, username); err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) GetByRole(ctx context.Context, role string) ([]*models.User, error) {
	var users []*models.User
	query := `SELECT ` + userColumns + ` FROM users WHERE role = $1`
	if err := r.db.SelectContext(ctx, &users, query, role); err != nil {
		return nil, err
	}
	return users, nil
}

// UpdateProfile overwrites only the fields present in the update; COALESCE
// keeps the stored value where the caller sent nothing.
func (r *userRepository) UpdateProfile(ctx context.Context, id string, update models.ProfileUpdate) (*models.User, error) {
	var user models.User
	query := `UPDATE users SET
	            full_name = COALESCE($2, full_name),
	            email     = COALESCE($3, email),
	            phone     = COALESCE($4, phone),
	            location  = COALESCE($5, location)
	          WHERE id = $1
	          RETURNING ` + userColumns
	err := r.db.QueryRowxContext(ctx, query, id,
		update.FullName, update.Email, update.Phone, update.Location).StructScan(&user)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) UpdateAvatar(ctx context.Context, id string, avatar string) (*models.User, error) {
	var user models.User
	query := `UPDATE users SET avatar = $2 WHERE id = $1 RETURNING ` + userColumns
	if err := r.db.QueryRowxContext(ctx, query, id, avatar).StructScan(&user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) UpdatePasswordHash(ctx context.Context, id string, hash string) error {
	result, err := r.db.ExecContext(ctx, `UPDATE users SET password_hash = $2 WHERE id = $1`, id, hash)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func (r *userRepository) UpdateRole(ctx context.Context, id string, role string) error {
	_, err := r.db.ExecContext(ctx, `UPDATE users SET role = $2 WHERE id = $1`, id, role)
	return err
}
