package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"usernotes/internal/database"
	"usernotes/internal/database/dto"
	"usernotes/internal/database/models"
)

type UserRepository interface {
	Create(ctx context.Context, in dto.UserInput) (*models.User, error)
	GetByID(ctx context.Context, id int64) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	Update(ctx context.Context, id int64, in dto.UserInput) (*models.User, error)
	Delete(ctx context.Context, id int64) (bool, error)
}

type userRepository struct {
	db      DBTX
	dialect database.Dialect
}

func NewUserRepository(db DBTX, dialect database.Dialect) UserRepository {
	return &userRepository{db: db, dialect: dialect}
}

// Create inserts a user. Callers check the email first; the unique index on
// users.email still rejects a concurrent duplicate with ErrDuplicateEmail.
func (r *userRepository) Create(ctx context.Context, in dto.UserInput) (*models.User, error) {
	user := models.User{Name: in.Name, Email: in.Email}
	query := r.dialect.Rebind(`
		INSERT INTO users (name, email)
		VALUES ($1, $2)
		RETURNING id`)
	err := r.db.QueryRowContext(ctx, query, in.Name, in.Email).Scan(&user.ID)
	if isUniqueViolation(err) {
		return nil, ErrDuplicateEmail
	}
	if err != nil {
		return nil, fmt.Errorf("error creating user: %w", err)
	}
	return &user, nil
}

func (r *userRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	query := r.dialect.Rebind(`SELECT id, name, email FROM users WHERE id = $1`)
	return r.getOne(ctx, query, id)
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	query := r.dialect.Rebind(`SELECT id, name, email FROM users WHERE email = $1`)
	return r.getOne(ctx, query, email)
}

func (r *userRepository) getOne(ctx context.Context, query string, arg any) (*models.User, error) {
	user := models.User{}
	err := r.db.QueryRowContext(ctx, query, arg).Scan(&user.ID, &user.Name, &user.Email)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("error getting user: %w", err)
	}
	return &user, nil
}

func (r *userRepository) Update(ctx context.Context, id int64, in dto.UserInput) (*models.User, error) {
	user := models.User{}
	query := r.dialect.Rebind(`
		UPDATE users
		SET name = $1, email = $2
		WHERE id = $3
		RETURNING id, name, email`)
	err := r.db.QueryRowContext(ctx, query, in.Name, in.Email, id).Scan(&user.ID, &user.Name, &user.Email)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return nil, ErrNotFound
	case isUniqueViolation(err):
		return nil, ErrDuplicateEmail
	case err != nil:
		return nil, fmt.Errorf("error updating user: %w", err)
	}
	return &user, nil
}

// Delete removes the user; its notes go with it through ON DELETE CASCADE.
func (r *userRepository) Delete(ctx context.Context, id int64) (bool, error) {
	query := r.dialect.Rebind(`DELETE FROM users WHERE id = $1`)
	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return false, fmt.Errorf("error deleting user: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("error getting rows affected: %w", err)
	}
	return rowsAffected > 0, nil
}
