package repositories

import (
	"context"
	"fmt"

	"usernotes/internal/database"
	"usernotes/internal/database/models"
)

type SearchRepository interface {
	SearchUsers(ctx context.Context, substring string) ([]models.User, error)
}

type searchRepository struct {
	db      DBTX
	dialect database.Dialect
}

func NewSearchRepository(db DBTX, dialect database.Dialect) SearchRepository {
	return &searchRepository{db: db, dialect: dialect}
}

// SearchUsers returns, in insertion order, every user whose name or email
// contains substring. Matching is case-sensitive on both dialects; an empty
// substring matches everyone.
func (s *searchRepository) SearchUsers(ctx context.Context, substring string) ([]models.User, error) {
	query := s.dialect.Rebind(`
		SELECT id, name, email
		FROM users
		WHERE ` + s.dialect.Contains("name", "$1") + ` OR ` + s.dialect.Contains("email", "$1") + `
		ORDER BY id`)

	rows, err := s.db.QueryContext(ctx, query, substring)
	if err != nil {
		return nil, fmt.Errorf("error searching users: %w", err)
	}
	defer rows.Close()

	users := []models.User{}
	for rows.Next() {
		var user models.User
		if err := rows.Scan(&user.ID, &user.Name, &user.Email); err != nil {
			return nil, fmt.Errorf("error scanning user: %w", err)
		}
		users = append(users, user)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating users: %w", err)
	}
	return users, nil
}
