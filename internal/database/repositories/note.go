package repositories

import (
	"context"
	"database/sql"
	"fmt"

	"usernotes/internal/database"
	"usernotes/internal/database/dto"
	"usernotes/internal/database/models"
)

type NoteRepository interface {
	Create(ctx context.Context, userID int64, in dto.NoteInput) (*models.Note, error)
	GetAll(ctx context.Context, userID int64) ([]models.Note, error)
	Update(ctx context.Context, userID, noteID int64, in dto.NoteInput) (*models.Note, error)
	Delete(ctx context.Context, userID, noteID int64) (bool, error)
}

type noteRepository struct {
	db      DBTX
	dialect database.Dialect
}

func NewNoteRepository(db DBTX, dialect database.Dialect) NoteRepository {
	return &noteRepository{db: db, dialect: dialect}
}

// Create attaches a note to userID. A userID with no user row fails the
// foreign key and comes back as ErrUserNotFound.
func (r *noteRepository) Create(ctx context.Context, userID int64, in dto.NoteInput) (*models.Note, error) {
	note := models.Note{}
	query := r.dialect.Rebind(`
		INSERT INTO notes (content, user_id)
		VALUES ($1, $2)
		RETURNING id, content, created_at, user_id`)
	err := r.db.QueryRowContext(ctx, query, in.Content, userID).
		Scan(&note.ID, &note.Content, timestamp{&note.CreatedAt}, &note.UserID)
	if isForeignKeyViolation(err) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("error creating note: %w", err)
	}
	return &note, nil
}

// GetAll lists a user's notes in creation order. An unknown user simply has
// no notes.
func (r *noteRepository) GetAll(ctx context.Context, userID int64) ([]models.Note, error) {
	query := r.dialect.Rebind(`
		SELECT id, content, created_at, user_id
		FROM notes
		WHERE user_id = $1
		ORDER BY id`)
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("error querying notes: %w", err)
	}
	return scanNotes(rows)
}

// Update replaces the content of the note identified by both keys. Anything
// other than exactly one matching row rolls the change back.
func (r *noteRepository) Update(ctx context.Context, userID, noteID int64, in dto.NoteInput) (*models.Note, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("error starting transaction: %w", err)
	}
	defer tx.Rollback()

	query := r.dialect.Rebind(`
		UPDATE notes
		SET content = $1
		WHERE user_id = $2 AND id = $3
		RETURNING id, content, created_at, user_id`)
	rows, err := tx.QueryContext(ctx, query, in.Content, userID, noteID)
	if err != nil {
		return nil, fmt.Errorf("error updating note: %w", err)
	}
	notes, err := scanNotes(rows)
	if err != nil {
		return nil, err
	}

	switch len(notes) {
	case 0:
		return nil, ErrNotFound
	case 1:
	default:
		return nil, ErrMultipleRows
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("error committing note update: %w", err)
	}
	return &notes[0], nil
}

func (r *noteRepository) Delete(ctx context.Context, userID, noteID int64) (bool, error) {
	query := r.dialect.Rebind(`DELETE FROM notes WHERE user_id = $1 AND id = $2`)
	result, err := r.db.ExecContext(ctx, query, userID, noteID)
	if err != nil {
		return false, fmt.Errorf("error deleting note: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("error getting rows affected: %w", err)
	}
	return rowsAffected > 0, nil
}

func scanNotes(rows *sql.Rows) ([]models.Note, error) {
	defer rows.Close()

	notes := []models.Note{}
	for rows.Next() {
		var note models.Note
		err := rows.Scan(
			&note.ID,
			&note.Content,
			timestamp{&note.CreatedAt},
			&note.UserID,
		)
		if err != nil {
			return nil, fmt.Errorf("error scanning note: %w", err)
		}
		notes = append(notes, note)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating notes: %w", err)
	}
	return notes, nil
}
