package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/luct-faculty/reporting-api/internal/models"
)

// ErrClassReferenced signals a delete blocked by reports referencing the class.
var ErrClassReferenced = errors.New("class referenced by existing reports")

// ClassRepository manages persistence for classes.
type ClassRepository struct {
	db *sqlx.DB
}

// NewClassRepository constructs a new class repository.
func NewClassRepository(db *sqlx.DB) *ClassRepository {
	return &ClassRepository{db: db}
}

// List returns classes matching the optional name search.
func (r *ClassRepository) List(ctx context.Context, filter models.ClassFilter) ([]models.Class, error) {
	const query = `
SELECT class_id, class_name, venue, updated_at
FROM classes
WHERE LOWER(class_name) LIKE $1
ORDER BY class_name ASC`
	search := "%" + strings.ToLower(filter.Search) + "%"
	var classes []models.Class
	if err := r.db.SelectContext(ctx, &classes, query, search); err != nil {
		return nil, fmt.Errorf("list classes: %w", err)
	}
	return classes, nil
}

// FindByID returns a class record by ID.
func (r *ClassRepository) FindByID(ctx context.Context, id int64) (*models.Class, error) {
	const query = `SELECT class_id, class_name, venue, updated_at FROM classes WHERE class_id = $1`
	var class models.Class
	if err := r.db.GetContext(ctx, &class, query, id); err != nil {
		return nil, err
	}
	return &class, nil
}

// Exists checks whether a class row exists.
func (r *ClassRepository) Exists(ctx context.Context, id int64) (bool, error) {
	const query = `SELECT 1 FROM classes WHERE class_id = $1 LIMIT 1`
	var exists int
	if err := r.db.GetContext(ctx, &exists, query, id); err != nil {
		if err == sql.ErrNoRows {
			return false, nil
		}
		return false, fmt.Errorf("check class: %w", err)
	}
	return true, nil
}

// Create persists a class and returns the assigned id.
func (r *ClassRepository) Create(ctx context.Context, class *models.Class) error {
	class.UpdatedAt = time.Now().UTC()
	const query = `INSERT INTO classes (class_name, venue, updated_at) VALUES ($1, $2, $3) RETURNING class_id`
	if err := r.db.GetContext(ctx, &class.ClassID, query, class.ClassName, class.Venue, class.UpdatedAt); err != nil {
		return fmt.Errorf("create class: %w", err)
	}
	return nil
}

// Update applies the provided fields inside a transaction, checking the
// row exists first and rolling back on any failure.
func (r *ClassRepository) Update(ctx context.Context, id int64, className, venue *string) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin update class: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	var existing int64
	if err = tx.GetContext(ctx, &existing, `SELECT class_id FROM classes WHERE class_id = $1`, id); err != nil {
		return err
	}

	var sets []string
	var args []interface{}
	if className != nil {
		sets = append(sets, fmt.Sprintf("class_name = $%d", len(args)+1))
		args = append(args, *className)
	}
	if venue != nil {
		sets = append(sets, fmt.Sprintf("venue = $%d", len(args)+1))
		args = append(args, *venue)
	}
	sets = append(sets, fmt.Sprintf("updated_at = $%d", len(args)+1))
	args = append(args, time.Now().UTC())
	args = append(args, id)

	query := fmt.Sprintf("UPDATE classes SET %s WHERE class_id = $%d", strings.Join(sets, ", "), len(args))
	if _, err = tx.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("update class: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit update class: %w", err)
	}
	return nil
}

// Delete removes a class record. Returns ErrClassReferenced when reports
// still point at it and false when no row matched.
func (r *ClassRepository) Delete(ctx context.Context, id int64) (bool, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM classes WHERE class_id = $1`, id)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23503" {
			return false, ErrClassReferenced
		}
		return false, fmt.Errorf("delete class: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("delete class: %w", err)
	}
	return affected > 0, nil
}
