package repo

import (
	"context"
	"database/sql"

	"github.com/crucial707/qa-forum/internal/models"
)

// CategoryRepo reads categories. Categories are written by migrations only.
type CategoryRepo struct {
	DB *sql.DB
}

func NewCategoryRepo(db *sql.DB) *CategoryRepo {
	return &CategoryRepo{DB: db}
}

// List returns all categories ordered by name.
func (r *CategoryRepo) List(ctx context.Context) ([]models.Category, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT id, name, description, created_at, updated_at FROM categories ORDER BY name ASC`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	categories := []models.Category{}
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, err
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

// GetByID returns ErrNotFound when no category has the id.
func (r *CategoryRepo) GetByID(ctx context.Context, id int) (*models.Category, error) {
	row := r.DB.QueryRowContext(ctx,
		`SELECT id, name, description, created_at, updated_at FROM categories WHERE id = $1`,
		id,
	)
	c, err := scanCategory(row)
	if err != nil {
		return nil, notFound(err)
	}
	return &c, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanCategory(s rowScanner) (models.Category, error) {
	var (
		c    models.Category
		desc sql.NullString
	)
	if err := s.Scan(&c.ID, &c.Name, &desc, ts(&c.CreatedAt), ts(&c.UpdatedAt)); err != nil {
		return models.Category{}, err
	}
	c.Description = nullableString(desc)
	return c, nil
}

func nullableString(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	s := ns.String
	return &s
}
