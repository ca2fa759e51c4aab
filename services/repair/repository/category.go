package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
	"github.com/ykovtun/avtosos/internal/pkg/apperrors"
	"github.com/ykovtun/avtosos/internal/pkg/models"
)

// CategoryRepo implements service category persistence over postgres
type CategoryRepo struct {
	db *sqlx.DB
}

// NewCategoryRepository creates a new category repository
func NewCategoryRepository(db *sqlx.DB) *CategoryRepo {
	return &CategoryRepo{db: db}
}

// ListCategories lists all service categories ordered by id
func (r *CategoryRepo) ListCategories(ctx context.Context) ([]models.ServiceCategory, error) {
	query := `SELECT id, name, slug, parent_id FROM service_categories ORDER BY id`

	categories := []models.ServiceCategory{}
	if err := r.db.SelectContext(ctx, &categories, query); err != nil {
		return nil, apperrors.Wrap(apperrors.KindInternal, "failed to list categories", err)
	}
	return categories, nil
}

// GetCategory retrieves a category by id
func (r *CategoryRepo) GetCategory(ctx context.Context, id int64) (*models.ServiceCategory, error) {
	query := `SELECT id, name, slug, parent_id FROM service_categories WHERE id = $1`

	var category models.ServiceCategory
	if err := r.db.GetContext(ctx, &category, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFound("category not found")
		}
		return nil, apperrors.Wrap(apperrors.KindInternal, "failed to get category", err)
	}
	return &category, nil
}

