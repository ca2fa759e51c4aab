package usecase

import (
	"context"

	"github.com/ykovtun/avtosos/internal/pkg/models"
	"github.com/ykovtun/avtosos/services/repair"
)

// CategoryUC serves the repair category catalog
type CategoryUC struct {
	categoryRepo repair.CategoryRepo
}

// NewCategoryUC creates a new category usecase
func NewCategoryUC(categoryRepo repair.CategoryRepo) *CategoryUC {
	return &CategoryUC{categoryRepo: categoryRepo}
}

// CategoryTree returns the category catalog as a nested tree
func (uc *CategoryUC) CategoryTree(ctx context.Context) ([]*models.CategoryNode, error) {
	categories, err := uc.categoryRepo.ListCategories(ctx)
	if err != nil {
		return nil, err
	}
	return models.BuildCategoryTree(categories), nil
}
