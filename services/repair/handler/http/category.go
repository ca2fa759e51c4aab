package http

import (
	nethttp "net/http"

	"github.com/labstack/echo/v4"
	"github.com/ykovtun/avtosos/internal/utils"
	"github.com/ykovtun/avtosos/services/repair"
)

// CategoryHandler handles HTTP requests for the category catalog
type CategoryHandler struct {
	categoryUC repair.CategoryUC
}

// NewCategoryHandler creates a new category handler
func NewCategoryHandler(categoryUC repair.CategoryUC) *CategoryHandler {
	return &CategoryHandler{categoryUC: categoryUC}
}

// Tree handles catalog requests, returning categories as a nested tree
func (h *CategoryHandler) Tree(c echo.Context) error {
	tree, err := h.categoryUC.CategoryTree(c.Request().Context())
	if err != nil {
		return utils.AppErrorResponse(c, err)
	}

	return utils.SuccessResponse(c, nethttp.StatusOK, "", tree)
}
