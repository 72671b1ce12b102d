package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/sachcu/marketplace-client/internal/core/domain"
	"github.com/sachcu/marketplace-client/internal/devapi/store"
)

// CategoryHandler lists categories and lets admins manage them. Update and
// delete answer with plain text, as the production API does.
type CategoryHandler struct {
	store *store.Store
}

func NewCategoryHandler(st *store.Store) *CategoryHandler {
	return &CategoryHandler{store: st}
}

// @Summary      List categories
// @Tags         categories
// @Produce      json
// @Success      200  {array}  domain.Category
// @Router       /categories [get]
func (h *CategoryHandler) List(c echo.Context) error {
	return c.JSON(http.StatusOK, h.store.Categories())
}

func (h *CategoryHandler) Create(c echo.Context) error {
	var req domain.CategoryRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	cat, err := h.store.CreateCategory(req.CategoryName)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, cat)
}

// @Summary      Rename a category
// @Tags         admin
// @Accept       json
// @Produce      plain
// @Security     BearerAuth
// @Param        id    path      int                     true  "Category ID"
// @Param        body  body      domain.CategoryRequest  true  "New name"
// @Success      200   {string}  string
// @Failure      409   {object}  MessageBody
// @Router       /admin/categories/{id} [put]
func (h *CategoryHandler) Update(c echo.Context) error {
	id, err := intParam(c, "id")
	if err != nil {
		return err
	}
	var req domain.CategoryRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	if _, err := h.store.UpdateCategory(id, req.CategoryName); err != nil {
		return err
	}
	return c.String(http.StatusOK, "Category updated successfully")
}

func (h *CategoryHandler) Delete(c echo.Context) error {
	id, err := intParam(c, "id")
	if err != nil {
		return err
	}
	if err := h.store.DeleteCategory(id); err != nil {
		return err
	}
	return c.String(http.StatusOK, "Category deleted successfully")
}
