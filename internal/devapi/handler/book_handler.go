package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/sachcu/marketplace-client/internal/devapi/store"
)

// BookHandler serves the public catalogue. Authenticated readers also see
// the seller and contact info.
type BookHandler struct {
	store *store.Store
}

func NewBookHandler(st *store.Store) *BookHandler {
	return &BookHandler{store: st}
}

// @Summary      List approved listings
// @Tags         books
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  domain.BookDetail
// @Router       /books [get]
func (h *BookHandler) List(c echo.Context) error {
	return c.JSON(http.StatusOK, h.store.Books(viewer(c).Authenticated()))
}

// @Summary      Get a listing by book ID
// @Tags         books
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Book ID"
// @Success      200  {object}  domain.BookDetail
// @Failure      404  {object}  MessageBody
// @Router       /books/{id} [get]
func (h *BookHandler) Get(c echo.Context) error {
	id, err := intParam(c, "id")
	if err != nil {
		return err
	}
	book, err := h.store.Book(id, viewer(c).Authenticated())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, book)
}

// @Summary      Search approved listings
// @Tags         books
// @Produce      json
// @Param        title     query  string  false  "Title substring"
// @Param        author    query  string  false  "Author substring"
// @Param        province  query  string  false  "Province"
// @Param        district  query  string  false  "District"
// @Success      200  {array}  domain.BookDetail
// @Router       /books/search [get]
func (h *BookHandler) Search(c echo.Context) error {
	f := store.BookFilter{
		Title:    c.QueryParam("title"),
		Author:   c.QueryParam("author"),
		Province: c.QueryParam("province"),
		District: c.QueryParam("district"),
	}
	return c.JSON(http.StatusOK, h.store.Search(f, viewer(c).Authenticated()))
}

func (h *BookHandler) ByProvince(c echo.Context) error {
	f := store.BookFilter{Province: pathParam(c, "province")}
	return c.JSON(http.StatusOK, h.store.Search(f, viewer(c).Authenticated()))
}
