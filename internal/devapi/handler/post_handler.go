package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/sachcu/marketplace-client/internal/core/domain"
	"github.com/sachcu/marketplace-client/internal/devapi/store"
)

// PostHandler serves listing detail and the seller's own listings.
type PostHandler struct {
	store *store.Store
}

func NewPostHandler(st *store.Store) *PostHandler {
	return &PostHandler{store: st}
}

// Get returns one listing. Pending listings are visible to their owner only.
func (h *PostHandler) Get(c echo.Context) error {
	id, err := intParam(c, "id")
	if err != nil {
		return err
	}
	post, err := h.store.Post(id, viewer(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, post)
}

// @Summary      Create a listing
// @Tags         posts
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      domain.CreatePostRequest  true  "Listing"
// @Success      201   {object}  domain.Post
// @Failure      401   {object}  ErrorBody
// @Failure      422   {object}  MessageBody
// @Router       /posts [post]
func (h *PostHandler) Create(c echo.Context) error {
	userID, _, err := ctxClaims(c)
	if err != nil {
		return err
	}
	var req domain.CreatePostRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	post, err := h.store.CreatePost(userID, req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, post)
}

// @Summary      List the caller's listings
// @Tags         posts
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   domain.Post
// @Failure      401  {object}  ErrorBody
// @Router       /my-posts [get]
func (h *PostHandler) Mine(c echo.Context) error {
	userID, _, err := ctxClaims(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, h.store.PostsByUser(userID))
}

func (h *PostHandler) Update(c echo.Context) error {
	userID, _, err := ctxClaims(c)
	if err != nil {
		return err
	}
	id, err := intParam(c, "id")
	if err != nil {
		return err
	}
	var req domain.UpdatePostRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	post, err := h.store.UpdatePost(userID, id, req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, post)
}

// Delete answers 204 with no body.
//
// @Summary      Delete one of the caller's listings
// @Tags         posts
// @Security     BearerAuth
// @Param        id   path  int  true  "Post ID"
// @Success      204
// @Failure      403  {object}  MessageBody
// @Failure      404  {object}  MessageBody
// @Router       /my-posts/{id} [delete]
func (h *PostHandler) Delete(c echo.Context) error {
	userID, _, err := ctxClaims(c)
	if err != nil {
		return err
	}
	id, err := intParam(c, "id")
	if err != nil {
		return err
	}
	if err := h.store.DeletePost(userID, id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *PostHandler) MarkSold(c echo.Context) error {
	userID, _, err := ctxClaims(c)
	if err != nil {
		return err
	}
	id, err := intParam(c, "id")
	if err != nil {
		return err
	}
	post, err := h.store.MarkSold(userID, id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, post)
}
