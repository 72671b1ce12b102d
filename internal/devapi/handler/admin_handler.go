package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/sachcu/marketplace-client/internal/core/domain"
	"github.com/sachcu/marketplace-client/internal/devapi/store"
)

// AdminHandler serves the moderation endpoints.
type AdminHandler struct {
	store *store.Store
}

func NewAdminHandler(st *store.Store) *AdminHandler {
	return &AdminHandler{store: st}
}

func (h *AdminHandler) Posts(c echo.Context) error {
	return c.JSON(http.StatusOK, h.store.Posts())
}

func (h *AdminHandler) PostsByStatus(c echo.Context) error {
	posts, err := h.store.PostsByStatus(pathParam(c, "status"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, posts)
}

// @Summary      Change a listing's moderation status
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int                   true  "Post ID"
// @Param        body  body      domain.StatusRequest  true  "APPROVED, PENDING, DECLINED or SOLD"
// @Success      200   {object}  domain.Post
// @Failure      400   {object}  MessageBody
// @Failure      403   {object}  ErrorBody
// @Failure      404   {object}  MessageBody
// @Router       /admin/posts/{id}/status [put]
func (h *AdminHandler) UpdatePostStatus(c echo.Context) error {
	id, err := intParam(c, "id")
	if err != nil {
		return err
	}
	var req domain.StatusRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	post, err := h.store.SetPostStatus(id, req.Status)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, post)
}

func (h *AdminHandler) Users(c echo.Context) error {
	return c.JSON(http.StatusOK, h.store.Users())
}

func (h *AdminHandler) User(c echo.Context) error {
	id, err := intParam(c, "id")
	if err != nil {
		return err
	}
	user, err := h.store.User(id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}

func (h *AdminHandler) UpdateUserStatus(c echo.Context) error {
	id, err := intParam(c, "id")
	if err != nil {
		return err
	}
	var req domain.StatusRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	user, err := h.store.SetUserStatus(id, req.Status)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}

func (h *AdminHandler) DeleteUser(c echo.Context) error {
	id, err := intParam(c, "id")
	if err != nil {
		return err
	}
	if err := h.store.DeleteUser(id); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, domain.Message{Message: "user deleted", Success: true})
}

func (h *AdminHandler) Reports(c echo.Context) error {
	return c.JSON(http.StatusOK, h.store.Reports())
}

func (h *AdminHandler) UpdateReportStatus(c echo.Context) error {
	id, err := intParam(c, "id")
	if err != nil {
		return err
	}
	var req domain.StatusRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	report, err := h.store.SetReportStatus(id, req.Status)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, report)
}
