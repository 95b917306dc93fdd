package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/forumhub/forum-api/internal/core/domain"
	"github.com/forumhub/forum-api/internal/core/ports"
)

// SubscriptionHandler handles HTTP requests for post and user subscriptions.
type SubscriptionHandler struct {
	service ports.SubscriptionService
}

func NewSubscriptionHandler(service ports.SubscriptionService) *SubscriptionHandler {
	return &SubscriptionHandler{service: service}
}

type subscribeRequest struct {
	TargetType   string `json:"targetType" validate:"required,oneof=POST USER"`
	PostID       *uint  `json:"postId"`
	UserTargetID *uint  `json:"userTargetId"`
}

// Subscribe handles POST /subscriptions/subscribe. The subscriber is the
// authenticated caller.
func (h *SubscriptionHandler) Subscribe(c echo.Context) error {
	username, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req subscribeRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	sub, err := h.service.Create(c.Request().Context(), username, ports.CreateSubscriptionInput{
		TargetType:   domain.SubscriptionTarget(req.TargetType),
		PostID:       req.PostID,
		UserTargetID: req.UserTargetID,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, sub)
}

// UserSubscriptions handles GET /subscriptions/users/:username — the users
// the named user follows.
func (h *SubscriptionHandler) UserSubscriptions(c echo.Context) error {
	subs, err := h.service.GetUserSubscriptions(c.Request().Context(), c.Param("username"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, subs)
}

// PostSubscriptions handles GET /subscriptions/posts/:username — the posts
// the named user follows.
func (h *SubscriptionHandler) PostSubscriptions(c echo.Context) error {
	subs, err := h.service.GetPostSubscriptions(c.Request().Context(), c.Param("username"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, subs)
}

// PostSubscribers handles GET /subscriptions/post/subscribers/:postId.
func (h *SubscriptionHandler) PostSubscribers(c echo.Context) error {
	postID, err := paramUint(c, "postId")
	if err != nil {
		return err
	}
	subs, err := h.service.GetPostSubscribers(c.Request().Context(), postID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, subs)
}

// UserSubscribers handles GET /subscriptions/user/subscribers/:username.
func (h *SubscriptionHandler) UserSubscribers(c echo.Context) error {
	subs, err := h.service.GetUserSubscribers(c.Request().Context(), c.Param("username"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, subs)
}

// Delete handles DELETE /subscriptions/delete/:username/:id. The :username
// names the subscription owner.
func (h *SubscriptionHandler) Delete(c echo.Context) error {
	id, err := paramUint(c, "id")
	if err != nil {
		return err
	}
	if err := h.service.Delete(c.Request().Context(), c.Param("username"), id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
