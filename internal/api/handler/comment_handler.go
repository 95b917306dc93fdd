package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/forumhub/forum-api/internal/api/metrics"
	"github.com/forumhub/forum-api/internal/core/ports"
)

// CommentHandler handles HTTP requests for comments, nested replies and
// comment voting.
type CommentHandler struct {
	service ports.CommentService
}

func NewCommentHandler(service ports.CommentService) *CommentHandler {
	return &CommentHandler{service: service}
}

type createCommentRequest struct {
	Content string `json:"content" validate:"required"`
}

type updateCommentRequest struct {
	Content string `json:"content" validate:"required"`
}

// GetByPost handles GET /comments/post/:postId.
func (h *CommentHandler) GetByPost(c echo.Context) error {
	postID, err := paramUint(c, "postId")
	if err != nil {
		return err
	}
	comments, total, err := h.service.GetByPost(c.Request().Context(), postID, pageFromQuery(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, pagedResponse{Data: comments, Total: total})
}

// GetByUser handles GET /comments/user/:username.
func (h *CommentHandler) GetByUser(c echo.Context) error {
	comments, total, err := h.service.GetByUsername(c.Request().Context(), c.Param("username"), pageFromQuery(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, pagedResponse{Data: comments, Total: total})
}

// GetByID handles GET /comments/:id.
func (h *CommentHandler) GetByID(c echo.Context) error {
	id, err := paramUint(c, "id")
	if err != nil {
		return err
	}
	comment, err := h.service.GetByID(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, comment)
}

// Create handles POST /comments/create/:postId.
func (h *CommentHandler) Create(c echo.Context) error {
	return h.create(c, nil)
}

// Reply handles POST /comments/create/:postId/reply/:parentId — a nested
// reply to an existing comment on the same post.
func (h *CommentHandler) Reply(c echo.Context) error {
	parentID, err := paramUint(c, "parentId")
	if err != nil {
		return err
	}
	return h.create(c, &parentID)
}

func (h *CommentHandler) create(c echo.Context, parentID *uint) error {
	username, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}
	postID, err := paramUint(c, "postId")
	if err != nil {
		return err
	}

	var req createCommentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	comment, err := h.service.Create(c.Request().Context(), username, ports.CreateCommentInput{
		Content:  req.Content,
		PostID:   postID,
		ParentID: parentID,
	})
	if err != nil {
		return err
	}

	metrics.CommentsCreatedTotal.Inc()
	return c.JSON(http.StatusCreated, comment)
}

// Update handles PATCH /comments/update/:id.
func (h *CommentHandler) Update(c echo.Context) error {
	id, err := paramUint(c, "id")
	if err != nil {
		return err
	}

	var req updateCommentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	comment, err := h.service.Update(c.Request().Context(), id, req.Content)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, comment)
}

// Delete handles DELETE /comments/delete/:id.
func (h *CommentHandler) Delete(c echo.Context) error {
	id, err := paramUint(c, "id")
	if err != nil {
		return err
	}
	if err := h.service.Delete(c.Request().Context(), id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// Vote handles POST /comments/vote/comment/:commentId.
func (h *CommentHandler) Vote(c echo.Context) error {
	username, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}
	commentID, err := paramUint(c, "commentId")
	if err != nil {
		return err
	}

	var req voteRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	result, err := h.service.Vote(c.Request().Context(), commentID, username, req.Value)
	if err != nil {
		return err
	}

	metrics.VotesTotal.WithLabelValues("comment", voteAction(result.Message)).Inc()
	return c.JSON(http.StatusOK, result)
}
