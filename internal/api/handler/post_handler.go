package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/forumhub/forum-api/internal/api/metrics"
	"github.com/forumhub/forum-api/internal/core/ports"
)

// PostHandler handles HTTP requests for posts and post voting.
type PostHandler struct {
	service ports.PostService
}

func NewPostHandler(service ports.PostService) *PostHandler {
	return &PostHandler{service: service}
}

type createPostRequest struct {
	Title   string `json:"title" validate:"required,max=120"`
	Content string `json:"content" validate:"required"`
}

type updatePostRequest struct {
	Title   *string `json:"title" validate:"omitempty,max=120"`
	Content *string `json:"content"`
}

type voteRequest struct {
	Value int `json:"value" validate:"required,oneof=1 -1"`
}

// GetAll handles GET /posts.
//
// @Summary      List posts
// @Tags         posts
// @Produce      json
// @Param        page   query     int  false  "Page number (default 1)"
// @Param        limit  query     int  false  "Page size (default 10, max 100)"
// @Success      200    {object}  pagedResponse
// @Router       /posts [get]
func (h *PostHandler) GetAll(c echo.Context) error {
	posts, total, err := h.service.GetAll(c.Request().Context(), pageFromQuery(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, pagedResponse{Data: posts, Total: total})
}

// GetByID handles GET /posts/:id.
func (h *PostHandler) GetByID(c echo.Context) error {
	id, err := paramUint(c, "id")
	if err != nil {
		return err
	}
	post, err := h.service.GetByID(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, post)
}

// GetByUser handles GET /posts/user/:username.
func (h *PostHandler) GetByUser(c echo.Context) error {
	posts, total, err := h.service.GetByUsername(c.Request().Context(), c.Param("username"), pageFromQuery(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, pagedResponse{Data: posts, Total: total})
}

// GetUserPost handles GET /posts/user/:username/:postId.
func (h *PostHandler) GetUserPost(c echo.Context) error {
	postID, err := paramUint(c, "postId")
	if err != nil {
		return err
	}
	post, err := h.service.GetUserPost(c.Request().Context(), c.Param("username"), postID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, post)
}

// Create handles POST /posts/create. The author is the authenticated caller.
func (h *PostHandler) Create(c echo.Context) error {
	username, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req createPostRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	post, err := h.service.Create(c.Request().Context(), username, ports.CreatePostInput{
		Title:   req.Title,
		Content: req.Content,
	})
	if err != nil {
		return err
	}

	metrics.PostsCreatedTotal.Inc()
	return c.JSON(http.StatusCreated, post)
}

// Update handles PATCH /posts/update/:username/:id. The :username names the
// owner; moderators may edit any user's post, plain users only their own
// (enforced by the route's role floor).
func (h *PostHandler) Update(c echo.Context) error {
	id, err := paramUint(c, "id")
	if err != nil {
		return err
	}

	var req updatePostRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	post, err := h.service.Update(c.Request().Context(), c.Param("username"), id, ports.UpdatePostInput{
		Title:   req.Title,
		Content: req.Content,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, post)
}

// Delete handles DELETE /posts/delete/:username/:id.
func (h *PostHandler) Delete(c echo.Context) error {
	id, err := paramUint(c, "id")
	if err != nil {
		return err
	}
	if err := h.service.Delete(c.Request().Context(), c.Param("username"), id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// Vote handles POST /posts/vote/post/:postId.
//
// @Summary      Vote on a post
// @Tags         posts
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        postId  path      int          true  "Post ID"
// @Param        body    body      voteRequest  true  "Vote value: 1 or -1"
// @Success      200     {object}  ports.VoteResult
// @Failure      400     {object}  map[string]string
// @Failure      404     {object}  map[string]string
// @Router       /posts/vote/post/{postId} [post]
func (h *PostHandler) Vote(c echo.Context) error {
	username, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}
	postID, err := paramUint(c, "postId")
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

	result, err := h.service.Vote(c.Request().Context(), postID, username, req.Value)
	if err != nil {
		return err
	}

	metrics.VotesTotal.WithLabelValues("post", voteAction(result.Message)).Inc()
	return c.JSON(http.StatusOK, result)
}

// voteAction maps the aggregator's user-facing message to a metric label.
func voteAction(message string) string {
	switch message {
	case "Vote added":
		return "added"
	case "Vote removed":
		return "removed"
	case "Vote updated":
		return "updated"
	default:
		return "unknown"
	}
}
