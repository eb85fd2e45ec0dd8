package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/d60-Lab/microblog/internal/api/middleware"
	"github.com/d60-Lab/microblog/pkg/response"
)

type createPostRequest struct {
	Body string `json:"body" binding:"required,max=140"`
}

// CreatePost publishes a post by the authenticated user
// @Summary Create a post
// @Tags posts
// @Accept json
// @Produce json
// @Param request body createPostRequest true "post"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Security BearerAuth
// @Router /api/v1/posts [post]
func (h *Handler) CreatePost(c *gin.Context) {
	var req createPostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	post, err := h.postService.Create(c.Request.Context(), middleware.UserID(c), req.Body)
	if err != nil {
		serviceError(c, err)
		return
	}
	response.Success(c, post)
}

// HomeFeed is posts by everyone the viewer follows
// @Summary Home feed
// @Tags posts
// @Param page query int false "page" default(1)
// @Success 200 {object} response.Response
// @Security BearerAuth
// @Router /api/v1/feed [get]
func (h *Handler) HomeFeed(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	res, err := h.postService.HomeFeed(c.Request.Context(), middleware.UserID(c), page)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.Success(c, res)
}

// Explore is every post, newest first
// @Summary Explore feed
// @Tags posts
// @Param page query int false "page" default(1)
// @Success 200 {object} response.Response
// @Router /api/v1/explore [get]
func (h *Handler) Explore(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	res, err := h.postService.Explore(c.Request.Context(), page)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.Success(c, res)
}

// UserPosts is a single author's posts
// @Summary A user's posts
// @Tags posts
// @Param username path string true "username"
// @Param page query int false "page" default(1)
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /api/v1/users/{username}/posts [get]
func (h *Handler) UserPosts(c *gin.Context) {
	user, err := h.userService.GetByUsername(c.Request.Context(), c.Param("username"))
	if err != nil {
		serviceError(c, err)
		return
	}
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	res, err := h.postService.AuthorFeed(c.Request.Context(), user.ID, page)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.Success(c, res)
}
