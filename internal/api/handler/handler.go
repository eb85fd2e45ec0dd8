package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/d60-Lab/microblog/internal/service"
	"github.com/d60-Lab/microblog/pkg/response"
)

// Handler carries the service set every route group pulls from.
type Handler struct {
	userService  service.UserService
	postService  service.PostService
	relService   service.RelationshipService
	tokenService *service.TokenService
	resetService *service.PasswordResetService
}

func New(
	userService service.UserService,
	postService service.PostService,
	relService service.RelationshipService,
	tokenService *service.TokenService,
	resetService *service.PasswordResetService,
) *Handler {
	return &Handler{
		userService:  userService,
		postService:  postService,
		relService:   relService,
		tokenService: tokenService,
		resetService: resetService,
	}
}

// serviceError maps the service error taxonomy onto the response envelope:
// validation failures are 400, duplicates 409, unknown identities 404,
// credential failures 401, everything else 500.
func serviceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrFollowSelf),
		errors.Is(err, service.ErrUsernameRequired),
		errors.Is(err, service.ErrUsernameTooLong),
		errors.Is(err, service.ErrEmailRequired),
		errors.Is(err, service.ErrEmailTooLong),
		errors.Is(err, service.ErrPasswordRequired),
		errors.Is(err, service.ErrAboutMeTooLong),
		errors.Is(err, service.ErrPostBodyRequired),
		errors.Is(err, service.ErrPostBodyTooLong):
		response.BadRequest(c, err.Error())
	case errors.Is(err, service.ErrUsernameTaken),
		errors.Is(err, service.ErrEmailTaken):
		response.Conflict(c, err.Error())
	case errors.Is(err, service.ErrUserNotFound):
		response.NotFound(c, err.Error())
	case errors.Is(err, service.ErrInvalidCredentials),
		errors.Is(err, service.ErrInvalidToken):
		response.Unauthorized(c, err.Error())
	default:
		response.InternalError(c, err)
	}
}
