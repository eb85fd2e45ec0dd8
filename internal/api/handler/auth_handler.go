package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/d60-Lab/microblog/pkg/response"
)

type registerRequest struct {
	Username string `json:"username" binding:"required,username"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=1"`
}

type loginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type resetRequestRequest struct {
	Email string `json:"email" binding:"required,email"`
}

type resetCompleteRequest struct {
	Password string `json:"password" binding:"required,min=1"`
}

// Register creates an account
// @Summary Register a new account
// @Tags auth
// @Accept json
// @Produce json
// @Param request body registerRequest true "registration"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /api/v1/auth/register [post]
func (h *Handler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	user, err := h.userService.Register(c.Request.Context(), req.Username, req.Email, req.Password)
	if err != nil {
		serviceError(c, err)
		return
	}
	response.Success(c, user)
}

// Login exchanges credentials for a bearer token
// @Summary Log in
// @Tags auth
// @Accept json
// @Produce json
// @Param request body loginRequest true "credentials"
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /api/v1/auth/login [post]
func (h *Handler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	user, err := h.userService.Authenticate(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		serviceError(c, err)
		return
	}
	token, err := h.tokenService.Issue(user.ID)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.Success(c, gin.H{"user": user, "access_token": token})
}

// RequestPasswordReset mails a reset token
// @Summary Request a password reset
// @Tags auth
// @Accept json
// @Produce json
// @Param request body resetRequestRequest true "account email"
// @Success 200 {object} response.Response
// @Router /api/v1/auth/reset-password [post]
func (h *Handler) RequestPasswordReset(c *gin.Context) {
	var req resetRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	if err := h.resetService.RequestReset(c.Request.Context(), req.Email); err != nil {
		response.InternalError(c, err)
		return
	}
	// Same answer whether or not the address is registered.
	response.Success(c, gin.H{"message": "check your email for reset instructions"})
}

// CompletePasswordReset sets a new password using a mailed token
// @Summary Complete a password reset
// @Tags auth
// @Accept json
// @Produce json
// @Param token path string true "reset token"
// @Param request body resetCompleteRequest true "new password"
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /api/v1/auth/reset-password/{token} [put]
func (h *Handler) CompletePasswordReset(c *gin.Context) {
	var req resetCompleteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	ok, err := h.resetService.CompleteReset(c.Request.Context(), c.Param("token"), req.Password)
	if err != nil {
		serviceError(c, err)
		return
	}
	if !ok {
		response.Unauthorized(c, "invalid token")
		return
	}
	response.Success(c, gin.H{"message": "password has been reset"})
}
