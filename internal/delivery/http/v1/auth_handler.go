package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"go-jobsearch-agent/internal/delivery/http/response"
	"go-jobsearch-agent/internal/domain"
	"go-jobsearch-agent/pkg/apperror"
)

type AuthHandler struct {
	sessionUC domain.SessionUsecase
}

func NewAuthHandler(rg *gin.RouterGroup, sessionUC domain.SessionUsecase) {
	handler := &AuthHandler{sessionUC: sessionUC}

	auth := rg.Group("/auth")
	{
		auth.POST("/signup", handler.Signup)
		auth.POST("/login", handler.Login)
		auth.POST("/logout", handler.Logout)
		auth.GET("/me", handler.Me)
	}
}

type SignupRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	FullName string `json:"full_name"`
}

func (h *AuthHandler) Signup(c *gin.Context) {
	var req SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.Validation(err.Error()))
		return
	}

	user, err := h.sessionUC.Signup(c.Request.Context(), req.Email, req.Password, req.FullName)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusCreated, "Account created", user)
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.Validation(err.Error()))
		return
	}

	session, err := h.sessionUC.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Logged in", gin.H{"access_token": session.Token})
}

func (h *AuthHandler) Logout(c *gin.Context) {
	h.sessionUC.Logout()
	response.Success(c, http.StatusOK, "Logged out", nil)
}

// Me reports the current profile, or success with null data when anonymous.
// Callers treat "no session" and "session rejected" identically.
func (h *AuthHandler) Me(c *gin.Context) {
	user, err := h.sessionUC.CurrentUser(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}
	if user == nil {
		response.Success(c, http.StatusOK, "No active session", nil)
		return
	}
	response.Success(c, http.StatusOK, "Current user", user)
}
