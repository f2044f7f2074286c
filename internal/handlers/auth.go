package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/papertrade/papertrade/internal/auth"
	"github.com/papertrade/papertrade/internal/models"
	"go.uber.org/zap"
)

// AuthHandler serves registration, login, and logout.
type AuthHandler struct {
	svc      *auth.Service
	sessions *auth.SessionStore
	logger   *zap.Logger
}

// NewAuthHandler creates an AuthHandler.
func NewAuthHandler(svc *auth.Service, sessions *auth.SessionStore, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{svc: svc, sessions: sessions, logger: logger}
}

// Register handles POST /api/register. A successful registration logs
// the user straight in.
func (h *AuthHandler) Register(c *gin.Context) {
	var req models.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.svc.Register(c.Request.Context(), req.Username, req.Password, req.Confirmation)
	if err != nil {
		writeError(c, err)
		return
	}

	token := h.sessions.Create(user.ID)
	c.SetCookie(SessionCookie, token, 0, "/", "", false, true)

	h.logger.Info("user registered", zap.Int("user_id", user.ID))

	c.JSON(http.StatusCreated, gin.H{
		"id":           user.ID,
		"username":     user.Username,
		"cash_balance": user.CashBalance,
	})
}

// Login handles POST /api/login.
func (h *AuthHandler) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.svc.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		writeError(c, err)
		return
	}

	token := h.sessions.Create(user.ID)
	c.SetCookie(SessionCookie, token, 0, "/", "", false, true)

	c.JSON(http.StatusOK, gin.H{
		"id":       user.ID,
		"username": user.Username,
	})
}

// Logout handles POST /api/logout. Always succeeds, logged in or not.
func (h *AuthHandler) Logout(c *gin.Context) {
	if token, err := c.Cookie(SessionCookie); err == nil {
		h.sessions.Destroy(token)
	}
	c.SetCookie(SessionCookie, "", -1, "/", "", false, true)

	c.JSON(http.StatusOK, gin.H{"message": "logged out"})
}
