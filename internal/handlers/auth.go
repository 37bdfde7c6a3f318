package handlers

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"corb3d-backend/internal/auth"
	"corb3d-backend/internal/config"
	"corb3d-backend/internal/database"
	"corb3d-backend/internal/middleware"

	"github.com/gin-gonic/gin"
)

// AuthHandler authenticates the single admin identity against the
// startup secret and manages the server-side session rows.
type AuthHandler struct {
	username  string
	adminHash string // empty when ADMIN_PASSWORD is unset: login fails closed
	sessions  *database.SessionQueries
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func NewAuthHandler(cfg *config.Config, sessions *database.SessionQueries) (*AuthHandler, error) {
	h := &AuthHandler{
		username: cfg.AdminUsername,
		sessions: sessions,
	}

	if cfg.AdminPassword == "" {
		slog.Warn("ADMIN_PASSWORD not set; admin login will not work until it is configured")
		return h, nil
	}

	hash, err := auth.HashPassword(cfg.AdminPassword)
	if err != nil {
		return nil, fmt.Errorf("failed to hash admin password: %w", err)
	}
	h.adminHash = hash
	return h, nil
}

func (h *AuthHandler) Login(c *gin.Context) {
	if h.adminHash == "" {
		c.JSON(http.StatusServiceUnavailable, gin.H{"message": "Admin nao configurado"})
		return
	}

	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		// Deliberately the same response as a wrong password
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Usuario ou senha incorretos"})
		return
	}

	if req.Username == h.username && req.Password != "" {
		valid, err := auth.ComparePassword(req.Password, h.adminHash)
		if err != nil {
			slog.Error("failed to compare password", "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Erro interno"})
			return
		}
		if valid {
			id, err := middleware.NewSessionID()
			if err != nil {
				slog.Error("failed to generate session id", "error", err)
				c.JSON(http.StatusInternalServerError, gin.H{"message": "Erro interno"})
				return
			}
			if err := h.sessions.Create(id, true, 24*time.Hour); err != nil {
				slog.Error("failed to create session", "error", err)
				c.JSON(http.StatusInternalServerError, gin.H{"message": "Erro interno"})
				return
			}
			if err := middleware.IssueSession(c, id); err != nil {
				slog.Error("failed to write session cookie", "error", err)
				c.JSON(http.StatusInternalServerError, gin.H{"message": "Erro interno"})
				return
			}
			c.JSON(http.StatusOK, gin.H{"ok": true})
			return
		}
	}

	c.JSON(http.StatusUnauthorized, gin.H{"message": "Usuario ou senha incorretos"})
}

func (h *AuthHandler) Logout(c *gin.Context) {
	if id := middleware.SessionID(c); id != "" {
		if err := h.sessions.Delete(id); err != nil {
			slog.Error("failed to delete session", "error", err)
		}
	}
	if err := middleware.ClearSession(c); err != nil {
		slog.Error("failed to clear session cookie", "error", err)
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func (h *AuthHandler) Me(c *gin.Context) {
	if id := middleware.SessionID(c); id != "" {
		session, err := h.sessions.Get(id)
		if err != nil {
			slog.Error("failed to load session", "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Erro interno"})
			return
		}
		if session != nil && session.IsAdmin {
			c.JSON(http.StatusOK, gin.H{"authenticated": true})
			return
		}
	}
	c.JSON(http.StatusUnauthorized, gin.H{"authenticated": false})
}
