package middleware

import (
	"log/slog"
	"net/http"

	"corb3d-backend/internal/database"

	"github.com/gin-gonic/gin"
)

// AdminRequired rejects requests that do not carry a live admin session.
func AdminRequired(sessions *database.SessionQueries) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := SessionID(c)
		if id == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "Nao autorizado"})
			c.Abort()
			return
		}

		session, err := sessions.Get(id)
		if err != nil {
			slog.Error("failed to load session", "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Erro interno"})
			c.Abort()
			return
		}
		if session == nil || !session.IsAdmin {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "Nao autorizado"})
			c.Abort()
			return
		}

		c.Set(sessionIDKey, id)
		c.Next()
	}
}
