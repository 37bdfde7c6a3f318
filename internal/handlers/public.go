package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"corb3d-backend/internal/database"
	"corb3d-backend/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"
)

// PublicHandler serves the unauthenticated API surface: the contact
// form, the portfolio listing and a few whitelisted settings.
type PublicHandler struct {
	messages  *database.MessageQueries
	portfolio *database.PortfolioQueries
	settings  *database.SettingsQueries
}

func NewPublicHandler(db *gorm.DB) *PublicHandler {
	return &PublicHandler{
		messages:  database.NewMessageQueries(db),
		portfolio: database.NewPortfolioQueries(db),
		settings:  database.NewSettingsQueries(db),
	}
}

// CreateContactMessage handles POST /api/contact.
func (h *PublicHandler) CreateContactMessage(c *gin.Context) {
	var req models.ContactMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"message": "Dados invalidos",
			"errors":  fieldErrors(err),
		})
		return
	}

	msg := &models.ContactMessage{
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		Service: req.Service,
		Message: req.Message,
	}
	if err := h.messages.Create(msg); err != nil {
		slog.Error("failed to save contact message", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Erro ao salvar mensagem"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Mensagem enviada com sucesso!", "id": msg.ID})
}

// GetPortfolio handles GET /api/portfolio.
func (h *PublicHandler) GetPortfolio(c *gin.Context) {
	items, err := h.portfolio.ListItems()
	if err != nil {
		slog.Error("failed to list portfolio", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Erro ao buscar portfolio"})
		return
	}
	c.JSON(http.StatusOK, items)
}

// GetWhatsApp handles GET /api/settings/whatsapp.
func (h *PublicHandler) GetWhatsApp(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"whatsappNumber": h.settingValue(c, "whatsapp_number")})
}

// GetBusinessHours handles GET /api/settings/business-hours.
func (h *PublicHandler) GetBusinessHours(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"businessHours": h.settingValue(c, "business_hours")})
}

// GetAbout handles GET /api/settings/about: every about_* key as a flat
// string map, the shape the about page consumes.
func (h *PublicHandler) GetAbout(c *gin.Context) {
	settings, err := h.settings.GetAll()
	if err != nil {
		slog.Error("failed to list settings", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Erro ao buscar configuracoes"})
		return
	}

	about := make(map[string]string)
	for _, s := range settings {
		if strings.HasPrefix(s.Key, "about_") {
			about[s.Key] = s.Value
		}
	}
	c.JSON(http.StatusOK, about)
}

func (h *PublicHandler) settingValue(c *gin.Context, key string) string {
	setting, err := h.settings.Get(key)
	if err != nil {
		slog.Error("failed to get setting", "key", key, "error", err)
		return ""
	}
	if setting == nil {
		return ""
	}
	return setting.Value
}

// fieldErrors unpacks binding failures into field-level details.
func fieldErrors(err error) []models.FieldError {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil
	}
	out := make([]models.FieldError, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, models.FieldError{
			Field:   strings.ToLower(fe.Field()),
			Message: fe.Tag(),
		})
	}
	return out
}
