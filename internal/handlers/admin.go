package handlers

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"corb3d-backend/internal/database"
	"corb3d-backend/internal/models"
	"corb3d-backend/internal/upload"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// MaxImagesPerItem limits how many images a portfolio item can hold.
const MaxImagesPerItem = 6

// allowedSettingKeys is the editable settings whitelist.
var allowedSettingKeys = map[string]bool{
	"whatsapp_number": true,
	"business_hours":  true,
	"about_title":     true,
	"about_content":   true,
	"about_image_1":   true,
	"about_image_2":   true,
	"about_image_3":   true,
}

// AdminHandler serves the session-guarded management API.
type AdminHandler struct {
	messages  *database.MessageQueries
	portfolio *database.PortfolioQueries
	settings  *database.SettingsQueries
	uploads   *upload.Store
}

func NewAdminHandler(db *gorm.DB, uploads *upload.Store) *AdminHandler {
	return &AdminHandler{
		messages:  database.NewMessageQueries(db),
		portfolio: database.NewPortfolioQueries(db),
		settings:  database.NewSettingsQueries(db),
		uploads:   uploads,
	}
}

// Contact messages

func (h *AdminHandler) ListMessages(c *gin.Context) {
	messages, err := h.messages.List()
	if err != nil {
		slog.Error("failed to list messages", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Erro ao buscar mensagens"})
		return
	}
	c.JSON(http.StatusOK, messages)
}

func (h *AdminHandler) MarkMessageRead(c *gin.Context) {
	h.setMessageRead(c, true)
}

func (h *AdminHandler) MarkMessageUnread(c *gin.Context) {
	h.setMessageRead(c, false)
}

func (h *AdminHandler) setMessageRead(c *gin.Context, read bool) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	if err := h.messages.SetRead(id, read); err != nil {
		slog.Error("failed to update message", "id", id, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Erro ao atualizar mensagem"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func (h *AdminHandler) DeleteMessage(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	if err := h.messages.Delete(id); err != nil {
		slog.Error("failed to delete message", "id", id, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Erro ao excluir mensagem"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// Portfolio

func (h *AdminHandler) ListPortfolio(c *gin.Context) {
	items, err := h.portfolio.ListItems()
	if err != nil {
		slog.Error("failed to list portfolio", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Erro ao buscar portfolio"})
		return
	}
	c.JSON(http.StatusOK, items)
}

// CreatePortfolioItem handles the multipart album upload: one item with
// one to six images, the first becoming the cover.
func (h *AdminHandler) CreatePortfolioItem(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Dados invalidos"})
		return
	}

	title := strings.TrimSpace(c.PostForm("title"))
	if title == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Titulo e obrigatorio"})
		return
	}
	category := strings.TrimSpace(c.PostForm("category"))
	if category == "" {
		category = "Geral"
	}
	var description *string
	if d := strings.TrimSpace(c.PostForm("description")); d != "" {
		description = &d
	}

	files := form.File["images"]
	if len(files) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Pelo menos uma imagem e obrigatoria"})
		return
	}
	if len(files) > MaxImagesPerItem {
		c.JSON(http.StatusBadRequest, gin.H{"message": fmt.Sprintf("Maximo de %d imagens por item", MaxImagesPerItem)})
		return
	}

	// Validate every file before writing any, so a bad file in the
	// batch leaves no partial upload behind.
	for _, file := range files {
		if err := h.uploads.Validate(file); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
			return
		}
	}

	saved := make([]string, 0, len(files))
	fail := func(status int, msg string) {
		h.removeFiles(saved)
		c.JSON(status, gin.H{"message": msg})
	}

	for _, file := range files {
		url, err := h.uploads.Save(file)
		if err != nil {
			slog.Error("failed to save upload", "error", err)
			fail(http.StatusInternalServerError, "Erro ao salvar arquivo")
			return
		}
		saved = append(saved, url)
	}

	item := &models.PortfolioItem{
		Title:       title,
		Description: description,
		Category:    category,
		ImageURL:    saved[0],
	}
	if err := h.portfolio.CreateItem(item); err != nil {
		slog.Error("failed to create portfolio item", "error", err)
		fail(http.StatusInternalServerError, "Erro ao criar item")
		return
	}

	for i, url := range saved {
		img := &models.PortfolioImage{
			PortfolioItemID: item.ID,
			ImageURL:        url,
			DisplayOrder:    i + 1,
		}
		if err := h.portfolio.AddImage(img); err != nil {
			slog.Error("failed to create portfolio image", "error", err)
			if _, derr := h.portfolio.DeleteItem(item.ID); derr != nil {
				slog.Error("failed to roll back portfolio item", "id", item.ID, "error", derr)
			}
			fail(http.StatusInternalServerError, "Erro ao criar item")
			return
		}
	}

	created, err := h.portfolio.GetItem(item.ID)
	if err != nil || created == nil {
		slog.Error("failed to reload portfolio item", "id", item.ID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Erro ao criar item"})
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (h *AdminHandler) UpdatePortfolioItem(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	var req models.UpdatePortfolioItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Dados invalidos"})
		return
	}

	item, err := h.portfolio.GetItem(id)
	if err != nil {
		slog.Error("failed to get portfolio item", "id", id, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Erro ao buscar item"})
		return
	}
	if item == nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Item nao encontrado"})
		return
	}

	if req.Title != nil {
		title := strings.TrimSpace(*req.Title)
		if title == "" {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Titulo e obrigatorio"})
			return
		}
		item.Title = title
	}
	if req.Category != nil {
		item.Category = strings.TrimSpace(*req.Category)
	}
	if req.Description != nil {
		item.Description = req.Description
	}

	if err := h.portfolio.UpdateItem(item); err != nil {
		slog.Error("failed to update portfolio item", "id", id, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Erro ao atualizar item"})
		return
	}
	c.JSON(http.StatusOK, item)
}

func (h *AdminHandler) DeletePortfolioItem(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	item, err := h.portfolio.GetItem(id)
	if err != nil {
		slog.Error("failed to get portfolio item", "id", id, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Erro ao buscar item"})
		return
	}
	if item == nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Item nao encontrado"})
		return
	}

	urls, err := h.portfolio.DeleteItem(id)
	if err != nil {
		slog.Error("failed to delete portfolio item", "id", id, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Erro ao excluir item"})
		return
	}
	h.removeFiles(urls)

	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// AddPortfolioImage handles POST /api/admin/portfolio/:id/images.
func (h *AdminHandler) AddPortfolioImage(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	item, err := h.portfolio.GetItem(id)
	if err != nil {
		slog.Error("failed to get portfolio item", "id", id, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Erro ao buscar item"})
		return
	}
	if item == nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Item nao encontrado"})
		return
	}

	file, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Nenhum arquivo enviado"})
		return
	}

	count, err := h.portfolio.CountImages(id)
	if err != nil {
		slog.Error("failed to count portfolio images", "id", id, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Erro ao buscar item"})
		return
	}
	if count >= MaxImagesPerItem {
		c.JSON(http.StatusBadRequest, gin.H{"message": fmt.Sprintf("Maximo de %d imagens por item", MaxImagesPerItem)})
		return
	}

	if err := h.uploads.Validate(file); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	url, err := h.uploads.Save(file)
	if err != nil {
		slog.Error("failed to save upload", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Erro ao salvar arquivo"})
		return
	}

	img := &models.PortfolioImage{
		PortfolioItemID: id,
		ImageURL:        url,
		DisplayOrder:    int(count) + 1,
	}
	if err := h.portfolio.AddImage(img); err != nil {
		slog.Error("failed to create portfolio image", "error", err)
		// The database write failed after the file landed on disk
		h.removeFiles([]string{url})
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Erro ao adicionar imagem"})
		return
	}

	c.JSON(http.StatusCreated, img)
}

// DeletePortfolioImage handles DELETE /api/admin/portfolio/images/:imageId.
func (h *AdminHandler) DeletePortfolioImage(c *gin.Context) {
	id, ok := paramID(c, "imageId")
	if !ok {
		return
	}

	img, err := h.portfolio.GetImage(id)
	if err != nil {
		slog.Error("failed to get portfolio image", "id", id, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Erro ao buscar imagem"})
		return
	}
	if img == nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Imagem nao encontrada"})
		return
	}

	if err := h.portfolio.DeleteImage(id); err != nil {
		slog.Error("failed to delete portfolio image", "id", id, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Erro ao excluir imagem"})
		return
	}
	h.removeFiles([]string{img.ImageURL})

	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// Settings

func (h *AdminHandler) GetSettings(c *gin.Context) {
	settings, err := h.settings.GetAll()
	if err != nil {
		slog.Error("failed to list settings", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Erro ao buscar configuracoes"})
		return
	}

	out := make(map[string]string, len(settings))
	for _, s := range settings {
		out[s.Key] = s.Value
	}
	c.JSON(http.StatusOK, out)
}

// UpdateSettings handles PUT /api/admin/settings. A JSON body carries a
// key/value map; a multipart body additionally carries about-page image
// files and per-field removal flags.
func (h *AdminHandler) UpdateSettings(c *gin.Context) {
	if strings.HasPrefix(c.ContentType(), "multipart/form-data") {
		h.updateSettingsMultipart(c)
		return
	}

	var body map[string]string
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Dados invalidos"})
		return
	}

	for key := range body {
		if !allowedSettingKeys[key] {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Configuracao invalida: " + key})
			return
		}
	}
	for key, value := range body {
		if err := h.settings.Set(key, value); err != nil {
			slog.Error("failed to set setting", "key", key, "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Erro ao salvar configuracoes"})
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func (h *AdminHandler) updateSettingsMultipart(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Dados invalidos"})
		return
	}

	// Validate all image uploads before persisting anything
	imageKeys := []string{"about_image_1", "about_image_2", "about_image_3"}
	for _, key := range imageKeys {
		if files := form.File[key]; len(files) > 0 {
			if err := h.uploads.Validate(files[0]); err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
				return
			}
		}
	}

	for _, key := range []string{"whatsapp_number", "business_hours", "about_title", "about_content"} {
		if values := form.Value[key]; len(values) > 0 {
			if err := h.settings.Set(key, values[0]); err != nil {
				slog.Error("failed to set setting", "key", key, "error", err)
				c.JSON(http.StatusInternalServerError, gin.H{"message": "Erro ao salvar configuracoes"})
				return
			}
		}
	}

	for _, key := range imageKeys {
		if values := form.Value["remove_"+key]; len(values) > 0 && values[0] == "true" {
			if err := h.removeImageSetting(key); err != nil {
				slog.Error("failed to remove setting", "key", key, "error", err)
				c.JSON(http.StatusInternalServerError, gin.H{"message": "Erro ao salvar configuracoes"})
				return
			}
			continue
		}

		files := form.File[key]
		if len(files) == 0 {
			continue
		}

		url, err := h.uploads.Save(files[0])
		if err != nil {
			slog.Error("failed to save upload", "key", key, "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Erro ao salvar arquivo"})
			return
		}

		// Replace the previous image file, if any
		old, err := h.settings.Get(key)
		if err == nil && old != nil && old.Value != "" {
			h.removeFiles([]string{old.Value})
		}

		if err := h.settings.Set(key, url); err != nil {
			slog.Error("failed to set setting", "key", key, "error", err)
			h.removeFiles([]string{url})
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Erro ao salvar configuracoes"})
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func (h *AdminHandler) removeImageSetting(key string) error {
	setting, err := h.settings.Get(key)
	if err != nil {
		return err
	}
	if setting == nil {
		return nil
	}
	if err := h.settings.Delete(key); err != nil {
		return err
	}
	if setting.Value != "" {
		h.removeFiles([]string{setting.Value})
	}
	return nil
}

func (h *AdminHandler) removeFiles(urls []string) {
	for _, url := range urls {
		if err := h.uploads.Remove(url); err != nil {
			slog.Warn("failed to remove uploaded file", "url", url, "error", err)
		}
	}
}

// paramID parses a numeric path parameter, answering 400 on garbage.
func paramID(c *gin.Context, name string) (int, bool) {
	id, err := strconv.Atoi(c.Param(name))
	if err != nil || id < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "ID invalido"})
		return 0, false
	}
	return id, true
}
