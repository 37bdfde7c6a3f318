package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"

	"corb3d-backend/internal/config"
	"corb3d-backend/internal/database"
	"corb3d-backend/internal/middleware"
	"corb3d-backend/internal/upload"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

const (
	testAdminUsername = "hcorbage"
	testAdminPassword = "senha-super-secreta"
)

// pngBytes starts with the PNG signature so content sniffing accepts it.
var pngBytes = append([]byte{0x89, 'P', 'N', 'G', 0x0d, 0x0a, 0x1a, 0x0a}, make([]byte, 64)...)

type testApp struct {
	router  *gin.Engine
	db      *gorm.DB
	uploads *upload.Store
}

// newTestApp wires the full route surface against an in-memory database
// and a temp upload directory. adminPassword "" leaves login unconfigured.
func newTestApp(t *testing.T, adminPassword string) *testApp {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrate sqlite: %v", err)
	}

	uploads, err := upload.NewStore(t.TempDir())
	if err != nil {
		t.Fatalf("create upload store: %v", err)
	}

	middleware.InitSessionStore("test-session-secret", false)

	cfg := &config.Config{
		AdminUsername: testAdminUsername,
		AdminPassword: adminPassword,
	}
	sessionQueries := database.NewSessionQueries(db)

	authHandler, err := NewAuthHandler(cfg, sessionQueries)
	if err != nil {
		t.Fatalf("new auth handler: %v", err)
	}
	publicHandler := NewPublicHandler(db)
	adminHandler := NewAdminHandler(db, uploads)

	r := gin.New()

	api := r.Group("/api")
	{
		api.POST("/contact", publicHandler.CreateContactMessage)
		api.GET("/portfolio", publicHandler.GetPortfolio)
		api.GET("/settings/whatsapp", publicHandler.GetWhatsApp)
		api.GET("/settings/business-hours", publicHandler.GetBusinessHours)
		api.GET("/settings/about", publicHandler.GetAbout)
	}

	session := r.Group("/api/admin")
	{
		session.POST("/login", authHandler.Login)
		session.POST("/logout", authHandler.Logout)
		session.GET("/me", authHandler.Me)
	}

	admin := r.Group("/api/admin")
	admin.Use(middleware.AdminRequired(sessionQueries))
	{
		admin.GET("/messages", adminHandler.ListMessages)
		admin.PATCH("/messages/:id/read", adminHandler.MarkMessageRead)
		admin.PATCH("/messages/:id/unread", adminHandler.MarkMessageUnread)
		admin.DELETE("/messages/:id", adminHandler.DeleteMessage)

		admin.GET("/portfolio", adminHandler.ListPortfolio)
		admin.POST("/portfolio", adminHandler.CreatePortfolioItem)
		admin.PATCH("/portfolio/:id", adminHandler.UpdatePortfolioItem)
		admin.DELETE("/portfolio/:id", adminHandler.DeletePortfolioItem)
		admin.POST("/portfolio/:id/images", adminHandler.AddPortfolioImage)
		admin.DELETE("/portfolio/images/:imageId", adminHandler.DeletePortfolioImage)

		admin.GET("/settings", adminHandler.GetSettings)
		admin.PUT("/settings", adminHandler.UpdateSettings)
	}

	return &testApp{router: r, db: db, uploads: uploads}
}

func (a *testApp) request(t *testing.T, method, path, contentType string, body io.Reader, cookies []*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(method, path, body)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	for _, cookie := range cookies {
		req.AddCookie(cookie)
	}

	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}

func (a *testApp) requestJSON(t *testing.T, method, path, body string, cookies []*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = bytes.NewReader([]byte(body))
	}
	return a.request(t, method, path, "application/json", reader, cookies)
}

// login authenticates as the admin and returns the session cookies.
func (a *testApp) login(t *testing.T) []*http.Cookie {
	t.Helper()

	body := fmt.Sprintf(`{"username":%q,"password":%q}`, testAdminUsername, testAdminPassword)
	w := a.requestJSON(t, http.MethodPost, "/api/admin/login", body, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("login failed: status %d body %s", w.Code, w.Body.String())
	}

	resp := http.Response{Header: w.Header()}
	cookies := resp.Cookies()
	if len(cookies) == 0 {
		t.Fatal("login issued no session cookie")
	}
	return cookies
}

func decodeJSON(t *testing.T, w *httptest.ResponseRecorder, v any) {
	t.Helper()
	if err := json.Unmarshal(w.Body.Bytes(), v); err != nil {
		t.Fatalf("decode response %q: %v", w.Body.String(), err)
	}
}

// multipartBody builds a multipart form from string fields and PNG-named
// file parts.
type filePart struct {
	field       string
	filename    string
	contentType string
	content     []byte
}

func multipartBody(t *testing.T, fields map[string]string, files []filePart) (io.Reader, string) {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for key, value := range fields {
		if err := w.WriteField(key, value); err != nil {
			t.Fatalf("write field %s: %v", key, err)
		}
	}
	for _, f := range files {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", fmt.Sprintf(`form-data; name=%q; filename=%q`, f.field, f.filename))
		h.Set("Content-Type", f.contentType)
		part, err := w.CreatePart(h)
		if err != nil {
			t.Fatalf("create part: %v", err)
		}
		if _, err := part.Write(f.content); err != nil {
			t.Fatalf("write part: %v", err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close multipart writer: %v", err)
	}

	return &buf, w.FormDataContentType()
}

func pngPart(field, filename string) filePart {
	return filePart{field: field, filename: filename, contentType: "image/png", content: pngBytes}
}
