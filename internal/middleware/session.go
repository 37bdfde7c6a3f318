package middleware

import (
	"crypto/rand"
	"encoding/hex"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/sessions"
)

const (
	SessionName  = "corb3d-session"
	sessionIDKey = "session_id"

	// SessionTTLSeconds is the cookie and server-side row lifetime.
	SessionTTLSeconds = 60 * 60 * 24
)

// store holds the signed-cookie codec. The cookie only carries the
// session ID; authorization state lives in the sessions table.
var store *sessions.CookieStore

// InitSessionStore initializes the cookie store with the signing secret.
// secure should be true behind HTTPS in production.
func InitSessionStore(secretKey string, secure bool) {
	store = sessions.NewCookieStore([]byte(secretKey))
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   SessionTTLSeconds,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	}
}

// SessionID returns the session ID from the request's signed cookie, or
// "" when there is none (or the cookie fails signature verification).
func SessionID(c *gin.Context) string {
	session, err := store.Get(c.Request, SessionName)
	if err != nil {
		return ""
	}
	id, _ := session.Values[sessionIDKey].(string)
	return id
}

// IssueSession writes a signed cookie carrying id.
func IssueSession(c *gin.Context, id string) error {
	session, err := store.Get(c.Request, SessionName)
	if err != nil {
		// Corrupted cookie: start over with a fresh session
		session = sessions.NewSession(store, SessionName)
		session.Options = store.Options
	}
	session.Values[sessionIDKey] = id
	return session.Save(c.Request, c.Writer)
}

// ClearSession expires the cookie immediately.
func ClearSession(c *gin.Context) error {
	session, err := store.Get(c.Request, SessionName)
	if err != nil {
		session = sessions.NewSession(store, SessionName)
	}
	opts := *store.Options
	opts.MaxAge = -1
	session.Options = &opts
	delete(session.Values, sessionIDKey)
	return session.Save(c.Request, c.Writer)
}

// NewSessionID generates a secure random session ID.
func NewSessionID() (string, error) {
	bytes := make([]byte, 32)
	if _, err := rand.Read(bytes); err != nil {
		return "", err
	}
	return hex.EncodeToString(bytes), nil
}
