package middleware

import (
	"log/slog"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

// SecurityHeaders adds standard security headers. The CSP is scoped to
// what the site actually serves: JSON and uploaded images.
func SecurityHeaders() gin.HandlerFunc {
	return func(c *gin.Context) {
		isHTTPS := IsSecureRequest(c)

		if isHTTPS {
			// HSTS only makes sense over HTTPS
			c.Header("Strict-Transport-Security", "max-age=31536000; includeSubDomains")
		}

		c.Header("X-Content-Type-Options", "nosniff")
		c.Header("X-Frame-Options", "DENY")
		c.Header("Referrer-Policy", "strict-origin-when-cross-origin")
		c.Header("Content-Security-Policy", buildCSP(isHTTPS))

		c.Next()
	}
}

// TrustedProxyHeaders records client details forwarded by the reverse
// proxy so logging and HTTPS detection see the original request.
func TrustedProxyHeaders() gin.HandlerFunc {
	return func(c *gin.Context) {
		if realIP := c.GetHeader("X-Real-IP"); realIP != "" {
			c.Set("real_ip", realIP)
		} else if forwardedFor := c.GetHeader("X-Forwarded-For"); forwardedFor != "" {
			ips := strings.Split(forwardedFor, ",")
			if len(ips) > 0 {
				c.Set("real_ip", strings.TrimSpace(ips[0]))
			}
		}

		if proto := c.GetHeader("X-Forwarded-Proto"); proto != "" {
			c.Set("original_proto", proto)
		}

		c.Next()
	}
}

// RequestLogger logs each request through slog, preferring the client
// details recorded by TrustedProxyHeaders over the direct peer.
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		realIP := c.ClientIP()
		if ip, ok := c.Get("real_ip"); ok {
			if s, ok := ip.(string); ok && s != "" {
				realIP = s
			}
		}
		proto := "http"
		if c.Request.TLS != nil {
			proto = "https"
		}
		if p, ok := c.Get("original_proto"); ok {
			if s, ok := p.(string); ok && s != "" {
				proto = s
			}
		}

		slog.Info("request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"latency", time.Since(start),
			"ip", realIP,
			"proto", proto,
		)
	}
}

// IsSecureRequest checks if the request arrived over HTTPS, considering
// proxy headers.
func IsSecureRequest(c *gin.Context) bool {
	if proto := c.GetHeader("X-Forwarded-Proto"); proto == "https" {
		return true
	}
	if c.Request.TLS != nil {
		return true
	}
	return false
}

func buildCSP(isHTTPS bool) string {
	protocol := "http:"
	if isHTTPS {
		protocol = "https:"
	}

	return strings.Join([]string{
		"default-src 'self'",
		"img-src 'self' data: " + protocol,
		"object-src 'none'",
		"frame-ancestors 'none'",
		"base-uri 'self'",
	}, "; ")
}
