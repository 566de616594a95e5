package handler

import (
	"net/http"
	"time"

	"github.com/abhishek622/interviewdesk/pkg/response"
	"github.com/gin-gonic/gin"
)

// RequestLogger logs one line per request through zap.
func (h *Handler) RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		h.Logger.Sugar().Infow("http",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration", time.Since(start),
			"request_id", c.GetHeader("X-Request-Id"),
		)
	}
}

// SessionAuth resolves the session cookie to a user.
func (h *Handler) SessionAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(SessionCookie)
		if err != nil || token == "" {
			response.Unauthorized(c, "")
			return
		}

		user, ok := h.Sessions.Lookup(token)
		if !ok {
			response.Unauthorized(c, "Invalid session.")
			return
		}

		c.Set("user", user)
		c.Next()
	}
}

// CSRFProtect enforces the double-submit token on unsafe methods: the
// X-CSRFToken header must echo the csrftoken cookie.
func (h *Handler) CSRFProtect() gin.HandlerFunc {
	return func(c *gin.Context) {
		switch c.Request.Method {
		case http.MethodGet, http.MethodHead, http.MethodOptions, http.MethodTrace:
			c.Next()
			return
		}

		cookie, err := c.Cookie(CSRFCookie)
		if err != nil || cookie == "" {
			response.Forbidden(c, "CSRF Failed: CSRF cookie not set.")
			return
		}
		if c.GetHeader(CSRFHeader) != cookie {
			response.Forbidden(c, "CSRF Failed: CSRF token missing or incorrect.")
			return
		}
		c.Next()
	}
}
