package handler

import (
	"github.com/abhishek622/interviewdesk/pkg/response"
	"github.com/gin-gonic/gin"
)

const csrfMaxAge = 365 * 24 * 60 * 60

// CSRFToken hands out the anti-forgery token, issuing the cookie when the
// caller has none yet.
func (h *Handler) CSRFToken(c *gin.Context) {
	token, err := c.Cookie(CSRFCookie)
	if err != nil || token == "" {
		token = newToken()
		c.SetCookie(CSRFCookie, token, csrfMaxAge, "/", "", false, false)
	}
	response.OK(c, gin.H{"csrfToken": token})
}

// Logout drops the server-side session and expires the cookie. It succeeds
// whether or not a session was present.
func (h *Handler) Logout(c *gin.Context) {
	if token, err := c.Cookie(SessionCookie); err == nil && token != "" {
		h.Sessions.Revoke(token)
		h.Logger.Sugar().Infow("session revoked")
	}
	c.SetCookie(SessionCookie, "", -1, "/", "", false, true)
	response.Message(c, "logged out")
}

func (h *Handler) DashboardStats(c *gin.Context) {
	response.OK(c, h.Repository.Stats(c.Request.Context()))
}
