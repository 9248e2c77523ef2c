package web

import (
	"net/http"
	"strconv"
	"time"

	"storefront-web/internal/session"
	"storefront-web/internal/util"

	"github.com/gin-gonic/gin"
)

const ctxSessionID = "session_id"

// SessionMiddleware ensures every visitor carries an opaque session
// cookie. A missing or blank cookie gets a freshly minted id; branding
// and auth state hang off that id in Redis.
func (h *Handler) SessionMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		sid, err := c.Cookie(h.cfg.Session.CookieName)
		if err != nil || sid == "" {
			sid = session.NewSessionID()
			c.SetCookie(
				h.cfg.Session.CookieName,
				sid,
				int(h.cfg.Session.TTL.Seconds()),
				"/",
				"",
				false,
				true,
			)
		}
		c.Set(ctxSessionID, sid)
		c.Next()
	}
}

// AuthRequired redirects unauthenticated visitors to the login screen.
// Admin routes sit behind it; the storefront never does.
func (h *Handler) AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := h.sessions.Token(c.Request.Context(), sessionID(c))
		if err != nil || token == "" {
			c.Redirect(http.StatusFound, "/login")
			c.Abort()
			return
		}
		c.Next()
	}
}

// RequestMetrics records per-route request counts and latencies.
func RequestMetrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		status := strconv.Itoa(c.Writer.Status())
		util.HTTPRequestsTotal.WithLabelValues(c.Request.Method, path, status).Inc()
		util.HTTPRequestDuration.WithLabelValues(c.Request.Method, path, status).Observe(time.Since(start).Seconds())
	}
}

func sessionID(c *gin.Context) string {
	return c.GetString(ctxSessionID)
}
