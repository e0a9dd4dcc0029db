package sessions

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/sessions"
	"github.com/umairazmat/Ai-Codify/internal/logger"
)

const (
	CookieName = "aicodify_session"
	HeaderName = "X-Session-ID"
	ContextKey = "session_id"

	cookieValueKey = "sid"
)

type CookieOptions struct {
	Secret string
	MaxAge int // seconds
	Secure bool
}

// binds each request to a wizard session. browsers carry the ID in a
// signed cookie; headless clients send it back through X-Session-ID.
func Middleware(manager *Manager, opts CookieOptions) gin.HandlerFunc {
	store := sessions.NewCookieStore([]byte(opts.Secret))
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   opts.MaxAge,
		HttpOnly: true,
		Secure:   opts.Secure,
		SameSite: http.SameSiteLaxMode,
	}

	return func(c *gin.Context) {
		// a tampered or stale cookie decodes with an error but still yields
		// a usable empty session
		cookie, err := store.Get(c.Request, CookieName)
		if err != nil {
			logger.Debug("discarding unreadable session cookie", "error", err)
		}

		requested := c.GetHeader(HeaderName)
		if requested == "" {
			if sid, ok := cookie.Values[cookieValueKey].(string); ok {
				requested = sid
			}
		}

		session, created := manager.GetOrCreate(requested)
		if created && requested != "" {
			logger.Debug("replacing unknown session", "requested", requested, "session_id", session.ID)
		}

		cookie.Values[cookieValueKey] = session.ID
		if err := cookie.Save(c.Request, c.Writer); err != nil {
			logger.ErrorErr(err, "failed to save session cookie", "session_id", session.ID)
		}

		c.Header(HeaderName, session.ID)
		c.Set(ContextKey, session.ID)
		c.Next()
	}
}

// returns the session ID bound by Middleware
func FromContext(c *gin.Context) string {
	return c.GetString(ContextKey)
}
