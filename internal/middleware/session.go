package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yigit/drivingschool/internal/app/sessions"
)

const (
	// SessionCookie names the cookie carrying the session id
	SessionCookie = "ds_session"
	sessionKey    = "session"
)

// Sessions attaches the browser's session to the request, issuing a new
// cookie when the browser has none or its session expired.
func Sessions(store *sessions.Store, secure bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, _ := c.Cookie(SessionCookie)
		s, created := store.GetOrCreate(id)
		if created {
			c.SetSameSite(http.SameSiteLaxMode)
			c.SetCookie(SessionCookie, s.ID, 0, "/", "", secure, true)
		}
		c.Set(sessionKey, s)
		c.Next()
	}
}

// CurrentSession returns the session attached by Sessions
func CurrentSession(c *gin.Context) (*sessions.Session, bool) {
	v, ok := c.Get(sessionKey)
	if !ok {
		return nil, false
	}
	s, ok := v.(*sessions.Session)
	return s, ok
}
