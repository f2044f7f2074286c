package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/papertrade/papertrade/internal/auth"
)

// SessionCookie is the name of the browser session cookie.
const SessionCookie = "session"

// userIDKey is the gin context key the resolved user id is stored
// under. Handlers read it through CurrentUser, never from globals.
const userIDKey = "current_user_id"

// RequireUser resolves the session cookie to a user id and stores it in
// the request context. Requests without a valid session get a 401.
func RequireUser(sessions *auth.SessionStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(SessionCookie)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "not logged in"})
			return
		}

		userID, ok := sessions.Resolve(token)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "not logged in"})
			return
		}

		c.Set(userIDKey, userID)
		c.Next()
	}
}

// CurrentUser returns the authenticated user id set by RequireUser.
func CurrentUser(c *gin.Context) int {
	return c.GetInt(userIDKey)
}
