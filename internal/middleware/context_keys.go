package middleware

import "github.com/gin-gonic/gin"

// userIDCtxKey is the key used to store the authenticated user's id in the
// request context.
const userIDCtxKey = contextKey("userID")

// GetUserIDFromContext retrieves the authenticated user id set by
// AuthMiddleware. It returns the id and whether it was found.
func GetUserIDFromContext(c *gin.Context) (string, bool) {
	userID, ok := c.Request.Context().Value(userIDCtxKey).(string)
	if !ok || userID == "" {
		return "", false
	}
	return userID, true
}
