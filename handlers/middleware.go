package handlers

import (
	"net/http"
	"strings"

	"agentstudio-backend/models"
	"agentstudio-backend/service"

	"github.com/gin-gonic/gin"
)

// userKey is the gin context key the resolved caller is stored under.
const userKey = "authUser"

// RequireAuth resolves the bearer token to a user and aborts with 401
// (missing credential) or 403 (credential does not match any user). This
// is a capability check only: no expiry, no scopes.
func RequireAuth(auth *service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "No token provided"})
			return
		}
		parts := strings.Fields(header)
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "No token provided"})
			return
		}
		token := parts[1]

		user, err := auth.UserByToken(c.Request.Context(), token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Invalid token"})
			return
		}
		c.Set(userKey, user)
		c.Next()
	}
}

// currentUser returns the caller attached by RequireAuth.
func currentUser(c *gin.Context) *models.User {
	v, ok := c.Get(userKey)
	if !ok {
		return nil
	}
	return v.(*models.User)
}

// CORS allows the SPA to call the API from any origin, mirroring the
// permissive policy of the original deployment.
func CORS() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Authorization, Content-Type")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}
