package middleware

import (
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// VisitorKey is the gin context key holding the authenticated visitor id.
const VisitorKey = "visitorID"

// VisitorMiddleware requires a valid visitor access token and stores the
// visitor id in the context.
func VisitorMiddleware(tokens *TokenService) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "En-tête Authorization requis"})
			c.Abort()
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "L'en-tête Authorization doit être au format: Bearer {token}"})
			c.Abort()
			return
		}

		claims, err := tokens.ParseAccessToken(parts[1])
		if err != nil {
			log.Printf("Visitor token validation error: %v", err)
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Jeton visiteur invalide ou expiré"})
			c.Abort()
			return
		}

		c.Set(VisitorKey, claims.VisitorID)
		c.Next()
	}
}

// VisitorID returns the visitor id set by VisitorMiddleware.
func VisitorID(c *gin.Context) string {
	return c.GetString(VisitorKey)
}

// Recovery answers 500 with a message the UI can show when a handler
// panics.
func Recovery() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, err any) {
		log.Printf("Panic serving %s %s: %v", c.Request.Method, c.Request.URL.Path, err)
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error": "Une erreur inattendue s'est produite. Veuillez actualiser la page.",
		})
	})
}
