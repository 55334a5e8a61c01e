package middleware

import (
	"net/http"
	"strings"

	"curbe/utils"

	"github.com/gin-gonic/gin"
)

// CompanyAuthMiddleware verifies the bearer token and checks that its
// subject matches the company addressed by the route. Token issuance is the
// identity platform's concern; this only guards the admin surface.
func CompanyAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Insufficient authorization"})
			return
		}
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Insufficient authorization"})
			return
		}

		companyID, err := utils.ExtractCompanyIDFromToken(tokenString)
		if err != nil || companyID == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Insufficient authorization"})
			return
		}

		if routeID := c.Param("id"); routeID != "" && routeID != companyID {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Token does not grant access to this company"})
			return
		}

		c.Set("companyID", companyID)
		c.Next()
	}
}
