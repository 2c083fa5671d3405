package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"livescore/internal/authz"
	"livescore/internal/services"
)

// SessionCookieName — имя httpOnly-куки с сессионным JWT.
const SessionCookieName = "auth_token"

// AuthRequired — достаёт сессионную куку, проверяет подпись и срок,
// кладёт claims в контекст. Без валидной сессии — 401.
func AuthRequired(auth services.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := sessionClaims(c, auth)
		if !ok {
			return
		}
		setClaims(c, claims)
		c.Next()
	}
}

// AdminRequired — как AuthRequired, плюс 403 для не-админских ролей.
func AdminRequired(auth services.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := sessionClaims(c, auth)
		if !ok {
			return
		}
		if !authz.IsAdmin(claims.Role) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "admin role required"})
			return
		}
		setClaims(c, claims)
		c.Next()
	}
}

func sessionClaims(c *gin.Context, auth services.AuthService) (*services.Claims, bool) {
	token, err := c.Cookie(SessionCookieName)
	if err != nil || token == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
		return nil, false
	}
	claims, err := auth.ParseToken(token)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
		return nil, false
	}
	return claims, true
}

func setClaims(c *gin.Context, claims *services.Claims) {
	c.Set("user_id", claims.UserID)
	c.Set("email", claims.Email)
	c.Set("role", claims.Role)
}
