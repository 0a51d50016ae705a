package middleware

import (
	"fmt"
	"net/http"
	"strings"

	"advent-app/config"
	"advent-app/internal/domain/access"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

const principalKey = "principal"

// AuthMiddleware validates the app JWT and attaches the resulting principal
// to the request context. Token issuance lives in the auth package; this is
// the only place tokens are consumed.
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		jwtKey := []byte(config.JWT_SECRET)
		if len(jwtKey) == 0 {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "JWT secret not configured"})
			c.Abort()
			return
		}
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization header missing"})
			c.Abort()
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == authHeader {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Bearer token malformed"})
			c.Abort()
			return
		}

		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return jwtKey, nil
		})
		if err != nil || !token.Valid {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			c.Abort()
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token claims"})
			c.Abort()
			return
		}

		p := access.Principal{}
		if sub, ok := claims["sub"].(string); ok {
			p.Sub = sub
		}
		if email, ok := claims["email"].(string); ok {
			p.Email = email
		}
		if admin, ok := claims["admin"].(bool); ok {
			p.Admin = admin
		}
		if p.Sub == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token claims"})
			c.Abort()
			return
		}

		c.Set(principalKey, p)
		c.Next()
	}
}

// RequireAdmin rejects non-admin principals before the handler runs.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		p, ok := Current(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			c.Abort()
			return
		}
		if err := access.AuthorizeMutate(p); err != nil {
			c.JSON(http.StatusForbidden, gin.H{"error": "Admin permission required"})
			c.Abort()
			return
		}
		c.Next()
	}
}

// Current returns the principal attached by AuthMiddleware.
func Current(c *gin.Context) (access.Principal, bool) {
	v, exists := c.Get(principalKey)
	if !exists {
		return access.Principal{}, false
	}
	p, ok := v.(access.Principal)
	return p, ok
}

// SetPrincipal injects a principal directly; used by tests to bypass token
// parsing.
func SetPrincipal(c *gin.Context, p access.Principal) {
	c.Set(principalKey, p)
}
