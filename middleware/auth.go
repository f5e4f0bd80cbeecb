package middleware

import (
	"net/http"
	"strings"

	"news-portal/helper"
	"news-portal/models"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
)

const (
	ContextUserID = "user_id"
	ContextEmail  = "email"
	ContextRole   = "role"
)

type Claims struct {
	UserID uint            `json:"user_id"`
	Email  string          `json:"email"`
	Role   models.UserRole `json:"role"`
	jwt.RegisteredClaims
}

// AuthMiddleware rejects requests without a valid HS256 bearer token and
// stores the token claims on the context.
func AuthMiddleware(secret []byte, h *helper.HTTPHelper) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			h.SendError(c, http.StatusUnauthorized, "Authorization header required")
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == authHeader {
			h.SendError(c, http.StatusUnauthorized, "Bearer token required")
			return
		}

		claims := &Claims{}
		token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return secret, nil
		})
		if err != nil || !token.Valid || claims.UserID == 0 {
			h.SendError(c, http.StatusUnauthorized, "Invalid token")
			return
		}

		c.Set(ContextUserID, claims.UserID)
		c.Set(ContextEmail, claims.Email)
		c.Set(ContextRole, claims.Role)

		c.Next()
	}
}

func RequireRole(h *helper.HTTPHelper, roles ...models.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		userRole, exists := c.Get(ContextRole)
		if !exists {
			h.SendError(c, http.StatusUnauthorized, "User role not found")
			return
		}

		role, _ := userRole.(models.UserRole)
		for _, allowed := range roles {
			if role == allowed {
				c.Next()
				return
			}
		}

		h.SendError(c, http.StatusForbidden, "Insufficient permissions")
	}
}

// UserID returns the authenticated user's id, or zero outside AuthMiddleware.
func UserID(c *gin.Context) uint {
	id, _ := c.Get(ContextUserID)
	userID, _ := id.(uint)
	return userID
}
