package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/thereayou/chatrooms/pkg/auth"
)

const (
	UserIDKey   = "userID"
	UsernameKey = "username"
)

// TokenBlacklist отвечает, отозван ли токен
type TokenBlacklist interface {
	IsBlacklisted(ctx context.Context, token string) (bool, error)
}

// AuthMiddleware проверяет JWT токен
func AuthMiddleware(jwtManager *auth.JWTManager, blacklist TokenBlacklist) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := auth.ExtractTokenFromHeader(c.Request)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "missing or invalid token"})
			c.Abort()
			return
		}

		setIdentity(c, token, jwtManager, blacklist)
	}
}

// WSAuthMiddleware специальный middleware для WebSocket: токен приходит
// в query-параметре, браузерный WebSocket API не умеет ставить заголовки
func WSAuthMiddleware(jwtManager *auth.JWTManager, blacklist TokenBlacklist) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.Query("token")
		if token == "" {
			authHeader := c.GetHeader("Authorization")
			if authHeader != "" {
				parts := strings.SplitN(authHeader, " ", 2)
				if len(parts) == 2 && strings.ToLower(parts[0]) == "bearer" {
					token = parts[1]
				}
			}
		}

		if token == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "missing token"})
			c.Abort()
			return
		}

		setIdentity(c, token, jwtManager, blacklist)
	}
}

func setIdentity(c *gin.Context, token string, jwtManager *auth.JWTManager, blacklist TokenBlacklist) {
	// Недоступное хранилище списка — отказ, а не пропуск
	blacklisted, err := blacklist.IsBlacklisted(context.Background(), token)
	if err != nil || blacklisted {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "token is blacklisted"})
		c.Abort()
		return
	}

	claims, err := jwtManager.Verify(token)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
		c.Abort()
		return
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid user id"})
		c.Abort()
		return
	}

	c.Set(UserIDKey, userID)
	c.Set(UsernameKey, claims.Username)
	c.Next()
}
