package middleware

import (
	"fmt"
	"log"
	"net/http"
	"strings"

	"github.com/Conceptual-Machines/magda-charts/internal/config"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

const (
	bearerPrefix  = "Bearer"
	anonymousUser = "anonymous"

	contextUserID    = "user_id"
	contextUserEmail = "user_email"
	contextUserRole  = "user_role"
)

// Claims are the claims expected in bearer tokens. The user id is the
// standard subject claim.
type Claims struct {
	Email string `json:"email,omitempty"`
	Role  string `json:"role,omitempty"`
	jwt.RegisteredClaims
}

// Auth picks the middleware for the configured auth mode
func Auth(cfg *config.Config) gin.HandlerFunc {
	switch {
	case cfg.IsGatewayMode():
		return GatewayAuth()
	case cfg.IsJWTMode():
		if cfg.JWTSecret == "" {
			log.Println("⚠️  AUTH_MODE=jwt but JWT_SECRET is empty, every token will be rejected")
		}
		return JWTAuth(cfg.JWTSecret)
	default:
		return NoAuth()
	}
}

// JWTAuth validates HMAC signed bearer tokens and attaches the user to the context
func JWTAuth(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := bearerToken(c.GetHeader("Authorization"))
		if tokenString == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization required"})
			c.Abort()
			return
		}

		if secret == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			c.Abort()
			return
		}

		claims := &Claims{}
		token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
			// Verify signing method
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return []byte(secret), nil
		})

		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			c.Abort()
			return
		}

		if !token.Valid || claims.Subject == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			c.Abort()
			return
		}

		setUser(c, claims.Subject, claims.Email, claims.Role)
		c.Next()
	}
}

func bearerToken(header string) string {
	parts := strings.Split(header, " ")
	if len(parts) == 2 && parts[0] == bearerPrefix {
		return parts[1]
	}
	return ""
}

func setUser(c *gin.Context, id, email, role string) {
	c.Set(contextUserID, id)
	c.Set(contextUserEmail, email)
	c.Set(contextUserRole, role)
}

// GetUserID retrieves the authenticated user id
func GetUserID(c *gin.Context) (string, bool) {
	return getString(c, contextUserID)
}

// GetUserEmail retrieves the authenticated user's email
func GetUserEmail(c *gin.Context) (string, bool) {
	return getString(c, contextUserEmail)
}

// GetUserRole retrieves the authenticated user's role
func GetUserRole(c *gin.Context) (string, bool) {
	return getString(c, contextUserRole)
}

func getString(c *gin.Context, key string) (string, bool) {
	val, exists := c.Get(key)
	if !exists {
		return "", false
	}
	s, ok := val.(string)
	return s, ok
}
