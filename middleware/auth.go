package middleware

import (
	"errors"
	"net/http"
	"os"
	"strings"
	"sync"

	"github.com/MicahParks/keyfunc/v3"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

var (
	jwksOnce sync.Once
	jwks     keyfunc.Keyfunc
	jwksErr  error
)

// kindeKeyfunc lazily builds a background-refreshing JWKS keyfunc for
// the configured Kinde issuer.
func kindeKeyfunc(issuer string) (jwt.Keyfunc, error) {
	jwksOnce.Do(func() {
		jwks, jwksErr = keyfunc.NewDefault([]string{strings.TrimSuffix(issuer, "/") + "/.well-known/jwks.json"})
	})
	if jwksErr != nil {
		return nil, jwksErr
	}
	return jwks.Keyfunc, nil
}

// hmacKeyfunc verifies tokens signed with JWT_SECRET. Used when no
// Kinde issuer is configured (local development and tests).
func hmacKeyfunc(token *jwt.Token) (interface{}, error) {
	if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
		return nil, errors.New("invalid token signing method")
	}
	return []byte(os.Getenv("JWT_SECRET")), nil
}

// ValidateToken authenticates the request from its Authorization header
// and stores the caller's id under "user_id" for downstream handlers.
func ValidateToken(c *gin.Context) {
	tokenString := c.GetHeader("Authorization")
	if tokenString == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization header is missing"})
		c.Abort()
		return
	}
	tokenString = strings.TrimPrefix(tokenString, "Bearer ")

	kf := jwt.Keyfunc(hmacKeyfunc)
	if issuer := os.Getenv("KINDE_ISSUER_URL"); issuer != "" {
		jwksKf, err := kindeKeyfunc(issuer)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load signing keys"})
			c.Abort()
			return
		}
		kf = jwksKf
	}

	token, err := jwt.Parse(tokenString, kf)
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

	sub, _ := claims["sub"].(string)
	if sub == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Token missing subject"})
		c.Abort()
		return
	}

	c.Set("user_id", sub)
	c.Next()
}

// UserID pulls the authenticated user's id set by ValidateToken.
func UserID(c *gin.Context) (string, bool) {
	v, exists := c.Get("user_id")
	if !exists {
		return "", false
	}
	id, ok := v.(string)
	return id, ok && id != ""
}
