package webhookControllers

import (
	"errors"
	"io"
	"log"
	"net/http"
	"os"
	"strings"
	"sync"

	"github.com/MicahParks/keyfunc/v3"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/kisinja/smart-farmer/models"
	"gorm.io/gorm"
)

var (
	jwksOnce sync.Once
	jwks     keyfunc.Keyfunc
	jwksErr  error
)

func webhookKeyfunc() (jwt.Keyfunc, error) {
	issuer := os.Getenv("KINDE_ISSUER_URL")
	if issuer == "" {
		// Local development and tests sign webhook payloads with the
		// shared secret instead of Kinde's keys.
		return func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, errors.New("invalid token signing method")
			}
			return []byte(os.Getenv("JWT_SECRET")), nil
		}, nil
	}

	jwksOnce.Do(func() {
		jwks, jwksErr = keyfunc.NewDefault([]string{strings.TrimSuffix(issuer, "/") + "/.well-known/jwks.json"})
	})
	if jwksErr != nil {
		return nil, jwksErr
	}
	return jwks.Keyfunc, nil
}

type webhookClaims struct {
	Type string                 `json:"type"`
	Data map[string]interface{} `json:"data"`
	jwt.RegisteredClaims
}

// userFromEvent pulls the user object out of a Kinde event payload.
func userFromEvent(data map[string]interface{}) (models.User, bool) {
	raw, ok := data["user"].(map[string]interface{})
	if !ok {
		return models.User{}, false
	}

	id, _ := raw["id"].(string)
	if id == "" {
		return models.User{}, false
	}

	email, _ := raw["email"].(string)
	firstName, _ := raw["first_name"].(string)
	lastName, _ := raw["last_name"].(string)
	picture, _ := raw["picture"].(string)

	return models.User{
		ID:      id,
		Email:   email,
		Name:    strings.TrimSpace(firstName + " " + lastName),
		Picture: picture,
	}, true
}

// POST /api/kinde-webhook
// Kinde delivers events as a signed JWT in the raw request body. The
// signature is verified before anything touches the database.
func KindeWebhookHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		body, err := io.ReadAll(c.Request.Body)
		if err != nil || len(body) == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid token format"})
			return
		}

		kf, err := webhookKeyfunc()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to load signing keys"})
			return
		}

		claims := &webhookClaims{}
		token, err := jwt.ParseWithClaims(strings.TrimSpace(string(body)), claims, kf)
		if err != nil || !token.Valid {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid token"})
			return
		}

		switch claims.Type {
		case "user.created", "user.updated":
			user, ok := userFromEvent(claims.Data)
			if !ok {
				c.JSON(http.StatusBadRequest, gin.H{"message": "Event missing user data"})
				return
			}
			if err := db.Save(&user).Error; err != nil {
				log.Printf("❌ Failed to sync user %s from webhook: %v", user.ID, err)
				c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to sync user"})
				return
			}
		default:
			log.Printf("ℹ️ Ignoring Kinde event type %q", claims.Type)
		}

		c.JSON(http.StatusOK, gin.H{"status": 200, "statusText": "success"})
	}
}
