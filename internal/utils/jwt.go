package utils

import (
	"os"
	"time"

	"jungleetoys_back_end/internal/models"

	"github.com/golang-jwt/jwt/v5"
)

// GenerateJWT issues the 24h HS256 token carried by the auth cookie.
func GenerateJWT(user models.User) (string, error) {
	secret := os.Getenv("JWT_SECRET")

	claims := jwt.MapClaims{
		"user_id": user.ID,
		"email":   user.Email,
		"role":    user.Role,
		"exp":     time.Now().Add(24 * time.Hour).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}
