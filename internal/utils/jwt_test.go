package utils

import (
	"testing"

	"jungleetoys_back_end/internal/models"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateJWT_Claims(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	tokenString, err := GenerateJWT(models.User{
		ID:    "user-123",
		Email: "asha@example.co.uk",
		Role:  "customer",
	})
	require.NoError(t, err)

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		return []byte("test-secret"), nil
	})
	require.NoError(t, err)
	require.True(t, token.Valid)

	claims := token.Claims.(jwt.MapClaims)
	assert.Equal(t, "user-123", claims["user_id"])
	assert.Equal(t, "asha@example.co.uk", claims["email"])
	assert.Equal(t, "customer", claims["role"])
	assert.NotNil(t, claims["exp"])
}
