package user

import (
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"jungleetoys_back_end/internal/database"
	"jungleetoys_back_end/internal/models"
	"jungleetoys_back_end/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/gocql/gocql"
	"github.com/markbates/goth/gothic"
)

// OAuthBegin redirects to the provider's consent page.
// GET /api/auth/:provider
func OAuthBegin(c *gin.Context) {
	q := c.Request.URL.Query()
	q.Set("provider", c.Param("provider"))
	c.Request.URL.RawQuery = q.Encode()

	gothic.BeginAuthHandler(c.Writer, c.Request)
}

// OAuthCallback completes the provider handshake, upserts the user and
// issues the same JWT cookie local logins get.
// GET /api/auth/:provider/callback
func OAuthCallback(c *gin.Context) {
	q := c.Request.URL.Query()
	q.Set("provider", c.Param("provider"))
	c.Request.URL.RawQuery = q.Encode()

	gothUser, err := gothic.CompleteUserAuth(c.Writer, c.Request)
	if err != nil {
		log.Printf("❌ OAuth callback failed: %v", err)
		c.JSON(http.StatusUnauthorized, gin.H{"error": "OAuth authentication failed"})
		return
	}

	email := strings.ToLower(gothUser.Email)
	if email == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Provider returned no email"})
		return
	}

	session, err := database.GetUsersSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database connection error"})
		return
	}

	user := models.User{
		Email:    email,
		Name:     gothUser.Name,
		Role:     "customer",
		Provider: gothUser.Provider,
	}

	var userID gocql.UUID
	if err := session.Query("SELECT user_id FROM users_by_email WHERE email = ?", email).Scan(&userID); err == nil {
		// Existing account, OAuth or local: sign it in.
		user.ID = userID.String()
		session.Query("SELECT name, role, created_at FROM users WHERE user_id = ?", userID).
			Scan(&user.Name, &user.Role, &user.CreatedAt)
	} else {
		userID = gocql.TimeUUID()
		user.ID = userID.String()
		user.CreatedAt = time.Now()

		if err := session.Query(`
			INSERT INTO users (user_id, email, name, password_hash, role, provider, created_at)
			VALUES (?, ?, ?, ?, ?, ?, ?)`,
			userID, email, user.Name, "", user.Role, user.Provider, user.CreatedAt).Exec(); err != nil {
			log.Printf("❌ OAuth user creation failed: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Account creation failed"})
			return
		}
		session.Query("INSERT INTO users_by_email (email, user_id) VALUES (?, ?)", email, userID).Exec()
		log.Printf("✅ OAuth account created: %s via %s", email, gothUser.Provider)
	}

	token, err := utils.GenerateJWT(user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Token generation failed"})
		return
	}
	setAuthCookie(c, token)

	redirect := os.Getenv("STOREFRONT_URL")
	if redirect == "" {
		redirect = "http://localhost:3000"
	}
	c.Redirect(http.StatusTemporaryRedirect, redirect)
}
