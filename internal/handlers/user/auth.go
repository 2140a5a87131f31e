package user

import (
	"log"
	"net/http"
	"strings"
	"time"

	"jungleetoys_back_end/internal/database"
	"jungleetoys_back_end/internal/middleware"
	"jungleetoys_back_end/internal/models"
	"jungleetoys_back_end/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/gocql/gocql"
)

const cookieMaxAge = 24 * 60 * 60 // matches the JWT expiry

// Register creates a local account and signs the customer straight in.
func Register(c *gin.Context) {
	var req struct {
		Name     string `json:"name" binding:"required,min=2"`
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required,min=8"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input", "details": err.Error()})
		return
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))

	session, err := database.GetUsersSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database connection error"})
		return
	}

	var existingID string
	if err := session.Query("SELECT user_id FROM users_by_email WHERE email = ?", req.Email).Scan(&existingID); err == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "An account with this email already exists"})
		return
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Password hashing failed"})
		return
	}

	userID := gocql.TimeUUID()
	now := time.Now()

	if err := session.Query(`
		INSERT INTO users (user_id, email, name, password_hash, role, provider, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		userID, req.Email, req.Name, hash, "customer", "local", now).Exec(); err != nil {
		log.Printf("❌ User creation failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Account creation failed"})
		return
	}

	if err := session.Query(`
		INSERT INTO users_by_email (email, user_id) VALUES (?, ?)`,
		req.Email, userID).Exec(); err != nil {
		log.Printf("⚠️ users_by_email index write failed: %v", err)
	}

	user := models.User{
		ID:        userID.String(),
		Email:     req.Email,
		Name:      req.Name,
		Role:      "customer",
		Provider:  "local",
		CreatedAt: now,
	}

	token, err := utils.GenerateJWT(user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Token generation failed"})
		return
	}

	log.Printf("✅ Account created: %s (%s)", user.Email, user.ID)
	setAuthCookie(c, token)
	c.JSON(http.StatusCreated, gin.H{"token": token, "user": user})
}

// Login authenticates a local account.
func Login(c *gin.Context) {
	var req struct {
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))

	session, err := database.GetUsersSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database connection error"})
		return
	}

	var userID gocql.UUID
	if err := session.Query("SELECT user_id FROM users_by_email WHERE email = ?", req.Email).Scan(&userID); err != nil {
		middleware.RecordLoginFailure(req.Email)
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
		return
	}

	var user models.User
	var hash string
	if err := session.Query(`
		SELECT email, name, password_hash, role, provider, created_at
		FROM users WHERE user_id = ?`, userID).Scan(
		&user.Email, &user.Name, &hash, &user.Role, &user.Provider, &user.CreatedAt); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
		return
	}
	user.ID = userID.String()

	ok, err := utils.VerifyPassword(req.Password, hash)
	if err != nil || !ok {
		middleware.RecordLoginFailure(req.Email)
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
		return
	}

	middleware.ClearLoginFailures(req.Email)

	token, err := utils.GenerateJWT(user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Token generation failed"})
		return
	}

	log.Printf("✅ Login: %s", user.Email)
	setAuthCookie(c, token)
	c.JSON(http.StatusOK, gin.H{"token": token, "user": user})
}

// Logout clears the auth cookie.
func Logout(c *gin.Context) {
	c.SetCookie(middleware.CookieName, "", -1, "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{"message": "Logged out"})
}

// Me returns the authenticated user's profile.
func Me(c *gin.Context) {
	userID := c.GetString("user_id")

	session, err := database.GetUsersSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database connection error"})
		return
	}

	uid, err := gocql.ParseUUID(userID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user id"})
		return
	}

	var user models.User
	if err := session.Query(`
		SELECT email, name, role, provider, created_at
		FROM users WHERE user_id = ?`, uid).Scan(
		&user.Email, &user.Name, &user.Role, &user.Provider, &user.CreatedAt); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}
	user.ID = userID

	c.JSON(http.StatusOK, gin.H{"user": user})
}

func setAuthCookie(c *gin.Context, token string) {
	secure := strings.HasPrefix(strings.ToLower(c.Request.Header.Get("X-Forwarded-Proto")), "https")
	c.SetCookie(middleware.CookieName, token, cookieMaxAge, "/", "", secure, true)
}
