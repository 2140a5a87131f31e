package middleware

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"jungleetoys_back_end/internal/database"

	"github.com/gin-gonic/gin"
)

const (
	LoginMaxAttempts = 5
	LoginCooldown    = 15 * time.Minute
	attemptWindow    = 15 * time.Minute
)

// LoginRateLimit throttles login attempts per email using Redis counters.
func LoginRateLimit() gin.HandlerFunc {
	return func(c *gin.Context) {
		// Read the body without consuming it for the handler.
		bodyBytes, _ := io.ReadAll(c.Request.Body)

		var input struct {
			Email string `json:"email"`
		}
		if err := json.Unmarshal(bodyBytes, &input); err != nil || input.Email == "" {
			c.Request.Body = io.NopCloser(bytes.NewBuffer(bodyBytes))
			c.Next()
			return
		}
		c.Request.Body = io.NopCloser(bytes.NewBuffer(bodyBytes))

		ctx := context.Background()
		cooldownKey := "login_cooldown:" + input.Email

		if database.Redis.Exists(ctx, cooldownKey).Val() > 0 {
			ttl := database.Redis.TTL(ctx, cooldownKey).Val()
			c.JSON(http.StatusTooManyRequests, gin.H{
				"error":       fmt.Sprintf("Too many failed attempts. Try again in %d minute(s)", int(ttl.Minutes())+1),
				"retry_after": int(ttl.Seconds()),
			})
			c.Abort()
			return
		}

		c.Next()
	}
}

// RecordLoginFailure bumps the per-email failure counter and arms the
// cooldown once the limit is reached.
func RecordLoginFailure(email string) {
	ctx := context.Background()
	key := "login_attempts:" + email

	attempts, _ := database.Redis.Incr(ctx, key).Result()
	database.Redis.Expire(ctx, key, attemptWindow)

	if attempts >= LoginMaxAttempts {
		database.Redis.Set(ctx, "login_cooldown:"+email, "1", LoginCooldown)
		database.Redis.Del(ctx, key)
	}
}

// ClearLoginFailures resets the counter after a successful login.
func ClearLoginFailures(email string) {
	ctx := context.Background()
	database.Redis.Del(ctx, "login_attempts:"+email)
}
