package middleware

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/campuskit/attendance_backend/internal/roster"
)

type AuthConfig struct {
	JWTSecret    string
	JWTExpiresIn time.Duration
}

type Claims struct {
	StudentID string `json:"student_id"`
	Name      string `json:"student_name"`
	CourseID  string `json:"course_id"`
	jwt.RegisteredClaims
}

const accountKey = "account"

// AuthMiddleware validates the bearer token and loads the student's session
// account into the gin context. Tokens for students no longer known to the
// roster (or the registered-user file) are rejected.
func AuthMiddleware(students *roster.Service, cfg AuthConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		auth := c.GetHeader("Authorization")
		if auth == "" || !strings.HasPrefix(strings.ToLower(auth), "bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing or invalid authorization header"})
			return
		}
		tokenStr := strings.TrimSpace(auth[len("Bearer "):])

		claims := &Claims{}
		token, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
			return []byte(cfg.JWTSecret), nil
		})
		if err != nil || !token.Valid {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}

		account, ok := students.Lookup(claims.StudentID)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "student not found"})
			return
		}
		// the enrolled course may have been set at registration after the
		// token was issued; the claim wins when both are present
		if claims.CourseID != "" {
			account.CourseID = claims.CourseID
		}
		c.Set(accountKey, account)
		c.Next()
	}
}

// Account pulls the session account a passed AuthMiddleware stored.
func Account(c *gin.Context) (roster.Account, bool) {
	val, ok := c.Get(accountKey)
	if !ok {
		return roster.Account{}, false
	}
	account, ok := val.(roster.Account)
	return account, ok
}
