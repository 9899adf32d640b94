package controllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/campuskit/attendance_backend/internal/middleware"
	"github.com/campuskit/attendance_backend/internal/roster"
	"github.com/campuskit/attendance_backend/internal/schedule"
)

type AuthController struct {
	Students  *roster.Service
	Schedule  *schedule.Table
	JWTSecret string
	ExpiresIn time.Duration
}

type loginRequest struct {
	StudentID string `json:"student_id" binding:"required"`
	Password  string `json:"password" binding:"required"`
}

type registerRequest struct {
	StudentID string `json:"student_id" binding:"required"`
	FullName  string `json:"full_name" binding:"required"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	CourseID  string `json:"course_id"`
	Password  string `json:"password" binding:"required,min=6"`
}

func (a *AuthController) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	account, err := a.Students.Authenticate(req.StudentID, req.Password)
	if err != nil {
		if errors.Is(err, roster.ErrBadCredential) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid student id or password"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	// roster rows without an enrollment column fall back to the first
	// configured course
	if account.CourseID == "" && len(a.Schedule.Courses) > 0 {
		account.CourseID = a.Schedule.Courses[0].ID
	}

	token, expiresAt, err := a.issueToken(account)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to sign token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"access_token": token,
		"token_type":   "Bearer",
		"expires_at":   expiresAt,
		"student":      account,
	})
}

func (a *AuthController) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.CourseID != "" && a.Schedule.Course(req.CourseID) == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown course id"})
		return
	}

	err := a.Students.Register(req.StudentID, req.FullName, req.Email, req.Phone, req.CourseID, req.Password)
	if err != nil {
		if errors.Is(err, roster.ErrStudentExists) {
			c.JSON(http.StatusConflict, gin.H{"error": "student id already registered"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":    "registered",
		"student_id": req.StudentID,
	})
}

func (a *AuthController) Me(c *gin.Context) {
	account, ok := middleware.Account(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	c.JSON(http.StatusOK, account)
}

func (a *AuthController) issueToken(account roster.Account) (string, time.Time, error) {
	expiresAt := time.Now().Add(a.ExpiresIn)
	claims := middleware.Claims{
		StudentID: account.StudentID,
		Name:      account.Name,
		CourseID:  account.CourseID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   account.StudentID,
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(a.JWTSecret))
	return signed, expiresAt, err
}
