package controllers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/campuskit/attendance_backend/internal/roster"
	"github.com/campuskit/attendance_backend/internal/schedule"
)

func newAuthRouter(t *testing.T) (*gin.Engine, *roster.Service) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	svc, err := roster.NewService(nil, t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	ctrl := &AuthController{
		Students:  svc,
		Schedule:  schedule.Default(),
		JWTSecret: "test_secret",
		ExpiresIn: time.Hour,
	}
	r := gin.New()
	r.POST("/api/v1/auth/login", ctrl.Login)
	r.POST("/api/v1/auth/register", ctrl.Register)
	return r, svc
}

func postJSON(r *gin.Engine, path string, body gin.H) *httptest.ResponseRecorder {
	data, _ := json.Marshal(body)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	return w
}

func TestLogin_InvalidCredentials(t *testing.T) {
	r, _ := newAuthRouter(t)
	w := postJSON(r, "/api/v1/auth/login", gin.H{"student_id": "s404", "password": "nope1234"})
	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", w.Code)
	}
}

func TestLogin_DefaultsEnrollmentToFirstCourse(t *testing.T) {
	r, svc := newAuthRouter(t)
	// registered without choosing a course
	if err := svc.Register("s200", "Dana Ho", "", "", "", "hunter22"); err != nil {
		t.Fatal(err)
	}

	w := postJSON(r, "/api/v1/auth/login", gin.H{"student_id": "s200", "password": "hunter22"})
	if w.Code != http.StatusOK {
		t.Fatalf("login failed: %d %s", w.Code, w.Body.String())
	}
	var resp struct {
		Student roster.Account `json:"student"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.Student.CourseID != "econ7085" {
		t.Errorf("expected fallback to the first configured course, got %q", resp.Student.CourseID)
	}
}

func TestRegister_UnknownCourseRejected(t *testing.T) {
	r, _ := newAuthRouter(t)
	w := postJSON(r, "/api/v1/auth/register", gin.H{
		"student_id": "s300",
		"full_name":  "Evan Lau",
		"course_id":  "phys1001",
		"password":   "hunter22",
	})
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for unknown course, got %d %s", w.Code, w.Body.String())
	}
}

func TestRegister_DuplicateRejected(t *testing.T) {
	r, _ := newAuthRouter(t)
	body := gin.H{"student_id": "s300", "full_name": "Evan Lau", "password": "hunter22"}
	if w := postJSON(r, "/api/v1/auth/register", body); w.Code != http.StatusCreated {
		t.Fatalf("first register failed: %d %s", w.Code, w.Body.String())
	}
	if w := postJSON(r, "/api/v1/auth/register", body); w.Code != http.StatusConflict {
		t.Errorf("expected 409 for duplicate, got %d", w.Code)
	}
}
