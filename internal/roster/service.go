package roster

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/campuskit/attendance_backend/internal/models"
	"github.com/campuskit/attendance_backend/internal/utils"
)

var (
	ErrStudentExists = errors.New("student id already registered")
	ErrBadCredential = errors.New("invalid student id or password")
)

// Account is the session context handed to the engine after login.
type Account struct {
	StudentID string `json:"student_id"`
	Name      string `json:"student_name"`
	CourseID  string `json:"course_id"`
}

// Service merges the fetched roster with self-registered users, which are
// kept in a JSON file under the data dir. Roster students authenticate with
// the last 8 digits of their phone; registered users with their password
// (stored bcrypt-hashed, unlike the plaintext original).
type Service struct {
	mu       sync.RWMutex
	students map[string]models.Student
	regPath  string
}

func NewService(students []models.Student, dataDir string) (*Service, error) {
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, err
	}
	byID := make(map[string]models.Student, len(students))
	for _, s := range students {
		byID[s.StudentID] = s
	}
	return &Service{
		students: byID,
		regPath:  filepath.Join(dataDir, "registered_users.json"),
	}, nil
}

// Authenticate verifies credentials and returns the session account.
func (s *Service) Authenticate(studentID, password string) (Account, error) {
	s.mu.RLock()
	student, onRoster := s.students[studentID]
	s.mu.RUnlock()

	if onRoster && student.Phone != "" && password == phoneTail(student.Phone) {
		return Account{StudentID: student.StudentID, Name: student.Name, CourseID: student.CourseID}, nil
	}

	registered, err := s.readRegistered()
	if err != nil {
		return Account{}, err
	}
	for _, u := range registered {
		if u.StudentID != studentID {
			continue
		}
		if u.Phone != "" && password == phoneTail(u.Phone) {
			return Account{StudentID: u.StudentID, Name: u.Name, CourseID: u.CourseID}, nil
		}
		if u.PasswordHash != "" && utils.CheckPassword(u.PasswordHash, password) {
			return Account{StudentID: u.StudentID, Name: u.Name, CourseID: u.CourseID}, nil
		}
	}
	return Account{}, ErrBadCredential
}

// Register adds a self-registered user. Ids already on the roster or already
// registered are rejected.
func (s *Service) Register(studentID, name, email, phone, courseID, password string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.students[studentID]; ok {
		return ErrStudentExists
	}
	registered, err := s.readRegistered()
	if err != nil {
		return err
	}
	for _, u := range registered {
		if u.StudentID == studentID {
			return ErrStudentExists
		}
	}

	hash, err := utils.HashPassword(password)
	if err != nil {
		return err
	}
	registered = append(registered, models.RegisteredUser{
		StudentID:    studentID,
		Name:         name,
		Email:        email,
		Phone:        phone,
		CourseID:     courseID,
		PasswordHash: hash,
		RegisteredAt: time.Now().UTC().Format(time.RFC3339),
	})
	return s.writeRegistered(registered)
}

// Lookup resolves an account without checking credentials, for token
// refresh / me endpoints.
func (s *Service) Lookup(studentID string) (Account, bool) {
	s.mu.RLock()
	student, ok := s.students[studentID]
	s.mu.RUnlock()
	if ok {
		return Account{StudentID: student.StudentID, Name: student.Name, CourseID: student.CourseID}, true
	}
	registered, err := s.readRegistered()
	if err != nil {
		return Account{}, false
	}
	for _, u := range registered {
		if u.StudentID == studentID {
			return Account{StudentID: u.StudentID, Name: u.Name, CourseID: u.CourseID}, true
		}
	}
	return Account{}, false
}

func (s *Service) readRegistered() ([]models.RegisteredUser, error) {
	data, err := os.ReadFile(s.regPath)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var users []models.RegisteredUser
	if len(data) == 0 {
		return nil, nil
	}
	if err := json.Unmarshal(data, &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (s *Service) writeRegistered(users []models.RegisteredUser) error {
	data, err := json.MarshalIndent(users, "", "  ")
	if err != nil {
		return err
	}
	tmp := s.regPath + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, s.regPath)
}
