package store

import (
	"fmt"

	"github.com/campuskit/attendance_backend/internal/config"
	"github.com/campuskit/attendance_backend/internal/models"
)

// Store persists attendance records keyed by student id. Load returns the
// student's full record collection; Save replaces it wholesale. Callers own
// the read-modify-write cycle, so concurrent writers for the same student are
// last-write-wins — the same race the browser-storage original had across
// tabs. None of the drivers guard against it beyond per-call consistency.
type Store interface {
	Load(studentID string) ([]models.AttendanceRecord, error)
	Save(studentID string, records []models.AttendanceRecord) error
	Close() error
}

// Open builds the store named by cfg.StoreDriver.
func Open(cfg *config.Config) (Store, error) {
	switch cfg.StoreDriver {
	case "", "file":
		return OpenFile(cfg.DataDir)
	case "postgres":
		return OpenGorm(cfg)
	case "redis":
		return OpenRedis(cfg)
	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
	}
}
