package store

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/campuskit/attendance_backend/internal/config"
	"github.com/campuskit/attendance_backend/internal/models"
)

// GormStore keeps records as rows in Postgres. The (student_id, date) unique
// index enforces the one-record-per-day invariant at the storage level too.
type GormStore struct {
	db *gorm.DB
}

func OpenGorm(cfg *config.Config) (*GormStore, error) {
	dsn := fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=UTC",
		cfg.DBHost, cfg.DBUser, cfg.DBPassword, cfg.DBName, cfg.DBPort, cfg.DBSSLMode,
	)
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, err
	}
	if err := db.AutoMigrate(&models.AttendanceRecord{}); err != nil {
		return nil, err
	}
	return &GormStore{db: db}, nil
}

func (s *GormStore) Load(studentID string) ([]models.AttendanceRecord, error) {
	var records []models.AttendanceRecord
	err := s.db.Where("student_id = ?", studentID).Order("date asc").Find(&records).Error
	if err != nil {
		return nil, err
	}
	return records, nil
}

// Save replaces the student's collection to honor the Store contract; a
// transaction keeps the delete+insert pair whole.
func (s *GormStore) Save(studentID string, records []models.AttendanceRecord) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("student_id = ?", studentID).Delete(&models.AttendanceRecord{}).Error; err != nil {
			return err
		}
		if len(records) == 0 {
			return nil
		}
		return tx.Create(&records).Error
	})
}

func (s *GormStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
