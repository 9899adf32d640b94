package store

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/campuskit/attendance_backend/internal/models"
)

// FileStore keeps the whole studentID → records map in one JSON document,
// mirroring the original tracker's storage layout. Writes rewrite the file
// via a temp-file rename so readers never see a partial document. The mutex
// only covers this process; two processes sharing a data dir can still lose
// updates (see Store).
type FileStore struct {
	mu   sync.Mutex
	path string
}

func OpenFile(dataDir string) (*FileStore, error) {
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, err
	}
	return &FileStore{path: filepath.Join(dataDir, "attendance_records.json")}, nil
}

func (s *FileStore) Load(studentID string) ([]models.AttendanceRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	all, err := s.read()
	if err != nil {
		return nil, err
	}
	return all[studentID], nil
}

func (s *FileStore) Save(studentID string, records []models.AttendanceRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	all, err := s.read()
	if err != nil {
		return err
	}
	all[studentID] = records
	return s.write(all)
}

func (s *FileStore) Close() error { return nil }

func (s *FileStore) read() (map[string][]models.AttendanceRecord, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return map[string][]models.AttendanceRecord{}, nil
	}
	if err != nil {
		return nil, err
	}
	all := map[string][]models.AttendanceRecord{}
	if len(data) == 0 {
		return all, nil
	}
	if err := json.Unmarshal(data, &all); err != nil {
		return nil, err
	}
	return all, nil
}

func (s *FileStore) write(all map[string][]models.AttendanceRecord) error {
	data, err := json.MarshalIndent(all, "", "  ")
	if err != nil {
		return err
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, s.path)
}
