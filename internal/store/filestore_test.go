package store

import (
	"testing"

	"github.com/campuskit/attendance_backend/internal/models"
)

func strPtr(s string) *string { return &s }

func TestFileStore_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	st, err := OpenFile(dir)
	if err != nil {
		t.Fatalf("open failed: %v", err)
	}

	records := []models.AttendanceRecord{
		{
			RecordID:    "r1",
			StudentID:   "s001",
			Date:        "2024-01-06",
			CheckInTime: strPtr("09:35:00"),
			Status:      models.StatusOnTime,
			CourseID:    "econ7085",
			CourseName:  "Cloud Computing for Business Analytics",
		},
	}
	if err := st.Save("s001", records); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	loaded, err := st.Load("s001")
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if len(loaded) != 1 {
		t.Fatalf("expected 1 record, got %d", len(loaded))
	}
	if loaded[0].RecordID != "r1" || loaded[0].Status != models.StatusOnTime {
		t.Errorf("record did not survive the round trip: %+v", loaded[0])
	}
	if loaded[0].CheckInTime == nil || *loaded[0].CheckInTime != "09:35:00" {
		t.Error("check-in time did not survive the round trip")
	}
}

func TestFileStore_PerStudentIsolation(t *testing.T) {
	st, err := OpenFile(t.TempDir())
	if err != nil {
		t.Fatalf("open failed: %v", err)
	}
	if err := st.Save("s001", []models.AttendanceRecord{{RecordID: "a", StudentID: "s001", Date: "2024-01-06"}}); err != nil {
		t.Fatal(err)
	}
	if err := st.Save("s002", []models.AttendanceRecord{{RecordID: "b", StudentID: "s002", Date: "2024-01-06"}}); err != nil {
		t.Fatal(err)
	}

	one, err := st.Load("s001")
	if err != nil {
		t.Fatal(err)
	}
	if len(one) != 1 || one[0].RecordID != "a" {
		t.Errorf("student s001: got %+v", one)
	}

	missing, err := st.Load("s999")
	if err != nil {
		t.Fatal(err)
	}
	if missing != nil {
		t.Errorf("unknown student must load an empty collection, got %v", missing)
	}
}

func TestFileStore_PersistsAcrossReopen(t *testing.T) {
	dir := t.TempDir()
	st, err := OpenFile(dir)
	if err != nil {
		t.Fatal(err)
	}
	if err := st.Save("s001", []models.AttendanceRecord{{RecordID: "a", StudentID: "s001", Date: "2024-01-06"}}); err != nil {
		t.Fatal(err)
	}

	reopened, err := OpenFile(dir)
	if err != nil {
		t.Fatal(err)
	}
	loaded, err := reopened.Load("s001")
	if err != nil {
		t.Fatal(err)
	}
	if len(loaded) != 1 {
		t.Errorf("expected the record to persist, got %d records", len(loaded))
	}
}
