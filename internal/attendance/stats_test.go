package attendance

import (
	"testing"

	"github.com/campuskit/attendance_backend/internal/models"
)

func strPtr(s string) *string { return &s }

func record(date string, checkIn, checkOut string, status models.Status, courseID string) models.AttendanceRecord {
	rec := models.AttendanceRecord{
		StudentID: "s001",
		Date:      date,
		Status:    status,
		CourseID:  courseID,
	}
	if checkIn != "" {
		rec.CheckInTime = strPtr(checkIn)
	}
	if checkOut != "" {
		rec.CheckOutTime = strPtr(checkOut)
	}
	return rec
}

func TestComputeStatistics_NoRecords(t *testing.T) {
	s := ComputeStatistics(nil, Filter{Start: "2024-01-01", End: "2024-01-31"})
	if s.AttendanceRate != 0 || s.OnTimeRate != 0 {
		t.Errorf("zero-record stats must report zero rates, got %v / %v", s.AttendanceRate, s.OnTimeRate)
	}
	if s.TotalDays != 31 {
		t.Errorf("expected 31 days in range, got %d", s.TotalDays)
	}
}

func TestComputeStatistics_RangeDayCountConvention(t *testing.T) {
	// two records inside the range, one carrying a check-in
	records := []models.AttendanceRecord{
		record("2024-01-02", "09:35:00", "12:15:00", models.StatusOnTime, "econ7085"),
		record("2024-01-04", "", "", models.StatusAbsent, "econ7085"),
	}
	s := ComputeStatistics(records, Filter{Start: "2024-01-01", End: "2024-01-05"})
	if s.TotalDays != 5 {
		t.Errorf("expected TotalDays=5 (inclusive day count), got %d", s.TotalDays)
	}
	if s.PresentDays != 1 {
		t.Errorf("expected PresentDays=1, got %d", s.PresentDays)
	}
	if s.AttendanceRate != 20.0 {
		t.Errorf("expected attendance rate 20.0, got %v", s.AttendanceRate)
	}
	if s.OnTimeRate != 100.0 {
		t.Errorf("expected on-time rate 100.0, got %v", s.OnTimeRate)
	}
}

func TestComputeStatistics_RoundsHalfUp(t *testing.T) {
	// 1 present of 16 days = 6.25% -> 6.3 with round-half-up
	records := []models.AttendanceRecord{
		record("2024-01-03", "09:35:00", "", models.StatusOnTime, "econ7085"),
	}
	s := ComputeStatistics(records, Filter{Start: "2024-01-01", End: "2024-01-16"})
	if s.AttendanceRate != 6.3 {
		t.Errorf("expected 6.3, got %v", s.AttendanceRate)
	}
}

func TestComputeStatistics_InvertedRangeMatchesNothing(t *testing.T) {
	records := []models.AttendanceRecord{
		record("2024-01-02", "09:35:00", "", models.StatusOnTime, "econ7085"),
	}
	s := ComputeStatistics(records, Filter{Start: "2024-01-05", End: "2024-01-01"})
	if s.TotalDays != 0 || s.PresentDays != 0 || s.AttendanceRate != 0 {
		t.Errorf("inverted range must yield empty stats, got %+v", s)
	}
}

func TestComputeStatistics_OpenRangeUsesRecordCount(t *testing.T) {
	records := []models.AttendanceRecord{
		record("2024-01-02", "09:35:00", "", models.StatusOnTime, "econ7085"),
		record("2024-01-03", "", "", models.StatusAbsent, "econ7085"),
	}
	s := ComputeStatistics(records, Filter{})
	if s.TotalDays != 2 {
		t.Errorf("open range: expected TotalDays=2 (record count), got %d", s.TotalDays)
	}
	if s.AttendanceRate != 50.0 {
		t.Errorf("expected 50.0, got %v", s.AttendanceRate)
	}
}

func TestFilter_CourseAndStatus(t *testing.T) {
	records := []models.AttendanceRecord{
		record("2024-01-02", "09:35:00", "", models.StatusOnTime, "econ7085"),
		record("2024-01-03", "10:00:00", "", models.StatusLate, "econ7085"),
		record("2024-01-04", "18:35:00", "", models.StatusOnTime, "econ7035"),
	}

	byCourse := Filter{CourseID: "ECON7085"}.Apply(records)
	if len(byCourse) != 2 {
		t.Errorf("course filter is case-insensitive; expected 2 records, got %d", len(byCourse))
	}

	byStatus := Filter{Status: models.StatusLate}.Apply(records)
	if len(byStatus) != 1 || byStatus[0].Date != "2024-01-03" {
		t.Errorf("status filter: expected the late record only, got %v", byStatus)
	}
}

func TestSortRecent(t *testing.T) {
	records := []models.AttendanceRecord{
		record("2024-01-02", "09:35:00", "", models.StatusOnTime, "econ7085"),
		record("2024-01-06", "09:35:00", "", models.StatusOnTime, "econ7085"),
		record("2024-01-04", "", "", models.StatusAbsent, "econ7085"),
		record("2024-01-05", "18:35:00", "", models.StatusOnTime, "econ7035"),
		record("2024-01-03", "10:00:00", "", models.StatusLate, "econ7085"),
		record("2024-01-01", "09:35:00", "", models.StatusOnTime, "econ7085"),
	}

	recent := SortRecent(records, 0) // default panel size
	if len(recent) != 5 {
		t.Fatalf("expected default limit of 5, got %d", len(recent))
	}
	want := []string{"2024-01-06", "2024-01-05", "2024-01-04", "2024-01-03", "2024-01-02"}
	for i, date := range want {
		if recent[i].Date != date {
			t.Errorf("position %d: expected %s, got %s", i, date, recent[i].Date)
		}
	}

	// input order must be untouched
	if records[0].Date != "2024-01-02" {
		t.Error("SortRecent mutated its input")
	}
}
