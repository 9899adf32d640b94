package models

import (
	"time"
)

// Status is the closed set of attendance states a record can hold.
type Status string

const (
	StatusOnTime     Status = "on_time"
	StatusLate       Status = "late"
	StatusEarlyLeave Status = "early_leave"
	StatusAbsent     Status = "absent"
	StatusInProgress Status = "in_progress"
)

func (s Status) Valid() bool {
	switch s {
	case StatusOnTime, StatusLate, StatusEarlyLeave, StatusAbsent, StatusInProgress:
		return true
	}
	return false
}

// Label is the human-readable form used by history tables and exports.
func (s Status) Label() string {
	switch s {
	case StatusOnTime:
		return "On Time"
	case StatusLate:
		return "Late"
	case StatusEarlyLeave:
		return "Early Leave"
	case StatusAbsent:
		return "Absent"
	case StatusInProgress:
		return "Checked In"
	default:
		return string(s)
	}
}

// ParseStatus maps a stored or exported status string back to the enum.
func ParseStatus(s string) (Status, bool) {
	switch s {
	case "on_time", "On Time":
		return StatusOnTime, true
	case "late", "Late":
		return StatusLate, true
	case "early_leave", "Early Leave":
		return StatusEarlyLeave, true
	case "absent", "Absent":
		return StatusAbsent, true
	case "in_progress", "Checked In":
		return StatusInProgress, true
	}
	return "", false
}

// AttendanceRecord is one student's attendance for one calendar date.
// At most one record exists per (student, date); it is created on the first
// check-in of the day, mutated by check-out and never deleted by the engine.
// Date is "2006-01-02" in the process-local zone; the time fields are
// "15:04:05" wall clock strings, nil until the matching action happens.
type AttendanceRecord struct {
	RecordID     string    `gorm:"primaryKey;size:36" json:"record_id"`
	StudentID    string    `gorm:"size:64;uniqueIndex:idx_student_date" json:"student_id"`
	Date         string    `gorm:"size:10;uniqueIndex:idx_student_date" json:"date"`
	CheckInTime  *string   `gorm:"size:8" json:"check_in,omitempty"`
	CheckOutTime *string   `gorm:"size:8" json:"check_out,omitempty"`
	Status       Status    `gorm:"size:16" json:"status"`
	CourseID     string    `gorm:"size:32" json:"course_id"`
	CourseName   string    `json:"course_name"`
	CreatedAt    time.Time `json:"-"`
	UpdatedAt    time.Time `json:"-"`
}

// CheckedIn reports whether the record carries a check-in time.
func (r *AttendanceRecord) CheckedIn() bool {
	return r.CheckInTime != nil && *r.CheckInTime != ""
}

// Completed reports whether both check-in and check-out happened.
func (r *AttendanceRecord) Completed() bool {
	return r.CheckedIn() && r.CheckOutTime != nil && *r.CheckOutTime != ""
}
