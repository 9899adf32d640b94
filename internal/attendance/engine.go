package attendance

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/campuskit/attendance_backend/internal/models"
	"github.com/campuskit/attendance_backend/internal/schedule"
)

var (
	// ErrNoClassScheduled is returned when a check-in or check-out is
	// attempted on a day the enrolled course has no session.
	ErrNoClassScheduled = errors.New("no class scheduled today")
	// ErrNotCheckedIn is returned when a check-out is attempted before any
	// check-in happened that day.
	ErrNotCheckedIn = errors.New("not checked in yet")
)

const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04:05"
)

// EvaluateCheckIn computes the record a check-in at now produces. Status is
// late when now is strictly past sessionStart + lateThreshold, on_time
// otherwise. When a record for the day already exists its check-in time and
// status are overwritten from the current clock (re-check-in is allowed and
// never leaves a stale status); the check-out time, if any, is untouched.
// The caller persists the returned record.
func EvaluateCheckIn(course *schedule.Course, sess *schedule.Session, rule schedule.Rule, existing *models.AttendanceRecord, studentID string, now time.Time) (models.AttendanceRecord, error) {
	if sess == nil {
		return models.AttendanceRecord{}, ErrNoClassScheduled
	}

	lateAfter := sess.StartTime.At(now).Add(time.Duration(rule.LateThresholdMinutes) * time.Minute)
	status := models.StatusOnTime
	if now.After(lateAfter) {
		status = models.StatusLate
	}

	checkIn := now.Format(TimeLayout)

	var rec models.AttendanceRecord
	if existing != nil {
		rec = *existing
	} else {
		rec = models.AttendanceRecord{
			RecordID:  uuid.NewString(),
			StudentID: studentID,
			Date:      now.Format(DateLayout),
		}
	}
	rec.CheckInTime = &checkIn
	rec.Status = status
	if course != nil {
		rec.CourseID = course.ID
		rec.CourseName = course.Name
	}
	return rec, nil
}

// EvaluateCheckOut computes the record a check-out at now produces, plus an
// advisory earlyLeave flag: true when now is before sessionEnd minus the
// early-leave threshold. The engine never blocks an early check-out; seeking
// confirmation is the caller's concern. An early leave downgrades on_time to
// early_leave; a late status is preserved as-is, and a record that already
// completed keeps its final status untouched.
func EvaluateCheckOut(sess *schedule.Session, rule schedule.Rule, existing *models.AttendanceRecord, now time.Time) (models.AttendanceRecord, bool, error) {
	if sess == nil {
		return models.AttendanceRecord{}, false, ErrNoClassScheduled
	}
	if existing == nil || !existing.CheckedIn() {
		return models.AttendanceRecord{}, false, ErrNotCheckedIn
	}

	rec := *existing
	if rec.Completed() {
		return rec, false, nil
	}

	earlyBefore := sess.EndTime.At(now).Add(-time.Duration(rule.EarlyLeaveThresholdMinutes) * time.Minute)
	earlyLeave := now.Before(earlyBefore)

	checkOut := now.Format(TimeLayout)
	rec.CheckOutTime = &checkOut
	if earlyLeave && rec.Status == models.StatusOnTime {
		rec.Status = models.StatusEarlyLeave
	}
	return rec, earlyLeave, nil
}

// DisplayStatus is the UI projection of a day's attendance. It is derived,
// never persisted.
type DisplayStatus string

const (
	DisplayNoClass      DisplayStatus = "no_class"
	DisplayNotCheckedIn DisplayStatus = "not_checked_in"
	DisplayCheckedIn    DisplayStatus = "checked_in"
	DisplayCompleted    DisplayStatus = "completed"
)

// DeriveDisplayStatus projects a record (possibly nil) and today's session
// availability into what the UI should show. No session today always wins,
// regardless of prior records.
func DeriveDisplayStatus(rec *models.AttendanceRecord, hasSessionToday bool) DisplayStatus {
	if !hasSessionToday {
		return DisplayNoClass
	}
	switch {
	case rec == nil || !rec.CheckedIn():
		return DisplayNotCheckedIn
	case rec.Completed():
		return DisplayCompleted
	default:
		return DisplayCheckedIn
	}
}
