package attendance

import (
	"math"
	"sort"
	"strings"
	"time"

	"github.com/campuskit/attendance_backend/internal/models"
)

// Filter narrows a record set for history views, statistics and exports.
// Start and End are inclusive "2006-01-02" dates; an empty bound is open.
// An empty CourseID or Status matches everything.
type Filter struct {
	Start    string
	End      string
	CourseID string
	Status   models.Status
}

// Matches reports whether the record passes the filter. Dates in the fixed
// layout compare correctly as strings, which also gives the inclusive
// end-of-day boundary for free.
func (f Filter) Matches(rec *models.AttendanceRecord) bool {
	if f.Start != "" && rec.Date < f.Start {
		return false
	}
	if f.End != "" && rec.Date > f.End {
		return false
	}
	if f.CourseID != "" && !strings.EqualFold(rec.CourseID, f.CourseID) {
		return false
	}
	if f.Status != "" && rec.Status != f.Status {
		return false
	}
	return true
}

// Apply returns the records passing the filter, in input order. A range with
// End before Start matches nothing; the caller surfaces that as empty
// results, not an error.
func (f Filter) Apply(records []models.AttendanceRecord) []models.AttendanceRecord {
	out := make([]models.AttendanceRecord, 0, len(records))
	for i := range records {
		if f.Matches(&records[i]) {
			out = append(out, records[i])
		}
	}
	return out
}

// Stats summarizes a filtered record set.
//
// TotalDays is the inclusive day count of the requested range (the
// original tracker's convention), so days without any record still count
// against the attendance rate. When either bound is open the filtered record
// count is used instead, since an unbounded range has no day count.
type Stats struct {
	TotalDays      int     `json:"total_days"`
	PresentDays    int     `json:"present_days"`
	OnTimeDays     int     `json:"on_time_days"`
	LateDays       int     `json:"late_days"`
	EarlyLeaveDays int     `json:"early_leave_days"`
	AttendanceRate float64 `json:"attendance_rate"`
	OnTimeRate     float64 `json:"on_time_rate"`
}

// ComputeStatistics filters the records and derives attendance statistics.
// Rates are percentages rounded half-up to one decimal, and zero whenever
// their denominator is zero.
func ComputeStatistics(records []models.AttendanceRecord, f Filter) Stats {
	filtered := f.Apply(records)

	var s Stats
	s.TotalDays = rangeDays(f.Start, f.End)
	if s.TotalDays < 0 {
		s.TotalDays = len(filtered)
	}
	for i := range filtered {
		if !filtered[i].CheckedIn() {
			continue
		}
		s.PresentDays++
		switch filtered[i].Status {
		case models.StatusOnTime:
			s.OnTimeDays++
		case models.StatusLate:
			s.LateDays++
		case models.StatusEarlyLeave:
			s.EarlyLeaveDays++
		case models.StatusAbsent, models.StatusInProgress:
			// present but neither on time nor flagged; counted in PresentDays only
		}
	}
	if s.TotalDays > 0 {
		s.AttendanceRate = round1(float64(s.PresentDays) / float64(s.TotalDays) * 100)
	}
	if s.PresentDays > 0 {
		s.OnTimeRate = round1(float64(s.OnTimeDays) / float64(s.PresentDays) * 100)
	}
	return s
}

// rangeDays returns the inclusive day count of [start, end], 0 when the
// range is inverted and -1 when either bound is open or malformed.
func rangeDays(start, end string) int {
	if start == "" || end == "" {
		return -1
	}
	from, err := time.Parse(DateLayout, start)
	if err != nil {
		return -1
	}
	to, err := time.Parse(DateLayout, end)
	if err != nil {
		return -1
	}
	if to.Before(from) {
		return 0
	}
	return int(to.Sub(from).Hours()/24) + 1
}

func round1(x float64) float64 {
	return math.Floor(x*10+0.5) / 10
}

// SortRecent orders records by date descending (stable on ties) and keeps at
// most limit entries. A non-positive limit falls back to 5, the size of the
// recent-history panel.
func SortRecent(records []models.AttendanceRecord, limit int) []models.AttendanceRecord {
	if limit <= 0 {
		limit = 5
	}
	out := make([]models.AttendanceRecord, len(records))
	copy(out, records)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Date > out[j].Date
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}
