package schedule

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"
)

// Clock is a time of day in minutes since midnight. Session times arrive as
// "HH:MM" strings and are parsed here once; nothing downstream handles raw
// time strings.
type Clock int

func ParseClock(s string) (Clock, error) {
	var h, m int
	if _, err := fmt.Sscanf(strings.TrimSpace(s), "%d:%d", &h, &m); err != nil {
		return 0, fmt.Errorf("invalid clock time %q", s)
	}
	if h < 0 || h > 23 || m < 0 || m > 59 {
		return 0, fmt.Errorf("invalid clock time %q", s)
	}
	return Clock(h*60 + m), nil
}

func (c Clock) String() string {
	return fmt.Sprintf("%02d:%02d", int(c)/60, int(c)%60)
}

// At anchors the clock time onto the calendar day of t, in t's location.
func (c Clock) At(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), int(c)/60, int(c)%60, 0, 0, t.Location())
}

func (c *Clock) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseClock(s)
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

func (c Clock) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.String())
}

// Weekday wraps time.Weekday so schedule files can spell days out
// ("Saturday", case-insensitive).
type Weekday time.Weekday

func ParseWeekday(s string) (Weekday, error) {
	for d := time.Sunday; d <= time.Saturday; d++ {
		if strings.EqualFold(strings.TrimSpace(s), d.String()) {
			return Weekday(d), nil
		}
	}
	return 0, fmt.Errorf("invalid weekday %q", s)
}

func (w Weekday) String() string { return time.Weekday(w).String() }

func (w *Weekday) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseWeekday(s)
	if err != nil {
		return err
	}
	*w = parsed
	return nil
}

func (w Weekday) MarshalJSON() ([]byte, error) {
	return json.Marshal(w.String())
}

type Session struct {
	Day       Weekday `json:"day"`
	StartTime Clock   `json:"startTime"`
	EndTime   Clock   `json:"endTime"`
	Location  string  `json:"location"`
}

type Course struct {
	ID       string    `json:"courseId"`
	Name     string    `json:"courseName"`
	Sessions []Session `json:"schedule"`
}

// Rule holds the global check-in/check-out thresholds, applied uniformly
// across all courses.
type Rule struct {
	LateThresholdMinutes       int `json:"lateThresholdMinutes"`
	EarlyLeaveThresholdMinutes int `json:"earlyLeaveThresholdMinutes"`
}

// Table is the full course schedule configuration. It is read-only for the
// process lifetime.
type Table struct {
	Courses []Course `json:"courses"`
	Rules   Rule     `json:"attendanceRules"`
}

// Course looks up a course by id, case-insensitively.
func (t *Table) Course(courseID string) *Course {
	for i := range t.Courses {
		if strings.EqualFold(t.Courses[i].ID, courseID) {
			return &t.Courses[i]
		}
	}
	return nil
}

// SessionFor resolves the session the given course holds on now's weekday,
// in the process-local time zone. Returns the course and nil when the course
// has no session that day, or (nil, nil) when the course id is unknown.
// If a course lists two sessions for the same day the first declared wins.
func (t *Table) SessionFor(courseID string, now time.Time) (*Course, *Session) {
	course := t.Course(courseID)
	if course == nil {
		return nil, nil
	}
	for i := range course.Sessions {
		if time.Weekday(course.Sessions[i].Day) == now.Weekday() {
			return course, &course.Sessions[i]
		}
	}
	return course, nil
}

// Default returns the built-in schedule table. A deployment normally replaces
// it via SCHEDULE_FILE; the defaults mirror the pilot course setup.
func Default() *Table {
	return &Table{
		Courses: []Course{
			{
				ID:   "econ7085",
				Name: "Cloud Computing for Business Analytics",
				Sessions: []Session{
					{Day: Weekday(time.Saturday), StartTime: 9*60 + 30, EndTime: 12*60 + 20, Location: "Room 101"},
				},
			},
			{
				ID:   "econ7035",
				Name: "Business Analytics",
				Sessions: []Session{
					{Day: Weekday(time.Friday), StartTime: 18*60 + 30, EndTime: 21*60 + 20, Location: "Room 202"},
				},
			},
		},
		Rules: Rule{LateThresholdMinutes: 10, EarlyLeaveThresholdMinutes: 10},
	}
}

// LoadFile reads a schedule table from a JSON file.
func LoadFile(path string) (*Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var t Table
	if err := json.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("parse schedule %s: %w", path, err)
	}
	if len(t.Courses) == 0 {
		return nil, fmt.Errorf("schedule %s has no courses", path)
	}
	return &t, nil
}
