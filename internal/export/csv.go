// Package export renders filtered attendance history for download, as the
// original tracker's CSV and as an xlsx workbook.
package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/campuskit/attendance_backend/internal/attendance"
	"github.com/campuskit/attendance_backend/internal/models"
)

var csvHeader = []string{"Date", "Course", "Check In", "Check Out", "Duration", "Status"}

// WriteCSV renders the records in export column order. Times print as-is;
// missing times print empty.
func WriteCSV(w io.Writer, records []models.AttendanceRecord) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}
	for i := range records {
		if err := cw.Write(row(&records[i])); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// MarshalCSV is WriteCSV into a buffer.
func MarshalCSV(records []models.AttendanceRecord) ([]byte, error) {
	var buf bytes.Buffer
	if err := WriteCSV(&buf, records); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ParseCSV reads an exported CSV back into records for the given student.
// Date, check-in, check-out, course and status survive the round trip;
// record ids do not (they are storage identity, not export data).
func ParseCSV(r io.Reader, studentID string) ([]models.AttendanceRecord, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("export csv: %w", err)
	}
	col := map[string]int{}
	for i, name := range header {
		col[strings.TrimSpace(name)] = i
	}
	field := func(row []string, name string) string {
		i, ok := col[name]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	var records []models.AttendanceRecord
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("export csv: %w", err)
		}
		rec := models.AttendanceRecord{
			StudentID: studentID,
			Date:      field(row, "Date"),
			CourseID:  field(row, "Course"),
		}
		if v := field(row, "Check In"); v != "" {
			rec.CheckInTime = &v
		}
		if v := field(row, "Check Out"); v != "" {
			rec.CheckOutTime = &v
		}
		if status, ok := models.ParseStatus(field(row, "Status")); ok {
			rec.Status = status
		}
		records = append(records, rec)
	}
	return records, nil
}

func row(rec *models.AttendanceRecord) []string {
	checkIn, checkOut := "", ""
	if rec.CheckInTime != nil {
		checkIn = *rec.CheckInTime
	}
	if rec.CheckOutTime != nil {
		checkOut = *rec.CheckOutTime
	}
	return []string{rec.Date, rec.CourseID, checkIn, checkOut, Duration(rec), string(rec.Status)}
}

// Duration formats the time between check-in and check-out as "1h 30m",
// empty when either side is missing or unparsable.
func Duration(rec *models.AttendanceRecord) string {
	if !rec.Completed() {
		return ""
	}
	in, err := time.Parse(attendance.TimeLayout, *rec.CheckInTime)
	if err != nil {
		return ""
	}
	out, err := time.Parse(attendance.TimeLayout, *rec.CheckOutTime)
	if err != nil {
		return ""
	}
	d := out.Sub(in)
	if d < 0 {
		return ""
	}
	return fmt.Sprintf("%dh %dm", int(d.Hours()), int(d.Minutes())%60)
}
