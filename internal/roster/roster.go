package roster

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/campuskit/attendance_backend/internal/models"
)

const fetchTimeout = 10 * time.Second

// Fetch downloads and parses the roster CSV. Callers degrade any error here
// to an empty roster; a missing roster is never fatal to the service.
func Fetch(ctx context.Context, url string) ([]models.Student, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	client := &http.Client{Timeout: fetchTimeout}
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("roster fetch: unexpected status %s", resp.Status)
	}
	return ParseCSV(resp.Body)
}

// ParseCSV reads a roster table keyed by its header row. Rows missing a
// student_id are skipped; unknown columns are kept in Extra so future roster
// revisions don't break parsing.
func ParseCSV(r io.Reader) ([]models.Student, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("roster csv: %w", err)
	}
	for i := range header {
		header[i] = strings.TrimSpace(header[i])
	}

	var students []models.Student
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("roster csv: %w", err)
		}
		fields := map[string]string{}
		for i, col := range header {
			if i < len(row) {
				fields[col] = strings.TrimSpace(row[i])
			}
		}
		if fields["student_id"] == "" {
			continue
		}
		students = append(students, models.Student{
			StudentID: fields["student_id"],
			Name:      fields["student_name"],
			Phone:     fields["phone"],
			CourseID:  fields["course_id"],
			Extra:     fields,
		})
	}
	return students, nil
}

// phoneTail returns the default credential for a roster student: the last 8
// characters of the phone number on file.
func phoneTail(phone string) string {
	if len(phone) <= 8 {
		return phone
	}
	return phone[len(phone)-8:]
}
