package roster

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

const sampleCSV = `student_id,student_name,phone,major
s001,Alice Wong,85212345678,Business Analytics
s002,Bob Chan,85298765432,Economics

s003,,85211112222,
`

func TestParseCSV(t *testing.T) {
	students, err := ParseCSV(strings.NewReader(sampleCSV))
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if len(students) != 3 {
		t.Fatalf("expected 3 students, got %d", len(students))
	}
	if students[0].StudentID != "s001" || students[0].Name != "Alice Wong" {
		t.Errorf("unexpected first student: %+v", students[0])
	}
	if students[0].Extra["major"] != "Business Analytics" {
		t.Error("unknown columns must land in Extra")
	}
	if students[2].Name != "" {
		t.Errorf("missing name must stay empty, got %q", students[2].Name)
	}
}

func TestParseCSV_MissingStudentIDSkipsRow(t *testing.T) {
	csv := "student_id,student_name,phone\n,No Id,85200000000\ns010,Has Id,85200000001\n"
	students, err := ParseCSV(strings.NewReader(csv))
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if len(students) != 1 || students[0].StudentID != "s010" {
		t.Errorf("expected the id-less row to be skipped, got %+v", students)
	}
}

func TestFetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(sampleCSV))
	}))
	defer srv.Close()

	students, err := Fetch(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("fetch failed: %v", err)
	}
	if len(students) != 3 {
		t.Errorf("expected 3 students, got %d", len(students))
	}

	srv500 := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv500.Close()
	if _, err := Fetch(context.Background(), srv500.URL); err == nil {
		t.Error("expected error on non-200 response")
	}
}

func newTestService(t *testing.T) *Service {
	t.Helper()
	students, err := ParseCSV(strings.NewReader(sampleCSV))
	if err != nil {
		t.Fatal(err)
	}
	svc, err := NewService(students, t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	return svc
}

func TestAuthenticate_PhoneTail(t *testing.T) {
	svc := newTestService(t)

	// password is the last 8 digits of 85212345678
	account, err := svc.Authenticate("s001", "12345678")
	if err != nil {
		t.Fatalf("expected login to succeed: %v", err)
	}
	if account.Name != "Alice Wong" {
		t.Errorf("unexpected account: %+v", account)
	}

	if _, err := svc.Authenticate("s001", "87654321"); !errors.Is(err, ErrBadCredential) {
		t.Errorf("wrong password must fail with ErrBadCredential, got %v", err)
	}
	if _, err := svc.Authenticate("s404", "12345678"); !errors.Is(err, ErrBadCredential) {
		t.Errorf("unknown student must fail with ErrBadCredential, got %v", err)
	}
}

func TestRegisterAndAuthenticate(t *testing.T) {
	svc := newTestService(t)

	err := svc.Register("s100", "Carol Ng", "carol@example.com", "85233334444", "econ7035", "hunter22")
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	account, err := svc.Authenticate("s100", "hunter22")
	if err != nil {
		t.Fatalf("password login failed: %v", err)
	}
	if account.CourseID != "econ7035" {
		t.Errorf("expected enrolled course, got %q", account.CourseID)
	}

	// the phone-tail default also works once a phone is on file
	if _, err := svc.Authenticate("s100", "33334444"); err != nil {
		t.Errorf("phone-tail login failed: %v", err)
	}

	// duplicates rejected against roster and registered users alike
	if err := svc.Register("s001", "Dup", "", "", "", "password"); !errors.Is(err, ErrStudentExists) {
		t.Errorf("expected ErrStudentExists for roster id, got %v", err)
	}
	if err := svc.Register("s100", "Dup", "", "", "", "password"); !errors.Is(err, ErrStudentExists) {
		t.Errorf("expected ErrStudentExists for registered id, got %v", err)
	}
}

func TestLookup(t *testing.T) {
	svc := newTestService(t)
	if _, ok := svc.Lookup("s002"); !ok {
		t.Error("roster student must resolve")
	}
	if _, ok := svc.Lookup("s404"); ok {
		t.Error("unknown student must not resolve")
	}
}
