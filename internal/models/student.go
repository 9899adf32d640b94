package models

// Student is one roster entry. Roster rows come from the CSV source keyed by
// header; only the columns the tracker needs are kept, the rest stay in Extra.
type Student struct {
	StudentID string            `json:"student_id"`
	Name      string            `json:"student_name"`
	Phone     string            `json:"phone"`
	CourseID  string            `json:"course_id,omitempty"`
	Extra     map[string]string `json:"-"`
}

// RegisteredUser is a self-registered account kept alongside the fetched
// roster. PasswordHash is bcrypt; the phone-last-8 default credential does
// not apply to these accounts unless a phone is on file.
type RegisteredUser struct {
	StudentID    string `json:"student_id"`
	Name         string `json:"student_name"`
	Email        string `json:"email,omitempty"`
	Phone        string `json:"phone,omitempty"`
	CourseID     string `json:"course_id,omitempty"`
	PasswordHash string `json:"password_hash"`
	RegisteredAt string `json:"registration_date"`
}
