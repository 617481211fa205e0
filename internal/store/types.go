package store

import "strings"

// Role is the account type of a User.
type Role string

const (
	RoleTeacher Role = "teacher"
	RoleStudent Role = "student"
)

// ParseRole maps user input onto a Role. Matching is case-insensitive.
func ParseRole(s string) (Role, bool) {
	switch Role(strings.ToLower(strings.TrimSpace(s))) {
	case RoleTeacher:
		return RoleTeacher, true
	case RoleStudent:
		return RoleStudent, true
	}
	return "", false
}

// User represents a login account.
type User struct {
	Username  string  `json:"username"`
	Password  string  `json:"password"`
	Role      Role    `json:"role"`
	StudentID *string `json:"student_id"`
}

// LinkedTo reports whether the account is bound to the given student id.
func (u User) LinkedTo(studentID string) bool {
	return u.StudentID != nil && *u.StudentID == studentID
}

// Student is one roster record. Every field is free-form text.
type Student struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Class string `json:"class"`
	Age   string `json:"age"`
	Score string `json:"score"`
}

// Document is the whole persisted state.
type Document struct {
	Users    []User    `json:"users"`
	Students []Student `json:"students"`
}

// NewDocument returns an empty document.
func NewDocument() *Document {
	return &Document{
		Users:    []User{},
		Students: []Student{},
	}
}

// FindUser returns the index of the user with the given username, or -1.
func (d *Document) FindUser(username string) int {
	for i := range d.Users {
		if d.Users[i].Username == username {
			return i
		}
	}
	return -1
}

// FindStudent returns the index of the first student with the given id, or -1.
func (d *Document) FindStudent(id string) int {
	for i := range d.Students {
		if d.Students[i].ID == id {
			return i
		}
	}
	return -1
}

// HasStudent reports whether a student with the given id exists.
func (d *Document) HasStudent(id string) bool {
	return d.FindStudent(id) >= 0
}

// normalize replaces nil slices so that empty lists encode as [] rather than null.
func (d *Document) normalize() {
	if d.Users == nil {
		d.Users = []User{}
	}
	if d.Students == nil {
		d.Students = []Student{}
	}
}
