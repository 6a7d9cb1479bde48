// Package catalog holds the LMS entities the portal renders, the form types
// it submits, and the client contracts for the backend resources. The backend
// is the single source of truth for every persisted entity; the portal only
// holds transient, re-fetchable copies.
package catalog

import (
	"errors"
	"time"
)

var ErrNotFound = errors.New("resource not found")

// Status is the lifecycle status shared by universities, courses and accounts.
type Status string

const (
	StatusActive   Status = "ACTIVE"
	StatusInactive Status = "INACTIVE"
)

func (s Status) Valid() bool {
	return s == StatusActive || s == StatusInactive
}

// MaterialKind is a course topic's material type. The kind implies which URL
// slot is populated and whether it comes from a file upload.
type MaterialKind string

const (
	KindDocument   MaterialKind = "DOCUMENT"
	KindVideo      MaterialKind = "VIDEO"
	KindLink       MaterialKind = "LINK"
	KindAssignment MaterialKind = "ASSIGNMENT"
)

var MaterialKinds = []MaterialKind{KindDocument, KindVideo, KindLink, KindAssignment}

func (k MaterialKind) Valid() bool {
	for _, known := range MaterialKinds {
		if k == known {
			return true
		}
	}
	return false
}

// NeedsUpload reports whether the kind's URL is produced by a file upload.
// LINK topics take a typed external URL instead.
func (k MaterialKind) NeedsUpload() bool {
	return k == KindDocument || k == KindVideo || k == KindAssignment
}

type University struct {
	ID        int    `json:"id"`
	Name      string `json:"uniName"`
	Address   string `json:"address"`
	EstYear   string `json:"estYear"`
	Status    Status `json:"status"`
	AdminName string `json:"adminName"`
	Students  int    `json:"students"` // read-only backend projection
	Courses   int    `json:"courses"`  // read-only backend projection
}

type Course struct {
	ID           int    `json:"id"`
	Name         string `json:"courseName"`
	Code         string `json:"courseCode"`
	Description  string `json:"description"`
	Credits      int    `json:"credits"`
	Instructor   string `json:"instructor"`
	UniversityID int    `json:"universityId"`
	Capacity     int    `json:"capacity"`
	Enrolled     int    `json:"enrolled"` // enrolled <= capacity is enforced by the backend
	Status       Status `json:"status"`
}

type Student struct {
	ID           int    `json:"id"`
	StudentID    string `json:"studentId"`
	FullName     string `json:"fullName"`
	Email        string `json:"email"`
	Major        string `json:"major"`
	Year         string `json:"year"`
	PhoneNumber  string `json:"phoneNumber"`
	UniversityID int    `json:"universityId"`
	Status       Status `json:"status"`
}

type Admin struct {
	ID           int    `json:"id"`
	Name         string `json:"adminName"`
	Email        string `json:"email"`
	Department   string `json:"department"`
	PhoneNumber  string `json:"phoneNumber"`
	UniversityID int    `json:"universityId"`
	Status       Status `json:"status"`
}

type EnrollmentStatus string

const (
	EnrollmentEnrolled  EnrollmentStatus = "enrolled"
	EnrollmentCompleted EnrollmentStatus = "completed"
	EnrollmentDropped   EnrollmentStatus = "dropped"
)

// Enrollment links one student to one course within one university. The
// portal creates enrollments through student registration and never mutates
// them afterwards except through the generic edit path.
type Enrollment struct {
	ID           int              `json:"id"`
	StudentID    int              `json:"studentId"`
	CourseID     int              `json:"courseId"`
	UniversityID int              `json:"universityId"`
	EnrolledAt   time.Time        `json:"enrolledAt"`
	Status       EnrollmentStatus `json:"status"`
	Grade        string           `json:"grade,omitempty"`
}

func (e Enrollment) Completed() bool {
	return e.Status == EnrollmentCompleted
}

type CourseTopic struct {
	ID              int          `json:"id"`
	Title           string       `json:"title"`
	Description     string       `json:"topicdescription"`
	Material        MaterialKind `json:"materials"`
	VideoURL        string       `json:"videoUrl,omitempty"`
	DocumentURL     string       `json:"documentUrl,omitempty"`
	DurationMinutes int          `json:"durationMinutes"`
	SortOrder       int          `json:"sortOrder"`
	CourseID        int          `json:"courseId"`
	UniversityID    int          `json:"universityId"`
	InstructorID    int          `json:"instructorId"`
}
