package identity

import (
	"strings"
	"time"
)

// Roles exchanged with the LMS backend.
const (
	RoleSuperAdmin      = "super_admin"
	RoleUniversityAdmin = "university_admin"
	RoleStudent         = "student"
)

var (
	AllRoles = []string{RoleSuperAdmin, RoleUniversityAdmin, RoleStudent}

	Roles = []Role{
		{Name: "Student", Value: RoleStudent},
		{Name: "University Admin", Value: RoleUniversityAdmin},
		{Name: "Super Admin", Value: RoleSuperAdmin},
	}
)

type Role struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// KnownRole reports whether role is one of the three portal roles.
func KnownRole(role string) bool {
	for _, r := range AllRoles {
		if r == role {
			return true
		}
	}
	return false
}

// Identity is the authenticated user's profile and scope for the current
// session. The role is immutable for the lifetime of the session.
type Identity struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	Role         string    `json:"role"`
	UniversityID int       `json:"university_id,omitempty"` // -> UNIVERSITY ADMIN & STUDENT PORTALS
	StudentID    int       `json:"student_id,omitempty"`    // -> STUDENT PORTAL
	CreatedAt    time.Time `json:"created_at"`
}

func (id Identity) IsSuperAdmin() bool {
	return strings.EqualFold(id.Role, RoleSuperAdmin)
}

func (id Identity) IsUniversityAdmin() bool {
	return strings.EqualFold(id.Role, RoleUniversityAdmin)
}

func (id Identity) IsStudent() bool {
	return strings.EqualFold(id.Role, RoleStudent)
}
