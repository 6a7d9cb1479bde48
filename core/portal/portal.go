// Package portal maps a session role to its dashboard view and navigation.
package portal

import "github.com/trezcool/lideo/core/identity"

type View string

const (
	ViewSuperAdmin      View = "super_admin_dashboard"
	ViewUniversityAdmin View = "university_admin_dashboard"
	ViewStudent         View = "student_dashboard"
	ViewAccessDenied    View = "access_denied"
)

type MenuEntry struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

type Portal struct {
	View View        `json:"view"`
	Menu []MenuEntry `json:"menu"`
}

var portals = map[string]Portal{
	identity.RoleSuperAdmin: {
		View: ViewSuperAdmin,
		Menu: []MenuEntry{
			{ID: "dashboard", Label: "Dashboard"},
			{ID: "universities", Label: "Universities"},
			{ID: "admins", Label: "Admins"},
			{ID: "students", Label: "Students"},
			{ID: "analytics", Label: "Analytics"},
			{ID: "settings", Label: "Settings"},
		},
	},
	identity.RoleUniversityAdmin: {
		View: ViewUniversityAdmin,
		Menu: []MenuEntry{
			{ID: "dashboard", Label: "Dashboard"},
			{ID: "courses", Label: "Courses"},
			{ID: "students", Label: "Students"},
			{ID: "analytics", Label: "Analytics"},
			{ID: "settings", Label: "Settings"},
		},
	},
	identity.RoleStudent: {
		View: ViewStudent,
		Menu: []MenuEntry{
			{ID: "dashboard", Label: "Dashboard"},
			{ID: "courses", Label: "My Courses"},
			{ID: "registration", Label: "Course Registration"},
			{ID: "grades", Label: "Grades"},
			{ID: "settings", Label: "Settings"},
		},
	},
}

// ForRole returns the portal for the given role tag. Unknown or absent roles
// land on the access-denied terminal view with no navigation.
func ForRole(role string) Portal {
	if p, ok := portals[role]; ok {
		menu := make([]MenuEntry, len(p.Menu))
		copy(menu, p.Menu)
		return Portal{View: p.View, Menu: menu}
	}
	return Portal{View: ViewAccessDenied}
}

// ForIdentity resolves the portal for the current identity, or access-denied
// when the session is anonymous.
func ForIdentity(id *identity.Identity) Portal {
	if id == nil {
		return Portal{View: ViewAccessDenied}
	}
	return ForRole(id.Role)
}
