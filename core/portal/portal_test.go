package portal

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/lideo/core/identity"
)

func TestForRole(t *testing.T) {
	tests := []struct {
		name     string
		role     string
		wantView View
		wantMenu []string
	}{
		{
			name:     "super admin",
			role:     identity.RoleSuperAdmin,
			wantView: ViewSuperAdmin,
			wantMenu: []string{"dashboard", "universities", "admins", "students", "analytics", "settings"},
		},
		{
			name:     "university admin",
			role:     identity.RoleUniversityAdmin,
			wantView: ViewUniversityAdmin,
			wantMenu: []string{"dashboard", "courses", "students", "analytics", "settings"},
		},
		{
			name:     "student",
			role:     identity.RoleStudent,
			wantView: ViewStudent,
			wantMenu: []string{"dashboard", "courses", "registration", "grades", "settings"},
		},
		{name: "unknown role", role: "janitor", wantView: ViewAccessDenied},
		{name: "empty role", role: "", wantView: ViewAccessDenied},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := ForRole(tt.role)
			assert.Equal(t, tt.wantView, p.View)
			require.Len(t, p.Menu, len(tt.wantMenu))
			for i, id := range tt.wantMenu {
				assert.Equal(t, id, p.Menu[i].ID)
			}
		})
	}
}

func TestForRole_menuIsACopy(t *testing.T) {
	p := ForRole(identity.RoleStudent)
	p.Menu[0].Label = "mutated"
	assert.Equal(t, "Dashboard", ForRole(identity.RoleStudent).Menu[0].Label)
}

func TestForIdentity(t *testing.T) {
	assert.Equal(t, ViewAccessDenied, ForIdentity(nil).View)

	id := &identity.Identity{ID: "7", Role: identity.RoleUniversityAdmin}
	assert.Equal(t, ViewUniversityAdmin, ForIdentity(id).View)
}
