package echoportal

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/lideo/core/catalog"
	"github.com/trezcool/lideo/core/identity"
	testutil "github.com/trezcool/lideo/tests"
)

var (
	superIdentity = identity.Identity{
		ID:    "1",
		Email: "superadmin@lms.com",
		Name:  "Super Administrator",
		Role:  identity.RoleSuperAdmin,
	}
	uniAdminIdentity = identity.Identity{
		ID:           "5",
		Email:        "jina@univ.cd",
		Name:         "Jina M",
		Role:         identity.RoleUniversityAdmin,
		UniversityID: 10,
	}
)

func seedTwoUniversities(backend *testutil.FakeBackend) {
	backend.AddUniversity(catalog.University{ID: 10, Name: "Unikin", Status: catalog.StatusActive})
	backend.AddUniversity(catalog.University{ID: 20, Name: "Unilu", Status: catalog.StatusInactive})
	backend.AddStudent(catalog.Student{ID: 7, FullName: "Amina K", UniversityID: 10})
	backend.AddStudent(catalog.Student{ID: 8, FullName: "Ben T", UniversityID: 20})
	backend.AddCourse(catalog.Course{ID: 1, Name: "Algorithms", UniversityID: 10})
	backend.AddCourse(catalog.Course{ID: 2, Name: "Databases", UniversityID: 10})
	backend.AddCourse(catalog.Course{ID: 3, Name: "Anatomy", UniversityID: 20})
}

func Test_dashboards_roleGating(t *testing.T) {
	server, _, conf := setup(t)

	tests := []httpTest{
		{name: "super-admin dashboard needs a session", path: "/dashboard/super-admin", wantCode: http.StatusUnauthorized},
		{name: "student cannot see super-admin dashboard", path: "/dashboard/super-admin", identity: &studentIdentity, wantCode: http.StatusForbidden},
		{name: "uni-admin cannot see super-admin dashboard", path: "/dashboard/super-admin", identity: &uniAdminIdentity, wantCode: http.StatusForbidden},
		{name: "student cannot see uni-admin dashboard", path: "/dashboard/university-admin", identity: &studentIdentity, wantCode: http.StatusForbidden},
		{name: "super-admin cannot see student dashboard", path: "/dashboard/student", identity: &superIdentity, wantCode: http.StatusForbidden},
		{name: "student cannot manage universities", path: "/universities", identity: &studentIdentity, wantCode: http.StatusForbidden},
		{name: "uni-admin cannot manage admins", path: "/admins", identity: &uniAdminIdentity, wantCode: http.StatusForbidden},
		{name: "anonymous cannot list students", path: "/students", wantCode: http.StatusUnauthorized},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newRequest(http.MethodGet, tt.path)
			if tt.identity != nil {
				req, rec = newAuthRequest(t, conf, *tt.identity, http.MethodGet, tt.path)
			}
			server.ServeHTTP(rec, req)
			assert.Equal(t, tt.wantCode, rec.Code, rec.Body.String())
		})
	}
}

func Test_superAdminApi_dashboard(t *testing.T) {
	server, backend, conf := setup(t)
	seedTwoUniversities(backend)
	backend.AddAdmin(catalog.Admin{ID: 5, Name: "Jina M", UniversityID: 10})

	req, rec := newAuthRequest(t, conf, superIdentity, http.MethodGet, "/dashboard/super-admin")
	server.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp superAdminDashboard
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, catalog.OverviewStats{
		Universities:       2,
		ActiveUniversities: 1,
		Admins:             1,
		Students:           2,
		Courses:            3,
	}, resp.Stats)
	assert.Len(t, resp.Universities.Items, 2)
	assert.Len(t, resp.Admins.Items, 1)
	assert.Len(t, resp.Students.Items, 2)
	assert.Len(t, resp.Courses.Items, 3)
}

// One failing collection degrades that panel only; everything else still
// renders and the response stays 200.
func Test_superAdminApi_dashboard_partialFailure(t *testing.T) {
	server, backend, conf := setup(t)
	seedTwoUniversities(backend)
	backend.Fail("/api/admins", http.StatusInternalServerError)

	req, rec := newAuthRequest(t, conf, superIdentity, http.MethodGet, "/dashboard/super-admin")
	server.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp superAdminDashboard
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "failed to load admins", resp.Admins.Error)
	assert.Empty(t, resp.Admins.Items)
	assert.Empty(t, resp.Universities.Error)
	assert.Len(t, resp.Universities.Items, 2)
	assert.Equal(t, 0, resp.Stats.Admins)
	assert.Equal(t, 2, resp.Stats.Universities)
}

func Test_universityAdminApi_dashboard(t *testing.T) {
	server, backend, conf := setup(t)
	seedTwoUniversities(backend)
	backend.AddEnrollment(catalog.Enrollment{ID: 100, StudentID: 7, CourseID: 1, UniversityID: 10})

	req, rec := newAuthRequest(t, conf, uniAdminIdentity, http.MethodGet, "/dashboard/university-admin")
	server.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp universityAdminDashboard
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotNil(t, resp.University)
	assert.Equal(t, "Unikin", resp.University.Name)

	// collections are narrowed to the admin's own university
	require.Len(t, resp.Courses.Items, 2)
	for _, c := range resp.Courses.Items {
		assert.Equal(t, 10, c.UniversityID)
	}
	require.Len(t, resp.Students.Items, 1)
	assert.Equal(t, "Amina K", resp.Students.Items[0].FullName)
	assert.Len(t, resp.Enrollments.Items, 1)
}

func Test_universityAdminApi_dashboard_universityFetchFails(t *testing.T) {
	server, backend, conf := setup(t)
	backend.AddCourse(catalog.Course{ID: 1, Name: "Algorithms", UniversityID: 10})

	// no university with ID 10 seeded: the Get 404s but the page still loads
	req, rec := newAuthRequest(t, conf, uniAdminIdentity, http.MethodGet, "/dashboard/university-admin")
	server.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp universityAdminDashboard
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Nil(t, resp.University)
	assert.Len(t, resp.Courses.Items, 1)
}

// A student only ever sees their own university's catalog.
func Test_studentApi_dashboard(t *testing.T) {
	server, backend, conf := setup(t)
	seedTwoUniversities(backend)
	backend.AddEnrollment(catalog.Enrollment{ID: 100, StudentID: 7, CourseID: 1, UniversityID: 10, Status: catalog.EnrollmentCompleted, Grade: "A"})
	backend.AddEnrollment(catalog.Enrollment{ID: 101, StudentID: 8, CourseID: 2, UniversityID: 10})

	req, rec := newAuthRequest(t, conf, studentIdentity, http.MethodGet, "/dashboard/student")
	server.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp studentDashboard
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotNil(t, resp.University)
	assert.Equal(t, "Unikin", resp.University.Name)

	require.Len(t, resp.MyCourses.Items, 1)
	assert.Equal(t, "Algorithms", resp.MyCourses.Items[0].Name)

	// available excludes enrolled courses and other universities entirely
	require.Len(t, resp.Available.Items, 1)
	assert.Equal(t, "Databases", resp.Available.Items[0].Name)

	require.Len(t, resp.Grades, 1)
	assert.Equal(t, "A", resp.Grades[0].Grade)
	assert.Equal(t, catalog.EnrollmentCompleted, resp.Grades[0].Status)
}

func Test_studentApi_dashboard_coursesFetchFails(t *testing.T) {
	server, backend, conf := setup(t)
	seedTwoUniversities(backend)
	backend.Fail("/api/courses", http.StatusInternalServerError)

	req, rec := newAuthRequest(t, conf, studentIdentity, http.MethodGet, "/dashboard/student")
	server.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp studentDashboard
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "failed to load courses", resp.MyCourses.Error)
	assert.Equal(t, "failed to load courses", resp.Available.Error)
	assert.Empty(t, resp.MyCourses.Items)
	assert.Empty(t, resp.Grades)
}

// Mutations respond with the freshly re-fetched collection, not the mutated
// record.
func Test_superAdminApi_universityCRUD(t *testing.T) {
	server, backend, conf := setup(t)
	backend.AddUniversity(catalog.University{ID: 10, Name: "Unikin", Address: "Kinshasa", EstYear: "1954", Status: catalog.StatusActive})

	body := marchallObj(t, catalog.NewUniversity{Name: "Unilu", Address: "Lubumbashi", EstYear: "1955"})
	req, rec := newAuthRequest(t, conf, superIdentity, http.MethodPost, "/universities", body)
	server.ServeHTTP(rec, req)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var unis []catalog.University
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &unis))
	require.Len(t, unis, 2, "create responds with the refreshed list")

	// invalid payload never reaches the backend
	backend.ResetRequests()
	req, rec = newAuthRequest(t, conf, superIdentity, http.MethodPost, "/universities", []byte(`{"estYear": "lol"}`))
	server.ServeHTTP(rec, req)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Empty(t, backend.Requests())

	req, rec = newAuthRequest(t, conf, superIdentity, http.MethodDelete, "/universities/10")
	server.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &unis))
	require.Len(t, unis, 1)
	assert.Equal(t, "Unilu", unis[0].Name)

	req, rec = newAuthRequest(t, conf, superIdentity, http.MethodDelete, "/universities/abc")
	server.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func Test_superAdminApi_studentScoping(t *testing.T) {
	server, backend, conf := setup(t)
	seedTwoUniversities(backend)

	// university admin listing only sees own students
	req, rec := newAuthRequest(t, conf, uniAdminIdentity, http.MethodGet, "/students")
	server.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	var students []catalog.Student
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &students))
	require.Len(t, students, 1)
	assert.Equal(t, "Amina K", students[0].FullName)

	// another university's student is invisible, not forbidden
	body := marchallObj(t, catalog.UpdateStudent{FullName: "Ben T Jr"})
	req, rec = newAuthRequest(t, conf, uniAdminIdentity, http.MethodPut, "/students/8", body)
	server.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	req, rec = newAuthRequest(t, conf, uniAdminIdentity, http.MethodDelete, "/students/8")
	server.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	// the super admin sees and edits everything
	req, rec = newAuthRequest(t, conf, superIdentity, http.MethodPut, "/students/8", body)
	server.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &students))
	assert.Len(t, students, 2)
}

func Test_superAdminApi_createStudent_uniAdminForcedScope(t *testing.T) {
	server, backend, conf := setup(t)
	backend.AddUniversity(catalog.University{ID: 10, Name: "Unikin", Status: catalog.StatusActive})

	// the payload claims university 20; the session wins
	newStudent := catalog.NewStudent{StudentID: "STU-1", FullName: "Chris O", Email: "chris@univ.cd", Major: "CS", Year: "2", UniversityID: 20}
	req, rec := newAuthRequest(t, conf, uniAdminIdentity, http.MethodPost, "/students", marchallObj(t, newStudent))
	server.ServeHTTP(rec, req)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var students []catalog.Student
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &students))
	require.Len(t, students, 1)
	assert.Equal(t, 10, students[0].UniversityID)
}

func Test_universityAdminApi_courseCRUD(t *testing.T) {
	server, backend, conf := setup(t)
	seedTwoUniversities(backend)

	// creation is pinned to the admin's university regardless of the payload
	newCourse := catalog.NewCourse{Name: "Compilers", Code: "CS301", Credits: 3, Instructor: "Dr K", UniversityID: 20}
	req, rec := newAuthRequest(t, conf, uniAdminIdentity, http.MethodPost, "/courses", marchallObj(t, newCourse))
	server.ServeHTTP(rec, req)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var courses []catalog.Course
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &courses))
	require.Len(t, courses, 3, "two seeded plus the new one, other universities filtered out")
	for _, c := range courses {
		assert.Equal(t, 10, c.UniversityID)
	}

	// another university's course is hidden behind a 404
	req, rec = newAuthRequest(t, conf, uniAdminIdentity, http.MethodDelete, "/courses/3")
	server.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	req, rec = newAuthRequest(t, conf, uniAdminIdentity, http.MethodDelete, "/courses/1")
	server.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &courses))
	assert.Len(t, courses, 2)
}

func Test_studentApi_enrollments(t *testing.T) {
	server, backend, conf := setup(t)
	seedTwoUniversities(backend)
	foreign := backend.AddEnrollment(catalog.Enrollment{ID: 200, StudentID: 8, CourseID: 2, UniversityID: 10})

	// student and university scope come from the session, not the payload
	req, rec := newAuthRequest(t, conf, studentIdentity, http.MethodPost, "/enrollments", []byte(`{"courseId": 1, "studentId": 999, "universityId": 999}`))
	server.ServeHTTP(rec, req)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var enrollments []catalog.Enrollment
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &enrollments))
	require.Len(t, enrollments, 1, "only own enrollments come back")
	assert.Equal(t, 7, enrollments[0].StudentID)
	assert.Equal(t, 10, enrollments[0].UniversityID)
	own := enrollments[0].ID

	// someone else's enrollment is invisible
	req, rec = newAuthRequest(t, conf, studentIdentity, http.MethodDelete, fmt.Sprintf("/enrollments/%d", foreign.ID))
	server.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	req, rec = newAuthRequest(t, conf, studentIdentity, http.MethodDelete, fmt.Sprintf("/enrollments/%d", own))
	server.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &enrollments))
	assert.Empty(t, enrollments)
}
