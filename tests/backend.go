// Package testutil provides shared test helpers, including an in-memory fake
// of the LMS backend REST API.
package testutil

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"testing"

	"github.com/google/uuid"

	"github.com/trezcool/lideo/core/catalog"
	"github.com/trezcool/lideo/core/identity"
)

// FakeAccount is a login the fake backend accepts.
type FakeAccount struct {
	Password string
	Identity identity.Identity
}

// FakeBackend is an in-memory stand-in for the LMS backend. Collections are
// plain slices; every served request is recorded so tests can assert on what
// did (or did not) hit the network.
type FakeBackend struct {
	mu sync.Mutex

	Universities []catalog.University
	Admins       []catalog.Admin
	Students     []catalog.Student
	Courses      []catalog.Course
	Enrollments  []catalog.Enrollment
	Topics       []catalog.CourseTopic
	Accounts     map[string]FakeAccount

	requests  []string
	failPaths map[string]int
	nextID    int

	srv *httptest.Server
}

func NewFakeBackend(t *testing.T) *FakeBackend {
	t.Helper()
	b := &FakeBackend{
		Accounts:  make(map[string]FakeAccount),
		failPaths: make(map[string]int),
		nextID:    1000,
	}
	b.srv = httptest.NewServer(http.HandlerFunc(b.serve))
	t.Cleanup(b.srv.Close)
	return b
}

func (b *FakeBackend) URL() string { return b.srv.URL }

// Fail forces every request whose path starts with prefix to return status.
func (b *FakeBackend) Fail(prefix string, status int) {
	b.mu.Lock()
	b.failPaths[prefix] = status
	b.mu.Unlock()
}

// Requests returns the "METHOD path" log of everything served so far.
func (b *FakeBackend) Requests() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]string, len(b.requests))
	copy(out, b.requests)
	return out
}

func (b *FakeBackend) ResetRequests() {
	b.mu.Lock()
	b.requests = nil
	b.mu.Unlock()
}

func (b *FakeBackend) newID() int {
	b.nextID++
	return b.nextID
}

// Seed helpers

func (b *FakeBackend) AddAccount(email, pwd string, id identity.Identity) {
	b.mu.Lock()
	b.Accounts[email] = FakeAccount{Password: pwd, Identity: id}
	b.mu.Unlock()
}

func (b *FakeBackend) AddUniversity(u catalog.University) catalog.University {
	b.mu.Lock()
	defer b.mu.Unlock()
	if u.ID == 0 {
		u.ID = b.newID()
	}
	b.Universities = append(b.Universities, u)
	return u
}

func (b *FakeBackend) AddAdmin(a catalog.Admin) catalog.Admin {
	b.mu.Lock()
	defer b.mu.Unlock()
	if a.ID == 0 {
		a.ID = b.newID()
	}
	b.Admins = append(b.Admins, a)
	return a
}

func (b *FakeBackend) AddStudent(s catalog.Student) catalog.Student {
	b.mu.Lock()
	defer b.mu.Unlock()
	if s.ID == 0 {
		s.ID = b.newID()
	}
	b.Students = append(b.Students, s)
	return s
}

func (b *FakeBackend) AddCourse(c catalog.Course) catalog.Course {
	b.mu.Lock()
	defer b.mu.Unlock()
	if c.ID == 0 {
		c.ID = b.newID()
	}
	b.Courses = append(b.Courses, c)
	return c
}

func (b *FakeBackend) AddEnrollment(e catalog.Enrollment) catalog.Enrollment {
	b.mu.Lock()
	defer b.mu.Unlock()
	if e.ID == 0 {
		e.ID = b.newID()
	}
	b.Enrollments = append(b.Enrollments, e)
	return e
}

func (b *FakeBackend) AddTopic(tp catalog.CourseTopic) catalog.CourseTopic {
	b.mu.Lock()
	defer b.mu.Unlock()
	if tp.ID == 0 {
		tp.ID = b.newID()
	}
	b.Topics = append(b.Topics, tp)
	return tp
}

// HTTP plumbing

func (b *FakeBackend) serve(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	b.requests = append(b.requests, r.Method+" "+r.URL.Path)
	for prefix, status := range b.failPaths {
		if strings.HasPrefix(r.URL.Path, prefix) {
			b.mu.Unlock()
			writeJSON(w, status, map[string]string{"error": "forced failure"})
			return
		}
	}
	b.mu.Unlock()

	switch {
	case r.URL.Path == "/api/auth/login":
		b.handleLogin(w, r)
	case r.URL.Path == "/api/auth/superadmin-login":
		b.handleSuperAdminLogin(w, r)
	case r.URL.Path == "/api/files/upload":
		b.handleUpload(w, r)
	case strings.HasPrefix(r.URL.Path, "/api/topics/by-course/"):
		b.handleTopicsByCourse(w, r)
	case strings.HasPrefix(r.URL.Path, "/api/topics"):
		b.handleTopics(w, r)
	case strings.HasPrefix(r.URL.Path, "/api/universities"):
		b.handleUniversities(w, r)
	case strings.HasPrefix(r.URL.Path, "/api/admins"):
		b.handleAdmins(w, r)
	case strings.HasPrefix(r.URL.Path, "/api/students"):
		b.handleStudents(w, r)
	case strings.HasPrefix(r.URL.Path, "/api/courses"):
		b.handleCourses(w, r)
	case strings.HasPrefix(r.URL.Path, "/api/enrollments"):
		b.handleEnrollments(w, r)
	default:
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "not found"})
	}
}

func (b *FakeBackend) handleLogin(w http.ResponseWriter, r *http.Request) {
	var creds struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	_ = json.NewDecoder(r.Body).Decode(&creds)

	b.mu.Lock()
	account, ok := b.Accounts[creds.Email]
	b.mu.Unlock()
	if !ok || account.Password != creds.Password {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "invalid credentials"})
		return
	}
	writeJSON(w, http.StatusOK, account.Identity)
}

func (b *FakeBackend) handleSuperAdminLogin(w http.ResponseWriter, r *http.Request) {
	var codes struct {
		SubmittedCode string `json:"submittedCode"`
		ExpectedCode  string `json:"expectedCode"`
	}
	_ = json.NewDecoder(r.Body).Decode(&codes)
	if codes.SubmittedCode == "" || codes.SubmittedCode != codes.ExpectedCode {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "invalid code"})
		return
	}
	writeJSON(w, http.StatusOK, identity.Identity{
		ID:    "1",
		Email: "superadmin@lms.com",
		Name:  "Super Administrator",
		Role:  identity.RoleSuperAdmin,
	})
}

func (b *FakeBackend) handleUpload(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid multipart form"})
		return
	}
	_, fh, err := r.FormFile("file")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "file is required"})
		return
	}
	writeJSON(w, http.StatusOK, fmt.Sprintf("https://files.lms.local/%s/%s", uuid.NewString(), fh.Filename))
}

func (b *FakeBackend) handleUniversities(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()

	id, hasID := pathID(r.URL.Path, "/api/universities")
	switch {
	case r.Method == http.MethodGet && !hasID:
		writeJSON(w, http.StatusOK, b.Universities)
	case r.Method == http.MethodGet:
		for _, u := range b.Universities {
			if u.ID == id {
				writeJSON(w, http.StatusOK, u)
				return
			}
		}
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "not found"})
	case r.Method == http.MethodPost:
		var u catalog.University
		_ = json.NewDecoder(r.Body).Decode(&u)
		u.ID = b.newID()
		if u.Status == "" {
			u.Status = catalog.StatusActive
		}
		b.Universities = append(b.Universities, u)
		writeJSON(w, http.StatusCreated, u)
	case r.Method == http.MethodPut:
		for i, u := range b.Universities {
			if u.ID == id {
				_ = json.NewDecoder(r.Body).Decode(&b.Universities[i])
				b.Universities[i].ID = id
				writeJSON(w, http.StatusOK, b.Universities[i])
				return
			}
		}
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "not found"})
	case r.Method == http.MethodDelete:
		for i, u := range b.Universities {
			if u.ID == id {
				b.Universities = append(b.Universities[:i], b.Universities[i+1:]...)
				w.WriteHeader(http.StatusNoContent)
				return
			}
		}
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "not found"})
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func (b *FakeBackend) handleAdmins(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()

	id, hasID := pathID(r.URL.Path, "/api/admins")
	switch {
	case r.Method == http.MethodGet && !hasID:
		writeJSON(w, http.StatusOK, b.Admins)
	case r.Method == http.MethodGet:
		for _, a := range b.Admins {
			if a.ID == id {
				writeJSON(w, http.StatusOK, a)
				return
			}
		}
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "not found"})
	case r.Method == http.MethodPost:
		var a catalog.Admin
		_ = json.NewDecoder(r.Body).Decode(&a)
		a.ID = b.newID()
		if a.Status == "" {
			a.Status = catalog.StatusActive
		}
		b.Admins = append(b.Admins, a)
		writeJSON(w, http.StatusCreated, a)
	case r.Method == http.MethodPut:
		for i, a := range b.Admins {
			if a.ID == id {
				_ = json.NewDecoder(r.Body).Decode(&b.Admins[i])
				b.Admins[i].ID = id
				writeJSON(w, http.StatusOK, b.Admins[i])
				return
			}
		}
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "not found"})
	case r.Method == http.MethodDelete:
		for i, a := range b.Admins {
			if a.ID == id {
				b.Admins = append(b.Admins[:i], b.Admins[i+1:]...)
				w.WriteHeader(http.StatusNoContent)
				return
			}
		}
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "not found"})
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func (b *FakeBackend) handleStudents(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()

	id, hasID := pathID(r.URL.Path, "/api/students")
	switch {
	case r.Method == http.MethodGet && !hasID:
		writeJSON(w, http.StatusOK, b.Students)
	case r.Method == http.MethodGet:
		for _, s := range b.Students {
			if s.ID == id {
				writeJSON(w, http.StatusOK, s)
				return
			}
		}
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "not found"})
	case r.Method == http.MethodPost:
		var s catalog.Student
		_ = json.NewDecoder(r.Body).Decode(&s)
		s.ID = b.newID()
		if s.Status == "" {
			s.Status = catalog.StatusActive
		}
		b.Students = append(b.Students, s)
		writeJSON(w, http.StatusCreated, s)
	case r.Method == http.MethodPut:
		for i, s := range b.Students {
			if s.ID == id {
				_ = json.NewDecoder(r.Body).Decode(&b.Students[i])
				b.Students[i].ID = id
				writeJSON(w, http.StatusOK, b.Students[i])
				return
			}
		}
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "not found"})
	case r.Method == http.MethodDelete:
		for i, s := range b.Students {
			if s.ID == id {
				b.Students = append(b.Students[:i], b.Students[i+1:]...)
				w.WriteHeader(http.StatusNoContent)
				return
			}
		}
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "not found"})
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func (b *FakeBackend) handleCourses(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()

	id, hasID := pathID(r.URL.Path, "/api/courses")
	switch {
	case r.Method == http.MethodGet && !hasID:
		writeJSON(w, http.StatusOK, b.Courses)
	case r.Method == http.MethodGet:
		for _, c := range b.Courses {
			if c.ID == id {
				writeJSON(w, http.StatusOK, c)
				return
			}
		}
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "not found"})
	case r.Method == http.MethodPost:
		var c catalog.Course
		_ = json.NewDecoder(r.Body).Decode(&c)
		c.ID = b.newID()
		if c.Status == "" {
			c.Status = catalog.StatusActive
		}
		b.Courses = append(b.Courses, c)
		writeJSON(w, http.StatusCreated, c)
	case r.Method == http.MethodPut:
		for i, c := range b.Courses {
			if c.ID == id {
				_ = json.NewDecoder(r.Body).Decode(&b.Courses[i])
				b.Courses[i].ID = id
				writeJSON(w, http.StatusOK, b.Courses[i])
				return
			}
		}
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "not found"})
	case r.Method == http.MethodDelete:
		for i, c := range b.Courses {
			if c.ID == id {
				b.Courses = append(b.Courses[:i], b.Courses[i+1:]...)
				w.WriteHeader(http.StatusNoContent)
				return
			}
		}
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "not found"})
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func (b *FakeBackend) handleEnrollments(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()

	id, hasID := pathID(r.URL.Path, "/api/enrollments")
	switch {
	case r.Method == http.MethodGet && !hasID:
		writeJSON(w, http.StatusOK, b.Enrollments)
	case r.Method == http.MethodPost:
		var e catalog.Enrollment
		_ = json.NewDecoder(r.Body).Decode(&e)
		e.ID = b.newID()
		if e.Status == "" {
			e.Status = catalog.EnrollmentEnrolled
		}
		b.Enrollments = append(b.Enrollments, e)
		writeJSON(w, http.StatusCreated, e)
	case r.Method == http.MethodDelete && hasID:
		for i, e := range b.Enrollments {
			if e.ID == id {
				b.Enrollments = append(b.Enrollments[:i], b.Enrollments[i+1:]...)
				w.WriteHeader(http.StatusNoContent)
				return
			}
		}
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "not found"})
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func (b *FakeBackend) handleTopicsByCourse(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()

	courseID, _ := pathID(r.URL.Path, "/api/topics/by-course")
	out := make([]catalog.CourseTopic, 0)
	for _, tp := range b.Topics {
		if tp.CourseID == courseID {
			out = append(out, tp)
		}
	}
	writeJSON(w, http.StatusOK, out)
}

func (b *FakeBackend) handleTopics(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()

	id, hasID := pathID(r.URL.Path, "/api/topics")
	switch {
	case r.Method == http.MethodPost:
		var tp catalog.CourseTopic
		_ = json.NewDecoder(r.Body).Decode(&tp)
		tp.ID = b.newID()
		b.Topics = append(b.Topics, tp)
		writeJSON(w, http.StatusCreated, tp)
	case r.Method == http.MethodDelete && hasID:
		for i, tp := range b.Topics {
			if tp.ID == id {
				b.Topics = append(b.Topics[:i], b.Topics[i+1:]...)
				w.WriteHeader(http.StatusNoContent)
				return
			}
		}
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "not found"})
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func pathID(path, prefix string) (int, bool) {
	rest := strings.TrimPrefix(path, prefix)
	rest = strings.TrimPrefix(rest, "/")
	if rest == "" {
		return 0, false
	}
	id, err := strconv.Atoi(rest)
	if err != nil {
		return 0, false
	}
	return id, true
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
