package echoportal

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/trezcool/lideo/core"
	"github.com/trezcool/lideo/core/identity"
	emailsvc "github.com/trezcool/lideo/services/email"
	"github.com/trezcool/lideo/storage/lmsapi"
	testutil "github.com/trezcool/lideo/tests"
)

type testLogger struct{ t *testing.T }

func (l testLogger) Debug(msg string, args ...interface{}) { l.t.Logf("DEBUG: %s %v", msg, args) }
func (l testLogger) Info(msg string, args ...interface{})  { l.t.Logf("INFO: %s %v", msg, args) }
func (l testLogger) Warn(msg string, args ...interface{})  { l.t.Logf("WARN: %s %v", msg, args) }
func (l testLogger) Error(msg string, args ...interface{}) { l.t.Logf("ERROR: %s %v", msg, args) }
func (l testLogger) Fatal(msg string, args ...interface{}) { l.t.Logf("FATAL: %s %v", msg, args) }

func testConfig(backendURL string) *core.Config {
	conf := &core.Config{
		Env:       "TEST",
		AppName:   "Lideo",
		Debug:     true,
		TestMode:  true,
		SecretKey: "test-secret-key",
	}
	conf.API.BaseURL = backendURL
	conf.API.Timeout = 5 * time.Second
	conf.Session.CookieName = "currentUser"
	conf.Session.CodeKey = "superAdmin2FA"
	conf.Session.MaxAge = time.Hour
	conf.SuperAdmin.AccessKey = "SUPERADMIN2024KEY"
	conf.SuperAdmin.Email = "superadmin@lms.com"
	conf.SuperAdmin.CodeTTL = 300 * time.Second
	return conf
}

func setup(t *testing.T) (*Server, *testutil.FakeBackend, *core.Config) {
	t.Helper()
	backend := testutil.NewFakeBackend(t)
	conf := testConfig(backend.URL())

	client, err := lmsapi.NewClient(conf, testLogger{t})
	if err != nil {
		t.Fatalf("setup() failed: %v", err)
	}

	server := NewServer(ServerDeps{
		Conf:         conf,
		Logger:       testLogger{t},
		Mail:         emailsvc.NewConsoleServiceMock(conf),
		Auth:         lmsapi.NewAuthClient(client),
		Universities: lmsapi.NewUniversityClient(client),
		Admins:       lmsapi.NewAdminClient(client),
		Students:     lmsapi.NewStudentClient(client),
		Courses:      lmsapi.NewCourseClient(client),
		Enrollments:  lmsapi.NewEnrollmentClient(client),
		Topics:       lmsapi.NewTopicClient(client),
		Files:        lmsapi.NewFileClient(client),
	})
	return server, backend, conf
}

type httpTest struct {
	name     string
	method   string
	path     string
	body     []byte
	identity *identity.Identity
	wantCode int
	wantData []byte
	extra    interface{}
}

func newRequest(method, path string, data ...[]byte) (*http.Request, *httptest.ResponseRecorder) {
	var body bytes.Buffer
	if len(data) > 0 {
		body.Write(data[0])
	}
	req := httptest.NewRequest(method, path, &body)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	return req, rec
}

func newAuthRequest(t *testing.T, conf *core.Config, id identity.Identity, method, path string, data ...[]byte) (*http.Request, *httptest.ResponseRecorder) {
	req, rec := newRequest(method, path, data...)
	req.AddCookie(sessionCookie(t, conf, id))
	return req, rec
}

func sessionCookie(t *testing.T, conf *core.Config, id identity.Identity) *http.Cookie {
	t.Helper()
	token, err := GenerateToken(getIdentityClaims(id, conf), conf)
	if err != nil {
		t.Fatalf("sessionCookie() failed: %v", err)
	}
	return &http.Cookie{Name: conf.Session.CookieName, Value: token}
}

func marchallObj(t *testing.T, obj interface{}) []byte {
	data, err := json.Marshal(obj)
	if err != nil {
		t.Fatalf("marchallObj() failed: %v", err)
	}
	return data
}

func checkCodeAndData(t *testing.T, tt httpTest, rec *httptest.ResponseRecorder) {
	t.Helper()
	if rec.Code != tt.wantCode {
		t.Errorf("failed! code = %v; wantCode %v; body %s", rec.Code, tt.wantCode, rec.Body.String())
	}
	if tt.wantData != nil {
		testutil.JSONEq(t, tt.wantData, rec.Body.Bytes())
	}
}

func findCookie(rec *httptest.ResponseRecorder, name string) *http.Cookie {
	for _, c := range rec.Result().Cookies() {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// newMultipartRequest builds a topic-form submission; fileName == "" omits the
// file part.
func newMultipartRequest(t *testing.T, path string, fields map[string]string, fileName string) (*http.Request, *httptest.ResponseRecorder) {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	for k, v := range fields {
		if err := mw.WriteField(k, v); err != nil {
			t.Fatalf("newMultipartRequest() failed: %v", err)
		}
	}
	if fileName != "" {
		part, err := mw.CreateFormFile("file", fileName)
		if err != nil {
			t.Fatalf("newMultipartRequest() failed: %v", err)
		}
		if _, err = io.WriteString(part, "fake file content"); err != nil {
			t.Fatalf("newMultipartRequest() failed: %v", err)
		}
	}
	if err := mw.Close(); err != nil {
		t.Fatalf("newMultipartRequest() failed: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, path, &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rec := httptest.NewRecorder()
	return req, rec
}
