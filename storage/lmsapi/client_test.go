package lmsapi

import (
	"context"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/lideo/core"
	"github.com/trezcool/lideo/core/catalog"
	"github.com/trezcool/lideo/core/identity"
	testutil "github.com/trezcool/lideo/tests"
)

type testLogger struct{ t *testing.T }

func (l testLogger) Debug(msg string, args ...interface{}) { l.t.Logf("DEBUG: %s %v", msg, args) }
func (l testLogger) Info(msg string, args ...interface{})  { l.t.Logf("INFO: %s %v", msg, args) }
func (l testLogger) Warn(msg string, args ...interface{})  { l.t.Logf("WARN: %s %v", msg, args) }
func (l testLogger) Error(msg string, args ...interface{}) { l.t.Logf("ERROR: %s %v", msg, args) }
func (l testLogger) Fatal(msg string, args ...interface{}) { l.t.Logf("FATAL: %s %v", msg, args) }

func setup(t *testing.T) (*Client, *testutil.FakeBackend) {
	t.Helper()
	backend := testutil.NewFakeBackend(t)

	conf := &core.Config{}
	conf.API.BaseURL = backend.URL()
	conf.API.Timeout = 5 * time.Second

	client, err := NewClient(conf, testLogger{t})
	require.NoError(t, err)
	return client, backend
}

func TestAuthClient(t *testing.T) {
	client, backend := setup(t)
	backend.AddAccount("amina@univ.cd", "s3cret", identity.Identity{
		ID:        "42",
		Email:     "amina@univ.cd",
		Name:      "Amina K",
		Role:      identity.RoleStudent,
		StudentID: 7,
	})
	auth := NewAuthClient(client)

	id, err := auth.Authenticate(context.Background(), "amina@univ.cd", "s3cret")
	require.NoError(t, err)
	assert.Equal(t, "42", id.ID)
	assert.Equal(t, identity.RoleStudent, id.Role)

	_, err = auth.Authenticate(context.Background(), "amina@univ.cd", "wrong")
	assert.Equal(t, ErrPermissionDenied, err)

	id, err = auth.SuperAdminLogin(context.Background(), "654321", "654321")
	require.NoError(t, err)
	assert.Equal(t, "superadmin@lms.com", id.Email)
}

func TestUniversityClient(t *testing.T) {
	client, backend := setup(t)
	seeded := backend.AddUniversity(catalog.University{Name: "Unikin", Address: "Kinshasa", EstYear: "1954", Status: catalog.StatusActive})
	api := NewUniversityClient(client)
	ctx := context.Background()

	unis, err := api.All(ctx)
	require.NoError(t, err)
	require.Len(t, unis, 1)
	assert.Equal(t, seeded, unis[0])

	uni, err := api.Get(ctx, seeded.ID)
	require.NoError(t, err)
	assert.Equal(t, seeded, uni)

	_, err = api.Get(ctx, 424242)
	assert.Equal(t, catalog.ErrNotFound, err)

	created, err := api.Create(ctx, catalog.NewUniversity{Name: "Unilu", Address: "Lubumbashi", EstYear: "1955"})
	require.NoError(t, err)
	assert.NotZero(t, created.ID)
	assert.Equal(t, "Unilu", created.Name)

	updated, err := api.Update(ctx, created.ID, catalog.UpdateUniversity{Name: "Université de Lubumbashi"})
	require.NoError(t, err)
	assert.Equal(t, "Université de Lubumbashi", updated.Name)

	require.NoError(t, api.Delete(ctx, created.ID))
	unis, err = api.All(ctx)
	require.NoError(t, err)
	assert.Len(t, unis, 1)
}

func TestClient_statusMapping(t *testing.T) {
	client, backend := setup(t)
	api := NewUniversityClient(client)
	ctx := context.Background()

	backend.Fail("/api/universities", http.StatusBadRequest)
	_, err := api.All(ctx)
	var vErr *core.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "forced failure", vErr.Error())

	backend.Fail("/api/universities", http.StatusForbidden)
	_, err = api.All(ctx)
	assert.Equal(t, ErrPermissionDenied, err)

	backend.Fail("/api/universities", http.StatusNotFound)
	_, err = api.All(ctx)
	assert.Equal(t, catalog.ErrNotFound, err)

	backend.Fail("/api/universities", http.StatusInternalServerError)
	_, err = api.All(ctx)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 500")
}

func TestClient_contextCancellation(t *testing.T) {
	client, _ := setup(t)
	api := NewUniversityClient(client)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := api.All(ctx)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "context canceled")
}

func TestEnrollmentClient_createWirePayload(t *testing.T) {
	client, _ := setup(t)
	api := NewEnrollmentClient(client)
	ctx := context.Background()

	created, err := api.Create(ctx, catalog.NewEnrollment{CourseID: 1, StudentID: 7, UniversityID: 10})
	require.NoError(t, err)
	assert.Equal(t, 1, created.CourseID)
	assert.Equal(t, 7, created.StudentID)
	assert.Equal(t, 10, created.UniversityID)

	all, err := api.All(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)

	require.NoError(t, api.Delete(ctx, created.ID))
	all, err = api.All(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestTopicClient(t *testing.T) {
	client, backend := setup(t)
	backend.AddTopic(catalog.CourseTopic{Title: "Intro", CourseID: 1, SortOrder: 1})
	backend.AddTopic(catalog.CourseTopic{Title: "Other course", CourseID: 2, SortOrder: 1})
	api := NewTopicClient(client)
	ctx := context.Background()

	topics, err := api.ByCourse(ctx, 1)
	require.NoError(t, err)
	require.Len(t, topics, 1)
	assert.Equal(t, "Intro", topics[0].Title)

	created, err := api.Create(ctx, catalog.TopicForm{
		Title:    "Sorting",
		Material: catalog.KindLink,
		VideoURL: "https://example.org/sorting",
		CourseID: 1,
	})
	require.NoError(t, err)
	assert.NotZero(t, created.ID)

	require.NoError(t, api.Delete(ctx, created.ID))
	topics, err = api.ByCourse(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, topics, 1)
}

func TestFileClient_Upload(t *testing.T) {
	client, _ := setup(t)
	api := NewFileClient(client)

	fileURL, err := api.Upload(context.Background(), "notes.pdf", strings.NewReader("%PDF-1.4 fake"))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(fileURL, "https://files.lms.local/"), "got %q", fileURL)
	assert.True(t, strings.HasSuffix(fileURL, "/notes.pdf"), "got %q", fileURL)
	assert.False(t, strings.Contains(fileURL, `"`), "quoted JSON response must be decoded")
}
