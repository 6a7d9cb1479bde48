package identity

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type authStub struct {
	id  Identity
	err error

	gotEmail  string
	gotSecret string
}

func (a *authStub) Authenticate(_ context.Context, email, secret string) (Identity, error) {
	a.gotEmail, a.gotSecret = email, secret
	if a.err != nil {
		return Identity{}, a.err
	}
	return a.id, nil
}

func (a *authStub) SuperAdminLogin(_ context.Context, submitted, expected string) (Identity, error) {
	if submitted != expected {
		return Identity{}, ErrCodeMismatch
	}
	return a.id, nil
}

func newTestKeeper(t *testing.T) *FileKeeper {
	t.Helper()
	return NewFileKeeper(t.TempDir(), "currentUser", "superAdmin2FA")
}

func TestStore_Init(t *testing.T) {
	keeper := newTestKeeper(t)
	store := NewStore(&authStub{}, keeper)

	_, state := store.Current()
	assert.Equal(t, StateLoading, state)

	require.NoError(t, store.Init())
	id, state := store.Current()
	assert.Nil(t, id)
	assert.Equal(t, StateAnonymous, state)
}

func TestStore_Init_corruptRecordDegradesToAnonymous(t *testing.T) {
	dir := t.TempDir()
	keeper := NewFileKeeper(dir, "currentUser", "superAdmin2FA")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "currentUser.json"), []byte("{not json"), 0o600))

	store := NewStore(&authStub{}, keeper)
	err := store.Init()
	require.Error(t, err)

	id, state := store.Current()
	assert.Nil(t, id)
	assert.Equal(t, StateAnonymous, state)
}

func TestStore_Init_unknownRoleDegradesToAnonymous(t *testing.T) {
	keeper := newTestKeeper(t)
	require.NoError(t, keeper.WriteIdentity(Identity{ID: "9", Email: "x@test.cd", Role: "janitor"}))

	store := NewStore(&authStub{}, keeper)
	require.NoError(t, store.Init())

	id, state := store.Current()
	assert.Nil(t, id)
	assert.Equal(t, StateAnonymous, state)
}

func TestStore_Login(t *testing.T) {
	keeper := newTestKeeper(t)
	auth := &authStub{id: Identity{
		ID:        "42",
		Email:     "amina@univ.cd",
		Name:      "Amina K",
		Role:      RoleStudent,
		StudentID: 7,
		CreatedAt: time.Now().UTC().Truncate(time.Second),
	}}
	store := NewStore(auth, keeper)
	require.NoError(t, store.Init())

	id, err := store.Login(context.Background(), "  Amina@Univ.CD ", "s3cret")
	require.NoError(t, err)
	assert.Equal(t, auth.id, id)
	assert.Equal(t, "amina@univ.cd", auth.gotEmail, "email must be cleaned before hitting the backend")

	cur, state := store.Current()
	require.NotNil(t, cur)
	assert.Equal(t, StateAuthenticated, state)
	assert.Equal(t, auth.id, *cur)

	// simulated reload: a fresh store over the same keeper sees the session
	store2 := NewStore(auth, keeper)
	require.NoError(t, store2.Init())
	cur2, state2 := store2.Current()
	require.NotNil(t, cur2)
	assert.Equal(t, StateAuthenticated, state2)
	assert.Equal(t, auth.id, *cur2)
}

func TestStore_Login_failureLeavesStateUntouched(t *testing.T) {
	keeper := newTestKeeper(t)
	auth := &authStub{id: Identity{ID: "42", Email: "amina@univ.cd", Role: RoleStudent}}
	store := NewStore(auth, keeper)
	require.NoError(t, store.Init())

	_, err := store.Login(context.Background(), "amina@univ.cd", "s3cret")
	require.NoError(t, err)

	// any failure, including transport failure, maps to ErrAuthenticationFailed
	auth.err = errors.New("connection refused")
	_, err = store.Login(context.Background(), "amina@univ.cd", "wrong")
	assert.Equal(t, ErrAuthenticationFailed, err)

	// the previous session survives the failed attempt
	cur, state := store.Current()
	require.NotNil(t, cur)
	assert.Equal(t, StateAuthenticated, state)
	assert.Equal(t, "42", cur.ID)
}

func TestStore_LoginWithCode(t *testing.T) {
	keeper := newTestKeeper(t)
	store := NewStore(&authStub{}, keeper)
	require.NoError(t, store.Init())

	_, err := store.LoginWithCode("123456", "654321")
	assert.Equal(t, ErrCodeMismatch, err)
	_, err = store.LoginWithCode("", "")
	assert.Equal(t, ErrCodeMismatch, err, "empty codes must never match")

	id, err := store.LoginWithCode("654321", "654321")
	require.NoError(t, err)
	assert.Equal(t, "1", id.ID)
	assert.Equal(t, "superadmin@lms.com", id.Email)
	assert.Equal(t, "Super Administrator", id.Name)
	assert.Equal(t, RoleSuperAdmin, id.Role)

	cur, state := store.Current()
	require.NotNil(t, cur)
	assert.Equal(t, StateAuthenticated, state)
	assert.True(t, cur.IsSuperAdmin())

	// the last-used code is recorded under the auxiliary key
	data, err := os.ReadFile(keeper.codePath())
	require.NoError(t, err)
	assert.Equal(t, `"654321"`, string(data))
}

func TestStore_Logout(t *testing.T) {
	keeper := newTestKeeper(t)
	store := NewStore(&authStub{}, keeper)
	require.NoError(t, store.Init())

	_, err := store.LoginWithCode("654321", "654321")
	require.NoError(t, err)

	require.NoError(t, store.Logout())
	id, state := store.Current()
	assert.Nil(t, id)
	assert.Equal(t, StateAnonymous, state)

	// both persisted records are gone after a reload
	store2 := NewStore(&authStub{}, keeper)
	require.NoError(t, store2.Init())
	id2, state2 := store2.Current()
	assert.Nil(t, id2)
	assert.Equal(t, StateAnonymous, state2)
	_, err = os.Stat(keeper.identityPath())
	assert.True(t, os.IsNotExist(err))
	_, err = os.Stat(keeper.codePath())
	assert.True(t, os.IsNotExist(err))

	// logging out an anonymous session is a no-op
	require.NoError(t, store.Logout())
}

func TestStore_OnChange(t *testing.T) {
	keeper := newTestKeeper(t)
	auth := &authStub{id: Identity{ID: "42", Email: "amina@univ.cd", Role: RoleStudent}}
	store := NewStore(auth, keeper)

	var states []State
	store.OnChange(func(_ *Identity, state State) {
		states = append(states, state)
	})

	require.NoError(t, store.Init())
	_, err := store.Login(context.Background(), "amina@univ.cd", "s3cret")
	require.NoError(t, err)
	require.NoError(t, store.Logout())

	assert.Equal(t, []State{StateAnonymous, StateAuthenticated, StateAnonymous}, states)
}
