package identity

import (
	"context"
	"sync"
	"time"

	"github.com/pkg/errors"

	"github.com/trezcool/lideo/core"
)

// elevated identity synthesized by the secondary code step
const (
	superAdminID    = "1"
	superAdminEmail = "superadmin@lms.com"
	superAdminName  = "Super Administrator"
)

// State is the session lifecycle state. Consumers must treat it as a
// tri-state: an absent identity cannot be inferred before Init has run.
type State int

const (
	StateLoading State = iota
	StateAnonymous
	StateAuthenticated
)

func (s State) String() string {
	switch s {
	case StateAnonymous:
		return "anonymous"
	case StateAuthenticated:
		return "authenticated"
	default:
		return "loading"
	}
}

// Store owns the current session identity. At most one identity is current
// per store; all transitions go through Login/LoginWithCode/Logout and are
// reflected in the Keeper before in-memory reads see the new value.
type Store struct {
	auth   AuthService
	keeper Keeper

	mu      sync.RWMutex
	state   State
	current *Identity
	subs    []func(*Identity, State)
}

func NewStore(auth AuthService, keeper Keeper) *Store {
	return &Store{auth: auth, keeper: keeper, state: StateLoading}
}

// Init performs the one-shot bootstrap read of the persisted identity.
// A missing or unparseable record degrades to the anonymous state; the
// parse error is returned for logging.
func (s *Store) Init() error {
	id, err := s.keeper.ReadIdentity()
	if err != nil || id == nil || !KnownRole(id.Role) {
		s.set(nil)
		return err
	}
	s.set(id)
	return nil
}

// Login authenticates against the backend and commits the returned identity
// to the keeper and memory. Any failure, including transport failure,
// surfaces as ErrAuthenticationFailed and leaves the session untouched.
func (s *Store) Login(ctx context.Context, email, secret string) (Identity, error) {
	id, err := s.auth.Authenticate(ctx, core.CleanString(email, true /* lower */), secret)
	if err != nil {
		return Identity{}, ErrAuthenticationFailed
	}
	if err = s.keeper.WriteIdentity(id); err != nil {
		return Identity{}, errors.Wrap(err, "persisting identity")
	}
	s.set(&id)
	return id, nil
}

// LoginWithCode compares the submitted secondary code to the expected one and,
// on match, synthesizes the elevated super-admin identity. The comparison is
// local only; no backend verification happens on this path.
func (s *Store) LoginWithCode(submitted, expected string) (Identity, error) {
	if submitted == "" || submitted != expected {
		return Identity{}, ErrCodeMismatch
	}
	id := Identity{
		ID:        superAdminID,
		Email:     superAdminEmail,
		Name:      superAdminName,
		Role:      RoleSuperAdmin,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.keeper.WriteIdentity(id); err != nil {
		return Identity{}, errors.Wrap(err, "persisting identity")
	}
	_ = s.keeper.WriteLastCode(submitted) // legacy key; best effort
	s.set(&id)
	return id, nil
}

// Logout clears the in-memory and persisted identity unconditionally.
// Logging out an anonymous session is a no-op.
func (s *Store) Logout() error {
	s.set(nil)
	return s.keeper.Clear()
}

// Current returns the session identity (nil unless authenticated) and the
// lifecycle state.
func (s *Store) Current() (*Identity, State) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current == nil {
		return nil, s.state
	}
	id := *s.current
	return &id, s.state
}

// OnChange registers fn to be called after every state transition.
func (s *Store) OnChange(fn func(*Identity, State)) {
	s.mu.Lock()
	s.subs = append(s.subs, fn)
	s.mu.Unlock()
}

func (s *Store) set(id *Identity) {
	s.mu.Lock()
	if id == nil {
		s.state = StateAnonymous
		s.current = nil
	} else {
		s.state = StateAuthenticated
		s.current = id
	}
	state := s.state
	subs := make([]func(*Identity, State), len(s.subs))
	copy(subs, s.subs)
	s.mu.Unlock()

	for _, fn := range subs {
		var cp *Identity
		if id != nil {
			c := *id
			cp = &c
		}
		fn(cp, state)
	}
}
