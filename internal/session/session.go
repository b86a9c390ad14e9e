// internal/session/session.go
//
// The single owned session store. One instance lives for the whole
// application run; its lifecycle is Unloaded → Loading →
// {Authenticated, Anonymous}, and consumers must not read the user
// while Loading (the guard renders a wait state instead).

package session

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/crumbline/crumbline/internal/storage"
)

// State is the store's lifecycle position.
type State string

const (
	StateUnloaded      State = "unloaded"
	StateLoading       State = "loading"
	StateAuthenticated State = "authenticated"
	StateAnonymous     State = "anonymous"
)

// User is the authenticated identity held by the store.
type User struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  Role   `json:"role"`
}

// persisted is the on-disk session document.
type persisted struct {
	User    User      `json:"user"`
	Token   string    `json:"token"`
	RawRole string    `json:"rawRole"`
	SavedAt time.Time `json:"savedAt"`
}

// ErrRoleMismatch reports a login whose authenticated role does not
// match the role the user selected on the form. Nothing is persisted
// and no token retained when this is returned.
var ErrRoleMismatch = errors.New("session: account role does not match the selected login type")

// Store owns the session. Safe for concurrent reads; mutation happens
// from the UI loop and the api client's unauthorized hook.
type Store struct {
	mu      sync.RWMutex
	state   State
	user    User
	token   string
	storage *storage.Store
}

// NewStore creates an Unloaded store backed by durable storage.
func NewStore(st *storage.Store) *Store {
	return &Store{state: StateUnloaded, storage: st}
}

// State returns the current lifecycle state.
func (s *Store) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// User returns the authenticated identity. Zero value unless
// Authenticated.
func (s *Store) User() User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.state != StateAuthenticated {
		return User{}
	}
	return s.user
}

// Token yields the bearer token for the api client's TokenSource.
func (s *Store) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.state != StateAuthenticated {
		return ""
	}
	return s.token
}

// Init restores the persisted session, landing in Authenticated when a
// well-formed, unexpired one exists and Anonymous otherwise. Malformed
// or expired sessions are purged so the next start is clean.
func (s *Store) Init() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = StateLoading

	var doc persisted
	err := s.storage.Read(storage.KeySession, &doc)
	switch {
	case errors.Is(err, storage.ErrNotFound):
		s.state = StateAnonymous
	case err != nil:
		_ = s.storage.Delete(storage.KeySession)
		s.state = StateAnonymous
	case doc.Token == "" || doc.User.Email == "":
		_ = s.storage.Delete(storage.KeySession)
		s.state = StateAnonymous
	case tokenExpired(doc.Token, time.Now()):
		_ = s.storage.Delete(storage.KeySession)
		s.state = StateAnonymous
	default:
		doc.User.Role = NormalizeRole(doc.RawRole)
		s.user = doc.User
		s.token = doc.Token
		s.state = StateAuthenticated
	}
	return s.state
}

// Login validates the authenticated role against the form's selected
// role, then persists the session and transitions to Authenticated.
func (s *Store) Login(name, email, rawRole, token string, selected Role) (User, error) {
	role := NormalizeRole(rawRole)
	if selected != RoleUnknown && role != selected {
		return User{}, fmt.Errorf("%w: account is %s", ErrRoleMismatch, role)
	}
	user := User{ID: email, Name: name, Email: email, Role: role}
	if user.Name == "" {
		user.Name = strings.SplitN(email, "@", 2)[0]
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	doc := persisted{User: user, Token: token, RawRole: rawRole, SavedAt: time.Now()}
	if err := s.storage.Write(storage.KeySession, doc); err != nil {
		return User{}, err
	}
	s.user = user
	s.token = token
	s.state = StateAuthenticated
	return user, nil
}

// Logout clears the persisted user and token and transitions to
// Anonymous. Also the landing point for any 401.
func (s *Store) Logout() {
	s.mu.Lock()
	defer s.mu.Unlock()
	_ = s.storage.Delete(storage.KeySession)
	s.user = User{}
	s.token = ""
	s.state = StateAnonymous
}

// tokenExpired decodes the JWT without verifying its signature (the
// server remains the authority), purely to avoid restoring a session
// whose very first request would bounce off a 401.
func tokenExpired(token string, now time.Time) bool {
	parser := jwt.NewParser()
	claims := jwt.MapClaims{}
	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		// Opaque tokens pass through; the server decides.
		return false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return exp.Before(now)
}
