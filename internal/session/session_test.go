package session

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/crumbline/crumbline/internal/storage"
)

func newTestStore(t *testing.T) (*Store, *storage.Store) {
	t.Helper()
	st, err := storage.New(t.TempDir())
	if err != nil {
		t.Fatalf("new storage: %v", err)
	}
	return NewStore(st), st
}

func signedToken(t *testing.T, exp time.Time) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "ada@example.com",
		"exp": exp.Unix(),
	})
	signed, err := token.SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return signed
}

func TestNormalizeRoleFoldsVariants(t *testing.T) {
	cases := map[string]Role{
		"ROLE_ADMIN":      RoleAdmin,
		"ROLE_ROLE_ADMIN": RoleAdmin,
		"admin":           RoleAdmin,
		"ROLE_USER":       RoleCustomer,
		"CUSTOMER":        RoleCustomer,
		"Moderator":       RoleModerator,
		"":                RoleUnknown,
		"ROLE_WIZARD":     RoleUnknown,
	}
	for raw, want := range cases {
		if got := NormalizeRole(raw); got != want {
			t.Fatalf("NormalizeRole(%q) = %s, want %s", raw, got, want)
		}
	}
}

func TestInitWithoutPersistedSessionIsAnonymous(t *testing.T) {
	store, _ := newTestStore(t)
	if store.State() != StateUnloaded {
		t.Fatalf("fresh store must be Unloaded")
	}
	if got := store.Init(); got != StateAnonymous {
		t.Fatalf("Init = %s, want anonymous", got)
	}
	if store.Token() != "" {
		t.Fatalf("anonymous store must yield no token")
	}
}

func TestLoginPersistsAndInitRestores(t *testing.T) {
	store, backing := newTestStore(t)
	store.Init()
	token := signedToken(t, time.Now().Add(time.Hour))
	user, err := store.Login("ada", "ada@example.com", "ROLE_ADMIN", token, RoleAdmin)
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if user.Role != RoleAdmin {
		t.Fatalf("role = %s, want admin", user.Role)
	}
	if store.State() != StateAuthenticated {
		t.Fatalf("state = %s, want authenticated", store.State())
	}

	restored := NewStore(backing)
	if got := restored.Init(); got != StateAuthenticated {
		t.Fatalf("restored Init = %s, want authenticated", got)
	}
	if restored.Token() != token {
		t.Fatalf("restored token mismatch")
	}
	if restored.User().Role != RoleAdmin {
		t.Fatalf("restored role = %s", restored.User().Role)
	}
}

func TestInitPurgesExpiredToken(t *testing.T) {
	store, backing := newTestStore(t)
	store.Init()
	token := signedToken(t, time.Now().Add(-time.Minute))
	if _, err := store.Login("ada", "ada@example.com", "ROLE_USER", token, RoleCustomer); err != nil {
		t.Fatalf("login: %v", err)
	}

	restored := NewStore(backing)
	if got := restored.Init(); got != StateAnonymous {
		t.Fatalf("expired session restored as %s, want anonymous", got)
	}
	var doc map[string]any
	if err := backing.Read(storage.KeySession, &doc); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("expired session must be purged, read err = %v", err)
	}
}

func TestLoginRoleMismatchRejectsAndPersistsNothing(t *testing.T) {
	store, backing := newTestStore(t)
	store.Init()
	_, err := store.Login("ada", "ada@example.com", "ROLE_ADMIN", "tok", RoleCustomer)
	if !errors.Is(err, ErrRoleMismatch) {
		t.Fatalf("err = %v, want role mismatch", err)
	}
	if store.State() != StateAnonymous {
		t.Fatalf("state = %s, want anonymous after rejected login", store.State())
	}
	var doc map[string]any
	if err := backing.Read(storage.KeySession, &doc); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("nothing may be persisted on mismatch, read err = %v", err)
	}
}

func TestLogoutClearsEverything(t *testing.T) {
	store, backing := newTestStore(t)
	store.Init()
	if _, err := store.Login("ada", "ada@example.com", "CUSTOMER", "tok", RoleCustomer); err != nil {
		t.Fatalf("login: %v", err)
	}
	store.Logout()
	if store.State() != StateAnonymous {
		t.Fatalf("state = %s, want anonymous", store.State())
	}
	var doc map[string]any
	if err := backing.Read(storage.KeySession, &doc); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("persisted session must be gone, read err = %v", err)
	}
}

func TestGuardWaitsWhileLoading(t *testing.T) {
	store, _ := newTestStore(t)
	decision := store.Guard(RoleAdmin)
	if !decision.Wait {
		t.Fatalf("unloaded store must yield a wait decision")
	}
}

func TestGuardRedirectsAnonymousToLanding(t *testing.T) {
	store, _ := newTestStore(t)
	store.Init()
	decision := store.Guard(RoleCustomer)
	if decision.Wait || decision.Allowed {
		t.Fatalf("anonymous must redirect, got %+v", decision)
	}
	if decision.RedirectTo != RouteLanding {
		t.Fatalf("redirect = %s, want landing", decision.RedirectTo)
	}
}

func TestGuardRedirectsMismatchedRoleHome(t *testing.T) {
	store, _ := newTestStore(t)
	store.Init()
	if _, err := store.Login("ada", "ada@example.com", "ROLE_USER", "tok", RoleCustomer); err != nil {
		t.Fatalf("login: %v", err)
	}
	decision := store.Guard(RoleAdmin)
	if decision.Allowed || decision.Wait {
		t.Fatalf("customer must not pass an admin gate: %+v", decision)
	}
	if decision.RedirectTo != RouteCustomer {
		t.Fatalf("redirect = %s, want the session's own dashboard", decision.RedirectTo)
	}
}

func TestGuardAllowsMatchingRoleAndAnyAuthenticated(t *testing.T) {
	store, _ := newTestStore(t)
	store.Init()
	if _, err := store.Login("ada", "ada@example.com", "ROLE_ADMIN", "tok", RoleAdmin); err != nil {
		t.Fatalf("login: %v", err)
	}
	if d := store.Guard(RoleAdmin); !d.Allowed {
		t.Fatalf("matching role must be allowed: %+v", d)
	}
	if d := store.Guard(RoleUnknown); !d.Allowed {
		t.Fatalf("any-authenticated gate must pass: %+v", d)
	}
}

func TestHomeRouteTable(t *testing.T) {
	cases := map[Role]Route{
		RoleAdmin:     RouteAdmin,
		RoleCustomer:  RouteCustomer,
		RoleModerator: RouteModerator,
		RoleUnknown:   RouteLanding,
	}
	for role, want := range cases {
		if got := HomeRoute(role); got != want {
			t.Fatalf("HomeRoute(%s) = %s, want %s", role, got, want)
		}
	}
}
