package tui

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/crumbline/crumbline/internal/bus"
	"github.com/crumbline/crumbline/internal/config"
	"github.com/crumbline/crumbline/internal/session"
	"github.com/crumbline/crumbline/internal/storage"
)

// stubBackend is a minimal storefront API used to drive the app model.
type stubBackend struct {
	role         string
	unauthorized atomic.Bool
	cartLoads    atomic.Int64
}

func (b *stubBackend) handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/auth/login", func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Email string `json:"email"`
		}
		_ = json.NewDecoder(r.Body).Decode(&req)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"token": "stub-token",
			"user": map[string]any{
				"id":    req.Email,
				"name":  "Test User",
				"email": req.Email,
				"role":  b.role,
			},
		})
	})
	mux.HandleFunc("/cookies", func(w http.ResponseWriter, r *http.Request) {
		if b.unauthorized.Load() {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		_, _ = w.Write([]byte("[]"))
	})
	mux.HandleFunc("/orders", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("[]"))
	})
	mux.HandleFunc("/orders/my-orders", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("[]"))
	})
	mux.HandleFunc("/customers", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("[]"))
	})
	mux.HandleFunc("/carts/my-cart", func(w http.ResponseWriter, r *http.Request) {
		b.cartLoads.Add(1)
		w.WriteHeader(http.StatusNotFound)
	})
	return mux
}

func newTestApp(t *testing.T, backend *stubBackend) (*App, string) {
	t.Helper()
	dir := t.TempDir()
	if err := config.InitCrumblineDir(dir); err != nil {
		t.Fatalf("init crumbline dir: %v", err)
	}
	server := httptest.NewServer(backend.handler())
	t.Cleanup(server.Close)
	app, err := NewApp(dir, WithAPIBaseURL(server.URL))
	if err != nil {
		t.Fatalf("new app: %v", err)
	}
	return app, dir
}

// drain feeds a command's messages back through Update until the model
// settles, expanding batches along the way.
func drain(t *testing.T, app *App, cmd tea.Cmd) *App {
	t.Helper()
	queue := []tea.Cmd{cmd}
	for len(queue) > 0 {
		next := queue[0]
		queue = queue[1:]
		if next == nil {
			continue
		}
		msg := next()
		if msg == nil {
			continue
		}
		if batch, ok := msg.(tea.BatchMsg); ok {
			queue = append(queue, batch...)
			continue
		}
		model, followUp := app.Update(msg)
		var okModel bool
		app, okModel = model.(*App)
		if !okModel {
			t.Fatalf("unexpected model type: %T", model)
		}
		if followUp != nil {
			queue = append(queue, followUp)
		}
	}
	return app
}

func login(t *testing.T, app *App, email string, selected session.Role) *App {
	t.Helper()
	app.login = newLoginView(app)
	app.state = stateLogin
	app.login.email.SetValue(email)
	app.login.password.SetValue("secret")
	for i, role := range loginRoles {
		if role == selected {
			app.login.roleIdx = i
		}
	}
	return drain(t, app, app.login.submit())
}

func TestLoginRoutesAdminToAdminDashboard(t *testing.T) {
	app, _ := newTestApp(t, &stubBackend{role: "ROLE_ADMIN"})
	app = login(t, app, "boss@crumbline.dev", session.RoleAdmin)
	if app.state != stateAdmin {
		t.Fatalf("expected admin dashboard, got state %d", app.state)
	}
	if app.session.State() != session.StateAuthenticated {
		t.Fatalf("expected authenticated session, got %s", app.session.State())
	}
	if app.admin == nil || !app.admin.cookies.Loaded() {
		t.Fatalf("expected admin overview to load collections")
	}
}

func TestLoginRoutesCustomerToCustomerDashboard(t *testing.T) {
	app, _ := newTestApp(t, &stubBackend{role: "ROLE_USER"})
	app = login(t, app, "jane@example.com", session.RoleCustomer)
	if app.state != stateCustomer {
		t.Fatalf("expected customer dashboard, got state %d", app.state)
	}
	if app.customer == nil || !app.customer.catalog.Loaded() {
		t.Fatalf("expected catalog to load on entry")
	}
}

func TestLoginRoleMismatchRejectsAndKeepsForm(t *testing.T) {
	app, _ := newTestApp(t, &stubBackend{role: "ROLE_ADMIN"})
	app = login(t, app, "boss@crumbline.dev", session.RoleCustomer)
	if app.state != stateLogin {
		t.Fatalf("mismatch must stay on the login form, got state %d", app.state)
	}
	if app.login == nil || app.login.errMsg == "" {
		t.Fatalf("expected a role mismatch message")
	}
	if got := app.login.email.Value(); got != "boss@crumbline.dev" {
		t.Fatalf("typed email must survive the rejection, got %q", got)
	}
	if app.session.Token() != "" {
		t.Fatalf("nothing may be persisted on mismatch")
	}
}

func TestSessionRestoreRoutesByRole(t *testing.T) {
	backend := &stubBackend{role: "ROLE_ADMIN"}
	app, dir := newTestApp(t, backend)
	if _, err := app.session.Login("Boss", "boss@crumbline.dev", "ROLE_ADMIN", "stub-token", session.RoleUnknown); err != nil {
		t.Fatalf("seed session: %v", err)
	}

	restarted, err := NewApp(dir, WithAPIBaseURL(app.baseURL))
	if err != nil {
		t.Fatalf("restart app: %v", err)
	}
	restarted = drain(t, restarted, restarted.initSession())
	if restarted.state != stateAdmin {
		t.Fatalf("restored admin session must land on the admin dashboard, got state %d", restarted.state)
	}
}

func TestUnauthorizedAnywhereLandsOnLanding(t *testing.T) {
	backend := &stubBackend{role: "ROLE_USER"}
	app, _ := newTestApp(t, backend)
	app = login(t, app, "jane@example.com", session.RoleCustomer)
	if app.state != stateCustomer {
		t.Fatalf("expected customer dashboard, got state %d", app.state)
	}

	backend.unauthorized.Store(true)
	app = drain(t, app, app.customer.loadCatalog())
	// The hook signed the session out on the request goroutine and left
	// a wake-up signal for the update loop.
	if len(app.signedOut) != 1 {
		t.Fatalf("401 must queue exactly one sign-out signal, got %d", len(app.signedOut))
	}
	<-app.signedOut
	model, _ := app.Update(signedOutMsg{})
	app = model.(*App)
	if app.state != stateLanding {
		t.Fatalf("401 must land on the landing screen, got state %d", app.state)
	}
	if app.session.State() != session.StateAnonymous {
		t.Fatalf("401 must leave the session anonymous, got %s", app.session.State())
	}
	if app.customer != nil {
		t.Fatalf("sign-out must tear down the dashboards")
	}
}

func TestCartSignalReloadsMountedCartOnly(t *testing.T) {
	backend := &stubBackend{role: "ROLE_USER"}
	app, _ := newTestApp(t, backend)
	app = login(t, app, "jane@example.com", session.RoleCustomer)
	app = drain(t, app, app.customer.switchSection(int(sectionCart)))
	if !app.customer.cartLoaded {
		t.Fatalf("cart section must load on entry")
	}
	before := backend.cartLoads.Load()

	app.bus.Publish(bus.TopicCartChanged)
	select {
	case <-app.cartSub.Signals:
	default:
		t.Fatalf("publication must reach the app's subscription")
	}
	app = drain(t, app, app.customer.handleCartSignal())
	if got := backend.cartLoads.Load(); got != before+1 {
		t.Fatalf("mounted cart must reload once on the signal, got %d loads (was %d)", got, before)
	}

	// An unmounted cart is only marked stale.
	app.customer.section = sectionHome
	before = backend.cartLoads.Load()
	app = drain(t, app, app.customer.handleCartSignal())
	if got := backend.cartLoads.Load(); got != before {
		t.Fatalf("unmounted cart must not refetch, got %d loads (was %d)", got, before)
	}
	if app.customer.cartLoaded {
		t.Fatalf("cached cart must be marked stale for the next entry")
	}
}

func TestThemeToggleIsPersisted(t *testing.T) {
	backend := &stubBackend{role: "ROLE_USER"}
	app, _ := newTestApp(t, backend)
	app = login(t, app, "jane@example.com", session.RoleCustomer)
	app.customer.section = sectionSettings
	app.customer.handleSettingsKey(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'t'}})
	if app.theme.Name != "dark" {
		t.Fatalf("theme toggle must switch to dark, got %s", app.theme.Name)
	}
	prefs := storage.LoadPreferences(app.storage)
	if prefs.Theme != "dark" {
		t.Fatalf("theme must persist, got %q", prefs.Theme)
	}
}

func TestLandingMenuOffersLoginRegisterExit(t *testing.T) {
	app, _ := newTestApp(t, &stubBackend{role: "ROLE_USER"})
	var titles []string
	for _, item := range landingMenuItems() {
		titles = append(titles, item.(menuItem).title)
	}
	want := []string{"Login", "Register", "Exit"}
	if strings.Join(titles, ",") != strings.Join(want, ",") {
		t.Fatalf("landing menu = %v, want %v", titles, want)
	}
	if app.state != stateLanding {
		t.Fatalf("app must start on the landing screen")
	}
}
