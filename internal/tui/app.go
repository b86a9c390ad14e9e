// internal/tui/app.go
//
// The main TUI for crumbline. It uses bubbletea, which follows The Elm
// Architecture:
//
// 1. Model: Your application state
// 2. Update: A function that updates state based on messages
// 3. View: A function that renders state to a string
//
// The flow is: User Input -> Message -> Update -> New Model -> View -> Screen
//
// All HTTP work runs inside tea.Cmd goroutines; state is only ever
// mutated from Update.

package tui

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/crumbline/crumbline/internal/api"
	"github.com/crumbline/crumbline/internal/bus"
	"github.com/crumbline/crumbline/internal/config"
	"github.com/crumbline/crumbline/internal/logbook"
	"github.com/crumbline/crumbline/internal/session"
	"github.com/crumbline/crumbline/internal/storage"
)

// appState represents which "screen" we're on
type appState int

const (
	stateLanding   appState = iota // Storefront banner + main menu
	stateLogin                     // Login form with the role selector
	stateRegister                  // Customer self-registration form
	stateCustomer                  // Customer dashboard
	stateAdmin                     // Admin dashboard
	stateModerator                 // Placeholder route for moderator accounts
)

// Session lifecycle and cross-cutting messages. Dashboard-specific
// messages live next to their views.
type sessionReadyMsg struct {
	state session.State
}

type signedOutMsg struct{}

type cartChangedMsg struct{}

type loginResultMsg struct {
	user session.User
	err  error
}

type registerResultMsg struct {
	err error
}

// AppOption customizes App construction for tests and alternate runtimes.
type AppOption func(*App)

// WithAPIBaseURL overrides the configured API base URL.
func WithAPIBaseURL(url string) AppOption {
	return func(a *App) {
		if strings.TrimSpace(url) != "" {
			a.baseURL = url
		}
	}
}

// App is the main application model. In bubbletea, this holds ALL your state.
type App struct {
	state   appState
	config  *config.Config
	storage *storage.Store
	session *session.Store
	client  *api.Client
	bus     *bus.Bus
	logbook *logbook.Logbook

	baseURL string
	cartSub bus.Subscription
	// signedOut carries the api client's unauthorized hook into the
	// update loop. Buffered so the hook never blocks a request goroutine.
	signedOut chan struct{}

	prefs storage.Preferences
	theme Theme

	// UI components
	mainMenu  list.Model
	login     *loginView
	register  *registerView
	customer  *customerView
	admin     *adminView
	statusMsg string

	// Window size (we get this from bubbletea)
	width  int
	height int
}

// menuItem implements list.Item interface for our menu items
type menuItem struct {
	title string
	desc  string
}

func (i menuItem) Title() string       { return i.title }
func (i menuItem) Description() string { return i.desc }
func (i menuItem) FilterValue() string { return i.title }

// NewApp creates a new App instance rooted at baseDir.
func NewApp(baseDir string, opts ...AppOption) (*App, error) {
	cfg, err := config.New(baseDir)
	if err != nil {
		return nil, err
	}
	store, err := storage.New(cfg.StateDir())
	if err != nil {
		return nil, err
	}
	logPath := filepath.Join(cfg.LogsDir(), "session.log")
	lb, err := logbook.New(logPath)
	if err == nil {
		lb.Info("Session opened")
	}
	prefs := storage.LoadPreferences(store)
	// config.yaml's ui.theme only seeds the first run; a theme saved
	// from Settings wins afterwards.
	if err := store.Read(storage.KeyPreferences, &storage.Preferences{}); errors.Is(err, storage.ErrNotFound) {
		if theme := cfg.File.UI.Theme; theme != "" {
			prefs.Theme = theme
		}
	}

	app := &App{
		state:     stateLanding,
		config:    cfg,
		storage:   store,
		session:   session.NewStore(store),
		logbook:   lb,
		baseURL:   cfg.APIBaseURL(),
		signedOut: make(chan struct{}, 1),
		prefs:     prefs,
		theme:     themeNamed(prefs.Theme),
		statusMsg: "Restoring session...",
	}
	for _, opt := range opts {
		if opt != nil {
			opt(app)
		}
	}

	app.client = api.NewClient(app.baseURL,
		api.WithHTTPClient(&http.Client{Timeout: cfg.RequestTimeout()}),
		api.WithTokenSource(app.session),
		api.WithCacheMaxAge(cfg.CacheMaxAge()),
		api.WithLogger(lb),
		api.WithOnUnauthorized(app.handleUnauthorized),
	)
	app.bus = bus.New(bus.WithLogger(lb))
	app.cartSub = app.bus.Subscribe(bus.TopicCartChanged)

	mainMenu := list.New(landingMenuItems(), list.NewDefaultDelegate(), 0, 0)
	mainMenu.Title = "✦ CRUMBLINE"
	mainMenu.SetShowStatusBar(false)
	mainMenu.SetFilteringEnabled(false)
	app.mainMenu = mainMenu
	return app, nil
}

func landingMenuItems() []list.Item {
	return []list.Item{
		menuItem{title: "Login", desc: "Sign in to your account"},
		menuItem{title: "Register", desc: "Create a customer account"},
		menuItem{title: "Exit", desc: "Quit crumbline"},
	}
}

// handleUnauthorized runs on the request goroutine whenever any call
// answers 401. It clears the session immediately; the buffered channel
// wakes the update loop to redraw onto the landing screen.
func (a *App) handleUnauthorized() {
	a.session.Logout()
	select {
	case a.signedOut <- struct{}{}:
	default:
	}
}

func (a *App) requestContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), a.config.RequestTimeout())
}

func (a *App) logInfo(format string, args ...any) {
	if a.logbook == nil {
		return
	}
	a.logbook.Info(format, args...)
}

func (a *App) logWarn(format string, args ...any) {
	if a.logbook == nil {
		return
	}
	a.logbook.Warn(format, args...)
}

func (a *App) setStatus(message string) {
	message = strings.TrimSpace(message)
	if message == "" {
		return
	}
	a.statusMsg = message
}

// Init is called once when the program starts.
func (a *App) Init() tea.Cmd {
	return tea.Batch(a.initSession(), a.waitForSignOut(), a.waitForCartSignal())
}

func (a *App) initSession() tea.Cmd {
	return func() tea.Msg {
		return sessionReadyMsg{state: a.session.Init()}
	}
}

func (a *App) waitForSignOut() tea.Cmd {
	return func() tea.Msg {
		<-a.signedOut
		return signedOutMsg{}
	}
}

func (a *App) waitForCartSignal() tea.Cmd {
	return func() tea.Msg {
		if _, ok := <-a.cartSub.Signals; !ok {
			return nil
		}
		return cartChangedMsg{}
	}
}

// Update is called when a message is received.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.mainMenu.SetSize(max(0, msg.Width-6), max(0, msg.Height-12))
		return a, nil

	case sessionReadyMsg:
		if msg.state == session.StateAuthenticated {
			user := a.session.User()
			a.logInfo("Session restored for %s (%s)", user.Email, user.Role)
			a.setStatus(fmt.Sprintf("Welcome back, %s", user.Name))
			return a, a.routeTo(session.HomeRoute(user.Role))
		}
		a.setStatus("Sign in to start ordering")
		return a, nil

	case signedOutMsg:
		a.logWarn("Signed out (session rejected or expired)")
		a.closeDashboards()
		a.state = stateLanding
		a.setStatus("Your session ended. Please sign in again.")
		return a, a.waitForSignOut()

	case cartChangedMsg:
		var cmds []tea.Cmd
		if a.customer != nil {
			if cmd := a.customer.handleCartSignal(); cmd != nil {
				cmds = append(cmds, cmd)
			}
		}
		cmds = append(cmds, a.waitForCartSignal())
		return a, tea.Batch(cmds...)

	case loginResultMsg:
		return a.handleLoginResult(msg)

	case registerResultMsg:
		if a.register != nil {
			a.register.finish(msg.err)
		}
		if msg.err == nil {
			a.setStatus("Account created. Sign in to continue.")
		}
		return a, nil

	case tea.KeyMsg:
		if model, cmd, handled := a.handleGlobalKey(msg); handled {
			return model, cmd
		}
	}

	return a.dispatch(msg)
}

// handleGlobalKey covers the keys that behave the same on every screen.
func (a *App) handleGlobalKey(msg tea.KeyMsg) (tea.Model, tea.Cmd, bool) {
	switch msg.String() {
	case "ctrl+c":
		return a, tea.Quit, true
	case "q":
		if a.state == stateLanding {
			return a, tea.Quit, true
		}
	case "esc":
		switch a.state {
		case stateLogin, stateRegister:
			a.state = stateLanding
			a.setStatus("Sign in to start ordering")
			return a, nil, true
		}
	case "ctrl+l":
		if a.state == stateCustomer || a.state == stateAdmin || a.state == stateModerator {
			a.session.Logout()
			a.logInfo("Signed out")
			a.closeDashboards()
			a.state = stateLanding
			a.setStatus("Signed out. See you soon.")
			return a, nil, true
		}
	case "enter":
		if a.state == stateLanding {
			return a.handleLandingSelection()
		}
	}
	return a, nil, false
}

func (a *App) handleLandingSelection() (tea.Model, tea.Cmd, bool) {
	item, ok := a.mainMenu.SelectedItem().(menuItem)
	if !ok {
		return a, nil, false
	}
	switch item.title {
	case "Login":
		a.login = newLoginView(a)
		a.state = stateLogin
		a.setStatus("Enter your credentials")
		return a, a.login.focusCmd(), true
	case "Register":
		a.register = newRegisterView(a)
		a.state = stateRegister
		a.setStatus("Create your account")
		return a, a.register.focusCmd(), true
	case "Exit":
		return a, tea.Quit, true
	}
	return a, nil, false
}

func (a *App) handleLoginResult(msg loginResultMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		if a.login != nil {
			a.login.fail(msg.err)
		}
		a.logWarn("Login failed: %v", msg.err)
		return a, nil
	}
	a.logInfo("Signed in as %s (%s)", msg.user.Email, msg.user.Role)
	a.setStatus(fmt.Sprintf("Welcome, %s", msg.user.Name))
	a.login = nil
	return a, a.routeTo(session.HomeRoute(msg.user.Role))
}

// routeTo maps a guard route onto a screen, constructing the dashboard
// model on first entry. Section managers inside a dashboard survive
// route changes; only sign-out tears them down.
func (a *App) routeTo(route session.Route) tea.Cmd {
	switch route {
	case session.RouteAdmin:
		if decision := a.session.Guard(session.RoleAdmin); !decision.Allowed {
			return a.routeDenied(decision)
		}
		if a.admin == nil {
			a.admin = newAdminView(a)
		}
		a.state = stateAdmin
		return a.admin.ensureLoaded()
	case session.RouteCustomer:
		if decision := a.session.Guard(session.RoleCustomer); !decision.Allowed {
			return a.routeDenied(decision)
		}
		if a.customer == nil {
			a.customer = newCustomerView(a)
		}
		a.state = stateCustomer
		return a.customer.ensureLoaded()
	case session.RouteModerator:
		if decision := a.session.Guard(session.RoleModerator); !decision.Allowed {
			return a.routeDenied(decision)
		}
		a.state = stateModerator
		a.setStatus("Moderator tools are not available yet")
		return nil
	}
	a.state = stateLanding
	return nil
}

func (a *App) routeDenied(decision session.Decision) tea.Cmd {
	if decision.Wait {
		a.setStatus("Restoring session...")
		return nil
	}
	if decision.RedirectTo != "" && decision.RedirectTo != session.RouteLanding {
		return a.routeTo(decision.RedirectTo)
	}
	a.state = stateLanding
	return nil
}

func (a *App) closeDashboards() {
	if a.customer != nil {
		a.customer.close()
		a.customer = nil
	}
	if a.admin != nil {
		a.admin.close()
		a.admin = nil
	}
	a.login = nil
	a.register = nil
}

// dispatch forwards messages to the active screen. Async results are
// offered to both dashboards; generation counters discard anything that
// no longer applies.
func (a *App) dispatch(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	switch a.state {
	case stateLanding:
		if _, isKey := msg.(tea.KeyMsg); isKey {
			var menuCmd tea.Cmd
			a.mainMenu, menuCmd = a.mainMenu.Update(msg)
			if menuCmd != nil {
				cmds = append(cmds, menuCmd)
			}
			return a, tea.Batch(cmds...)
		}
	case stateLogin:
		if a.login != nil {
			if _, isKey := msg.(tea.KeyMsg); isKey {
				return a, a.login.Update(msg)
			}
		}
	case stateRegister:
		if a.register != nil {
			if _, isKey := msg.(tea.KeyMsg); isKey {
				return a, a.register.Update(msg)
			}
		}
	}

	if _, isKey := msg.(tea.KeyMsg); isKey {
		switch a.state {
		case stateCustomer:
			if a.customer != nil {
				return a, a.customer.Update(msg)
			}
		case stateAdmin:
			if a.admin != nil {
				return a, a.admin.Update(msg)
			}
		}
		return a, nil
	}

	if a.customer != nil {
		if cmd := a.customer.Update(msg); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	if a.admin != nil {
		if cmd := a.admin.Update(msg); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	if a.login != nil && a.state == stateLogin {
		if cmd := a.login.Update(msg); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	if a.register != nil && a.state == stateRegister {
		if cmd := a.register.Update(msg); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	return a, tea.Batch(cmds...)
}

// View renders the current state to a string.
func (a *App) View() string {
	width := a.width
	if width <= 0 {
		width = 100
	}

	var content string
	switch a.state {
	case stateLanding:
		content = a.renderLanding()
	case stateLogin:
		if a.login != nil {
			content = a.login.View()
		}
	case stateRegister:
		if a.register != nil {
			content = a.register.View()
		}
	case stateCustomer:
		if a.customer != nil {
			content = a.customer.View(width - 6)
		}
	case stateAdmin:
		if a.admin != nil {
			content = a.admin.View(width - 6)
		}
	case stateModerator:
		content = a.renderModeratorNotice()
	}

	header := a.renderHeader()
	box := a.theme.Box.Width(max(40, width-2)).Render(content)
	sections := []string{header, box}
	if logPanel := a.renderLogPanel(); logPanel != "" {
		sections = append(sections, logPanel)
	}
	footer := a.theme.Dim.MarginTop(1).Render(a.statusMsg)
	sections = append(sections, footer)
	return strings.Join(sections, "\n")
}

func (a *App) renderHeader() string {
	title := a.theme.Header.Render("✦ CRUMBLINE")
	tagline := a.theme.Dim.Render("fresh-baked cookies, one terminal away")
	greeting := ""
	if user := a.session.User(); user.Email != "" {
		greeting = a.theme.Accent.Render(fmt.Sprintf("  %s · %s", user.Name, user.Role))
	}
	return lipgloss.JoinHorizontal(lipgloss.Bottom, title, "  ", tagline, greeting)
}

func (a *App) renderLanding() string {
	banner := strings.Join([]string{
		a.theme.Accent.Render("Welcome to the Crumbline storefront."),
		a.theme.Dim.Render("Sign in to browse the catalog and place orders."),
		"",
	}, "\n")
	if a.session.State() == session.StateLoading || a.session.State() == session.StateUnloaded {
		return banner + a.theme.Dim.Render("Restoring session...")
	}
	return banner + a.mainMenu.View()
}

func (a *App) renderModeratorNotice() string {
	return strings.Join([]string{
		a.theme.Accent.Render("Moderator account detected."),
		"",
		"The moderation tools have not shipped in the terminal client.",
		a.theme.Dim.Render("Press ctrl+l to sign out."),
	}, "\n")
}

func (a *App) renderLogPanel() string {
	if a.logbook == nil {
		return ""
	}
	lines := a.logbook.Tail(6)
	if len(lines) == 0 {
		return ""
	}
	fileName := filepath.Base(a.logbook.Path())
	if fileName == "." || fileName == "" {
		fileName = "log"
	}
	head := a.theme.Accent.Render(fmt.Sprintf("LOG · %s", fileName))
	body := a.theme.Dim.Render(strings.Join(lines, "\n"))
	return a.theme.Box.Render(fmt.Sprintf("%s\n%s", head, body))
}

func humanizeDuration(d time.Duration) string {
	if d < time.Minute {
		return fmt.Sprintf("%ds", int(d.Seconds()))
	}
	if d < time.Hour {
		return fmt.Sprintf("%dm", int(d.Minutes()))
	}
	return fmt.Sprintf("%dh", int(d.Hours()))
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
