// internal/tui/forms.go
//
// The login and register forms. Login carries the account-type
// selector: authenticating with an account whose role does not match
// the selector is rejected with an explicit message and nothing kept.

package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/crumbline/crumbline/internal/api"
	"github.com/crumbline/crumbline/internal/session"
)

var loginRoles = []session.Role{session.RoleCustomer, session.RoleAdmin}

type loginView struct {
	app      *App
	email    textinput.Model
	password textinput.Model
	roleIdx  int
	focus    int
	busy     bool
	errMsg   string
}

func newLoginView(app *App) *loginView {
	email := textinput.New()
	email.Placeholder = "email"
	email.CharLimit = 120
	password := textinput.New()
	password.Placeholder = "password"
	password.EchoMode = textinput.EchoPassword
	password.EchoCharacter = '•'
	password.CharLimit = 120
	return &loginView{app: app, email: email, password: password}
}

func (v *loginView) focusCmd() tea.Cmd {
	v.focus = 0
	return v.email.Focus()
}

func (v *loginView) selectedRole() session.Role {
	return loginRoles[v.roleIdx%len(loginRoles)]
}

// fail keeps the typed credentials so a mistyped password or a wrong
// selector does not force re-entry of everything.
func (v *loginView) fail(err error) {
	v.busy = false
	v.errMsg = err.Error()
}

func (v *loginView) Update(msg tea.Msg) tea.Cmd {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}
	if v.busy {
		return nil
	}
	switch key.String() {
	case "tab", "down":
		return v.setFocus(v.focus + 1)
	case "shift+tab", "up":
		return v.setFocus(v.focus - 1)
	case "left", "right":
		if v.focus == 2 {
			v.roleIdx = (v.roleIdx + 1) % len(loginRoles)
			return nil
		}
	case "enter":
		if v.focus < 2 {
			return v.setFocus(v.focus + 1)
		}
		return v.submit()
	}

	var cmd tea.Cmd
	switch v.focus {
	case 0:
		v.email, cmd = v.email.Update(msg)
	case 1:
		v.password, cmd = v.password.Update(msg)
	}
	return cmd
}

func (v *loginView) setFocus(focus int) tea.Cmd {
	if focus < 0 {
		focus = 2
	}
	if focus > 2 {
		focus = 0
	}
	v.focus = focus
	v.email.Blur()
	v.password.Blur()
	switch focus {
	case 0:
		return v.email.Focus()
	case 1:
		return v.password.Focus()
	}
	return nil
}

func (v *loginView) submit() tea.Cmd {
	email := strings.TrimSpace(v.email.Value())
	password := v.password.Value()
	if email == "" || password == "" {
		v.errMsg = "email and password are required"
		return nil
	}
	v.busy = true
	v.errMsg = ""
	selected := v.selectedRole()
	app := v.app
	return func() tea.Msg {
		ctx, cancel := app.requestContext()
		defer cancel()
		user, token, err := app.client.Auth.Login(ctx, email, password)
		if err != nil {
			return loginResultMsg{err: err}
		}
		logged, err := app.session.Login(user.Name, user.Email, user.Role, token, selected)
		if err != nil {
			return loginResultMsg{err: err}
		}
		return loginResultMsg{user: logged}
	}
}

func (v *loginView) View() string {
	theme := v.app.theme
	title := theme.Accent.Render("Sign in")
	role := v.selectedRole().String()
	roleLine := fmt.Sprintf("  account type: < %s >", role)
	if v.focus == 2 {
		roleLine = theme.Selected.Render("> account type: < " + role + " >")
	}
	lines := []string{
		title,
		"",
		renderField(theme, "email", v.email.View(), v.focus == 0),
		renderField(theme, "password", v.password.View(), v.focus == 1),
		roleLine,
		"",
	}
	if v.busy {
		lines = append(lines, theme.Dim.Render("Signing in..."))
	}
	if v.errMsg != "" {
		lines = append(lines, theme.Danger.Render("✗ "+v.errMsg))
	}
	lines = append(lines, "", theme.Dim.Render("enter=submit  tab=next field  left/right=account type  esc=back"))
	return strings.Join(lines, "\n")
}

type registerView struct {
	app     *App
	inputs  []textinput.Model
	focus   int
	busy    bool
	done    bool
	errMsg  string
	doneMsg string
}

var registerFields = []string{"name", "email", "password", "phone (optional)", "address (optional)"}

func newRegisterView(app *App) *registerView {
	inputs := make([]textinput.Model, len(registerFields))
	for i, field := range registerFields {
		in := textinput.New()
		in.Placeholder = field
		in.CharLimit = 160
		if field == "password" {
			in.EchoMode = textinput.EchoPassword
			in.EchoCharacter = '•'
		}
		inputs[i] = in
	}
	return &registerView{app: app, inputs: inputs}
}

func (v *registerView) focusCmd() tea.Cmd {
	v.focus = 0
	return v.inputs[0].Focus()
}

func (v *registerView) finish(err error) {
	v.busy = false
	if err != nil {
		v.errMsg = err.Error()
		return
	}
	v.done = true
	v.errMsg = ""
	v.doneMsg = "Account created. Press esc and sign in."
}

func (v *registerView) Update(msg tea.Msg) tea.Cmd {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}
	if v.busy || v.done {
		return nil
	}
	switch key.String() {
	case "tab", "down":
		return v.setFocus(v.focus + 1)
	case "shift+tab", "up":
		return v.setFocus(v.focus - 1)
	case "enter":
		if v.focus < len(v.inputs)-1 {
			return v.setFocus(v.focus + 1)
		}
		return v.submit()
	}
	var cmd tea.Cmd
	v.inputs[v.focus], cmd = v.inputs[v.focus].Update(msg)
	return cmd
}

func (v *registerView) setFocus(focus int) tea.Cmd {
	if focus < 0 {
		focus = len(v.inputs) - 1
	}
	if focus >= len(v.inputs) {
		focus = 0
	}
	v.focus = focus
	for i := range v.inputs {
		v.inputs[i].Blur()
	}
	return v.inputs[focus].Focus()
}

func (v *registerView) submit() tea.Cmd {
	req := api.RegisterRequest{
		Name:     strings.TrimSpace(v.inputs[0].Value()),
		Email:    strings.TrimSpace(v.inputs[1].Value()),
		Password: v.inputs[2].Value(),
		Phone:    strings.TrimSpace(v.inputs[3].Value()),
		Address:  strings.TrimSpace(v.inputs[4].Value()),
	}
	if req.Name == "" || req.Email == "" || req.Password == "" {
		v.errMsg = "name, email and password are required"
		return nil
	}
	v.busy = true
	v.errMsg = ""
	app := v.app
	return func() tea.Msg {
		ctx, cancel := app.requestContext()
		defer cancel()
		return registerResultMsg{err: app.client.Auth.Register(ctx, req)}
	}
}

func (v *registerView) View() string {
	theme := v.app.theme
	lines := []string{theme.Accent.Render("Create account"), ""}
	for i, in := range v.inputs {
		lines = append(lines, renderField(theme, registerFields[i], in.View(), v.focus == i))
	}
	lines = append(lines, "")
	if v.busy {
		lines = append(lines, theme.Dim.Render("Creating account..."))
	}
	if v.doneMsg != "" {
		lines = append(lines, theme.Success.Render("✓ "+v.doneMsg))
	}
	if v.errMsg != "" {
		lines = append(lines, theme.Danger.Render("✗ "+v.errMsg))
	}
	lines = append(lines, "", theme.Dim.Render("enter=next/submit  tab=next field  esc=back"))
	return strings.Join(lines, "\n")
}

func renderField(theme Theme, label, input string, focused bool) string {
	marker := "  "
	if focused {
		marker = theme.Selected.Render("> ")
	}
	return fmt.Sprintf("%s%-10s %s", marker, label, input)
}
