// internal/tui/admin.go
//
// The admin dashboard: storefront analytics, catalog management,
// order fulfilment and account administration. The three collections
// sit behind independent list-view managers that survive section
// switches; Overview derives its numbers from whatever they hold.

package tui

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/crumbline/crumbline/internal/catalog"
	"github.com/crumbline/crumbline/internal/export"
	"github.com/crumbline/crumbline/internal/listview"
)

type adminSection int

const (
	adminOverview adminSection = iota
	adminCookies
	adminOrders
	adminUsers
)

var adminSections = []string{"Overview", "Cookies", "Orders", "Users"}

var orderFilterValues = []string{
	listview.FilterAll,
	catalog.StatusPending.String(),
	catalog.StatusConfirmed.String(),
	catalog.StatusProcessed.String(),
	catalog.StatusDelivered.String(),
	catalog.StatusCancelled.String(),
}

var userFilterValues = []string{listview.FilterAll, "admin", "customer", "moderator"}

// roleCycle is the role-change order for the users section.
var roleCycle = []string{"CUSTOMER", "MODERATOR", "ADMIN"}

type adminCookiesLoadedMsg struct {
	gen   uint64
	items []catalog.Cookie
	err   error
}

type cookieSavedMsg struct {
	gen     uint64
	cookie  catalog.Cookie
	created bool
	err     error
}

type cookieRemovedMsg struct {
	gen uint64
	id  int64
	err error
}

type adminOrdersLoadedMsg struct {
	gen   uint64
	items []catalog.Order
	err   error
}

type orderStatusUpdatedMsg struct {
	gen   uint64
	order catalog.Order
	err   error
}

type adminUsersLoadedMsg struct {
	gen   uint64
	items []catalog.Customer
	err   error
}

type userSavedMsg struct {
	gen      uint64
	customer catalog.Customer
	err      error
}

type userRemovedMsg struct {
	gen uint64
	id  int64
	err error
}

type exportDoneMsg struct {
	path string
	err  error
}

type adminView struct {
	app       *App
	section   adminSection
	collapsed bool

	cookies    *listview.View[catalog.Cookie]
	cookieSel  int
	form       *cookieForm
	orders     *listview.View[catalog.Order]
	orderSel   int
	orderFlt   int
	users      *listview.View[catalog.Customer]
	userSel    int
	userFlt    int
	search     textinput.Model
	searching  bool
	cookieSort int
	exporting  bool
}

var cookieFormFields = []string{"name", "flavor", "price", "quantity", "image url"}

type cookieForm struct {
	editingID int64
	inputs    []textinput.Model
	focus     int
	saving    bool
	errMsg    string
}

func newCookieForm(seed catalog.Cookie) *cookieForm {
	inputs := make([]textinput.Model, len(cookieFormFields))
	for i, field := range cookieFormFields {
		in := textinput.New()
		in.Placeholder = field
		in.CharLimit = 160
		inputs[i] = in
	}
	if seed.ID != 0 {
		inputs[0].SetValue(seed.Name)
		inputs[1].SetValue(seed.Flavor)
		inputs[2].SetValue(strconv.FormatFloat(seed.Price, 'f', 2, 64))
		inputs[3].SetValue(strconv.Itoa(seed.QuantityAvailable))
		inputs[4].SetValue(seed.ImageURL)
	}
	return &cookieForm{editingID: seed.ID, inputs: inputs}
}

// parse refuses incomplete input before anything reaches the server.
func (f *cookieForm) parse() (catalog.Cookie, error) {
	price, err := strconv.ParseFloat(strings.TrimSpace(f.inputs[2].Value()), 64)
	if err != nil {
		return catalog.Cookie{}, fmt.Errorf("price must be a number")
	}
	qty, err := strconv.Atoi(strings.TrimSpace(f.inputs[3].Value()))
	if err != nil {
		return catalog.Cookie{}, fmt.Errorf("quantity must be a whole number")
	}
	cookie := catalog.Cookie{
		ID:                f.editingID,
		Name:              strings.TrimSpace(f.inputs[0].Value()),
		Flavor:            strings.TrimSpace(f.inputs[1].Value()),
		Price:             price,
		QuantityAvailable: qty,
		ImageURL:          strings.TrimSpace(f.inputs[4].Value()),
	}
	if err := cookie.Validate(); err != nil {
		return catalog.Cookie{}, err
	}
	return cookie, nil
}

func newAdminView(app *App) *adminView {
	search := textinput.New()
	search.Placeholder = "search"
	search.CharLimit = 80
	pages := app.config.File.Pages
	return &adminView{
		app:     app,
		cookies: listview.New[catalog.Cookie](cookieSource{cookies: app.client.Cookies}, cookieViewConfig(pages.Catalog)),
		orders:  listview.New[catalog.Order](orderSource{orders: app.client.Orders}, orderViewConfig(pages.Orders)),
		users:   listview.New[catalog.Customer](customerSource{customers: app.client.Customers}, customerViewConfig(pages.Users)),
		search:  search,
	}
}

func (v *adminView) close() {
	v.cookies.Close()
	v.orders.Close()
	v.users.Close()
}

// ensureLoaded fetches what the active section needs, once. Overview
// pulls all three collections so its numbers mean something.
func (v *adminView) ensureLoaded() tea.Cmd {
	var cmds []tea.Cmd
	needCookies := !v.cookies.Loaded() && !v.cookies.Loading()
	needOrders := !v.orders.Loaded() && !v.orders.Loading()
	needUsers := !v.users.Loaded() && !v.users.Loading()
	switch v.section {
	case adminOverview:
		if needCookies {
			cmds = append(cmds, v.loadCookies())
		}
		if needOrders {
			cmds = append(cmds, v.loadOrders())
		}
		if needUsers {
			cmds = append(cmds, v.loadUsers())
		}
	case adminCookies:
		if needCookies {
			cmds = append(cmds, v.loadCookies())
		}
	case adminOrders:
		if needOrders {
			cmds = append(cmds, v.loadOrders())
		}
	case adminUsers:
		if needUsers {
			cmds = append(cmds, v.loadUsers())
		}
	}
	if len(cmds) == 0 {
		return nil
	}
	return tea.Batch(cmds...)
}

func (v *adminView) loadCookies() tea.Cmd {
	gen := v.cookies.BeginLoad()
	src := v.cookies.Source()
	app := v.app
	return func() tea.Msg {
		ctx, cancel := app.requestContext()
		defer cancel()
		items, err := src.List(ctx)
		return adminCookiesLoadedMsg{gen: gen, items: items, err: err}
	}
}

func (v *adminView) loadOrders() tea.Cmd {
	gen := v.orders.BeginLoad()
	src := v.orders.Source()
	app := v.app
	return func() tea.Msg {
		ctx, cancel := app.requestContext()
		defer cancel()
		items, err := src.List(ctx)
		return adminOrdersLoadedMsg{gen: gen, items: items, err: err}
	}
}

func (v *adminView) loadUsers() tea.Cmd {
	gen := v.users.BeginLoad()
	src := v.users.Source()
	app := v.app
	return func() tea.Msg {
		ctx, cancel := app.requestContext()
		defer cancel()
		items, err := src.List(ctx)
		return adminUsersLoadedMsg{gen: gen, items: items, err: err}
	}
}

func (v *adminView) saveCookie() tea.Cmd {
	if v.form == nil || v.form.saving {
		return nil
	}
	cookie, err := v.form.parse()
	if err != nil {
		v.form.errMsg = err.Error()
		return nil
	}
	v.form.saving = true
	v.form.errMsg = ""
	gen := v.cookies.Generation()
	src := v.cookies.Source()
	app := v.app
	created := cookie.ID == 0
	return func() tea.Msg {
		ctx, cancel := app.requestContext()
		defer cancel()
		var saved catalog.Cookie
		var err error
		if created {
			saved, err = src.Create(ctx, cookie)
		} else {
			saved, err = src.Update(ctx, cookie.ID, cookie)
		}
		return cookieSavedMsg{gen: gen, cookie: saved, created: created, err: err}
	}
}

func (v *adminView) removeCookie() tea.Cmd {
	visible := v.cookies.VisibleItems()
	if v.cookieSel >= len(visible) {
		return nil
	}
	target := visible[v.cookieSel]
	gen := v.cookies.Generation()
	src := v.cookies.Source()
	app := v.app
	return func() tea.Msg {
		ctx, cancel := app.requestContext()
		defer cancel()
		return cookieRemovedMsg{gen: gen, id: target.ID, err: src.Remove(ctx, target.ID)}
	}
}

func (v *adminView) exportCookies() tea.Cmd {
	if v.exporting {
		return nil
	}
	v.exporting = true
	cookies := v.cookies.Items()
	app := v.app
	return func() tea.Msg {
		path, err := export.WriteCookies(app.config.ExportsDir(), cookies)
		return exportDoneMsg{path: path, err: err}
	}
}

// transitionOrder advances or cancels the selected order. The from
// status is resolved here, inside the update loop, so the legality
// check runs against the state the admin is looking at.
func (v *adminView) transitionOrder(cancelOrder bool) tea.Cmd {
	visible := v.orders.VisibleItems()
	if v.orderSel >= len(visible) {
		return nil
	}
	order := visible[v.orderSel]
	target := order.Status.Next()
	if cancelOrder {
		target = catalog.StatusCancelled
	}
	if !order.Status.CanTransition(target) {
		v.app.setStatus(fmt.Sprintf("Order #%d is %s and cannot become %s", order.ID, order.Status, target))
		return nil
	}
	gen := v.orders.Generation()
	app := v.app
	return func() tea.Msg {
		ctx, cancel := app.requestContext()
		defer cancel()
		updated, err := app.client.Orders.UpdateStatus(ctx, order.ID, order.Status, target)
		return orderStatusUpdatedMsg{gen: gen, order: updated, err: err}
	}
}

func (v *adminView) cycleUserRole() tea.Cmd {
	visible := v.users.VisibleItems()
	if v.userSel >= len(visible) {
		return nil
	}
	user := visible[v.userSel]
	next := roleCycle[0]
	for i, role := range roleCycle {
		if strings.EqualFold(user.Role, role) {
			next = roleCycle[(i+1)%len(roleCycle)]
			break
		}
	}
	updated := user
	updated.Role = next
	gen := v.users.Generation()
	src := v.users.Source()
	app := v.app
	return func() tea.Msg {
		ctx, cancel := app.requestContext()
		defer cancel()
		saved, err := src.Update(ctx, updated.ID, updated)
		return userSavedMsg{gen: gen, customer: saved, err: err}
	}
}

func (v *adminView) removeUser() tea.Cmd {
	visible := v.users.VisibleItems()
	if v.userSel >= len(visible) {
		return nil
	}
	target := visible[v.userSel]
	if strings.EqualFold(target.Email, v.app.session.User().Email) {
		v.app.setStatus("You cannot delete your own account")
		return nil
	}
	gen := v.users.Generation()
	src := v.users.Source()
	app := v.app
	return func() tea.Msg {
		ctx, cancel := app.requestContext()
		defer cancel()
		return userRemovedMsg{gen: gen, id: target.ID, err: src.Remove(ctx, target.ID)}
	}
}

func (v *adminView) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case adminCookiesLoadedMsg:
		v.cookies.ApplyLoad(msg.gen, msg.items, msg.err)
		if msg.err != nil {
			v.app.setStatus(fmt.Sprintf("Cookies load failed: %v", msg.err))
		}
		v.clampSelections()
		return nil
	case cookieSavedMsg:
		if v.form != nil {
			v.form.saving = false
		}
		if msg.err != nil {
			if v.form != nil {
				v.form.errMsg = msg.err.Error()
			} else {
				v.app.setStatus(fmt.Sprintf("Saving cookie failed: %v", msg.err))
			}
			return nil
		}
		if msg.created {
			v.cookies.ApplyCreate(msg.gen, msg.cookie, nil)
			v.app.setStatus(fmt.Sprintf("Added %s", msg.cookie.Name))
		} else {
			v.cookies.ApplyUpdate(msg.gen, msg.cookie, nil)
			v.app.setStatus(fmt.Sprintf("Updated %s", msg.cookie.Name))
		}
		v.form = nil
		v.clampSelections()
		return nil
	case cookieRemovedMsg:
		v.cookies.ApplyRemove(msg.gen, msg.id, msg.err)
		if msg.err != nil {
			v.app.setStatus(fmt.Sprintf("Deleting cookie failed: %v", msg.err))
		} else {
			v.app.setStatus("Cookie deleted")
		}
		v.clampSelections()
		return nil
	case adminOrdersLoadedMsg:
		v.orders.ApplyLoad(msg.gen, msg.items, msg.err)
		if msg.err != nil {
			v.app.setStatus(fmt.Sprintf("Orders load failed: %v", msg.err))
		}
		v.clampSelections()
		return nil
	case orderStatusUpdatedMsg:
		v.orders.ApplyUpdate(msg.gen, msg.order, msg.err)
		if msg.err != nil {
			v.app.setStatus(fmt.Sprintf("Status change failed: %v", msg.err))
		} else {
			v.app.logInfo("Order #%d → %s", msg.order.ID, msg.order.Status)
			v.app.setStatus(fmt.Sprintf("Order #%d is now %s", msg.order.ID, msg.order.Status))
		}
		return nil
	case adminUsersLoadedMsg:
		v.users.ApplyLoad(msg.gen, msg.items, msg.err)
		if msg.err != nil {
			v.app.setStatus(fmt.Sprintf("Users load failed: %v", msg.err))
		}
		v.clampSelections()
		return nil
	case userSavedMsg:
		v.users.ApplyUpdate(msg.gen, msg.customer, msg.err)
		if msg.err != nil {
			v.app.setStatus(fmt.Sprintf("Role change failed: %v", msg.err))
		} else {
			v.app.setStatus(fmt.Sprintf("%s is now %s", msg.customer.Name, msg.customer.Role))
		}
		return nil
	case userRemovedMsg:
		v.users.ApplyRemove(msg.gen, msg.id, msg.err)
		if msg.err != nil {
			v.app.setStatus(fmt.Sprintf("Deleting account failed: %v", msg.err))
		} else {
			v.app.setStatus("Account deleted")
		}
		v.clampSelections()
		return nil
	case exportDoneMsg:
		v.exporting = false
		if msg.err != nil {
			v.app.setStatus(fmt.Sprintf("Export failed: %v", msg.err))
			return nil
		}
		v.app.logInfo("Inventory exported to %s", msg.path)
		v.app.setStatus(fmt.Sprintf("Inventory exported to %s", msg.path))
		return nil
	case tea.KeyMsg:
		return v.handleKey(msg)
	}
	return nil
}

func (v *adminView) clampSelections() {
	if v.cookieSel >= len(v.cookies.VisibleItems()) {
		v.cookieSel = max(0, len(v.cookies.VisibleItems())-1)
	}
	if v.orderSel >= len(v.orders.VisibleItems()) {
		v.orderSel = max(0, len(v.orders.VisibleItems())-1)
	}
	if v.userSel >= len(v.users.VisibleItems()) {
		v.userSel = max(0, len(v.users.VisibleItems())-1)
	}
}

func (v *adminView) handleKey(msg tea.KeyMsg) tea.Cmd {
	if v.form != nil {
		return v.handleFormKey(msg)
	}
	if v.searching {
		return v.handleSearchKey(msg)
	}

	switch msg.String() {
	case "tab":
		return v.switchSection(int(v.section) + 1)
	case "shift+tab":
		return v.switchSection(int(v.section) - 1)
	case "1", "2", "3", "4":
		return v.switchSection(int(msg.String()[0] - '1'))
	case "b":
		v.collapsed = !v.collapsed
		return nil
	case "r":
		return v.refreshSection()
	}

	switch v.section {
	case adminCookies:
		return v.handleCookiesKey(msg)
	case adminOrders:
		return v.handleOrdersKey(msg)
	case adminUsers:
		return v.handleUsersKey(msg)
	}
	return nil
}

func (v *adminView) switchSection(idx int) tea.Cmd {
	count := len(adminSections)
	idx = ((idx % count) + count) % count
	v.section = adminSection(idx)
	v.search.SetValue(v.activeSearchTerm())
	return v.ensureLoaded()
}

func (v *adminView) refreshSection() tea.Cmd {
	switch v.section {
	case adminOverview:
		return tea.Batch(v.loadCookies(), v.loadOrders(), v.loadUsers())
	case adminCookies:
		return v.loadCookies()
	case adminOrders:
		return v.loadOrders()
	case adminUsers:
		return v.loadUsers()
	}
	return nil
}

func (v *adminView) activeSearchTerm() string {
	switch v.section {
	case adminCookies:
		return v.cookies.SearchTerm()
	case adminOrders:
		return v.orders.SearchTerm()
	case adminUsers:
		return v.users.SearchTerm()
	}
	return ""
}

func (v *adminView) applySearchTerm(term string) {
	switch v.section {
	case adminCookies:
		v.cookies.SetSearchTerm(term)
	case adminOrders:
		v.orders.SetSearchTerm(term)
	case adminUsers:
		v.users.SetSearchTerm(term)
	}
	v.clampSelections()
}

func (v *adminView) handleSearchKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "enter", "esc":
		v.searching = false
		v.search.Blur()
		return nil
	}
	var cmd tea.Cmd
	v.search, cmd = v.search.Update(msg)
	v.applySearchTerm(v.search.Value())
	return cmd
}

func (v *adminView) handleFormKey(msg tea.KeyMsg) tea.Cmd {
	form := v.form
	if form.saving {
		return nil
	}
	switch msg.String() {
	case "esc":
		v.form = nil
		return nil
	case "tab", "down":
		return v.setFormFocus(form.focus + 1)
	case "shift+tab", "up":
		return v.setFormFocus(form.focus - 1)
	case "enter":
		if form.focus < len(form.inputs)-1 {
			return v.setFormFocus(form.focus + 1)
		}
		return v.saveCookie()
	}
	var cmd tea.Cmd
	form.inputs[form.focus], cmd = form.inputs[form.focus].Update(msg)
	return cmd
}

func (v *adminView) setFormFocus(focus int) tea.Cmd {
	form := v.form
	count := len(form.inputs)
	focus = ((focus % count) + count) % count
	form.focus = focus
	for i := range form.inputs {
		form.inputs[i].Blur()
	}
	return form.inputs[focus].Focus()
}

func (v *adminView) handleCookiesKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "/":
		v.searching = true
		v.search.SetValue(v.cookies.SearchTerm())
		return v.search.Focus()
	case "s":
		v.cookieSort = (v.cookieSort + 1) % len(cookieSortKeys)
		v.cookies.SetSortKey(cookieSortKeys[v.cookieSort])
		v.clampSelections()
	case "o":
		if v.cookies.SortOrder() == listview.Ascending {
			v.cookies.SetSortOrder(listview.Descending)
		} else {
			v.cookies.SetSortOrder(listview.Ascending)
		}
		v.clampSelections()
	case "right", "n":
		v.cookies.NextPage()
		v.clampSelections()
	case "left", "p":
		v.cookies.PrevPage()
		v.clampSelections()
	case "up", "k":
		if v.cookieSel > 0 {
			v.cookieSel--
		}
	case "down", "j":
		if v.cookieSel < len(v.cookies.VisibleItems())-1 {
			v.cookieSel++
		}
	case "a":
		v.form = newCookieForm(catalog.Cookie{})
		return v.setFormFocus(0)
	case "e", "enter":
		visible := v.cookies.VisibleItems()
		if v.cookieSel < len(visible) {
			v.form = newCookieForm(visible[v.cookieSel])
			return v.setFormFocus(0)
		}
	case "d", "delete":
		return v.removeCookie()
	case "x":
		return v.exportCookies()
	}
	return nil
}

func (v *adminView) handleOrdersKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "/":
		v.searching = true
		v.search.SetValue(v.orders.SearchTerm())
		return v.search.Focus()
	case "f":
		v.orderFlt = (v.orderFlt + 1) % len(orderFilterValues)
		v.orders.SetFieldFilter(orderFilterValues[v.orderFlt])
		v.clampSelections()
	case "right", "n":
		v.orders.NextPage()
		v.clampSelections()
	case "left", "p":
		v.orders.PrevPage()
		v.clampSelections()
	case "up", "k":
		if v.orderSel > 0 {
			v.orderSel--
		}
	case "down", "j":
		if v.orderSel < len(v.orders.VisibleItems())-1 {
			v.orderSel++
		}
	case "a", "enter":
		return v.transitionOrder(false)
	case "x":
		return v.transitionOrder(true)
	}
	return nil
}

func (v *adminView) handleUsersKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "/":
		v.searching = true
		v.search.SetValue(v.users.SearchTerm())
		return v.search.Focus()
	case "f":
		v.userFlt = (v.userFlt + 1) % len(userFilterValues)
		v.users.SetFieldFilter(userFilterValues[v.userFlt])
		v.clampSelections()
	case "right", "n":
		v.users.NextPage()
		v.clampSelections()
	case "left", "p":
		v.users.PrevPage()
		v.clampSelections()
	case "up", "k":
		if v.userSel > 0 {
			v.userSel--
		}
	case "down", "j":
		if v.userSel < len(v.users.VisibleItems())-1 {
			v.userSel++
		}
	case "m", "enter":
		return v.cycleUserRole()
	case "d", "delete":
		return v.removeUser()
	}
	return nil
}

func (v *adminView) View(width int) string {
	sidebar := renderSidebar(v.app.theme, adminSections, int(v.section), v.collapsed)
	contentWidth := width - lipgloss.Width(sidebar) - 2
	var content string
	switch v.section {
	case adminOverview:
		content = v.renderOverview()
	case adminCookies:
		content = v.renderCookies()
	case adminOrders:
		content = v.renderOrders()
	case adminUsers:
		content = v.renderUsers()
	}
	body := lipgloss.NewStyle().Width(max(30, contentWidth)).Render(content)
	return lipgloss.JoinHorizontal(lipgloss.Top, sidebar, " ", body)
}

func (v *adminView) renderOverview() string {
	theme := v.app.theme
	orders := v.orders.Items()
	var revenue float64
	var pending int
	for _, o := range orders {
		if o.Status != catalog.StatusCancelled {
			revenue += o.Total
		}
		if o.Status == catalog.StatusPending {
			pending++
		}
	}
	var lowStock []string
	for _, c := range v.cookies.Items() {
		if c.QuantityAvailable < 5 {
			lowStock = append(lowStock, fmt.Sprintf("%s (%d left)", c.Name, c.QuantityAvailable))
		}
	}

	lines := []string{
		theme.Accent.Render("Storefront overview"),
		"",
		fmt.Sprintf("  revenue:   %s", theme.Success.Render(fmt.Sprintf("$%.2f", revenue))),
		fmt.Sprintf("  orders:    %d (%d pending)", len(orders), pending),
		fmt.Sprintf("  cookies:   %d", len(v.cookies.Items())),
		fmt.Sprintf("  accounts:  %d", len(v.users.Items())),
	}
	if len(lowStock) > 0 {
		lines = append(lines, "", theme.Danger.Render("Low stock: "+strings.Join(lowStock, ", ")))
	}

	recent := make([]catalog.Order, len(orders))
	copy(recent, orders)
	sort.SliceStable(recent, func(i, j int) bool {
		return recent[i].CreatedAt.After(recent[j].CreatedAt)
	})
	if len(recent) > 5 {
		recent = recent[:5]
	}
	if len(recent) > 0 {
		lines = append(lines, "", theme.Accent.Render("Recent orders"))
		for _, o := range recent {
			age := "just now"
			if !o.CreatedAt.IsZero() {
				age = humanizeDuration(time.Since(o.CreatedAt)) + " ago"
			}
			lines = append(lines, fmt.Sprintf("  #%-5d %-10s $%8.2f · %s · %s",
				o.ID, o.Status, o.Total, o.CustomerName, age))
		}
	}
	lines = append(lines, "", theme.Dim.Render("r=refresh all"))
	return strings.Join(lines, "\n")
}

func (v *adminView) renderCookies() string {
	theme := v.app.theme
	if v.form != nil {
		return v.renderCookieForm()
	}
	lines := []string{theme.Accent.Render("Cookie inventory"), ""}
	if v.cookies.Loading() && !v.cookies.Loaded() {
		lines = append(lines, theme.Dim.Render("Loading..."))
		return strings.Join(lines, "\n")
	}
	if err := v.cookies.Err(); err != nil {
		lines = append(lines, theme.Danger.Render(fmt.Sprintf("⚠ %v · press r to retry", err)))
	}
	visible := v.cookies.VisibleItems()
	if len(visible) == 0 {
		lines = append(lines, theme.Dim.Render("No cookies match."))
	}
	for i, cookie := range visible {
		marker := "  "
		style := lipgloss.NewStyle()
		if i == v.cookieSel {
			marker = theme.Selected.Render("> ")
			style = theme.Selected
		}
		lines = append(lines, fmt.Sprintf("%s%s", marker,
			style.Render(fmt.Sprintf("%-24s %-14s $%6.2f · %3d in stock", cookie.Name, cookie.Flavor, cookie.Price, cookie.QuantityAvailable))))
	}
	if v.exporting {
		lines = append(lines, "", theme.Dim.Render("Exporting inventory..."))
	}
	lines = append(lines, "",
		theme.Dim.Render(fmt.Sprintf("Page %d/%d · %d cookie(s)", v.cookies.Page(), v.cookies.TotalPages(), v.cookies.FilteredCount())),
		theme.Dim.Render("a=add  e=edit  d=delete  x=export xlsx  /=search  s=sort  n/p=page"))
	return strings.Join(lines, "\n")
}

func (v *adminView) renderCookieForm() string {
	theme := v.app.theme
	form := v.form
	title := "Add cookie"
	if form.editingID != 0 {
		title = fmt.Sprintf("Edit cookie #%d", form.editingID)
	}
	lines := []string{theme.Accent.Render(title), ""}
	for i, in := range form.inputs {
		lines = append(lines, renderField(theme, cookieFormFields[i], in.View(), form.focus == i))
	}
	lines = append(lines, "")
	if form.saving {
		lines = append(lines, theme.Dim.Render("Saving..."))
	}
	if form.errMsg != "" {
		lines = append(lines, theme.Danger.Render("✗ "+form.errMsg))
	}
	lines = append(lines, theme.Dim.Render("enter=next/save  esc=cancel"))
	return strings.Join(lines, "\n")
}

func (v *adminView) renderOrders() string {
	theme := v.app.theme
	lines := []string{theme.Accent.Render("Orders"),
		theme.Dim.Render(fmt.Sprintf("filter: %s · f=cycle", orderFilterValues[v.orderFlt])), ""}
	if v.orders.Loading() && !v.orders.Loaded() {
		lines = append(lines, theme.Dim.Render("Loading..."))
		return strings.Join(lines, "\n")
	}
	if err := v.orders.Err(); err != nil {
		lines = append(lines, theme.Danger.Render(fmt.Sprintf("⚠ %v · press r to retry", err)))
	}
	visible := v.orders.VisibleItems()
	if len(visible) == 0 {
		lines = append(lines, theme.Dim.Render("No orders match."))
	}
	for i, order := range visible {
		marker := "  "
		style := lipgloss.NewStyle()
		if i == v.orderSel {
			marker = theme.Selected.Render("> ")
			style = theme.Selected
		}
		next := ""
		if !order.Status.Terminal() {
			next = fmt.Sprintf(" → %s", order.Status.Next())
		}
		lines = append(lines, fmt.Sprintf("%s%s", marker,
			style.Render(fmt.Sprintf("#%-5d %-10s $%8.2f · %s%s", order.ID, order.Status, order.Total, order.CustomerName, next))))
	}
	lines = append(lines, "",
		theme.Dim.Render(fmt.Sprintf("Page %d/%d · %d order(s)", v.orders.Page(), v.orders.TotalPages(), v.orders.FilteredCount())),
		theme.Dim.Render("a=advance status  x=cancel order  /=search  n/p=page"))
	return strings.Join(lines, "\n")
}

func (v *adminView) renderUsers() string {
	theme := v.app.theme
	lines := []string{theme.Accent.Render("Accounts"),
		theme.Dim.Render(fmt.Sprintf("filter: %s · f=cycle", userFilterValues[v.userFlt])), ""}
	if v.users.Loading() && !v.users.Loaded() {
		lines = append(lines, theme.Dim.Render("Loading..."))
		return strings.Join(lines, "\n")
	}
	if err := v.users.Err(); err != nil {
		lines = append(lines, theme.Danger.Render(fmt.Sprintf("⚠ %v · press r to retry", err)))
	}
	visible := v.users.VisibleItems()
	if len(visible) == 0 {
		lines = append(lines, theme.Dim.Render("No accounts match."))
	}
	for i, user := range visible {
		marker := "  "
		style := lipgloss.NewStyle()
		if i == v.userSel {
			marker = theme.Selected.Render("> ")
			style = theme.Selected
		}
		lines = append(lines, fmt.Sprintf("%s%s", marker,
			style.Render(fmt.Sprintf("%-22s %-28s %-10s %d order(s)", user.Name, user.Email, user.Role, user.OrderCount))))
	}
	lines = append(lines, "",
		theme.Dim.Render(fmt.Sprintf("Page %d/%d · %d account(s)", v.users.Page(), v.users.TotalPages(), v.users.FilteredCount())),
		theme.Dim.Render("m=change role  d=delete  f=role filter  /=search  n/p=page"))
	return strings.Join(lines, "\n")
}
