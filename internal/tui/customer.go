// internal/tui/customer.go
//
// The customer dashboard: catalog, cart, order history, profile and
// settings behind a collapsible sidebar. Each section fetches once on
// first entry and re-syncs only on explicit refresh or a cart signal;
// switching sections never tears a sibling down.

package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/crumbline/crumbline/internal/bus"
	"github.com/crumbline/crumbline/internal/catalog"
	"github.com/crumbline/crumbline/internal/listview"
	"github.com/crumbline/crumbline/internal/storage"
)

type customerSection int

const (
	sectionHome customerSection = iota
	sectionCart
	sectionOrders
	sectionProfile
	sectionSettings
)

var customerSections = []string{"Home", "Cart", "Orders", "Profile", "Settings"}

var cookieSortKeys = []string{"", "name", "price", "stock"}

type catalogLoadedMsg struct {
	gen   uint64
	items []catalog.Cookie
	err   error
}

type cartLoadedMsg struct {
	gen   uint64
	lines []catalog.CartLine
	err   error
}

type cartActionMsg struct {
	notice string
	err    error
}

type orderPlacedMsg struct {
	order catalog.Order
	err   error
}

type myOrdersLoadedMsg struct {
	gen   uint64
	items []catalog.Order
	err   error
}

type profileLoadedMsg struct {
	gen      uint64
	customer catalog.Customer
	err      error
}

type profileSavedMsg struct {
	gen      uint64
	customer catalog.Customer
	err      error
}

type customerView struct {
	app       *App
	section   customerSection
	collapsed bool

	catalog    *listview.View[catalog.Cookie]
	catalogSel int
	search     textinput.Model
	searching  bool
	sortIdx    int

	cart        []catalog.CartLine
	cartSel     int
	cartLoaded  bool
	cartLoading bool
	cartErr     string
	cartGen     uint64
	placing     bool

	orders *listview.View[catalog.Order]

	profile        catalog.Customer
	profileLoaded  bool
	profileErr     string
	profileGen     uint64
	profileEditing bool
	profileInputs  []textinput.Model
	profileFocus   int
	profileSaving  bool
}

var profileFields = []string{"name", "phone", "address"}

func newCustomerView(app *App) *customerView {
	search := textinput.New()
	search.Placeholder = "search cookies"
	search.CharLimit = 80

	inputs := make([]textinput.Model, len(profileFields))
	for i, field := range profileFields {
		in := textinput.New()
		in.Placeholder = field
		in.CharLimit = 160
		inputs[i] = in
	}

	pages := app.config.File.Pages
	return &customerView{
		app:           app,
		catalog:       listview.New[catalog.Cookie](cookieSource{cookies: app.client.Cookies}, cookieViewConfig(pages.Catalog)),
		orders:        listview.New[catalog.Order](myOrderSource{orders: app.client.Orders}, orderViewConfig(pages.Orders)),
		search:        search,
		profileInputs: inputs,
	}
}

func (v *customerView) close() {
	v.catalog.Close()
	v.orders.Close()
	v.cartGen++
	v.profileGen++
}

// ensureLoaded fetches the active section on first entry only.
func (v *customerView) ensureLoaded() tea.Cmd {
	switch v.section {
	case sectionHome:
		if !v.catalog.Loaded() && !v.catalog.Loading() {
			return v.loadCatalog()
		}
	case sectionCart:
		if !v.cartLoaded && !v.cartLoading {
			return v.loadCart()
		}
	case sectionOrders:
		if !v.orders.Loaded() && !v.orders.Loading() {
			return v.loadOrders()
		}
	case sectionProfile:
		if !v.profileLoaded {
			return v.loadProfile()
		}
	}
	return nil
}

// handleCartSignal reacts to a cart-changed publication: an open cart
// section reloads immediately, otherwise the cached lines are marked
// stale so the next entry refetches.
func (v *customerView) handleCartSignal() tea.Cmd {
	if v.section == sectionCart {
		return v.loadCart()
	}
	v.cartLoaded = false
	return nil
}

func (v *customerView) loadCatalog() tea.Cmd {
	gen := v.catalog.BeginLoad()
	src := v.catalog.Source()
	app := v.app
	return func() tea.Msg {
		ctx, cancel := app.requestContext()
		defer cancel()
		items, err := src.List(ctx)
		return catalogLoadedMsg{gen: gen, items: items, err: err}
	}
}

func (v *customerView) loadCart() tea.Cmd {
	v.cartGen++
	v.cartLoading = true
	gen := v.cartGen
	app := v.app
	return func() tea.Msg {
		ctx, cancel := app.requestContext()
		defer cancel()
		lines, err := app.client.Cart.Mine(ctx)
		return cartLoadedMsg{gen: gen, lines: lines, err: err}
	}
}

func (v *customerView) loadOrders() tea.Cmd {
	gen := v.orders.BeginLoad()
	src := v.orders.Source()
	app := v.app
	return func() tea.Msg {
		ctx, cancel := app.requestContext()
		defer cancel()
		items, err := src.List(ctx)
		return myOrdersLoadedMsg{gen: gen, items: items, err: err}
	}
}

func (v *customerView) loadProfile() tea.Cmd {
	v.profileGen++
	gen := v.profileGen
	app := v.app
	return func() tea.Msg {
		ctx, cancel := app.requestContext()
		defer cancel()
		me, err := app.client.Customers.Me(ctx)
		return profileLoadedMsg{gen: gen, customer: me, err: err}
	}
}

func (v *customerView) addToCart(cookie catalog.Cookie) tea.Cmd {
	if !cookie.InStock() {
		v.app.setStatus(fmt.Sprintf("%s is out of stock", cookie.Name))
		return nil
	}
	app := v.app
	return func() tea.Msg {
		ctx, cancel := app.requestContext()
		defer cancel()
		if err := app.client.Cart.AddItem(ctx, cookie.ID, 1); err != nil {
			return cartActionMsg{err: err}
		}
		app.bus.Publish(bus.TopicCartChanged)
		return cartActionMsg{notice: fmt.Sprintf("Added %s to cart", cookie.Name)}
	}
}

func (v *customerView) stepCartLine(delta int) tea.Cmd {
	if v.cartSel >= len(v.cart) {
		return nil
	}
	line := v.cart[v.cartSel]
	next := line.Quantity + delta
	app := v.app
	return func() tea.Msg {
		ctx, cancel := app.requestContext()
		defer cancel()
		var err error
		notice := fmt.Sprintf("%s × %d", line.Name, next)
		if next < 1 {
			// Stepping below one removes the line; quantities never
			// reach zero while the line exists.
			err = app.client.Cart.RemoveItem(ctx, line.CartItemID)
			notice = fmt.Sprintf("Removed %s", line.Name)
		} else {
			err = app.client.Cart.UpdateItem(ctx, line.CartItemID, next)
		}
		if err != nil {
			return cartActionMsg{err: err}
		}
		app.bus.Publish(bus.TopicCartChanged)
		return cartActionMsg{notice: notice}
	}
}

func (v *customerView) removeCartLine() tea.Cmd {
	if v.cartSel >= len(v.cart) {
		return nil
	}
	line := v.cart[v.cartSel]
	app := v.app
	return func() tea.Msg {
		ctx, cancel := app.requestContext()
		defer cancel()
		if err := app.client.Cart.RemoveItem(ctx, line.CartItemID); err != nil {
			return cartActionMsg{err: err}
		}
		app.bus.Publish(bus.TopicCartChanged)
		return cartActionMsg{notice: fmt.Sprintf("Removed %s", line.Name)}
	}
}

func (v *customerView) placeOrder() tea.Cmd {
	if len(v.cart) == 0 {
		v.app.setStatus("Cart is empty")
		return nil
	}
	if v.placing {
		return nil
	}
	v.placing = true
	app := v.app
	return func() tea.Msg {
		ctx, cancel := app.requestContext()
		defer cancel()
		order, err := app.client.Orders.CreateFromCart(ctx)
		if err != nil {
			return orderPlacedMsg{err: err}
		}
		// The server clears the cart as part of placing the order.
		app.bus.Publish(bus.TopicCartChanged)
		return orderPlacedMsg{order: order}
	}
}

func (v *customerView) saveProfile() tea.Cmd {
	updated := v.profile
	updated.Name = strings.TrimSpace(v.profileInputs[0].Value())
	updated.Phone = strings.TrimSpace(v.profileInputs[1].Value())
	updated.Address = strings.TrimSpace(v.profileInputs[2].Value())
	if updated.Name == "" {
		v.profileErr = "name is required"
		return nil
	}
	v.profileSaving = true
	v.profileErr = ""
	gen := v.profileGen
	app := v.app
	return func() tea.Msg {
		ctx, cancel := app.requestContext()
		defer cancel()
		saved, err := app.client.Customers.Update(ctx, updated.ID, updated)
		return profileSavedMsg{gen: gen, customer: saved, err: err}
	}
}

func (v *customerView) savePreferences() {
	if err := v.app.storage.Write(storage.KeyPreferences, v.app.prefs); err != nil {
		v.app.logWarn("Saving preferences failed: %v", err)
		v.app.setStatus("Could not save preferences")
		return
	}
	v.app.setStatus("Preferences saved")
}

func (v *customerView) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case catalogLoadedMsg:
		v.catalog.ApplyLoad(msg.gen, msg.items, msg.err)
		if msg.err != nil {
			v.app.setStatus(fmt.Sprintf("Catalog load failed: %v", msg.err))
		}
		v.clampCatalogSel()
		return nil
	case cartLoadedMsg:
		if msg.gen != v.cartGen {
			return nil
		}
		v.cartLoading = false
		if msg.err != nil {
			v.cartErr = msg.err.Error()
			return nil
		}
		v.cartErr = ""
		v.cartLoaded = true
		v.cart = msg.lines
		if v.cartSel >= len(v.cart) {
			v.cartSel = max(0, len(v.cart)-1)
		}
		return nil
	case cartActionMsg:
		if msg.err != nil {
			v.app.setStatus(fmt.Sprintf("Cart update failed: %v", msg.err))
			return nil
		}
		v.app.setStatus(msg.notice)
		return nil
	case orderPlacedMsg:
		v.placing = false
		if msg.err != nil {
			v.app.setStatus(fmt.Sprintf("Placing order failed: %v", msg.err))
			return nil
		}
		v.app.logInfo("Order #%d placed · $%.2f", msg.order.ID, msg.order.Total)
		v.app.setStatus(fmt.Sprintf("Order #%d placed · $%.2f", msg.order.ID, msg.order.Total))
		v.cart = nil
		// Order history changed server-side; refetch on next entry.
		return v.loadOrders()
	case myOrdersLoadedMsg:
		v.orders.ApplyLoad(msg.gen, msg.items, msg.err)
		if msg.err != nil {
			v.app.setStatus(fmt.Sprintf("Orders load failed: %v", msg.err))
		}
		return nil
	case profileLoadedMsg:
		if msg.gen != v.profileGen {
			return nil
		}
		if msg.err != nil {
			v.profileErr = msg.err.Error()
			return nil
		}
		v.profileErr = ""
		v.profileLoaded = true
		v.profile = msg.customer
		return nil
	case profileSavedMsg:
		if msg.gen != v.profileGen {
			return nil
		}
		v.profileSaving = false
		if msg.err != nil {
			v.profileErr = msg.err.Error()
			return nil
		}
		v.profile = msg.customer
		v.profileEditing = false
		v.app.setStatus("Profile updated")
		return nil
	case tea.KeyMsg:
		return v.handleKey(msg)
	}
	return nil
}

func (v *customerView) handleKey(msg tea.KeyMsg) tea.Cmd {
	if v.searching {
		return v.handleSearchKey(msg)
	}
	if v.profileEditing {
		return v.handleProfileKey(msg)
	}

	switch msg.String() {
	case "tab":
		return v.switchSection(int(v.section) + 1)
	case "shift+tab":
		return v.switchSection(int(v.section) - 1)
	case "1", "2", "3", "4", "5":
		return v.switchSection(int(msg.String()[0] - '1'))
	case "b":
		v.collapsed = !v.collapsed
		return nil
	case "r":
		return v.refreshSection()
	}

	switch v.section {
	case sectionHome:
		return v.handleHomeKey(msg)
	case sectionCart:
		return v.handleCartKey(msg)
	case sectionOrders:
		return v.handleOrdersKey(msg)
	case sectionProfile:
		return v.handleProfileBrowseKey(msg)
	case sectionSettings:
		return v.handleSettingsKey(msg)
	}
	return nil
}

func (v *customerView) switchSection(idx int) tea.Cmd {
	count := len(customerSections)
	idx = ((idx % count) + count) % count
	v.section = customerSection(idx)
	return v.ensureLoaded()
}

func (v *customerView) refreshSection() tea.Cmd {
	switch v.section {
	case sectionHome:
		return v.loadCatalog()
	case sectionCart:
		return v.loadCart()
	case sectionOrders:
		return v.loadOrders()
	case sectionProfile:
		return v.loadProfile()
	}
	return nil
}

func (v *customerView) handleSearchKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "enter", "esc":
		v.searching = false
		v.search.Blur()
		return nil
	}
	var cmd tea.Cmd
	v.search, cmd = v.search.Update(msg)
	v.catalog.SetSearchTerm(v.search.Value())
	v.clampCatalogSel()
	return cmd
}

func (v *customerView) handleHomeKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "/":
		v.searching = true
		return v.search.Focus()
	case "s":
		v.sortIdx = (v.sortIdx + 1) % len(cookieSortKeys)
		v.catalog.SetSortKey(cookieSortKeys[v.sortIdx])
		v.clampCatalogSel()
	case "o":
		if v.catalog.SortOrder() == listview.Ascending {
			v.catalog.SetSortOrder(listview.Descending)
		} else {
			v.catalog.SetSortOrder(listview.Ascending)
		}
		v.clampCatalogSel()
	case "right", "n":
		v.catalog.NextPage()
		v.clampCatalogSel()
	case "left", "p":
		v.catalog.PrevPage()
		v.clampCatalogSel()
	case "up", "k":
		if v.catalogSel > 0 {
			v.catalogSel--
		}
	case "down", "j":
		if v.catalogSel < len(v.catalog.VisibleItems())-1 {
			v.catalogSel++
		}
	case "enter", "+":
		visible := v.catalog.VisibleItems()
		if v.catalogSel < len(visible) {
			return v.addToCart(visible[v.catalogSel])
		}
	}
	return nil
}

func (v *customerView) clampCatalogSel() {
	if v.catalogSel >= len(v.catalog.VisibleItems()) {
		v.catalogSel = max(0, len(v.catalog.VisibleItems())-1)
	}
}

func (v *customerView) handleCartKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "up", "k":
		if v.cartSel > 0 {
			v.cartSel--
		}
	case "down", "j":
		if v.cartSel < len(v.cart)-1 {
			v.cartSel++
		}
	case "+", "=":
		return v.stepCartLine(1)
	case "-":
		return v.stepCartLine(-1)
	case "d", "delete":
		return v.removeCartLine()
	case "p":
		return v.placeOrder()
	}
	return nil
}

func (v *customerView) handleOrdersKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "right", "n":
		v.orders.NextPage()
	case "left", "p":
		v.orders.PrevPage()
	}
	return nil
}

func (v *customerView) handleProfileBrowseKey(msg tea.KeyMsg) tea.Cmd {
	if msg.String() == "e" && v.profileLoaded {
		v.profileEditing = true
		v.profileInputs[0].SetValue(v.profile.Name)
		v.profileInputs[1].SetValue(v.profile.Phone)
		v.profileInputs[2].SetValue(v.profile.Address)
		v.profileFocus = 0
		for i := range v.profileInputs {
			v.profileInputs[i].Blur()
		}
		return v.profileInputs[0].Focus()
	}
	return nil
}

func (v *customerView) handleProfileKey(msg tea.KeyMsg) tea.Cmd {
	if v.profileSaving {
		return nil
	}
	switch msg.String() {
	case "esc":
		v.profileEditing = false
		v.profileErr = ""
		return nil
	case "tab", "down":
		return v.setProfileFocus(v.profileFocus + 1)
	case "shift+tab", "up":
		return v.setProfileFocus(v.profileFocus - 1)
	case "enter":
		if v.profileFocus < len(v.profileInputs)-1 {
			return v.setProfileFocus(v.profileFocus + 1)
		}
		return v.saveProfile()
	}
	var cmd tea.Cmd
	v.profileInputs[v.profileFocus], cmd = v.profileInputs[v.profileFocus].Update(msg)
	return cmd
}

func (v *customerView) setProfileFocus(focus int) tea.Cmd {
	count := len(v.profileInputs)
	focus = ((focus % count) + count) % count
	v.profileFocus = focus
	for i := range v.profileInputs {
		v.profileInputs[i].Blur()
	}
	return v.profileInputs[focus].Focus()
}

func (v *customerView) handleSettingsKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "t":
		if v.app.prefs.Theme == "dark" {
			v.app.prefs.Theme = "light"
		} else {
			v.app.prefs.Theme = "dark"
		}
		v.app.theme = themeNamed(v.app.prefs.Theme)
		v.savePreferences()
	case "n":
		v.app.prefs.Notifications = !v.app.prefs.Notifications
		v.savePreferences()
	case "w":
		v.app.prefs.Newsletter = !v.app.prefs.Newsletter
		v.savePreferences()
	}
	return nil
}

func (v *customerView) View(width int) string {
	sidebar := renderSidebar(v.app.theme, customerSections, int(v.section), v.collapsed)
	contentWidth := width - lipgloss.Width(sidebar) - 2
	var content string
	switch v.section {
	case sectionHome:
		content = v.renderHome()
	case sectionCart:
		content = v.renderCart()
	case sectionOrders:
		content = v.renderOrders()
	case sectionProfile:
		content = v.renderProfile()
	case sectionSettings:
		content = v.renderSettings()
	}
	body := lipgloss.NewStyle().Width(max(30, contentWidth)).Render(content)
	return lipgloss.JoinHorizontal(lipgloss.Top, sidebar, " ", body)
}

func (v *customerView) renderHome() string {
	theme := v.app.theme
	var lines []string
	searchLine := v.search.View()
	if !v.searching && v.catalog.SearchTerm() == "" {
		searchLine = theme.Dim.Render("press / to search")
	}
	sortLabel := cookieSortKeys[v.sortIdx]
	if sortLabel == "" {
		sortLabel = "none"
	}
	lines = append(lines,
		theme.Accent.Render("Cookie catalog"),
		searchLine,
		theme.Dim.Render(fmt.Sprintf("sort: %s (%s) · s=sort o=order", sortLabel, v.catalog.SortOrder())),
		"")

	if v.catalog.Loading() && !v.catalog.Loaded() {
		lines = append(lines, theme.Dim.Render("Loading catalog..."))
		return strings.Join(lines, "\n")
	}
	if err := v.catalog.Err(); err != nil {
		lines = append(lines, theme.Danger.Render(fmt.Sprintf("⚠ %v · press r to retry", err)))
	}

	visible := v.catalog.VisibleItems()
	if len(visible) == 0 {
		lines = append(lines, theme.Dim.Render("No cookies match."))
	}
	for i, cookie := range visible {
		marker := "  "
		style := lipgloss.NewStyle()
		if i == v.catalogSel {
			marker = theme.Selected.Render("> ")
			style = theme.Selected
		}
		stock := fmt.Sprintf("%d in stock", cookie.QuantityAvailable)
		if !cookie.InStock() {
			stock = "out of stock"
		}
		lines = append(lines, fmt.Sprintf("%s%s", marker,
			style.Render(fmt.Sprintf("%-24s %-14s $%6.2f · %s", cookie.Name, cookie.Flavor, cookie.Price, stock))))
	}
	lines = append(lines, "",
		theme.Dim.Render(fmt.Sprintf("Page %d/%d · %d cookie(s)", v.catalog.Page(), v.catalog.TotalPages(), v.catalog.FilteredCount())),
		theme.Dim.Render("enter=add to cart  n/p=page  r=refresh"))
	return strings.Join(lines, "\n")
}

func (v *customerView) renderCart() string {
	theme := v.app.theme
	lines := []string{theme.Accent.Render("Your cart"), ""}
	if v.cartLoading && !v.cartLoaded {
		lines = append(lines, theme.Dim.Render("Loading cart..."))
		return strings.Join(lines, "\n")
	}
	if v.cartErr != "" {
		lines = append(lines, theme.Danger.Render("⚠ "+v.cartErr+" · press r to retry"))
	}
	if len(v.cart) == 0 {
		lines = append(lines, theme.Dim.Render("Your cart is empty. Add cookies from Home."))
		return strings.Join(lines, "\n")
	}
	for i, line := range v.cart {
		marker := "  "
		style := lipgloss.NewStyle()
		if i == v.cartSel {
			marker = theme.Selected.Render("> ")
			style = theme.Selected
		}
		lines = append(lines, fmt.Sprintf("%s%s", marker,
			style.Render(fmt.Sprintf("%-24s × %-3d $%6.2f", line.Name, line.Quantity, line.Subtotal()))))
	}
	lines = append(lines, "",
		theme.Accent.Render(fmt.Sprintf("Total: $%.2f", catalog.CartTotal(v.cart))))
	if v.placing {
		lines = append(lines, theme.Dim.Render("Placing order..."))
	}
	lines = append(lines, theme.Dim.Render("+/-=quantity  d=remove  p=place order  r=refresh"))
	return strings.Join(lines, "\n")
}

func (v *customerView) renderOrders() string {
	theme := v.app.theme
	lines := []string{theme.Accent.Render("Your orders"), ""}
	if v.orders.Loading() && !v.orders.Loaded() {
		lines = append(lines, theme.Dim.Render("Loading orders..."))
		return strings.Join(lines, "\n")
	}
	if err := v.orders.Err(); err != nil {
		lines = append(lines, theme.Danger.Render(fmt.Sprintf("⚠ %v · press r to retry", err)))
	}
	visible := v.orders.VisibleItems()
	if len(visible) == 0 {
		lines = append(lines, theme.Dim.Render("No orders yet."))
		return strings.Join(lines, "\n")
	}
	for _, order := range visible {
		when := "-"
		if !order.CreatedAt.IsZero() {
			when = order.CreatedAt.Format("2006-01-02")
		}
		lines = append(lines, fmt.Sprintf("#%-5d %-10s $%8.2f · %d item(s) · %s",
			order.ID, order.Status, order.Total, len(order.Lines), when))
	}
	lines = append(lines, "",
		theme.Dim.Render(fmt.Sprintf("Page %d/%d · %d order(s) · n/p=page  r=refresh",
			v.orders.Page(), v.orders.TotalPages(), v.orders.FilteredCount())))
	return strings.Join(lines, "\n")
}

func (v *customerView) renderProfile() string {
	theme := v.app.theme
	lines := []string{theme.Accent.Render("Profile"), ""}
	if v.profileErr != "" {
		lines = append(lines, theme.Danger.Render("⚠ "+v.profileErr))
	}
	if !v.profileLoaded {
		lines = append(lines, theme.Dim.Render("Loading profile..."))
		return strings.Join(lines, "\n")
	}
	if v.profileEditing {
		for i, in := range v.profileInputs {
			lines = append(lines, renderField(theme, profileFields[i], in.View(), v.profileFocus == i))
		}
		if v.profileSaving {
			lines = append(lines, "", theme.Dim.Render("Saving..."))
		}
		lines = append(lines, "", theme.Dim.Render("enter=next/save  esc=cancel"))
		return strings.Join(lines, "\n")
	}
	lines = append(lines,
		fmt.Sprintf("  name:    %s", v.profile.Name),
		fmt.Sprintf("  email:   %s", v.profile.Email),
		fmt.Sprintf("  phone:   %s", orDash(v.profile.Phone)),
		fmt.Sprintf("  address: %s", orDash(v.profile.Address)),
		fmt.Sprintf("  orders:  %d", v.profile.OrderCount),
		"",
		theme.Dim.Render("e=edit  r=refresh"))
	return strings.Join(lines, "\n")
}

func (v *customerView) renderSettings() string {
	theme := v.app.theme
	onOff := func(b bool) string {
		if b {
			return theme.Success.Render("on")
		}
		return theme.Dim.Render("off")
	}
	return strings.Join([]string{
		theme.Accent.Render("Settings"),
		"",
		fmt.Sprintf("  theme:         %s", v.app.prefs.Theme),
		fmt.Sprintf("  notifications: %s", onOff(v.app.prefs.Notifications)),
		fmt.Sprintf("  newsletter:    %s", onOff(v.app.prefs.Newsletter)),
		"",
		theme.Dim.Render("t=toggle theme  n=notifications  w=newsletter"),
	}, "\n")
}

func renderSidebar(theme Theme, sections []string, active int, collapsed bool) string {
	var rows []string
	for i, label := range sections {
		text := label
		if collapsed {
			text = label[:1]
		}
		if i == active {
			rows = append(rows, theme.Selected.Render(fmt.Sprintf("%d %s", i+1, text)))
		} else {
			rows = append(rows, theme.Dim.Render(fmt.Sprintf("%d %s", i+1, text)))
		}
	}
	rows = append(rows, "", theme.Dim.Render("tab=next"))
	if !collapsed {
		rows = append(rows, theme.Dim.Render("b=collapse"), theme.Dim.Render("ctrl+l=sign out"))
	}
	return theme.Sidebar.Render(strings.Join(rows, "\n"))
}

func orDash(value string) string {
	if strings.TrimSpace(value) == "" {
		return "-"
	}
	return value
}
