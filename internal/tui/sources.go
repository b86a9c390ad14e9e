package tui

import (
	"context"
	"fmt"
	"time"

	"github.com/crumbline/crumbline/internal/api"
	"github.com/crumbline/crumbline/internal/catalog"
	"github.com/crumbline/crumbline/internal/listview"
	"github.com/crumbline/crumbline/internal/session"
)

// Source adapters bind the typed api services to the generic list-view
// manager. Collections that the backend exposes read-only reject the
// mutating calls locally instead of round-tripping a doomed request.

type cookieSource struct {
	cookies *api.CookieService
}

var _ listview.Source[catalog.Cookie] = cookieSource{}

func (s cookieSource) List(ctx context.Context) ([]catalog.Cookie, error) {
	return s.cookies.List(ctx)
}

func (s cookieSource) Create(ctx context.Context, c catalog.Cookie) (catalog.Cookie, error) {
	return s.cookies.Create(ctx, c)
}

func (s cookieSource) Update(ctx context.Context, id int64, c catalog.Cookie) (catalog.Cookie, error) {
	return s.cookies.Update(ctx, id, c)
}

func (s cookieSource) Remove(ctx context.Context, id int64) error {
	return s.cookies.Remove(ctx, id)
}

// orderSource serves the admin orders tab. Orders mutate only through
// the status endpoint, which the dashboard calls directly so it can
// name the from-status; the generic mutations are rejected locally.
type orderSource struct {
	orders *api.OrderService
}

var _ listview.Source[catalog.Order] = orderSource{}

func (s orderSource) List(ctx context.Context) ([]catalog.Order, error) {
	return s.orders.List(ctx)
}

func (s orderSource) Create(ctx context.Context, o catalog.Order) (catalog.Order, error) {
	return catalog.Order{}, fmt.Errorf("orders are placed from a cart, not created directly")
}

func (s orderSource) Update(ctx context.Context, id int64, o catalog.Order) (catalog.Order, error) {
	return catalog.Order{}, fmt.Errorf("order updates go through the status endpoint")
}

func (s orderSource) Remove(ctx context.Context, id int64) error {
	return fmt.Errorf("orders cannot be deleted")
}

// myOrderSource is the customer's read-only order history.
type myOrderSource struct {
	orders *api.OrderService
}

var _ listview.Source[catalog.Order] = myOrderSource{}

func (s myOrderSource) List(ctx context.Context) ([]catalog.Order, error) {
	return s.orders.Mine(ctx)
}

func (s myOrderSource) Create(ctx context.Context, o catalog.Order) (catalog.Order, error) {
	return catalog.Order{}, fmt.Errorf("orders are placed from a cart, not created directly")
}

func (s myOrderSource) Update(ctx context.Context, id int64, o catalog.Order) (catalog.Order, error) {
	return catalog.Order{}, fmt.Errorf("order history is read-only")
}

func (s myOrderSource) Remove(ctx context.Context, id int64) error {
	return fmt.Errorf("order history is read-only")
}

type customerSource struct {
	customers *api.CustomerService
}

var _ listview.Source[catalog.Customer] = customerSource{}

func (s customerSource) List(ctx context.Context) ([]catalog.Customer, error) {
	return s.customers.List(ctx)
}

func (s customerSource) Create(ctx context.Context, c catalog.Customer) (catalog.Customer, error) {
	return catalog.Customer{}, fmt.Errorf("accounts are created through registration")
}

func (s customerSource) Update(ctx context.Context, id int64, c catalog.Customer) (catalog.Customer, error) {
	return s.customers.Update(ctx, id, c)
}

func (s customerSource) Remove(ctx context.Context, id int64) error {
	return s.customers.Remove(ctx, id)
}

func cookieViewConfig(pageSize int) listview.Config[catalog.Cookie] {
	return listview.Config[catalog.Cookie]{
		PageSize: pageSize,
		ID:       func(c catalog.Cookie) int64 { return c.ID },
		SearchFields: func(c catalog.Cookie) []string {
			return []string{c.Name, c.Flavor}
		},
		SortKeys: map[string]func(a, b catalog.Cookie) int{
			"name":  func(a, b catalog.Cookie) int { return compareStrings(a.Name, b.Name) },
			"price": func(a, b catalog.Cookie) int { return compareFloats(a.Price, b.Price) },
			"stock": func(a, b catalog.Cookie) int { return a.QuantityAvailable - b.QuantityAvailable },
		},
	}
}

func orderViewConfig(pageSize int) listview.Config[catalog.Order] {
	return listview.Config[catalog.Order]{
		PageSize: pageSize,
		ID:       func(o catalog.Order) int64 { return o.ID },
		SearchFields: func(o catalog.Order) []string {
			return []string{o.CustomerName, o.CustomerEmail, fmt.Sprintf("#%d", o.ID)}
		},
		SortKeys: map[string]func(a, b catalog.Order) int{
			"date":  func(a, b catalog.Order) int { return compareTimes(a.CreatedAt, b.CreatedAt) },
			"total": func(a, b catalog.Order) int { return compareFloats(a.Total, b.Total) },
		},
		FilterField: func(o catalog.Order) string { return o.Status.String() },
	}
}

func customerViewConfig(pageSize int) listview.Config[catalog.Customer] {
	return listview.Config[catalog.Customer]{
		PageSize: pageSize,
		ID:       func(c catalog.Customer) int64 { return c.ID },
		SearchFields: func(c catalog.Customer) []string {
			return []string{c.Name, c.Email}
		},
		SortKeys: map[string]func(a, b catalog.Customer) int{
			"name":   func(a, b catalog.Customer) int { return compareStrings(a.Name, b.Name) },
			"orders": func(a, b catalog.Customer) int { return a.OrderCount - b.OrderCount },
		},
		// Backend role strings vary (ROLE_ADMIN, ADMIN, ...); filter on
		// the normalized bucket so every spelling lands in one bucket.
		FilterField: func(c catalog.Customer) string {
			return session.NormalizeRole(c.Role).String()
		},
	}
}

func compareStrings(a, b string) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

func compareFloats(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

func compareTimes(a, b time.Time) int {
	switch {
	case a.Before(b):
		return -1
	case a.After(b):
		return 1
	}
	return 0
}
