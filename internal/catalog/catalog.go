// internal/catalog/catalog.go
//
// Entity types as the storefront client consumes them. Authoritative
// storage is server-side; everything here is a transient copy that is
// refetched on mount and after mutations, never assumed durable.

package catalog

import (
	"fmt"
	"strings"
	"time"
)

// Cookie is a single catalog product.
type Cookie struct {
	ID                int64   `json:"id"`
	Name              string  `json:"name"`
	Flavor            string  `json:"flavor"`
	Price             float64 `json:"price"`
	QuantityAvailable int     `json:"quantityAvailable"`
	ImageURL          string  `json:"imageUrl,omitempty"`
}

// Validate enforces the client-side invariants before a create or update
// is ever sent to the server.
func (c Cookie) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return fmt.Errorf("cookie: name is required")
	}
	if strings.TrimSpace(c.Flavor) == "" {
		return fmt.Errorf("cookie: flavor is required")
	}
	if c.Price <= 0 {
		return fmt.Errorf("cookie: price must be greater than zero")
	}
	if c.QuantityAvailable < 0 {
		return fmt.Errorf("cookie: quantity available cannot be negative")
	}
	return nil
}

// InStock reports whether at least one unit can still be added to a cart.
func (c Cookie) InStock() bool {
	return c.QuantityAvailable > 0
}

// CartLine is one line of the authenticated customer's cart. Quantity
// stays >= 1 while the line exists; a stepper that reaches zero removes
// the line instead.
type CartLine struct {
	CartItemID int64   `json:"cartItemId"`
	CookieID   int64   `json:"cookieId"`
	Name       string  `json:"name"`
	Price      float64 `json:"price"`
	Quantity   int     `json:"quantity"`
	Stock      int     `json:"stock"`
}

// Subtotal is the line price times quantity.
func (l CartLine) Subtotal() float64 {
	return l.Price * float64(l.Quantity)
}

// CartTotal sums the subtotals of all lines.
func CartTotal(lines []CartLine) float64 {
	var total float64
	for _, l := range lines {
		total += l.Subtotal()
	}
	return total
}

// OrderLine is one item of a placed order, immutable client-side.
type OrderLine struct {
	Name     string  `json:"name"`
	Quantity int     `json:"quantity"`
	Price    float64 `json:"price"`
}

// Order as the client renders it. Only Status is mutable, and only by
// an admin session.
type Order struct {
	ID            int64       `json:"id"`
	CustomerName  string      `json:"customerName"`
	CustomerEmail string      `json:"customerEmail"`
	Lines         []OrderLine `json:"lines"`
	Total         float64     `json:"total"`
	Status        OrderStatus `json:"status"`
	CreatedAt     time.Time   `json:"createdAt"`
}

// Customer as managed from the admin dashboard and the profile section.
type Customer struct {
	ID         int64  `json:"id"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	Role       string `json:"role"`
	Phone      string `json:"phonenumber,omitempty"`
	Address    string `json:"address,omitempty"`
	OrderCount int    `json:"orderCount"`
}
