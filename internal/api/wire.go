// internal/api/wire.go
//
// Server-side response shapes and their translation into the client's
// entity types. The backend nests entities (order → customer →
// orderItems); the dashboards want flat records, so the flattening
// happens here at the boundary.

package api

import (
	"strings"
	"time"

	"github.com/crumbline/crumbline/internal/catalog"
)

// User is the authenticated identity as returned by the login endpoint.
// The backend keys users by email, so ID is a string.
type User struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token        string `json:"token"`
	RefreshToken string `json:"refreshToken"`
	User         User   `json:"user"`
}

// RegisterRequest is the customer self-registration payload.
type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Phone    string `json:"phonenumber,omitempty"`
	Address  string `json:"address,omitempty"`
}

type wireCustomer struct {
	CustomerID int64            `json:"customerId"`
	Name       string           `json:"name"`
	Email      string           `json:"email"`
	Role       string           `json:"role"`
	Phone      string           `json:"phonenumber"`
	Address    string           `json:"address"`
	Orders     []map[string]any `json:"orders"`
}

func (w wireCustomer) toCustomer() catalog.Customer {
	role := w.Role
	if strings.TrimSpace(role) == "" {
		role = "CUSTOMER"
	}
	return catalog.Customer{
		ID:         w.CustomerID,
		Name:       w.Name,
		Email:      w.Email,
		Role:       role,
		Phone:      w.Phone,
		Address:    w.Address,
		OrderCount: len(w.Orders),
	}
}

type wireOrderItem struct {
	Product  string  `json:"product"`
	Quantity int     `json:"quantity"`
	Price    float64 `json:"price"`
}

type wireOrder struct {
	OrderID     int64           `json:"orderId"`
	Customer    *wireCustomer   `json:"customer"`
	OrderItems  []wireOrderItem `json:"orderItems"`
	TotalAmount float64         `json:"totalAmount"`
	Status      string          `json:"status"`
	OrderDate   string          `json:"orderDate"`
}

func (w wireOrder) toOrder() catalog.Order {
	order := catalog.Order{
		ID:        w.OrderID,
		Total:     w.TotalAmount,
		Status:    catalog.ParseOrderStatus(w.Status),
		CreatedAt: parseOrderDate(w.OrderDate),
	}
	if w.Customer != nil {
		order.CustomerName = w.Customer.Name
		order.CustomerEmail = w.Customer.Email
	}
	if order.CustomerName == "" {
		order.CustomerName = "Unknown Customer"
	}
	for _, item := range w.OrderItems {
		order.Lines = append(order.Lines, catalog.OrderLine{
			Name:     item.Product,
			Quantity: item.Quantity,
			Price:    item.Price,
		})
	}
	return order
}

type wireCookieRef struct {
	CookieID          int64  `json:"cookieId"`
	ID                int64  `json:"id"`
	Name              string `json:"name"`
	QuantityAvailable int    `json:"quantityAvailable"`
}

func (w wireCookieRef) cookieID() int64 {
	if w.CookieID != 0 {
		return w.CookieID
	}
	return w.ID
}

type wireCartItem struct {
	CartItemID int64          `json:"cartItemId"`
	Quantity   int            `json:"quantity"`
	Price      float64        `json:"price"`
	Cookie     *wireCookieRef `json:"cookie"`
}

type wireCart struct {
	CartItems []wireCartItem `json:"cartItems"`
}

func (w wireCart) toLines() []catalog.CartLine {
	lines := make([]catalog.CartLine, 0, len(w.CartItems))
	for _, item := range w.CartItems {
		line := catalog.CartLine{
			CartItemID: item.CartItemID,
			Price:      item.Price,
			Quantity:   item.Quantity,
		}
		if line.Quantity < 1 {
			line.Quantity = 1
		}
		if item.Cookie != nil {
			line.CookieID = item.Cookie.cookieID()
			line.Name = item.Cookie.Name
			line.Stock = item.Cookie.QuantityAvailable
		}
		if line.Name == "" {
			line.Name = "Unknown Cookie"
		}
		lines = append(lines, line)
	}
	return lines
}

var orderDateLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

func parseOrderDate(value string) time.Time {
	value = strings.TrimSpace(value)
	for _, layout := range orderDateLayouts {
		if ts, err := time.Parse(layout, value); err == nil {
			return ts
		}
	}
	return time.Time{}
}
