// internal/api/services.go
//
// Typed endpoint families, mirroring the backend controller surface.

package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/crumbline/crumbline/internal/catalog"
)

// AuthService covers /auth.
type AuthService struct {
	client *Client
}

// Login exchanges credentials for a token and the identity record.
func (s *AuthService) Login(ctx context.Context, email, password string) (User, string, error) {
	var resp loginResponse
	err := s.client.do(ctx, http.MethodPost, "/auth/login", loginRequest{Email: email, Password: password}, &resp)
	if err != nil {
		return User{}, "", err
	}
	if resp.Token == "" {
		return User{}, "", &Error{Status: http.StatusBadGateway, Message: "login response missing token"}
	}
	return resp.User, resp.Token, nil
}

// Register creates a customer account. The server answers with a plain
// text confirmation.
func (s *AuthService) Register(ctx context.Context, req RegisterRequest) error {
	return s.client.do(ctx, http.MethodPost, "/auth/register", req, nil)
}

// CookieService covers /cookies.
type CookieService struct {
	client *Client
}

// List fetches the full catalog.
func (s *CookieService) List(ctx context.Context) ([]catalog.Cookie, error) {
	var cookies []catalog.Cookie
	if err := s.client.do(ctx, http.MethodGet, "/cookies", nil, &cookies); err != nil {
		return nil, err
	}
	return cookies, nil
}

// Get fetches one cookie.
func (s *CookieService) Get(ctx context.Context, id int64) (catalog.Cookie, error) {
	var cookie catalog.Cookie
	err := s.client.do(ctx, http.MethodGet, fmt.Sprintf("/cookies/%d", id), nil, &cookie)
	return cookie, err
}

// Create posts a new cookie and returns the server's canonical record,
// id included.
func (s *CookieService) Create(ctx context.Context, cookie catalog.Cookie) (catalog.Cookie, error) {
	if err := cookie.Validate(); err != nil {
		return catalog.Cookie{}, err
	}
	var created catalog.Cookie
	err := s.client.do(ctx, http.MethodPost, "/cookies", cookie, &created)
	return created, err
}

// Update replaces a cookie and returns the confirmed record.
func (s *CookieService) Update(ctx context.Context, id int64, cookie catalog.Cookie) (catalog.Cookie, error) {
	if err := cookie.Validate(); err != nil {
		return catalog.Cookie{}, err
	}
	var updated catalog.Cookie
	err := s.client.do(ctx, http.MethodPut, fmt.Sprintf("/cookies/%d", id), cookie, &updated)
	if err != nil {
		return catalog.Cookie{}, err
	}
	if updated.ID == 0 {
		updated.ID = id
	}
	return updated, nil
}

// Remove deletes a cookie.
func (s *CookieService) Remove(ctx context.Context, id int64) error {
	return s.client.do(ctx, http.MethodDelete, fmt.Sprintf("/cookies/%d", id), nil, nil)
}

// OrderService covers /orders.
type OrderService struct {
	client *Client
}

// List fetches every order (admin surface).
func (s *OrderService) List(ctx context.Context) ([]catalog.Order, error) {
	var wire []wireOrder
	if err := s.client.do(ctx, http.MethodGet, "/orders", nil, &wire); err != nil {
		return nil, err
	}
	orders := make([]catalog.Order, 0, len(wire))
	for _, w := range wire {
		orders = append(orders, w.toOrder())
	}
	return orders, nil
}

// Mine fetches the authenticated customer's own orders.
func (s *OrderService) Mine(ctx context.Context) ([]catalog.Order, error) {
	var wire []wireOrder
	if err := s.client.do(ctx, http.MethodGet, "/orders/my-orders", nil, &wire); err != nil {
		return nil, err
	}
	orders := make([]catalog.Order, 0, len(wire))
	for _, w := range wire {
		orders = append(orders, w.toOrder())
	}
	return orders, nil
}

// CreateFromCart places an order from the current cart. The server
// clears the cart as part of the operation.
func (s *OrderService) CreateFromCart(ctx context.Context) (catalog.Order, error) {
	var wire wireOrder
	err := s.client.do(ctx, http.MethodPost, "/orders/create-from-cart", nil, &wire)
	if err != nil {
		return catalog.Order{}, err
	}
	return wire.toOrder(), nil
}

// UpdateStatus transitions an order's status (admin only). The legality
// of the transition is validated client-side before the call.
func (s *OrderService) UpdateStatus(ctx context.Context, id int64, from, to catalog.OrderStatus) (catalog.Order, error) {
	if !from.CanTransition(to) {
		return catalog.Order{}, fmt.Errorf("order %d: illegal status transition %s → %s", id, from, to)
	}
	body := map[string]string{"status": to.String()}
	var wire wireOrder
	err := s.client.do(ctx, http.MethodPut, fmt.Sprintf("/orders/%d/status", id), body, &wire)
	if err != nil {
		return catalog.Order{}, err
	}
	order := wire.toOrder()
	if order.ID == 0 {
		order.ID = id
		order.Status = to
	}
	return order, nil
}

// CustomerService covers /customers.
type CustomerService struct {
	client *Client
}

// List fetches every customer (admin surface).
func (s *CustomerService) List(ctx context.Context) ([]catalog.Customer, error) {
	var wire []wireCustomer
	if err := s.client.do(ctx, http.MethodGet, "/customers", nil, &wire); err != nil {
		return nil, err
	}
	customers := make([]catalog.Customer, 0, len(wire))
	for _, w := range wire {
		customers = append(customers, w.toCustomer())
	}
	return customers, nil
}

// Me fetches the authenticated customer's own record. The profile
// section uses the numeric id off this record for updates.
func (s *CustomerService) Me(ctx context.Context) (catalog.Customer, error) {
	var wire wireCustomer
	err := s.client.do(ctx, http.MethodGet, "/customers/my-profile", nil, &wire)
	if err != nil {
		return catalog.Customer{}, err
	}
	return wire.toCustomer(), nil
}

// Get fetches one customer record.
func (s *CustomerService) Get(ctx context.Context, id int64) (catalog.Customer, error) {
	var wire wireCustomer
	err := s.client.do(ctx, http.MethodGet, fmt.Sprintf("/customers/%d", id), nil, &wire)
	if err != nil {
		return catalog.Customer{}, err
	}
	return wire.toCustomer(), nil
}

// Update replaces a customer record and returns the confirmed copy.
func (s *CustomerService) Update(ctx context.Context, id int64, customer catalog.Customer) (catalog.Customer, error) {
	body := map[string]any{
		"customerId":  id,
		"name":        customer.Name,
		"email":       customer.Email,
		"role":        customer.Role,
		"phonenumber": customer.Phone,
		"address":     customer.Address,
	}
	var wire wireCustomer
	err := s.client.do(ctx, http.MethodPut, fmt.Sprintf("/customers/%d", id), body, &wire)
	if err != nil {
		return catalog.Customer{}, err
	}
	updated := wire.toCustomer()
	if updated.ID == 0 {
		updated.ID = id
	}
	return updated, nil
}

// Remove deletes a customer (admin only).
func (s *CustomerService) Remove(ctx context.Context, id int64) error {
	return s.client.do(ctx, http.MethodDelete, fmt.Sprintf("/customers/%d", id), nil, nil)
}

// CartService covers /carts.
type CartService struct {
	client *Client
}

// Mine fetches the authenticated customer's cart. A 404 means no cart
// exists yet and decodes to an empty line set, not an error.
func (s *CartService) Mine(ctx context.Context) ([]catalog.CartLine, error) {
	var wire wireCart
	err := s.client.do(ctx, http.MethodGet, "/carts/my-cart", nil, &wire)
	if err != nil {
		var apiErr *Error
		if errors.As(err, &apiErr) && apiErr.Status == http.StatusNotFound {
			return nil, nil
		}
		return nil, err
	}
	return wire.toLines(), nil
}

// AddItem puts quantity units of a cookie into the cart.
func (s *CartService) AddItem(ctx context.Context, cookieID int64, quantity int) error {
	if quantity < 1 {
		quantity = 1
	}
	body := map[string]any{"cookieId": cookieID, "quantity": quantity}
	return s.client.do(ctx, http.MethodPost, "/carts/add-item", body, nil)
}

// UpdateItem sets a cart line's quantity. Steppers that reach zero
// call RemoveItem instead.
func (s *CartService) UpdateItem(ctx context.Context, cartItemID int64, quantity int) error {
	if quantity < 1 {
		return fmt.Errorf("cart item %d: quantity must be >= 1 (remove the line instead)", cartItemID)
	}
	body := map[string]any{"quantity": quantity}
	return s.client.do(ctx, http.MethodPut, fmt.Sprintf("/carts/update-item/%d", cartItemID), body, nil)
}

// RemoveItem deletes a cart line.
func (s *CartService) RemoveItem(ctx context.Context, cartItemID int64) error {
	return s.client.do(ctx, http.MethodDelete, fmt.Sprintf("/carts/remove-item/%d", cartItemID), nil, nil)
}

// Clear empties the cart.
func (s *CartService) Clear(ctx context.Context) error {
	return s.client.do(ctx, http.MethodDelete, "/carts/clear", nil, nil)
}
