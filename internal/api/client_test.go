package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crumbline/crumbline/internal/catalog"
)

type recordedRequest struct {
	method string
	path   string
	header http.Header
}

func newTestServer(t *testing.T, status int, body any) (*httptest.Server, *[]recordedRequest) {
	t.Helper()
	var seen []recordedRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = append(seen, recordedRequest{method: r.Method, path: r.URL.Path, header: r.Header.Clone()})
		w.WriteHeader(status)
		if body != nil {
			_ = json.NewEncoder(w).Encode(body)
		}
	}))
	t.Cleanup(server.Close)
	return server, &seen
}

func TestBearerTokenAttachedWhenPresent(t *testing.T) {
	server, seen := newTestServer(t, http.StatusOK, []catalog.Cookie{})
	client := NewClient(server.URL,
		WithTokenSource(TokenSourceFunc(func() string { return "tok-123" })),
		WithCacheMaxAge(5*time.Minute),
	)
	_, err := client.Cookies.List(context.Background())
	require.NoError(t, err)
	require.Len(t, *seen, 1)
	got := (*seen)[0]
	assert.Equal(t, "Bearer tok-123", got.header.Get("Authorization"))
	assert.Equal(t, "max-age=300", got.header.Get("Cache-Control"))
	assert.Empty(t, got.header.Get("X-Request-ID"), "reads carry no request id")
}

func TestAnonymousRequestOmitsAuthorization(t *testing.T) {
	server, seen := newTestServer(t, http.StatusOK, []catalog.Cookie{})
	client := NewClient(server.URL, WithTokenSource(TokenSourceFunc(func() string { return "" })))
	_, err := client.Cookies.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, (*seen)[0].header.Get("Authorization"))
}

func TestMutationsCarryRequestIDAndNoCacheHint(t *testing.T) {
	server, seen := newTestServer(t, http.StatusOK, catalog.Cookie{ID: 1, Name: "A", Flavor: "b", Price: 1})
	client := NewClient(server.URL, WithCacheMaxAge(5*time.Minute))
	_, err := client.Cookies.Create(context.Background(), catalog.Cookie{Name: "A", Flavor: "b", Price: 1})
	require.NoError(t, err)
	got := (*seen)[0]
	assert.NotEmpty(t, got.header.Get("X-Request-ID"))
	assert.Empty(t, got.header.Get("Cache-Control"))
}

func TestUnauthorizedInvokesHookAndClassifies(t *testing.T) {
	server, _ := newTestServer(t, http.StatusUnauthorized, nil)
	var hookFired int
	client := NewClient(server.URL, WithOnUnauthorized(func() { hookFired++ }))
	_, err := client.Orders.List(context.Background())
	require.ErrorIs(t, err, ErrUnauthorized)
	assert.Equal(t, 1, hookFired)
}

func TestForbiddenClassifiesWithoutHook(t *testing.T) {
	server, _ := newTestServer(t, http.StatusForbidden, nil)
	var hookFired int
	client := NewClient(server.URL, WithOnUnauthorized(func() { hookFired++ }))
	err := client.Customers.Remove(context.Background(), 9)
	require.ErrorIs(t, err, ErrForbidden)
	assert.Zero(t, hookFired, "403 must not tear down the session")
}

func TestServerMessageSurfacesVerbatim(t *testing.T) {
	server, _ := newTestServer(t, http.StatusBadRequest, map[string]string{"message": "price must be positive"})
	client := NewClient(server.URL)
	_, err := client.Cookies.Create(context.Background(), catalog.Cookie{Name: "A", Flavor: "b", Price: 1})
	var apiErr *Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadRequest, apiErr.Status)
	assert.Equal(t, "price must be positive", apiErr.Message)
	assert.False(t, apiErr.Retryable())
}

func TestServerErrorIsRetryable(t *testing.T) {
	server, _ := newTestServer(t, http.StatusInternalServerError, nil)
	client := NewClient(server.URL)
	_, err := client.Cookies.List(context.Background())
	var apiErr *Error
	require.ErrorAs(t, err, &apiErr)
	assert.True(t, apiErr.Retryable())
}

func TestTransportFailureWrapsError(t *testing.T) {
	client := NewClient("http://127.0.0.1:1", WithHTTPClient(&http.Client{Timeout: 200 * time.Millisecond}))
	_, err := client.Cookies.List(context.Background())
	require.Error(t, err)
	var apiErr *Error
	assert.False(t, errors.As(err, &apiErr), "transport failures are not typed responses")
}

func TestOrderListFlattensNestedEntities(t *testing.T) {
	payload := []map[string]any{{
		"orderId":     7,
		"totalAmount": 12.5,
		"status":      "Processing",
		"orderDate":   "2026-08-30T10:00:00Z",
		"customer":    map[string]any{"customerId": 3, "name": "Ada", "email": "ada@example.com"},
		"orderItems": []map[string]any{
			{"product": "Choc Chip", "quantity": 2, "price": 5.0},
		},
	}}
	server, _ := newTestServer(t, http.StatusOK, payload)
	client := NewClient(server.URL)
	orders, err := client.Orders.List(context.Background())
	require.NoError(t, err)
	require.Len(t, orders, 1)
	order := orders[0]
	assert.Equal(t, int64(7), order.ID)
	assert.Equal(t, "Ada", order.CustomerName)
	assert.Equal(t, catalog.StatusProcessed, order.Status, "legacy spelling folds into the enum")
	require.Len(t, order.Lines, 1)
	assert.Equal(t, "Choc Chip", order.Lines[0].Name)
}

func TestCartNotFoundMeansEmptyCart(t *testing.T) {
	server, _ := newTestServer(t, http.StatusNotFound, nil)
	client := NewClient(server.URL)
	lines, err := client.Cart.Mine(context.Background())
	require.NoError(t, err)
	assert.Empty(t, lines)
}

func TestCartLinesResolveCookieRefs(t *testing.T) {
	payload := map[string]any{
		"cartItems": []map[string]any{
			{"cartItemId": 4, "quantity": 2, "price": 3.5, "cookie": map[string]any{"cookieId": 11, "name": "Snick", "quantityAvailable": 9}},
		},
	}
	server, _ := newTestServer(t, http.StatusOK, payload)
	client := NewClient(server.URL)
	lines, err := client.Cart.Mine(context.Background())
	require.NoError(t, err)
	require.Len(t, lines, 1)
	assert.Equal(t, int64(11), lines[0].CookieID)
	assert.Equal(t, 9, lines[0].Stock)
	assert.Equal(t, 7.0, lines[0].Subtotal())
}

func TestUpdateStatusRejectsIllegalTransition(t *testing.T) {
	server, seen := newTestServer(t, http.StatusOK, nil)
	client := NewClient(server.URL)
	_, err := client.Orders.UpdateStatus(context.Background(), 1, catalog.StatusDelivered, catalog.StatusPending)
	require.Error(t, err)
	assert.Empty(t, *seen, "illegal transitions never reach the server")

	_, err = client.Orders.UpdateStatus(context.Background(), 1, catalog.StatusPending, catalog.StatusConfirmed)
	require.NoError(t, err)
	assert.Len(t, *seen, 1)
}

func TestLoginReturnsIdentityAndToken(t *testing.T) {
	payload := map[string]any{
		"token": "jwt-abc",
		"user":  map[string]any{"id": "ada@example.com", "name": "ada", "email": "ada@example.com", "role": "ROLE_ADMIN"},
	}
	server, _ := newTestServer(t, http.StatusOK, payload)
	client := NewClient(server.URL)
	user, token, err := client.Auth.Login(context.Background(), "ada@example.com", "pw")
	require.NoError(t, err)
	assert.Equal(t, "jwt-abc", token)
	assert.Equal(t, "ROLE_ADMIN", user.Role)
}
