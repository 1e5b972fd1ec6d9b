package handler

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/kartify/storefront-agent/internal/core/domain"
)

type stubCheckoutClient struct {
	token      string
	submitErr  error
	updateErr  error
	gotToken   string
	gotNonce   string
	gotItems   []domain.CartItem
	gotOrderID string
	gotStatus  string
	orders     []domain.Order
}

func (s *stubCheckoutClient) PaymentToken(context.Context) (string, error) {
	return s.token, nil
}

func (s *stubCheckoutClient) SubmitPayment(_ context.Context, token, nonce string, items []domain.CartItem) error {
	s.gotToken = token
	s.gotNonce = nonce
	s.gotItems = items
	return s.submitErr
}

func (s *stubCheckoutClient) Orders(_ context.Context, token string) ([]domain.Order, error) {
	s.gotToken = token
	return s.orders, nil
}

func (s *stubCheckoutClient) AllOrders(_ context.Context, token string) ([]domain.Order, error) {
	s.gotToken = token
	return s.orders, nil
}

func (s *stubCheckoutClient) UpdateOrderStatus(_ context.Context, token, orderID, status string) error {
	s.gotToken = token
	s.gotOrderID = orderID
	s.gotStatus = status
	return s.updateErr
}

func TestCheckoutHandler_SubmitPayment_ClearsCart(t *testing.T) {
	checkout := &stubCheckoutClient{}
	cart := &stubCartStore{items: []domain.CartItem{
		{ProductID: "p1", Name: "Widget", Price: 10, Quantity: 2},
	}}
	h := NewCheckoutHandler(checkout, cart, loggedIn(), zerolog.Nop())

	c, rec := newTestContext(t, http.MethodPost, "/checkout/payment", `{"nonce":"fake-nonce"}`)
	if err := h.SubmitPayment(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if checkout.gotToken != "tok-1" || checkout.gotNonce != "fake-nonce" {
		t.Fatalf("backend got token=%q nonce=%q", checkout.gotToken, checkout.gotNonce)
	}
	if len(checkout.gotItems) != 1 {
		t.Fatalf("backend got cart %+v", checkout.gotItems)
	}
	if len(cart.items) != 0 {
		t.Fatalf("cart must be cleared after a confirmed payment")
	}
}

func TestCheckoutHandler_SubmitPayment_RejectedKeepsCart(t *testing.T) {
	checkout := &stubCheckoutClient{submitErr: errors.New("payment was not successful")}
	cart := &stubCartStore{items: []domain.CartItem{{ProductID: "p1", Price: 10, Quantity: 1}}}
	h := NewCheckoutHandler(checkout, cart, loggedIn(), zerolog.Nop())

	c, _ := newTestContext(t, http.MethodPost, "/checkout/payment", `{"nonce":"fake-nonce"}`)
	if err := h.SubmitPayment(c); err == nil {
		t.Fatalf("expected the rejection to propagate")
	}
	if len(cart.items) != 1 {
		t.Fatalf("cart must survive a rejected payment")
	}
}

func TestCheckoutHandler_SubmitPayment_RequiresLogin(t *testing.T) {
	h := NewCheckoutHandler(&stubCheckoutClient{}, &stubCartStore{}, &stubSessionStore{}, zerolog.Nop())

	c, _ := newTestContext(t, http.MethodPost, "/checkout/payment", `{"nonce":"fake-nonce"}`)
	err := h.SubmitPayment(c)

	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 HTTPError, got %v", err)
	}
}

func TestCheckoutHandler_SubmitPayment_EmptyCart(t *testing.T) {
	h := NewCheckoutHandler(&stubCheckoutClient{}, &stubCartStore{}, loggedIn(), zerolog.Nop())

	c, _ := newTestContext(t, http.MethodPost, "/checkout/payment", `{"nonce":"fake-nonce"}`)
	err := h.SubmitPayment(c)

	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 HTTPError, got %v", err)
	}
}

func TestCheckoutHandler_Orders_PassesToken(t *testing.T) {
	checkout := &stubCheckoutClient{orders: []domain.Order{{ID: "o1", Status: "Processing"}}}
	h := NewCheckoutHandler(checkout, &stubCartStore{}, loggedIn(), zerolog.Nop())

	c, rec := newTestContext(t, http.MethodGet, "/orders", "")
	if err := h.Orders(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if checkout.gotToken != "tok-1" {
		t.Fatalf("backend got token %q", checkout.gotToken)
	}
}
