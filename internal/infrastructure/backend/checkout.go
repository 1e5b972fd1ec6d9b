package backend

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/kartify/storefront-agent/internal/core/domain"
)

// PaymentToken fetches the client token the payment widget is initialised
// with. The gateway itself stays opaque to the agent.
func (c *Client) PaymentToken(ctx context.Context) (string, error) {
	var resp struct {
		ClientToken string `json:"clientToken"`
	}
	if err := c.do(ctx, http.MethodGet, "/product/braintree/token", "", nil, &resp); err != nil {
		return "", err
	}
	if resp.ClientToken == "" {
		return "", fmt.Errorf("backend: empty payment client token")
	}
	return resp.ClientToken, nil
}

// SubmitPayment sends the gateway nonce together with the cart snapshot.
// The cart itself is cleared by the caller, and only after this succeeds.
func (c *Client) SubmitPayment(ctx context.Context, token, nonce string, items []domain.CartItem) error {
	body := struct {
		Nonce string             `json:"nonce"`
		Cart  []paymentCartEntry `json:"cart"`
	}{Nonce: nonce, Cart: paymentCart(items)}

	var resp struct {
		OK      bool   `json:"ok"`
		Message string `json:"message"`
	}
	if err := c.do(ctx, http.MethodPost, "/product/braintree/payment", token, body, &resp); err != nil {
		return err
	}
	if !resp.OK {
		return fmt.Errorf("backend: payment rejected: %s", resp.Message)
	}
	return nil
}

// Orders lists the authenticated shopper's order history.
func (c *Client) Orders(ctx context.Context, token string) ([]domain.Order, error) {
	return c.fetchOrders(ctx, "/auth/orders", token)
}

// AllOrders lists every order in the store. Admin-only on the backend side.
func (c *Client) AllOrders(ctx context.Context, token string) ([]domain.Order, error) {
	return c.fetchOrders(ctx, "/auth/all-orders", token)
}

// UpdateOrderStatus moves an order to a new status. Admin-only on the
// backend side.
func (c *Client) UpdateOrderStatus(ctx context.Context, token, orderID, status string) error {
	body := map[string]string{"status": status}
	err := c.do(ctx, http.MethodPut, "/auth/order-status/"+url.PathEscape(orderID), token, body, nil)
	if isStatus(err, http.StatusNotFound) {
		return domain.ErrNotFound
	}
	return err
}

func (c *Client) fetchOrders(ctx context.Context, path, token string) ([]domain.Order, error) {
	var resp []wireOrder
	if err := c.do(ctx, http.MethodGet, path, token, nil, &resp); err != nil {
		return nil, err
	}

	out := make([]domain.Order, 0, len(resp))
	for _, wo := range resp {
		out = append(out, domain.Order{
			ID:        wo.ID,
			Status:    wo.Status,
			Paid:      wo.Payment.Success,
			CreatedAt: parseOrderTime(wo.Created),
			Products:  c.toProducts(wo.Products),
		})
	}
	return out, nil
}
