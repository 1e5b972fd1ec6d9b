package backend

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/kartify/storefront-agent/internal/core/domain"
)

func testClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return New(srv.URL, 2*time.Second, zerolog.Nop())
}

func TestClient_Login_Success(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/auth/login" {
			t.Fatalf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"success": true,
			"message": "login ok",
			"token": "tok-1",
			"user": {"_id":"u1","name":"Alice","email":"a@example.com","role":1,"phone":"555"}
		}`))
	})

	res, err := client.Login(context.Background(), "a@example.com", "pw")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if res.Token != "tok-1" {
		t.Fatalf("unexpected token %q", res.Token)
	}
	if res.User.Role != domain.RoleAdmin {
		t.Fatalf("role 1 must map to admin, got %q", res.User.Role)
	}
}

func TestClient_Login_Rejected(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})

	if _, err := client.Login(context.Background(), "a@example.com", "bad"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestClient_Login_SuccessFalse(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"success": false, "message": "wrong password"}`))
	})

	if _, err := client.Login(context.Background(), "a@example.com", "bad"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestClient_VerifyAdmin(t *testing.T) {
	t.Run("ok", func(t *testing.T) {
		client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
			if got := r.Header.Get("Authorization"); got != "Bearer tok-1" {
				t.Fatalf("expected bearer header, got %q", got)
			}
			_, _ = w.Write([]byte(`{"ok": true}`))
		})
		if err := client.VerifyAdmin(context.Background(), "tok-1"); err != nil {
			t.Fatalf("VerifyAdmin: %v", err)
		}
	})

	t.Run("negative answer", func(t *testing.T) {
		client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"ok": false}`))
		})
		if err := client.VerifyAdmin(context.Background(), "tok-1"); !errors.Is(err, domain.ErrVerificationDenied) {
			t.Fatalf("expected ErrVerificationDenied, got %v", err)
		}
	})

	t.Run("dead token", func(t *testing.T) {
		client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
		})
		if err := client.VerifyAdmin(context.Background(), "tok-1"); !errors.Is(err, domain.ErrUnauthorized) {
			t.Fatalf("expected ErrUnauthorized, got %v", err)
		}
	})

	t.Run("server error", func(t *testing.T) {
		client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		})
		err := client.VerifyAdmin(context.Background(), "tok-1")
		if err == nil || errors.Is(err, domain.ErrUnauthorized) || errors.Is(err, domain.ErrVerificationDenied) {
			t.Fatalf("expected generic failure, got %v", err)
		}
	})
}

func TestClient_Orders_UnauthorizedMapping(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})

	if _, err := client.Orders(context.Background(), "stale-tok"); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}

func TestClient_Products_MapsPhotoURL(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/product/product-list/1" {
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
		_, _ = w.Write([]byte(`{"products":[{"_id":"p1","name":"Mug","price":9.5,"slug":"mug"}]}`))
	})

	products, err := client.Products(context.Background(), 1)
	if err != nil {
		t.Fatalf("Products: %v", err)
	}
	if len(products) != 1 || products[0].ID != "p1" {
		t.Fatalf("unexpected products: %+v", products)
	}
	if products[0].Photo == "" {
		t.Fatalf("expected photo URL to be derived")
	}
}

func TestClient_SubmitPayment(t *testing.T) {
	t.Run("accepted", func(t *testing.T) {
		client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path != "/product/braintree/payment" {
				t.Fatalf("unexpected path %s", r.URL.Path)
			}
			_, _ = w.Write([]byte(`{"ok": true}`))
		})
		items := []domain.CartItem{{ProductID: "p1", Name: "Mug", Price: 9.5}}
		if err := client.SubmitPayment(context.Background(), "tok-1", "nonce-1", items); err != nil {
			t.Fatalf("SubmitPayment: %v", err)
		}
	})

	t.Run("rejected", func(t *testing.T) {
		client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"ok": false, "message": "card declined"}`))
		})
		if err := client.SubmitPayment(context.Background(), "tok-1", "nonce-1", nil); err == nil {
			t.Fatalf("expected rejection error")
		}
	})
}

func TestClient_PaymentToken(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"clientToken": "ct-1"}`))
	})

	token, err := client.PaymentToken(context.Background())
	if err != nil || token != "ct-1" {
		t.Fatalf("PaymentToken: token=%q err=%v", token, err)
	}
}

func TestClient_ProductBySlug(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path != "/product/get-product/widget-v2" {
				t.Fatalf("unexpected path %s", r.URL.Path)
			}
			_, _ = w.Write([]byte(`{"success": true, "product": {"_id":"p1","name":"Widget","slug":"widget-v2","price":10}}`))
		})
		p, err := client.ProductBySlug(context.Background(), "widget-v2")
		if err != nil {
			t.Fatalf("ProductBySlug: %v", err)
		}
		if p.ID != "p1" || p.Slug != "widget-v2" {
			t.Fatalf("unexpected product %+v", p)
		}
	})

	t.Run("unknown slug", func(t *testing.T) {
		client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		})
		if _, err := client.ProductBySlug(context.Background(), "nope"); !errors.Is(err, domain.ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("success false", func(t *testing.T) {
		client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"success": false}`))
		})
		if _, err := client.ProductBySlug(context.Background(), "nope"); !errors.Is(err, domain.ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
	})
}

func TestClient_CategoryProducts(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/product/product-category/gadgets" {
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
		_, _ = w.Write([]byte(`{
			"category": {"_id":"c1","name":"Gadgets","slug":"gadgets"},
			"products": [{"_id":"p1","name":"Widget","price":10}]
		}`))
	})

	category, products, err := client.CategoryProducts(context.Background(), "gadgets")
	if err != nil {
		t.Fatalf("CategoryProducts: %v", err)
	}
	if category.ID != "c1" || category.Slug != "gadgets" {
		t.Fatalf("unexpected category %+v", category)
	}
	if len(products) != 1 || products[0].ID != "p1" {
		t.Fatalf("unexpected products %+v", products)
	}
}

func TestClient_UpdateCategory(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPut || r.URL.Path != "/category/update-category/c1" {
			t.Fatalf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer tok-1" {
			t.Fatalf("expected bearer header, got %q", got)
		}
		_, _ = w.Write([]byte(`{"success": true, "category": {"_id":"c1","name":"Gizmos","slug":"gizmos"}}`))
	})

	updated, err := client.UpdateCategory(context.Background(), "tok-1", "c1", "Gizmos")
	if err != nil {
		t.Fatalf("UpdateCategory: %v", err)
	}
	if updated.Name != "Gizmos" {
		t.Fatalf("unexpected category %+v", updated)
	}
}

func TestClient_AllOrders(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/auth/all-orders" {
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer tok-1" {
			t.Fatalf("expected bearer header, got %q", got)
		}
		_, _ = w.Write([]byte(`[{"_id":"o1","status":"Processing","payment":{"success":true}}]`))
	})

	orders, err := client.AllOrders(context.Background(), "tok-1")
	if err != nil {
		t.Fatalf("AllOrders: %v", err)
	}
	if len(orders) != 1 || orders[0].ID != "o1" || !orders[0].Paid {
		t.Fatalf("unexpected orders %+v", orders)
	}
}

func TestClient_UpdateOrderStatus(t *testing.T) {
	t.Run("ok", func(t *testing.T) {
		client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodPut || r.URL.Path != "/auth/order-status/o1" {
				t.Fatalf("unexpected request: %s %s", r.Method, r.URL.Path)
			}
			_, _ = w.Write([]byte(`{"success": true}`))
		})
		if err := client.UpdateOrderStatus(context.Background(), "tok-1", "o1", "Shipped"); err != nil {
			t.Fatalf("UpdateOrderStatus: %v", err)
		}
	})

	t.Run("unknown order", func(t *testing.T) {
		client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		})
		if err := client.UpdateOrderStatus(context.Background(), "tok-1", "nope", "Shipped"); !errors.Is(err, domain.ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
	})
}
