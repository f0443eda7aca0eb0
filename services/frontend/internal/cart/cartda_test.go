package cart

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/ramtechno90/Menu-app/services/frontend/internal/remote"
)

const storedCart = `[
	{"id": 12, "name": "Cola", "price": 1.5, "cart_item_id": "f3a9", "quantity": 2, "customization": ""},
	{"id": 4, "name": "Burger", "price": 8.5, "cart_item_id": "b7c1", "quantity": 1, "customization": "no onions"}
]`

const placedOrder = `{
	"_id": "65f0c0ffee",
	"order_id": "BISTRO-9F8E7D",
	"client_ip": "10.0.0.7",
	"timestamp": "2025-01-01T10:00:00.123000+00:00",
	"status_update_timestamp": "2025-01-01T10:00:00.123000+00:00",
	"items": [{"id": 12, "name": "Cola", "price": 1.5, "quantity": 2, "customization": "", "cart_item_id": "f3a9"}],
	"status": "Pending",
	"total_cost": 3.0
}`

func testClient(url string) *remote.Client {
	return remote.NewClient(url, remote.Options{Timeout: time.Second, ReadRetries: 1, RetryDelay: time.Millisecond})
}

// countingStore answers every request with the same status and body.
func countingStore(t *testing.T, status int, reply string, inspect func(r *http.Request, body []byte)) (*int32, string) {
	t.Helper()
	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		body, _ := io.ReadAll(r.Body)
		if inspect != nil {
			inspect(r, body)
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = io.WriteString(w, reply)
	}))
	t.Cleanup(srv.Close)
	return &hits, srv.URL
}

func TestCartDataAccessNotConfigured(t *testing.T) {
	ctx := context.Background()
	da := NewCartDataAccess(nil)

	if _, err := da.GetCart(ctx); err == nil {
		t.Error("GetCart() should fail without a client")
	}
	if err := da.AddItem(ctx, Item{ID: 1, Name: "Cola"}); err == nil {
		t.Error("AddItem() should fail without a client")
	}
	if err := da.SetQuantity(ctx, "a", 2); err == nil {
		t.Error("SetQuantity() should fail without a client")
	}
	if err := da.SetCustomization(ctx, "a", "x"); err == nil {
		t.Error("SetCustomization() should fail without a client")
	}
	if err := da.DeleteLine(ctx, "a"); err == nil {
		t.Error("DeleteLine() should fail without a client")
	}
	if _, err := da.PlaceOrder(ctx); err == nil {
		t.Error("PlaceOrder() should fail without a client")
	}
}

func TestCartDataAccessRejectsZeroQuantity(t *testing.T) {
	hits, url := countingStore(t, http.StatusOK, `{}`, nil)
	da := NewCartDataAccess(testClient(url))

	err := da.SetQuantity(context.Background(), "a", 0)
	if _, ok := err.(ValidationError); !ok {
		t.Errorf("SetQuantity(0) error = %v, want ValidationError", err)
	}
	if atomic.LoadInt32(hits) != 0 {
		t.Error("a rejected quantity should not reach the store")
	}
}

func TestLinePath(t *testing.T) {
	if got := linePath("a b/c"); got != "/cart/item/a%20b%2Fc" {
		t.Errorf("linePath() = %q", got)
	}
}

func TestCartDataAccessGetCart(t *testing.T) {
	t.Run("storedLines", func(t *testing.T) {
		_, url := countingStore(t, http.StatusOK, storedCart, func(r *http.Request, _ []byte) {
			if r.Method != http.MethodGet || r.URL.Path != "/cart" {
				t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
			}
		})

		lines, err := NewCartDataAccess(testClient(url)).GetCart(context.Background())
		if err != nil {
			t.Fatalf("GetCart() error = %v", err)
		}
		if len(lines) != 2 || lines[0].ID != "f3a9" || lines[0].MenuItemID != 12 || lines[0].Quantity != 2 {
			t.Fatalf("lines = %+v", lines)
		}
		if lines[1].Customization != "no onions" {
			t.Errorf("customization = %q", lines[1].Customization)
		}
		if lines.Total().StringFixed(2) != "11.50" || lines.Count() != 3 {
			t.Errorf("Total() = %s, Count() = %d", lines.Total().StringFixed(2), lines.Count())
		}
	})

	t.Run("emptyCart", func(t *testing.T) {
		_, url := countingStore(t, http.StatusOK, `[]`, nil)

		lines, err := NewCartDataAccess(testClient(url)).GetCart(context.Background())
		if err != nil {
			t.Fatalf("GetCart() error = %v", err)
		}
		if lines == nil || len(lines) != 0 {
			t.Errorf("GetCart() = %#v, want empty non-nil", lines)
		}
	})
}

func TestCartDataAccessWritePayloads(t *testing.T) {
	tests := []struct {
		name       string
		write      func(*CartDataAccess) error
		wantMethod string
		wantPath   string
		wantBody   map[string]interface{}
	}{
		{
			name:       "addItem",
			write:      func(da *CartDataAccess) error { return da.AddItem(context.Background(), Item{ID: 12, Name: "Cola", Price: 1.5}) },
			wantMethod: http.MethodPost,
			wantPath:   "/cart/add",
			wantBody:   map[string]interface{}{"id": float64(12), "name": "Cola", "price": 1.5},
		},
		{
			name:       "setQuantity",
			write:      func(da *CartDataAccess) error { return da.SetQuantity(context.Background(), "f3a9", 3) },
			wantMethod: http.MethodPut,
			wantPath:   "/cart/item/f3a9",
			wantBody:   map[string]interface{}{"quantity": float64(3)},
		},
		{
			name:       "setCustomization",
			write:      func(da *CartDataAccess) error { return da.SetCustomization(context.Background(), "f3a9", "extra ice") },
			wantMethod: http.MethodPut,
			wantPath:   "/cart/item/f3a9",
			wantBody:   map[string]interface{}{"customization": "extra ice"},
		},
		{
			name:       "deleteLine",
			write:      func(da *CartDataAccess) error { return da.DeleteLine(context.Background(), "f3a9") },
			wantMethod: http.MethodDelete,
			wantPath:   "/cart/item/f3a9",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, url := countingStore(t, http.StatusOK, `{"message":"ok"}`, func(r *http.Request, body []byte) {
				if r.Method != tt.wantMethod || r.URL.Path != tt.wantPath {
					t.Errorf("request = %s %s, want %s %s", r.Method, r.URL.Path, tt.wantMethod, tt.wantPath)
				}
				if tt.wantBody == nil {
					return
				}
				var got map[string]interface{}
				if err := json.Unmarshal(body, &got); err != nil {
					t.Errorf("decode body: %v", err)
					return
				}
				for k, v := range tt.wantBody {
					if got[k] != v {
						t.Errorf("body[%s] = %v, want %v", k, got[k], v)
					}
				}
				if len(got) != len(tt.wantBody) {
					t.Errorf("body = %v, want only %v", got, tt.wantBody)
				}
			})

			if err := tt.write(NewCartDataAccess(testClient(url))); err != nil {
				t.Fatalf("write error = %v", err)
			}
		})
	}
}

func TestCartDataAccessPlaceOrder(t *testing.T) {
	_, url := countingStore(t, http.StatusOK, placedOrder, nil)

	placed, err := NewCartDataAccess(testClient(url)).PlaceOrder(context.Background())
	if err != nil {
		t.Fatalf("PlaceOrder() error = %v", err)
	}
	if placed.ID != "BISTRO-9F8E7D" || placed.Timestamp.IsZero() {
		t.Errorf("PlaceOrder() = %+v", placed)
	}
	if placed.Total().StringFixed(2) != "3.00" {
		t.Errorf("Total() = %s", placed.Total().StringFixed(2))
	}
}

func TestCartDataAccessFailedWritesAreSentOnce(t *testing.T) {
	tests := []struct {
		name  string
		write func(*CartDataAccess) error
	}{
		{name: "addItem", write: func(da *CartDataAccess) error { return da.AddItem(context.Background(), Item{ID: 12, Name: "Cola", Price: 1.5}) }},
		{name: "setQuantity", write: func(da *CartDataAccess) error { return da.SetQuantity(context.Background(), "f3a9", 2) }},
		{name: "deleteLine", write: func(da *CartDataAccess) error { return da.DeleteLine(context.Background(), "f3a9") }},
		{name: "placeOrder", write: func(da *CartDataAccess) error { _, err := da.PlaceOrder(context.Background()); return err }},
	}

	for _, tt := range tests {
		for _, status := range []int{http.StatusInternalServerError, http.StatusBadGateway} {
			t.Run(fmt.Sprintf("%s%d", tt.name, status), func(t *testing.T) {
				hits, url := countingStore(t, status, `{"detail":"boom"}`, nil)

				if err := tt.write(NewCartDataAccess(testClient(url))); err == nil {
					t.Fatal("write should surface the store failure")
				}
				if n := atomic.LoadInt32(hits); n != 1 {
					t.Errorf("requests = %d, want 1", n)
				}
			})
		}
	}
}

func TestMutatorAddAgainstStoreIsSentOnce(t *testing.T) {
	hits, url := countingStore(t, http.StatusBadGateway, `{"detail":"upstream"}`, nil)
	m := NewMutator(NewCartDataAccess(testClient(url)), nil)

	if err := m.Add(context.Background(), Item{ID: 12, Name: "Cola", Price: 1.5}); err == nil {
		t.Fatal("Add() should fail when the store fails")
	}
	if n := atomic.LoadInt32(hits); n != 1 {
		t.Errorf("requests = %d, want 1", n)
	}
}
