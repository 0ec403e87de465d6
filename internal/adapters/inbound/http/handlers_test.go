package httpin

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"drinkstand/internal/adapters/outbound/memory"
	"drinkstand/internal/core/domain"
	"drinkstand/internal/core/service"
	"drinkstand/internal/core/session"
)

type testClient struct {
	t       *testing.T
	h       http.Handler
	cookies []*http.Cookie
}

func newTestClient(t *testing.T) (*testClient, *memory.OrderLog) {
	t.Helper()
	orderLog := memory.NewOrderLog()
	menu := service.NewMenuService(memory.NewMenuRepository())
	orders := service.NewOrderService(orderLog, nil)
	d := service.NewDispatcher(menu, orders, "1234")

	h := NewHandlers(menu, orders, d, "https://wa.me")
	ui := NewUI(menu, orders, d, "https://wa.me", 10)
	return &testClient{t: t, h: NewMux(h, ui, session.NewStore(time.Hour))}, orderLog
}

func (c *testClient) do(method, path, body string) *httptest.ResponseRecorder {
	c.t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	for _, ck := range c.cookies {
		req.AddCookie(ck)
	}
	rec := httptest.NewRecorder()
	c.h.ServeHTTP(rec, req)
	if set := rec.Result().Cookies(); len(set) > 0 {
		c.cookies = set
	}
	return rec
}

func (c *testClient) login() {
	c.t.Helper()
	if rec := c.do(http.MethodPost, "/api/session", `{"pin":"1234"}`); rec.Code != http.StatusOK {
		c.t.Fatalf("login: %d %s", rec.Code, rec.Body.String())
	}
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(rec.Body.Bytes(), &v); err != nil {
		t.Fatalf("decode %q: %v", rec.Body.String(), err)
	}
	return v
}

func TestHealth(t *testing.T) {
	c, _ := newTestClient(t)
	rec := c.do(http.MethodGet, "/health", "")
	if rec.Code != http.StatusOK || rec.Body.String() != "ok" {
		t.Fatalf("health: %d %q", rec.Code, rec.Body.String())
	}
}

func TestAPIRequiresPIN(t *testing.T) {
	c, _ := newTestClient(t)

	for _, path := range []string{"/api/menu", "/api/cart", "/api/orders", "/export/orders.csv"} {
		if rec := c.do(http.MethodGet, path, ""); rec.Code != http.StatusUnauthorized {
			t.Errorf("GET %s: got %d, want 401", path, rec.Code)
		}
	}

	rec := c.do(http.MethodPost, "/api/session", `{"pin":"0000"}`)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("wrong pin: %d", rec.Code)
	}
	if got := decode[apiError](t, rec); got.Error != "auth_failure" || got.Message != "Incorrect PIN. Try again." {
		t.Fatalf("wrong pin body: %+v", got)
	}

	rec = c.do(http.MethodPost, "/api/orders", "")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("save while locked: %d", rec.Code)
	}
}

func TestOrderFlow(t *testing.T) {
	c, orderLog := newTestClient(t)
	c.login()

	for _, d := range []string{"Sprite", "Coca Cola", "Sprite"} {
		if rec := c.do(http.MethodPost, "/api/cart/items", `{"drink":"`+d+`"}`); rec.Code != http.StatusOK {
			t.Fatalf("add %s: %d %s", d, rec.Code, rec.Body.String())
		}
	}

	cart := decode[cartResponse](t, c.do(http.MethodGet, "/api/cart", ""))
	if cart.Total != 3 || len(cart.Items) != 2 || cart.Items[0] != (domain.LineItem{Drink: "Sprite", Quantity: 2}) {
		t.Fatalf("cart: %+v", cart)
	}

	rec := c.do(http.MethodGet, "/export/cart.csv", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("cart export: %d", rec.Code)
	}
	if got := rec.Header().Get("Content-Disposition"); got != `attachment; filename="drink_cart.csv"` {
		t.Fatalf("disposition: %q", got)
	}
	if got := rec.Body.String(); got != "Drink,Quantity\nSprite,2\nCoca Cola,1\n" {
		t.Fatalf("cart csv: %q", got)
	}

	rec = c.do(http.MethodPost, "/api/orders", "")
	if rec.Code != http.StatusCreated {
		t.Fatalf("save: %d %s", rec.Code, rec.Body.String())
	}
	saved := decode[orderResponse](t, rec)
	if saved.Number != 1 || saved.Total != 3 || !strings.HasPrefix(saved.ShareLink, "https://wa.me/send?text=Order%201") {
		t.Fatalf("saved: %+v", saved)
	}
	if orderLog.Len() != 2 {
		t.Fatalf("log rows: %d", orderLog.Len())
	}

	cart = decode[cartResponse](t, c.do(http.MethodGet, "/api/cart", ""))
	if cart.Total != 0 {
		t.Fatalf("cart not cleared: %+v", cart)
	}

	rec = c.do(http.MethodPost, "/api/orders", "")
	if rec.Code != http.StatusConflict {
		t.Fatalf("empty save: %d", rec.Code)
	}

	latest := decode[orderResponse](t, c.do(http.MethodGet, "/api/orders/latest", ""))
	if latest.Label != "Order 1" || latest.ShareText == "" {
		t.Fatalf("latest: %+v", latest)
	}

	rec = c.do(http.MethodGet, "/export/orders.csv", "")
	if !strings.HasPrefix(rec.Body.String(), "OrderNumber,Date,Drink,Quantity\n1,") {
		t.Fatalf("orders csv: %q", rec.Body.String())
	}
}

func TestCartEdits(t *testing.T) {
	c, _ := newTestClient(t)
	c.login()

	if rec := c.do(http.MethodDelete, "/api/cart/items/last", ""); rec.Code != http.StatusConflict {
		t.Fatalf("undo on empty cart: %d", rec.Code)
	}
	if rec := c.do(http.MethodPost, "/api/cart/items", `{"drink":"Root Beer"}`); rec.Code != http.StatusNotFound {
		t.Fatalf("unknown drink: %d", rec.Code)
	}

	c.do(http.MethodPost, "/api/cart/items", `{"drink":"Pepsi"}`)
	c.do(http.MethodPost, "/api/cart/items", `{"drink":"Fanta"}`)
	cart := decode[cartResponse](t, c.do(http.MethodDelete, "/api/cart/items/last", ""))
	if cart.Total != 1 || cart.Items[0].Drink != "Pepsi" {
		t.Fatalf("after undo: %+v", cart)
	}

	cart = decode[cartResponse](t, c.do(http.MethodDelete, "/api/cart", ""))
	if cart.Total != 0 || len(cart.Items) != 0 {
		t.Fatalf("after clear: %+v", cart)
	}
}

func TestAddDrinkStatuses(t *testing.T) {
	c, _ := newTestClient(t)
	c.login()

	tests := []struct {
		body string
		want int
	}{
		{`{"drink":"  Root Beer "}`, http.StatusCreated},
		{`{"drink":"Root Beer"}`, http.StatusConflict},
		{`{"drink":"   "}`, http.StatusBadRequest},
		{`not json`, http.StatusBadRequest},
	}
	for _, tt := range tests {
		if rec := c.do(http.MethodPost, "/api/menu", tt.body); rec.Code != tt.want {
			t.Errorf("POST /api/menu %s: got %d, want %d", tt.body, rec.Code, tt.want)
		}
	}

	got := decode[map[string][]string](t, c.do(http.MethodGet, "/api/menu", ""))
	drinks := got["drinks"]
	if len(drinks) != len(domain.DefaultDrinks())+1 || drinks[len(drinks)-1] != "Root Beer" {
		t.Fatalf("menu: %v", drinks)
	}
}

func TestLogoutDropsCart(t *testing.T) {
	c, _ := newTestClient(t)
	c.login()
	c.do(http.MethodPost, "/api/cart/items", `{"drink":"Pepsi"}`)

	if rec := c.do(http.MethodDelete, "/api/session", ""); rec.Code != http.StatusOK {
		t.Fatalf("logout: %d", rec.Code)
	}
	if rec := c.do(http.MethodGet, "/api/cart", ""); rec.Code != http.StatusUnauthorized {
		t.Fatalf("cart after logout: %d", rec.Code)
	}
	c.login()
	if cart := decode[cartResponse](t, c.do(http.MethodGet, "/api/cart", "")); cart.Total != 0 {
		t.Fatalf("cart survived logout: %+v", cart)
	}
}

func TestSessionsAreIsolated(t *testing.T) {
	a, _ := newTestClient(t)
	a.login()
	a.do(http.MethodPost, "/api/cart/items", `{"drink":"Pepsi"}`)

	b := &testClient{t: t, h: a.h}
	b.login()
	if cart := decode[cartResponse](t, b.do(http.MethodGet, "/api/cart", "")); cart.Total != 0 {
		t.Fatalf("second session sees first cart: %+v", cart)
	}
}
