package httpin

import (
	"net/http"

	"drinkstand/internal/core/session"
)

func NewMux(h *Handlers, ui *UI, sessions *session.Store) http.Handler {
	mux := http.NewServeMux()

	s := func(fn http.HandlerFunc) http.HandlerFunc { return withSession(sessions, fn) }
	end := func(fn http.HandlerFunc) http.HandlerFunc { return withSession(sessions, endSession(sessions, fn)) }
	auth := func(fn http.HandlerFunc) http.HandlerFunc { return withSession(sessions, requireAuth(fn)) }

	mux.HandleFunc("GET /health", h.health)

	mux.HandleFunc("POST /api/session", s(h.login))
	mux.HandleFunc("DELETE /api/session", end(h.logout))
	mux.HandleFunc("GET /api/menu", auth(h.getMenu))
	mux.HandleFunc("POST /api/menu", s(h.addDrink))
	mux.HandleFunc("GET /api/cart", auth(h.getCart))
	mux.HandleFunc("POST /api/cart/items", auth(h.addItem))
	mux.HandleFunc("DELETE /api/cart/items/last", s(h.undoLast))
	mux.HandleFunc("DELETE /api/cart", s(h.clearCart))
	mux.HandleFunc("POST /api/orders", s(h.saveOrder))
	mux.HandleFunc("GET /api/orders", auth(h.listOrders))
	mux.HandleFunc("GET /api/orders/latest", auth(h.latestOrder))
	mux.HandleFunc("GET /api/stats", auth(h.stats))

	mux.HandleFunc("GET /export/cart.csv", auth(h.exportCart))
	mux.HandleFunc("GET /export/orders.csv", auth(h.exportOrders))

	mux.HandleFunc("GET /", s(ui.Index))
	mux.HandleFunc("POST /ui/login", s(ui.Login))
	mux.HandleFunc("POST /ui/logout", end(ui.Logout))
	mux.HandleFunc("POST /ui/menu/add", s(ui.AddDrink))
	mux.HandleFunc("POST /ui/cart/add", s(ui.AddItem))
	mux.HandleFunc("POST /ui/cart/undo", s(ui.UndoLast))
	mux.HandleFunc("POST /ui/cart/clear", s(ui.ClearCart))
	mux.HandleFunc("POST /ui/orders/save", s(ui.SaveOrder))
	mux.HandleFunc("GET /ui/orders", s(ui.Orders))

	return withLogging(mux)
}
