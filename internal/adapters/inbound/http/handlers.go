package httpin

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"drinkstand/internal/core/domain"
	"drinkstand/internal/core/service"
	"drinkstand/internal/ports/inbound"
)

// Handlers serves the JSON API and the CSV exports. Every cart and menu
// mutation goes through the dispatcher, same as the UI.
type Handlers struct {
	menu         inbound.MenuUseCase
	orders       inbound.OrderUseCase
	dispatch     *service.Dispatcher
	shareBaseURL string
}

func NewHandlers(menu inbound.MenuUseCase, orders inbound.OrderUseCase, d *service.Dispatcher, shareBaseURL string) *Handlers {
	return &Handlers{
		menu:         menu,
		orders:       orders,
		dispatch:     d,
		shareBaseURL: shareBaseURL,
	}
}

type apiError struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

type cartResponse struct {
	Items domain.CartSummary `json:"items"`
	Total int                `json:"total"`
}

type orderResponse struct {
	Number    int               `json:"order_number"`
	Label     string            `json:"label"`
	Date      string            `json:"date"`
	Items     []domain.LineItem `json:"items"`
	Total     int               `json:"total"`
	ShareText string            `json:"share_text,omitempty"`
	ShareLink string            `json:"share_link,omitempty"`
}

type drinkRequest struct {
	Drink string `json:"drink"`
}

type loginRequest struct {
	Pin string `json:"pin"`
}

func (h *Handlers) health(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (h *Handlers) login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, err, "invalid JSON body")
		return
	}
	ev := h.dispatch.Dispatch(r.Context(), sessionFrom(r), service.Command{Kind: service.CmdLogin, Arg: req.Pin})
	h.writeEvent(w, ev, map[string]string{"message": ev.Message})
}

func (h *Handlers) logout(w http.ResponseWriter, r *http.Request) {
	ev := h.dispatch.Dispatch(r.Context(), sessionFrom(r), service.Command{Kind: service.CmdLogout})
	h.writeEvent(w, ev, map[string]string{"message": ev.Message})
}

func (h *Handlers) getMenu(w http.ResponseWriter, r *http.Request) {
	menu, err := h.menu.Menu(r.Context())
	if err != nil {
		writeError(w, err, "could not load the menu")
		return
	}
	if menu == nil {
		menu = domain.Menu{}
	}
	writeJSON(w, map[string]any{"drinks": menu}, http.StatusOK)
}

func (h *Handlers) addDrink(w http.ResponseWriter, r *http.Request) {
	var req drinkRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, err, "invalid JSON body")
		return
	}
	ev := h.dispatch.Dispatch(r.Context(), sessionFrom(r), service.Command{Kind: service.CmdAddDrink, Arg: req.Drink})
	if !ev.OK() {
		writeError(w, ev.Err, ev.Message)
		return
	}
	menu, err := h.menu.Menu(r.Context())
	if err != nil {
		writeError(w, err, "could not load the menu")
		return
	}
	writeJSON(w, map[string]any{"message": ev.Message, "drinks": menu}, http.StatusCreated)
}

func (h *Handlers) getCart(w http.ResponseWriter, r *http.Request) {
	_, summary := sessionState(sessionFrom(r))
	writeJSON(w, newCartResponse(summary), http.StatusOK)
}

func (h *Handlers) addItem(w http.ResponseWriter, r *http.Request) {
	var req drinkRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, err, "invalid JSON body")
		return
	}
	menu, err := h.menu.Menu(r.Context())
	if err != nil {
		writeError(w, err, "could not load the menu")
		return
	}
	if !menu.Contains(req.Drink) {
		writeError(w, domain.ErrNotFound, fmt.Sprintf("%q is not on the menu", req.Drink))
		return
	}
	h.cartCommand(w, r, service.Command{Kind: service.CmdAddItem, Arg: req.Drink})
}

func (h *Handlers) undoLast(w http.ResponseWriter, r *http.Request) {
	h.cartCommand(w, r, service.Command{Kind: service.CmdUndoLast})
}

func (h *Handlers) clearCart(w http.ResponseWriter, r *http.Request) {
	h.cartCommand(w, r, service.Command{Kind: service.CmdClearCart})
}

func (h *Handlers) cartCommand(w http.ResponseWriter, r *http.Request, cmd service.Command) {
	sess := sessionFrom(r)
	ev := h.dispatch.Dispatch(r.Context(), sess, cmd)
	if !ev.OK() {
		writeError(w, ev.Err, ev.Message)
		return
	}
	_, summary := sessionState(sess)
	writeJSON(w, newCartResponse(summary), http.StatusOK)
}

func (h *Handlers) saveOrder(w http.ResponseWriter, r *http.Request) {
	ev := h.dispatch.Dispatch(r.Context(), sessionFrom(r), service.Command{Kind: service.CmdSaveOrder})
	if !ev.OK() {
		writeError(w, ev.Err, ev.Message)
		return
	}
	writeJSON(w, h.newOrderResponse(*ev.Order, true), http.StatusCreated)
}

func (h *Handlers) listOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.orders.Orders(r.Context())
	if err != nil {
		writeError(w, err, "could not read previous orders")
		return
	}
	out := make([]orderResponse, 0, len(orders))
	for _, o := range orders {
		out = append(out, h.newOrderResponse(o, false))
	}
	writeJSON(w, map[string]any{"orders": out}, http.StatusOK)
}

func (h *Handlers) latestOrder(w http.ResponseWriter, r *http.Request) {
	order, ok, err := h.orders.Latest(r.Context())
	if err != nil {
		writeError(w, err, "could not read previous orders")
		return
	}
	if !ok {
		writeError(w, domain.ErrNotFound, "no orders saved yet")
		return
	}
	writeJSON(w, h.newOrderResponse(order, true), http.StatusOK)
}

func (h *Handlers) stats(w http.ResponseWriter, r *http.Request) {
	st, err := h.orders.Stats(r.Context())
	if err != nil {
		writeError(w, err, "could not read previous orders")
		return
	}
	writeJSON(w, st, http.StatusOK)
}

func (h *Handlers) exportCart(w http.ResponseWriter, r *http.Request) {
	_, summary := sessionState(sessionFrom(r))
	if len(summary) == 0 {
		writeError(w, domain.ErrEmptyCart, "the cart is empty")
		return
	}
	b, err := domain.CartCSV(summary)
	if err != nil {
		writeError(w, err, "could not export the cart")
		return
	}
	writeCSV(w, "drink_cart.csv", b)
}

func (h *Handlers) exportOrders(w http.ResponseWriter, r *http.Request) {
	lines, err := h.orders.LoadAll(r.Context())
	if err != nil {
		writeError(w, err, "could not read previous orders")
		return
	}
	b, err := domain.OrdersCSV(lines)
	if err != nil {
		writeError(w, err, "could not export previous orders")
		return
	}
	writeCSV(w, "previous_orders.csv", b)
}

func (h *Handlers) writeEvent(w http.ResponseWriter, ev service.Event, body any) {
	if !ev.OK() {
		writeError(w, ev.Err, ev.Message)
		return
	}
	writeJSON(w, body, http.StatusOK)
}

func (h *Handlers) newOrderResponse(o domain.Order, share bool) orderResponse {
	resp := orderResponse{
		Number: o.Number,
		Label:  o.Label(),
		Date:   o.Date.UTC().Format(domain.DateLayout),
		Items:  o.Items,
		Total:  o.TotalQuantity(),
	}
	if share {
		resp.ShareText = domain.ShareText(o)
		resp.ShareLink = domain.ShareLink(h.shareBaseURL, o)
	}
	return resp
}

func newCartResponse(s domain.CartSummary) cartResponse {
	if s == nil {
		s = domain.CartSummary{}
	}
	return cartResponse{Items: s, Total: s.Total()}
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<16))
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrEmptyInput, err)
	}
	return nil
}

// statusOf maps a domain error to an HTTP status and a stable error code.
func statusOf(err error) (int, string) {
	switch {
	case errors.Is(err, domain.ErrEmptyInput):
		return http.StatusBadRequest, "empty_input"
	case errors.Is(err, domain.ErrAuthFailure):
		return http.StatusUnauthorized, "auth_failure"
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, "not_found"
	case errors.Is(err, domain.ErrDuplicateDrink):
		return http.StatusConflict, "duplicate_drink"
	case errors.Is(err, domain.ErrEmptyCart), errors.Is(err, domain.ErrEmptyOrder):
		return http.StatusConflict, "empty_cart"
	default:
		return http.StatusInternalServerError, "internal"
	}
}

func writeError(w http.ResponseWriter, err error, msg string) {
	status, code := statusOf(err)
	writeJSON(w, apiError{Error: code, Message: msg}, status)
}

func writeJSON(w http.ResponseWriter, v any, status int) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(v)
}

func writeCSV(w http.ResponseWriter, filename string, b []byte) {
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(b)
}
