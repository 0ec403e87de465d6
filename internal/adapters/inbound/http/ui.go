package httpin

import (
	"context"
	"errors"
	"html/template"
	"log"
	"net/http"
	"strconv"

	"drinkstand/internal/core/domain"
	"drinkstand/internal/core/service"
	"drinkstand/internal/core/session"
	"drinkstand/internal/ports/inbound"

	"github.com/starfederation/datastar-go/datastar"
)

// UI serves the page and the datastar endpoints behind its buttons. Each
// endpoint runs one command and patches the flash line plus whatever
// fragments the command changed.
type UI struct {
	menu         inbound.MenuUseCase
	orders       inbound.OrderUseCase
	dispatch     *service.Dispatcher
	tmpl         *template.Template
	shareBaseURL string
	historyLimit int
}

func NewUI(menu inbound.MenuUseCase, orders inbound.OrderUseCase, d *service.Dispatcher, shareBaseURL string, historyLimit int) *UI {
	return &UI{
		menu:         menu,
		orders:       orders,
		dispatch:     d,
		tmpl:         parseTemplates(),
		shareBaseURL: shareBaseURL,
		historyLimit: historyLimit,
	}
}

type uiSignals struct {
	Pin   string `json:"pin"`
	Drink string `json:"drink"`
}

func (u *UI) Index(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	vm, err := u.page(r.Context(), sessionFrom(r), flashVM{})
	if err != nil {
		log.Printf("[ui] index: %v", err)
		vm.Flash = flashVM{Severity: service.SeverityError, Message: "Could not load your data."}
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := u.tmpl.ExecuteTemplate(w, "index.html", vm); err != nil {
		http.Error(w, "template error", http.StatusInternalServerError)
		return
	}
}

func (u *UI) Login(w http.ResponseWriter, r *http.Request) {
	signals := &uiSignals{}
	if err := datastar.ReadSignals(r, signals); err != nil {
		sse := datastar.NewSSE(w, r)
		u.flash(sse, flashVM{Severity: service.SeverityError, Message: "Bad request: invalid signals"})
		return
	}
	sess := sessionFrom(r)
	ev := u.dispatch.Dispatch(r.Context(), sess, service.Command{Kind: service.CmdLogin, Arg: signals.Pin})

	sse := datastar.NewSSE(w, r)
	u.flash(sse, flashOf(ev))
	_ = sse.PatchSignals([]byte(`{"pin":""}`))
	if !ev.OK() {
		return
	}
	u.patchApp(r.Context(), sse, sess)
}

func (u *UI) Logout(w http.ResponseWriter, r *http.Request) {
	ev := u.dispatch.Dispatch(r.Context(), sessionFrom(r), service.Command{Kind: service.CmdLogout})
	sse := datastar.NewSSE(w, r)
	u.flash(sse, flashOf(ev))
	u.patch(sse, "gate", nil)
}

func (u *UI) AddDrink(w http.ResponseWriter, r *http.Request) {
	signals := &uiSignals{}
	if err := datastar.ReadSignals(r, signals); err != nil {
		sse := datastar.NewSSE(w, r)
		u.flash(sse, flashVM{Severity: service.SeverityError, Message: "Bad request: invalid signals"})
		return
	}
	ev := u.dispatch.Dispatch(r.Context(), sessionFrom(r), service.Command{Kind: service.CmdAddDrink, Arg: signals.Drink})

	sse := datastar.NewSSE(w, r)
	if u.gated(sse, ev) {
		return
	}
	u.flash(sse, flashOf(ev))
	if !ev.OK() {
		return
	}
	_ = sse.PatchSignals([]byte(`{"drink":""}`))
	menu, err := u.menu.Menu(r.Context())
	if err != nil {
		log.Printf("[ui] menu: %v", err)
		return
	}
	vm := newMenuVM(menu)
	u.patch(sse, "menu", vm)
	u.patch(sse, "taps", vm)
}

// AddItem adds the drink at menu position ?i= to the cart.
func (u *UI) AddItem(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	sess := sessionFrom(r)

	var cmd service.Command
	menu, err := u.menu.Menu(ctx)
	i, convErr := strconv.Atoi(r.URL.Query().Get("i"))
	switch {
	case err != nil:
		log.Printf("[ui] menu: %v", err)
	case convErr != nil || i < 0 || i >= len(menu):
		err = domain.ErrNotFound
	default:
		cmd = service.Command{Kind: service.CmdAddItem, Arg: menu[i]}
	}

	sse := datastar.NewSSE(w, r)
	if err != nil {
		u.flash(sse, flashVM{Severity: service.SeverityError, Message: "That drink is not on the menu."})
		return
	}
	u.cartCommand(ctx, sse, sess, cmd)
}

func (u *UI) UndoLast(w http.ResponseWriter, r *http.Request) {
	sse := datastar.NewSSE(w, r)
	u.cartCommand(r.Context(), sse, sessionFrom(r), service.Command{Kind: service.CmdUndoLast})
}

func (u *UI) ClearCart(w http.ResponseWriter, r *http.Request) {
	sse := datastar.NewSSE(w, r)
	u.cartCommand(r.Context(), sse, sessionFrom(r), service.Command{Kind: service.CmdClearCart})
}

func (u *UI) SaveOrder(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	sess := sessionFrom(r)
	sse := datastar.NewSSE(w, r)
	ev := u.cartCommand(ctx, sse, sess, service.Command{Kind: service.CmdSaveOrder})
	if !ev.OK() {
		return
	}
	hist, err := u.history(ctx)
	if err != nil {
		log.Printf("[ui] history: %v", err)
		return
	}
	u.patch(sse, "history", hist)
}

func (u *UI) Orders(w http.ResponseWriter, r *http.Request) {
	sse := datastar.NewSSE(w, r)
	auth, _ := sessionState(sessionFrom(r))
	if !auth {
		u.flash(sse, flashVM{Severity: service.SeverityError, Message: "Enter the PIN to continue."})
		u.patch(sse, "gate", nil)
		return
	}
	hist, err := u.history(r.Context())
	if err != nil {
		log.Printf("[ui] history: %v", err)
		u.flash(sse, flashVM{Severity: service.SeverityError, Message: "Could not read previous orders."})
		return
	}
	u.patch(sse, "history", hist)
}

func (u *UI) cartCommand(ctx context.Context, sse *datastar.ServerSentEventGenerator, sess *session.Session, cmd service.Command) service.Event {
	ev := u.dispatch.Dispatch(ctx, sess, cmd)
	if u.gated(sse, ev) {
		return ev
	}
	u.flash(sse, flashOf(ev))
	_, summary := sessionState(sess)
	u.patch(sse, "cart", newCartVM(summary))
	return ev
}

// gated swaps the app for the PIN gate when the session is locked.
func (u *UI) gated(sse *datastar.ServerSentEventGenerator, ev service.Event) bool {
	if !errors.Is(ev.Err, domain.ErrAuthFailure) {
		return false
	}
	u.flash(sse, flashOf(ev))
	u.patch(sse, "gate", nil)
	return true
}

func (u *UI) patchApp(ctx context.Context, sse *datastar.ServerSentEventGenerator, sess *session.Session) {
	vm, err := u.page(ctx, sess, flashVM{})
	if err != nil {
		log.Printf("[ui] app: %v", err)
		u.flash(sse, flashVM{Severity: service.SeverityError, Message: "Could not load your data."})
	}
	u.patch(sse, "app", vm)
}

func (u *UI) page(ctx context.Context, sess *session.Session, flash flashVM) (pageVM, error) {
	auth, summary := sessionState(sess)
	vm := pageVM{Authenticated: auth, Flash: flash, Cart: newCartVM(summary)}
	if !auth {
		return vm, nil
	}

	menu, err := u.menu.Menu(ctx)
	if err != nil {
		return vm, err
	}
	vm.Menu = newMenuVM(menu)

	vm.History, err = u.history(ctx)
	return vm, err
}

func (u *UI) history(ctx context.Context) (historyVM, error) {
	lines, err := u.orders.LoadAll(ctx)
	if err != nil {
		return historyVM{}, err
	}
	return newHistoryVM(lines, u.shareBaseURL, u.historyLimit), nil
}

func (u *UI) flash(sse *datastar.ServerSentEventGenerator, f flashVM) {
	u.patch(sse, "flash", f)
}

func (u *UI) patch(sse *datastar.ServerSentEventGenerator, name string, data any) {
	html, err := render(u.tmpl, name, data)
	if err != nil {
		log.Printf("[ui] %v", err)
		return
	}
	if err := sse.PatchElements(html); err != nil {
		log.Printf("[ui] patch %s: %v", name, err)
	}
}

func flashOf(ev service.Event) flashVM {
	return flashVM{Severity: ev.Severity, Message: ev.Message}
}
