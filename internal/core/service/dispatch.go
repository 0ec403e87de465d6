package service

import (
	"context"
	"errors"
	"fmt"
	"log"

	"drinkstand/internal/core/domain"
	"drinkstand/internal/core/session"
	"drinkstand/internal/ports/inbound"
)

type CommandKind string

const (
	CmdLogin     CommandKind = "login"
	CmdLogout    CommandKind = "logout"
	CmdAddDrink  CommandKind = "add_drink"
	CmdAddItem   CommandKind = "add_item"
	CmdUndoLast  CommandKind = "undo_last"
	CmdClearCart CommandKind = "clear_cart"
	CmdSaveOrder CommandKind = "save_order"
)

// Command is one operator action. Arg carries the PIN, the new drink name or
// the drink to add, depending on Kind.
type Command struct {
	Kind CommandKind
	Arg  string
}

type Severity string

const (
	SeverityInfo    Severity = "info"
	SeveritySuccess Severity = "success"
	SeverityWarning Severity = "warning"
	SeverityError   Severity = "error"
)

// Event is what a command produced: a message for the operator, the error
// (if any) and, for a save, the new order.
type Event struct {
	Kind     CommandKind
	Severity Severity
	Message  string
	Err      error
	Order    *domain.Order
}

func (e Event) OK() bool { return e.Err == nil }

// Dispatcher runs commands against a session. The PIN check here is a
// convenience gate, not access control.
type Dispatcher struct {
	menu   inbound.MenuUseCase
	orders inbound.OrderUseCase
	pin    string
}

func NewDispatcher(menu inbound.MenuUseCase, orders inbound.OrderUseCase, pin string) *Dispatcher {
	return &Dispatcher{menu: menu, orders: orders, pin: pin}
}

func (d *Dispatcher) Dispatch(ctx context.Context, sess *session.Session, cmd Command) Event {
	sess.Lock()
	defer sess.Unlock()

	ev := d.run(ctx, sess, cmd)
	ev.Kind = cmd.Kind
	if ev.Err != nil && ev.Severity == SeverityError {
		log.Printf("[dispatch] session=%s cmd=%s err=%v", sess.ID, cmd.Kind, ev.Err)
	}
	return ev
}

func (d *Dispatcher) run(ctx context.Context, sess *session.Session, cmd Command) Event {
	switch cmd.Kind {
	case CmdLogin:
		if cmd.Arg != d.pin {
			return failed(domain.ErrAuthFailure, "Incorrect PIN. Try again.")
		}
		sess.Authenticated = true
		return Event{Severity: SeveritySuccess, Message: "Welcome back!"}
	case CmdLogout:
		sess.Authenticated = false
		sess.Cart.Clear()
		return Event{Severity: SeverityInfo, Message: "Signed out."}
	}

	if !sess.Authenticated {
		return failed(domain.ErrAuthFailure, "Enter the PIN to continue.")
	}

	switch cmd.Kind {
	case CmdAddDrink:
		name, err := d.menu.AddDrink(ctx, cmd.Arg)
		if err != nil {
			return failed(err, menuMessage(name, err))
		}
		return Event{Severity: SeveritySuccess, Message: fmt.Sprintf("%s has been added to the menu!", name)}

	case CmdAddItem:
		sess.Cart.Add(cmd.Arg)
		return Event{Severity: SeveritySuccess, Message: fmt.Sprintf("%s added to the cart!", cmd.Arg)}

	case CmdUndoLast:
		drink, err := sess.Cart.UndoLast()
		if err != nil {
			return failed(err, "Your cart is already empty.")
		}
		return Event{Severity: SeverityInfo, Message: fmt.Sprintf("Removed one %s from the cart.", drink)}

	case CmdClearCart:
		sess.Cart.Clear()
		return Event{Severity: SeverityWarning, Message: "Cart has been cleared!"}

	case CmdSaveOrder:
		order, err := d.orders.SaveOrder(ctx, &sess.Cart)
		if err != nil {
			if errors.Is(err, domain.ErrEmptyOrder) {
				return failed(err, "Your cart is empty. Start adding drinks!")
			}
			return failed(err, "Could not save the order. Your cart was kept.")
		}
		return Event{
			Severity: SeveritySuccess,
			Message:  fmt.Sprintf("%s saved!", order.Label()),
			Order:    &order,
		}
	}

	return failed(fmt.Errorf("unknown command %q", cmd.Kind), "Unknown action.")
}

func menuMessage(name string, err error) string {
	switch {
	case errors.Is(err, domain.ErrEmptyInput):
		return "Please enter a drink name!"
	case errors.Is(err, domain.ErrDuplicateDrink):
		return fmt.Sprintf("%s is already in the menu!", name)
	default:
		return "Could not update the menu."
	}
}

func failed(err error, msg string) Event {
	return Event{Severity: SeverityOf(err), Message: msg, Err: err}
}

// SeverityOf maps an error to how loudly the operator is told about it.
func SeverityOf(err error) Severity {
	switch {
	case err == nil:
		return SeveritySuccess
	case errors.Is(err, domain.ErrDuplicateDrink),
		errors.Is(err, domain.ErrEmptyCart),
		errors.Is(err, domain.ErrEmptyOrder):
		return SeverityWarning
	default:
		return SeverityError
	}
}
