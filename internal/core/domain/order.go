package domain

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"
)

// OrderLine is one persisted row of the order log.
type OrderLine struct {
	OrderNumber int       `json:"order_number"`
	Date        time.Time `json:"date"`
	Drink       string    `json:"drink"`
	Quantity    int       `json:"quantity"`
}

func (l OrderLine) Validate() error {
	var errs []string
	if l.OrderNumber < 1 {
		errs = append(errs, "order_number must be >= 1")
	}
	if strings.TrimSpace(l.Drink) == "" {
		errs = append(errs, "drink is required")
	}
	if l.Quantity < 1 {
		errs = append(errs, "quantity must be >= 1")
	}
	if l.Date.IsZero() {
		errs = append(errs, "date is required")
	}
	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}
	return nil
}

// Order is one committed batch of line items.
type Order struct {
	Number int        `json:"order_number"`
	Date   time.Time  `json:"date"`
	Items  []LineItem `json:"items"`
}

// NewOrder builds order number n from a cart summary. Every line shares date.
func NewOrder(n int, date time.Time, summary CartSummary) (Order, error) {
	if len(summary) == 0 {
		return Order{}, ErrEmptyOrder
	}
	items := make([]LineItem, len(summary))
	copy(items, summary)
	return Order{Number: n, Date: date, Items: items}, nil
}

func (o Order) Label() string {
	return fmt.Sprintf("Order %d", o.Number)
}

func (o Order) TotalQuantity() int {
	return CartSummary(o.Items).Total()
}

// Lines flattens the order into log rows.
func (o Order) Lines() []OrderLine {
	out := make([]OrderLine, 0, len(o.Items))
	for _, it := range o.Items {
		out = append(out, OrderLine{
			OrderNumber: o.Number,
			Date:        o.Date,
			Drink:       it.Drink,
			Quantity:    it.Quantity,
		})
	}
	return out
}

// NextOrderNumber is one past the highest number in the log. It never reuses
// a number, even when older logs skip some.
func NextOrderNumber(lines []OrderLine) int {
	highest := 0
	for _, l := range lines {
		highest = max(highest, l.OrderNumber)
	}
	return highest + 1
}

// GroupByOrder collects rows by order number. Groups appear in the order
// their first row appears in lines.
func GroupByOrder(lines []OrderLine) []Order {
	idx := make(map[int]int)
	var out []Order
	for _, l := range lines {
		i, ok := idx[l.OrderNumber]
		if !ok {
			i = len(out)
			idx[l.OrderNumber] = i
			out = append(out, Order{Number: l.OrderNumber, Date: l.Date})
		}
		out[i].Items = append(out[i].Items, LineItem{Drink: l.Drink, Quantity: l.Quantity})
	}
	return out
}

// LatestOrder returns the order with the highest number.
func LatestOrder(lines []OrderLine) (Order, bool) {
	orders := GroupByOrder(lines)
	if len(orders) == 0 {
		return Order{}, false
	}
	best := orders[0]
	for _, o := range orders[1:] {
		if o.Number > best.Number {
			best = o
		}
	}
	return best, true
}

// Stats is the sales overview shown next to the order history.
type Stats struct {
	Orders  int        `json:"orders"`
	Drinks  int        `json:"drinks"`
	ByDrink []LineItem `json:"by_drink"`
}

func ComputeStats(lines []OrderLine) Stats {
	totals := make(map[string]int)
	var names []string
	orders := make(map[int]struct{})
	s := Stats{}
	for _, l := range lines {
		orders[l.OrderNumber] = struct{}{}
		if _, ok := totals[l.Drink]; !ok {
			names = append(names, l.Drink)
		}
		totals[l.Drink] += l.Quantity
		s.Drinks += l.Quantity
	}
	s.Orders = len(orders)
	for _, n := range names {
		s.ByDrink = append(s.ByDrink, LineItem{Drink: n, Quantity: totals[n]})
	}
	sort.SliceStable(s.ByDrink, func(i, j int) bool { return s.ByDrink[i].Quantity > s.ByDrink[j].Quantity })
	return s
}
