package domain

import "sort"

// Cart is the running list of drink taps for one session. It is not safe for
// concurrent use; the owning session serializes access.
type Cart struct {
	entries []string
}

func (c *Cart) Add(drink string) {
	c.entries = append(c.entries, drink)
}

// UndoLast drops the most recent tap and returns it.
func (c *Cart) UndoLast() (string, error) {
	if len(c.entries) == 0 {
		return "", ErrEmptyCart
	}
	last := c.entries[len(c.entries)-1]
	c.entries = c.entries[:len(c.entries)-1]
	return last, nil
}

func (c *Cart) Clear() {
	c.entries = nil
}

func (c *Cart) Len() int {
	return len(c.entries)
}

func (c *Cart) Entries() []string {
	out := make([]string, len(c.entries))
	copy(out, c.entries)
	return out
}

// Summarize counts taps per drink. Items are ordered by quantity, highest
// first; equal quantities keep the order in which the drink was first tapped.
func (c *Cart) Summarize() CartSummary {
	counts := make(map[string]int)
	var order []string
	for _, d := range c.entries {
		if counts[d] == 0 {
			order = append(order, d)
		}
		counts[d]++
	}

	out := make(CartSummary, 0, len(order))
	for _, d := range order {
		out = append(out, LineItem{Drink: d, Quantity: counts[d]})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Quantity > out[j].Quantity })
	return out
}

type LineItem struct {
	Drink    string `json:"drink"`
	Quantity int    `json:"quantity"`
}

// CartSummary is the aggregated (drink, quantity) view of a cart.
type CartSummary []LineItem

func (s CartSummary) Total() int {
	n := 0
	for _, it := range s {
		n += it.Quantity
	}
	return n
}

func (s CartSummary) Quantity(drink string) int {
	for _, it := range s {
		if it.Drink == drink {
			return it.Quantity
		}
	}
	return 0
}
