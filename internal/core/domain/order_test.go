package domain

import (
	"errors"
	"testing"
	"time"
)

var t0 = time.Date(2024, 11, 3, 14, 5, 0, 0, time.UTC)

func linesFor(n int, date time.Time, items ...LineItem) []OrderLine {
	o := Order{Number: n, Date: date, Items: items}
	return o.Lines()
}

func TestNewOrderRejectsEmpty(t *testing.T) {
	if _, err := NewOrder(1, t0, nil); !errors.Is(err, ErrEmptyOrder) {
		t.Fatalf("err = %v, want ErrEmptyOrder", err)
	}
}

func TestOrderLinesShareNumberAndDate(t *testing.T) {
	o, err := NewOrder(4, t0, CartSummary{{"Coca Cola", 2}, {"Sprite", 1}})
	if err != nil {
		t.Fatal(err)
	}
	lines := o.Lines()
	if len(lines) != 2 {
		t.Fatalf("len(lines) = %d, want 2", len(lines))
	}
	for _, l := range lines {
		if l.OrderNumber != 4 || !l.Date.Equal(t0) {
			t.Errorf("line %+v does not carry order 4 at %v", l, t0)
		}
		if err := l.Validate(); err != nil {
			t.Errorf("Validate(%+v): %v", l, err)
		}
	}
}

func TestNextOrderNumberIgnoresLineCounts(t *testing.T) {
	var log []OrderLine
	sizes := []int{2, 5, 1}
	for i, size := range sizes {
		n := NextOrderNumber(log)
		if n != i+1 {
			t.Fatalf("order %d got number %d", i+1, n)
		}
		var items []LineItem
		for j := 0; j < size; j++ {
			items = append(items, LineItem{Drink: string(rune('A' + j)), Quantity: 1})
		}
		log = append(log, linesFor(n, t0, items...)...)
	}
	if n := NextOrderNumber(log); n != 4 {
		t.Errorf("NextOrderNumber = %d, want 4", n)
	}
}

func TestNextOrderNumberSkipsGaps(t *testing.T) {
	log := append(
		linesFor(1, t0, LineItem{"Coca Cola", 1}, LineItem{"Sprite", 2}),
		linesFor(3, t0.Add(time.Hour), LineItem{"Fanta", 1})...,
	)
	if n := NextOrderNumber(log); n != 4 {
		t.Fatalf("NextOrderNumber = %d, want 4", n)
	}
	if n := NextOrderNumber(nil); n != 1 {
		t.Fatalf("NextOrderNumber(empty) = %d, want 1", n)
	}
}

func TestGroupByOrderFirstAppearance(t *testing.T) {
	lines := []OrderLine{
		{OrderNumber: 2, Date: t0, Drink: "Pepsi", Quantity: 1},
		{OrderNumber: 1, Date: t0, Drink: "Fanta", Quantity: 3},
		{OrderNumber: 2, Date: t0, Drink: "Sprite", Quantity: 2},
	}
	got := GroupByOrder(lines)
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2", len(got))
	}
	if got[0].Number != 2 || got[1].Number != 1 {
		t.Errorf("group order = %d,%d want 2,1", got[0].Number, got[1].Number)
	}
	if len(got[0].Items) != 2 || got[0].TotalQuantity() != 3 {
		t.Errorf("order 2 items = %v", got[0].Items)
	}
}

func TestLatestOrder(t *testing.T) {
	if _, ok := LatestOrder(nil); ok {
		t.Error("LatestOrder(empty) reported an order")
	}

	single := linesFor(1, t0, LineItem{"Pepsi", 2})
	o, ok := LatestOrder(single)
	if !ok || o.Number != 1 {
		t.Errorf("LatestOrder(single) = %+v, %v", o, ok)
	}

	mixed := append(linesFor(3, t0, LineItem{"Fanta", 1}), linesFor(10, t0, LineItem{"Sprite", 1})...)
	mixed = append(mixed, linesFor(9, t0, LineItem{"Pepsi", 1})...)
	o, _ = LatestOrder(mixed)
	if o.Number != 10 {
		t.Errorf("LatestOrder = %d, want 10 (integer compare)", o.Number)
	}
}

func TestComputeStats(t *testing.T) {
	lines := append(linesFor(1, t0, LineItem{"Pepsi", 1}, LineItem{"Fanta", 2}), linesFor(2, t0, LineItem{"Pepsi", 3})...)
	s := ComputeStats(lines)
	if s.Orders != 2 || s.Drinks != 6 {
		t.Errorf("stats = %+v", s)
	}
	if len(s.ByDrink) != 2 || s.ByDrink[0] != (LineItem{"Pepsi", 4}) {
		t.Errorf("ByDrink = %v", s.ByDrink)
	}
}
