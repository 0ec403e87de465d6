package domain

import (
	"errors"
	"testing"
)

func TestMenuWith(t *testing.T) {
	m := Menu{"Coca Cola", "Pepsi"}

	tests := []struct {
		name    string
		in      string
		wantErr error
		want    string
	}{
		{"new drink", "Sprite", nil, "Sprite"},
		{"trimmed", "  Fanta ", nil, "Fanta"},
		{"blank", "   ", ErrEmptyInput, ""},
		{"empty", "", ErrEmptyInput, ""},
		{"duplicate", "Pepsi", ErrDuplicateDrink, "Pepsi"},
		{"case preserving", "pepsi", nil, "pepsi"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			next, name, err := m.With(tt.in)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("With(%q) err = %v, want %v", tt.in, err, tt.wantErr)
			}
			if name != tt.want {
				t.Errorf("With(%q) name = %q, want %q", tt.in, name, tt.want)
			}
			if err != nil {
				return
			}
			if len(next) != len(m)+1 || next[len(next)-1] != tt.want {
				t.Errorf("With(%q) = %v", tt.in, next)
			}
		})
	}

	if len(m) != 2 {
		t.Errorf("With mutated receiver: %v", m)
	}
}

func TestDefaultDrinks(t *testing.T) {
	d := DefaultDrinks()
	if len(d) != 9 {
		t.Fatalf("len(DefaultDrinks()) = %d, want 9", len(d))
	}
	if d[0] != "Coca Cola" || d[8] != "Monster Energy" {
		t.Errorf("unexpected defaults: %v", d)
	}
	if d.String() == "" {
		t.Error("String() is empty")
	}
}
