package domain

import (
	"fmt"
	"strings"
)

// Menu is the insertion-ordered list of drink names on sale.
type Menu []string

// DefaultDrinks is the menu written on first run.
func DefaultDrinks() Menu {
	return Menu{
		"Coca Cola",
		"Pepsi",
		"Sprite",
		"Fanta",
		"Mountain Dew",
		"7 Up",
		"Dr Pepper",
		"Red Bull",
		"Monster Energy",
	}
}

func (m Menu) Contains(drink string) bool {
	for _, d := range m {
		if d == drink {
			return true
		}
	}
	return false
}

// With returns a copy of m with drink appended. The name is trimmed first;
// blank names and exact duplicates are rejected.
func (m Menu) With(drink string) (Menu, string, error) {
	name := strings.TrimSpace(drink)
	if name == "" {
		return nil, "", ErrEmptyInput
	}
	if m.Contains(name) {
		return nil, name, fmt.Errorf("%q: %w", name, ErrDuplicateDrink)
	}
	out := make(Menu, len(m), len(m)+1)
	copy(out, m)
	return append(out, name), name, nil
}

func (m Menu) Clone() Menu {
	out := make(Menu, len(m))
	copy(out, m)
	return out
}

// String renders the menu the way the stand lists it on the board.
func (m Menu) String() string {
	return strings.Join(m, ", ")
}
