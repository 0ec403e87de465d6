package session

import (
	"sync"
	"time"

	"drinkstand/internal/core/domain"
)

// Session holds one client's cart and gate flag. Commands lock the session
// for their whole duration so a cart is never mutated by two at once.
type Session struct {
	sync.Mutex

	ID            string
	CreatedAt     time.Time
	Cart          domain.Cart
	Authenticated bool
}
