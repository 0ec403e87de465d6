package memory

import (
	"context"
	"sync"

	"drinkstand/internal/core/domain"
)

// MenuRepository keeps the menu in process memory.
type MenuRepository struct {
	mu    sync.RWMutex
	menu  domain.Menu
	saved bool
}

func NewMenuRepository() *MenuRepository {
	return &MenuRepository{}
}

func (r *MenuRepository) Load(_ context.Context) (domain.Menu, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if !r.saved {
		return nil, domain.ErrNotFound
	}
	return r.menu.Clone(), nil
}

func (r *MenuRepository) Save(_ context.Context, menu domain.Menu) error {
	r.mu.Lock()
	r.menu = menu.Clone()
	r.saved = true
	r.mu.Unlock()
	return nil
}

// OrderLog keeps order lines in process memory.
type OrderLog struct {
	mu     sync.RWMutex
	lines  []domain.OrderLine
	exists bool
}

func NewOrderLog() *OrderLog {
	return &OrderLog{}
}

func (l *OrderLog) All(_ context.Context) ([]domain.OrderLine, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if !l.exists {
		return nil, domain.ErrNotFound
	}
	out := make([]domain.OrderLine, len(l.lines))
	copy(out, l.lines)
	return out, nil
}

func (l *OrderLog) AppendBatch(_ context.Context, lines []domain.OrderLine) error {
	l.mu.Lock()
	l.lines = append(l.lines, lines...)
	l.exists = true
	l.mu.Unlock()
	return nil
}

func (l *OrderLog) Reset(_ context.Context) error {
	l.mu.Lock()
	l.lines = nil
	l.exists = true
	l.mu.Unlock()
	return nil
}

func (l *OrderLog) Len() int {
	l.mu.RLock()
	n := len(l.lines)
	l.mu.RUnlock()
	return n
}
