package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"

	"drinkstand/internal/core/domain"
	"drinkstand/internal/ports/inbound"
	"drinkstand/internal/ports/outbound"
)

// MenuService owns the menu. All writes go through mu, so the backing file
// has a single writer.
type MenuService struct {
	mu    sync.Mutex
	repo  outbound.MenuRepository
	menu  domain.Menu
	ready bool
}

func NewMenuService(repo outbound.MenuRepository) *MenuService {
	return &MenuService{repo: repo}
}

// Menu returns the current menu, writing the default list on first use.
func (s *MenuService) Menu(ctx context.Context) (domain.Menu, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.loadLocked(ctx); err != nil {
		return nil, err
	}
	return s.menu.Clone(), nil
}

// AddDrink appends name to the menu and persists the whole list. The stored
// name is returned trimmed.
func (s *MenuService) AddDrink(ctx context.Context, name string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.loadLocked(ctx); err != nil {
		return "", err
	}

	next, drink, err := s.menu.With(name)
	if err != nil {
		return drink, err
	}
	if err := s.repo.Save(ctx, next); err != nil {
		return drink, fmt.Errorf("save menu: %w: %w", domain.ErrIO, err)
	}

	s.menu = next
	log.Printf("[menu] added %q (size=%d)", drink, len(next))
	return drink, nil
}

func (s *MenuService) loadLocked(ctx context.Context) error {
	if s.ready {
		return nil
	}

	m, err := s.repo.Load(ctx)
	switch {
	case err == nil:
	case errors.Is(err, domain.ErrNotFound), errors.Is(err, domain.ErrCorruptMenu):
		if errors.Is(err, domain.ErrCorruptMenu) {
			log.Printf("[menu] unreadable menu, restoring defaults: %v", err)
		}
		m = domain.DefaultDrinks()
		if err := s.repo.Save(ctx, m); err != nil {
			return fmt.Errorf("init menu: %w: %w", domain.ErrIO, err)
		}
		log.Printf("[menu] initialized with %d default drinks", len(m))
	default:
		return fmt.Errorf("load menu: %w: %w", domain.ErrIO, err)
	}

	s.menu = m
	s.ready = true
	return nil
}

var _ inbound.MenuUseCase = (*MenuService)(nil)
