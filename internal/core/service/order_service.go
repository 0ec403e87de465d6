package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"drinkstand/internal/core/domain"
	"drinkstand/internal/ports/inbound"
	"drinkstand/internal/ports/outbound"
)

// OrderService turns carts into orders and reads the order log back. Every
// log access holds mu, which makes the service the log's only writer.
type OrderService struct {
	mu  sync.Mutex
	log outbound.OrderLog
	pub outbound.OrderPublisher
	now func() time.Time
}

// NewOrderService wires the log and an optional publisher; pub may be nil.
func NewOrderService(orderLog outbound.OrderLog, pub outbound.OrderPublisher) *OrderService {
	return &OrderService{log: orderLog, pub: pub, now: time.Now}
}

// SaveOrder persists the cart as the next order and empties the cart. If the
// append fails the cart is left as it was.
func (s *OrderService) SaveOrder(ctx context.Context, cart *domain.Cart) (domain.Order, error) {
	summary := cart.Summarize()
	if len(summary) == 0 {
		return domain.Order{}, domain.ErrEmptyOrder
	}

	s.mu.Lock()
	lines, err := s.loadLocked(ctx)
	if err != nil {
		s.mu.Unlock()
		return domain.Order{}, err
	}

	order, err := domain.NewOrder(domain.NextOrderNumber(lines), s.now().UTC().Truncate(time.Second), summary)
	if err != nil {
		s.mu.Unlock()
		return domain.Order{}, err
	}
	if err := s.log.AppendBatch(ctx, order.Lines()); err != nil {
		s.mu.Unlock()
		return domain.Order{}, fmt.Errorf("append order %d: %w: %w", order.Number, domain.ErrIO, err)
	}
	s.mu.Unlock()

	cart.Clear()
	log.Printf("[orders] saved %s: %d lines, %d drinks", order.Label(), len(order.Items), order.TotalQuantity())

	if s.pub != nil {
		if err := s.pub.Publish(ctx, order); err != nil {
			log.Printf("[orders] publish %s failed: %v", order.Label(), err)
		}
	}
	return order, nil
}

// LoadAll returns every logged line. A missing or unreadable log is replaced
// with an empty one.
func (s *OrderService) LoadAll(ctx context.Context) ([]domain.OrderLine, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadLocked(ctx)
}

func (s *OrderService) loadLocked(ctx context.Context) ([]domain.OrderLine, error) {
	lines, err := s.log.All(ctx)
	if err == nil {
		return lines, nil
	}

	missing := errors.Is(err, domain.ErrNotFound)
	if !missing && !errors.Is(err, domain.ErrCorruptLog) {
		return nil, fmt.Errorf("load orders: %w: %w", domain.ErrIO, err)
	}
	if !missing {
		log.Printf("[orders] discarding unreadable order log: %v", err)
	}
	if err := s.log.Reset(ctx); err != nil {
		return nil, fmt.Errorf("recreate order log: %w: %w", domain.ErrIO, err)
	}
	return []domain.OrderLine{}, nil
}

var _ inbound.OrderUseCase = (*OrderService)(nil)
