package service

import (
	"context"
	"errors"
	"sync"

	"drinkstand/internal/core/domain"
)

type failingLog struct {
	lines     []domain.OrderLine
	appendErr error
}

func (l *failingLog) All(context.Context) ([]domain.OrderLine, error) {
	return append([]domain.OrderLine{}, l.lines...), nil
}

func (l *failingLog) AppendBatch(_ context.Context, lines []domain.OrderLine) error {
	if l.appendErr != nil {
		return l.appendErr
	}
	l.lines = append(l.lines, lines...)
	return nil
}

func (l *failingLog) Reset(context.Context) error {
	l.lines = nil
	return nil
}

type failingMenu struct {
	menu    domain.Menu
	saveErr error
}

func (m *failingMenu) Load(context.Context) (domain.Menu, error) {
	if m.menu == nil {
		return nil, domain.ErrNotFound
	}
	return m.menu.Clone(), nil
}

func (m *failingMenu) Save(_ context.Context, menu domain.Menu) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.menu = menu.Clone()
	return nil
}

type recordingPublisher struct {
	mu     sync.Mutex
	orders []domain.Order
	err    error
}

func (p *recordingPublisher) Publish(_ context.Context, o domain.Order) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.orders = append(p.orders, o)
	return p.err
}

var errDiskFull = errors.New("disk full")
