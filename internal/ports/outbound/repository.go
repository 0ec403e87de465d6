package outbound

import (
	"context"

	"drinkstand/internal/core/domain"
)

// MenuRepository persists the full menu on every change.
//
// Load returns domain.ErrNotFound when nothing has been saved yet and an
// error wrapping domain.ErrCorruptMenu when the stored menu cannot be read.
type MenuRepository interface {
	Load(ctx context.Context) (domain.Menu, error)
	Save(ctx context.Context, menu domain.Menu) error
}

// OrderLog is the append-only order history.
//
// All returns domain.ErrNotFound when the log does not exist and an error
// wrapping domain.ErrCorruptLog when it cannot be parsed. AppendBatch must
// make either all or none of the lines visible. Reset recreates an empty log.
type OrderLog interface {
	All(ctx context.Context) ([]domain.OrderLine, error)
	AppendBatch(ctx context.Context, lines []domain.OrderLine) error
	Reset(ctx context.Context) error
}
