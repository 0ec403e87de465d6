package inbound

import (
	"context"

	"drinkstand/internal/core/domain"
)

type OrderUseCase interface {
	SaveOrder(ctx context.Context, cart *domain.Cart) (domain.Order, error)
	LoadAll(ctx context.Context) ([]domain.OrderLine, error)
	Orders(ctx context.Context) ([]domain.Order, error)
	Latest(ctx context.Context) (domain.Order, bool, error)
	Stats(ctx context.Context) (domain.Stats, error)
}
