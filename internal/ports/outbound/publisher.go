package outbound

import (
	"context"

	"drinkstand/internal/core/domain"
)

type OrderPublisher interface {
	Publish(ctx context.Context, order domain.Order) error
}
