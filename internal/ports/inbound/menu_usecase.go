package inbound

import (
	"context"

	"drinkstand/internal/core/domain"
)

type MenuUseCase interface {
	Menu(ctx context.Context) (domain.Menu, error)
	AddDrink(ctx context.Context, name string) (string, error)
}
