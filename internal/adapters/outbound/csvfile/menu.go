package csvfile

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"drinkstand/internal/core/domain"
)

// MenuRepository stores the menu as a one-column CSV file.
type MenuRepository struct {
	path string
}

func NewMenuRepository(path string) *MenuRepository {
	return &MenuRepository{path: path}
}

func (r *MenuRepository) Load(_ context.Context) (domain.Menu, error) {
	b, err := os.ReadFile(r.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("read %s: %w", r.path, err)
	}
	m, err := domain.DecodeMenu(bytes.NewReader(b))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", r.path, err)
	}
	return m, nil
}

func (r *MenuRepository) Save(_ context.Context, menu domain.Menu) error {
	return writeAtomic(r.path, func(w io.Writer) error {
		return domain.EncodeMenu(w, menu)
	})
}
