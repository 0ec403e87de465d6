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

// OrderLog stores order lines as a CSV file with an OrderNumber, Date,
// Drink, Quantity header.
type OrderLog struct {
	path string
}

func NewOrderLog(path string) *OrderLog {
	return &OrderLog{path: path}
}

func (l *OrderLog) All(_ context.Context) ([]domain.OrderLine, error) {
	b, err := l.read()
	if err != nil {
		return nil, err
	}
	lines, err := domain.DecodeOrderLines(bytes.NewReader(b))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", l.path, err)
	}
	return lines, nil
}

// AppendBatch rewrites the log with lines added at the end. The rewrite is
// atomic, so a reader never sees half a batch.
func (l *OrderLog) AppendBatch(_ context.Context, lines []domain.OrderLine) error {
	if len(lines) == 0 {
		return nil
	}

	existing, err := l.read()
	switch {
	case err == nil:
	case errors.Is(err, domain.ErrNotFound):
		existing = nil
	default:
		return err
	}

	return writeAtomic(l.path, func(w io.Writer) error {
		if len(existing) == 0 {
			return domain.EncodeOrderLines(w, lines, true)
		}
		if _, err := w.Write(existing); err != nil {
			return err
		}
		if existing[len(existing)-1] != '\n' {
			if _, err := io.WriteString(w, "\n"); err != nil {
				return err
			}
		}
		return domain.EncodeOrderLines(w, lines, false)
	})
}

func (l *OrderLog) Reset(_ context.Context) error {
	return writeAtomic(l.path, func(w io.Writer) error {
		return domain.EncodeOrderLines(w, nil, true)
	})
}

func (l *OrderLog) read() ([]byte, error) {
	b, err := os.ReadFile(l.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("read %s: %w", l.path, err)
	}
	return b, nil
}
