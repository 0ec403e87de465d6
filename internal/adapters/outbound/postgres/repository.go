package postgres

import (
	"context"
	"fmt"
	"time"

	"drinkstand/internal/core/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type MenuRepository struct {
	pool *pgxpool.Pool
}

func NewMenuRepository(pool *pgxpool.Pool) *MenuRepository {
	return &MenuRepository{pool: pool}
}

// Load reports domain.ErrNotFound while the drinks table is empty.
func (r *MenuRepository) Load(ctx context.Context) (domain.Menu, error) {
	rows, err := r.pool.Query(ctx, `SELECT name FROM drinks ORDER BY position ASC`)
	if err != nil {
		return nil, fmt.Errorf("query drinks: %w", err)
	}
	names, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, fmt.Errorf("collect drinks: %w", err)
	}
	if len(names) == 0 {
		return nil, domain.ErrNotFound
	}
	return domain.Menu(names), nil
}

func (r *MenuRepository) Save(ctx context.Context, menu domain.Menu) error {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx, `DELETE FROM drinks`); err != nil {
		return fmt.Errorf("clear drinks: %w", err)
	}

	batch := &pgx.Batch{}
	for i, name := range menu {
		batch.Queue(`INSERT INTO drinks (position, name) VALUES ($1, $2)`, i+1, name)
	}
	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return fmt.Errorf("insert drinks: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}

type OrderLog struct {
	pool *pgxpool.Pool
}

func NewOrderLog(pool *pgxpool.Pool) *OrderLog {
	return &OrderLog{pool: pool}
}

func (l *OrderLog) All(ctx context.Context) ([]domain.OrderLine, error) {
	rows, err := l.pool.Query(ctx, `
		SELECT order_number, created_at, drink, quantity
		FROM order_lines
		ORDER BY id ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("query order_lines: %w", err)
	}
	defer rows.Close()

	out := []domain.OrderLine{}
	for rows.Next() {
		var (
			ln      domain.OrderLine
			created time.Time
		)
		if err := rows.Scan(&ln.OrderNumber, &created, &ln.Drink, &ln.Quantity); err != nil {
			return nil, fmt.Errorf("scan order line: %w", err)
		}
		ln.Date = created.UTC()
		out = append(out, ln)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("order_lines rows: %w", err)
	}
	return out, nil
}

// AppendBatch copies all lines inside one transaction.
func (l *OrderLog) AppendBatch(ctx context.Context, lines []domain.OrderLine) error {
	tx, err := l.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	_, err = tx.CopyFrom(ctx,
		pgx.Identifier{"order_lines"},
		[]string{"order_number", "created_at", "drink", "quantity"},
		pgx.CopyFromSlice(len(lines), func(i int) ([]any, error) {
			ln := lines[i]
			return []any{ln.OrderNumber, ln.Date.UTC(), ln.Drink, ln.Quantity}, nil
		}),
	)
	if err != nil {
		return fmt.Errorf("copy order lines: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}

func (l *OrderLog) Reset(ctx context.Context) error {
	if _, err := l.pool.Exec(ctx, `TRUNCATE order_lines`); err != nil {
		return fmt.Errorf("truncate order_lines: %w", err)
	}
	return nil
}
