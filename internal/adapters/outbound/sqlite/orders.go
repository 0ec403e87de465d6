package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"drinkstand/internal/core/domain"
)

// OrderLog keeps order lines in the order_lines table. The table is created
// with the schema, so All never reports a missing log.
type OrderLog struct {
	db *sql.DB
}

func NewOrderLog(db *sql.DB) *OrderLog {
	return &OrderLog{db: db}
}

func (l *OrderLog) All(ctx context.Context) ([]domain.OrderLine, error) {
	rows, err := l.db.QueryContext(ctx, `
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
			created string
		)
		if err := rows.Scan(&ln.OrderNumber, &created, &ln.Drink, &ln.Quantity); err != nil {
			return nil, fmt.Errorf("scan order line: %w", err)
		}
		ts, err := time.Parse(domain.DateLayout, created)
		if err != nil {
			return nil, fmt.Errorf("%w: order %d date %q: %v", domain.ErrCorruptLog, ln.OrderNumber, created, err)
		}
		ln.Date = ts.UTC()
		out = append(out, ln)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("order_lines rows: %w", err)
	}
	return out, nil
}

// AppendBatch inserts all lines in one transaction.
func (l *OrderLog) AppendBatch(ctx context.Context, lines []domain.OrderLine) error {
	tx, err := l.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO order_lines (order_number, created_at, drink, quantity)
		VALUES (?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, ln := range lines {
		if _, err := stmt.ExecContext(ctx, ln.OrderNumber, ln.Date.UTC().Format(domain.DateLayout), ln.Drink, ln.Quantity); err != nil {
			return fmt.Errorf("insert order line: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}

func (l *OrderLog) Reset(ctx context.Context) error {
	if _, err := l.db.ExecContext(ctx, `DELETE FROM order_lines`); err != nil {
		return fmt.Errorf("clear order_lines: %w", err)
	}
	return nil
}
