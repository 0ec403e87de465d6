package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"drinkstand/internal/core/domain"
)

type MenuRepository struct {
	db *sql.DB
}

func NewMenuRepository(db *sql.DB) *MenuRepository {
	return &MenuRepository{db: db}
}

// Load reports domain.ErrNotFound while the drinks table is empty; the menu
// has no delete operation, so an empty table means it was never saved.
func (r *MenuRepository) Load(ctx context.Context) (domain.Menu, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT name FROM drinks ORDER BY position ASC`)
	if err != nil {
		return nil, fmt.Errorf("query drinks: %w", err)
	}
	defer rows.Close()

	var out domain.Menu
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scan drink: %w", err)
		}
		out = append(out, name)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("drinks rows: %w", err)
	}
	if len(out) == 0 {
		return nil, domain.ErrNotFound
	}
	return out, nil
}

func (r *MenuRepository) Save(ctx context.Context, menu domain.Menu) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM drinks`); err != nil {
		return fmt.Errorf("clear drinks: %w", err)
	}
	stmt, err := tx.PrepareContext(ctx, `INSERT INTO drinks (position, name) VALUES (?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for i, name := range menu {
		if _, err := stmt.ExecContext(ctx, i+1, name); err != nil {
			return fmt.Errorf("insert drink %q: %w", name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}
