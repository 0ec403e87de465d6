package postgres

import (
	"cmp"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"hash/fnv"
	"io/fs"
	"log"
	"slices"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const versionsTable = "drinkstand_schema_versions"

// Migration is one NNNN_name.up.sql file.
type Migration struct {
	Version  int64
	Name     string
	SQL      string
	Checksum string
}

// RunMigrations applies the pending files of fsys in version order. Applied
// files are checked against their recorded checksum, so an edited migration
// stops startup instead of drifting silently.
//
// Everything runs on one pinned connection: the advisory lock belongs to the
// session that took it.
func RunMigrations(ctx context.Context, pool *pgxpool.Pool, fsys fs.FS) error {
	migs, err := loadMigrations(fsys)
	if err != nil {
		return fmt.Errorf("load migrations: %w", err)
	}
	if len(migs) == 0 {
		return nil
	}

	conn, err := pool.Acquire(ctx)
	if err != nil {
		return fmt.Errorf("acquire conn: %w", err)
	}
	defer conn.Release()

	lockID := lockKey(versionsTable)
	if _, err := conn.Exec(ctx, `SELECT pg_advisory_lock($1)`, lockID); err != nil {
		return fmt.Errorf("advisory lock: %w", err)
	}
	defer func() { _, _ = conn.Exec(context.WithoutCancel(ctx), `SELECT pg_advisory_unlock($1)`, lockID) }()

	if _, err := conn.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS `+versionsTable+` (
			version    BIGINT PRIMARY KEY,
			name       TEXT NOT NULL,
			checksum   TEXT NOT NULL,
			applied_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`); err != nil {
		return fmt.Errorf("create %s: %w", versionsTable, err)
	}

	rows, err := conn.Query(ctx, `SELECT version, checksum FROM `+versionsTable)
	if err != nil {
		return fmt.Errorf("read applied versions: %w", err)
	}
	applied := make(map[int64]string)
	var version int64
	var sum string
	if _, err := pgx.ForEachRow(rows, []any{&version, &sum}, func() error {
		applied[version] = sum
		return nil
	}); err != nil {
		return fmt.Errorf("read applied versions: %w", err)
	}

	for _, m := range migs {
		if recorded, ok := applied[m.Version]; ok {
			if recorded != m.Checksum {
				return fmt.Errorf("migration %s was edited after it was applied", m.Name)
			}
			continue
		}
		err := pgx.BeginFunc(ctx, conn, func(tx pgx.Tx) error {
			if _, err := tx.Exec(ctx, m.SQL); err != nil {
				return err
			}
			_, err := tx.Exec(ctx,
				`INSERT INTO `+versionsTable+` (version, name, checksum) VALUES ($1, $2, $3)`,
				m.Version, m.Name, m.Checksum)
			return err
		})
		if err != nil {
			return fmt.Errorf("apply %s: %w", m.Name, err)
		}
		log.Printf("[postgres] applied migration %s", m.Name)
	}
	return nil
}

func loadMigrations(fsys fs.FS) ([]Migration, error) {
	names, err := fs.Glob(fsys, "*.up.sql")
	if err != nil {
		return nil, err
	}

	migs := make([]Migration, 0, len(names))
	seen := make(map[int64]string, len(names))
	for _, name := range names {
		prefix, _, ok := strings.Cut(name, "_")
		version, convErr := strconv.ParseInt(prefix, 10, 64)
		if !ok || convErr != nil {
			return nil, fmt.Errorf("migration %q: want NNNN_name.up.sql", name)
		}
		if other, dup := seen[version]; dup {
			return nil, fmt.Errorf("migrations %q and %q share version %d", other, name, version)
		}
		seen[version] = name

		b, err := fs.ReadFile(fsys, name)
		if err != nil {
			return nil, err
		}
		sum := sha256.Sum256(b)
		migs = append(migs, Migration{
			Version:  version,
			Name:     name,
			SQL:      string(b),
			Checksum: hex.EncodeToString(sum[:]),
		})
	}

	slices.SortFunc(migs, func(a, b Migration) int { return cmp.Compare(a.Version, b.Version) })
	return migs, nil
}

func lockKey(name string) int64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(name))
	return int64(h.Sum64())
}
