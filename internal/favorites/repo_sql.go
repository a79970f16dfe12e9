package favorites

import (
	"context"
	"database/sql"
	"time"
)

const sqliteTimeLayout = "2006-01-02T15:04:05.000Z"

// statements holds one dialect's SQL for the favorites table.
type statements struct {
	list   string
	count  string
	insert string
	remove string
	clear  string
	// lock serializes writers of one client's rows; empty when the engine
	// already serializes write transactions.
	lock string
	// stamp converts a creation time into the column's driver value.
	stamp func(time.Time) any
}

var pgStatements = statements{
	list: `
SELECT vacancy_key
FROM favorites
WHERE client_id = $1
ORDER BY created_at, vacancy_key`,
	count: `SELECT COUNT(*) FROM favorites WHERE client_id = $1`,
	insert: `
INSERT INTO favorites (client_id, vacancy_key, created_at)
VALUES ($1, $2, $3)
ON CONFLICT (client_id, vacancy_key) DO NOTHING`,
	remove: `DELETE FROM favorites WHERE client_id = $1 AND vacancy_key = $2`,
	clear:  `DELETE FROM favorites WHERE client_id = $1`,
	lock:   `SELECT pg_advisory_xact_lock(hashtext($1))`,
	stamp:  func(t time.Time) any { return t.UTC() },
}

var sqliteStatements = statements{
	list: `
SELECT vacancy_key
FROM favorites
WHERE client_id = ?
ORDER BY created_at, vacancy_key`,
	count: `SELECT COUNT(*) FROM favorites WHERE client_id = ?`,
	insert: `
INSERT INTO favorites (client_id, vacancy_key, created_at)
VALUES (?, ?, ?)
ON CONFLICT (client_id, vacancy_key) DO NOTHING`,
	remove: `DELETE FROM favorites WHERE client_id = ? AND vacancy_key = ?`,
	clear:  `DELETE FROM favorites WHERE client_id = ?`,
	stamp:  func(t time.Time) any { return t.UTC().Format(sqliteTimeLayout) },
}

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB  *sql.DB
	Now func() time.Time
}

func (r *PGRepo) List(ctx context.Context, clientID string) ([]string, error) {
	return listKeys(ctx, r.DB, pgStatements, clientID)
}

func (r *PGRepo) Toggle(ctx context.Context, clientID, key string, limit int) (bool, error) {
	return toggleRow(ctx, r.DB, pgStatements, clientID, key, limit, nowOr(r.Now))
}

func (r *PGRepo) Replace(ctx context.Context, clientID string, keys []string) error {
	return replaceRows(ctx, r.DB, pgStatements, clientID, keys, nowOr(r.Now))
}

// SQLiteRepo implements Repo using an embedded SQLite file.
type SQLiteRepo struct {
	DB  *sql.DB
	Now func() time.Time
}

func (r *SQLiteRepo) List(ctx context.Context, clientID string) ([]string, error) {
	return listKeys(ctx, r.DB, sqliteStatements, clientID)
}

func (r *SQLiteRepo) Toggle(ctx context.Context, clientID, key string, limit int) (bool, error) {
	return toggleRow(ctx, r.DB, sqliteStatements, clientID, key, limit, nowOr(r.Now))
}

func (r *SQLiteRepo) Replace(ctx context.Context, clientID string, keys []string) error {
	return replaceRows(ctx, r.DB, sqliteStatements, clientID, keys, nowOr(r.Now))
}

func nowOr(now func() time.Time) time.Time {
	if now != nil {
		return now()
	}
	return time.Now()
}

func listKeys(ctx context.Context, db *sql.DB, st statements, clientID string) ([]string, error) {
	rows, err := db.QueryContext(ctx, st.list, clientID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []string{}
	for rows.Next() {
		var key string
		if err := rows.Scan(&key); err != nil {
			return nil, err
		}
		out = append(out, key)
	}
	return out, rows.Err()
}

func toggleRow(ctx context.Context, db *sql.DB, st statements, clientID, key string, limit int, now time.Time) (bool, error) {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return false, err
	}
	defer func() { _ = tx.Rollback() }()

	if st.lock != "" {
		if _, err := tx.ExecContext(ctx, st.lock, clientID); err != nil {
			return false, err
		}
	}
	res, err := tx.ExecContext(ctx, st.remove, clientID, key)
	if err != nil {
		return false, err
	}
	removed, _ := res.RowsAffected()
	if removed == 0 {
		if limit > 0 {
			var n int
			if err := tx.QueryRowContext(ctx, st.count, clientID).Scan(&n); err != nil {
				return false, err
			}
			if n >= limit {
				return false, ErrTooMany
			}
		}
		if _, err := tx.ExecContext(ctx, st.insert, clientID, key, st.stamp(now)); err != nil {
			return false, err
		}
	}
	if err := tx.Commit(); err != nil {
		return false, err
	}
	return removed == 0, nil
}

// replaceRows rewrites the client's set, spacing creation times a millisecond
// apart so List preserves the given order.
func replaceRows(ctx context.Context, db *sql.DB, st statements, clientID string, keys []string, now time.Time) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, st.clear, clientID); err != nil {
		return err
	}
	for i, key := range keys {
		at := now.Add(time.Duration(i) * time.Millisecond)
		if _, err := tx.ExecContext(ctx, st.insert, clientID, key, st.stamp(at)); err != nil {
			return err
		}
	}
	return tx.Commit()
}

var (
	_ Repo = (*PGRepo)(nil)
	_ Repo = (*SQLiteRepo)(nil)
)
