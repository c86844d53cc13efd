package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/alfredjeanlab/edgebin/internal/ledger"
	"github.com/alfredjeanlab/edgebin/internal/model"
)

// defaultListLimit caps ListRuns when the filter sets no limit.
const defaultListLimit = 50

// executor is the interface satisfied by both *sql.DB and *sql.Tx.
type executor interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func queryRecordRun(ctx context.Context, db executor, r *model.Run) error {
	_, err := db.ExecContext(ctx, `
		INSERT INTO conversion_runs (
			id, input, output, byte_order, undirected,
			records, comments, duplicates, bytes,
			status, error, upload_uri, started_at, finished_at
		) VALUES (
			$1, $2, $3, $4, $5,
			$6, $7, $8, $9,
			$10, $11, $12, $13, $14
		)
		ON CONFLICT (id) DO UPDATE SET
			output = EXCLUDED.output,
			records = EXCLUDED.records,
			comments = EXCLUDED.comments,
			duplicates = EXCLUDED.duplicates,
			bytes = EXCLUDED.bytes,
			status = EXCLUDED.status,
			error = EXCLUDED.error,
			upload_uri = EXCLUDED.upload_uri,
			finished_at = EXCLUDED.finished_at`,
		r.ID,
		r.Input,
		r.Output,
		r.ByteOrder,
		r.Undirected,
		r.Records,
		r.Comments,
		r.Duplicates,
		r.Bytes,
		string(r.Status),
		nullString(r.Error),
		nullString(r.UploadURI),
		r.StartedAt,
		r.FinishedAt,
	)
	if err != nil {
		return fmt.Errorf("insert run %s: %w", r.ID, err)
	}
	return nil
}

func queryGetRun(ctx context.Context, db executor, id string) (*model.Run, error) {
	row := db.QueryRowContext(ctx, `SELECT `+runColumns+` FROM conversion_runs WHERE id = $1`, id)
	r, err := scanRun(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", ledger.ErrNotFound, id)
		}
		return nil, err
	}
	return r, nil
}

func queryListRuns(ctx context.Context, db executor, filter model.RunFilter) ([]*model.Run, error) {
	var (
		whereClauses []string
		args         []any
		argIdx       int
	)

	nextArg := func() string {
		argIdx++
		return fmt.Sprintf("$%d", argIdx)
	}

	if len(filter.Status) > 0 {
		placeholders := make([]string, len(filter.Status))
		for i, s := range filter.Status {
			placeholders[i] = nextArg()
			args = append(args, string(s))
		}
		whereClauses = append(whereClauses, "status IN ("+strings.Join(placeholders, ", ")+")")
	}

	if filter.Input != "" {
		whereClauses = append(whereClauses, "input = "+nextArg())
		args = append(args, filter.Input)
	}

	query := `SELECT ` + runColumns + ` FROM conversion_runs`
	if len(whereClauses) > 0 {
		query += " WHERE " + strings.Join(whereClauses, " AND ")
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = defaultListLimit
	}
	query += " ORDER BY started_at DESC LIMIT " + nextArg()
	args = append(args, limit)

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	var runs []*model.Run
	for rows.Next() {
		r, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}
