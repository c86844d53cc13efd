package postgres

import (
	"database/sql"

	"github.com/alfredjeanlab/edgebin/internal/model"
)

// runColumns is the column list scanRun expects, in order.
const runColumns = `id, input, output, byte_order, undirected,
	records, comments, duplicates, bytes,
	status, error, upload_uri, started_at, finished_at`

// scannable is the interface satisfied by both *sql.Row and *sql.Rows.
type scannable interface {
	Scan(dest ...any) error
}

// scanRun scans a single row into a model.Run.
func scanRun(row scannable) (*model.Run, error) {
	var r model.Run
	var (
		runErr    sql.NullString
		uploadURI sql.NullString
	)

	err := row.Scan(
		&r.ID,
		&r.Input,
		&r.Output,
		&r.ByteOrder,
		&r.Undirected,
		&r.Records,
		&r.Comments,
		&r.Duplicates,
		&r.Bytes,
		&r.Status,
		&runErr,
		&uploadURI,
		&r.StartedAt,
		&r.FinishedAt,
	)
	if err != nil {
		return nil, err
	}

	r.Error = runErr.String
	r.UploadURI = uploadURI.String
	return &r, nil
}

// nullString returns a sql.NullString that is NULL when s is empty.
func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
