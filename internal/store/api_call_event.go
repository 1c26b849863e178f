package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
)

const apiCallTable = "api_call_events"

// maxStoredBody caps the response excerpt kept per row.
const maxStoredBody = 16 << 10

var apiCallColumns = []string{
	"id", "timestamp", "request_id", "action", "method", "path",
	"status_code", "latency_ms", "attempt", "success", "error_message", "response_body",
}

// eventRepo implements EventRepo over database/sql, building statements with
// ent's SQL builder.
type eventRepo struct {
	db *sql.DB
}

func builder() *entsql.DialectBuilder {
	return entsql.Dialect(dialect.SQLite)
}

func (r *eventRepo) AppendAPICall(ctx context.Context, data APICallEventData) error {
	body := data.ResponseBody
	if len(body) > maxStoredBody {
		body = body[:maxStoredBody]
	}
	attempt := data.Attempt
	if attempt < 1 {
		attempt = 1
	}

	query, args := builder().Insert(apiCallTable).
		Columns(apiCallColumns[1:]...).
		Values(
			time.Now().UTC(),
			data.RequestID,
			data.Action,
			data.Method,
			data.Path,
			data.StatusCode,
			data.LatencyMs,
			attempt,
			boolToInt(data.Success),
			data.ErrorMessage,
			body,
		).
		Query()

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("save API call event: %w", err)
	}
	return nil
}

func (r *eventRepo) QueryAPICalls(ctx context.Context, opts QueryOpts) ([]APICallRecord, error) {
	b := builder()
	sel := b.Select(apiCallColumns...).
		From(b.Table(apiCallTable)).
		OrderBy(entsql.Desc("id"))
	if opts.Action != "" {
		sel.Where(entsql.EQ("action", opts.Action))
	}
	if opts.Before > 0 {
		sel.Where(entsql.LT("id", opts.Before))
	}
	if opts.Limit > 0 {
		sel.Limit(opts.Limit)
	}

	query, args := sel.Query()
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query API call events: %w", err)
	}
	defer rows.Close()

	var out []APICallRecord
	for rows.Next() {
		rec, err := scanAPICall(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *rec)
	}
	return out, rows.Err()
}

func (r *eventRepo) GetAPICall(ctx context.Context, id int) (*APICallRecord, error) {
	b := builder()
	query, args := b.Select(apiCallColumns...).
		From(b.Table(apiCallTable)).
		Where(entsql.EQ("id", id)).
		Query()

	rec, err := scanAPICall(r.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	return rec, err
}

func (r *eventRepo) UsageByAction(ctx context.Context) ([]ActionUsage, error) {
	b := builder()
	query, args := b.Select(
		"action",
		entsql.As(entsql.Count("*"), "calls"),
		entsql.As("SUM(CASE WHEN success = 0 THEN 1 ELSE 0 END)", "failures"),
		entsql.As("CAST(AVG(latency_ms) AS INTEGER)", "avg_latency"),
	).
		From(b.Table(apiCallTable)).
		GroupBy("action").
		OrderBy("action").
		Query()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query usage: %w", err)
	}
	defer rows.Close()

	var out []ActionUsage
	for rows.Next() {
		var u ActionUsage
		if err := rows.Scan(&u.Action, &u.Calls, &u.Failures, &u.AvgLatencyMs); err != nil {
			return nil, fmt.Errorf("scan usage: %w", err)
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanAPICall(row rowScanner) (*APICallRecord, error) {
	var (
		rec     APICallRecord
		success int
	)
	err := row.Scan(
		&rec.ID, &rec.Timestamp, &rec.RequestID, &rec.Action, &rec.Method, &rec.Path,
		&rec.StatusCode, &rec.LatencyMs, &rec.Attempt, &success, &rec.ErrorMessage, &rec.ResponseBody,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan API call event: %w", err)
	}
	rec.Timestamp = rec.Timestamp.UTC()
	rec.Success = success != 0
	return &rec, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
