package database

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Row is one result row keyed by column name. Text and blob columns are
// returned as strings.
type Row map[string]any

// Result describes the effect of one executed statement.
type Result struct {
	// InsertID is the generated key of an INSERT, or 0.
	InsertID int64
	// RowsAffected is the number of rows changed by the statement.
	RowsAffected int64
}

// Response describes a transaction. InsertIDs and AffectedRows hold one
// entry per executed statement, in execution order.
type Response struct {
	Success      bool
	InsertIDs    []int64
	AffectedRows []int64
}

// rollbackNotice is written to the query log when a transaction fails.
const rollbackNotice = "FATAL ERROR: Transaction failed, rolling back changes."

// statementKind returns the lower-cased leading keyword of stmt.
func statementKind(stmt string) string {
	fields := strings.Fields(stmt)
	if len(fields) == 0 {
		return "unknown"
	}
	return strings.ToLower(fields[0])
}

func (s *Session) conn(conn Execer) Execer {
	if conn == nil {
		return s.db
	}
	return conn
}

// observe runs fn inside a span and records its outcome.
func (s *Session) observe(ctx context.Context, stmt string, fn func(context.Context) error) error {
	kind := statementKind(stmt)
	ctx, span := tracer.Start(ctx, "database."+kind,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("db.system", s.dialect.Name),
			attribute.String("db.statement", stmt),
		),
	)
	defer span.End()

	start := time.Now()
	err := fn(ctx)
	s.metrics.observeStatement(kind, time.Since(start), err)

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}
	s.logQuery(stmt)
	return nil
}

// Exec runs one statement on conn, or on the session pool when conn is nil.
// Statements ending in a RETURNING clause (see sqldsl.Dialect.Returning)
// report the returned key as InsertID.
func (s *Session) Exec(ctx context.Context, stmt string, conn Execer) (Result, error) {
	var res Result
	q := s.conn(conn)

	err := s.observe(ctx, stmt, func(ctx context.Context) error {
		if s.dialect.HasReturning(stmt) {
			if err := q.QueryRowContext(ctx, stmt).Scan(&res.InsertID); err != nil {
				return newQueryError(stmt, err)
			}
			res.RowsAffected = 1
			return nil
		}

		r, err := q.ExecContext(ctx, stmt)
		if err != nil {
			return newQueryError(stmt, err)
		}
		// Not every driver reports these; a missing value is left as 0.
		if id, err := r.LastInsertId(); err == nil {
			res.InsertID = id
		}
		if n, err := r.RowsAffected(); err == nil {
			res.RowsAffected = n
		}
		return nil
	})
	return res, err
}

// Query runs one statement on conn, or on the session pool when conn is nil,
// and returns every result row.
func (s *Session) Query(ctx context.Context, stmt string, conn Execer) ([]Row, error) {
	var out []Row
	q := s.conn(conn)

	err := s.observe(ctx, stmt, func(ctx context.Context) error {
		rows, err := q.QueryContext(ctx, stmt)
		if err != nil {
			return newQueryError(stmt, err)
		}
		out, err = scanRows(rows)
		if err != nil {
			return newQueryError(stmt, err)
		}
		return nil
	})
	return out, err
}

func scanRows(rows *sql.Rows) ([]Row, error) {
	defer func() { _ = rows.Close() }()

	cols, err := rows.Columns()
	if err != nil {
		return nil, err
	}

	out := make([]Row, 0)
	for rows.Next() {
		values := make([]any, len(cols))
		ptrs := make([]any, len(cols))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, err
		}
		row := make(Row, len(cols))
		for i, c := range cols {
			if b, ok := values[i].([]byte); ok {
				row[c] = string(b)
				continue
			}
			row[c] = values[i]
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

// RunTransaction executes stmts in order inside one transaction.
//
// If a statement fails the transaction is rolled back, the failure is
// logged and the statement's *QueryError is returned along with a
// response whose Success is false. The response still lists the ids and
// row counts of the statements that ran before the failure.
func (s *Session) RunTransaction(ctx context.Context, stmts ...string) (Response, error) {
	if len(stmts) == 0 {
		return Response{}, ErrEmptyTransaction
	}

	txID := uuid.NewString()
	ctx, span := tracer.Start(ctx, "database.RunTransaction",
		trace.WithAttributes(
			attribute.String("db.system", s.dialect.Name),
			attribute.String("db.transaction.id", txID),
			attribute.Int("db.statements", len(stmts)),
		),
	)
	defer span.End()

	resp := Response{
		InsertIDs:    make([]int64, 0, len(stmts)),
		AffectedRows: make([]int64, 0, len(stmts)),
	}

	fail := func(outcome string, err error) (Response, error) {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		s.metrics.observeTransaction(outcome)
		return resp, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fail("error", newQueryError("BEGIN", err))
	}
	defer func() { _ = tx.Rollback() }()

	for _, stmt := range stmts {
		res, err := s.Exec(ctx, stmt, tx)
		if err != nil {
			_ = tx.Rollback()
			s.logger.Error("transaction failed, rolling back changes", "tx", txID, "statement", stmt, "error", err)
			s.logQuery(rollbackNotice)
			s.logQuery(err.Error())
			return fail("rollback", err)
		}
		resp.InsertIDs = append(resp.InsertIDs, res.InsertID)
		resp.AffectedRows = append(resp.AffectedRows, res.RowsAffected)
	}

	if err := tx.Commit(); err != nil {
		return fail("error", newQueryError("COMMIT", err))
	}

	resp.Success = true
	s.metrics.observeTransaction("commit")
	return resp, nil
}
