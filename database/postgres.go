package database

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"
	"net"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/lib/pq"
)

// PostgresClient implements TableClient on a relational database.
type PostgresClient struct {
	db *sql.DB
}

// NewPostgresClient wraps an already opened database handle.
func NewPostgresClient(db *sql.DB) *PostgresClient {
	return &PostgresClient{db: db}
}

// OpenPostgres opens and pings a Postgres connection pool.
func OpenPostgres(ctx context.Context, url string) (*PostgresClient, error) {
	db, err := sql.Open("postgres", url)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	db.SetMaxOpenConns(20)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	return &PostgresClient{db: db}, nil
}

// DB exposes the underlying pool for migrations.
func (c *PostgresClient) DB() *sql.DB {
	return c.db
}

func (c *PostgresClient) Select(ctx context.Context, q Query) ([]Row, error) {
	query, args := buildSelect(q)
	rows, err := c.db.QueryContext(ctx, query, args...)
	if err != nil {
		if isInvalidFilterValue(err) {
			return []Row{}, nil
		}
		return nil, classifySQLError(fmt.Errorf("select from %s: %w", q.Table, err))
	}
	defer rows.Close()
	return scanRows(rows)
}

func (c *PostgresClient) Insert(ctx context.Context, table string, row Row) ([]Row, error) {
	if len(row) == 0 {
		return nil, fmt.Errorf("insert into %s: empty row", table)
	}
	query, args := buildInsert(table, row)
	rows, err := c.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, classifySQLError(fmt.Errorf("insert into %s: %w", table, err))
	}
	defer rows.Close()
	return scanRows(rows)
}

func (c *PostgresClient) Update(ctx context.Context, q Query, values Row) ([]Row, error) {
	if len(values) == 0 {
		return nil, fmt.Errorf("update %s: no values", q.Table)
	}
	if len(q.Filters) == 0 {
		return nil, fmt.Errorf("update %s: refusing to update without a filter", q.Table)
	}
	query, args := buildUpdate(q, values)
	rows, err := c.db.QueryContext(ctx, query, args...)
	if err != nil {
		if isInvalidFilterValue(err) {
			return []Row{}, nil
		}
		return nil, classifySQLError(fmt.Errorf("update %s: %w", q.Table, err))
	}
	defer rows.Close()
	return scanRows(rows)
}

func (c *PostgresClient) Ping(ctx context.Context) error {
	if err := c.db.PingContext(ctx); err != nil {
		return classifySQLError(err)
	}
	return nil
}

func (c *PostgresClient) Close(context.Context) error {
	return c.db.Close()
}

func buildSelect(q Query) (string, []any) {
	var sb strings.Builder
	sb.WriteString("SELECT * FROM ")
	sb.WriteString(pq.QuoteIdentifier(q.Table))
	args := writeWhere(&sb, q.Filters, 0)
	if q.OrderBy != "" {
		sb.WriteString(" ORDER BY ")
		sb.WriteString(pq.QuoteIdentifier(q.OrderBy))
		if q.Descending {
			sb.WriteString(" DESC")
		} else {
			sb.WriteString(" ASC")
		}
	}
	return sb.String(), args
}

func buildInsert(table string, row Row) (string, []any) {
	cols := sortedColumns(row)
	quoted := make([]string, len(cols))
	params := make([]string, len(cols))
	args := make([]any, len(cols))
	for i, col := range cols {
		quoted[i] = pq.QuoteIdentifier(col)
		params[i] = "$" + strconv.Itoa(i+1)
		args[i] = row[col]
	}
	query := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s) RETURNING *",
		pq.QuoteIdentifier(table), strings.Join(quoted, ", "), strings.Join(params, ", "))
	return query, args
}

func buildUpdate(q Query, values Row) (string, []any) {
	var sb strings.Builder
	sb.WriteString("UPDATE ")
	sb.WriteString(pq.QuoteIdentifier(q.Table))
	sb.WriteString(" SET ")

	cols := sortedColumns(values)
	args := make([]any, 0, len(cols)+len(q.Filters))
	for i, col := range cols {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(pq.QuoteIdentifier(col))
		sb.WriteString(" = $")
		sb.WriteString(strconv.Itoa(i + 1))
		args = append(args, values[col])
	}
	args = append(args, writeWhere(&sb, q.Filters, len(cols))...)
	sb.WriteString(" RETURNING *")
	return sb.String(), args
}

func writeWhere(sb *strings.Builder, filters []Filter, offset int) []any {
	if len(filters) == 0 {
		return nil
	}
	args := make([]any, 0, len(filters))
	sb.WriteString(" WHERE ")
	for i, f := range filters {
		if i > 0 {
			sb.WriteString(" AND ")
		}
		sb.WriteString(pq.QuoteIdentifier(f.Column))
		sb.WriteString(" = $")
		sb.WriteString(strconv.Itoa(offset + i + 1))
		args = append(args, f.Value)
	}
	return args
}

func sortedColumns(row Row) []string {
	cols := make([]string, 0, len(row))
	for col := range row {
		cols = append(cols, col)
	}
	sort.Strings(cols)
	return cols
}

func scanRows(rows *sql.Rows) ([]Row, error) {
	cols, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("read columns: %w", err)
	}
	types, err := rows.ColumnTypes()
	if err != nil {
		return nil, fmt.Errorf("read column types: %w", err)
	}

	out := []Row{}
	for rows.Next() {
		values := make([]any, len(cols))
		ptrs := make([]any, len(cols))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, fmt.Errorf("scan row: %w", err)
		}
		row := make(Row, len(cols))
		for i, col := range cols {
			row[col] = normalizeValue(values[i], types[i].DatabaseTypeName())
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, classifySQLError(fmt.Errorf("iterate rows: %w", err))
	}
	return out, nil
}

// normalizeValue turns driver values into JSON friendly ones. lib/pq returns
// NUMERIC and UUID columns as raw bytes.
func normalizeValue(v any, dbType string) any {
	b, ok := v.([]byte)
	if !ok {
		return v
	}
	switch strings.ToUpper(dbType) {
	case "NUMERIC", "DECIMAL", "FLOAT4", "FLOAT8":
		if f, err := strconv.ParseFloat(string(b), 64); err == nil {
			return f
		}
	}
	return string(b)
}

// isInvalidFilterValue reports a filter value the column type cannot hold,
// such as a malformed UUID. No row can match it.
func isInvalidFilterValue(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == pgInvalidTextRepresentation
}

const pgInvalidTextRepresentation = "22P02"

func classifySQLError(err error) error {
	var netErr net.Error
	if errors.Is(err, driver.ErrBadConn) || errors.As(err, &netErr) {
		return fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	return err
}
