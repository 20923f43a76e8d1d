package database

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
)

// ErrUnavailable is returned when the data store cannot be reached at all.
var ErrUnavailable = errors.New("data store unavailable")

// IsUnavailable reports whether err means the store is unreachable.
func IsUnavailable(err error) bool {
	return errors.Is(err, ErrUnavailable)
}

// Row is a single record keyed by column name.
type Row map[string]any

// Decode copies the row into v, which should be a pointer to a struct with
// json tags matching the column names.
func (r Row) Decode(v any) error {
	raw, err := json.Marshal(r)
	if err != nil {
		return fmt.Errorf("failed to encode row: %w", err)
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return fmt.Errorf("failed to decode row: %w", err)
	}
	return nil
}

// DecodeRows decodes every row into a T.
func DecodeRows[T any](rows []Row) ([]T, error) {
	out := make([]T, 0, len(rows))
	for _, row := range rows {
		var item T
		if err := row.Decode(&item); err != nil {
			return nil, err
		}
		out = append(out, item)
	}
	return out, nil
}

// Filter is an equality predicate on one column.
type Filter struct {
	Column string
	Value  any
}

// Query scopes a select or update to one table.
type Query struct {
	Table      string
	Filters    []Filter
	OrderBy    string
	Descending bool
}

// From starts a query on table.
func From(table string) Query {
	return Query{Table: table}
}

// Eq adds an equality filter.
func (q Query) Eq(column string, value any) Query {
	filters := make([]Filter, len(q.Filters), len(q.Filters)+1)
	copy(filters, q.Filters)
	q.Filters = append(filters, Filter{Column: column, Value: value})
	return q
}

// Order sorts the result by column.
func (q Query) Order(column string, desc bool) Query {
	q.OrderBy = column
	q.Descending = desc
	return q
}

// TableClient is the table-scoped query client every adapter talks to.
// Implementations must be safe for concurrent use.
type TableClient interface {
	Select(ctx context.Context, q Query) ([]Row, error)
	Insert(ctx context.Context, table string, row Row) ([]Row, error)
	// Update applies values to every row matched by q and returns the updated rows.
	Update(ctx context.Context, q Query, values Row) ([]Row, error)
	Ping(ctx context.Context) error
	Close(ctx context.Context) error
}

// Disconnected is the client used when no store was configured or the
// connection failed at startup. Every call reports ErrUnavailable.
type Disconnected struct{}

func (Disconnected) Select(context.Context, Query) ([]Row, error)       { return nil, ErrUnavailable }
func (Disconnected) Insert(context.Context, string, Row) ([]Row, error) { return nil, ErrUnavailable }
func (Disconnected) Update(context.Context, Query, Row) ([]Row, error)  { return nil, ErrUnavailable }
func (Disconnected) Ping(context.Context) error                         { return ErrUnavailable }
func (Disconnected) Close(context.Context) error                        { return nil }
