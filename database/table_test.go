package database

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestQueryEqDoesNotShareFilters(t *testing.T) {
	base := From("bookings").Eq("status", "pending")
	a := base.Eq("id", "a")
	b := base.Eq("id", "b")

	require.Len(t, a.Filters, 2)
	require.Len(t, b.Filters, 2)
	assert.Equal(t, "a", a.Filters[1].Value)
	assert.Equal(t, "b", b.Filters[1].Value)
	assert.Len(t, base.Filters, 1)
}

func TestBuildSelect(t *testing.T) {
	query, args := buildSelect(From("prices").Eq("service_type", "buffet").Eq("active", true).Order("id", false))
	assert.Equal(t, `SELECT * FROM "prices" WHERE "service_type" = $1 AND "active" = $2 ORDER BY "id" ASC`, query)
	assert.Equal(t, []any{"buffet", true}, args)
}

func TestBuildInsertSortsColumns(t *testing.T) {
	query, args := buildInsert("bookings", Row{"status": "pending", "id": "x"})
	assert.Equal(t, `INSERT INTO "bookings" ("id", "status") VALUES ($1, $2) RETURNING *`, query)
	assert.Equal(t, []any{"x", "pending"}, args)
}

func TestBuildUpdate(t *testing.T) {
	query, args := buildUpdate(From("bookings").Eq("id", "x"), Row{"status": "deposit_paid", "deposit_paid": true})
	assert.Equal(t, `UPDATE "bookings" SET "deposit_paid" = $1, "status" = $2 WHERE "id" = $3 RETURNING *`, query)
	assert.Equal(t, []any{true, "deposit_paid", "x"}, args)
}

func TestUpdateRequiresFilter(t *testing.T) {
	client := NewPostgresClient(nil)
	_, err := client.Update(context.Background(), From("bookings"), Row{"status": "pending"})
	assert.Error(t, err)
}

func TestNormalizeValue(t *testing.T) {
	assert.Equal(t, 102.5, normalizeValue([]byte("102.50"), "NUMERIC"))
	assert.Equal(t, "0d6c1b2e", normalizeValue([]byte("0d6c1b2e"), "UUID"))
	assert.Equal(t, int64(4), normalizeValue(int64(4), "INT4"))
}

func TestRowDecode(t *testing.T) {
	var out struct {
		ID     string   `json:"id"`
		Amount *float64 `json:"amount"`
		When   time.Time
	}
	ts := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	require.NoError(t, Row{"id": "x", "amount": nil, "When": ts}.Decode(&out))
	assert.Equal(t, "x", out.ID)
	assert.Nil(t, out.Amount)
	assert.True(t, out.When.Equal(ts))
}

func TestDisconnectedReportsUnavailable(t *testing.T) {
	var client TableClient = Disconnected{}
	_, err := client.Select(context.Background(), From("bookings"))
	assert.True(t, IsUnavailable(err))
	assert.True(t, IsUnavailable(client.Ping(context.Background())))
	assert.NoError(t, client.Close(context.Background()))
}

func TestDocToRow(t *testing.T) {
	ts := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	row := docToRow(bson.M{
		"_id":        primitive.NewObjectID(),
		"id":         "b-1",
		"created_at": primitive.NewDateTimeFromTime(ts),
		"tags":       bson.A{"a", primitive.NewDateTimeFromTime(ts)},
	})

	_, hasObjectID := row["_id"]
	assert.False(t, hasObjectID)
	assert.Equal(t, "b-1", row["id"])
	assert.Equal(t, ts, row["created_at"])
	assert.Equal(t, []any{"a", ts}, row["tags"])
}

func TestFilterDoc(t *testing.T) {
	doc := filterDoc([]Filter{{Column: "id", Value: "x"}, {Column: "active", Value: true}})
	assert.Equal(t, bson.D{{Key: "id", Value: "x"}, {Key: "active", Value: true}}, doc)
}

func TestConnectRejectsUnknownScheme(t *testing.T) {
	_, err := Connect(context.Background(), "mysql://localhost/catering", "catering")
	assert.Error(t, err)
}
