package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoClient implements TableClient with one collection per table.
type MongoClient struct {
	client *mongo.Client
	db     *mongo.Database
}

// OpenMongo connects to MongoDB and pings the primary.
func OpenMongo(ctx context.Context, uri, dbName string) (*MongoClient, error) {
	clientOptions := options.Client().ApplyURI(uri)
	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}
	return &MongoClient{client: client, db: client.Database(dbName)}, nil
}

// newContext creates a context with the given timeout.
func newContext(parent context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(parent, timeout)
}

func (c *MongoClient) Select(ctx context.Context, q Query) ([]Row, error) {
	ctx, cancel := newContext(ctx, 10*time.Second)
	defer cancel()

	cursor, err := c.db.Collection(q.Table).Find(ctx, filterDoc(q.Filters), findOptions(q))
	if err != nil {
		return nil, classifyMongoError(fmt.Errorf("find in %s: %w", q.Table, err))
	}
	defer cursor.Close(ctx)

	var docs []bson.M
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, classifyMongoError(fmt.Errorf("decode %s: %w", q.Table, err))
	}
	out := make([]Row, 0, len(docs))
	for _, doc := range docs {
		out = append(out, docToRow(doc))
	}
	return out, nil
}

func (c *MongoClient) Insert(ctx context.Context, table string, row Row) ([]Row, error) {
	if len(row) == 0 {
		return nil, fmt.Errorf("insert into %s: empty row", table)
	}
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	if _, err := c.db.Collection(table).InsertOne(ctx, bson.M(row)); err != nil {
		return nil, classifyMongoError(fmt.Errorf("insert into %s: %w", table, err))
	}
	stored := make(Row, len(row))
	for k, v := range row {
		stored[k] = v
	}
	return []Row{stored}, nil
}

func (c *MongoClient) Update(ctx context.Context, q Query, values Row) ([]Row, error) {
	if len(values) == 0 {
		return nil, fmt.Errorf("update %s: no values", q.Table)
	}
	if len(q.Filters) == 0 {
		return nil, fmt.Errorf("update %s: refusing to update without a filter", q.Table)
	}
	uctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	result, err := c.db.Collection(q.Table).UpdateMany(uctx, filterDoc(q.Filters), bson.M{"$set": bson.M(values)})
	if err != nil {
		return nil, classifyMongoError(fmt.Errorf("update %s: %w", q.Table, err))
	}
	if result.MatchedCount == 0 {
		return []Row{}, nil
	}
	return c.Select(ctx, q)
}

func (c *MongoClient) Ping(ctx context.Context) error {
	if err := c.client.Ping(ctx, nil); err != nil {
		return classifyMongoError(err)
	}
	return nil
}

func (c *MongoClient) Close(ctx context.Context) error {
	return c.client.Disconnect(ctx)
}

func filterDoc(filters []Filter) bson.D {
	doc := bson.D{}
	for _, f := range filters {
		doc = append(doc, bson.E{Key: f.Column, Value: f.Value})
	}
	return doc
}

func findOptions(q Query) *options.FindOptions {
	opts := options.Find()
	if q.OrderBy != "" {
		dir := 1
		if q.Descending {
			dir = -1
		}
		opts.SetSort(bson.D{{Key: q.OrderBy, Value: dir}})
	}
	return opts
}

// docToRow drops the Mongo object id and unwraps BSON specific types.
func docToRow(doc bson.M) Row {
	row := make(Row, len(doc))
	for k, v := range doc {
		if k == "_id" {
			continue
		}
		row[k] = unwrapBSON(v)
	}
	return row
}

func unwrapBSON(v any) any {
	switch t := v.(type) {
	case primitive.DateTime:
		return t.Time().UTC()
	case primitive.Decimal128:
		return t.String()
	case primitive.ObjectID:
		return t.Hex()
	case bson.M:
		return map[string]any(docToRow(t))
	case bson.A:
		out := make([]any, len(t))
		for i, item := range t {
			out[i] = unwrapBSON(item)
		}
		return out
	}
	return v
}

func classifyMongoError(err error) error {
	if mongo.IsNetworkError(err) || mongo.IsTimeout(err) || errors.Is(err, mongo.ErrClientDisconnected) {
		return fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	return err
}
