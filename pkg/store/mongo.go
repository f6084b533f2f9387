package store

import (
	"context"
	stderrors "errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/statboard/statboard/pkg/errors"
	"github.com/statboard/statboard/pkg/report"
)

const reportsCollection = "reports"

// MongoStore persists reports in a mongo collection, one document per
// report keyed by _id.
type MongoStore struct {
	client *mongo.Client
	coll   *mongo.Collection
}

// NewMongoStore connects to mongo at uri and verifies the connection.
func NewMongoStore(ctx context.Context, uri, database string) (*MongoStore, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeNetwork, err, "connect to mongo")
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, errors.Wrap(errors.ErrCodeNetwork, err, "ping mongo")
	}
	return &MongoStore{
		client: client,
		coll:   client.Database(database).Collection(reportsCollection),
	}, nil
}

// Get retrieves a report by id.
func (s *MongoStore) Get(ctx context.Context, id string) (report.Report, error) {
	var r report.Report
	err := s.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&r)
	if stderrors.Is(err, mongo.ErrNoDocuments) {
		return report.Report{}, errNotFound(id)
	}
	if err != nil {
		return report.Report{}, errors.Wrap(errors.ErrCodeInternal, err, "load report %s", id)
	}
	return r, nil
}

// Put upserts a report.
func (s *MongoStore) Put(ctx context.Context, r report.Report) error {
	if err := r.Validate(); err != nil {
		return err
	}
	existing, err := s.Get(ctx, r.ID)
	stamp(&r, err == nil, existing.CreatedAt)

	opts := options.Replace().SetUpsert(true)
	if _, err := s.coll.ReplaceOne(ctx, bson.M{"_id": r.ID}, r, opts); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "store report %s", r.ID)
	}
	return nil
}

// Delete removes a report.
func (s *MongoStore) Delete(ctx context.Context, id string) error {
	res, err := s.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "delete report %s", id)
	}
	if res.DeletedCount == 0 {
		return errNotFound(id)
	}
	return nil
}

// List returns all reports ordered by id.
func (s *MongoStore) List(ctx context.Context) ([]report.Report, error) {
	opts := options.Find().SetSort(bson.M{"_id": 1})
	cursor, err := s.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "list reports")
	}
	defer cursor.Close(ctx)

	var out []report.Report
	if err := cursor.All(ctx, &out); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "decode reports")
	}
	return out, nil
}

// Close disconnects from mongo.
func (s *MongoStore) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

// Ensure MongoStore implements Store.
var _ Store = (*MongoStore)(nil)
