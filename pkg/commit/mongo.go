package commit

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// MongoCollection is the collection runs are stored in.
const MongoCollection = "commit_runs"

// MongoJournal stores runs in MongoDB, one document per run keyed by run id.
type MongoJournal struct {
	client *mongo.Client
	coll   *mongo.Collection
}

// NewMongoJournal connects to uri and uses the given database.
func NewMongoJournal(ctx context.Context, uri, database string) (*MongoJournal, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, err
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, err
	}
	return &MongoJournal{
		client: client,
		coll:   client.Database(database).Collection(MongoCollection),
	}, nil
}

// Record upserts the run document.
func (j *MongoJournal) Record(ctx context.Context, e Entry) error {
	_, err := j.coll.ReplaceOne(ctx, bson.M{"_id": e.RunID}, e, options.Replace().SetUpsert(true))
	return err
}

// Get loads one run.
func (j *MongoJournal) Get(ctx context.Context, runID string) (Entry, bool, error) {
	var e Entry
	err := j.coll.FindOne(ctx, bson.M{"_id": runID}).Decode(&e)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return Entry{}, false, nil
	}
	if err != nil {
		return Entry{}, false, err
	}
	return e, true, nil
}

// List returns runs sorted by start time, newest first.
func (j *MongoJournal) List(ctx context.Context, limit int) ([]Entry, error) {
	opts := options.Find().SetSort(bson.D{{Key: "started_at", Value: -1}})
	if limit > 0 {
		opts.SetLimit(int64(limit))
	}
	cur, err := j.coll.Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, err
	}
	var out []Entry
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Close disconnects the client.
func (j *MongoJournal) Close() error {
	return j.client.Disconnect(context.Background())
}

var _ Journal = (*MongoJournal)(nil)
