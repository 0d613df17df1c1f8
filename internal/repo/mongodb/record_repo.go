package mongodb

import (
	"context"
	"sync"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/steveyiyo/tts-clone-backend/internal/store"
	"github.com/steveyiyo/tts-clone-backend/pkg/types"
)

const collectionName = "audios"

type Options struct {
	URI              string
	Database         string
	ConnectTimeout   time.Duration
	OperationTimeout time.Duration
}

type audioDocument struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Text      string             `bson:"text"`
	Language  string             `bson:"language"`
	Voice     string             `bson:"voice"`
	URL       string             `bson:"url"`
	Timestamp time.Time          `bson:"timestamp"`
	Status    string             `bson:"status"`
}

// RecordRepo stores records in the "audios" collection. The client is
// connected lazily and reconnected once per call when a ping fails.
type RecordRepo struct {
	opts Options
	log  zerolog.Logger

	mu     sync.Mutex
	client *mongo.Client
}

func NewRecordRepo(opts Options, log zerolog.Logger) *RecordRepo {
	return &RecordRepo{opts: opts, log: log}
}

func (r *RecordRepo) Name() string { return "mongodb" }

func (r *RecordRepo) Insert(ctx context.Context, rec types.SynthesisRecord) store.Result {
	coll, err := r.collection(ctx)
	if err != nil {
		return store.Down(err)
	}
	res, err := coll.InsertOne(ctx, toDocument(rec))
	if err != nil {
		return store.Down(errors.Wrap(err, "insert audio document"))
	}
	oid, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return store.Down(errors.Errorf("unexpected inserted id %T", res.InsertedID))
	}
	return store.Stored(oid.Hex())
}

func (r *RecordRepo) Find(ctx context.Context, id string) store.Result {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		// Not an ObjectID, so it can only live in the transient table.
		return store.Missing()
	}
	coll, err := r.collection(ctx)
	if err != nil {
		return store.Down(err)
	}
	var doc audioDocument
	err = coll.FindOne(ctx, bson.D{{Key: "_id", Value: oid}}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return store.Missing()
	}
	if err != nil {
		return store.Down(errors.Wrap(err, "find audio document"))
	}
	return store.Found(fromDocument(doc))
}

func (r *RecordRepo) Close(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.client == nil {
		return nil
	}
	err := r.client.Disconnect(ctx)
	r.client = nil
	return err
}

func (r *RecordRepo) collection(ctx context.Context) (*mongo.Collection, error) {
	r.mu.Lock()
	client := r.client
	r.mu.Unlock()

	if client != nil {
		err := client.Database(r.opts.Database).RunCommand(ctx, bson.D{{Key: "ping", Value: 1}}).Err()
		if err == nil {
			return client.Database(r.opts.Database).Collection(collectionName), nil
		}
		r.log.Warn().Err(err).Msg("mongodb ping failed, reconnecting")
	}
	return r.reconnect(ctx, client)
}

// reconnect dials a fresh client and swaps it in for stale. If another
// call swapped stale out first, that client wins and ours is discarded.
func (r *RecordRepo) reconnect(ctx context.Context, stale *mongo.Client) (*mongo.Collection, error) {
	client, err := mongo.Connect(ctx, r.clientOptions())
	if err != nil {
		return nil, errors.Wrap(err, "connect to mongodb")
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, errors.Wrap(err, "ping mongodb")
	}

	r.mu.Lock()
	current := r.client
	if current != nil && current != stale {
		r.mu.Unlock()
		_ = client.Disconnect(ctx)
		return current.Database(r.opts.Database).Collection(collectionName), nil
	}
	r.client = client
	r.mu.Unlock()

	if stale != nil {
		_ = stale.Disconnect(ctx)
	}
	r.log.Info().Str("database", r.opts.Database).Msg("connected to mongodb")
	return client.Database(r.opts.Database).Collection(collectionName), nil
}

func (r *RecordRepo) clientOptions() *options.ClientOptions {
	api := options.ServerAPI(options.ServerAPIVersion1).
		SetStrict(true).
		SetDeprecationErrors(true)
	opts := options.Client().ApplyURI(r.opts.URI).SetServerAPIOptions(api)
	if r.opts.ConnectTimeout > 0 {
		opts.SetConnectTimeout(r.opts.ConnectTimeout).SetServerSelectionTimeout(r.opts.ConnectTimeout)
	}
	if r.opts.OperationTimeout > 0 {
		opts.SetTimeout(r.opts.OperationTimeout)
	}
	return opts
}

func toDocument(rec types.SynthesisRecord) audioDocument {
	return audioDocument{
		Text:      rec.Text,
		Language:  rec.Language,
		Voice:     rec.Voice,
		URL:       rec.URL,
		Timestamp: rec.Timestamp,
		Status:    string(rec.Status),
	}
}

func fromDocument(doc audioDocument) types.SynthesisRecord {
	return types.SynthesisRecord{
		ID:        doc.ID.Hex(),
		Text:      doc.Text,
		Language:  doc.Language,
		Voice:     doc.Voice,
		URL:       doc.URL,
		Timestamp: doc.Timestamp.UTC(),
		Status:    types.Status(doc.Status),
	}
}
