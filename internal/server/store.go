package server

import (
	"context"
	"encoding/json"
	"sort"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	mongoopts "go.mongodb.org/mongo-driver/mongo/options"

	"github.com/matzehuels/sunburst/pkg/errors"
)

// StoredDiagram is a saved gallery entry.
type StoredDiagram struct {
	ID        string          `json:"id" bson:"_id"`
	Name      string          `json:"name" bson:"name"`
	TreeHash  string          `json:"tree_hash" bson:"tree_hash"`
	Tree      json.RawMessage `json:"tree" bson:"tree"`
	SVG       []byte          `json:"svg,omitempty" bson:"svg"`
	CreatedAt time.Time       `json:"created_at" bson:"created_at"`
}

// DiagramStore is the interface for gallery storage backends.
type DiagramStore interface {
	// Save stores a diagram.
	Save(ctx context.Context, d *StoredDiagram) error

	// Get retrieves a diagram by ID.
	Get(ctx context.Context, id string) (*StoredDiagram, error)

	// List returns recent diagrams, newest first. SVG bytes are omitted.
	List(ctx context.Context, limit int64) ([]*StoredDiagram, error)

	// Delete removes a diagram.
	Delete(ctx context.Context, id string) error

	// Close releases backend resources.
	Close(ctx context.Context) error
}

// DefaultListLimit caps gallery listings.
const DefaultListLimit = 50

// MongoStore is a MongoDB-backed gallery store for server deployments.
type MongoStore struct {
	client *mongo.Client
	coll   *mongo.Collection
}

// NewMongoStore connects to MongoDB and verifies the connection.
func NewMongoStore(ctx context.Context, uri, database string) (*MongoStore, error) {
	connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(connectCtx, mongoopts.Client().ApplyURI(uri))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "connect to mongodb")
	}
	if err := client.Ping(connectCtx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "ping mongodb")
	}

	return &MongoStore{
		client: client,
		coll:   client.Database(database).Collection("diagrams"),
	}, nil
}

// Save stores a diagram.
func (s *MongoStore) Save(ctx context.Context, d *StoredDiagram) error {
	if _, err := s.coll.InsertOne(ctx, d); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "save diagram")
	}
	return nil
}

// Get retrieves a diagram by ID.
func (s *MongoStore) Get(ctx context.Context, id string) (*StoredDiagram, error) {
	var d StoredDiagram
	err := s.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&d)
	if err == mongo.ErrNoDocuments {
		return nil, errors.New(errors.ErrCodeNotFound, "%s", "diagram not found: "+id)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "load diagram")
	}
	return &d, nil
}

// List returns recent diagrams, newest first.
func (s *MongoStore) List(ctx context.Context, limit int64) ([]*StoredDiagram, error) {
	if limit <= 0 {
		limit = DefaultListLimit
	}
	opts := mongoopts.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(limit).
		SetProjection(bson.M{"svg": 0})

	cursor, err := s.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "list diagrams")
	}
	defer cursor.Close(ctx)

	var out []*StoredDiagram
	if err := cursor.All(ctx, &out); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "decode diagrams")
	}
	return out, nil
}

// Delete removes a diagram.
func (s *MongoStore) Delete(ctx context.Context, id string) error {
	res, err := s.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "delete diagram")
	}
	if res.DeletedCount == 0 {
		return errors.New(errors.ErrCodeNotFound, "%s", "diagram not found: "+id)
	}
	return nil
}

// Close disconnects from MongoDB.
func (s *MongoStore) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

var _ DiagramStore = (*MongoStore)(nil)

// MemoryDiagramStore is an in-memory gallery store for development and tests.
type MemoryDiagramStore struct {
	mu       sync.RWMutex
	diagrams map[string]*StoredDiagram
}

// NewMemoryDiagramStore creates an in-memory gallery store.
func NewMemoryDiagramStore() *MemoryDiagramStore {
	return &MemoryDiagramStore{diagrams: make(map[string]*StoredDiagram)}
}

// Save stores a diagram.
func (s *MemoryDiagramStore) Save(ctx context.Context, d *StoredDiagram) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	copied := *d
	s.diagrams[d.ID] = &copied
	return nil
}

// Get retrieves a diagram by ID.
func (s *MemoryDiagramStore) Get(ctx context.Context, id string) (*StoredDiagram, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	d, ok := s.diagrams[id]
	if !ok {
		return nil, errors.New(errors.ErrCodeNotFound, "%s", "diagram not found: "+id)
	}
	copied := *d
	return &copied, nil
}

// List returns recent diagrams, newest first.
func (s *MemoryDiagramStore) List(ctx context.Context, limit int64) ([]*StoredDiagram, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if limit <= 0 {
		limit = DefaultListLimit
	}
	out := make([]*StoredDiagram, 0, len(s.diagrams))
	for _, d := range s.diagrams {
		copied := *d
		copied.SVG = nil
		out = append(out, &copied)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	if int64(len(out)) > limit {
		out = out[:limit]
	}
	return out, nil
}

// Delete removes a diagram.
func (s *MemoryDiagramStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.diagrams[id]; !ok {
		return errors.New(errors.ErrCodeNotFound, "%s", "diagram not found: "+id)
	}
	delete(s.diagrams, id)
	return nil
}

// Close does nothing for the in-memory store.
func (s *MemoryDiagramStore) Close(ctx context.Context) error {
	return nil
}

var _ DiagramStore = (*MemoryDiagramStore)(nil)
