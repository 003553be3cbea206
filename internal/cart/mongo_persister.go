package cart

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// CartsCollection is the mongo collection holding cart documents.
const CartsCollection = "carts"

// cartDocument keeps the state as its JSON encoding so amounts round-trip exactly.
type cartDocument struct {
	Key       string    `bson:"_id"`
	Payload   string    `bson:"payload"`
	UpdatedAt time.Time `bson:"updated_at"`
}

func newCartDocument(key string, state State, now time.Time) (cartDocument, error) {
	data, err := Marshal(state)
	if err != nil {
		return cartDocument{}, err
	}
	return cartDocument{Key: key, Payload: string(data), UpdatedAt: now.UTC()}, nil
}

func (d cartDocument) state() (*State, error) {
	return Unmarshal([]byte(d.Payload))
}

// MongoPersister upserts one document per cart key.
type MongoPersister struct {
	collection *mongo.Collection
	now        func() time.Time
}

func NewMongoPersister(db *mongo.Database) *MongoPersister {
	return &MongoPersister{collection: db.Collection(CartsCollection), now: time.Now}
}

func (p *MongoPersister) Load(ctx context.Context, key string) (*State, error) {
	var doc cartDocument
	err := p.collection.FindOne(ctx, bson.D{{Key: "_id", Value: key}}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return doc.state()
}

func (p *MongoPersister) Save(ctx context.Context, key string, state State) error {
	doc, err := newCartDocument(key, state, p.now())
	if err != nil {
		return err
	}
	_, err = p.collection.ReplaceOne(ctx, bson.D{{Key: "_id", Value: key}}, doc, options.Replace().SetUpsert(true))
	return err
}

// DeleteStale removes carts not updated since before.
func (p *MongoPersister) DeleteStale(ctx context.Context, before time.Time) (int64, error) {
	res, err := p.collection.DeleteMany(ctx, bson.D{{Key: "updated_at", Value: bson.D{{Key: "$lt", Value: before.UTC()}}}})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}
