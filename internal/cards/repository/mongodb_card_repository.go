package repository

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	cardsDomain "github.com/ratt/validator/internal/cards/domain"
	apperrors "github.com/ratt/validator/internal/errors"
)

// cardsCollection is the MongoDB collection holding card documents.
const cardsCollection = "cards"

// cardDocument is the BSON shape of a card record. The UID doubles as the
// document id, so duplicate registration fails on the unique _id index.
type cardDocument struct {
	UID            string             `bson:"_id"`
	Status         cardsDomain.Status `bson:"status"`
	Credits        int                `bson:"credits"`
	ExpirationDate *time.Time         `bson:"expiration_date,omitempty"`
	LastScanAt     *time.Time         `bson:"last_scan_at,omitempty"`
	Name           string             `bson:"name"`
	Version        uint64             `bson:"version"`
	CreatedAt      time.Time          `bson:"created_at"`
	UpdatedAt      time.Time          `bson:"updated_at"`
}

func (d *cardDocument) toDomain() *cardsDomain.Card {
	return &cardsDomain.Card{
		UID:            d.UID,
		Status:         d.Status,
		Credits:        d.Credits,
		ExpirationDate: d.ExpirationDate,
		LastScanAt:     d.LastScanAt,
		Name:           d.Name,
		Version:        d.Version,
		CreatedAt:      d.CreatedAt,
		UpdatedAt:      d.UpdatedAt,
	}
}

func newCardDocument(card *cardsDomain.Card) *cardDocument {
	return &cardDocument{
		UID:            card.UID,
		Status:         card.Status,
		Credits:        card.Credits,
		ExpirationDate: card.ExpirationDate,
		LastScanAt:     card.LastScanAt,
		Name:           card.Name,
		Version:        card.Version,
		CreatedAt:      card.CreatedAt,
		UpdatedAt:      card.UpdatedAt,
	}
}

// MongoDBCardRepository implements card persistence on a MongoDB collection.
type MongoDBCardRepository struct {
	collection *mongo.Collection
}

// NewMongoDBCardRepository creates a new MongoDB card repository instance.
func NewMongoDBCardRepository(db *mongo.Database) *MongoDBCardRepository {
	return &MongoDBCardRepository{collection: db.Collection(cardsCollection)}
}

// Get retrieves a card record by its UID.
func (r *MongoDBCardRepository) Get(ctx context.Context, uid string) (*cardsDomain.Card, error) {
	var doc cardDocument
	err := r.collection.FindOne(ctx, bson.M{"_id": uid}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, cardsDomain.ErrCardNotFound
		}
		return nil, classifyStorageErr(err, "failed to get card")
	}

	return doc.toDomain(), nil
}

// Create inserts a new card document.
func (r *MongoDBCardRepository) Create(ctx context.Context, card *cardsDomain.Card) error {
	_, err := r.collection.InsertOne(ctx, newCardDocument(card))
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return cardsDomain.ErrCardAlreadyExists
		}
		return classifyStorageErr(err, "failed to create card")
	}

	return nil
}

// CommitIfUnchanged replaces the card document only while its stored version
// still equals expectedVersion; the filter plus single-document atomicity of
// UpdateOne provides the compare-and-swap.
func (r *MongoDBCardRepository) CommitIfUnchanged(
	ctx context.Context,
	card *cardsDomain.Card,
	expectedVersion uint64,
) error {
	updatedAt := time.Now().UTC()

	update := bson.M{
		"$set": bson.M{
			"status":          card.Status,
			"credits":         card.Credits,
			"expiration_date": card.ExpirationDate,
			"last_scan_at":    card.LastScanAt,
			"name":            card.Name,
			"version":         expectedVersion + 1,
			"updated_at":      updatedAt,
		},
	}

	result, err := r.collection.UpdateOne(
		ctx,
		bson.M{"_id": card.UID, "version": expectedVersion},
		update,
	)
	if err != nil {
		return classifyStorageErr(err, "failed to commit card")
	}

	if result.MatchedCount == 0 {
		count, err := r.collection.CountDocuments(ctx, bson.M{"_id": card.UID})
		if err != nil {
			return classifyStorageErr(err, "failed to read card after conflict")
		}
		if count == 0 {
			return cardsDomain.ErrCardNotFound
		}
		return apperrors.Wrap(apperrors.ErrConflict, "card version mismatch")
	}

	card.Version = expectedVersion + 1
	card.UpdatedAt = updatedAt
	return nil
}

// Delete removes a card document by its UID.
func (r *MongoDBCardRepository) Delete(ctx context.Context, uid string) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": uid})
	if err != nil {
		return classifyStorageErr(err, "failed to delete card")
	}
	if result.DeletedCount == 0 {
		return cardsDomain.ErrCardNotFound
	}

	return nil
}

// List retrieves cards ordered by UID with pagination.
func (r *MongoDBCardRepository) List(
	ctx context.Context,
	offset, limit int,
) ([]*cardsDomain.Card, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "_id", Value: 1}}).
		SetSkip(int64(offset)).
		SetLimit(int64(limit))

	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, classifyStorageErr(err, "failed to list cards")
	}
	defer cursor.Close(ctx)

	var cards []*cardsDomain.Card
	for cursor.Next(ctx) {
		var doc cardDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, classifyStorageErr(err, "failed to decode card document")
		}
		cards = append(cards, doc.toDomain())
	}
	if err := cursor.Err(); err != nil {
		return nil, classifyStorageErr(err, "failed to list cards")
	}

	return cards, nil
}
