package store

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"meditech-backend/internal/domain"
	apperrors "meditech-backend/pkg/errors"
)

// MongoContactStore implements ContactStore on a MongoDB collection.
type MongoContactStore struct {
	coll *mongo.Collection
}

// NewMongoContactStore creates a contact store backed by the given collection.
func NewMongoContactStore(db *mongo.Database, collection string) *MongoContactStore {
	return &MongoContactStore{coll: db.Collection(collection)}
}

func (s *MongoContactStore) Insert(ctx context.Context, contact *domain.Contact) error {
	if _, err := s.coll.InsertOne(ctx, contact); err != nil {
		return apperrors.Wrap(apperrors.ErrCodePersistence, "failed to save enquiry", err)
	}
	return nil
}

func (s *MongoContactStore) FindByContactID(ctx context.Context, contactID string) (*domain.Contact, error) {
	var contact domain.Contact
	err := s.coll.FindOne(ctx, bson.M{"contactId": contactID}).Decode(&contact)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.New(apperrors.ErrCodeNotFound, "enquiry not found")
		}
		return nil, apperrors.Wrap(apperrors.ErrCodePersistence, "failed to fetch enquiry", err)
	}
	return &contact, nil
}

func (s *MongoContactStore) List(ctx context.Context, enquiryType domain.EnquiryType, limit int) ([]domain.Contact, error) {
	filter := bson.M{}
	if enquiryType != "" {
		filter["enquiryType"] = enquiryType
	}

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	if limit > 0 {
		opts.SetLimit(int64(limit))
	}

	cur, err := s.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodePersistence, "failed to fetch enquiries", err)
	}

	contacts := []domain.Contact{}
	if err := cur.All(ctx, &contacts); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodePersistence, "failed to decode enquiries", err)
	}
	return contacts, nil
}

func (s *MongoContactStore) AppendResponse(ctx context.Context, contactID string, response domain.EnquiryResponse) error {
	res, err := s.coll.UpdateOne(ctx,
		bson.M{"contactId": contactID},
		bson.M{"$push": bson.M{"responses": response}},
	)
	if err != nil {
		return apperrors.Wrap(apperrors.ErrCodePersistence, "failed to record enquiry response", err)
	}
	if res.MatchedCount == 0 {
		return apperrors.New(apperrors.ErrCodeNotFound, "enquiry not found")
	}
	return nil
}
