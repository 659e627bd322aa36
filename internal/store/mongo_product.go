package store

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"meditech-backend/internal/domain"
	apperrors "meditech-backend/pkg/errors"
)

// MongoProductStore implements ProductStore on a MongoDB collection.
type MongoProductStore struct {
	coll *mongo.Collection
}

// NewMongoProductStore creates a product store backed by the given collection.
func NewMongoProductStore(db *mongo.Database, collection string) *MongoProductStore {
	return &MongoProductStore{coll: db.Collection(collection)}
}

func (s *MongoProductStore) Insert(ctx context.Context, product *domain.Product) error {
	res, err := s.coll.InsertOne(ctx, product)
	if err != nil {
		return apperrors.Wrap(apperrors.ErrCodePersistence, "failed to save product", err)
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		product.ID = oid
	}
	return nil
}

func (s *MongoProductStore) FindByID(ctx context.Context, productID string) (*domain.Product, error) {
	oid, err := primitive.ObjectIDFromHex(productID)
	if err != nil {
		return nil, apperrors.New(apperrors.ErrCodeNotFound, "product not found")
	}

	var product domain.Product
	err = s.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&product)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.New(apperrors.ErrCodeNotFound, "product not found")
		}
		return nil, apperrors.Wrap(apperrors.ErrCodePersistence, "failed to fetch product", err)
	}
	return &product, nil
}

func (s *MongoProductStore) FindByModelID(ctx context.Context, modelID string) (*domain.Product, error) {
	var product domain.Product
	err := s.coll.FindOne(ctx, bson.M{"productModels.modelId": modelID}).Decode(&product)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil // fail-soft: absence is not an error here
		}
		return nil, apperrors.Wrap(apperrors.ErrCodePersistence, "failed to fetch product by model", err)
	}
	return &product, nil
}

func (s *MongoProductStore) ReplaceModels(ctx context.Context, productID string, models []domain.Model) error {
	oid, err := primitive.ObjectIDFromHex(productID)
	if err != nil {
		return apperrors.New(apperrors.ErrCodeNotFound, "product not found")
	}

	res, err := s.coll.UpdateOne(ctx,
		bson.M{"_id": oid},
		bson.M{"$set": bson.M{
			"productModels": models,
			"updatedAt":     time.Now().UTC(),
		}},
	)
	if err != nil {
		return apperrors.Wrap(apperrors.ErrCodePersistence, "failed to update product models", err)
	}
	if res.MatchedCount == 0 {
		return apperrors.New(apperrors.ErrCodeNotFound, "product not found")
	}
	return nil
}

func (s *MongoProductStore) FindAll(ctx context.Context) ([]domain.Product, error) {
	cur, err := s.coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodePersistence, "failed to fetch products", err)
	}

	products := []domain.Product{}
	if err := cur.All(ctx, &products); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodePersistence, "failed to decode products", err)
	}
	return products, nil
}

// AggregateValuable unwinds the embedded models and projects one flat row
// per Live model flagged valuableProduct.
func (s *MongoProductStore) AggregateValuable(ctx context.Context) ([]domain.ModelView, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$unwind", Value: "$productModels"}},
		{{Key: "$match", Value: bson.M{
			"productModels.status": domain.StatusLive,
			"productModels.productModelDetails.scheme.valuableProduct": true,
		}}},
		{{Key: "$project", Value: bson.M{
			"_id":                 0,
			"productId":           bson.M{"$toString": "$_id"},
			"productTitle":        1,
			"productDescription":  "$description",
			"productCategory":     1,
			"modelId":             "$productModels.modelId",
			"modelName":           "$productModels.modelName",
			"status":              "$productModels.status",
			"productModelDetails": "$productModels.productModelDetails",
		}}},
	}

	cur, err := s.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodePersistence, "valuable products aggregation failed", err)
	}

	views := []domain.ModelView{}
	if err := cur.All(ctx, &views); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodePersistence, "failed to decode valuable products", err)
	}
	return views, nil
}
