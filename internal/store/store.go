// Package store defines the persistence interfaces the services depend on
// and their MongoDB implementations. Services never touch the driver
// directly, which keeps them testable against in-memory fakes.
package store

import (
	"context"

	"meditech-backend/internal/domain"
)

// ContactStore persists enquiry records.
type ContactStore interface {
	// Insert persists a new enquiry record.
	Insert(ctx context.Context, contact *domain.Contact) error
	// FindByContactID looks up a record by its opaque contact id (not the
	// storage id). Returns a NOT_FOUND AppError when absent.
	FindByContactID(ctx context.Context, contactID string) (*domain.Contact, error)
	// List returns records newest-first. enquiryType narrows the result when
	// non-empty; limit caps the result set.
	List(ctx context.Context, enquiryType domain.EnquiryType, limit int) ([]domain.Contact, error)
	// AppendResponse records an operator reply on the enquiry record.
	AppendResponse(ctx context.Context, contactID string, response domain.EnquiryResponse) error
}

// ProductStore persists the product aggregate tree.
type ProductStore interface {
	// Insert persists a new product with its embedded models.
	Insert(ctx context.Context, product *domain.Product) error
	// FindByID looks up a product by storage id. Returns a NOT_FOUND
	// AppError when absent or when the id is malformed.
	FindByID(ctx context.Context, productID string) (*domain.Product, error)
	// FindByModelID locates the product containing the given embedded model.
	// Fails soft: returns (nil, nil) when no product matches.
	FindByModelID(ctx context.Context, modelID string) (*domain.Product, error)
	// ReplaceModels overwrites the product's embedded model array. All tree
	// mutations go through this single write path (last-write-wins at the
	// document level).
	ReplaceModels(ctx context.Context, productID string, models []domain.Model) error
	// FindAll returns every product with its embedded models.
	FindAll(ctx context.Context) ([]domain.Product, error)
	// AggregateValuable runs the store-level unwind/match/project pipeline
	// for the valuable-products view: one row per Live model whose
	// valuableProduct flag is set.
	AggregateValuable(ctx context.Context) ([]domain.ModelView, error)
}
