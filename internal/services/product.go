package services

import (
	"context"
	"fmt"
	"log"

	"meditech-backend/internal/domain"
	"meditech-backend/internal/metrics"
	"meditech-backend/internal/store"
	apperrors "meditech-backend/pkg/errors"
)

// ModelRef is a lightweight model reference for client-side model switching.
type ModelRef struct {
	ModelID   string `json:"modelId"`
	ModelName string `json:"modelName"`
}

// ModelWithSiblings is the result of a model lookup: the model's full view
// plus references to every model under the same product.
type ModelWithSiblings struct {
	domain.ModelView
	AllModels []ModelRef `json:"allModels"`
}

// GroupedModel is one matching model inside a grouped scheme view.
type GroupedModel struct {
	ModelID   string               `json:"modelId"`
	ModelName string               `json:"modelName"`
	Status    domain.ModelStatus   `json:"status"`
	Details   *domain.ModelDetails `json:"productModelDetails"`
}

// ProductGroup is one product with its matching models in a grouped view.
type ProductGroup struct {
	ProductID       string         `json:"productId"`
	ProductTitle    string         `json:"productTitle"`
	ProductCategory string         `json:"productCategory"`
	Description     string         `json:"description,omitempty"`
	Models          []GroupedModel `json:"models"`
}

// ProductService builds, mutates and queries the product -> model -> color
// tree. All mutations go through the Product aggregate root so invariants
// (name uniqueness, lazy detail init, status transitions) hold in one place.
type ProductService struct {
	store store.ProductStore
}

// NewProductService creates a new product service
func NewProductService(productStore store.ProductStore) *ProductService {
	return &ProductService{store: productStore}
}

// CreateProduct creates a product with a single embedded model in Padding
// status and no details.
func (s *ProductService) CreateProduct(ctx context.Context, category, title, firstModelName string) (*domain.Product, error) {
	product := &domain.Product{
		ProductCategory: category,
		ProductTitle:    title,
		Models: []domain.Model{
			{
				ModelID:   domain.NewModelID(),
				ModelName: firstModelName,
				Status:    domain.StatusPadding,
			},
		},
	}

	if err := s.store.Insert(ctx, product); err != nil {
		log.Printf("[PRODUCT] Create failed: %v", err)
		return nil, err
	}

	log.Printf("[PRODUCT] Created: id=%s title=%s", product.ID.Hex(), product.ProductTitle)
	metrics.RecordProductCreated()
	return product, nil
}

// AddModel appends a new model to a product. Model names are unique per
// product, compared case-insensitively.
func (s *ProductService) AddModel(ctx context.Context, productID, modelName string, status domain.ModelStatus) (*domain.Model, error) {
	if status == "" {
		status = domain.StatusPadding
	}
	if !status.Valid() {
		return nil, apperrors.New(apperrors.ErrCodeValidation, fmt.Sprintf("unknown model status %q", status))
	}

	product, err := s.store.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	if product.HasModelNamed(modelName) {
		return nil, apperrors.New(apperrors.ErrCodeConflict, "model with this name already exists")
	}

	model := domain.Model{
		ModelID:   domain.NewModelID(),
		ModelName: modelName,
		Status:    status,
	}
	product.Models = append(product.Models, model)

	if err := s.store.ReplaceModels(ctx, productID, product.Models); err != nil {
		return nil, err
	}

	log.Printf("[PRODUCT] Model added: product=%s model=%s status=%s", productID, model.ModelID, model.Status)
	return &model, nil
}

// SetModelDetails replaces the model's detail block wholesale.
func (s *ProductService) SetModelDetails(ctx context.Context, productID, modelID string, details *domain.ModelDetails) (*domain.Model, error) {
	product, err := s.store.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	model := product.FindModel(modelID)
	if model == nil {
		return nil, apperrors.New(apperrors.ErrCodeNotFound, "model not found")
	}

	model.Details = details

	if err := s.store.ReplaceModels(ctx, productID, product.Models); err != nil {
		return nil, err
	}

	log.Printf("[PRODUCT] Model details set: product=%s model=%s", productID, modelID)
	return model, nil
}

// AddColorToModel appends a color to a model, lazily initializing the detail
// block on first use. Repeated additions never reset previously stored
// colors or scheme flags.
func (s *ProductService) AddColorToModel(ctx context.Context, productID, modelID string, color domain.Color) (*domain.Color, error) {
	product, err := s.store.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	model := product.FindModel(modelID)
	if model == nil {
		return nil, apperrors.New(apperrors.ErrCodeNotFound, "model not found")
	}

	if model.Details == nil {
		model.Details = domain.NewModelDetails()
	}

	if color.ProductImages == nil {
		color.ProductImages = []domain.Image{}
	}
	if color.GalleryImages == nil {
		color.GalleryImages = []domain.Image{}
	}
	if color.Stock < 0 {
		return nil, apperrors.New(apperrors.ErrCodeValidation, "stock must not be negative")
	}
	for i := range color.Prices {
		color.Prices[i].ComputeFinal()
	}

	model.Details.Colors = append(model.Details.Colors, color)

	if err := s.store.ReplaceModels(ctx, productID, product.Models); err != nil {
		return nil, err
	}

	log.Printf("[PRODUCT] Color added: product=%s model=%s color=%s", productID, modelID, color.ColorName)
	return &color, nil
}

// UpdateModelStatus promotes or parks a model, enforcing the legal
// transitions (Padding -> Live, Padding -> Enquiry, Live -> Enquiry).
func (s *ProductService) UpdateModelStatus(ctx context.Context, productID, modelID string, newStatus domain.ModelStatus) (*domain.Model, error) {
	if !newStatus.Valid() {
		return nil, apperrors.New(apperrors.ErrCodeValidation, fmt.Sprintf("unknown model status %q", newStatus))
	}

	product, err := s.store.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	model := product.FindModel(modelID)
	if model == nil {
		return nil, apperrors.New(apperrors.ErrCodeNotFound, "model not found")
	}

	if !domain.CanTransition(model.Status, newStatus) {
		return nil, apperrors.New(apperrors.ErrCodeValidation,
			fmt.Sprintf("illegal status transition %s -> %s", model.Status, newStatus))
	}

	model.Status = newStatus

	if err := s.store.ReplaceModels(ctx, productID, product.Models); err != nil {
		return nil, err
	}

	log.Printf("[PRODUCT] Status updated: product=%s model=%s status=%s", productID, modelID, newStatus)
	return model, nil
}

// collectModelViews is the single aggregation primitive behind the flat
// filtered views: flatten every product's models and keep those matching
// the predicate.
func collectModelViews(products []domain.Product, match func(domain.Model) bool) []domain.ModelView {
	views := []domain.ModelView{}
	for pi := range products {
		p := &products[pi]
		for mi := range p.Models {
			m := p.Models[mi]
			if !match(m) {
				continue
			}
			views = append(views, domain.ModelView{
				ProductID:          p.ID.Hex(),
				ProductTitle:       p.ProductTitle,
				ProductDescription: p.Description,
				ProductCategory:    p.ProductCategory,
				ModelID:            m.ModelID,
				ModelName:          m.ModelName,
				Status:             m.Status,
				Details:            m.Details,
			})
		}
	}
	return views
}

// groupModelViews is the grouped variant of the same primitive: one entry
// per product holding its matching models.
func groupModelViews(products []domain.Product, match func(domain.Model) bool) []ProductGroup {
	groups := []ProductGroup{}
	for pi := range products {
		p := &products[pi]
		matched := []GroupedModel{}
		for mi := range p.Models {
			m := p.Models[mi]
			if !match(m) {
				continue
			}
			matched = append(matched, GroupedModel{
				ModelID:   m.ModelID,
				ModelName: m.ModelName,
				Status:    m.Status,
				Details:   m.Details,
			})
		}
		if len(matched) == 0 {
			continue
		}
		groups = append(groups, ProductGroup{
			ProductID:       p.ID.Hex(),
			ProductTitle:    p.ProductTitle,
			ProductCategory: p.ProductCategory,
			Description:     p.Description,
			Models:          matched,
		})
	}
	return groups
}

func schemeMatcher(key string) func(domain.Model) bool {
	return func(m domain.Model) bool {
		if m.Status != domain.StatusLive || m.Details == nil {
			return false
		}
		value, known := m.Details.Scheme.Flag(key)
		return known && value
	}
}

// ListLiveModels returns a flat denormalized row per Live model.
func (s *ProductService) ListLiveModels(ctx context.Context) ([]domain.ModelView, error) {
	products, err := s.store.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	return collectModelViews(products, func(m domain.Model) bool {
		return m.Status == domain.StatusLive
	}), nil
}

// ListPendingModels returns the internal work-queue view: models in Padding
// or Enquiry status.
func (s *ProductService) ListPendingModels(ctx context.Context) ([]domain.ModelView, error) {
	products, err := s.store.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	return collectModelViews(products, func(m domain.Model) bool {
		return m.Status == domain.StatusPadding || m.Status == domain.StatusEnquiry
	}), nil
}

// ListOnSaleModels returns Live models flagged saleProduct, flat shape.
func (s *ProductService) ListOnSaleModels(ctx context.Context) ([]domain.ModelView, error) {
	products, err := s.store.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	return collectModelViews(products, schemeMatcher(domain.SchemeSaleProduct)), nil
}

// ListModelsByScheme returns Live models carrying the given scheme flag,
// grouped by parent product. Unknown scheme keys are rejected instead of
// silently matching nothing.
func (s *ProductService) ListModelsByScheme(ctx context.Context, schemeKey string) ([]ProductGroup, error) {
	if _, known := (domain.Scheme{}).Flag(schemeKey); !known {
		return nil, apperrors.New(apperrors.ErrCodeValidation, fmt.Sprintf("unknown scheme key %q", schemeKey))
	}

	products, err := s.store.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	return groupModelViews(products, schemeMatcher(schemeKey)), nil
}

// ListValuableProducts returns Live models flagged valuableProduct as a flat
// view, computed by the store's aggregation pipeline.
func (s *ProductService) ListValuableProducts(ctx context.Context) ([]domain.ModelView, error) {
	return s.store.AggregateValuable(ctx)
}

// GetModelByID locates the product owning the model. Fails soft: a missing
// model yields (nil, nil), not an error.
func (s *ProductService) GetModelByID(ctx context.Context, modelID string) (*ModelWithSiblings, error) {
	product, err := s.store.FindByModelID(ctx, modelID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, nil
	}

	model := product.FindModel(modelID)
	if model == nil {
		return nil, nil
	}

	siblings := make([]ModelRef, 0, len(product.Models))
	for i := range product.Models {
		siblings = append(siblings, ModelRef{
			ModelID:   product.Models[i].ModelID,
			ModelName: product.Models[i].ModelName,
		})
	}

	return &ModelWithSiblings{
		ModelView: domain.ModelView{
			ProductID:          product.ID.Hex(),
			ProductTitle:       product.ProductTitle,
			ProductDescription: product.Description,
			ProductCategory:    product.ProductCategory,
			ModelID:            model.ModelID,
			ModelName:          model.ModelName,
			Status:             model.Status,
			Details:            model.Details,
		},
		AllModels: siblings,
	}, nil
}
