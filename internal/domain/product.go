package domain

import (
	"math"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ModelStatus is the lifecycle status of a product model.
type ModelStatus string

const (
	StatusPadding ModelStatus = "Padding"
	StatusLive    ModelStatus = "Live"
	StatusEnquiry ModelStatus = "Enquiry"
)

// Valid reports whether s is a known model status.
func (s ModelStatus) Valid() bool {
	switch s {
	case StatusPadding, StatusLive, StatusEnquiry:
		return true
	}
	return false
}

// CanTransition reports whether a model may move from one status to another.
// Padding models can be promoted to Live or parked as Enquiry; Live models
// can only move to Enquiry. Demotions (Live -> Padding) and transitions out
// of Enquiry are rejected.
func CanTransition(from, to ModelStatus) bool {
	switch from {
	case StatusPadding:
		return to == StatusLive || to == StatusEnquiry
	case StatusLive:
		return to == StatusEnquiry
	}
	return false
}

// Scheme is the closed set of marketing classification flags on a model.
// Flags are independent booleans used for view filtering only.
type Scheme struct {
	SaleProduct        bool `bson:"saleProduct" json:"saleProduct"`
	TradingProduct     bool `bson:"tradingProduct" json:"tradingProduct"`
	CompanyProduct     bool `bson:"companyProduct" json:"companyProduct"`
	ValuableProduct    bool `bson:"valuableProduct" json:"valuableProduct"`
	RecommendedProduct bool `bson:"recommendedProduct" json:"recommendedProduct"`
}

// Scheme flag keys as they appear on the wire and in scheme view URLs.
const (
	SchemeSaleProduct        = "saleProduct"
	SchemeTradingProduct     = "tradingProduct"
	SchemeCompanyProduct     = "companyProduct"
	SchemeValuableProduct    = "valuableProduct"
	SchemeRecommendedProduct = "recommendedProduct"
)

// SchemeKeys returns every known scheme flag key.
func SchemeKeys() []string {
	return []string{
		SchemeSaleProduct,
		SchemeTradingProduct,
		SchemeCompanyProduct,
		SchemeValuableProduct,
		SchemeRecommendedProduct,
	}
}

// Flag looks up a scheme flag by key. The second return value is false when
// the key is not part of the closed flag set.
func (s Scheme) Flag(key string) (value, known bool) {
	switch key {
	case SchemeSaleProduct:
		return s.SaleProduct, true
	case SchemeTradingProduct:
		return s.TradingProduct, true
	case SchemeCompanyProduct:
		return s.CompanyProduct, true
	case SchemeValuableProduct:
		return s.ValuableProduct, true
	case SchemeRecommendedProduct:
		return s.RecommendedProduct, true
	}
	return false, false
}

// Image is a stored media URL. The core never sees raw bytes; uploads are
// converted to URLs before they reach this layer.
type Image struct {
	URL string `bson:"url" json:"url"`
}

// Price is one entry of a color's price list with computed discount math.
type Price struct {
	Currency   string  `bson:"currency" json:"currency"`
	Price      float64 `bson:"price" json:"price"`
	Discount   float64 `bson:"discount" json:"discount"`
	FinalPrice float64 `bson:"finalPrice" json:"finalPrice"`
}

// ComputeFinal sets FinalPrice = Price - round(Price * Discount / 100) and
// defaults the currency to INR.
func (p *Price) ComputeFinal() {
	if p.Currency == "" {
		p.Currency = "INR"
	}
	p.Currency = strings.ToUpper(p.Currency)
	p.FinalPrice = p.Price - math.Round(p.Price*p.Discount/100)
}

// Color is a model variant owned by ModelDetails.
type Color struct {
	ColorName     string  `bson:"colorName" json:"colorName"`
	ImageURL      string  `bson:"imageUrl" json:"imageUrl"`
	ProductImages []Image `bson:"productImageUrl" json:"productImages"`
	GalleryImages []Image `bson:"productGallery" json:"galleryImages"`
	Prices        []Price `bson:"colorPrice" json:"prices"`
	Stock         int     `bson:"stock" json:"stock"`
}

// KeyValue is a free-form specification or feature entry.
type KeyValue struct {
	Key   string `bson:"key" json:"key"`
	Value string `bson:"value" json:"value"`
}

// Point is a single free-form list point (specifications, warranty).
type Point struct {
	Points string `bson:"points" json:"points"`
}

// Parameter is an icon reference for a monitored parameter.
type Parameter struct {
	IconName string `bson:"iconName" json:"iconName"`
}

// ModelDetails is the detail block of a model, absent until populated.
type ModelDetails struct {
	Colors                []Color     `bson:"colors" json:"colors"`
	Specifications        []Point     `bson:"specifications" json:"specifications"`
	ProductSpecifications []KeyValue  `bson:"productSpecifications" json:"productSpecifications"`
	ProductFeatures       []KeyValue  `bson:"productFeatures" json:"productFeatures"`
	ProductFeaturesIcons  []string    `bson:"productFeaturesIcons" json:"productFeaturesIcons"`
	StandardParameters    []Parameter `bson:"standardParameters" json:"standardParameters"`
	OptionalParameters    []Parameter `bson:"optionalParameters" json:"optionalParameters"`
	Warranty              []Point     `bson:"warranty" json:"warranty"`
	Scheme                Scheme      `bson:"scheme" json:"scheme"`
}

// NewModelDetails returns an initialized detail block: empty lists and every
// scheme flag false.
func NewModelDetails() *ModelDetails {
	return &ModelDetails{
		Colors:                []Color{},
		Specifications:        []Point{},
		ProductSpecifications: []KeyValue{},
		ProductFeatures:       []KeyValue{},
		ProductFeaturesIcons:  []string{},
		StandardParameters:    []Parameter{},
		OptionalParameters:    []Parameter{},
		Warranty:              []Point{},
	}
}

// Model is a product model, owned exclusively by its parent Product.
type Model struct {
	ModelID   string        `bson:"modelId" json:"modelId"`
	ModelName string        `bson:"modelName" json:"modelName"`
	Status    ModelStatus   `bson:"status" json:"status"`
	Details   *ModelDetails `bson:"productModelDetails" json:"productModelDetails"`
}

// Product is the aggregate root of the catalog tree. Models and everything
// beneath them are embedded; children cannot outlive the product document.
type Product struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"productId"`
	ProductCategory string             `bson:"productCategory" json:"productCategory"`
	ProductTitle    string             `bson:"productTitle" json:"productTitle"`
	Description     string             `bson:"description,omitempty" json:"description,omitempty"`
	Models          []Model            `bson:"productModels" json:"productModels"`
	CreatedAt       time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt       time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// NewModelID generates a sub-document identifier for an embedded model.
func NewModelID() string {
	return primitive.NewObjectID().Hex()
}

// FindModel returns a pointer into p.Models for the given model id, or nil.
func (p *Product) FindModel(modelID string) *Model {
	for i := range p.Models {
		if p.Models[i].ModelID == modelID {
			return &p.Models[i]
		}
	}
	return nil
}

// HasModelNamed reports whether a model with the given name already exists
// under the product. Comparison is case-insensitive.
func (p *Product) HasModelNamed(name string) bool {
	for i := range p.Models {
		if strings.EqualFold(p.Models[i].ModelName, name) {
			return true
		}
	}
	return false
}

// ModelView is a denormalized row of the flat filtered catalog views: one
// row per matching model with its parent product's summary fields.
type ModelView struct {
	ProductID          string        `bson:"productId" json:"productId"`
	ProductTitle       string        `bson:"productTitle" json:"productTitle"`
	ProductDescription string        `bson:"productDescription,omitempty" json:"productDescription,omitempty"`
	ProductCategory    string        `bson:"productCategory" json:"productCategory"`
	ModelID            string        `bson:"modelId" json:"modelId"`
	ModelName          string        `bson:"modelName" json:"modelName"`
	Status             ModelStatus   `bson:"status" json:"status"`
	Details            *ModelDetails `bson:"productModelDetails" json:"productModelDetails"`
}
