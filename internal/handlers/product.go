package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"meditech-backend/internal/domain"
	"meditech-backend/internal/services"
)

// ProductHandler maps the catalog URL surface onto the product service.
type ProductHandler struct {
	products *services.ProductService
}

// NewProductHandler creates a new product handler
func NewProductHandler(products *services.ProductService) *ProductHandler {
	return &ProductHandler{products: products}
}

type createProductRequest struct {
	ProductCategory string `json:"productCategory" binding:"required"`
	ProductTitle    string `json:"productTitle" binding:"required"`
	ModelName       string `json:"modelName" binding:"required,min=2"`
}

type addModelRequest struct {
	ModelName string `json:"modelName" binding:"required,min=2"`
	Status    string `json:"status" binding:"omitempty,oneof=Padding Live"`
}

type updateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

type priceRequest struct {
	Currency string  `json:"currency"`
	Price    float64 `json:"price" binding:"required,gte=0"`
	Discount float64 `json:"discount" binding:"gte=0,lte=100"`
}

type imageRequest struct {
	URL string `json:"url" binding:"required"`
}

type addColorRequest struct {
	ColorName     string         `json:"colorName" binding:"required"`
	ImageURL      string         `json:"imageUrl" binding:"required"`
	ProductImages []imageRequest `json:"productImages" binding:"dive"`
	GalleryImages []imageRequest `json:"galleryImages" binding:"dive"`
	Prices        []priceRequest `json:"prices" binding:"dive"`
	Stock         int            `json:"stock" binding:"gte=0"`
}

// Create handles POST /api/demo/products
func (h *ProductHandler) Create(c *gin.Context) {
	var req createProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}

	product, err := h.products.CreateProduct(c.Request.Context(), req.ProductCategory, req.ProductTitle, req.ModelName)
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusCreated, "Product created successfully", product)
}

// AddModel handles POST /api/demo/product/:productId/models
func (h *ProductHandler) AddModel(c *gin.Context) {
	var req addModelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}

	model, err := h.products.AddModel(c.Request.Context(), c.Param("productId"), req.ModelName, domain.ModelStatus(req.Status))
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusCreated, "Product model added successfully", model)
}

// SetModelDetails handles PUT /api/demo/product/:productId/models/:modelId/details
func (h *ProductHandler) SetModelDetails(c *gin.Context) {
	var details domain.ModelDetails
	if err := c.ShouldBindJSON(&details); err != nil {
		respondBadRequest(c, err)
		return
	}

	model, err := h.products.SetModelDetails(c.Request.Context(), c.Param("productId"), c.Param("modelId"), &details)
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, "Model details updated", model)
}

// UpdateModelStatus handles PATCH /api/demo/product/:productId/models/:modelId/status
func (h *ProductHandler) UpdateModelStatus(c *gin.Context) {
	var req updateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}

	model, err := h.products.UpdateModelStatus(c.Request.Context(), c.Param("productId"), c.Param("modelId"), domain.ModelStatus(req.Status))
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, "Model status updated", model)
}

// AddColor handles POST /api/demo/product/:productId/models/:modelId/colors
func (h *ProductHandler) AddColor(c *gin.Context) {
	var req addColorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}

	color := domain.Color{
		ColorName:     req.ColorName,
		ImageURL:      req.ImageURL,
		ProductImages: toImages(req.ProductImages),
		GalleryImages: toImages(req.GalleryImages),
		Stock:         req.Stock,
	}
	for _, p := range req.Prices {
		color.Prices = append(color.Prices, domain.Price{
			Currency: p.Currency,
			Price:    p.Price,
			Discount: p.Discount,
		})
	}

	added, err := h.products.AddColorToModel(c.Request.Context(), c.Param("productId"), c.Param("modelId"), color)
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusCreated, "Color added to model", added)
}

func toImages(reqs []imageRequest) []domain.Image {
	images := make([]domain.Image, 0, len(reqs))
	for _, r := range reqs {
		images = append(images, domain.Image{URL: r.URL})
	}
	return images
}

// ListLive handles GET /api/demo/products-with-models
func (h *ProductHandler) ListLive(c *gin.Context) {
	views, err := h.products.ListLiveModels(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	respondList(c, len(views), views)
}

// ListPending handles GET /api/demo/products/models/padding
func (h *ProductHandler) ListPending(c *gin.Context) {
	views, err := h.products.ListPendingModels(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	respondList(c, len(views), views)
}

// ListOnSale handles GET /api/demo/limetedtimedeal/sell
func (h *ProductHandler) ListOnSale(c *gin.Context) {
	views, err := h.products.ListOnSaleModels(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	respondList(c, len(views), views)
}

// ListByScheme handles GET /api/demo/products/scheme/:scheme
func (h *ProductHandler) ListByScheme(c *gin.Context) {
	groups, err := h.products.ListModelsByScheme(c.Request.Context(), c.Param("scheme"))
	if err != nil {
		respondError(c, err)
		return
	}
	respondList(c, len(groups), groups)
}

// ListValuable handles GET /api/demo/valuable
func (h *ProductHandler) ListValuable(c *gin.Context) {
	views, err := h.products.ListValuableProducts(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	respondList(c, len(views), views)
}

// GetModel handles GET /api/demo/products/model/:modelId
func (h *ProductHandler) GetModel(c *gin.Context) {
	model, err := h.products.GetModelByID(c.Request.Context(), c.Param("modelId"))
	if err != nil {
		respondError(c, err)
		return
	}
	if model == nil {
		c.JSON(http.StatusNotFound, envelope{Success: false, Error: "Product not found"})
		return
	}
	respondData(c, http.StatusOK, "", model)
}
