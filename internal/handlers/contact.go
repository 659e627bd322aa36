package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"meditech-backend/internal/services"
)

// ContactHandler maps the enquiry URL surface onto the enquiry service.
type ContactHandler struct {
	enquiries *services.EnquiryService
}

// NewContactHandler creates a new contact handler
func NewContactHandler(enquiries *services.EnquiryService) *ContactHandler {
	return &ContactHandler{enquiries: enquiries}
}

type createContactRequest struct {
	Name               string `json:"name" binding:"required"`
	Email              string `json:"email" binding:"required,email"`
	Phone              string `json:"phone" binding:"required"`
	CompanyName        string `json:"companyName"`
	CompanyEmail       string `json:"companyEmail"`
	CompanyPhoneNumber string `json:"companyPhoneNumber"`
	CompanyLocation    string `json:"companyLocation"`
	MessageTitle       string `json:"messageTitle"`
	Message            string `json:"message" binding:"required"`
}

type productEnquiryRequest struct {
	createContactRequest
	ProductTitle    string `json:"productTitle" binding:"required"`
	ModelName       string `json:"modelName" binding:"required"`
	ProductImageURL string `json:"productImageUrl" binding:"required"`
	ProductID       string `json:"productId" binding:"required"`
	ModelID         string `json:"modelId" binding:"required"`
}

type accessoryEnquiryRequest struct {
	createContactRequest
	ProductTitle    string `json:"productTitle" binding:"required"`
	ProductImageURL string `json:"productImageUrl" binding:"required"`
	ProductID       string `json:"productId" binding:"required"`
}

type respondRequest struct {
	ContactID       string `json:"contactId" binding:"required"`
	ResponseMessage string `json:"responseMessage" binding:"required"`
}

func (r *createContactRequest) toInput() services.CreateEnquiryInput {
	return services.CreateEnquiryInput{
		Name:               r.Name,
		Email:              r.Email,
		Phone:              r.Phone,
		CompanyName:        r.CompanyName,
		CompanyEmail:       r.CompanyEmail,
		CompanyPhoneNumber: r.CompanyPhoneNumber,
		CompanyLocation:    r.CompanyLocation,
		MessageTitle:       r.MessageTitle,
		Message:            r.Message,
	}
}

// Create handles POST /api/contact/create
func (h *ContactHandler) Create(c *gin.Context) {
	var req createContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}
	h.create(c, services.KindGeneral, req.toInput())
}

// CreateProductEnquiry handles POST /api/contact/product-enquiry
func (h *ContactHandler) CreateProductEnquiry(c *gin.Context) {
	var req productEnquiryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}
	input := req.toInput()
	input.ProductTitle = req.ProductTitle
	input.ModelName = req.ModelName
	input.ProductImageURL = req.ProductImageURL
	input.ProductID = req.ProductID
	input.ModelID = req.ModelID
	h.create(c, services.KindProduct, input)
}

// CreateAccessoryEnquiry handles POST /api/contact/accessory-enquiry
func (h *ContactHandler) CreateAccessoryEnquiry(c *gin.Context) {
	var req accessoryEnquiryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}
	input := req.toInput()
	input.ProductTitle = req.ProductTitle
	input.ProductImageURL = req.ProductImageURL
	input.ProductID = req.ProductID
	h.create(c, services.KindAccessory, input)
}

func (h *ContactHandler) create(c *gin.Context, kind services.EnquiryKind, input services.CreateEnquiryInput) {
	result, err := h.enquiries.CreateEnquiry(c.Request.Context(), kind, input)
	if err != nil {
		respondError(c, err)
		return
	}

	message := "Enquiry saved and notifications sent"
	if !result.FullyNotified() {
		message = "Enquiry saved; one or more notifications failed"
	}
	respondData(c, http.StatusCreated, message, result)
}

// List handles GET /api/contact/all, /api/contact/products and
// /api/contact/accessories via the filter argument.
func (h *ContactHandler) List(filter services.EnquiryFilter) gin.HandlerFunc {
	return func(c *gin.Context) {
		limit := 0
		if raw := c.Query("limit"); raw != "" {
			parsed, err := strconv.Atoi(raw)
			if err != nil || parsed <= 0 {
				c.JSON(http.StatusBadRequest, envelope{Success: false, Error: "limit must be a positive integer"})
				return
			}
			limit = parsed
		}

		contacts, err := h.enquiries.ListEnquiries(c.Request.Context(), filter, limit)
		if err != nil {
			respondError(c, err)
			return
		}
		respondList(c, len(contacts), contacts)
	}
}

// Respond handles POST /api/contact/respond
func (h *ContactHandler) Respond(c *gin.Context) {
	var req respondRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}

	if err := h.enquiries.RespondToEnquiry(c.Request.Context(), req.ContactID, req.ResponseMessage); err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, "Response sent successfully", nil)
}
