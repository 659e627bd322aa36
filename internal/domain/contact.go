package domain

import (
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// EnquiryType classifies a contact record
type EnquiryType string

const (
	EnquiryTypeGeneral   EnquiryType = "Enquiry"
	EnquiryTypeProduct   EnquiryType = "Product"
	EnquiryTypeAccessory EnquiryType = "Accessory"
)

// EnquiryResponse is a durable trace of an operator reply to an enquiry.
type EnquiryResponse struct {
	Message string    `bson:"message" json:"message"`
	SentAt  time.Time `bson:"sentAt" json:"sentAt"`
}

// Contact represents a customer enquiry record. ContactID is the opaque
// external identifier, distinct from the storage _id; it is the reference
// quoted in notification emails.
type Contact struct {
	ID                 primitive.ObjectID `bson:"_id,omitempty" json:"-"`
	ContactID          string             `bson:"contactId" json:"contactId"`
	Name               string             `bson:"name" json:"name"`
	Email              string             `bson:"email" json:"email"`
	Phone              string             `bson:"phone" json:"phone"`
	CompanyName        string             `bson:"companyName,omitempty" json:"companyName,omitempty"`
	CompanyEmail       string             `bson:"companyEmail,omitempty" json:"companyEmail,omitempty"`
	CompanyPhoneNumber string             `bson:"companyPhoneNumber,omitempty" json:"companyPhoneNumber,omitempty"`
	CompanyLocation    string             `bson:"companyLocation,omitempty" json:"companyLocation,omitempty"`
	MessageTitle       string             `bson:"messageTitle,omitempty" json:"messageTitle,omitempty"`
	Message            string             `bson:"message" json:"message"`
	EnquiryType        EnquiryType        `bson:"enquiryType" json:"enquiryType"`
	ProductTitle       string             `bson:"productTitle,omitempty" json:"productTitle,omitempty"`
	ModelName          string             `bson:"modelName,omitempty" json:"modelName,omitempty"`
	ProductImageURL    string             `bson:"productImageUrl,omitempty" json:"productImageUrl,omitempty"`
	ProductID          string             `bson:"productId,omitempty" json:"productId,omitempty"`
	ModelID            string             `bson:"modelId,omitempty" json:"modelId,omitempty"`
	Responses          []EnquiryResponse  `bson:"responses,omitempty" json:"responses,omitempty"`
	CreatedAt          time.Time          `bson:"createdAt" json:"createdAt"`
}

// Reference returns the short reference snippet quoted in emails:
// the first 8 characters of the opaque contact id.
func (c *Contact) Reference() string {
	if len(c.ContactID) <= 8 {
		return c.ContactID
	}
	return c.ContactID[:8]
}

// NormalizePhone strips every non-digit character from a phone number.
func NormalizePhone(phone string) string {
	var b strings.Builder
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
