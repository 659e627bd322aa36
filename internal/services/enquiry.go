package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"meditech-backend/internal/config"
	"meditech-backend/internal/domain"
	"meditech-backend/internal/metrics"
	"meditech-backend/internal/store"
	apperrors "meditech-backend/pkg/errors"
)

// EnquiryKind selects the enquiry flavor at creation time.
type EnquiryKind string

const (
	KindGeneral   EnquiryKind = "general"
	KindProduct   EnquiryKind = "product"
	KindAccessory EnquiryKind = "accessory"
)

// EnquiryFilter narrows enquiry listings.
type EnquiryFilter string

const (
	FilterAll           EnquiryFilter = "all"
	FilterProductOnly   EnquiryFilter = "products"
	FilterAccessoryOnly EnquiryFilter = "accessories"
)

// CreateEnquiryInput carries the validated payload of an enquiry submission.
// Required-field checks per kind happen at the boundary; this layer only
// performs domain normalization.
type CreateEnquiryInput struct {
	Name               string
	Email              string
	Phone              string
	CompanyName        string
	CompanyEmail       string
	CompanyPhoneNumber string
	CompanyLocation    string
	MessageTitle       string
	Message            string
	ProductTitle       string
	ModelName          string
	ProductImageURL    string
	ProductID          string
	ModelID            string
}

// NotificationOutcome reports the result of one notification email.
type NotificationOutcome struct {
	Recipient string `json:"recipient"`
	Sent      bool   `json:"sent"`
	Error     string `json:"error,omitempty"`
}

// CreateEnquiryResult separates "record created" from "notifications sent"
// so callers can distinguish full success from partial success.
type CreateEnquiryResult struct {
	Enquiry       *domain.Contact     `json:"enquiry"`
	AdminNotified NotificationOutcome `json:"adminNotified"`
	UserNotified  NotificationOutcome `json:"userNotified"`
}

// FullyNotified reports whether both notification emails went out.
func (r *CreateEnquiryResult) FullyNotified() bool {
	return r.AdminNotified.Sent && r.UserNotified.Sent
}

// EnquiryService creates and reads enquiry records and orchestrates their
// notification emails.
type EnquiryService struct {
	store       store.ContactStore
	notifier    Notifier
	adminEmail  string
	sendTimeout time.Duration
	listLimit   int
}

// NewEnquiryService creates a new enquiry service
func NewEnquiryService(contactStore store.ContactStore, notifier Notifier, cfg *config.Config) *EnquiryService {
	return &EnquiryService{
		store:       contactStore,
		notifier:    notifier,
		adminEmail:  cfg.Email.AdminEmail,
		sendTimeout: cfg.Email.SendTimeout,
		listLimit:   cfg.Enquiry.ListLimit,
	}
}

// CreateEnquiry persists a new enquiry record and dispatches the operator
// and submitter notifications concurrently. Notification failures after a
// successful write are partial failures reported in the result, never a
// record-creation error.
func (s *EnquiryService) CreateEnquiry(ctx context.Context, kind EnquiryKind, input CreateEnquiryInput) (*CreateEnquiryResult, error) {
	enquiryType, err := enquiryTypeFor(kind)
	if err != nil {
		return nil, err
	}

	contact := &domain.Contact{
		ContactID:          uuid.NewString(),
		Name:               input.Name,
		Email:              input.Email,
		Phone:              domain.NormalizePhone(input.Phone),
		CompanyName:        input.CompanyName,
		CompanyEmail:       input.CompanyEmail,
		CompanyPhoneNumber: input.CompanyPhoneNumber,
		CompanyLocation:    input.CompanyLocation,
		MessageTitle:       input.MessageTitle,
		Message:            input.Message,
		EnquiryType:        enquiryType,
		ProductTitle:       input.ProductTitle,
		ModelName:          input.ModelName,
		ProductImageURL:    input.ProductImageURL,
		ProductID:          input.ProductID,
		ModelID:            input.ModelID,
		CreatedAt:          time.Now().UTC(),
	}

	if err := s.store.Insert(ctx, contact); err != nil {
		log.Printf("[ENQUIRY] Create failed: %v", err)
		return nil, err
	}
	log.Printf("[ENQUIRY] Created: contactId=%s type=%s", contact.ContactID, contact.EnquiryType)
	metrics.RecordEnquiryCreated(string(contact.EnquiryType))

	adminSubject, adminBody := adminNotification(contact)
	userSubject, userBody := submitterAcknowledgement(contact)

	// Fan out the two notifications and join both outcomes. A failure in
	// one must not mask the other.
	adminCh := make(chan NotificationOutcome, 1)
	userCh := make(chan NotificationOutcome, 1)
	go func() {
		adminCh <- s.dispatch(ctx, s.adminEmail, adminSubject, adminBody)
	}()
	go func() {
		userCh <- s.dispatch(ctx, contact.Email, userSubject, userBody)
	}()

	result := &CreateEnquiryResult{
		Enquiry:       contact,
		AdminNotified: <-adminCh,
		UserNotified:  <-userCh,
	}
	return result, nil
}

// dispatch sends one notification with a bounded timeout and reports the
// outcome rather than returning an error.
func (s *EnquiryService) dispatch(ctx context.Context, to, subject, htmlBody string) NotificationOutcome {
	sendCtx, cancel := context.WithTimeout(ctx, s.sendTimeout)
	defer cancel()

	outcome := NotificationOutcome{Recipient: to}
	if err := s.notifier.Send(sendCtx, to, subject, htmlBody, textFallback(subject)); err != nil {
		log.Printf("[ENQUIRY] Notification to %s failed: %v", to, err)
		metrics.RecordNotification(false)
		outcome.Error = err.Error()
		return outcome
	}
	metrics.RecordNotification(true)
	outcome.Sent = true
	return outcome
}

// ListEnquiries returns enquiry records newest-first. limit <= 0 or above
// the configured cap falls back to the cap; there is no cursor pagination.
func (s *EnquiryService) ListEnquiries(ctx context.Context, filter EnquiryFilter, limit int) ([]domain.Contact, error) {
	if limit <= 0 || limit > s.listLimit {
		limit = s.listLimit
	}

	var enquiryType domain.EnquiryType
	switch filter {
	case FilterAll, "":
		enquiryType = ""
	case FilterProductOnly:
		enquiryType = domain.EnquiryTypeProduct
	case FilterAccessoryOnly:
		enquiryType = domain.EnquiryTypeAccessory
	default:
		return nil, apperrors.New(apperrors.ErrCodeValidation, fmt.Sprintf("unknown enquiry filter %q", filter))
	}

	contacts, err := s.store.List(ctx, enquiryType, limit)
	if err != nil {
		log.Printf("[ENQUIRY] List failed: %v", err)
		return nil, err
	}
	return contacts, nil
}

// RespondToEnquiry sends a reply email to the original submitter and records
// the response on the enquiry record.
func (s *EnquiryService) RespondToEnquiry(ctx context.Context, contactID, responseMessage string) error {
	contact, err := s.store.FindByContactID(ctx, contactID)
	if err != nil {
		return err
	}

	subject, htmlBody := responseEmail(contact, responseMessage)

	sendCtx, cancel := context.WithTimeout(ctx, s.sendTimeout)
	defer cancel()
	if err := s.notifier.Send(sendCtx, contact.Email, subject, htmlBody, textFallback(subject)); err != nil {
		metrics.RecordNotification(false)
		return err
	}
	metrics.RecordNotification(true)

	response := domain.EnquiryResponse{Message: responseMessage, SentAt: time.Now().UTC()}
	if err := s.store.AppendResponse(ctx, contactID, response); err != nil {
		// Reply already went out; surface the persistence failure distinctly.
		log.Printf("[ENQUIRY] Respond: reply sent but trace not recorded for %s: %v", contactID, err)
		return apperrors.Wrap(apperrors.ErrCodePersistence, "reply sent but response history not recorded", err)
	}

	log.Printf("[ENQUIRY] Responded: contactId=%s", contactID)
	return nil
}

func enquiryTypeFor(kind EnquiryKind) (domain.EnquiryType, error) {
	switch kind {
	case KindGeneral:
		return domain.EnquiryTypeGeneral, nil
	case KindProduct:
		return domain.EnquiryTypeProduct, nil
	case KindAccessory:
		return domain.EnquiryTypeAccessory, nil
	}
	return "", apperrors.New(apperrors.ErrCodeValidation, fmt.Sprintf("unknown enquiry kind %q", kind))
}
