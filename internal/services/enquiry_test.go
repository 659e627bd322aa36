package services

import (
	"context"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"meditech-backend/internal/config"
	"meditech-backend/internal/domain"
	apperrors "meditech-backend/pkg/errors"
)

// fakeContactStore is an in-memory ContactStore.
type fakeContactStore struct {
	contacts  []domain.Contact
	insertErr error

	lastListType  domain.EnquiryType
	lastListLimit int
}

func (f *fakeContactStore) Insert(ctx context.Context, contact *domain.Contact) error {
	if f.insertErr != nil {
		return f.insertErr
	}
	f.contacts = append(f.contacts, *contact)
	return nil
}

func (f *fakeContactStore) FindByContactID(ctx context.Context, contactID string) (*domain.Contact, error) {
	for i := range f.contacts {
		if f.contacts[i].ContactID == contactID {
			c := f.contacts[i]
			return &c, nil
		}
	}
	return nil, apperrors.New(apperrors.ErrCodeNotFound, "enquiry not found")
}

func (f *fakeContactStore) List(ctx context.Context, enquiryType domain.EnquiryType, limit int) ([]domain.Contact, error) {
	f.lastListType = enquiryType
	f.lastListLimit = limit

	matched := []domain.Contact{}
	for _, c := range f.contacts {
		if enquiryType == "" || c.EnquiryType == enquiryType {
			matched = append(matched, c)
		}
	}
	sort.Slice(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})
	if limit > 0 && len(matched) > limit {
		matched = matched[:limit]
	}
	return matched, nil
}

func (f *fakeContactStore) AppendResponse(ctx context.Context, contactID string, response domain.EnquiryResponse) error {
	for i := range f.contacts {
		if f.contacts[i].ContactID == contactID {
			f.contacts[i].Responses = append(f.contacts[i].Responses, response)
			return nil
		}
	}
	return apperrors.New(apperrors.ErrCodeNotFound, "enquiry not found")
}

// fakeNotifier records sends and fails for configured recipients.
type fakeNotifier struct {
	mu      sync.Mutex
	sent    []sentMail
	failFor map[string]error
}

type sentMail struct {
	to      string
	subject string
	html    string
}

func (f *fakeNotifier) Send(ctx context.Context, to, subject, htmlBody, textBody string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err, ok := f.failFor[to]; ok {
		return err
	}
	f.sent = append(f.sent, sentMail{to: to, subject: subject, html: htmlBody})
	return nil
}

func (f *fakeNotifier) sentTo(to string) []sentMail {
	f.mu.Lock()
	defer f.mu.Unlock()
	mails := []sentMail{}
	for _, m := range f.sent {
		if m.to == to {
			mails = append(mails, m)
		}
	}
	return mails
}

const testAdminEmail = "ops@siliconmeditech.in"

func newEnquiryFixture(listLimit int) (*EnquiryService, *fakeContactStore, *fakeNotifier) {
	st := &fakeContactStore{}
	nt := &fakeNotifier{failFor: map[string]error{}}
	cfg := &config.Config{
		Email: config.EmailConfig{
			AdminEmail:  testAdminEmail,
			SendTimeout: time.Second,
		},
		Enquiry: config.EnquiryConfig{ListLimit: listLimit},
	}
	return NewEnquiryService(st, nt, cfg), st, nt
}

func productInput() CreateEnquiryInput {
	return CreateEnquiryInput{
		Name:            "Asha Verma",
		Email:           "asha@example.com",
		Phone:           "+91 (98) 765-43210",
		Message:         "Please share a quote.",
		ProductTitle:    "VitalSign X",
		ModelName:       "V2",
		ProductImageURL: "https://cdn.example.com/vitalsign-x.png",
		ProductID:       "prod-1",
		ModelID:         "model-2",
	}
}

func TestCreateEnquirySetsTypeAndNormalizesPhone(t *testing.T) {
	svc, st, _ := newEnquiryFixture(200)

	tests := []struct {
		kind EnquiryKind
		want domain.EnquiryType
	}{
		{KindGeneral, domain.EnquiryTypeGeneral},
		{KindProduct, domain.EnquiryTypeProduct},
		{KindAccessory, domain.EnquiryTypeAccessory},
	}

	for _, tt := range tests {
		result, err := svc.CreateEnquiry(context.Background(), tt.kind, productInput())
		require.NoError(t, err)
		assert.Equal(t, tt.want, result.Enquiry.EnquiryType)
		assert.Equal(t, "919876543210", result.Enquiry.Phone)
		assert.NotEmpty(t, result.Enquiry.ContactID)
	}
	assert.Len(t, st.contacts, 3)
}

func TestCreateEnquiryDispatchesBothNotifications(t *testing.T) {
	svc, _, nt := newEnquiryFixture(200)

	result, err := svc.CreateEnquiry(context.Background(), KindProduct, productInput())
	require.NoError(t, err)

	assert.True(t, result.FullyNotified())
	assert.True(t, result.AdminNotified.Sent)
	assert.True(t, result.UserNotified.Sent)

	adminMails := nt.sentTo(testAdminEmail)
	require.Len(t, adminMails, 1)
	assert.Contains(t, adminMails[0].subject, "Asha Verma")
	assert.Contains(t, adminMails[0].html, result.Enquiry.Reference())
	assert.Contains(t, adminMails[0].html, "VitalSign X")
	assert.Contains(t, adminMails[0].html, "https://cdn.example.com/vitalsign-x.png")

	userMails := nt.sentTo("asha@example.com")
	require.Len(t, userMails, 1)
	assert.Contains(t, userMails[0].subject, "VitalSign X")
}

func TestCreateEnquiryPartialNotificationFailure(t *testing.T) {
	svc, st, nt := newEnquiryFixture(200)
	nt.failFor[testAdminEmail] = apperrors.New(apperrors.ErrCodeNotification, "smtp down")

	result, err := svc.CreateEnquiry(context.Background(), KindGeneral, productInput())
	require.NoError(t, err, "record creation must not fail because a notification failed")

	assert.False(t, result.FullyNotified())
	assert.False(t, result.AdminNotified.Sent)
	assert.Contains(t, result.AdminNotified.Error, "smtp down")
	assert.True(t, result.UserNotified.Sent)

	// the record was still persisted
	assert.Len(t, st.contacts, 1)
}

func TestCreateEnquiryPersistenceFailure(t *testing.T) {
	svc, st, nt := newEnquiryFixture(200)
	st.insertErr = apperrors.New(apperrors.ErrCodePersistence, "write failed")

	result, err := svc.CreateEnquiry(context.Background(), KindGeneral, productInput())
	assert.Nil(t, result)
	assert.True(t, apperrors.IsPersistence(err))

	// no notification goes out for an unsaved record
	assert.Empty(t, nt.sent)
}

func TestCreateEnquiryUnknownKind(t *testing.T) {
	svc, _, _ := newEnquiryFixture(200)

	_, err := svc.CreateEnquiry(context.Background(), EnquiryKind("bulk"), productInput())
	assert.True(t, apperrors.IsValidation(err))
}

func TestListEnquiriesFilterAndCap(t *testing.T) {
	svc, st, _ := newEnquiryFixture(2)

	base := time.Now().UTC()
	for i, typ := range []domain.EnquiryType{
		domain.EnquiryTypeGeneral,
		domain.EnquiryTypeProduct,
		domain.EnquiryTypeProduct,
		domain.EnquiryTypeAccessory,
	} {
		st.contacts = append(st.contacts, domain.Contact{
			ContactID:   string(rune('a' + i)),
			EnquiryType: typ,
			CreatedAt:   base.Add(time.Duration(i) * time.Minute),
		})
	}

	contacts, err := svc.ListEnquiries(context.Background(), FilterProductOnly, 0)
	require.NoError(t, err)
	assert.Equal(t, domain.EnquiryTypeProduct, st.lastListType)
	assert.Equal(t, 2, st.lastListLimit, "zero limit falls back to the configured cap")
	require.Len(t, contacts, 2)
	assert.True(t, contacts[0].CreatedAt.After(contacts[1].CreatedAt), "newest first")

	_, err = svc.ListEnquiries(context.Background(), FilterAll, 500)
	require.NoError(t, err)
	assert.Equal(t, 2, st.lastListLimit, "limits above the cap are clamped")

	_, err = svc.ListEnquiries(context.Background(), FilterAll, 1)
	require.NoError(t, err)
	assert.Equal(t, 1, st.lastListLimit)
}

func TestListEnquiriesUnknownFilter(t *testing.T) {
	svc, _, _ := newEnquiryFixture(200)

	_, err := svc.ListEnquiries(context.Background(), EnquiryFilter("spam"), 0)
	assert.True(t, apperrors.IsValidation(err))
}

func TestRespondToEnquiryNotFound(t *testing.T) {
	svc, _, nt := newEnquiryFixture(200)

	err := svc.RespondToEnquiry(context.Background(), "missing-id", "hello")
	assert.True(t, apperrors.IsNotFound(err))
	assert.Empty(t, nt.sent)
}

func TestRespondToEnquirySendsAndRecords(t *testing.T) {
	svc, st, nt := newEnquiryFixture(200)
	st.contacts = append(st.contacts, domain.Contact{
		ContactID:    "contact-1",
		Name:         "Asha Verma",
		Email:        "asha@example.com",
		EnquiryType:  domain.EnquiryTypeProduct,
		ProductTitle: "VitalSign X",
		ModelName:    "V2",
	})

	err := svc.RespondToEnquiry(context.Background(), "contact-1", "Stock arrives next week.")
	require.NoError(t, err)

	mails := nt.sentTo("asha@example.com")
	require.Len(t, mails, 1)
	assert.Contains(t, mails[0].subject, "VitalSign X V2")
	assert.Contains(t, mails[0].html, "Stock arrives next week.")

	require.Len(t, st.contacts[0].Responses, 1)
	assert.Equal(t, "Stock arrives next week.", st.contacts[0].Responses[0].Message)
	assert.False(t, st.contacts[0].Responses[0].SentAt.IsZero())
}

func TestRespondToEnquirySubjectPerKind(t *testing.T) {
	tests := []struct {
		name    string
		contact domain.Contact
		want    string
	}{
		{
			"accessory uses product title only",
			domain.Contact{ContactID: "c1", Email: "a@example.com", EnquiryType: domain.EnquiryTypeAccessory, ProductTitle: "ECG Cable", ModelName: "ignored"},
			"ECG Cable",
		},
		{
			"general uses message title",
			domain.Contact{ContactID: "c2", Email: "b@example.com", EnquiryType: domain.EnquiryTypeGeneral, MessageTitle: "Service request"},
			"Service request",
		},
		{
			"general falls back to General",
			domain.Contact{ContactID: "c3", Email: "c@example.com", EnquiryType: domain.EnquiryTypeGeneral},
			"General",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, st, nt := newEnquiryFixture(200)
			st.contacts = append(st.contacts, tt.contact)

			require.NoError(t, svc.RespondToEnquiry(context.Background(), tt.contact.ContactID, "ok"))

			mails := nt.sentTo(tt.contact.Email)
			require.Len(t, mails, 1)
			assert.Contains(t, mails[0].subject, tt.want)
			if tt.contact.EnquiryType == domain.EnquiryTypeAccessory {
				assert.False(t, strings.Contains(mails[0].subject, "ignored"))
			}
		})
	}
}

func TestRespondToEnquiryNotifierFailure(t *testing.T) {
	svc, st, nt := newEnquiryFixture(200)
	st.contacts = append(st.contacts, domain.Contact{
		ContactID: "contact-1",
		Email:     "asha@example.com",
	})
	nt.failFor["asha@example.com"] = apperrors.New(apperrors.ErrCodeNotification, "smtp down")

	err := svc.RespondToEnquiry(context.Background(), "contact-1", "hello")
	assert.True(t, apperrors.IsNotification(err))
	assert.Empty(t, st.contacts[0].Responses, "no trace is recorded for an unsent reply")
}
