package notify

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"

	"storefront/internal/models"
)

func TestContactNotificationEmailEscapesInput(t *testing.T) {
	sub := &models.Contact{
		Name:        "<script>alert(1)</script>",
		Email:       "x@example.com",
		InquiryType: "quote",
		Message:     "hello",
	}
	_, body := ContactNotificationEmail(sub)

	assert.NotContains(t, body, "<script>")
	assert.Contains(t, body, "&lt;script&gt;")
}

func TestContactNotificationEmailSkipsEmptyFields(t *testing.T) {
	sub := &models.Contact{Name: "Asha", Email: "a@example.com", InquiryType: "general", Message: "hi"}
	_, body := ContactNotificationEmail(sub)

	assert.NotContains(t, body, "Organization")
	assert.NotContains(t, body, "Phone")
	assert.Contains(t, body, "Asha")
}

func TestContactNotificationEmailListsEnquiryItems(t *testing.T) {
	sub := &models.Contact{
		Name:        "Asha",
		Email:       "a@example.com",
		InquiryType: "enquiry",
		Message:     "bulk order",
		EnquiryItems: []models.EnquiryItem{
			{Name: "School Shirt", SelectedSize: "M", Quantity: 50},
		},
	}
	subject, body := ContactNotificationEmail(sub)

	assert.Equal(t, "New enquiry enquiry - Asha", subject)
	assert.Contains(t, body, "Requested Items")
	assert.Contains(t, body, "School Shirt (size M) x 50")
}

func TestContactSMSTruncatesLongMessages(t *testing.T) {
	sub := &models.Contact{
		Name:        "Asha",
		Email:       "a@example.com",
		Phone:       "+919876543210",
		InquiryType: "quote",
		Message:     strings.Repeat("x", 150),
	}
	sms := ContactSMS(sub)

	assert.Contains(t, sms, strings.Repeat("x", 100)+"...")
	assert.NotContains(t, sms, strings.Repeat("x", 101))
	assert.Contains(t, sms, "NEW QUOTE")
}

func TestContactSMSTruncatesOnRuneBoundary(t *testing.T) {
	sub := &models.Contact{
		Name:        "Asha",
		Email:       "a@example.com",
		Phone:       "+919876543210",
		InquiryType: "quote",
		Message:     strings.Repeat("x", 99) + "₹500 budget",
	}
	sms := ContactSMS(sub)

	assert.True(t, utf8.ValidString(sms))
	assert.Contains(t, sms, strings.Repeat("x", 99)+"₹...")
}

func TestOrderSMSSummarizesOrder(t *testing.T) {
	order := &models.Order{
		OrderID:      "12345678ABCD",
		CustomerInfo: models.CustomerInfo{Name: "Asha Verma"},
		Items: []models.OrderItem{
			{Quantity: 2},
			{Quantity: 1},
		},
		Pricing: models.Pricing{Total: 1280},
		Payment: models.Payment{Method: "cod"},
	}

	sms := OrderSMS(order)
	assert.Equal(t, "NEW ORDER SKS-12345678ABCD - Asha Verma, 3 items, total ₹1280 (cod)", sms)
}

func TestAutoReplyEmail(t *testing.T) {
	subject, body := AutoReplyEmail("Asha", "quote")

	assert.Equal(t, "Thank you for contacting us - Asha", subject)
	assert.Contains(t, body, "Dear Asha")
	assert.Contains(t, body, "within 24 hours")
}
