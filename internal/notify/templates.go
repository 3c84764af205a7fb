package notify

import (
	"fmt"
	"html"
	"strings"

	"storefront/internal/models"
)

func field(label, value string) string {
	if value == "" {
		return ""
	}
	return fmt.Sprintf("<p><strong>%s:</strong> %s</p>", label, html.EscapeString(value))
}

// ContactNotificationEmail builds the internal staff notification for a new
// contact/enquiry submission.
func ContactNotificationEmail(sub *models.Contact) (subject, body string) {
	subject = fmt.Sprintf("New %s enquiry - %s", sub.InquiryType, sub.Name)

	var b strings.Builder
	b.WriteString("<h2>New Contact Form Submission</h2>")
	b.WriteString(field("Inquiry Type", strings.ToUpper(sub.InquiryType)))
	b.WriteString(field("Name", sub.Name))
	b.WriteString(field("Email", sub.Email))
	b.WriteString(field("Phone", sub.Phone))
	b.WriteString(field("Organization", sub.Organization))
	b.WriteString(field("Category", sub.Category))
	b.WriteString(field("Message", sub.Message))
	b.WriteString(field("Priority", sub.Priority))

	if len(sub.EnquiryItems) > 0 {
		b.WriteString("<h3>Requested Items</h3><ul>")
		for _, item := range sub.EnquiryItems {
			b.WriteString(fmt.Sprintf("<li>%s (size %s) x %d</li>",
				html.EscapeString(item.Name), html.EscapeString(item.SelectedSize), item.Quantity))
		}
		b.WriteString("</ul>")
	}
	return subject, b.String()
}

// AutoReplyEmail builds the customer-facing acknowledgement.
func AutoReplyEmail(name, inquiryType string) (subject, body string) {
	subject = fmt.Sprintf("Thank you for contacting us - %s", name)
	body = fmt.Sprintf(
		"<p>Dear %s,</p><p>We have received your %s and will get back to you within 24 hours.</p><p>Regards,<br>The Uniforms Team</p>",
		html.EscapeString(name), html.EscapeString(inquiryType))
	return subject, body
}

// OrderConfirmationEmail builds the order confirmation sent after placement.
func OrderConfirmationEmail(order *models.Order) (subject, body string) {
	subject = fmt.Sprintf("Order %s confirmed", order.FormattedOrderID())

	var b strings.Builder
	b.WriteString(fmt.Sprintf("<h2>Thank you for your order, %s!</h2>", html.EscapeString(order.CustomerInfo.Name)))
	b.WriteString(fmt.Sprintf("<p>Order reference: <strong>%s</strong></p>", order.FormattedOrderID()))
	b.WriteString("<ul>")
	for _, item := range order.Items {
		b.WriteString(fmt.Sprintf("<li>%s (%s / %s) x %d = ₹%.0f</li>",
			html.EscapeString(item.Name), html.EscapeString(item.Size),
			html.EscapeString(item.Color), item.Quantity, item.Price*float64(item.Quantity)))
	}
	b.WriteString("</ul>")
	b.WriteString(fmt.Sprintf("<p>Subtotal: ₹%.0f<br>Tax: ₹%.0f<br>Shipping: ₹%.0f<br><strong>Total: ₹%.0f</strong></p>",
		order.Pricing.Subtotal, order.Pricing.Tax, order.Pricing.Shipping, order.Pricing.Total))
	b.WriteString(fmt.Sprintf("<p>Payment method: %s</p>", html.EscapeString(order.Payment.Method)))
	return subject, b.String()
}

// OrderStatusEmail builds the status-change notification.
func OrderStatusEmail(order *models.Order) (subject, body string) {
	subject = fmt.Sprintf("Order %s update: %s", order.FormattedOrderID(), order.Status)
	body = fmt.Sprintf(
		"<p>Dear %s,</p><p>Your order <strong>%s</strong> is now <strong>%s</strong>.</p>",
		html.EscapeString(order.CustomerInfo.Name), order.FormattedOrderID(), order.Status)
	return subject, body
}

// ContactSMS builds the staff SMS for a new submission. The message body is
// truncated to 100 characters, never splitting a multibyte rune.
func ContactSMS(sub *models.Contact) string {
	message := sub.Message
	if runes := []rune(message); len(runes) > 100 {
		message = string(runes[:100]) + "..."
	}
	return fmt.Sprintf("NEW %s - %s (%s) %s: %s",
		strings.ToUpper(sub.InquiryType), sub.Name, sub.Email, sub.Phone, message)
}

// OrderSMS builds the staff SMS for a new order.
func OrderSMS(order *models.Order) string {
	return fmt.Sprintf("NEW ORDER %s - %s, %d items, total ₹%.0f (%s)",
		order.FormattedOrderID(), order.CustomerInfo.Name, order.TotalItems(),
		order.Pricing.Total, order.Payment.Method)
}
