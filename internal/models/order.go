package models

import (
	"crypto/rand"
	"strconv"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Order lifecycle statuses. Transitions are intentionally not validated; any
// status may follow any other, and every change is appended to the timeline.
const (
	StatusPending       = "pending"
	StatusConfirmed     = "confirmed"
	StatusProcessing    = "processing"
	StatusManufacturing = "manufacturing"
	StatusQualityCheck  = "quality_check"
	StatusShipped       = "shipped"
	StatusDelivered     = "delivered"
	StatusCancelled     = "cancelled"
	StatusReturned      = "returned"
)

// Payment statuses.
const (
	PaymentPending       = "pending"
	PaymentCompleted     = "completed"
	PaymentFailed        = "failed"
	PaymentRefunded      = "refunded"
	PaymentPartialRefund = "partial_refund"
)

const (
	estimatedCompletionLead = 10 * 24 * time.Hour
	returnWindow            = 30 * 24 * time.Hour
)

// OrderStatuses lists every legal status value, used for request validation.
var OrderStatuses = []string{
	StatusPending, StatusConfirmed, StatusProcessing, StatusManufacturing,
	StatusQualityCheck, StatusShipped, StatusDelivered, StatusCancelled,
	StatusReturned,
}

// PaymentMethods lists the accepted payment methods.
var PaymentMethods = []string{"cod", "online", "bank_transfer", "cheque"}

// OrderItem is a denormalized snapshot of a product at order-creation time.
// It never changes when the product record changes later.
type OrderItem struct {
	Product   primitive.ObjectID `bson:"product" json:"product"`
	ProductID string             `bson:"productId" json:"productId"`
	Name      string             `bson:"name" json:"name"`
	Image     string             `bson:"image" json:"image"`
	Price     float64            `bson:"price" json:"price"`
	Quantity  int                `bson:"quantity" json:"quantity"`
	Size      string             `bson:"size" json:"size"`
	Color     string             `bson:"color" json:"color"`
}

type CustomerInfo struct {
	Name         string `bson:"name" json:"name"`
	Email        string `bson:"email" json:"email"`
	Phone        string `bson:"phone" json:"phone"`
	Organization string `bson:"organization,omitempty" json:"organization,omitempty"`
}

type Address struct {
	Street   string `bson:"street" json:"street"`
	City     string `bson:"city" json:"city"`
	State    string `bson:"state" json:"state"`
	Pincode  string `bson:"pincode" json:"pincode"`
	Country  string `bson:"country" json:"country"`
	Landmark string `bson:"landmark,omitempty" json:"landmark,omitempty"`
}

// Pricing is computed once at order creation and stored as-is.
type Pricing struct {
	Subtotal float64 `bson:"subtotal" json:"subtotal"`
	Tax      float64 `bson:"tax" json:"tax"`
	Shipping float64 `bson:"shipping" json:"shipping"`
	Total    float64 `bson:"total" json:"total"`
}

type Payment struct {
	Method        string     `bson:"method" json:"method"`
	Status        string     `bson:"status" json:"status"`
	TransactionID string     `bson:"transactionId,omitempty" json:"transactionId,omitempty"`
	PaidAmount    float64    `bson:"paidAmount" json:"paidAmount"`
	PaidAt        *time.Time `bson:"paidAt,omitempty" json:"paidAt,omitempty"`
	RefundAmount  float64    `bson:"refundAmount" json:"refundAmount"`
	RefundedAt    *time.Time `bson:"refundedAt,omitempty" json:"refundedAt,omitempty"`
}

type TimelineEntry struct {
	Status    string    `bson:"status" json:"status"`
	Message   string    `bson:"message" json:"message"`
	Timestamp time.Time `bson:"timestamp" json:"timestamp"`
	UpdatedBy string    `bson:"updatedBy" json:"updatedBy"`
}

type TrackingUpdate struct {
	Status    string    `bson:"status" json:"status"`
	Message   string    `bson:"message" json:"message"`
	Location  string    `bson:"location,omitempty" json:"location,omitempty"`
	Timestamp time.Time `bson:"timestamp" json:"timestamp"`
}

type Tracking struct {
	Carrier           string           `bson:"carrier,omitempty" json:"carrier,omitempty"`
	TrackingNumber    string           `bson:"trackingNumber,omitempty" json:"trackingNumber,omitempty"`
	EstimatedDelivery *time.Time       `bson:"estimatedDelivery,omitempty" json:"estimatedDelivery,omitempty"`
	ActualDelivery    *time.Time       `bson:"actualDelivery,omitempty" json:"actualDelivery,omitempty"`
	Updates           []TrackingUpdate `bson:"updates,omitempty" json:"updates,omitempty"`
}

type OrderNotes struct {
	Customer string `bson:"customer,omitempty" json:"customer,omitempty"`
	Internal string `bson:"internal,omitempty" json:"internal,omitempty"`
}

// Order is the persisted order aggregate. The timeline is append-only; entries
// are never mutated or pruned.
type Order struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	OrderID         string             `bson:"orderId" json:"orderId"`
	User            primitive.ObjectID `bson:"user" json:"user"`
	Items           []OrderItem        `bson:"items" json:"items"`
	CustomerInfo    CustomerInfo       `bson:"customerInfo" json:"customerInfo"`
	ShippingAddress Address            `bson:"shippingAddress" json:"shippingAddress"`
	BillingAddress  Address            `bson:"billingAddress" json:"billingAddress"`
	Pricing         Pricing            `bson:"pricing" json:"pricing"`
	Payment         Payment            `bson:"payment" json:"payment"`
	Status          string             `bson:"status" json:"status"`
	Tracking        Tracking           `bson:"tracking" json:"tracking"`
	Timeline        []TimelineEntry    `bson:"timeline" json:"timeline"`
	Notes           OrderNotes         `bson:"notes" json:"notes"`

	EstimatedCompletionDate *time.Time `bson:"estimatedCompletionDate,omitempty" json:"estimatedCompletionDate,omitempty"`
	ActualCompletionDate    *time.Time `bson:"actualCompletionDate,omitempty" json:"actualCompletionDate,omitempty"`

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

const orderIDCharset = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// GenerateOrderID builds a human-readable order id: the last eight digits of
// the current unix-milli timestamp plus four random base36 characters.
func GenerateOrderID() string {
	ts := strconv.FormatInt(time.Now().UnixMilli(), 10)
	if len(ts) > 8 {
		ts = ts[len(ts)-8:]
	}

	suffix := make([]byte, 4)
	if _, err := rand.Read(suffix); err != nil {
		// crypto/rand failing is effectively unrecoverable; fall back to a
		// timestamp-derived suffix so order creation still proceeds.
		nano := strconv.FormatInt(time.Now().UnixNano(), 36)
		return ts + nano[len(nano)-4:]
	}
	for i, b := range suffix {
		suffix[i] = orderIDCharset[int(b)%len(orderIDCharset)]
	}
	return ts + string(suffix)
}

// FormattedOrderID is the customer-facing order reference.
func (o *Order) FormattedOrderID() string {
	return "SKS-" + o.OrderID
}

// TotalItems sums the quantities across line items.
func (o *Order) TotalItems() int {
	total := 0
	for _, item := range o.Items {
		total += item.Quantity
	}
	return total
}

// PaymentBalance is the outstanding amount. It is derived, never stored.
func (o *Order) PaymentBalance() float64 {
	return o.Pricing.Total - o.Payment.PaidAmount
}

// UpdateStatus overwrites the status and appends a timeline entry. The
// transition is not checked against a state graph; calling it twice with the
// same status appends two entries. First transition into confirmed stamps the
// estimated completion date; first transition into delivered stamps the actual
// completion date.
func (o *Order) UpdateStatus(status, message, updatedBy string) {
	if updatedBy == "" {
		updatedBy = "system"
	}
	if message == "" {
		message = "Order status updated to " + status
	}

	now := time.Now()
	o.Status = status
	o.Timeline = append(o.Timeline, TimelineEntry{
		Status:    status,
		Message:   message,
		Timestamp: now,
		UpdatedBy: updatedBy,
	})

	if status == StatusConfirmed && o.EstimatedCompletionDate == nil {
		estimated := now.Add(estimatedCompletionLead)
		o.EstimatedCompletionDate = &estimated
	}
	if status == StatusDelivered && o.ActualCompletionDate == nil {
		o.ActualCompletionDate = &now
	}
	o.UpdatedAt = now
}

// AddTrackingUpdate appends a carrier-side event to the tracking history.
func (o *Order) AddTrackingUpdate(status, message, location string) {
	o.Tracking.Updates = append(o.Tracking.Updates, TrackingUpdate{
		Status:    status,
		Message:   message,
		Location:  location,
		Timestamp: time.Now(),
	})
}

// ProcessPayment records a payment unconditionally: the amount is added to the
// cumulative paid total and the payment flips to completed once paid covers
// the order total. Overpayment beyond the threshold is not handled.
func (o *Order) ProcessPayment(amount float64, transactionID, method string) {
	now := time.Now()
	o.Payment.PaidAmount += amount
	o.Payment.TransactionID = transactionID
	o.Payment.Method = method
	o.Payment.PaidAt = &now

	if o.Payment.PaidAmount >= o.Pricing.Total {
		o.Payment.Status = PaymentCompleted
	}
	o.UpdatedAt = now
}

// ProcessRefund records a refund unconditionally. Refunding at least the paid
// amount marks the payment refunded, anything less is a partial refund.
func (o *Order) ProcessRefund(amount float64) {
	now := time.Now()
	o.Payment.RefundAmount += amount
	o.Payment.RefundedAt = &now

	if o.Payment.RefundAmount >= o.Payment.PaidAmount {
		o.Payment.Status = PaymentRefunded
	} else {
		o.Payment.Status = PaymentPartialRefund
	}
	o.UpdatedAt = now
}

// CanBeCancelled reports whether the order is still early enough in its
// lifecycle to cancel.
func (o *Order) CanBeCancelled() bool {
	return o.Status == StatusPending || o.Status == StatusConfirmed
}

// CanBeReturned reports whether the order was delivered within the 30-day
// return window.
func (o *Order) CanBeReturned() bool {
	if o.Status != StatusDelivered || o.ActualCompletionDate == nil {
		return false
	}
	return time.Since(*o.ActualCompletionDate) <= returnWindow
}

// ValidOrderStatus reports whether s is a known lifecycle status.
func ValidOrderStatus(s string) bool {
	for _, status := range OrderStatuses {
		if s == status {
			return true
		}
	}
	return false
}

// ValidPaymentMethod reports whether m is an accepted payment method.
func ValidPaymentMethod(m string) bool {
	for _, method := range PaymentMethods {
		if m == method {
			return true
		}
	}
	return false
}
