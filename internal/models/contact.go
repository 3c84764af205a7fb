package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Inquiry types accepted on contact submissions.
var InquiryTypes = []string{"general", "quote", "samples", "consultation", "enquiry"}

// Contact priorities and statuses.
const (
	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
	PriorityUrgent = "urgent"

	ContactPending    = "pending"
	ContactInProgress = "in-progress"
	ContactCompleted  = "completed"
	ContactCancelled  = "cancelled"
)

// EnquiryItem is a product reference attached to an enquiry submission.
type EnquiryItem struct {
	ID           string `bson:"id" json:"id"`
	Name         string `bson:"name" json:"name"`
	SelectedSize string `bson:"selectedSize,omitempty" json:"selectedSize,omitempty"`
	Quantity     int    `bson:"quantity" json:"quantity"`
	Notes        string `bson:"notes,omitempty" json:"notes,omitempty"`
	Image        string `bson:"image,omitempty" json:"image,omitempty"`
}

// Contact is a write-once contact/enquiry submission. Staff only ever toggle
// the read flag and the status afterwards.
type Contact struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name         string             `bson:"name" json:"name"`
	Email        string             `bson:"email" json:"email"`
	Phone        string             `bson:"phone,omitempty" json:"phone,omitempty"`
	Organization string             `bson:"organization,omitempty" json:"organization,omitempty"`
	Category     string             `bson:"category,omitempty" json:"category,omitempty"`
	Message      string             `bson:"message" json:"message"`
	InquiryType  string             `bson:"inquiryType" json:"inquiryType"`
	EnquiryItems []EnquiryItem      `bson:"enquiryItems,omitempty" json:"enquiryItems,omitempty"`
	Status       string             `bson:"status" json:"status"`
	Priority     string             `bson:"priority" json:"priority"`
	FollowUpDate time.Time          `bson:"followUpDate" json:"followUpDate"`
	IPAddress    string             `bson:"ipAddress,omitempty" json:"ipAddress,omitempty"`
	UserAgent    string             `bson:"userAgent,omitempty" json:"userAgent,omitempty"`
	Source       string             `bson:"source" json:"source"`
	IsRead       bool               `bson:"isRead" json:"isRead"`
	EmailSent    bool               `bson:"emailSent" json:"emailSent"`
	SMSSent      bool               `bson:"smsSent" json:"smsSent"`
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// Classify assigns priority and follow-up deadline from the inquiry type.
// Quote, enquiry and consultation submissions are high priority with a 24 hour
// follow-up; everything else is medium with 48 hours. Runs at write time only.
func (c *Contact) Classify(now time.Time) {
	switch c.InquiryType {
	case "quote", "enquiry", "consultation":
		c.Priority = PriorityHigh
	default:
		c.Priority = PriorityMedium
	}

	if c.FollowUpDate.IsZero() {
		hours := 48
		if c.Priority == PriorityHigh || c.Priority == PriorityUrgent {
			hours = 24
		}
		c.FollowUpDate = now.Add(time.Duration(hours) * time.Hour)
	}
}

// ValidInquiryType reports whether t is a known inquiry type.
func ValidInquiryType(t string) bool {
	for _, inquiry := range InquiryTypes {
		if t == inquiry {
			return true
		}
	}
	return false
}
