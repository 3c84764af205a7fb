package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Newsletter subscription statuses.
const (
	SubscriberActive       = "active"
	SubscriberUnsubscribed = "unsubscribed"
	SubscriberBounced      = "bounced"
	SubscriberComplained   = "complained"
)

// Subscriber is one newsletter subscription keyed by unique email.
type Subscriber struct {
	ID                 primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Email              string             `bson:"email" json:"email"`
	Name               string             `bson:"name,omitempty" json:"name,omitempty"`
	Categories         []string           `bson:"categories,omitempty" json:"categories,omitempty"`
	Status             string             `bson:"status" json:"status"`
	Source             string             `bson:"source" json:"source"`
	SubscriptionDate   time.Time          `bson:"subscriptionDate" json:"subscriptionDate"`
	UnsubscriptionDate *time.Time         `bson:"unsubscriptionDate,omitempty" json:"unsubscriptionDate,omitempty"`
	EmailsSent         int                `bson:"emailsSent" json:"emailsSent"`
	CreatedAt          time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt          time.Time          `bson:"updatedAt" json:"updatedAt"`
}
