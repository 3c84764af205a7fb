package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User is a customer account. Guest checkouts create one with a random
// throwaway password so repeat orders from the same email reuse the record.
type User struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name         string             `bson:"name" json:"name"`
	Email        string             `bson:"email" json:"email"`
	PasswordHash string             `bson:"passwordHash" json:"-"`
	Phone        string             `bson:"phone,omitempty" json:"phone,omitempty"`
	Organization string             `bson:"organization,omitempty" json:"organization,omitempty"`
	Role         string             `bson:"role" json:"role"`
	IsActive     bool               `bson:"isActive" json:"isActive"`
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time          `bson:"updatedAt" json:"updatedAt"`
}
