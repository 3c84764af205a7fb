package handlers

import (
	"context"
	"regexp"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const dbTimeout = 5 * time.Second

var (
	phonePattern   = regexp.MustCompile(`^[+]?[1-9][0-9]{0,15}$`)
	pincodePattern = regexp.MustCompile(`^[1-9][0-9]{5}$`)
	namePattern    = regexp.MustCompile(`^[a-zA-Z\s.'-]+$`)
)

func ensureDBConnection(ctx context.Context, db *mongo.Database) error {
	checkCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	return db.Client().Ping(checkCtx, readpref.Primary())
}

func dbContext(parent context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(parent, dbTimeout)
}

func validPhone(phone string) bool {
	return phonePattern.MatchString(phone)
}

func validPincode(pincode string) bool {
	return pincodePattern.MatchString(pincode)
}

func validName(name string) bool {
	return namePattern.MatchString(name)
}

// normalizeEmail lowercases and trims an email so the same address always
// hits the same document, whatever casing the client sent.
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
