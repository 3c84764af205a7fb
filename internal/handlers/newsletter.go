package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"storefront/internal/models"
	"storefront/internal/util"
)

type subscribeRequest struct {
	Email      string   `json:"email" binding:"required,email"`
	Name       string   `json:"name" binding:"max=100"`
	Categories []string `json:"categories"`
}

// Subscribe creates a subscription, or reactivates one that previously
// unsubscribed. Subscribing an already-active email is a no-op success.
func Subscribe(db *mongo.Database, env string) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /api/newsletter/subscribe"
		defer handlePanic(c, route)

		var req subscribeRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondBindingError(c, err)
			return
		}
		email := normalizeEmail(req.Email)

		ctx, cancel := dbContext(c.Request.Context())
		defer cancel()

		var existing models.Subscriber
		err := db.Collection("newsletter").FindOne(ctx, bson.M{"email": email}).Decode(&existing)
		if err == nil {
			if existing.Status == models.SubscriberActive {
				respondOK(c, http.StatusOK, "You are already subscribed to our newsletter.", nil)
				return
			}
			_, err := db.Collection("newsletter").UpdateOne(ctx,
				bson.M{"_id": existing.ID},
				bson.M{"$set": bson.M{
					"status":           models.SubscriberActive,
					"subscriptionDate": time.Now(),
					"updatedAt":        time.Now(),
				}, "$unset": bson.M{"unsubscriptionDate": ""}})
			if err != nil {
				respondServerError(c, env, "Error subscribing to newsletter", err)
				return
			}
			util.NewsletterSubscribesTotal.Inc()
			respondOK(c, http.StatusOK, "Welcome back! Your subscription has been reactivated.", nil)
			return
		}
		if err != mongo.ErrNoDocuments {
			respondServerError(c, env, "Error subscribing to newsletter", err)
			return
		}

		now := time.Now()
		subscriber := models.Subscriber{
			Email:            email,
			Name:             req.Name,
			Categories:       req.Categories,
			Status:           models.SubscriberActive,
			Source:           "website",
			SubscriptionDate: now,
			CreatedAt:        now,
			UpdatedAt:        now,
		}
		if _, err := db.Collection("newsletter").InsertOne(ctx, subscriber); err != nil {
			respondServerError(c, env, "Error subscribing to newsletter", err)
			return
		}

		util.NewsletterSubscribesTotal.Inc()
		respondOK(c, http.StatusCreated, "Successfully subscribed to our newsletter!", gin.H{
			"email": email,
		})
	}
}

type unsubscribeRequest struct {
	Email string `json:"email" binding:"required,email"`
}

func Unsubscribe(db *mongo.Database, env string) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /api/newsletter/unsubscribe"
		defer handlePanic(c, route)

		var req unsubscribeRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondBindingError(c, err)
			return
		}
		email := normalizeEmail(req.Email)

		ctx, cancel := dbContext(c.Request.Context())
		defer cancel()

		res, err := db.Collection("newsletter").UpdateOne(ctx,
			bson.M{"email": email},
			bson.M{"$set": bson.M{
				"status":             models.SubscriberUnsubscribed,
				"unsubscriptionDate": time.Now(),
				"updatedAt":          time.Now(),
			}})
		if err != nil {
			respondServerError(c, env, "Error unsubscribing from newsletter", err)
			return
		}
		if res.MatchedCount == 0 {
			respondError(c, http.StatusNotFound, "Email not found in our subscriber list")
			return
		}

		respondOK(c, http.StatusOK, "You have been unsubscribed from our newsletter.", nil)
	}
}

func SubscriptionStatus(db *mongo.Database, env string) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /api/newsletter/status/:email"
		defer handlePanic(c, route)

		email := normalizeEmail(c.Param("email"))

		ctx, cancel := dbContext(c.Request.Context())
		defer cancel()

		var subscriber models.Subscriber
		err := db.Collection("newsletter").FindOne(ctx, bson.M{"email": email}).Decode(&subscriber)
		if err == mongo.ErrNoDocuments {
			respondOK(c, http.StatusOK, "Subscription status retrieved", gin.H{
				"subscribed": false,
			})
			return
		}
		if err != nil {
			respondServerError(c, env, "Error retrieving subscription status", err)
			return
		}

		respondOK(c, http.StatusOK, "Subscription status retrieved", gin.H{
			"subscribed":       subscriber.Status == models.SubscriberActive,
			"status":           subscriber.Status,
			"subscriptionDate": subscriber.SubscriptionDate,
		})
	}
}

func NewsletterStats(db *mongo.Database, env string) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /api/newsletter/stats"
		defer handlePanic(c, route)

		ctx, cancel := dbContext(c.Request.Context())
		defer cancel()

		cursor, err := db.Collection("newsletter").Aggregate(ctx, mongo.Pipeline{
			bson.D{{Key: "$group", Value: bson.M{
				"_id":   "$status",
				"count": bson.M{"$sum": 1},
			}}},
		})
		if err != nil {
			respondServerError(c, env, "Error retrieving newsletter statistics", err)
			return
		}
		defer cursor.Close(ctx)

		var groups []bson.M
		if err := cursor.All(ctx, &groups); err != nil {
			respondServerError(c, env, "Error retrieving newsletter statistics", err)
			return
		}

		byStatus := gin.H{}
		total := int64(0)
		for _, group := range groups {
			status, _ := group["_id"].(string)
			if count, ok := group["count"].(int32); ok {
				byStatus[status] = count
				total += int64(count)
			}
		}

		respondOK(c, http.StatusOK, "Newsletter statistics retrieved successfully", gin.H{
			"totalSubscribers": total,
			"byStatus":         byStatus,
		})
	}
}
