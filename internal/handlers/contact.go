package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"storefront/internal/models"
	"storefront/internal/notify"
	"storefront/internal/util"
)

type enquiryItemRequest struct {
	ID           string `json:"id" binding:"required"`
	Name         string `json:"name"`
	SelectedSize string `json:"selectedSize"`
	Quantity     int    `json:"quantity" binding:"gte=0"`
	Notes        string `json:"notes"`
	Image        string `json:"image"`
}

type contactRequest struct {
	Name         string               `json:"name" binding:"required,min=2,max=100"`
	Email        string               `json:"email" binding:"required,email"`
	Phone        string               `json:"phone"`
	Organization string               `json:"organization" binding:"max=200"`
	Category     string               `json:"category"`
	Message      string               `json:"message" binding:"required,min=10,max=2000"`
	InquiryType  string               `json:"inquiryType" binding:"required"`
	EnquiryItems []enquiryItemRequest `json:"enquiryItems"`
}

func validateContactRequest(req *contactRequest) []fieldError {
	var errs []fieldError
	if !validName(req.Name) {
		errs = append(errs, fieldError{Field: "name", Message: "Name can only contain letters, spaces, dots, apostrophes, and hyphens"})
	}
	if req.Phone != "" && !validPhone(req.Phone) {
		errs = append(errs, fieldError{Field: "phone", Message: "Please provide a valid phone number"})
	}
	if !models.ValidInquiryType(req.InquiryType) {
		errs = append(errs, fieldError{Field: "inquiryType", Message: "Invalid inquiry type"})
	}
	return errs
}

// SubmitContact accepts a contact/enquiry submission. Persistence is
// best-effort: a storage failure is logged and the request still proceeds to
// notification dispatch and reports success. The emailSent/smsSent flags in
// the response reflect what the collaborators actually managed.
func SubmitContact(db *mongo.Database, notifier *notify.Notifier, env string) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /api/contact"
		defer handlePanic(c, route)

		var req contactRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondBindingError(c, err)
			return
		}
		if errs := validateContactRequest(&req); len(errs) > 0 {
			respondFieldErrors(c, errs)
			return
		}

		now := time.Now()
		sub := models.Contact{
			Name:         req.Name,
			Email:        normalizeEmail(req.Email),
			Phone:        req.Phone,
			Organization: req.Organization,
			Category:     req.Category,
			Message:      req.Message,
			InquiryType:  req.InquiryType,
			Status:       models.ContactPending,
			Source:       "website",
			IPAddress:    c.ClientIP(),
			UserAgent:    c.Request.UserAgent(),
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		for _, item := range req.EnquiryItems {
			sub.EnquiryItems = append(sub.EnquiryItems, models.EnquiryItem(item))
		}
		sub.Classify(now)

		submissionID := "no-db"
		ctx, cancel := dbContext(c.Request.Context())
		defer cancel()
		if res, err := db.Collection("contacts").InsertOne(ctx, sub); err != nil {
			util.GetLogger().Warn("contact submission not persisted", zap.Error(err))
		} else if id, ok := res.InsertedID.(primitive.ObjectID); ok {
			sub.ID = id
			submissionID = id.Hex()
		}

		emailSent, smsSent := notifier.ContactSubmitted(&sub)
		util.ContactSubmissionsTotal.Inc()

		respondOK(c, http.StatusOK,
			"Thank you for your message! We will get back to you within 24 hours.", gin.H{
				"submissionId": submissionID,
				"emailSent":    emailSent,
				"smsSent":      smsSent,
			})
	}
}

// ListContacts is the staff view over submissions, newest first.
func ListContacts(db *mongo.Database, env string) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /api/contact"
		defer handlePanic(c, route)

		page, limit, err := parsePaginationParams(c.Query("page"), c.Query("limit"), 50)
		if err != nil {
			respondError(c, http.StatusBadRequest, "invalid pagination params")
			return
		}

		filter := bson.M{}
		if status := c.Query("status"); status != "" {
			filter["status"] = status
		}
		if inquiryType := c.Query("inquiryType"); inquiryType != "" {
			filter["inquiryType"] = inquiryType
		}
		if isRead := c.Query("isRead"); isRead != "" {
			filter["isRead"] = isRead == "true"
		}

		ctx, cancel := dbContext(c.Request.Context())
		defer cancel()

		total, err := db.Collection("contacts").CountDocuments(ctx, filter)
		if err != nil {
			respondServerError(c, env, "Error retrieving submissions", err)
			return
		}

		findOpts := options.Find().
			SetSort(bson.D{{Key: "createdAt", Value: -1}}).
			SetSkip((page - 1) * limit).
			SetLimit(limit)

		cursor, err := db.Collection("contacts").Find(ctx, filter, findOpts)
		if err != nil {
			respondServerError(c, env, "Error retrieving submissions", err)
			return
		}
		defer cursor.Close(ctx)

		submissions := make([]models.Contact, 0)
		if err := cursor.All(ctx, &submissions); err != nil {
			respondServerError(c, env, "Error retrieving submissions", err)
			return
		}

		respondOK(c, http.StatusOK, "Submissions retrieved successfully", gin.H{
			"submissions": submissions,
			"pagination":  paginationEnvelope(page, limit, total),
		})
	}
}

// MarkContactRead toggles the staff read flag.
func MarkContactRead(db *mongo.Database, env string) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "PUT /api/contact/:id/read"
		defer handlePanic(c, route)

		id, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			respondError(c, http.StatusBadRequest, "invalid submission id")
			return
		}

		ctx, cancel := dbContext(c.Request.Context())
		defer cancel()

		res, err := db.Collection("contacts").UpdateOne(ctx,
			bson.M{"_id": id},
			bson.M{"$set": bson.M{"isRead": true, "updatedAt": time.Now()}})
		if err != nil {
			respondServerError(c, env, "Error updating submission", err)
			return
		}
		if res.MatchedCount == 0 {
			respondError(c, http.StatusNotFound, "Submission not found")
			return
		}

		respondOK(c, http.StatusOK, "Submission marked as read", nil)
	}
}
