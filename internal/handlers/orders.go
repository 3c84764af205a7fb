package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"storefront/internal/models"
	"storefront/internal/notify"
	"storefront/internal/util"
)

/* =========================
   REQUEST DTOs
========================= */

type orderItemRequest struct {
	ProductID string `json:"productId" binding:"required"`
	Quantity  int    `json:"quantity" binding:"required,gte=1"`
	Size      string `json:"size" binding:"required"`
	Color     string `json:"color" binding:"required"`
}

type customerInfoRequest struct {
	Name         string `json:"name" binding:"required,min=2,max=100"`
	Email        string `json:"email" binding:"required,email"`
	Phone        string `json:"phone" binding:"required"`
	Organization string `json:"organization"`
}

type addressRequest struct {
	Street   string `json:"street" binding:"required"`
	City     string `json:"city" binding:"required"`
	State    string `json:"state" binding:"required"`
	Pincode  string `json:"pincode" binding:"required"`
	Country  string `json:"country"`
	Landmark string `json:"landmark"`
}

type paymentRequest struct {
	Method string `json:"method" binding:"required"`
}

type orderNotesRequest struct {
	Customer string `json:"customer"`
}

type createOrderRequest struct {
	Items           []orderItemRequest  `json:"items" binding:"required,min=1,dive"`
	CustomerInfo    customerInfoRequest `json:"customerInfo" binding:"required"`
	ShippingAddress addressRequest      `json:"shippingAddress" binding:"required"`
	BillingAddress  *addressRequest     `json:"billingAddress"`
	Payment         paymentRequest      `json:"payment" binding:"required"`
	Notes           orderNotesRequest   `json:"notes"`
}

// validateCreateOrderRequest covers the rules gin binding tags cannot express.
// It runs before any lookup or mutation.
func validateCreateOrderRequest(req *createOrderRequest) []fieldError {
	var errs []fieldError

	if !validPhone(req.CustomerInfo.Phone) {
		errs = append(errs, fieldError{Field: "customerInfo.phone", Message: "Valid phone number is required"})
	}
	if !validPincode(req.ShippingAddress.Pincode) {
		errs = append(errs, fieldError{Field: "shippingAddress.pincode", Message: "Valid pincode is required"})
	}
	if req.BillingAddress != nil && !validPincode(req.BillingAddress.Pincode) {
		errs = append(errs, fieldError{Field: "billingAddress.pincode", Message: "Valid pincode is required"})
	}
	if !models.ValidPaymentMethod(req.Payment.Method) {
		errs = append(errs, fieldError{Field: "payment.method", Message: "Invalid payment method"})
	}
	return errs
}

/* =========================
   ERRORS
========================= */

type productNotFoundError struct {
	ProductID string
}

func (e productNotFoundError) Error() string {
	return "Product not found: " + e.ProductID
}

type insufficientStockError struct {
	ProductName string
	Dimension   string
	Option      string
}

func (e insufficientStockError) Error() string {
	return fmt.Sprintf("Insufficient stock for %s in %s %s", e.ProductName, e.Dimension, e.Option)
}

/* =========================
   CREATE ORDER
========================= */

// CreateOrder validates every line item against live stock, computes pricing,
// resolves the user, persists the order and decrements stock. Validation and
// mutation run inside one session transaction so a rejected item never leaves
// partial decrements behind. Notifications go out only after the commit.
func CreateOrder(db *mongo.Database, notifier *notify.Notifier, env string) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /api/orders"
		defer handlePanic(c, route)

		var req createOrderRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondBindingError(c, err)
			return
		}
		if errs := validateCreateOrderRequest(&req); len(errs) > 0 {
			util.OrdersFailedTotal.WithLabelValues("validation").Inc()
			respondFieldErrors(c, errs)
			return
		}
		req.CustomerInfo.Email = normalizeEmail(req.CustomerInfo.Email)

		if err := ensureDBConnection(c.Request.Context(), db); err != nil {
			respondError(c, http.StatusServiceUnavailable, "database unavailable")
			return
		}

		ctx, cancel := dbContext(c.Request.Context())
		defer cancel()

		session, err := db.Client().StartSession()
		if err != nil {
			respondServerError(c, env, "Error creating order. Please try again.", err)
			return
		}
		defer session.EndSession(ctx)

		var order models.Order
		_, err = session.WithTransaction(ctx, func(sessCtx mongo.SessionContext) (interface{}, error) {
			now := time.Now()

			// Pass 1: validate everything before mutating anything.
			subtotal := 0.0
			items := make([]models.OrderItem, 0, len(req.Items))
			for _, item := range req.Items {
				var product models.Product
				err := db.Collection("products").FindOne(sessCtx,
					productRefFilter(item.ProductID, true)).Decode(&product)
				if err == mongo.ErrNoDocuments {
					return nil, productNotFoundError{ProductID: item.ProductID}
				}
				if err != nil {
					return nil, err
				}

				// Size and color stock are independent counters, each checked
				// against the full requested quantity.
				sizeOpt := product.FindSize(item.Size)
				if sizeOpt == nil || sizeOpt.Stock < item.Quantity {
					return nil, insufficientStockError{
						ProductName: product.Name, Dimension: "size", Option: item.Size,
					}
				}
				colorOpt := product.FindColor(item.Color)
				if colorOpt == nil || colorOpt.Stock < item.Quantity {
					return nil, insufficientStockError{
						ProductName: product.Name, Dimension: "color", Option: item.Color,
					}
				}

				unitPrice := product.EffectivePrice()
				subtotal += unitPrice * float64(item.Quantity)
				items = append(items, models.OrderItem{
					Product:   product.ID,
					ProductID: product.ProductID,
					Name:      product.Name,
					Image:     product.PrimaryImage().URL,
					Price:     unitPrice,
					Quantity:  item.Quantity,
					Size:      item.Size,
					Color:     item.Color,
				})
			}

			userID, err := findOrCreateUser(sessCtx, db, req.CustomerInfo)
			if err != nil {
				return nil, err
			}

			billing := req.ShippingAddress
			if req.BillingAddress != nil {
				billing = *req.BillingAddress
			}

			order = models.Order{
				OrderID:         models.GenerateOrderID(),
				User:            userID,
				Items:           items,
				CustomerInfo:    models.CustomerInfo(req.CustomerInfo),
				ShippingAddress: buildAddress(req.ShippingAddress),
				BillingAddress:  buildAddress(billing),
				Pricing:         computeOrderPricing(subtotal),
				Payment: models.Payment{
					Method: req.Payment.Method,
					Status: models.PaymentPending,
				},
				Status: models.StatusPending,
				Timeline: []models.TimelineEntry{{
					Status:    models.StatusPending,
					Message:   "Order placed via website",
					Timestamp: now,
					UpdatedBy: "system",
				}},
				Notes: models.OrderNotes{
					Customer: req.Notes.Customer,
					Internal: "Order created via website. Payment method: " + req.Payment.Method,
				},
				CreatedAt: now,
				UpdatedAt: now,
			}

			res, err := db.Collection("orders").InsertOne(sessCtx, order)
			if err != nil {
				return nil, err
			}
			if id, ok := res.InsertedID.(primitive.ObjectID); ok {
				order.ID = id
			}

			// Pass 2: decrement stock per validated item. Size and color are
			// written as two independent counters on the same document.
			for _, item := range order.Items {
				var product models.Product
				if err := db.Collection("products").FindOne(sessCtx,
					bson.M{"_id": item.Product}).Decode(&product); err != nil {
					return nil, err
				}
				product.DecrementStock(item.Size, item.Color, item.Quantity)
				product.IncrementSales(item.Quantity)

				_, err := db.Collection("products").UpdateOne(sessCtx,
					bson.M{"_id": item.Product},
					bson.M{"$set": bson.M{
						"sizes":      product.Sizes,
						"colors":     product.Colors,
						"salesCount": product.SalesCount,
						"updatedAt":  time.Now(),
					}})
				if err != nil {
					return nil, err
				}
			}
			return nil, nil
		})
		if err != nil {
			var stockErr insufficientStockError
			if errors.As(err, &stockErr) {
				util.OrdersFailedTotal.WithLabelValues("insufficient_stock").Inc()
				respondError(c, http.StatusBadRequest, stockErr.Error())
				return
			}
			var notFoundErr productNotFoundError
			if errors.As(err, &notFoundErr) {
				util.OrdersFailedTotal.WithLabelValues("product_not_found").Inc()
				respondError(c, http.StatusBadRequest, notFoundErr.Error())
				return
			}
			util.OrdersFailedTotal.WithLabelValues("internal").Inc()
			respondServerError(c, env, "Error creating order. Please try again.", err)
			return
		}

		util.OrdersCreatedTotal.Inc()
		util.GetLogger().Info("order created",
			zap.String("orderId", order.OrderID),
			zap.Float64("total", order.Pricing.Total),
			zap.Int("items", len(order.Items)))

		// Best-effort; a slow or failing provider never rolls the order back.
		notifier.OrderPlaced(&order)

		respondOK(c, http.StatusCreated, "Order placed successfully!", gin.H{
			"order": gin.H{
				"orderId":           order.FormattedOrderID(),
				"_id":               order.ID.Hex(),
				"status":            order.Status,
				"total":             order.Pricing.Total,
				"paymentMethod":     order.Payment.Method,
				"estimatedDelivery": order.EstimatedCompletionDate,
				"items":             len(order.Items),
				"createdAt":         order.CreatedAt,
			},
		})
	}
}

// productRefFilter matches a product by external id or storage id.
func productRefFilter(ref string, activeOnly bool) bson.M {
	or := []bson.M{{"id": ref}}
	if objID, err := primitive.ObjectIDFromHex(ref); err == nil {
		or = append(or, bson.M{"_id": objID})
	}
	filter := bson.M{"$or": or}
	if activeOnly {
		filter["isActive"] = true
	}
	return filter
}

// orderRefFilter matches an order by generated orderId or storage id.
func orderRefFilter(ref string) bson.M {
	or := []bson.M{{"orderId": ref}}
	if objID, err := primitive.ObjectIDFromHex(ref); err == nil {
		or = append(or, bson.M{"_id": objID})
	}
	return bson.M{"$or": or}
}

// findOrCreateUser resolves the customer by email, creating a guest account
// with a throwaway password on first order.
func findOrCreateUser(ctx mongo.SessionContext, db *mongo.Database, info customerInfoRequest) (primitive.ObjectID, error) {
	var user models.User
	err := db.Collection("users").FindOne(ctx, bson.M{"email": info.Email}).Decode(&user)
	if err == nil {
		return user.ID, nil
	}
	if err != mongo.ErrNoDocuments {
		return primitive.NilObjectID, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(uuid.NewString()), bcrypt.DefaultCost)
	if err != nil {
		return primitive.NilObjectID, err
	}

	now := time.Now()
	guest := models.User{
		Name:         info.Name,
		Email:        info.Email,
		PasswordHash: string(hash),
		Phone:        info.Phone,
		Organization: info.Organization,
		Role:         "customer",
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	res, err := db.Collection("users").InsertOne(ctx, guest)
	if err != nil {
		return primitive.NilObjectID, err
	}
	id, _ := res.InsertedID.(primitive.ObjectID)
	return id, nil
}

func buildAddress(req addressRequest) models.Address {
	return models.Address{
		Street:   req.Street,
		City:     req.City,
		State:    req.State,
		Pincode:  req.Pincode,
		Country:  trimmedOrDefault(req.Country, "India"),
		Landmark: req.Landmark,
	}
}

/* =========================
   READ ORDERS
========================= */

func GetOrder(db *mongo.Database, env string) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /api/orders/:id"
		defer handlePanic(c, route)

		ctx, cancel := dbContext(c.Request.Context())
		defer cancel()

		var order models.Order
		err := db.Collection("orders").FindOne(ctx, orderRefFilter(c.Param("id"))).Decode(&order)
		if err == mongo.ErrNoDocuments {
			respondError(c, http.StatusNotFound, "Order not found")
			return
		}
		if err != nil {
			respondServerError(c, env, "Error retrieving order", err)
			return
		}

		// Shallow user populate: contact fields only.
		var user models.User
		userSummary := gin.H{}
		findOpts := options.FindOne().SetProjection(bson.M{"name": 1, "email": 1, "phone": 1})
		if err := db.Collection("users").FindOne(ctx, bson.M{"_id": order.User}, findOpts).Decode(&user); err == nil {
			userSummary = gin.H{"name": user.Name, "email": user.Email, "phone": user.Phone}
		}

		respondOK(c, http.StatusOK, "Order retrieved successfully", gin.H{
			"order": order,
			"user":  userSummary,
		})
	}
}

func ListOrders(db *mongo.Database, env string) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /api/orders"
		defer handlePanic(c, route)

		page, limit, err := parsePaginationParams(c.Query("page"), c.Query("limit"), 50)
		if err != nil {
			respondError(c, http.StatusBadRequest, "invalid pagination params")
			return
		}

		filter := bson.M{}
		if status := c.Query("status"); status != "" {
			if !models.ValidOrderStatus(status) {
				respondError(c, http.StatusBadRequest, "Invalid status")
				return
			}
			filter["status"] = status
		}
		if email := c.Query("email"); email != "" {
			filter["customerInfo.email"] = normalizeEmail(email)
		}
		if phone := c.Query("phone"); phone != "" {
			if !validPhone(phone) {
				respondError(c, http.StatusBadRequest, "Invalid phone format")
				return
			}
			filter["customerInfo.phone"] = phone
		}
		if dateRange := parseDateRange(c.Query("startDate"), c.Query("endDate")); len(dateRange) > 0 {
			filter["createdAt"] = dateRange
		}

		ctx, cancel := dbContext(c.Request.Context())
		defer cancel()

		total, err := db.Collection("orders").CountDocuments(ctx, filter)
		if err != nil {
			respondServerError(c, env, "Error retrieving orders", err)
			return
		}

		findOpts := options.Find().
			SetSort(bson.D{{Key: "createdAt", Value: -1}}).
			SetSkip((page - 1) * limit).
			SetLimit(limit)

		cursor, err := db.Collection("orders").Find(ctx, filter, findOpts)
		if err != nil {
			respondServerError(c, env, "Error retrieving orders", err)
			return
		}
		defer cursor.Close(ctx)

		orders := make([]models.Order, 0)
		if err := cursor.All(ctx, &orders); err != nil {
			respondServerError(c, env, "Error retrieving orders", err)
			return
		}

		respondOK(c, http.StatusOK, "Orders retrieved successfully", gin.H{
			"orders":     orders,
			"pagination": paginationEnvelope(page, limit, total),
		})
	}
}

func parseDateRange(startStr, endStr string) bson.M {
	dateRange := bson.M{}
	if start, err := time.Parse(time.RFC3339, startStr); err == nil {
		dateRange["$gte"] = start
	}
	if end, err := time.Parse(time.RFC3339, endStr); err == nil {
		dateRange["$lte"] = end
	}
	return dateRange
}

/* =========================
   STATUS / TRACKING
========================= */

type updateStatusRequest struct {
	Status  string `json:"status" binding:"required"`
	Message string `json:"message" binding:"max=500"`
}

// UpdateOrderStatus overwrites the status and appends to the timeline. Any
// status may follow any other; repeating a status appends a second entry.
func UpdateOrderStatus(db *mongo.Database, notifier *notify.Notifier, env string) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "PUT /api/orders/:id/status"
		defer handlePanic(c, route)

		var req updateStatusRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondBindingError(c, err)
			return
		}
		if !models.ValidOrderStatus(req.Status) {
			respondError(c, http.StatusBadRequest, "Invalid status")
			return
		}

		ctx, cancel := dbContext(c.Request.Context())
		defer cancel()

		var order models.Order
		err := db.Collection("orders").FindOne(ctx, orderRefFilter(c.Param("id"))).Decode(&order)
		if err == mongo.ErrNoDocuments {
			respondError(c, http.StatusNotFound, "Order not found")
			return
		}
		if err != nil {
			respondServerError(c, env, "Error updating order status", err)
			return
		}

		order.UpdateStatus(req.Status, req.Message, "admin")

		if _, err := db.Collection("orders").ReplaceOne(ctx, bson.M{"_id": order.ID}, order); err != nil {
			respondServerError(c, env, "Error updating order status", err)
			return
		}

		notifier.OrderStatusChanged(&order)

		respondOK(c, http.StatusOK, "Order status updated successfully", gin.H{
			"order": gin.H{
				"orderId":   order.FormattedOrderID(),
				"status":    order.Status,
				"updatedAt": order.UpdatedAt,
			},
		})
	}
}

type addTrackingRequest struct {
	Carrier           string `json:"carrier" binding:"required"`
	TrackingNumber    string `json:"trackingNumber" binding:"required"`
	EstimatedDelivery string `json:"estimatedDelivery"`
}

func AddTracking(db *mongo.Database, env string) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /api/orders/:id/tracking"
		defer handlePanic(c, route)

		var req addTrackingRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondBindingError(c, err)
			return
		}

		var estimated *time.Time
		if req.EstimatedDelivery != "" {
			parsed, err := time.Parse(time.RFC3339, req.EstimatedDelivery)
			if err != nil {
				respondError(c, http.StatusBadRequest, "Invalid estimated delivery date")
				return
			}
			estimated = &parsed
		}

		ctx, cancel := dbContext(c.Request.Context())
		defer cancel()

		var order models.Order
		err := db.Collection("orders").FindOne(ctx, orderRefFilter(c.Param("id"))).Decode(&order)
		if err == mongo.ErrNoDocuments {
			respondError(c, http.StatusNotFound, "Order not found")
			return
		}
		if err != nil {
			respondServerError(c, env, "Error adding tracking information", err)
			return
		}

		order.Tracking.Carrier = req.Carrier
		order.Tracking.TrackingNumber = req.TrackingNumber
		if estimated != nil {
			order.Tracking.EstimatedDelivery = estimated
		}

		if order.Status != models.StatusShipped && order.Status != models.StatusDelivered {
			order.UpdateStatus(models.StatusShipped,
				fmt.Sprintf("Order shipped via %s. Tracking: %s", req.Carrier, req.TrackingNumber), "")
		}
		order.UpdatedAt = time.Now()

		if _, err := db.Collection("orders").ReplaceOne(ctx, bson.M{"_id": order.ID}, order); err != nil {
			respondServerError(c, env, "Error adding tracking information", err)
			return
		}

		respondOK(c, http.StatusOK, "Tracking information added successfully", gin.H{
			"order": gin.H{
				"orderId":  order.FormattedOrderID(),
				"tracking": order.Tracking,
				"status":   order.Status,
			},
		})
	}
}

/* =========================
   PAYMENT
========================= */

type recordPaymentRequest struct {
	Amount        float64 `json:"amount" binding:"required"`
	TransactionID string  `json:"transactionId" binding:"required"`
	Method        string  `json:"method" binding:"required"`
}

// RecordPayment adds to the cumulative paid amount. The addition is
// unconditional; payment flips to completed once paid covers the total.
func RecordPayment(db *mongo.Database, env string) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /api/orders/:id/payment"
		defer handlePanic(c, route)

		var req recordPaymentRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondBindingError(c, err)
			return
		}
		if !models.ValidPaymentMethod(req.Method) {
			respondError(c, http.StatusBadRequest, "Invalid payment method")
			return
		}

		ctx, cancel := dbContext(c.Request.Context())
		defer cancel()

		var order models.Order
		err := db.Collection("orders").FindOne(ctx, orderRefFilter(c.Param("id"))).Decode(&order)
		if err == mongo.ErrNoDocuments {
			respondError(c, http.StatusNotFound, "Order not found")
			return
		}
		if err != nil {
			respondServerError(c, env, "Error recording payment", err)
			return
		}

		order.ProcessPayment(req.Amount, req.TransactionID, req.Method)

		if _, err := db.Collection("orders").ReplaceOne(ctx, bson.M{"_id": order.ID}, order); err != nil {
			respondServerError(c, env, "Error recording payment", err)
			return
		}

		respondOK(c, http.StatusOK, "Payment recorded successfully", gin.H{
			"payment": order.Payment,
			"balance": order.PaymentBalance(),
		})
	}
}

type recordRefundRequest struct {
	Amount float64 `json:"amount" binding:"required"`
}

func RecordRefund(db *mongo.Database, env string) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /api/orders/:id/refund"
		defer handlePanic(c, route)

		var req recordRefundRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondBindingError(c, err)
			return
		}

		ctx, cancel := dbContext(c.Request.Context())
		defer cancel()

		var order models.Order
		err := db.Collection("orders").FindOne(ctx, orderRefFilter(c.Param("id"))).Decode(&order)
		if err == mongo.ErrNoDocuments {
			respondError(c, http.StatusNotFound, "Order not found")
			return
		}
		if err != nil {
			respondServerError(c, env, "Error recording refund", err)
			return
		}

		order.ProcessRefund(req.Amount)

		if _, err := db.Collection("orders").ReplaceOne(ctx, bson.M{"_id": order.ID}, order); err != nil {
			respondServerError(c, env, "Error recording refund", err)
			return
		}

		respondOK(c, http.StatusOK, "Refund recorded successfully", gin.H{
			"payment": order.Payment,
		})
	}
}

/* =========================
   STATS
========================= */

func OrderStats(db *mongo.Database, env string) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /api/orders/stats/summary"
		defer handlePanic(c, route)

		ctx, cancel := dbContext(c.Request.Context())
		defer cancel()

		orders := db.Collection("orders")

		cursor, err := orders.Aggregate(ctx, mongo.Pipeline{
			bson.D{{Key: "$group", Value: bson.M{
				"_id":        "$status",
				"count":      bson.M{"$sum": 1},
				"totalValue": bson.M{"$sum": "$pricing.total"},
			}}},
		})
		if err != nil {
			respondServerError(c, env, "Error retrieving order statistics", err)
			return
		}
		defer cursor.Close(ctx)

		var breakdown []bson.M
		if err := cursor.All(ctx, &breakdown); err != nil {
			respondServerError(c, env, "Error retrieving order statistics", err)
			return
		}

		totalOrders := int64(0)
		totalRevenue := 0.0
		for _, group := range breakdown {
			if count, ok := group["count"].(int32); ok {
				totalOrders += int64(count)
			}
			switch value := group["totalValue"].(type) {
			case float64:
				totalRevenue += value
			case int32:
				totalRevenue += float64(value)
			case int64:
				totalRevenue += float64(value)
			}
		}

		pendingOrders, err := orders.CountDocuments(ctx, bson.M{
			"status": bson.M{"$in": []string{
				models.StatusPending, models.StatusConfirmed,
				models.StatusProcessing, models.StatusManufacturing,
			}},
		})
		if err != nil {
			respondServerError(c, env, "Error retrieving order statistics", err)
			return
		}

		overdueOrders, err := orders.CountDocuments(ctx, bson.M{
			"estimatedCompletionDate": bson.M{"$lt": time.Now()},
			"status": bson.M{"$nin": []string{
				models.StatusDelivered, models.StatusCancelled, models.StatusReturned,
			}},
		})
		if err != nil {
			respondServerError(c, env, "Error retrieving order statistics", err)
			return
		}

		respondOK(c, http.StatusOK, "Order statistics retrieved successfully", gin.H{
			"totalOrders":     totalOrders,
			"totalRevenue":    totalRevenue,
			"pendingOrders":   pendingOrders,
			"overdueOrders":   overdueOrders,
			"statusBreakdown": breakdown,
		})
	}
}
