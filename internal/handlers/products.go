package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"storefront/internal/models"
	"storefront/internal/util"
)

var productSorts = map[string]bson.D{
	"price-low":  {{Key: "price.base", Value: 1}},
	"price-high": {{Key: "price.base", Value: -1}},
	"newest":     {{Key: "createdAt", Value: -1}},
	"popular":    {{Key: "salesCount", Value: -1}},
	"rating":     {{Key: "ratings.average", Value: -1}, {Key: "ratings.count", Value: -1}},
	"relevance":  {{Key: "createdAt", Value: -1}},
}

// ListProducts serves the filtered, sorted, paginated catalog. Inactive
// products never appear in customer-facing queries.
func ListProducts(db *mongo.Database, env string) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /api/products"
		defer handlePanic(c, route)

		page, limit, err := parsePaginationParams(c.Query("page"), c.Query("limit"), 50)
		if err != nil {
			respondError(c, http.StatusBadRequest, "invalid pagination params")
			return
		}

		sortBy := trimmedOrDefault(c.Query("sortBy"), "relevance")
		sort, ok := productSorts[sortBy]
		if !ok {
			respondError(c, http.StatusBadRequest, "Invalid sort option")
			return
		}

		filter := bson.M{"isActive": true}
		if category := strings.TrimSpace(c.Query("category")); category != "" {
			filter["category"] = category
		}
		if search := strings.TrimSpace(c.Query("search")); search != "" {
			filter["name"] = bson.M{"$regex": search, "$options": "i"}
		}
		if priceRange := parsePriceRange(c.Query("minPrice"), c.Query("maxPrice")); len(priceRange) > 0 {
			filter["price.base"] = priceRange
		}
		if sizes := splitParam(c.Query("sizes")); len(sizes) > 0 {
			filter["sizes.name"] = bson.M{"$in": sizes}
		}
		if colors := splitParam(c.Query("colors")); len(colors) > 0 {
			filter["colors.name"] = bson.M{"$in": colors}
		}
		if tags := splitParam(c.Query("tags")); len(tags) > 0 {
			filter["tags"] = bson.M{"$in": tags}
		}

		ctx, cancel := dbContext(c.Request.Context())
		defer cancel()

		total, err := db.Collection("products").CountDocuments(ctx, filter)
		if err != nil {
			respondServerError(c, env, "Error retrieving products", err)
			return
		}

		findOpts := options.Find().
			SetSort(sort).
			SetSkip((page - 1) * limit).
			SetLimit(limit)

		cursor, err := db.Collection("products").Find(ctx, filter, findOpts)
		if err != nil {
			respondServerError(c, env, "Error retrieving products", err)
			return
		}
		defer cursor.Close(ctx)

		products := make([]models.Product, 0)
		if err := cursor.All(ctx, &products); err != nil {
			respondServerError(c, env, "Error retrieving products", err)
			return
		}

		respondOK(c, http.StatusOK, "Products retrieved successfully", gin.H{
			"products":   products,
			"pagination": paginationEnvelope(page, limit, total),
			"filters": gin.H{
				"category": c.Query("category"),
				"search":   c.Query("search"),
				"minPrice": c.Query("minPrice"),
				"maxPrice": c.Query("maxPrice"),
				"sortBy":   sortBy,
			},
		})
	}
}

// FeaturedProducts lists flagged products ordered by sales then rating.
func FeaturedProducts(db *mongo.Database, env string) gin.HandlerFunc {
	return curatedList(db, env,
		bson.M{"isFeatured": true, "isActive": true},
		bson.D{{Key: "salesCount", Value: -1}, {Key: "ratings.average", Value: -1}},
		"Featured products retrieved successfully")
}

// BestSellers lists active products by sales count.
func BestSellers(db *mongo.Database, env string) gin.HandlerFunc {
	return curatedList(db, env,
		bson.M{"isActive": true},
		bson.D{{Key: "salesCount", Value: -1}},
		"Best selling products retrieved successfully")
}

func curatedList(db *mongo.Database, env string, filter bson.M, sort bson.D, message string) gin.HandlerFunc {
	return func(c *gin.Context) {
		limit := int64(10)
		if limitStr := c.Query("limit"); limitStr != "" {
			parsed, err := strconv.ParseInt(limitStr, 10, 64)
			if err != nil || parsed < 1 || parsed > 20 {
				respondError(c, http.StatusBadRequest, "Limit must be between 1 and 20")
				return
			}
			limit = parsed
		}

		ctx, cancel := dbContext(c.Request.Context())
		defer cancel()

		cursor, err := db.Collection("products").Find(ctx, filter,
			options.Find().SetSort(sort).SetLimit(limit))
		if err != nil {
			respondServerError(c, env, "Error retrieving products", err)
			return
		}
		defer cursor.Close(ctx)

		products := make([]models.Product, 0)
		if err := cursor.All(ctx, &products); err != nil {
			respondServerError(c, env, "Error retrieving products", err)
			return
		}

		respondOK(c, http.StatusOK, message, gin.H{
			"products": products,
			"count":    len(products),
		})
	}
}

// GetProduct fetches one active product by external id or storage id and
// bumps its view counter best-effort.
func GetProduct(db *mongo.Database, env string) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /api/products/:id"
		defer handlePanic(c, route)

		ctx, cancel := dbContext(c.Request.Context())
		defer cancel()

		filter := productRefFilter(c.Param("id"), true)

		var product models.Product
		err := db.Collection("products").FindOne(ctx, filter).Decode(&product)
		if err == mongo.ErrNoDocuments {
			respondError(c, http.StatusNotFound, "Product not found")
			return
		}
		if err != nil {
			respondServerError(c, env, "Error retrieving product", err)
			return
		}

		if _, err := db.Collection("products").UpdateOne(ctx,
			bson.M{"_id": product.ID},
			bson.M{"$inc": bson.M{"viewCount": 1}}); err != nil {
			util.GetLogger().Warn("view count update failed",
				zap.String("productId", product.ProductID), zap.Error(err))
		}

		respondOK(c, http.StatusOK, "Product retrieved successfully", gin.H{
			"product":      product,
			"availability": product.Availability(),
		})
	}
}

func parsePriceRange(minStr, maxStr string) bson.M {
	priceRange := bson.M{}
	if min, err := strconv.ParseFloat(minStr, 64); err == nil && min >= 0 {
		priceRange["$gte"] = min
	}
	if max, err := strconv.ParseFloat(maxStr, 64); err == nil && max >= 0 {
		priceRange["$lte"] = max
	}
	return priceRange
}

func splitParam(value string) []string {
	if value == "" {
		return nil
	}
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
