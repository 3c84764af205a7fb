package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"

	"storefront/internal/models"
)

type registerRequest struct {
	Name         string `json:"name" binding:"required,min=2,max=100"`
	Email        string `json:"email" binding:"required,email"`
	Password     string `json:"password" binding:"required,min=6"`
	Phone        string `json:"phone"`
	Organization string `json:"organization"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

func signAccessToken(userID primitive.ObjectID, secret string, ttlMinutes int) (string, int64, error) {
	expiresIn := int64(ttlMinutes) * 60
	claims := jwt.MapClaims{
		"userId": userID.Hex(),
		"exp":    time.Now().Add(time.Duration(ttlMinutes) * time.Minute).Unix(),
		"iat":    time.Now().Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	return signed, expiresIn, err
}

func Register(db *mongo.Database, jwtSecret string, ttlMinutes int, env string) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /api/auth/register"
		defer handlePanic(c, route)

		var req registerRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondBindingError(c, err)
			return
		}
		if req.Phone != "" && !validPhone(req.Phone) {
			respondFieldErrors(c, []fieldError{{Field: "phone", Message: "Please provide a valid phone number"}})
			return
		}
		req.Email = normalizeEmail(req.Email)

		ctx, cancel := dbContext(c.Request.Context())
		defer cancel()

		count, err := db.Collection("users").CountDocuments(ctx, bson.M{"email": req.Email})
		if err != nil {
			respondServerError(c, env, "Error creating account", err)
			return
		}
		if count > 0 {
			respondError(c, http.StatusConflict, "An account with this email already exists")
			return
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			respondServerError(c, env, "Error creating account", err)
			return
		}

		now := time.Now()
		user := models.User{
			Name:         req.Name,
			Email:        req.Email,
			PasswordHash: string(hash),
			Phone:        req.Phone,
			Organization: req.Organization,
			Role:         "customer",
			IsActive:     true,
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		res, err := db.Collection("users").InsertOne(ctx, user)
		if err != nil {
			respondServerError(c, env, "Error creating account", err)
			return
		}
		userID, _ := res.InsertedID.(primitive.ObjectID)

		token, expiresIn, err := signAccessToken(userID, jwtSecret, ttlMinutes)
		if err != nil {
			respondServerError(c, env, "Error creating account", err)
			return
		}

		respondOK(c, http.StatusCreated, "Account created successfully", gin.H{
			"token":     token,
			"expiresIn": expiresIn,
			"user": gin.H{
				"id":    userID.Hex(),
				"name":  user.Name,
				"email": user.Email,
			},
		})
	}
}

func Login(db *mongo.Database, jwtSecret string, ttlMinutes int, env string) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /api/auth/login"
		defer handlePanic(c, route)

		var req loginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondBindingError(c, err)
			return
		}

		ctx, cancel := dbContext(c.Request.Context())
		defer cancel()

		var user models.User
		err := db.Collection("users").FindOne(ctx, bson.M{"email": normalizeEmail(req.Email), "isActive": true}).Decode(&user)
		if err == mongo.ErrNoDocuments {
			respondError(c, http.StatusUnauthorized, "Invalid email or password")
			return
		}
		if err != nil {
			respondServerError(c, env, "Error signing in", err)
			return
		}

		if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
			respondError(c, http.StatusUnauthorized, "Invalid email or password")
			return
		}

		token, expiresIn, err := signAccessToken(user.ID, jwtSecret, ttlMinutes)
		if err != nil {
			respondServerError(c, env, "Error signing in", err)
			return
		}

		respondOK(c, http.StatusOK, "Signed in successfully", gin.H{
			"token":     token,
			"expiresIn": expiresIn,
			"user": gin.H{
				"id":    user.ID.Hex(),
				"name":  user.Name,
				"email": user.Email,
			},
		})
	}
}

// Me returns the authenticated user's profile. Requires the UserAuth
// middleware to have set userId.
func Me(db *mongo.Database, env string) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /api/auth/me"
		defer handlePanic(c, route)

		value, ok := c.Get("userId")
		if !ok {
			respondError(c, http.StatusUnauthorized, "unauthorized")
			return
		}
		userID, ok := value.(primitive.ObjectID)
		if !ok {
			respondError(c, http.StatusUnauthorized, "unauthorized")
			return
		}

		ctx, cancel := dbContext(c.Request.Context())
		defer cancel()

		var user models.User
		err := db.Collection("users").FindOne(ctx, bson.M{"_id": userID}).Decode(&user)
		if err == mongo.ErrNoDocuments {
			respondError(c, http.StatusNotFound, "User not found")
			return
		}
		if err != nil {
			respondServerError(c, env, "Error retrieving profile", err)
			return
		}

		respondOK(c, http.StatusOK, "Profile retrieved successfully", gin.H{
			"user": user,
		})
	}
}
