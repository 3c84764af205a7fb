package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"unicode"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"storefront/internal/util"
)

// All endpoints share one response envelope:
// {success, message, data?, errors?}.

func respondOK(c *gin.Context, status int, message string, data gin.H) {
	body := gin.H{"success": true, "message": message}
	if data != nil {
		body["data"] = data
	}
	c.JSON(status, body)
}

func respondError(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, gin.H{"success": false, "message": message})
}

// respondServerError hides the raw error outside development.
func respondServerError(c *gin.Context, env, message string, err error) {
	util.GetLogger().Error(message, zap.Error(err))

	body := gin.H{"success": false, "message": message}
	if env == "development" && err != nil {
		body["error"] = err.Error()
	}
	c.AbortWithStatusJSON(http.StatusInternalServerError, body)
}

type fieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func respondFieldErrors(c *gin.Context, errs []fieldError) {
	c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
		"success": false,
		"message": "Validation failed",
		"errors":  errs,
	})
}

// respondBindingError converts gin binding failures into the per-field error
// array of the envelope.
func respondBindingError(c *gin.Context, err error) {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		respondError(c, http.StatusBadRequest, "invalid request body")
		return
	}

	errs := make([]fieldError, 0, len(validationErrors))
	for _, fe := range validationErrors {
		field := fieldPath(fe.Namespace())
		var message string
		switch fe.Tag() {
		case "required":
			message = fmt.Sprintf("%s is required", field)
		case "email":
			message = fmt.Sprintf("%s must be a valid email address", field)
		case "min":
			message = fmt.Sprintf("%s must be at least %s", field, fe.Param())
		case "max":
			message = fmt.Sprintf("%s cannot exceed %s", field, fe.Param())
		case "gte":
			message = fmt.Sprintf("%s must be at least %s", field, fe.Param())
		default:
			message = fmt.Sprintf("%s is invalid", field)
		}
		errs = append(errs, fieldError{Field: field, Message: message})
	}
	respondFieldErrors(c, errs)
}

// fieldPath turns a validator namespace ("createOrderRequest.CustomerInfo.Phone")
// into the dotted client-facing path ("customerInfo.phone"), matching the field
// names the manual validators report.
func fieldPath(namespace string) string {
	segments := strings.Split(namespace, ".")
	if len(segments) > 1 {
		segments = segments[1:]
	}
	for i, segment := range segments {
		segments[i] = lowerCamel(segment)
	}
	return strings.Join(segments, ".")
}

func lowerCamel(s string) string {
	if s == "" {
		return s
	}
	runes := []rune(s)
	runes[0] = unicode.ToLower(runes[0])
	return string(runes)
}

func handlePanic(c *gin.Context, route string) {
	if r := recover(); r != nil {
		util.GetLogger().Error("panic recovered",
			zap.String("route", route), zap.Any("panic", r))
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "internal server error",
		})
	}
}

func trimmedOrDefault(value, fallback string) string {
	if trimmed := strings.TrimSpace(value); trimmed != "" {
		return trimmed
	}
	return fallback
}
