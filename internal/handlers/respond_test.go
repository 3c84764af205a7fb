package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testContext() (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	return c, w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestRespondOKEnvelope(t *testing.T) {
	c, w := testContext()
	respondOK(c, http.StatusCreated, "Order placed successfully", gin.H{"orderId": "SKS-1"})

	assert.Equal(t, http.StatusCreated, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "Order placed successfully", body["message"])
	assert.Equal(t, "SKS-1", body["data"].(map[string]any)["orderId"])
}

func TestRespondOKOmitsNilData(t *testing.T) {
	c, w := testContext()
	respondOK(c, http.StatusOK, "ok", nil)

	body := decodeBody(t, w)
	assert.NotContains(t, body, "data")
}

func TestRespondErrorEnvelope(t *testing.T) {
	c, w := testContext()
	respondError(c, http.StatusNotFound, "Order not found")

	assert.Equal(t, http.StatusNotFound, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "Order not found", body["message"])
}

func TestRespondServerErrorHidesDetailOutsideDevelopment(t *testing.T) {
	c, w := testContext()
	respondServerError(c, "production", "Failed to place order", errors.New("mongo: connection reset"))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	body := decodeBody(t, w)
	assert.NotContains(t, body, "error")
}

func TestRespondServerErrorExposesDetailInDevelopment(t *testing.T) {
	c, w := testContext()
	respondServerError(c, "development", "Failed to place order", errors.New("mongo: connection reset"))

	body := decodeBody(t, w)
	assert.Equal(t, "mongo: connection reset", body["error"])
}

func TestRespondFieldErrors(t *testing.T) {
	c, w := testContext()
	respondFieldErrors(c, []fieldError{{Field: "customerInfo.phone", Message: "Valid phone number is required"}})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, "Validation failed", body["message"])
	errs := body["errors"].([]any)
	require.Len(t, errs, 1)
	assert.Equal(t, "customerInfo.phone", errs[0].(map[string]any)["field"])
}

func TestFieldPath(t *testing.T) {
	assert.Equal(t, "customerInfo.phone", fieldPath("createOrderRequest.CustomerInfo.Phone"))
	assert.Equal(t, "items[0].quantity", fieldPath("createOrderRequest.Items[0].Quantity"))
	assert.Equal(t, "email", fieldPath("loginRequest.Email"))
}

func TestRespondBindingErrorReportsNestedPaths(t *testing.T) {
	c, w := testContext()
	c.Request = httptest.NewRequest(http.MethodPost, "/api/orders",
		strings.NewReader(`{"items":[{"productId":"p1","quantity":1,"size":"M","color":"White"}],"customerInfo":{"email":"asha@example.com","phone":"+919876543210"},"shippingAddress":{"street":"14 MG Road","city":"Pune","state":"Maharashtra","pincode":"411001"},"payment":{"method":"cod"}}`))
	c.Request.Header.Set("Content-Type", "application/json")

	var req createOrderRequest
	err := c.ShouldBindJSON(&req)
	require.Error(t, err)
	respondBindingError(c, err)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	body := decodeBody(t, w)
	fields := make([]string, 0)
	for _, e := range body["errors"].([]any) {
		fields = append(fields, e.(map[string]any)["field"].(string))
	}
	assert.Contains(t, fields, "customerInfo.name")
}

func TestLowerCamel(t *testing.T) {
	assert.Equal(t, "email", lowerCamel("Email"))
	assert.Equal(t, "orderID", lowerCamel("OrderID"))
	assert.Equal(t, "", lowerCamel(""))
}

func TestTrimmedOrDefault(t *testing.T) {
	assert.Equal(t, "India", trimmedOrDefault("  ", "India"))
	assert.Equal(t, "Nepal", trimmedOrDefault(" Nepal ", "India"))
}
