package handlers

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestSignAccessTokenRoundTrip(t *testing.T) {
	userID := primitive.NewObjectID()
	secret := "test-secret"

	signed, expiresIn, err := signAccessToken(userID, secret, 60)
	require.NoError(t, err)
	assert.Equal(t, int64(3600), expiresIn)

	parsed, err := jwt.Parse(signed, func(token *jwt.Token) (any, error) {
		return []byte(secret), nil
	}, jwt.WithValidMethods([]string{"HS256"}))
	require.NoError(t, err)
	require.True(t, parsed.Valid)

	claims, ok := parsed.Claims.(jwt.MapClaims)
	require.True(t, ok)
	assert.Equal(t, userID.Hex(), claims["userId"])

	exp, err := claims.GetExpirationTime()
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), exp.Time, time.Minute)
}

func TestSignAccessTokenRejectsWrongSecret(t *testing.T) {
	signed, _, err := signAccessToken(primitive.NewObjectID(), "right-secret", 60)
	require.NoError(t, err)

	_, err = jwt.Parse(signed, func(token *jwt.Token) (any, error) {
		return []byte("wrong-secret"), nil
	}, jwt.WithValidMethods([]string{"HS256"}))
	assert.Error(t, err)
}
