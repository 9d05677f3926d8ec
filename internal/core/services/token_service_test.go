package services

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/toshitha/habithub/internal/core/domain"
)

func TestTokenService_GenerateAndValidate(t *testing.T) {
	secret := "super-secret-key-for-testing"
	issuer := "habithub-test"
	userID := "user-123-uuid"

	setup := func() (*TokenService, *MockUserRepository) {
		mockRepo := new(MockUserRepository)
		return NewTokenService(secret, issuer, time.Hour, mockRepo), mockRepo
	}

	t.Run("Success: Should generate and validate a token", func(t *testing.T) {
		service, mockRepo := setup()

		mockRepo.On("GetByID", mock.Anything, userID).Return(&domain.User{ID: userID}, nil)

		tokenString, err := service.GenerateToken(userID)
		assert.NoError(t, err)
		assert.NotEmpty(t, tokenString)

		extractedID, err := service.ValidateToken(tokenString)
		assert.NoError(t, err)
		assert.Equal(t, userID, extractedID)

		mockRepo.AssertExpectations(t)
	})

	t.Run("Fail: Should reject a valid token if the user is gone", func(t *testing.T) {
		service, mockRepo := setup()

		mockRepo.On("GetByID", mock.Anything, userID).Return(nil, errors.New("user not found"))

		tokenString, err := service.GenerateToken(userID)
		assert.NoError(t, err)

		_, err = service.ValidateToken(tokenString)
		assert.Error(t, err)
	})

	t.Run("Fail: Should reject a token signed with another key", func(t *testing.T) {
		service, _ := setup()

		other := NewTokenService("completely-different-key", issuer, time.Hour, new(MockUserRepository))
		tokenString, err := other.GenerateToken(userID)
		assert.NoError(t, err)

		_, err = service.ValidateToken(tokenString)
		assert.Error(t, err)
	})

	t.Run("Fail: Should reject a token from another issuer", func(t *testing.T) {
		service, _ := setup()

		other := NewTokenService(secret, "someone-else", time.Hour, new(MockUserRepository))
		tokenString, err := other.GenerateToken(userID)
		assert.NoError(t, err)

		_, err = service.ValidateToken(tokenString)
		assert.ErrorContains(t, err, "issuer")
	})

	t.Run("Fail: Should reject an expired token", func(t *testing.T) {
		service, _ := setup()

		expired := NewTokenService(secret, issuer, -time.Minute, new(MockUserRepository))
		tokenString, err := expired.GenerateToken(userID)
		assert.NoError(t, err)

		_, err = service.ValidateToken(tokenString)
		assert.Error(t, err)
	})

	t.Run("Fail: Should reject an unsigned token", func(t *testing.T) {
		service, _ := setup()

		token := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{
			"sub": userID,
			"iss": issuer,
		})
		tokenString, err := token.SignedString(jwt.UnsafeAllowNoneSignatureType)
		assert.NoError(t, err)

		_, err = service.ValidateToken(tokenString)
		assert.Error(t, err)
	})
}
