package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndValidateToken(t *testing.T) {
	ConfigureJWT("unit-test-secret", time.Hour)
	customerID := int64(5)

	token, expiresAt, err := GenerateAccessToken(Claims{UserID: 3, Email: "c@geobike.com", Role: "cliente", CustomerID: &customerID})
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expiresAt, time.Minute)

	claims, err := ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, int64(3), claims.UserID)
	assert.Equal(t, "cliente", claims.Role)
	require.NotNil(t, claims.CustomerID)
	assert.Equal(t, int64(5), *claims.CustomerID)
	assert.Nil(t, claims.StaffID)
	assert.Equal(t, "3", claims.Subject)
}

func TestValidateTokenRejectsOtherSecret(t *testing.T) {
	ConfigureJWT("first-secret", time.Hour)
	token, _, err := GenerateAccessToken(Claims{UserID: 1, Role: "admin"})
	require.NoError(t, err)

	ConfigureJWT("second-secret", time.Hour)
	_, err = ValidateToken(token)
	assert.Error(t, err)
}

func TestValidateTokenRejectsGarbage(t *testing.T) {
	ConfigureJWT("unit-test-secret", time.Hour)
	_, err := ValidateToken("abc.def.ghi")
	assert.Error(t, err)
}
