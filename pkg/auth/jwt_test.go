package auth

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndValidate(t *testing.T) {
	mgr := NewJWTManager("test-secret", 1)
	realtorID := uuid.New()

	token, err := mgr.Generate(realtorID, "ray@example.com")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := mgr.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, realtorID, claims.RealtorID)
	assert.Equal(t, "ray@example.com", claims.Email)
}

func TestValidateRejectsWrongSecret(t *testing.T) {
	token, err := NewJWTManager("secret-a", 1).Generate(uuid.New(), "ray@example.com")
	require.NoError(t, err)

	_, err = NewJWTManager("secret-b", 1).Validate(token)
	assert.Error(t, err)
}

func TestValidateRejectsGarbage(t *testing.T) {
	_, err := NewJWTManager("test-secret", 1).Validate("not.a.token")
	assert.Error(t, err)
}
