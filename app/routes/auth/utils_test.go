package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTRoundTrip(t *testing.T) {
	token, err := GenerateJWT("user-1", "bursar@alphil.ac.ug", "Grace", "Nakato", []string{"Bursar"})
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := ValidateJWT(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "bursar@alphil.ac.ug", claims.Email)
	assert.Equal(t, []string{"Bursar"}, claims.Roles)
	assert.Equal(t, "alphil-sms", claims.Issuer)
}

func TestValidateJWTRejectsTamperedToken(t *testing.T) {
	token, err := GenerateJWT("user-1", "bursar@alphil.ac.ug", "Grace", "Nakato", nil)
	require.NoError(t, err)

	_, err = ValidateJWT(token + "x")
	assert.Error(t, err)

	_, err = ValidateJWT("not.a.token")
	assert.Error(t, err)
}
