package pkg

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndParseAccess(t *testing.T) {
	pair, err := GeneratePair("user_abc", true)
	require.NoError(t, err)
	require.NotEmpty(t, pair.AccessToken)
	require.NotEmpty(t, pair.RefreshToken)

	claims, err := ParseAccess(pair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "user_abc", claims.UserID)
	assert.True(t, claims.IsAdmin)
	assert.Equal(t, "access", claims.RegisteredClaims.Subject)
}

func TestParseAccessRejectsRefreshToken(t *testing.T) {
	pair, err := GeneratePair("user_abc", false)
	require.NoError(t, err)

	// refresh 用的是另一个密钥，不能当 access 用
	_, err = ParseAccess(pair.RefreshToken)
	assert.Error(t, err)
}

func TestRefreshIssuesNewPair(t *testing.T) {
	pair, err := GeneratePair("user_abc", false)
	require.NoError(t, err)

	next, err := Refresh(pair.RefreshToken)
	require.NoError(t, err)

	claims, err := ParseAccess(next.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "user_abc", claims.UserID)
}

func TestRandDigits(t *testing.T) {
	code, err := RandDigits(6)
	require.NoError(t, err)
	require.Len(t, code, 6)
	for _, ch := range code {
		assert.GreaterOrEqual(t, ch, '0')
		assert.LessOrEqual(t, ch, '9')
	}
}
