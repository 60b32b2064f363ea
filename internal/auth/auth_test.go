package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zeabis/zeabis/internal/domain"
)

func TestHashPassword_RoundTrip(t *testing.T) {
	hash, err := HashPassword("correct horse")
	require.NoError(t, err)
	assert.NotEqual(t, "correct horse", hash)
	assert.True(t, CheckPassword(hash, "correct horse"))
	assert.False(t, CheckPassword(hash, "wrong"))
	assert.False(t, CheckPassword("not-a-hash", "correct horse"))
}

func TestIssuer_IssueAndVerify(t *testing.T) {
	iss := NewIssuer("secret", time.Hour)
	u := &domain.User{ID: "u-1", Email: "ana@example.com"}

	token, err := iss.Issue(u)
	require.NoError(t, err)

	claims, err := iss.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "u-1", claims.UserID())
	assert.Equal(t, "ana@example.com", claims.Email)
}

func TestIssuer_RejectsExpiredToken(t *testing.T) {
	past := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	iss := NewIssuer("secret", time.Hour).WithClock(func() time.Time { return past })
	token, err := iss.Issue(&domain.User{ID: "u-1"})
	require.NoError(t, err)

	_, err = NewIssuer("secret", time.Hour).Verify(token)
	require.Error(t, err)
	assert.Equal(t, domain.KindUnauthorized, domain.KindOf(err))
	assert.Equal(t, "Token expired", err.Error())
}

func TestIssuer_RejectsForeignSignature(t *testing.T) {
	token, err := NewIssuer("one", time.Hour).Issue(&domain.User{ID: "u-1"})
	require.NoError(t, err)

	_, err = NewIssuer("two", time.Hour).Verify(token)
	assert.Equal(t, domain.KindUnauthorized, domain.KindOf(err))

	_, err = NewIssuer("one", time.Hour).Verify("garbage")
	assert.Equal(t, domain.KindUnauthorized, domain.KindOf(err))
}
