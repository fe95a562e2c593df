package token

import (
	"testing"
	"time"

	"github.com/campuscoders/clubsite-api/internal/port"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssueAndVerify_RoundTrip(t *testing.T) {
	t.Parallel()

	svc := New("super-secret", 0)
	userID := "68b1c2d3e4f5a6b7c8d9e0f1"

	tok, err := svc.Issue(userID)
	require.NoError(t, err)

	gotID, issuedAt, err := svc.Verify(tok)
	require.NoError(t, err)
	assert.Equal(t, userID, gotID)
	assert.WithinDuration(t, time.Now(), issuedAt, 2*time.Second)
}

func TestVerify_ExpiryBoundary(t *testing.T) {
	t.Parallel()

	issued := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	clock := issued
	svc := New("secret", 0).WithClock(func() time.Time { return clock })

	tok, err := svc.Issue("u1")
	require.NoError(t, err)

	// six days in: still good
	clock = issued.Add(6 * 24 * time.Hour)
	_, _, err = svc.Verify(tok)
	require.NoError(t, err)

	// eight days in: past the seven-day expiry
	clock = issued.Add(8 * 24 * time.Hour)
	_, _, err = svc.Verify(tok)
	assert.ErrorIs(t, err, port.ErrTokenExpired)
}

func TestVerify_WrongSecret(t *testing.T) {
	t.Parallel()

	tok, err := New("right-secret", 0).Issue("u2")
	require.NoError(t, err)

	_, _, err = New("wrong-secret", 0).Verify(tok)
	assert.ErrorIs(t, err, port.ErrInvalidSignature)
}

func TestVerify_Malformed(t *testing.T) {
	t.Parallel()

	for _, tok := range []string{"", "garbage", "not.a.jwt", "a.b"} {
		_, _, err := New("k", 0).Verify(tok)
		assert.ErrorIs(t, err, port.ErrMalformedToken, "token %q", tok)
	}
}
