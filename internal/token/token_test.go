package token

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssueAndVerify(t *testing.T) {
	t.Parallel()

	secret := []byte("super-secret")
	now := time.Unix(1_700_000_000, 0)

	tok, err := Issue("user-123", now, time.Hour, secret)
	require.NoError(t, err)
	require.NotEmpty(t, tok)

	claims, err := Verify(tok, now, secret)
	require.NoError(t, err)
	assert.Equal(t, "user-123", claims.Subject)
	assert.Equal(t, now.Add(time.Hour).Unix(), claims.ExpiresAt.Unix())
}

func TestIssueIsDeterministic(t *testing.T) {
	t.Parallel()

	secret := []byte("k")
	now := time.Unix(1_700_000_000, 0)

	first, err := Issue("u1", now, time.Hour, secret)
	require.NoError(t, err)
	second, err := Issue("u1", now, time.Hour, secret)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestExpiryIsWholeSeconds(t *testing.T) {
	t.Parallel()

	secret := []byte("k")
	now := time.Unix(1_700_000_000, 999_999_999)

	tok, err := Issue("u1", now, time.Hour, secret)
	require.NoError(t, err)

	claims, err := Verify(tok, now, secret)
	require.NoError(t, err)
	assert.Zero(t, claims.ExpiresAt.Nanosecond())
}

func TestVerifyWrongSecret(t *testing.T) {
	t.Parallel()

	now := time.Unix(1_700_000_000, 0)
	tok, err := Issue("u2", now, time.Hour, []byte("right-secret"))
	require.NoError(t, err)

	_, err = Verify(tok, now, []byte("wrong-secret"))
	assert.ErrorIs(t, err, ErrSignatureInvalid)
}

func TestVerifyExpired(t *testing.T) {
	t.Parallel()

	secret := []byte("k")
	issued := time.Unix(1_700_000_000, 0)

	tok, err := Issue("u3", issued, time.Hour, secret)
	require.NoError(t, err)

	_, err = Verify(tok, issued.Add(time.Hour), secret)
	assert.ErrorIs(t, err, ErrExpired)
}

func TestVerifyZeroValidity(t *testing.T) {
	t.Parallel()

	secret := []byte("k")
	now := time.Unix(1_700_000_000, 0)

	tok, err := Issue("u4", now, 0, secret)
	require.NoError(t, err)

	_, err = Verify(tok, now.Add(time.Second), secret)
	assert.ErrorIs(t, err, ErrExpired)
}

func TestVerifyMalformed(t *testing.T) {
	t.Parallel()

	now := time.Unix(1_700_000_000, 0)

	for _, tok := range []string{"", "garbage", "not.a.jwt", "a.b"} {
		_, err := Verify(tok, now, []byte("k"))
		assert.ErrorIs(t, err, ErrMalformed, "token %q", tok)
	}
}
