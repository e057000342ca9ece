package storage

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestTokenSignerRoundTrip(t *testing.T) {
	signer := NewTokenSigner("secret", time.Hour)

	token, expiresAt, err := signer.Sign("job-1", "job-1/Lecture_Reports.csv")
	require.NoError(t, err)
	require.NotEmpty(t, token)
	require.True(t, expiresAt.After(time.Now()))

	jobID, relPath, err := signer.Verify(token)
	require.NoError(t, err)
	require.Equal(t, "job-1", jobID)
	require.Equal(t, "job-1/Lecture_Reports.csv", relPath)
}

func TestTokenSignerRejectsExpired(t *testing.T) {
	signer := NewTokenSigner("secret", time.Millisecond*10)

	token, _, err := signer.Sign("job-1", "job-1/Lecture_Reports.csv")
	require.NoError(t, err)

	time.Sleep(time.Millisecond * 30)

	_, _, err = signer.Verify(token)
	require.ErrorContains(t, err, "expired")
}

func TestTokenSignerRejectsTampering(t *testing.T) {
	signer := NewTokenSigner("secret", time.Hour)

	token, _, err := signer.Sign("job-1", "job-1/Lecture_Reports.csv")
	require.NoError(t, err)

	parts := strings.Split(token, ".")
	parts[0] = "job-2"
	_, _, err = signer.Verify(strings.Join(parts, "."))
	require.ErrorContains(t, err, "signature")

	_, _, err = signer.Verify("not-a-token")
	require.Error(t, err)
}
