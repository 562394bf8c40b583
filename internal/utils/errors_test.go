package utils

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"invalid argument", E(CodeInvalidArgument, "op", "bad", nil), http.StatusBadRequest},
		{"unauthorized", E(CodeUnauthorized, "op", "no session", nil), http.StatusUnauthorized},
		{"not found", E(CodeNotFound, "op", "missing", nil), http.StatusNotFound},
		{"not configured", E(CodeNotConfigured, "op", "no key", nil), http.StatusInternalServerError},
		{"internal", E(CodeInternal, "op", "boom", nil), http.StatusInternalServerError},
		{"wrapped app error", fmt.Errorf("outer: %w", E(CodeNotFound, "op", "missing", nil)), http.StatusNotFound},
		{"sentinel not found", fmt.Errorf("repo: %w", ErrNotFound), http.StatusNotFound},
		{"plain error", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, HTTPStatus(tt.err))
		})
	}
}

func TestAppErrorMessageAndUnwrap(t *testing.T) {
	cause := errors.New("connection refused")
	err := E(CodeInternal, "JobService.List", "failed to list jobs", cause)

	assert.Equal(t, "JobService.List: failed to list jobs: connection refused", err.Error())
	assert.True(t, errors.Is(err, cause))
	assert.True(t, IsCode(err, CodeInternal))
	assert.False(t, IsCode(err, CodeNotFound))
}

func TestWithDetails(t *testing.T) {
	err := WithDetails(CodeInternal, "op", "no response from AI service", nil, "empty completion")

	var ae *AppError
	require.True(t, errors.As(err, &ae))
	assert.Equal(t, "empty completion", ae.Details)
}

func TestSecretRoundTrip(t *testing.T) {
	hash, err := HashSecret("s3cret-admin")
	require.NoError(t, err)

	assert.NoError(t, CheckSecret(hash, "s3cret-admin"))
	assert.Error(t, CheckSecret(hash, "wrong"))
}
