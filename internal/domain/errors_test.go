package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorCode(t *testing.T) {
	assert.Equal(t, "", ErrorCode(nil))
	assert.Equal(t, EINVALID, ErrorCode(Errorf(EINVALID, "report.validate", "bad field")))
	assert.Equal(t, EINTERNAL, ErrorCode(errors.New("plain")))

	wrapped := WrapStorage(errors.New("connection refused"), "store.insert", "insert report")
	assert.Equal(t, ESTORAGE, ErrorCode(wrapped))
	assert.ErrorContains(t, errors.Unwrap(wrapped), "connection refused")
}

func TestErrorMessage(t *testing.T) {
	assert.Equal(t, `invalid severity level "x"`, ErrorMessage(Errorf(EINVALID, "report.validate", "invalid severity level %q", "x")))
	assert.Equal(t, "report abc not found", ErrorMessage(NotFound("report.get", "report", "abc")))

	// Backend details never reach callers.
	internal := WrapStorage(errors.New("pq: relation does not exist"), "store.list", "list reports")
	assert.Equal(t, "An internal error occurred. Please try again later.", ErrorMessage(internal))
	assert.Equal(t, "An internal error occurred. Please try again later.", ErrorMessage(errors.New("boom")))
}
