package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusCode(t *testing.T) {
	tests := []struct {
		err  *AppError
		want int
	}{
		{NewNotFound("contact", nil), http.StatusNotFound},
		{NewBadRequest("bad", nil), http.StatusBadRequest},
		{NewParseError(errors.New("row 2")), http.StatusBadRequest},
		{NewEmptyMessage(), http.StatusBadRequest},
		{NewNoRecipients(), http.StatusBadRequest},
		{NewUnauthorized(nil), http.StatusUnauthorized},
		{NewSendInProgress(), http.StatusConflict},
		{NewDispatchFailure(errors.New("down")), http.StatusBadGateway},
		{NewInternal(errors.New("oops")), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.err.StatusCode(), tt.err.Message)
	}
}

func TestParseErrorCarriesDetail(t *testing.T) {
	err := NewParseError(errors.New("record on line 2: wrong number of fields"))
	assert.Contains(t, err.Message, "failed to parse spreadsheet")
	assert.Contains(t, err.Message, "line 2")
}

func TestErrorAndUnwrap(t *testing.T) {
	cause := errors.New("connection refused")
	err := NewDispatchFailure(cause)
	assert.Contains(t, err.Error(), "failed to deliver messages")
	assert.ErrorIs(t, err, cause)
}

func TestIsCode(t *testing.T) {
	assert.True(t, IsCode(NewEmptyMessage(), ErrEmptyMessage))
	assert.False(t, IsCode(NewEmptyMessage(), ErrNoRecipients))
	assert.False(t, IsCode(errors.New("plain"), ErrEmptyMessage))
	assert.True(t, IsCode(fmt.Errorf("wrapped: %w", NewSendInProgress()), ErrSendInProgress))
}
