package middleware

import (
	"errors"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatBindingError(t *testing.T) {
	type form struct {
		Email    string `validate:"required,email"`
		Password string `validate:"required,min=8"`
	}

	v := validator.New()

	err := v.Struct(form{})
	require.Error(t, err)
	msg := FormatBindingError(err)
	assert.Contains(t, msg, "email is required")
	assert.Contains(t, msg, "password is required")

	err = v.Struct(form{Email: "not-an-email", Password: "short"})
	require.Error(t, err)
	msg = FormatBindingError(err)
	assert.Contains(t, msg, "email must be a valid email")
	assert.Contains(t, msg, "password must be at least 8 characters")
}

func TestFormatBindingErrorPassthrough(t *testing.T) {
	err := errors.New("unexpected EOF")
	assert.Equal(t, "unexpected EOF", FormatBindingError(err))
}
