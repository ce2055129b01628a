package composer

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/jwalitptl/outreach-api/internal/model"
)

var sample = &model.Contact{
	FullName:        "Ana Souza",
	PhoneDisplay:    "(11) 99999-0001",
	PhoneNormalized: "5511999990001",
	Email:           "ana@example.com",
	ShiftPreference: "Morning",
}

func TestRenderPreview(t *testing.T) {
	tests := []struct {
		name     string
		template string
		want     string
	}{
		{"all placeholders", "Hi {name}, confirm {shift} at {phone} or {email}", "Hi Ana Souza, confirm Morning at (11) 99999-0001 or ana@example.com"},
		{"case insensitive", "Hi {NAME}, see you in the {Shift}", "Hi Ana Souza, see you in the Morning"},
		{"repeated token", "{name} {name}", "Ana Souza Ana Souza"},
		{"unknown token kept", "Hi {name}, code {foo}", "Hi Ana Souza, code {foo}"},
		{"no placeholders", "plain text", "plain text"},
		{"empty template", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, RenderPreview(tt.template, sample))
		})
	}
}

func TestRenderPreviewUsesDisplayPhone(t *testing.T) {
	assert.Equal(t, "(11) 99999-0001", RenderPreview("{phone}", sample))
}

func TestRenderPreviewNilContact(t *testing.T) {
	assert.Equal(t, "Hi {name}", RenderPreview("Hi {name}", nil))
}

func TestRenderPreviewEmptyFields(t *testing.T) {
	c := &model.Contact{FullName: "Ana Souza"}
	assert.Equal(t, "Ana Souza / ", RenderPreview("{name} / {email}", c))
}

func TestServiceTemplatePerOperator(t *testing.T) {
	s := NewService()
	alice, bob := uuid.New(), uuid.New()

	assert.Empty(t, s.Message(alice))

	s.SetMessage(alice, "Hi {name}")
	s.SetMessage(bob, "Hello {name}")
	assert.Equal(t, "Hi {name}", s.Message(alice))
	assert.Equal(t, "Hello {name}", s.Message(bob))

	// Stored verbatim, even when blank.
	s.SetMessage(alice, "  ")
	assert.Equal(t, "  ", s.Message(alice))
}
