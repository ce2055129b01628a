package composer

import (
	"regexp"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/jwalitptl/outreach-api/internal/model"
)

// Placeholder tokens recognized in message templates, case-insensitively.
var placeholderRe = regexp.MustCompile(`(?i)\{(name|phone|email|shift)\}`)

// RenderPreview substitutes the recognized placeholders with the sample
// contact's fields. Unrecognized tokens are left verbatim; a nil contact
// returns the template unchanged. Pure and idempotent.
func RenderPreview(template string, contact *model.Contact) string {
	if contact == nil {
		return template
	}
	return placeholderRe.ReplaceAllStringFunc(template, func(token string) string {
		switch strings.ToLower(token) {
		case "{name}":
			return contact.FullName
		case "{phone}":
			return contact.PhoneDisplay
		case "{email}":
			return contact.Email
		case "{shift}":
			return contact.ShiftPreference
		}
		return token
	})
}

// Service keeps each operator's working message template for the session.
// Templates are not persisted and are lost on restart.
type Service struct {
	mu        sync.RWMutex
	templates map[uuid.UUID]string
}

func NewService() *Service {
	return &Service{templates: make(map[uuid.UUID]string)}
}

// SetMessage stores the raw template as typed. No validation.
func (s *Service) SetMessage(userID uuid.UUID, text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.templates[userID] = text
}

func (s *Service) Message(userID uuid.UUID) string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.templates[userID]
}
