package dispatch

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
	"github.com/rs/zerolog/log"

	"github.com/jwalitptl/outreach-api/internal/model"
	"github.com/jwalitptl/outreach-api/pkg/errors"
	"github.com/jwalitptl/outreach-api/pkg/metrics"
	"github.com/jwalitptl/outreach-api/pkg/webhook"
)

const defaultResetAfter = 5 * time.Second

// Sender posts one batch payload to the external delivery webhook.
type Sender interface {
	Send(ctx context.Context, payload *webhook.Payload) error
}

// SentMarker reconciles a confirmed delivery back into the operator's roster.
type SentMarker interface {
	MarkSent(userID uuid.UUID, keys []string)
}

// Service coordinates webhook dispatches. Per operator it allows one send in
// flight at a time and keeps the outcome visible for a short window before it
// resets to idle.
type Service struct {
	sender     Sender
	marker     SentMarker
	metrics    *metrics.Metrics
	results    *cache.Cache
	resetAfter time.Duration

	mu       sync.Mutex
	inFlight map[uuid.UUID]bool
}

func NewService(sender Sender, marker SentMarker, m *metrics.Metrics, resetAfter time.Duration) *Service {
	if resetAfter <= 0 {
		resetAfter = defaultResetAfter
	}
	return &Service{
		sender:     sender,
		marker:     marker,
		metrics:    m,
		results:    cache.New(resetAfter, time.Minute),
		resetAfter: resetAfter,
		inFlight:   make(map[uuid.UUID]bool),
	}
}

// Send deduplicates the selected contacts, posts one batch request, and on
// success marks the deduplicated keys as sent. Precondition failures return
// before any state transition or network call. A second send for the same
// operator while one is in flight is rejected outright.
func (s *Service) Send(ctx context.Context, userID uuid.UUID, contacts []*model.Contact, message string) (*model.SendResult, error) {
	if strings.TrimSpace(message) == "" {
		return nil, errors.NewEmptyMessage()
	}
	if len(contacts) == 0 {
		return nil, errors.NewNoRecipients()
	}

	s.mu.Lock()
	if s.inFlight[userID] {
		s.mu.Unlock()
		return nil, errors.NewSendInProgress()
	}
	s.inFlight[userID] = true
	s.results.Delete(userID.String())
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		delete(s.inFlight, userID)
		s.mu.Unlock()
	}()

	deduped := dedupe(contacts)
	payload := &webhook.Payload{
		Message:  message,
		Contacts: make([]webhook.Recipient, 0, len(deduped)),
	}
	keys := make([]string, 0, len(deduped))
	for _, c := range deduped {
		payload.Contacts = append(payload.Contacts, webhook.Recipient{
			Name:    c.FullName,
			Phone:   c.PhoneNormalized,
			Turnout: c.ShiftPreference,
			Email:   c.Email,
			Age:     c.Age,
		})
		keys = append(keys, c.PhoneNormalized)
	}

	start := time.Now()
	err := s.sender.Send(ctx, payload)
	if s.metrics != nil {
		s.metrics.DispatchDuration.Observe(time.Since(start).Seconds())
	}

	if err != nil {
		log.Error().Err(err).Str("user_id", userID.String()).
			Int("recipients", len(deduped)).Msg("dispatch failed")
		s.storeResult(userID, model.DispatchStateFailure, err.Error())
		if s.metrics != nil {
			s.metrics.DispatchesTotal.WithLabelValues("failure").Inc()
		}
		return nil, errors.NewDispatchFailure(err)
	}

	// Only reconcile send-status after the webhook confirmed delivery.
	s.marker.MarkSent(userID, keys)
	s.storeResult(userID, model.DispatchStateSuccess, "")
	if s.metrics != nil {
		s.metrics.DispatchesTotal.WithLabelValues("success").Inc()
		s.metrics.RecipientsSent.Add(float64(len(deduped)))
	}

	log.Info().Str("user_id", userID.String()).
		Int("recipients", len(deduped)).Msg("dispatch delivered")

	return &model.SendResult{
		Sent:  len(deduped),
		Keys:  keys,
		State: model.DispatchStateSuccess,
	}, nil
}

// Status reports the tri-state outcome of the operator's last send. Results
// expire after the reset window, returning the state to idle.
func (s *Service) Status(userID uuid.UUID) *model.DispatchStatus {
	s.mu.Lock()
	sending := s.inFlight[userID]
	s.mu.Unlock()
	if sending {
		return &model.DispatchStatus{State: model.DispatchStateSending}
	}

	if v, ok := s.results.Get(userID.String()); ok {
		status := v.(model.DispatchStatus)
		return &status
	}
	return &model.DispatchStatus{State: model.DispatchStateIdle}
}

// ResetStatus clears the stored outcome ahead of its expiry.
func (s *Service) ResetStatus(userID uuid.UUID) {
	s.results.Delete(userID.String())
}

func (s *Service) storeResult(userID uuid.UUID, state, errText string) {
	s.results.Set(userID.String(), model.DispatchStatus{State: state, Error: errText}, s.resetAfter)
}

// dedupe collapses contacts sharing a phone key. The slot keeps its
// first-occurrence position but carries the last occurrence's field values,
// so the freshest data wins without sending twice.
func dedupe(contacts []*model.Contact) []*model.Contact {
	index := make(map[string]int, len(contacts))
	out := make([]*model.Contact, 0, len(contacts))
	for _, c := range contacts {
		if i, ok := index[c.PhoneNormalized]; ok {
			out[i] = c
			continue
		}
		index[c.PhoneNormalized] = len(out)
		out = append(out, c)
	}
	return out
}
