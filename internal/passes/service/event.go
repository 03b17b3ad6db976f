package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/aussiebroadwan/eventpass/internal/passes/domain"
	"github.com/aussiebroadwan/eventpass/internal/passes/store"
	"github.com/aussiebroadwan/eventpass/pkg/slogx"
)

type EventService struct {
	Store store.Store
}

// Create stores e with organizerID as its owner.
func (s *EventService) Create(ctx context.Context, organizerID int64, e domain.Event) (int64, error) {
	if e.GoldLimit < 0 || e.SilverLimit < 0 || e.PlatinumLimit < 0 {
		return 0, fmt.Errorf("%w: pass limits must not be negative", ErrInvalidRequest)
	}
	e.OrganizerID = organizerID

	id, err := s.Store.Events().CreateEvent(ctx, e)
	if err != nil {
		slogx.FromContext(ctx).Error("failed to create event", slog.Any("error", err))
		return 0, fmt.Errorf("create event: %w", err)
	}

	slogx.FromContext(ctx).Info("event created", slog.Int64("event_id", id))
	return id, nil
}

func (s *EventService) List(ctx context.Context) ([]domain.Event, error) {
	return s.Store.Events().ListEvents(ctx)
}

func (s *EventService) Get(ctx context.Context, id int64) (domain.Event, error) {
	e, err := s.Store.Events().GetEventByID(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return domain.Event{}, ErrEventNotFound
	}
	return e, err
}

// Update applies p when organizerID owns the event. Someone else's event is
// reported as not found.
func (s *EventService) Update(ctx context.Context, id, organizerID int64, p domain.EventPatch) error {
	err := s.Store.Events().UpdateEvent(ctx, id, organizerID, p)
	if errors.Is(err, store.ErrNotFound) {
		return ErrEventNotFound
	}
	return err
}

// Delete removes the event when organizerID owns it. Events that still have
// passes fail on the foreign key.
func (s *EventService) Delete(ctx context.Context, id, organizerID int64) error {
	err := s.Store.Events().DeleteEvent(ctx, id, organizerID)
	if errors.Is(err, store.ErrNotFound) {
		return ErrEventNotFound
	}
	return err
}
