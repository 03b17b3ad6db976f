package sqlite

import (
	"context"

	"github.com/aussiebroadwan/eventpass/internal/passes/domain"
	"github.com/aussiebroadwan/eventpass/internal/passes/store/drivers/sqlite/gen"
)

type eventsRepo struct {
	q *gen.Queries
}

func (r *eventsRepo) CreateEvent(ctx context.Context, e domain.Event) (int64, error) {
	return r.q.CreateEvent(ctx, gen.CreateEventParams{
		Name:          e.Name,
		Description:   mapOptionalString(e.Description),
		Date:          e.Date.UTC(),
		Location:      e.Location,
		OrganizerID:   e.OrganizerID,
		GoldLimit:     e.GoldLimit,
		SilverLimit:   e.SilverLimit,
		PlatinumLimit: e.PlatinumLimit,
	})
}

func (r *eventsRepo) GetEventByID(ctx context.Context, id int64) (domain.Event, error) {
	row, err := r.q.GetEventByID(ctx, id)
	if err != nil {
		return domain.Event{}, mapNotFound(err)
	}
	return mapEvent(row), nil
}

func (r *eventsRepo) ListEvents(ctx context.Context) ([]domain.Event, error) {
	rows, err := r.q.ListEvents(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]domain.Event, 0, len(rows))
	for _, row := range rows {
		out = append(out, mapEvent(row))
	}
	return out, nil
}

func (r *eventsRepo) UpdateEvent(ctx context.Context, id, organizerID int64, p domain.EventPatch) error {
	return affected(r.q.UpdateEvent(ctx, gen.UpdateEventParams{
		Name:        mapOptionalString(p.Name),
		Description: mapOptionalString(p.Description),
		Date:        mapOptionalTime(p.Date),
		Location:    mapOptionalString(p.Location),
		ID:          id,
		OrganizerID: organizerID,
	}))
}

func (r *eventsRepo) DeleteEvent(ctx context.Context, id, organizerID int64) error {
	return affected(r.q.DeleteEvent(ctx, gen.DeleteEventParams{
		ID:          id,
		OrganizerID: organizerID,
	}))
}
