package sqlite

import (
	"context"

	"github.com/aussiebroadwan/eventpass/internal/passes/domain"
	"github.com/aussiebroadwan/eventpass/internal/passes/store/drivers/sqlite/gen"
)

type passesRepo struct {
	q *gen.Queries
}

func (r *passesRepo) CreatePass(ctx context.Context, p domain.Pass) (int64, error) {
	status := p.Status
	if status == "" {
		status = domain.StatusActive
	}
	return r.q.CreatePass(ctx, gen.CreatePassParams{
		EventID:  p.EventID,
		UserID:   p.UserID,
		Category: string(p.Category),
		Status:   string(status),
	})
}

func (r *passesRepo) GetPassByID(ctx context.Context, id int64) (domain.Pass, error) {
	row, err := r.q.GetPassByID(ctx, id)
	if err != nil {
		return domain.Pass{}, mapNotFound(err)
	}
	return mapPass(row), nil
}

func (r *passesRepo) CountPasses(ctx context.Context, eventID int64, category domain.Category) (int64, error) {
	return r.q.CountPasses(ctx, gen.CountPassesParams{
		EventID:  eventID,
		Category: string(category),
	})
}

func (r *passesRepo) CountUserPasses(ctx context.Context, eventID, userID int64) (int64, error) {
	return r.q.CountUserPasses(ctx, gen.CountUserPassesParams{
		EventID: eventID,
		UserID:  userID,
	})
}

func (r *passesRepo) ListPassesByUser(ctx context.Context, userID int64) ([]domain.HeldPass, error) {
	rows, err := r.q.ListPassesByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	out := make([]domain.HeldPass, 0, len(rows))
	for _, row := range rows {
		out = append(out, domain.HeldPass{
			Pass: domain.Pass{
				ID:        row.ID,
				EventID:   row.EventID,
				UserID:    row.UserID,
				Category:  domain.Category(row.Category),
				Status:    domain.Status(row.Status),
				CreatedAt: row.CreatedAt,
			},
			EventName: row.EventName,
			EventDate: row.EventDate,
		})
	}
	return out, nil
}

func (r *passesRepo) ListPassesByEvent(ctx context.Context, eventID int64) ([]domain.Pass, error) {
	rows, err := r.q.ListPassesByEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}
	out := make([]domain.Pass, 0, len(rows))
	for _, row := range rows {
		out = append(out, mapPass(row))
	}
	return out, nil
}

func (r *passesRepo) UpdatePassStatus(ctx context.Context, id, userID int64, status domain.Status) error {
	return affected(r.q.UpdatePassStatus(ctx, gen.UpdatePassStatusParams{
		Status: string(status),
		ID:     id,
		UserID: userID,
	}))
}
