package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/aussiebroadwan/eventpass/internal/passes/domain"
	"github.com/aussiebroadwan/eventpass/internal/passes/metrics"
	"github.com/aussiebroadwan/eventpass/internal/passes/store"
	"github.com/aussiebroadwan/eventpass/pkg/slogx"
)

type PassService struct {
	Store store.Store

	// OnePassPerUser rejects a second pass for the same (user, event).
	OnePassPerUser bool
}

// Issue reserves one slot in category for eventID and records the pass for
// userID. The limit check and insert share one write transaction, which the
// sqlite driver opens with BEGIN IMMEDIATE, so concurrent issuance can never
// push the count past the limit. Every pass counts, including cancelled ones.
func (s *PassService) Issue(ctx context.Context, eventID int64, category domain.Category, userID int64) (int64, error) {
	log := slogx.FromContext(ctx).With(
		slog.Int64("event_id", eventID),
		slog.String("category", string(category)),
	)

	if !category.Valid() {
		return 0, fmt.Errorf("%w: invalid pass category", ErrInvalidRequest)
	}

	var passID int64
	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		// 1. Load the limit
		event, err := tx.Events().GetEventByID(ctx, eventID)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return ErrEventNotFound
			}
			return fmt.Errorf("load event: %w", err)
		}

		// 2. Count what is already out
		issued, err := tx.Passes().CountPasses(ctx, eventID, category)
		if err != nil {
			return fmt.Errorf("count passes: %w", err)
		}

		// 3. Enforce the quota
		if issued >= event.Limit(category) {
			return &QuotaExceededError{Category: category}
		}

		// 4. Optional one-pass-per-user policy
		if s.OnePassPerUser {
			held, err := tx.Passes().CountUserPasses(ctx, eventID, userID)
			if err != nil {
				return fmt.Errorf("count user passes: %w", err)
			}
			if held > 0 {
				return ErrDuplicatePass
			}
		}

		// 5. Insert
		passID, err = tx.Passes().CreatePass(ctx, domain.Pass{
			EventID:  eventID,
			UserID:   userID,
			Category: category,
			Status:   domain.StatusActive,
		})
		if err != nil {
			return fmt.Errorf("create pass: %w", err)
		}
		return nil
	})

	switch {
	case err == nil:
		metrics.PassIssuance.WithLabelValues(string(category), "issued").Inc()
		log.Info("pass issued", slog.Int64("pass_id", passID))
		return passID, nil
	case errors.Is(err, ErrQuotaExceeded):
		metrics.PassIssuance.WithLabelValues(string(category), "quota_exceeded").Inc()
		log.Info("pass quota exhausted")
	case errors.Is(err, ErrDuplicatePass):
		metrics.PassIssuance.WithLabelValues(string(category), "duplicate").Inc()
		log.Info("duplicate pass rejected", slog.Int64("user_id", userID))
	case errors.Is(err, ErrEventNotFound):
		metrics.PassIssuance.WithLabelValues(string(category), "event_not_found").Inc()
	default:
		metrics.PassIssuance.WithLabelValues(string(category), "error").Inc()
		log.Error("pass issuance failed", slog.Any("error", err))
	}
	return 0, err
}

// ListForUser returns the passes userID holds with their event name and date.
func (s *PassService) ListForUser(ctx context.Context, userID int64) ([]domain.HeldPass, error) {
	return s.Store.Passes().ListPassesByUser(ctx, userID)
}

// GetForUser returns the pass when it belongs to userID.
func (s *PassService) GetForUser(ctx context.Context, passID, userID int64) (domain.Pass, error) {
	p, err := s.Store.Passes().GetPassByID(ctx, passID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Pass{}, ErrPassNotFound
		}
		return domain.Pass{}, err
	}
	if p.UserID != userID {
		return domain.Pass{}, ErrPassNotFound
	}
	return p, nil
}

// UpdateStatus changes the status of a pass owned by userID.
func (s *PassService) UpdateStatus(ctx context.Context, passID, userID int64, status domain.Status) error {
	if !status.Valid() {
		return fmt.Errorf("%w: invalid status", ErrInvalidRequest)
	}
	err := s.Store.Passes().UpdatePassStatus(ctx, passID, userID, status)
	if errors.Is(err, store.ErrNotFound) {
		return ErrPassNotFound
	}
	return err
}
