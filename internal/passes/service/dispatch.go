package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"time"

	"github.com/aussiebroadwan/eventpass/internal/passes/domain"
	"github.com/aussiebroadwan/eventpass/internal/passes/metrics"
	"github.com/aussiebroadwan/eventpass/internal/passes/store"
	"github.com/aussiebroadwan/eventpass/pkg/passcard"
	"github.com/aussiebroadwan/eventpass/pkg/slogx"
)

const (
	DefaultMinDelay = 1 * time.Second
	DefaultMaxDelay = 4 * time.Second
)

var ErrNoPass = errors.New("no pass found for user")

// Uploader puts a local file somewhere the messaging channel can fetch it.
type Uploader interface {
	Upload(ctx context.Context, path string) (url string, err error)
}

// Messenger delivers a notification to a phone number.
type Messenger interface {
	SendImage(ctx context.Context, to, link string) error
	SendTemplate(ctx context.Context, to string) error
}

// DispatchResult is the outcome for one recipient of a batch.
type DispatchResult struct {
	UserID  int64  `json:"userId"`
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

type DispatchService struct {
	Store     store.Store
	Uploader  Uploader
	Messenger Messenger

	// TempDir receives rendered cards while they are uploaded.
	TempDir string

	// Pause between successful batch sends, drawn uniformly from
	// [MinDelay, MaxDelay).
	MinDelay time.Duration
	MaxDelay time.Duration

	// Sleep and Jitter are overridable in tests.
	Sleep  func(ctx context.Context, d time.Duration) error
	Jitter func(n int64) int64
}

// NotifyOne renders the pass, uploads it and sends the image to the user's
// phone. The rendered file is removed on every path. Without an Uploader
// there is no URL to hand out, so the plain template message is sent.
func (s *DispatchService) NotifyOne(ctx context.Context, user domain.User, event domain.Event, pass domain.Pass) error {
	log := slogx.FromContext(ctx).With(
		slog.Int64("user_id", user.ID),
		slog.Int64("pass_id", pass.ID),
	)

	if s.Uploader == nil {
		if err := s.Messenger.SendTemplate(ctx, user.Phone); err != nil {
			log.Warn("template delivery failed", slog.Any("error", err))
			return &DeliveryError{Err: fmt.Errorf("send template: %w", err)}
		}
		log.Info("pass template delivered")
		return nil
	}

	details := passcard.Details{
		UserName:  user.Name,
		EventName: event.Name,
		EventDate: event.Date.Format(domain.DateLayout),
		Category:  string(pass.Category),
	}

	start := time.Now()
	err := passcard.WithTempFile(s.TempDir, details, func(path string) error {
		metrics.RenderDuration.Observe(time.Since(start).Seconds())

		url, err := s.Uploader.Upload(ctx, path)
		if err != nil {
			return &DeliveryError{Err: fmt.Errorf("upload pass image: %w", err)}
		}
		if err := s.Messenger.SendImage(ctx, user.Phone, url); err != nil {
			return &DeliveryError{Err: fmt.Errorf("send pass image: %w", err)}
		}
		return nil
	})
	if err != nil {
		log.Warn("pass delivery failed", slog.Any("error", err))
		return err
	}

	log.Info("pass delivered")
	return nil
}

// NotifyMany delivers passes to users one at a time, in order. It returns
// exactly one result per user. A user without a pass for the event, or
// whose delivery fails, gets a failed entry and the batch moves on.
func (s *DispatchService) NotifyMany(ctx context.Context, event domain.Event, users []domain.User, passes []domain.Pass) []DispatchResult {
	log := slogx.FromContext(ctx).With(slog.Int64("event_id", event.ID))

	results := make([]DispatchResult, 0, len(users))
	for i, user := range users {
		res := DispatchResult{UserID: user.ID}

		if err := ctx.Err(); err != nil {
			res.Error = err.Error()
			results = append(results, res)
			continue
		}

		pass, ok := passFor(user.ID, passes)
		if !ok {
			res.Error = ErrNoPass.Error()
			results = append(results, res)
			metrics.Dispatches.WithLabelValues("batch", metrics.OutcomeFailure).Inc()
			continue
		}

		if err := s.NotifyOne(ctx, user, event, pass); err != nil {
			res.Error = err.Error()
			results = append(results, res)
			metrics.Dispatches.WithLabelValues("batch", metrics.OutcomeFailure).Inc()
			continue
		}

		res.Success = true
		results = append(results, res)
		metrics.Dispatches.WithLabelValues("batch", metrics.OutcomeSuccess).Inc()

		if i < len(users)-1 {
			if err := s.sleep(ctx, s.delay()); err != nil {
				log.Warn("batch dispatch interrupted", slog.Any("error", err))
			}
		}
	}
	return results
}

// SendPass delivers a single pass to its holder. Failures past loading the
// pass, user and event come back as *DeliveryError.
func (s *DispatchService) SendPass(ctx context.Context, passID, userID int64) error {
	pass, err := s.Store.Passes().GetPassByID(ctx, passID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrPassNotFound
		}
		return err
	}
	if pass.UserID != userID {
		return ErrPassNotFound
	}

	user, err := s.Store.Users().GetUserByID(ctx, userID)
	if err != nil {
		return fmt.Errorf("load user: %w", err)
	}
	event, err := s.Store.Events().GetEventByID(ctx, pass.EventID)
	if err != nil {
		return fmt.Errorf("load event: %w", err)
	}

	if err := s.NotifyOne(ctx, user, event, pass); err != nil {
		metrics.Dispatches.WithLabelValues("single", metrics.OutcomeFailure).Inc()
		return err
	}
	metrics.Dispatches.WithLabelValues("single", metrics.OutcomeSuccess).Inc()
	return nil
}

// SendEventPasses delivers every pass of an event owned by organizerID.
func (s *DispatchService) SendEventPasses(ctx context.Context, eventID, organizerID int64) ([]DispatchResult, error) {
	event, err := s.Store.Events().GetEventByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, err
	}
	if event.OrganizerID != organizerID {
		return nil, ErrEventNotFound
	}

	users, err := s.Store.Users().ListEventAttendees(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("list attendees: %w", err)
	}
	passes, err := s.Store.Passes().ListPassesByEvent(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("list passes: %w", err)
	}

	slogx.FromContext(ctx).Info("batch dispatch started",
		slog.Int64("event_id", eventID),
		slog.Int("recipients", len(users)),
	)
	return s.NotifyMany(ctx, event, users, passes), nil
}

// passFor picks the pass to send to userID: the first Active one, otherwise
// the first held.
func passFor(userID int64, passes []domain.Pass) (domain.Pass, bool) {
	var (
		first domain.Pass
		found bool
	)
	for _, p := range passes {
		if p.UserID != userID {
			continue
		}
		if p.Status == domain.StatusActive {
			return p, true
		}
		if !found {
			first, found = p, true
		}
	}
	return first, found
}

func (s *DispatchService) delay() time.Duration {
	lo, hi := s.MinDelay, s.MaxDelay
	if lo <= 0 && hi <= 0 {
		lo, hi = DefaultMinDelay, DefaultMaxDelay
	}
	if hi <= lo {
		return lo
	}
	jitter := rand.Int64N
	if s.Jitter != nil {
		jitter = s.Jitter
	}
	return lo + time.Duration(jitter(int64(hi-lo)))
}

func (s *DispatchService) sleep(ctx context.Context, d time.Duration) error {
	if s.Sleep != nil {
		return s.Sleep(ctx, d)
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
