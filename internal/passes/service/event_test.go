package service

import (
	"context"
	"testing"
	"time"

	"github.com/aussiebroadwan/eventpass/internal/passes/domain"
	"github.com/stretchr/testify/require"
)

func TestEventOwnership(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	svc := &EventService{Store: s}

	owner := createUser(t, s, "Org", "1111111111", "org@x.com")
	other := createUser(t, s, "Mallory", "2222222222", "m@x.com")

	id, err := svc.Create(ctx, owner.ID, domain.Event{
		Name:      "Conf",
		Date:      time.Date(2025, 6, 1, 18, 0, 0, 0, time.UTC),
		Location:  "Hall A",
		GoldLimit: 1,
	})
	require.NoError(t, err)

	t.Run("non-organizer update is not found and mutates nothing", func(t *testing.T) {
		name := "Stolen"
		err := svc.Update(ctx, id, other.ID, domain.EventPatch{Name: &name})
		require.ErrorIs(t, err, ErrEventNotFound)

		e, err := svc.Get(ctx, id)
		require.NoError(t, err)
		require.Equal(t, "Conf", e.Name)
	})

	t.Run("non-organizer delete is not found", func(t *testing.T) {
		require.ErrorIs(t, svc.Delete(ctx, id, other.ID), ErrEventNotFound)
		_, err := svc.Get(ctx, id)
		require.NoError(t, err)
	})

	t.Run("organizer update", func(t *testing.T) {
		loc := "Hall B"
		require.NoError(t, svc.Update(ctx, id, owner.ID, domain.EventPatch{Location: &loc}))
		e, err := svc.Get(ctx, id)
		require.NoError(t, err)
		require.Equal(t, "Hall B", e.Location)
		require.Equal(t, "Conf", e.Name)
	})

	t.Run("negative limits rejected", func(t *testing.T) {
		_, err := svc.Create(ctx, owner.ID, domain.Event{Name: "x", Location: "y", Date: time.Now(), GoldLimit: -1})
		require.ErrorIs(t, err, ErrInvalidRequest)
	})

	t.Run("organizer delete", func(t *testing.T) {
		require.NoError(t, svc.Delete(ctx, id, owner.ID))
		_, err := svc.Get(ctx, id)
		require.ErrorIs(t, err, ErrEventNotFound)
	})
}
