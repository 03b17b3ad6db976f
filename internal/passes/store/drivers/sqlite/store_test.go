package sqlite_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/aussiebroadwan/eventpass/internal/passes/domain"
	"github.com/aussiebroadwan/eventpass/internal/passes/store"
	"github.com/aussiebroadwan/eventpass/internal/passes/store/drivers/sqlite"
	"github.com/stretchr/testify/require"
)

func newStore(t *testing.T) *sqlite.Store {
	t.Helper()

	s, err := sqlite.NewStore(sqlite.DSN(filepath.Join(t.TempDir(), "passes.db")))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	require.NoError(t, s.ApplyMigrations())
	return s
}

func seed(t *testing.T, s *sqlite.Store) (domain.User, domain.Event) {
	t.Helper()
	ctx := context.Background()

	u := domain.User{Name: "Alice", Phone: "1111111111", Email: "a@x.com"}
	id, err := s.Users().CreateUser(ctx, u)
	require.NoError(t, err)
	u.ID = id

	e := domain.Event{
		Name:        "Conf",
		Date:        time.Date(2025, 6, 1, 18, 0, 0, 0, time.UTC),
		Location:    "Hall A",
		OrganizerID: u.ID,
		GoldLimit:   1,
		SilverLimit: 2,
	}
	eid, err := s.Events().CreateEvent(ctx, e)
	require.NoError(t, err)
	e.ID = eid

	return u, e
}

func TestMigrationsIdempotent(t *testing.T) {
	s := newStore(t)
	require.NoError(t, s.ApplyMigrations())
	require.NoError(t, s.Ping(context.Background()))
}

func TestUsers(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)
	u, _ := seed(t, s)

	got, err := s.Users().GetUserByID(ctx, u.ID)
	require.NoError(t, err)
	require.Equal(t, "Alice", got.Name)
	require.Equal(t, "a@x.com", got.Email)
	require.False(t, got.CreatedAt.IsZero())

	t.Run("duplicate phone", func(t *testing.T) {
		_, err := s.Users().CreateUser(ctx, domain.User{Name: "B", Phone: u.Phone, Email: "b@x.com"})
		require.ErrorIs(t, err, store.ErrAlreadyExists)
	})

	t.Run("duplicate email", func(t *testing.T) {
		_, err := s.Users().CreateUser(ctx, domain.User{Name: "B", Phone: "2222222222", Email: u.Email})
		require.ErrorIs(t, err, store.ErrAlreadyExists)
	})

	t.Run("missing", func(t *testing.T) {
		_, err := s.Users().GetUserByID(ctx, 9999)
		require.ErrorIs(t, err, store.ErrNotFound)
	})
}

func TestEvents(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)
	u, e := seed(t, s)

	got, err := s.Events().GetEventByID(ctx, e.ID)
	require.NoError(t, err)
	require.Equal(t, "Conf", got.Name)
	require.Nil(t, got.Description)
	require.True(t, e.Date.Equal(got.Date))
	require.EqualValues(t, 1, got.GoldLimit)
	require.EqualValues(t, 0, got.PlatinumLimit)

	t.Run("update keeps nil fields", func(t *testing.T) {
		desc := "annual"
		require.NoError(t, s.Events().UpdateEvent(ctx, e.ID, u.ID, domain.EventPatch{Description: &desc}))

		got, err := s.Events().GetEventByID(ctx, e.ID)
		require.NoError(t, err)
		require.Equal(t, "Conf", got.Name)
		require.Equal(t, "Hall A", got.Location)
		require.NotNil(t, got.Description)
		require.Equal(t, "annual", *got.Description)
	})

	t.Run("owner scoped writes", func(t *testing.T) {
		name := "Hijacked"
		err := s.Events().UpdateEvent(ctx, e.ID, u.ID+1, domain.EventPatch{Name: &name})
		require.ErrorIs(t, err, store.ErrNotFound)
		require.ErrorIs(t, s.Events().DeleteEvent(ctx, e.ID, u.ID+1), store.ErrNotFound)

		got, err := s.Events().GetEventByID(ctx, e.ID)
		require.NoError(t, err)
		require.Equal(t, "Conf", got.Name)
	})

	t.Run("list", func(t *testing.T) {
		all, err := s.Events().ListEvents(ctx)
		require.NoError(t, err)
		require.Len(t, all, 1)
	})

	t.Run("delete", func(t *testing.T) {
		require.NoError(t, s.Events().DeleteEvent(ctx, e.ID, u.ID))
		_, err := s.Events().GetEventByID(ctx, e.ID)
		require.ErrorIs(t, err, store.ErrNotFound)
	})
}

func TestPasses(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)
	u, e := seed(t, s)

	gold, err := s.Passes().CreatePass(ctx, domain.Pass{EventID: e.ID, UserID: u.ID, Category: domain.CategoryGold})
	require.NoError(t, err)
	_, err = s.Passes().CreatePass(ctx, domain.Pass{EventID: e.ID, UserID: u.ID, Category: domain.CategorySilver})
	require.NoError(t, err)

	p, err := s.Passes().GetPassByID(ctx, gold)
	require.NoError(t, err)
	require.Equal(t, domain.StatusActive, p.Status)

	n, err := s.Passes().CountPasses(ctx, e.ID, domain.CategoryGold)
	require.NoError(t, err)
	require.EqualValues(t, 1, n)

	n, err = s.Passes().CountUserPasses(ctx, e.ID, u.ID)
	require.NoError(t, err)
	require.EqualValues(t, 2, n)

	t.Run("cancelled passes still counted", func(t *testing.T) {
		require.NoError(t, s.Passes().UpdatePassStatus(ctx, gold, u.ID, domain.StatusCancelled))
		n, err := s.Passes().CountPasses(ctx, e.ID, domain.CategoryGold)
		require.NoError(t, err)
		require.EqualValues(t, 1, n)
	})

	t.Run("status update is owner scoped", func(t *testing.T) {
		err := s.Passes().UpdatePassStatus(ctx, gold, u.ID+1, domain.StatusUsed)
		require.ErrorIs(t, err, store.ErrNotFound)
	})

	t.Run("check constraint", func(t *testing.T) {
		_, err := s.Passes().CreatePass(ctx, domain.Pass{EventID: e.ID, UserID: u.ID, Category: "Bronze"})
		require.Error(t, err)
	})

	t.Run("foreign keys enforced", func(t *testing.T) {
		_, err := s.Passes().CreatePass(ctx, domain.Pass{EventID: 9999, UserID: u.ID, Category: domain.CategoryGold})
		require.Error(t, err)
		require.Error(t, s.Events().DeleteEvent(ctx, e.ID, u.ID))
	})

	t.Run("held passes carry event", func(t *testing.T) {
		held, err := s.Passes().ListPassesByUser(ctx, u.ID)
		require.NoError(t, err)
		require.Len(t, held, 2)
		require.Equal(t, "Conf", held[0].EventName)
		require.True(t, e.Date.Equal(held[0].EventDate))
	})

	t.Run("attendees are distinct", func(t *testing.T) {
		users, err := s.Users().ListEventAttendees(ctx, e.ID)
		require.NoError(t, err)
		require.Len(t, users, 1)
		require.Equal(t, u.ID, users[0].ID)

		byEvent, err := s.Passes().ListPassesByEvent(ctx, e.ID)
		require.NoError(t, err)
		require.Len(t, byEvent, 2)
	})
}

func TestWithTxRollsBack(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)
	u, e := seed(t, s)

	err := s.WithTx(ctx, func(tx store.Tx) error {
		if _, err := tx.Passes().CreatePass(ctx, domain.Pass{EventID: e.ID, UserID: u.ID, Category: domain.CategoryGold}); err != nil {
			return err
		}
		return store.ErrNotFound
	})
	require.ErrorIs(t, err, store.ErrNotFound)

	n, err := s.Passes().CountPasses(ctx, e.ID, domain.CategoryGold)
	require.NoError(t, err)
	require.Zero(t, n)
}
