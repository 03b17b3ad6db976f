package service

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/aussiebroadwan/eventpass/internal/passes/domain"
	"github.com/aussiebroadwan/eventpass/internal/passes/store/drivers/sqlite"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *sqlite.Store {
	t.Helper()

	s, err := sqlite.NewStore(sqlite.DSN(filepath.Join(t.TempDir(), "passes.db")))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	require.NoError(t, s.ApplyMigrations())
	return s
}

func createUser(t *testing.T, s *sqlite.Store, name, phone, email string) domain.User {
	t.Helper()

	u := domain.User{Name: name, Phone: phone, Email: email}
	id, err := s.Users().CreateUser(context.Background(), u)
	require.NoError(t, err)
	u.ID = id
	return u
}

func createEvent(t *testing.T, s *sqlite.Store, organizerID, gold, silver, platinum int64) domain.Event {
	t.Helper()

	e := domain.Event{
		Name:          "Conf",
		Date:          time.Date(2025, 6, 1, 18, 0, 0, 0, time.UTC),
		Location:      "Hall A",
		OrganizerID:   organizerID,
		GoldLimit:     gold,
		SilverLimit:   silver,
		PlatinumLimit: platinum,
	}
	id, err := s.Events().CreateEvent(context.Background(), e)
	require.NoError(t, err)
	e.ID = id
	return e
}
