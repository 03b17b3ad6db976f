package idx_test

import (
	"testing"
	"time"

	"github.com/aussiebroadwan/eventpass/pkg/idx"
	"github.com/stretchr/testify/require"
)

func TestNewAndParse(t *testing.T) {
	id := idx.New()
	require.False(t, id.IsZero())

	parsed, err := idx.Parse(id.String())
	require.NoError(t, err)
	require.Equal(t, id, parsed)
}

func TestParseRejectsGarbage(t *testing.T) {
	_, err := idx.Parse("")
	require.ErrorIs(t, err, idx.ErrInvalid)

	_, err = idx.Parse("not-a-ulid")
	require.ErrorIs(t, err, idx.ErrInvalid)
}

func TestMonotonicWithinMillisecond(t *testing.T) {
	at := time.Unix(1700000000, 0).UTC()
	a := idx.NewAt(at)
	b := idx.NewAt(at)

	require.Less(t, a.String(), b.String())
	require.WithinDuration(t, at, a.Time(), time.Millisecond)
}

func TestFromHeader(t *testing.T) {
	t.Run("keeps valid ulid", func(t *testing.T) {
		id := idx.New()
		require.Equal(t, id, idx.FromHeader(id.String()))
	})

	t.Run("replaces arbitrary input", func(t *testing.T) {
		id := idx.FromHeader("abc\ninjected")
		require.NotEqual(t, idx.ID("abc\ninjected"), id)
		_, err := idx.Parse(id.String())
		require.NoError(t, err)
	})
}
