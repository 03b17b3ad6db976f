package domain

import "time"

// DateLayout is how event dates are printed on a rendered pass.
const DateLayout = "Mon Jan 02 2006"

type Event struct {
	ID            int64
	Name          string
	Description   *string
	Date          time.Time
	Location      string
	OrganizerID   int64
	GoldLimit     int64
	SilverLimit   int64
	PlatinumLimit int64
	CreatedAt     time.Time
}

// Limit returns the configured quota for c. Unknown categories have no slots.
func (e Event) Limit(c Category) int64 {
	switch c {
	case CategoryGold:
		return e.GoldLimit
	case CategorySilver:
		return e.SilverLimit
	case CategoryPlatinum:
		return e.PlatinumLimit
	default:
		return 0
	}
}

// EventPatch holds the mutable event fields. Nil keeps the stored value.
type EventPatch struct {
	Name        *string
	Description *string
	Date        *time.Time
	Location    *string
}
