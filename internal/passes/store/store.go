package store

import (
	"context"
	"errors"

	"github.com/aussiebroadwan/eventpass/internal/passes/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// Store is the root data access interface. Drivers implement it and expose
// sub-repositories so a Tx-scoped Store can hand out the same repos bound to
// the transaction.
type Store interface {
	Users() Users
	Events() Events
	Passes() Passes

	ApplyMigrations() error

	// Tx starts a write transaction and returns a Tx-scoped Store. The sqlite
	// driver takes the database write lock at BEGIN, so concurrent Tx calls
	// are serialized for their whole lifetime.
	// The caller MUST call Commit() or Rollback() on the returned Tx.
	Tx(ctx context.Context) (Tx, error)

	// WithTx executes fn within a transaction. A non-nil error from fn rolls
	// back, nil commits.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

// Tx is a transactional store. It embeds the same repos but adds Commit/Rollback.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

type Users interface {
	// CreateUser inserts u and returns the generated id. A duplicate phone or
	// email returns ErrAlreadyExists.
	CreateUser(ctx context.Context, u domain.User) (int64, error)

	GetUserByID(ctx context.Context, id int64) (domain.User, error)

	// ListEventAttendees returns each user holding at least one pass for
	// eventID, ordered by id.
	ListEventAttendees(ctx context.Context, eventID int64) ([]domain.User, error)
}

type Events interface {
	CreateEvent(ctx context.Context, e domain.Event) (int64, error)
	GetEventByID(ctx context.Context, id int64) (domain.Event, error)
	ListEvents(ctx context.Context) ([]domain.Event, error)

	// UpdateEvent applies the non-nil fields of p to the event when it is
	// owned by organizerID. Zero affected rows returns ErrNotFound.
	UpdateEvent(ctx context.Context, id, organizerID int64, p domain.EventPatch) error

	// DeleteEvent removes the event when owned by organizerID. Zero affected
	// rows returns ErrNotFound.
	DeleteEvent(ctx context.Context, id, organizerID int64) error
}

type Passes interface {
	CreatePass(ctx context.Context, p domain.Pass) (int64, error)
	GetPassByID(ctx context.Context, id int64) (domain.Pass, error)

	// CountPasses counts every pass for (eventID, category) whatever its status.
	CountPasses(ctx context.Context, eventID int64, category domain.Category) (int64, error)

	// CountUserPasses counts the passes userID holds for eventID.
	CountUserPasses(ctx context.Context, eventID, userID int64) (int64, error)

	ListPassesByUser(ctx context.Context, userID int64) ([]domain.HeldPass, error)
	ListPassesByEvent(ctx context.Context, eventID int64) ([]domain.Pass, error)

	// UpdatePassStatus sets the status when the pass is owned by userID. Zero
	// affected rows returns ErrNotFound.
	UpdatePassStatus(ctx context.Context, id, userID int64, status domain.Status) error
}
