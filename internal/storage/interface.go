package storage

import (
	"context"

	"github.com/battlekeep/battlekeep/internal/model"
)

// AccountStore defines the interface for user aggregate persistence.
//
// Entity writes are field-targeted: SaveEntity and DeleteEntity address one
// nested field of the aggregate and are atomic at the store, so concurrent
// writes to different entity ids never clobber each other. GetCollection and
// SetCollection are the read-modify-write legs used by bulk saves and the
// legacy migration; a SetCollection can overwrite a concurrent write to the
// same collection issued after its paired read.
type AccountStore interface {
	// UpsertAccount atomically matches an account by non-empty patreon or
	// google id, overwrites its identity fields, and creates the account
	// with empty collections when no match exists. Empty identity values
	// never match. Returns the post-update aggregate.
	UpsertAccount(ctx context.Context, patreonID, accessKey, refreshKey string, standing model.Standing, googleID string) (*model.UserAccount, error)

	// GetAccount returns the full aggregate for the user.
	GetAccount(ctx context.Context, userID string) (*model.UserAccount, error)

	// DeleteAccount removes the aggregate and all nested collections.
	// Returns the number of accounts deleted (0 or 1).
	DeleteAccount(ctx context.Context, userID string) (int64, error)

	// SetSettings replaces the settings document wholesale. Returns the
	// number of accounts modified.
	SetSettings(ctx context.Context, userID string, settings []byte) (int64, error)

	// GetEntity fetches the single nested field collection.entityID.
	GetEntity(ctx context.Context, userID string, collection model.Collection, entityID string) (model.Entity, error)

	// SaveEntity sets the single nested field collection.entityID. Returns
	// the number of aggregates modified.
	SaveEntity(ctx context.Context, userID string, collection model.Collection, entityID string, entity model.Entity) (int64, error)

	// DeleteEntity unsets the single nested field collection.entityID.
	// Deleting an absent entity is not an error; the count reports whether
	// anything was removed.
	DeleteEntity(ctx context.Context, userID string, collection model.Collection, entityID string) (int64, error)

	// GetCollection reads one whole entity collection.
	GetCollection(ctx context.Context, userID string, collection model.Collection) (model.EntityCollection, error)

	// SetCollection replaces one whole entity collection. Returns the
	// number of aggregates modified.
	SetCollection(ctx context.Context, userID string, collection model.Collection, entities model.EntityCollection) (int64, error)
}
