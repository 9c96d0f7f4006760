package storage

import (
	"context"

	"github.com/battlekeep/battlekeep/internal/model"
)

// Unavailable is an AccountStore for processes started without a store
// connection string. A missing connection string is a configuration error
// surfaced to every operation rather than a startup crash, so the process
// still comes up and fails each call with ErrStoreUnavailable.
type Unavailable struct{}

var _ AccountStore = Unavailable{}

func (Unavailable) UpsertAccount(context.Context, string, string, string, model.Standing, string) (*model.UserAccount, error) {
	return nil, model.ErrStoreUnavailable
}

func (Unavailable) GetAccount(context.Context, string) (*model.UserAccount, error) {
	return nil, model.ErrStoreUnavailable
}

func (Unavailable) DeleteAccount(context.Context, string) (int64, error) {
	return 0, model.ErrStoreUnavailable
}

func (Unavailable) SetSettings(context.Context, string, []byte) (int64, error) {
	return 0, model.ErrStoreUnavailable
}

func (Unavailable) GetEntity(context.Context, string, model.Collection, string) (model.Entity, error) {
	return nil, model.ErrStoreUnavailable
}

func (Unavailable) SaveEntity(context.Context, string, model.Collection, string, model.Entity) (int64, error) {
	return 0, model.ErrStoreUnavailable
}

func (Unavailable) DeleteEntity(context.Context, string, model.Collection, string) (int64, error) {
	return 0, model.ErrStoreUnavailable
}

func (Unavailable) GetCollection(context.Context, string, model.Collection) (model.EntityCollection, error) {
	return nil, model.ErrStoreUnavailable
}

func (Unavailable) SetCollection(context.Context, string, model.Collection, model.EntityCollection) (int64, error) {
	return 0, model.ErrStoreUnavailable
}
