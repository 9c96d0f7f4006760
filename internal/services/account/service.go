package account

import (
	"context"
	"log/slog"

	"github.com/battlekeep/battlekeep/internal/dependencies/clock"
	"github.com/battlekeep/battlekeep/internal/model"
	"github.com/battlekeep/battlekeep/internal/storage"
)

// Service is the account-aggregate repository: it validates entities,
// applies default-merge decoding on reads, runs the legacy character
// migration, and projects listings. All persistence goes through the
// injected AccountStore.
type Service struct {
	storage storage.AccountStore
	clock   clock.Clock
	logger  *slog.Logger
}

// New creates a new account Service
func New(storage storage.AccountStore, clock clock.Clock, logger *slog.Logger) *Service {
	return &Service{
		storage: storage,
		clock:   clock,
		logger:  logger,
	}
}

// UpsertUser matches an account by external identity and overwrites its
// credential fields, creating the account on first login. Empty identity
// values never match, so two anonymous providers can never collide into one
// account.
func (s *Service) UpsertUser(ctx context.Context, patreonID, accessKey, refreshKey string, standing model.Standing, googleID string) (*model.UserAccount, error) {
	account, err := s.storage.UpsertAccount(ctx, patreonID, accessKey, refreshKey, standing, googleID)
	if err != nil {
		return nil, err
	}

	s.logger.Info("user upserted",
		slog.String("user_id", account.ID),
		slog.String("standing", string(account.AccountStanding)),
	)
	return account, nil
}

// GetFullAccount returns the full aggregate, migrating the deprecated
// playercharacters collection into persistentcharacters on first read.
// Entity collections are returned raw; default-merge decoding is applied by
// the entity and listing read paths.
func (s *Service) GetFullAccount(ctx context.Context, userID string) (*model.UserAccount, error) {
	account, err := s.storage.GetAccount(ctx, userID)
	if err != nil {
		return nil, err
	}

	if err := s.migratePlayerCharacters(ctx, account); err != nil {
		return nil, err
	}
	return account, nil
}

// GetAccount returns the directory view of the account: settings plus cheap
// listings projected from each listable collection.
func (s *Service) GetAccount(ctx context.Context, userID string) (*model.AccountListings, error) {
	account, err := s.GetFullAccount(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &model.AccountListings{
		Settings:             account.Settings,
		StatBlocks:           buildListings(model.CollectionStatBlocks, account.StatBlocks),
		Spells:               buildListings(model.CollectionSpells, account.Spells),
		Encounters:           buildListings(model.CollectionEncounters, account.Encounters),
		PersistentCharacters: buildListings(model.CollectionPersistentCharacters, account.PersistentCharacters),
	}, nil
}

// DeleteAccount removes the aggregate and everything nested in it. Returns
// the number of accounts deleted; deleting an absent account is not an
// error.
func (s *Service) DeleteAccount(ctx context.Context, userID string) (int64, error) {
	deleted, err := s.storage.DeleteAccount(ctx, userID)
	if err != nil {
		return 0, err
	}
	if deleted > 0 {
		s.logger.Info("account deleted", slog.String("user_id", userID))
	}
	return deleted, nil
}

// SetSettings replaces the settings document wholesale.
func (s *Service) SetSettings(ctx context.Context, userID string, settings []byte) (int64, error) {
	return s.storage.SetSettings(ctx, userID, settings)
}

// GetEntity fetches one entity by collection and id, decoded with the
// collection's defaults so stale stored shapes read back fully populated.
func (s *Service) GetEntity(ctx context.Context, collection model.Collection, userID, entityID string) (model.Entity, error) {
	raw, err := s.storage.GetEntity(ctx, userID, collection, entityID)
	if err != nil {
		return nil, err
	}
	return collection.MergeDefaults(raw)
}

// SaveEntity validates the entity envelope and writes the single nested
// field collection.<id>. The caller's document is persisted exactly as
// supplied; defaults are only ever merged on read.
func (s *Service) SaveEntity(ctx context.Context, collection model.Collection, userID string, entity model.Entity) (int64, error) {
	env, err := model.ParseEnvelope(entity)
	if err != nil {
		return 0, err
	}
	if err := env.Validate(); err != nil {
		return 0, err
	}
	return s.storage.SaveEntity(ctx, userID, collection, env.Id, entity)
}

// SaveEntitySet merges a batch of entities into a collection by id. Every
// entity is validated before any store mutation, so a local validation
// failure applies nothing. The merge is read-modify-write over the whole
// collection: a concurrent save to the same collection issued after the read
// can be silently overwritten. That lost-update window is an accepted
// tradeoff of the wholesale collection write.
func (s *Service) SaveEntitySet(ctx context.Context, collection model.Collection, userID string, entities []model.Entity) (int64, error) {
	envelopes := make([]model.Envelope, len(entities))
	for i, entity := range entities {
		env, err := model.ParseEnvelope(entity)
		if err != nil {
			return 0, err
		}
		if err := env.Validate(); err != nil {
			return 0, err
		}
		envelopes[i] = env
	}

	current, err := s.storage.GetCollection(ctx, userID, collection)
	if err != nil {
		return 0, err
	}

	for i, entity := range entities {
		current[envelopes[i].Id] = entity
	}
	return s.storage.SetCollection(ctx, userID, collection, current)
}

// DeleteEntity unsets one entity field. Deleting an absent entity succeeds
// and changes nothing.
func (s *Service) DeleteEntity(ctx context.Context, collection model.Collection, userID, entityID string) (int64, error) {
	return s.storage.DeleteEntity(ctx, userID, collection, entityID)
}
