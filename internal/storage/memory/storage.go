package memory

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/battlekeep/battlekeep/internal/model"
	"github.com/battlekeep/battlekeep/internal/storage"
)

// Storage is an in-memory implementation of the account store. It mirrors
// the backing-store semantics the Redis implementation provides, including
// the identity upsert matching rules, so service tests run against it
// without a Redis instance.
type Storage struct {
	mu sync.RWMutex

	accounts     map[string]*model.UserAccount
	patreonIndex map[string]string
	googleIndex  map[string]string
}

// New creates a new in-memory storage instance
func New() *Storage {
	return &Storage{
		accounts:     make(map[string]*model.UserAccount),
		patreonIndex: make(map[string]string),
		googleIndex:  make(map[string]string),
	}
}

// Ensure Storage implements the interface
var _ storage.AccountStore = (*Storage)(nil)

func (s *Storage) UpsertAccount(ctx context.Context, patreonID, accessKey, refreshKey string, standing model.Standing, googleID string) (*model.UserAccount, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var account *model.UserAccount
	if patreonID != "" {
		if id, ok := s.patreonIndex[patreonID]; ok {
			account = s.accounts[id]
		}
	}
	if account == nil && googleID != "" {
		if id, ok := s.googleIndex[googleID]; ok {
			account = s.accounts[id]
		}
	}

	if account == nil {
		account = model.NewUserAccount(uuid.NewString())
		s.accounts[account.ID] = account
	}

	if account.PatreonID != "" && account.PatreonID != patreonID {
		delete(s.patreonIndex, account.PatreonID)
	}
	if account.GoogleID != "" && account.GoogleID != googleID {
		delete(s.googleIndex, account.GoogleID)
	}

	account.PatreonID = patreonID
	account.GoogleID = googleID
	account.AccessKey = accessKey
	account.RefreshKey = refreshKey
	account.AccountStanding = standing

	if patreonID != "" {
		s.patreonIndex[patreonID] = account.ID
	}
	if googleID != "" {
		s.googleIndex[googleID] = account.ID
	}

	return cloneAccount(account), nil
}

func (s *Storage) GetAccount(ctx context.Context, userID string) (*model.UserAccount, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	account, ok := s.accounts[userID]
	if !ok {
		return nil, model.ErrAccountNotFound
	}
	return cloneAccount(account), nil
}

func (s *Storage) DeleteAccount(ctx context.Context, userID string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	account, ok := s.accounts[userID]
	if !ok {
		return 0, nil
	}
	if account.PatreonID != "" {
		delete(s.patreonIndex, account.PatreonID)
	}
	if account.GoogleID != "" {
		delete(s.googleIndex, account.GoogleID)
	}
	delete(s.accounts, userID)
	return 1, nil
}

func (s *Storage) SetSettings(ctx context.Context, userID string, settings []byte) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	account, ok := s.accounts[userID]
	if !ok {
		return 0, nil
	}
	account.Settings = append([]byte(nil), settings...)
	return 1, nil
}

func (s *Storage) GetEntity(ctx context.Context, userID string, collection model.Collection, entityID string) (model.Entity, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	account, ok := s.accounts[userID]
	if !ok {
		return nil, model.ErrAccountNotFound
	}
	entity, ok := account.Collection(collection)[entityID]
	if !ok {
		return nil, model.ErrEntityNotFound
	}
	return append(model.Entity(nil), entity...), nil
}

func (s *Storage) SaveEntity(ctx context.Context, userID string, collection model.Collection, entityID string, entity model.Entity) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	account, ok := s.accounts[userID]
	if !ok {
		return 0, nil
	}
	account.Collection(collection)[entityID] = append(model.Entity(nil), entity...)
	return 1, nil
}

func (s *Storage) DeleteEntity(ctx context.Context, userID string, collection model.Collection, entityID string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	account, ok := s.accounts[userID]
	if !ok {
		return 0, nil
	}
	entities := account.Collection(collection)
	if _, ok := entities[entityID]; !ok {
		return 0, nil
	}
	delete(entities, entityID)
	return 1, nil
}

func (s *Storage) GetCollection(ctx context.Context, userID string, collection model.Collection) (model.EntityCollection, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	account, ok := s.accounts[userID]
	if !ok {
		return nil, model.ErrAccountNotFound
	}
	return cloneCollection(account.Collection(collection)), nil
}

func (s *Storage) SetCollection(ctx context.Context, userID string, collection model.Collection, entities model.EntityCollection) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	account, ok := s.accounts[userID]
	if !ok {
		return 0, model.ErrAccountNotFound
	}
	account.SetCollection(collection, cloneCollection(entities))
	return 1, nil
}

func cloneCollection(entities model.EntityCollection) model.EntityCollection {
	cloned := make(model.EntityCollection, len(entities))
	for id, entity := range entities {
		cloned[id] = append(model.Entity(nil), entity...)
	}
	return cloned
}

func cloneAccount(account *model.UserAccount) *model.UserAccount {
	cloned := *account
	cloned.Settings = append([]byte(nil), account.Settings...)
	cloned.StatBlocks = cloneCollection(account.StatBlocks)
	cloned.Spells = cloneCollection(account.Spells)
	cloned.Encounters = cloneCollection(account.Encounters)
	cloned.PersistentCharacters = cloneCollection(account.PersistentCharacters)
	cloned.PlayerCharacters = cloneCollection(account.PlayerCharacters)
	return &cloned
}
