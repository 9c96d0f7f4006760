package redis

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/battlekeep/battlekeep/internal/model"
	"github.com/battlekeep/battlekeep/internal/storage"
)

// Storage is a Redis-backed implementation of the account store. Each user
// aggregate is a single hash: scalar account fields sit alongside entity
// fields named "<collection>.<entityId>", so a single-field HSET/HGET/HDEL
// is an atomic field-targeted operation on the aggregate document.
type Storage struct {
	client *redis.Client
	cfg    Config
}

// New creates a new Redis storage instance
func New(cfg Config) (*Storage, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, err
	}

	opts.PoolSize = cfg.PoolSize
	opts.MinIdleConns = cfg.MinIdleConns

	client := redis.NewClient(opts)

	// Verify connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &Storage{
		client: client,
		cfg:    cfg,
	}, nil
}

// NewWithClient creates a Redis storage with an existing client (for testing)
func NewWithClient(client *redis.Client, cfg Config) *Storage {
	if cfg.UpsertRetries == 0 {
		cfg.UpsertRetries = DefaultConfig().UpsertRetries
	}
	return &Storage{
		client: client,
		cfg:    cfg,
	}
}

// Close closes the Redis connection
func (s *Storage) Close() error {
	return s.client.Close()
}

// Ensure Storage implements the interface
var _ storage.AccountStore = (*Storage)(nil)

func storeErr(err error) error {
	return fmt.Errorf("%w: %w", model.ErrStoreFailed, err)
}

// Account operations

func (s *Storage) UpsertAccount(ctx context.Context, patreonID, accessKey, refreshKey string, standing model.Standing, googleID string) (*model.UserAccount, error) {
	var watchKeys []string
	if patreonID != "" {
		watchKeys = append(watchKeys, patreonIndexKey(patreonID))
	}
	if googleID != "" {
		watchKeys = append(watchKeys, googleIndexKey(googleID))
	}

	var accountID string

	txn := func(tx *redis.Tx) error {
		id, err := s.matchAccountID(ctx, tx, patreonID, googleID)
		if err != nil {
			return err
		}

		created := id == ""
		if created {
			id = uuid.NewString()
		}

		// An account can change identity keys across logins; stale index
		// entries must not keep matching the old values.
		var stalePatreon, staleGoogle string
		if !created {
			old, err := tx.HMGet(ctx, accountKey(id), fieldPatreonID, fieldGoogleID).Result()
			if err != nil {
				return err
			}
			if prev, ok := old[0].(string); ok && prev != "" && prev != patreonID {
				stalePatreon = prev
			}
			if prev, ok := old[1].(string); ok && prev != "" && prev != googleID {
				staleGoogle = prev
			}
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			fields := map[string]any{
				fieldPatreonID:  patreonID,
				fieldGoogleID:   googleID,
				fieldAccessKey:  accessKey,
				fieldRefreshKey: refreshKey,
				fieldStanding:   string(standing),
			}
			if created {
				fields[fieldSettings] = "{}"
			}
			pipe.HSet(ctx, accountKey(id), fields)
			if patreonID != "" {
				pipe.Set(ctx, patreonIndexKey(patreonID), id, 0)
			}
			if googleID != "" {
				pipe.Set(ctx, googleIndexKey(googleID), id, 0)
			}
			if stalePatreon != "" {
				pipe.Del(ctx, patreonIndexKey(stalePatreon))
			}
			if staleGoogle != "" {
				pipe.Del(ctx, googleIndexKey(staleGoogle))
			}
			return nil
		})
		if err != nil {
			return err
		}

		accountID = id
		return nil
	}

	// No identity keys at all means nothing can match; the upsert always
	// creates and there is nothing to watch.
	if len(watchKeys) == 0 {
		tx := s.client.TxPipeline()
		accountID = uuid.NewString()
		tx.HSet(ctx, accountKey(accountID), map[string]any{
			fieldPatreonID:  patreonID,
			fieldGoogleID:   googleID,
			fieldAccessKey:  accessKey,
			fieldRefreshKey: refreshKey,
			fieldStanding:   string(standing),
			fieldSettings:   "{}",
		})
		if _, err := tx.Exec(ctx); err != nil {
			return nil, storeErr(err)
		}
		return s.GetAccount(ctx, accountID)
	}

	for i := 0; i < s.cfg.UpsertRetries; i++ {
		err := s.client.Watch(ctx, txn, watchKeys...)
		if err == nil {
			return s.GetAccount(ctx, accountID)
		}
		if errors.Is(err, redis.TxFailedErr) {
			// Concurrent login for the same identity; retry against the
			// converged state.
			continue
		}
		return nil, storeErr(err)
	}
	return nil, storeErr(redis.TxFailedErr)
}

// matchAccountID resolves the identity indexes. Empty identity values never
// match: a login with no patreon id must not match accounts that also have
// an empty patreon id.
func (s *Storage) matchAccountID(ctx context.Context, tx *redis.Tx, patreonID, googleID string) (string, error) {
	if patreonID != "" {
		id, err := tx.Get(ctx, patreonIndexKey(patreonID)).Result()
		if err == nil {
			return id, nil
		}
		if !errors.Is(err, redis.Nil) {
			return "", err
		}
	}
	if googleID != "" {
		id, err := tx.Get(ctx, googleIndexKey(googleID)).Result()
		if err == nil {
			return id, nil
		}
		if !errors.Is(err, redis.Nil) {
			return "", err
		}
	}
	return "", nil
}

func (s *Storage) GetAccount(ctx context.Context, userID string) (*model.UserAccount, error) {
	vals, err := s.client.HGetAll(ctx, accountKey(userID)).Result()
	if err != nil {
		return nil, storeErr(err)
	}
	if len(vals) == 0 {
		return nil, model.ErrAccountNotFound
	}
	return accountFromHash(userID, vals), nil
}

func (s *Storage) DeleteAccount(ctx context.Context, userID string) (int64, error) {
	// Resolve identity keys first so the index entries go with the account.
	ids, err := s.client.HMGet(ctx, accountKey(userID), fieldPatreonID, fieldGoogleID).Result()
	if err != nil {
		return 0, storeErr(err)
	}

	pipe := s.client.TxPipeline()
	delCmd := pipe.Del(ctx, accountKey(userID))
	if patreonID, ok := ids[0].(string); ok && patreonID != "" {
		pipe.Del(ctx, patreonIndexKey(patreonID))
	}
	if googleID, ok := ids[1].(string); ok && googleID != "" {
		pipe.Del(ctx, googleIndexKey(googleID))
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return 0, storeErr(err)
	}
	return delCmd.Val(), nil
}

func (s *Storage) SetSettings(ctx context.Context, userID string, settings []byte) (int64, error) {
	exists, err := s.client.Exists(ctx, accountKey(userID)).Result()
	if err != nil {
		return 0, storeErr(err)
	}
	if exists == 0 {
		return 0, nil
	}
	if err := s.client.HSet(ctx, accountKey(userID), fieldSettings, string(settings)).Err(); err != nil {
		return 0, storeErr(err)
	}
	return 1, nil
}

// Entity operations

func (s *Storage) GetEntity(ctx context.Context, userID string, collection model.Collection, entityID string) (model.Entity, error) {
	data, err := s.client.HGet(ctx, accountKey(userID), entityField(collection, entityID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			// Distinguish a missing aggregate from a missing entity.
			exists, existsErr := s.client.Exists(ctx, accountKey(userID)).Result()
			if existsErr != nil {
				return nil, storeErr(existsErr)
			}
			if exists == 0 {
				return nil, model.ErrAccountNotFound
			}
			return nil, model.ErrEntityNotFound
		}
		return nil, storeErr(err)
	}
	return model.Entity(data), nil
}

func (s *Storage) SaveEntity(ctx context.Context, userID string, collection model.Collection, entityID string, entity model.Entity) (int64, error) {
	exists, err := s.client.Exists(ctx, accountKey(userID)).Result()
	if err != nil {
		return 0, storeErr(err)
	}
	if exists == 0 {
		return 0, nil
	}
	if err := s.client.HSet(ctx, accountKey(userID), entityField(collection, entityID), string(entity)).Err(); err != nil {
		return 0, storeErr(err)
	}
	return 1, nil
}

func (s *Storage) DeleteEntity(ctx context.Context, userID string, collection model.Collection, entityID string) (int64, error) {
	removed, err := s.client.HDel(ctx, accountKey(userID), entityField(collection, entityID)).Result()
	if err != nil {
		return 0, storeErr(err)
	}
	return removed, nil
}

func (s *Storage) GetCollection(ctx context.Context, userID string, collection model.Collection) (model.EntityCollection, error) {
	exists, err := s.client.Exists(ctx, accountKey(userID)).Result()
	if err != nil {
		return nil, storeErr(err)
	}
	if exists == 0 {
		return nil, model.ErrAccountNotFound
	}

	entities := model.EntityCollection{}
	prefix := string(collection) + model.PathSeparator

	var cursor uint64
	for {
		pairs, next, err := s.client.HScan(ctx, accountKey(userID), cursor, collectionPattern(collection), 100).Result()
		if err != nil {
			return nil, storeErr(err)
		}
		for i := 0; i+1 < len(pairs); i += 2 {
			entityID := strings.TrimPrefix(pairs[i], prefix)
			entities[entityID] = model.Entity(pairs[i+1])
		}
		cursor = next
		if cursor == 0 {
			break
		}
	}
	return entities, nil
}

func (s *Storage) SetCollection(ctx context.Context, userID string, collection model.Collection, entities model.EntityCollection) (int64, error) {
	current, err := s.GetCollection(ctx, userID, collection)
	if err != nil {
		return 0, err
	}

	// Wholesale replace: drop every existing field of the collection, then
	// set the new ones in a single transaction.
	pipe := s.client.TxPipeline()
	for entityID := range current {
		pipe.HDel(ctx, accountKey(userID), entityField(collection, entityID))
	}
	if len(entities) > 0 {
		fields := make(map[string]any, len(entities))
		for entityID, entity := range entities {
			fields[entityField(collection, entityID)] = string(entity)
		}
		pipe.HSet(ctx, accountKey(userID), fields)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return 0, storeErr(err)
	}
	return 1, nil
}

// accountFromHash rebuilds the aggregate from its hash fields. Fields with a
// path separator address entities; fields of unknown collections are kept
// out of the aggregate but left intact in the store.
func accountFromHash(userID string, vals map[string]string) *model.UserAccount {
	account := model.NewUserAccount(userID)

	for field, value := range vals {
		switch field {
		case fieldPatreonID:
			account.PatreonID = value
		case fieldGoogleID:
			account.GoogleID = value
		case fieldAccessKey:
			account.AccessKey = value
		case fieldRefreshKey:
			account.RefreshKey = value
		case fieldStanding:
			account.AccountStanding = model.ParseStanding(value)
		case fieldSettings:
			account.Settings = []byte(value)
		default:
			name, entityID, found := strings.Cut(field, model.PathSeparator)
			if !found {
				continue
			}
			collection, err := model.ParseCollection(name)
			if err != nil {
				continue
			}
			account.Collection(collection)[entityID] = model.Entity(value)
		}
	}
	return account
}
