package account

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/battlekeep/battlekeep/internal/model"
)

// migratePlayerCharacters rewrites the deprecated flat playercharacters
// collection into persistentcharacters the first time the full account is
// read. Once persistentcharacters is non-empty it is authoritative and this
// is a no-op. The deprecated collection is left in place as a migration
// record.
func (s *Service) migratePlayerCharacters(ctx context.Context, account *model.UserAccount) error {
	if len(account.PersistentCharacters) > 0 {
		return nil
	}
	if len(account.PlayerCharacters) == 0 {
		return nil
	}

	now := s.clock.Now()
	migrated := make(model.EntityCollection, len(account.PlayerCharacters))
	for id, raw := range account.PlayerCharacters {
		sb, err := model.DecodeStatBlock(raw)
		if err != nil {
			return err
		}
		character := model.NewPersistentCharacter(sb, now)
		data, err := json.Marshal(character)
		if err != nil {
			return err
		}
		migrated[id] = data
	}

	if _, err := s.storage.SetCollection(ctx, account.ID, model.CollectionPersistentCharacters, migrated); err != nil {
		return err
	}
	account.PersistentCharacters = migrated

	s.logger.Info("migrated player characters",
		slog.String("user_id", account.ID),
		slog.Int("count", len(migrated)),
	)
	return nil
}
