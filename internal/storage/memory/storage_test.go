package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/battlekeep/battlekeep/internal/model"
)

type StorageSuite struct {
	suite.Suite
	storage *Storage
	ctx     context.Context
}

func TestStorageSuite(t *testing.T) {
	suite.Run(t, new(StorageSuite))
}

func (s *StorageSuite) SetupTest() {
	s.storage = New()
	s.ctx = context.Background()
}

func (s *StorageSuite) upsert(patreonID, googleID string) *model.UserAccount {
	account, err := s.storage.UpsertAccount(s.ctx, patreonID, "access", "refresh", model.StandingNone, googleID)
	s.Require().NoError(err)
	return account
}

func (s *StorageSuite) TestUpsertMatchingRules() {
	first := s.upsert("pat-1", "")

	// Same patreon id converges, google id is overwritten.
	second, err := s.storage.UpsertAccount(s.ctx, "pat-1", "a2", "r2", model.StandingEpic, "goog-1")
	s.Require().NoError(err)
	s.Equal(first.ID, second.ID)
	s.Equal("goog-1", second.GoogleID)
	s.Equal(model.StandingEpic, second.AccountStanding)

	// Empty identities never match anything.
	anonA := s.upsert("", "")
	anonB := s.upsert("", "")
	s.NotEqual(anonA.ID, anonB.ID)
	s.NotEqual(first.ID, anonA.ID)
}

func (s *StorageSuite) TestEntityRoundTrip() {
	account := s.upsert("pat-1", "")

	entity := model.Entity(`{"Id":"g1","Name":"Goblin","Version":"1"}`)
	modified, err := s.storage.SaveEntity(s.ctx, account.ID, model.CollectionStatBlocks, "g1", entity)
	s.Require().NoError(err)
	s.Equal(int64(1), modified)

	got, err := s.storage.GetEntity(s.ctx, account.ID, model.CollectionStatBlocks, "g1")
	s.Require().NoError(err)
	s.Equal(string(entity), string(got))

	removed, err := s.storage.DeleteEntity(s.ctx, account.ID, model.CollectionStatBlocks, "g1")
	s.Require().NoError(err)
	s.Equal(int64(1), removed)

	removed, err = s.storage.DeleteEntity(s.ctx, account.ID, model.CollectionStatBlocks, "g1")
	s.Require().NoError(err)
	s.Equal(int64(0), removed)
}

func (s *StorageSuite) TestLookupErrors() {
	account := s.upsert("pat-1", "")

	_, err := s.storage.GetEntity(s.ctx, account.ID, model.CollectionStatBlocks, "missing")
	s.ErrorIs(err, model.ErrEntityNotFound)

	_, err = s.storage.GetEntity(s.ctx, "nonexistent", model.CollectionStatBlocks, "g1")
	s.ErrorIs(err, model.ErrAccountNotFound)

	_, err = s.storage.GetAccount(s.ctx, "nonexistent")
	s.ErrorIs(err, model.ErrAccountNotFound)

	_, err = s.storage.GetCollection(s.ctx, "nonexistent", model.CollectionSpells)
	s.ErrorIs(err, model.ErrAccountNotFound)
}

func (s *StorageSuite) TestSetCollectionReplacesWholesale() {
	account := s.upsert("pat-1", "")

	_, err := s.storage.SaveEntity(s.ctx, account.ID, model.CollectionSpells, "s1", model.Entity(`{"Id":"s1","Version":"1"}`))
	s.Require().NoError(err)

	_, err = s.storage.SetCollection(s.ctx, account.ID, model.CollectionSpells, model.EntityCollection{
		"s2": model.Entity(`{"Id":"s2","Version":"1"}`),
	})
	s.Require().NoError(err)

	entities, err := s.storage.GetCollection(s.ctx, account.ID, model.CollectionSpells)
	s.Require().NoError(err)
	s.Len(entities, 1)
	s.Contains(entities, "s2")
}

func (s *StorageSuite) TestReturnedAccountsAreCopies() {
	account := s.upsert("pat-1", "")

	_, err := s.storage.SaveEntity(s.ctx, account.ID, model.CollectionStatBlocks, "g1", model.Entity(`{"Id":"g1","Version":"1"}`))
	s.Require().NoError(err)

	got, err := s.storage.GetAccount(s.ctx, account.ID)
	s.Require().NoError(err)

	// Mutating the returned aggregate must not leak into the store.
	got.StatBlocks["g2"] = model.Entity(`{"Id":"g2","Version":"1"}`)

	again, err := s.storage.GetAccount(s.ctx, account.ID)
	s.Require().NoError(err)
	s.Len(again.StatBlocks, 1)
}

func (s *StorageSuite) TestDeleteAccount() {
	account := s.upsert("pat-1", "")

	deleted, err := s.storage.DeleteAccount(s.ctx, account.ID)
	s.Require().NoError(err)
	s.Equal(int64(1), deleted)

	deleted, err = s.storage.DeleteAccount(s.ctx, account.ID)
	s.Require().NoError(err)
	s.Equal(int64(0), deleted)

	// The identity index went with the account.
	fresh := s.upsert("pat-1", "")
	s.NotEqual(account.ID, fresh.ID)
}
