package model

import "encoding/json"

// Standing is the account tier derived from the user's external pledge or
// reward state.
type Standing string

const (
	StandingNone   Standing = "none"
	StandingPledge Standing = "pledge"
	StandingEpic   Standing = "epic"
)

// ParseStanding normalizes an externally-supplied standing value. Unknown
// input degrades to StandingNone rather than failing a login.
func ParseStanding(s string) Standing {
	switch Standing(s) {
	case StandingPledge, StandingEpic:
		return Standing(s)
	default:
		return StandingNone
	}
}

// Reward tier ids reported by the pledge provider. Storage-tier rewards
// grant pledge standing; the epic tier grants epic standing.
var (
	pledgeRewardIds = []string{"1322253", "1937132"}
	epicRewardIds   = []string{"1937132"}
)

// StandingForRewards derives an account standing from the reward tier ids
// attached to the user's current pledge.
func StandingForRewards(rewardIds []string) Standing {
	standing := StandingNone
	for _, id := range rewardIds {
		for _, epic := range epicRewardIds {
			if id == epic {
				return StandingEpic
			}
		}
		for _, pledge := range pledgeRewardIds {
			if id == pledge {
				standing = StandingPledge
			}
		}
	}
	return standing
}

// EntityCollection maps entity id to the stored entity document.
type EntityCollection map[string]Entity

// UserAccount is the per-user aggregate: identity, settings and every entity
// collection. It is the unit of upsert and delete.
type UserAccount struct {
	ID              string          `json:"id"`
	PatreonID       string          `json:"patreonId"`
	GoogleID        string          `json:"googleId"`
	AccessKey       string          `json:"accessKey"`
	RefreshKey      string          `json:"refreshKey"`
	AccountStanding Standing        `json:"accountStanding"`
	Settings        json.RawMessage `json:"settings"`

	StatBlocks           EntityCollection `json:"statblocks"`
	Spells               EntityCollection `json:"spells"`
	Encounters           EntityCollection `json:"encounters"`
	PersistentCharacters EntityCollection `json:"persistentcharacters"`

	// PlayerCharacters is deprecated and only read to seed
	// PersistentCharacters. It is never listed and never deleted.
	PlayerCharacters EntityCollection `json:"playercharacters"`
}

// NewUserAccount creates an empty aggregate for a first login.
func NewUserAccount(id string) *UserAccount {
	return &UserAccount{
		ID:                   id,
		AccountStanding:      StandingNone,
		Settings:             json.RawMessage(`{}`),
		StatBlocks:           EntityCollection{},
		Spells:               EntityCollection{},
		Encounters:           EntityCollection{},
		PersistentCharacters: EntityCollection{},
		PlayerCharacters:     EntityCollection{},
	}
}

// Collection returns the aggregate's collection for the given kind.
func (a *UserAccount) Collection(c Collection) EntityCollection {
	switch c {
	case CollectionStatBlocks:
		return a.StatBlocks
	case CollectionSpells:
		return a.Spells
	case CollectionEncounters:
		return a.Encounters
	case CollectionPersistentCharacters:
		return a.PersistentCharacters
	case CollectionPlayerCharacters:
		return a.PlayerCharacters
	}
	return nil
}

// SetCollection replaces the aggregate's collection for the given kind.
func (a *UserAccount) SetCollection(c Collection, entities EntityCollection) {
	switch c {
	case CollectionStatBlocks:
		a.StatBlocks = entities
	case CollectionSpells:
		a.Spells = entities
	case CollectionEncounters:
		a.Encounters = entities
	case CollectionPersistentCharacters:
		a.PersistentCharacters = entities
	case CollectionPlayerCharacters:
		a.PlayerCharacters = entities
	}
}
