package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCollection(t *testing.T) {
	for _, c := range Collections {
		parsed, err := ParseCollection(c.String())
		require.NoError(t, err)
		assert.Equal(t, c, parsed)
	}

	_, err := ParseCollection("statblocks.g1")
	assert.ErrorIs(t, err, ErrUnknownCollection)

	_, err = ParseCollection("")
	assert.ErrorIs(t, err, ErrUnknownCollection)
}

func TestPlayerCharactersNotListable(t *testing.T) {
	assert.False(t, CollectionPlayerCharacters.Listable())
	for _, c := range ListableCollections {
		assert.True(t, c.Listable())
	}
}

func TestCollectionKeywords(t *testing.T) {
	sb := Entity(`{"Id":"g1","Name":"Goblin","Path":"/monsters","Type":"humanoid"}`)
	assert.Equal(t, "goblin /monsters humanoid", CollectionStatBlocks.Keywords(sb))

	spell := Entity(`{"Id":"s1","Name":"Fireball","School":"Evocation","Classes":["Wizard"]}`)
	assert.Equal(t, "fireball  evocation wizard", CollectionSpells.Keywords(spell))

	// Character keywords come from the embedded stat block.
	pc := Entity(`{"Id":"c1","Name":"Mirela","StatBlock":{"Name":"Mirela","Type":"half-elf"}}`)
	assert.Contains(t, CollectionPersistentCharacters.Keywords(pc), "half-elf")

	enc := Entity(`{"Id":"e1","Name":"Ambush","Combatants":[{"StatBlock":{"Name":"Bandit"}}]}`)
	assert.Contains(t, CollectionEncounters.Keywords(enc), "bandit")
}

func TestParseStanding(t *testing.T) {
	assert.Equal(t, StandingPledge, ParseStanding("pledge"))
	assert.Equal(t, StandingEpic, ParseStanding("epic"))
	assert.Equal(t, StandingNone, ParseStanding("none"))
	assert.Equal(t, StandingNone, ParseStanding("whatever"))
	assert.Equal(t, StandingNone, ParseStanding(""))
}

func TestStandingForRewards(t *testing.T) {
	assert.Equal(t, StandingNone, StandingForRewards(nil))
	assert.Equal(t, StandingNone, StandingForRewards([]string{"999"}))
	assert.Equal(t, StandingPledge, StandingForRewards([]string{"1322253"}))
	assert.Equal(t, StandingEpic, StandingForRewards([]string{"1937132"}))
	assert.Equal(t, StandingEpic, StandingForRewards([]string{"1322253", "1937132"}))
}

func TestNewPersistentCharacterSeedsBookkeeping(t *testing.T) {
	sb := DefaultStatBlock()
	sb.Id = "pc1"
	sb.Name = "Mirela"
	sb.Path = "/party"
	sb.HP.Value = 22

	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	pc := NewPersistentCharacter(sb, now)

	assert.Equal(t, "pc1", pc.Id)
	assert.Equal(t, "Mirela", pc.Name)
	assert.Equal(t, "/party", pc.Path)
	assert.Equal(t, 22, pc.CurrentHP)
	assert.Equal(t, now.UnixMilli(), pc.LastUpdateMs)
	assert.Equal(t, sb, pc.StatBlock)
}
