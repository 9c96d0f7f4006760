package model

import "fmt"

// Collection identifies one of the entity collections nested inside a user
// aggregate. It is a closed set: every collection maps at compile time to a
// concrete entity type and its canonical default, so a free-form string can
// never address an unintended field of the aggregate.
type Collection string

const (
	CollectionStatBlocks           Collection = "statblocks"
	CollectionSpells               Collection = "spells"
	CollectionEncounters           Collection = "encounters"
	CollectionPersistentCharacters Collection = "persistentcharacters"

	// CollectionPlayerCharacters is deprecated. It is only ever read to seed
	// persistentcharacters and never appears in listings.
	CollectionPlayerCharacters Collection = "playercharacters"
)

// Collections is every valid collection, deprecated one included.
var Collections = []Collection{
	CollectionStatBlocks,
	CollectionSpells,
	CollectionEncounters,
	CollectionPersistentCharacters,
	CollectionPlayerCharacters,
}

// ListableCollections are the collections projected into directory listings.
var ListableCollections = []Collection{
	CollectionStatBlocks,
	CollectionSpells,
	CollectionEncounters,
	CollectionPersistentCharacters,
}

// ParseCollection validates a collection name supplied by a caller.
func ParseCollection(name string) (Collection, error) {
	for _, c := range Collections {
		if string(c) == name {
			return c, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownCollection, name)
}

func (c Collection) String() string {
	return string(c)
}

// Listable reports whether the collection appears in account listings.
func (c Collection) Listable() bool {
	return c != CollectionPlayerCharacters
}

// Default returns the canonical default document for entities stored in this
// collection. playercharacters holds bare stat blocks.
func (c Collection) Default() any {
	switch c {
	case CollectionSpells:
		return DefaultSpell()
	case CollectionEncounters:
		return DefaultEncounterState()
	case CollectionPersistentCharacters:
		return DefaultPersistentCharacter()
	default:
		return DefaultStatBlock()
	}
}

// Keywords extracts the search keywords for one raw entity of this
// collection, decoding it with defaults first.
func (c Collection) Keywords(raw Entity) string {
	switch c {
	case CollectionSpells:
		s, err := DecodeSpell(raw)
		if err != nil {
			return ""
		}
		return s.Keywords()
	case CollectionEncounters:
		e, err := DecodeEncounterState(raw)
		if err != nil {
			return ""
		}
		return e.Keywords()
	case CollectionPersistentCharacters:
		pc, err := DecodePersistentCharacter(raw)
		if err != nil {
			return ""
		}
		// Character keywords come from the nested stat block, not the
		// wrapper.
		return pc.StatBlock.Keywords()
	default:
		sb, err := DecodeStatBlock(raw)
		if err != nil {
			return ""
		}
		return sb.Keywords()
	}
}
