package model

import "time"

// PersistentCharacter is a player character that survives across encounters,
// wrapping its stat block with mutable bookkeeping state.
type PersistentCharacter struct {
	Id           string    `json:"Id"`
	Name         string    `json:"Name"`
	Path         string    `json:"Path"`
	Version      string    `json:"Version"`
	CurrentHP    int       `json:"CurrentHP"`
	StatBlock    StatBlock `json:"StatBlock"`
	Notes        string    `json:"Notes"`
	LastUpdateMs int64     `json:"LastUpdateMs"`
}

// DefaultPersistentCharacter returns the canonical default persistent
// character.
func DefaultPersistentCharacter() PersistentCharacter {
	return PersistentCharacter{
		Version:   CurrentVersion,
		CurrentHP: 1,
		StatBlock: DefaultStatBlock(),
	}
}

// DecodePersistentCharacter reconstructs a fully-populated persistent
// character from a stored, possibly-partial document.
func DecodePersistentCharacter(raw Entity) (PersistentCharacter, error) {
	return decodeWithDefaults(DefaultPersistentCharacter(), raw)
}

// NewPersistentCharacter wraps a stat block into a persistent character
// envelope, seeding the bookkeeping fields. The stat block's identity is
// preserved so migrated characters keep their collection keys.
func NewPersistentCharacter(sb StatBlock, now time.Time) PersistentCharacter {
	return PersistentCharacter{
		Id:           sb.Id,
		Name:         sb.Name,
		Path:         sb.Path,
		Version:      CurrentVersion,
		CurrentHP:    sb.HP.Value,
		StatBlock:    sb,
		LastUpdateMs: now.UnixMilli(),
	}
}
