package model

import "strings"

// Spell is a castable spell entry.
type Spell struct {
	Id          string   `json:"Id"`
	Name        string   `json:"Name"`
	Path        string   `json:"Path"`
	Version     string   `json:"Version"`
	Source      string   `json:"Source"`
	CastingTime string   `json:"CastingTime"`
	Range       string   `json:"Range"`
	Components  string   `json:"Components"`
	Duration    string   `json:"Duration"`
	Classes     []string `json:"Classes"`
	School      string   `json:"School"`
	Level       int      `json:"Level"`
	Description string   `json:"Description"`
	Ritual      bool     `json:"Ritual"`
}

// DefaultSpell returns the canonical default spell.
func DefaultSpell() Spell {
	return Spell{
		Version: CurrentVersion,
		Classes: []string{},
	}
}

// DecodeSpell reconstructs a fully-populated spell from a stored,
// possibly-partial document.
func DecodeSpell(raw Entity) (Spell, error) {
	return decodeWithDefaults(DefaultSpell(), raw)
}

// Keywords returns the search keyword string used for client-side filtering.
func (s Spell) Keywords() string {
	parts := []string{s.Name, s.Path, s.School}
	parts = append(parts, s.Classes...)
	return strings.ToLower(strings.TrimSpace(strings.Join(parts, " ")))
}
