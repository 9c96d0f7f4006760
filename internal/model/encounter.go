package model

import "strings"

// CombatantState is one participant in a saved encounter. The stat block is
// embedded so the encounter replays without resolving library references.
type CombatantState struct {
	Id          string    `json:"Id"`
	Alias       string    `json:"Alias"`
	CurrentHP   int       `json:"CurrentHP"`
	TemporaryHP int       `json:"TemporaryHP"`
	Initiative  int       `json:"Initiative"`
	Hidden      bool      `json:"Hidden"`
	RevealedAC  bool      `json:"RevealedAC"`
	StatBlock   StatBlock `json:"StatBlock"`
	Tags        []string  `json:"Tags"`
}

// EncounterState is a saved encounter.
type EncounterState struct {
	Id                 string           `json:"Id"`
	Name               string           `json:"Name"`
	Path               string           `json:"Path"`
	Version            string           `json:"Version"`
	ActiveCombatantId  string           `json:"ActiveCombatantId"`
	RoundCounter       int              `json:"RoundCounter"`
	Combatants         []CombatantState `json:"Combatants"`
	BackgroundImageURL string           `json:"BackgroundImageUrl"`
}

// DefaultEncounterState returns the canonical default encounter.
func DefaultEncounterState() EncounterState {
	return EncounterState{
		Version:    CurrentVersion,
		Combatants: []CombatantState{},
	}
}

// DecodeEncounterState reconstructs a fully-populated encounter from a
// stored, possibly-partial document.
func DecodeEncounterState(raw Entity) (EncounterState, error) {
	return decodeWithDefaults(DefaultEncounterState(), raw)
}

// Keywords returns the search keyword string used for client-side filtering.
// Encounters are searched by their combatants' names as well as their own.
func (e EncounterState) Keywords() string {
	parts := []string{e.Name, e.Path}
	for _, c := range e.Combatants {
		parts = append(parts, c.StatBlock.Name)
	}
	return strings.ToLower(strings.TrimSpace(strings.Join(parts, " ")))
}
