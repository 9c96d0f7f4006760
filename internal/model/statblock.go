package model

import "strings"

// CurrentVersion is stamped onto entities the application itself creates,
// such as persistent characters produced by the legacy migration.
const CurrentVersion = "1.0.0"

// ValueAndNotes is a numeric stat with free-form annotation, e.g. hit points
// with their dice formula.
type ValueAndNotes struct {
	Value int    `json:"Value"`
	Notes string `json:"Notes"`
}

// NameAndModifier is a named numeric modifier (saves, skills).
type NameAndModifier struct {
	Name     string `json:"Name"`
	Modifier int    `json:"Modifier"`
}

// NameAndContent is a named block of rules text (traits, actions).
type NameAndContent struct {
	Name    string `json:"Name"`
	Content string `json:"Content"`
}

// Abilities holds the six ability scores.
type Abilities struct {
	Str int `json:"Str"`
	Dex int `json:"Dex"`
	Con int `json:"Con"`
	Cha int `json:"Cha"`
	Int int `json:"Int"`
	Wis int `json:"Wis"`
}

// StatBlock is a creature stat block.
type StatBlock struct {
	Id                    string            `json:"Id"`
	Name                  string            `json:"Name"`
	Path                  string            `json:"Path"`
	Version               string            `json:"Version"`
	Source                string            `json:"Source"`
	Type                  string            `json:"Type"`
	Description           string            `json:"Description"`
	HP                    ValueAndNotes     `json:"HP"`
	AC                    ValueAndNotes     `json:"AC"`
	InitiativeModifier    int               `json:"InitiativeModifier"`
	InitiativeAdvantage   bool              `json:"InitiativeAdvantage"`
	Speed                 []string          `json:"Speed"`
	Abilities             Abilities         `json:"Abilities"`
	DamageVulnerabilities []string          `json:"DamageVulnerabilities"`
	DamageResistances     []string          `json:"DamageResistances"`
	DamageImmunities      []string          `json:"DamageImmunities"`
	ConditionImmunities   []string          `json:"ConditionImmunities"`
	Saves                 []NameAndModifier `json:"Saves"`
	Skills                []NameAndModifier `json:"Skills"`
	Senses                []string          `json:"Senses"`
	Languages             []string          `json:"Languages"`
	Challenge             string            `json:"Challenge"`
	Traits                []NameAndContent  `json:"Traits"`
	Actions               []NameAndContent  `json:"Actions"`
	Reactions             []NameAndContent  `json:"Reactions"`
	LegendaryActions      []NameAndContent  `json:"LegendaryActions"`
	Player                string            `json:"Player"`
}

// DefaultStatBlock returns the canonical default stat block.
func DefaultStatBlock() StatBlock {
	return StatBlock{
		Version:               CurrentVersion,
		HP:                    ValueAndNotes{Value: 1},
		AC:                    ValueAndNotes{Value: 10},
		Speed:                 []string{},
		Abilities:             Abilities{Str: 10, Dex: 10, Con: 10, Cha: 10, Int: 10, Wis: 10},
		DamageVulnerabilities: []string{},
		DamageResistances:     []string{},
		DamageImmunities:      []string{},
		ConditionImmunities:   []string{},
		Saves:                 []NameAndModifier{},
		Skills:                []NameAndModifier{},
		Senses:                []string{},
		Languages:             []string{},
		Traits:                []NameAndContent{},
		Actions:               []NameAndContent{},
		Reactions:             []NameAndContent{},
		LegendaryActions:      []NameAndContent{},
	}
}

// DecodeStatBlock reconstructs a fully-populated stat block from a stored,
// possibly-partial document.
func DecodeStatBlock(raw Entity) (StatBlock, error) {
	return decodeWithDefaults(DefaultStatBlock(), raw)
}

// Keywords returns the search keyword string used for client-side filtering.
func (s StatBlock) Keywords() string {
	return strings.ToLower(strings.TrimSpace(strings.Join([]string{s.Name, s.Path, s.Type, s.Source}, " ")))
}
