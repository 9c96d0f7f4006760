package model

import "encoding/json"

// Listing is a lightweight summary of one entity for directory display. It
// is derived on read and never persisted.
type Listing struct {
	Name       string `json:"Name"`
	Id         string `json:"Id"`
	Path       string `json:"Path"`
	SearchHint string `json:"SearchHint"`
	Version    string `json:"Version"`
	Link       string `json:"Link"`
}

// AccountListings is the directory view of an account: settings plus one
// listing per entity in each listable collection.
type AccountListings struct {
	Settings             json.RawMessage `json:"settings"`
	StatBlocks           []Listing       `json:"statblocks"`
	Spells               []Listing       `json:"spells"`
	Encounters           []Listing       `json:"encounters"`
	PersistentCharacters []Listing       `json:"persistentcharacters"`
}
