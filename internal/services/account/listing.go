package account

import (
	"fmt"

	"github.com/battlekeep/battlekeep/internal/model"
)

// buildListings projects a collection into lightweight directory listings.
// Each entity is decoded with the collection's defaults first, so entities
// written by older schemas still list with every field populated. Entities
// that fail to decode are skipped rather than breaking the whole directory.
func buildListings(collection model.Collection, entities model.EntityCollection) []model.Listing {
	listings := make([]model.Listing, 0, len(entities))
	for _, raw := range entities {
		merged, err := collection.MergeDefaults(raw)
		if err != nil {
			continue
		}
		env, err := model.ParseEnvelope(merged)
		if err != nil {
			continue
		}
		listings = append(listings, model.Listing{
			Name:       env.Name,
			Id:         env.Id,
			Path:       env.Path,
			SearchHint: collection.Keywords(raw),
			Version:    env.Version,
			Link:       fmt.Sprintf("/my/%s/%s", collection, env.Id),
		})
	}
	return listings
}
