package redis

import (
	"fmt"

	"github.com/battlekeep/battlekeep/internal/model"
)

// Key prefix for all account data
const keyPrefix = "battlekeep"

// Scalar hash fields of the account aggregate. Entity fields use the dotted
// form "<collection>.<entityId>", which is why "." is reserved in entity ids.
const (
	fieldPatreonID  = "patreonId"
	fieldGoogleID   = "googleId"
	fieldAccessKey  = "accessKey"
	fieldRefreshKey = "refreshKey"
	fieldStanding   = "accountStanding"
	fieldSettings   = "settings"
)

// accountKey returns the Redis key for a user aggregate hash
func accountKey(userID string) string {
	return fmt.Sprintf("%s:account:%s", keyPrefix, userID)
}

// patreonIndexKey returns the Redis key for the patreonId -> account id index
func patreonIndexKey(patreonID string) string {
	return fmt.Sprintf("%s:idx:patreon:%s", keyPrefix, patreonID)
}

// googleIndexKey returns the Redis key for the googleId -> account id index
func googleIndexKey(googleID string) string {
	return fmt.Sprintf("%s:idx:google:%s", keyPrefix, googleID)
}

// entityField returns the hash field addressing one entity inside the
// aggregate
func entityField(collection model.Collection, entityID string) string {
	return string(collection) + model.PathSeparator + entityID
}

// collectionPattern returns the HSCAN match pattern for one collection's
// entity fields
func collectionPattern(collection model.Collection) string {
	return string(collection) + model.PathSeparator + "*"
}
