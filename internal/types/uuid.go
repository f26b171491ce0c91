package types

import (
	"crypto/rand"
	"fmt"
	"time"

	"github.com/oklog/ulid/v2"
)

// Prefixes for generated identifiers, one per entity type
const (
	UUIDPrefixSignup     = "signup"
	UUIDPrefixMembership = "membership"
	UUIDPrefixRequest    = "req"
)

// GenerateUUID returns a ULID. ULIDs are lexicographically sortable by
// creation time which keeps index pages hot on append-heavy tables.
func GenerateUUID() string {
	return ulid.MustNew(ulid.Timestamp(time.Now().UTC()), rand.Reader).String()
}

// GenerateUUIDWithPrefix returns a ULID prefixed with the entity type,
// e.g. "membership_01HVN3..."
func GenerateUUIDWithPrefix(prefix string) string {
	if prefix == "" {
		return GenerateUUID()
	}
	return fmt.Sprintf("%s_%s", prefix, GenerateUUID())
}
