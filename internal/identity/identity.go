// Package identity models the two ways a caller can own records: a
// registered-user id issued by the external identity provider, or a
// client-generated anonymous identifier.
package identity

import (
	"fmt"
	"math/rand"
	"regexp"
	"time"
)

// Identity is the identity a caller presents. At most one field is set for a
// valid submission; both empty is a valid (record-less) history query.
type Identity struct {
	UserID      string
	AnonymousID string
}

// IsZero reports whether no identity was presented.
func (i Identity) IsZero() bool {
	return i.UserID == "" && i.AnonymousID == ""
}

var anonPattern = regexp.MustCompile(`^ANON-\d{4}-\d{6}$`)

// ValidAnonymousID reports whether s matches the literal client format
// ANON-<4-digit-year>-<6-digit-zero-padded-number>.
func ValidAnonymousID(s string) bool {
	return anonPattern.MatchString(s)
}

// NewAnonymousID generates an identifier in the client format. Clients
// normally generate and persist their own; this exists for tooling and tests.
func NewAnonymousID() string {
	return fmt.Sprintf("ANON-%d-%06d", time.Now().Year(), rand.Intn(1000000))
}
