package booking

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"strings"
)

// refAttempts bounds the regeneration loop. With a ~16M keyspace the
// birthday bound makes even a second collision rare; hitting the limit means
// the keyspace is effectively exhausted.
const refAttempts = 20

// GenerateRef produces a 6-character uppercase hex booking reference.
func GenerateRef() string {
	buf := make([]byte, 3)
	if _, err := rand.Read(buf); err != nil {
		panic("crypto/rand unavailable: " + err.Error())
	}
	return strings.ToUpper(hex.EncodeToString(buf))
}

// uniqueRef generates references until one does not collide with an existing
// booking. Uniqueness is check-and-regenerate, backed by the unique index on
// booking_ref as the last line of defense.
func (s *DefaultBookingService) uniqueRef(ctx context.Context) (string, error) {
	for i := 0; i < refAttempts; i++ {
		ref := GenerateRef()
		exists, err := s.Bookings.RefExists(ctx, ref)
		if err != nil {
			return "", storageErr("booking ref lookup", err)
		}
		if !exists {
			return ref, nil
		}
	}
	return "", storageErr("booking ref generation", errKeyspaceExhausted)
}
