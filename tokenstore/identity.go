package tokenstore

import "github.com/pborman/uuid"

// Identity is the hidden, stable handle a token keeps for its entire
// lifetime, independent of the hash currently naming it. Two tokens never
// share an identity, and an identity is never reused after a token is
// deleted — deleted tokens are retained, not garbage collected.
type Identity string

// newIdentity allocates a fresh, process-unique identity.
func newIdentity() Identity {
	return Identity(uuid.NewRandom().String())
}
