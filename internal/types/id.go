// README: Shared identifier type and generator.
package types

import "github.com/google/uuid"

type ID string

// NewID returns a short identifier taken from a random UUID.
func NewID() ID {
	return ID(uuid.NewString()[:8])
}
