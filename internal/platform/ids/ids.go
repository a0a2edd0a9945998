package ids

import "github.com/google/uuid"

// New returns a fresh quote identifier.
func New() string {
	return uuid.NewString()
}
