package ulid

import (
	"github.com/oklog/ulid/v2"
)

// NewULID generates a new ULID string. Request IDs and generated batch IDs use it.
var NewULID = func() string {
	return ulid.Make().String()
}
