package lookup

import (
	"context"
	"encoding/json"
	"errors"
)

// ErrLookupFailed wraps any upstream error. The gatekeeper converts it to
// a failure audit entry; the underlying detail is for operator logs only.
var ErrLookupFailed = errors.New("lookup failed")

// Client is the external lookup collaborator. Implementations own their
// transport; the gatekeeper bounds how long it waits via the context.
type Client interface {
	Invoke(ctx context.Context, service, query string) (json.RawMessage, error)
}
