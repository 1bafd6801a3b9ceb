package client

import "errors"

// ErrUnavailable covers every transport-level failure: connection
// refused, timeout, malformed response. It is deliberately distinct
// from the domain errors so callers can tell "bad credentials" from
// "server unreachable".
var ErrUnavailable = errors.New("cannot connect to the server, make sure the backend is running")
