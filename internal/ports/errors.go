package ports

import "errors"

// ErrNotImplemented is returned by providers that configuration recognises but
// that have no implementation. Callers must surface it, not fall back.
var ErrNotImplemented = errors.New("provider not implemented")
