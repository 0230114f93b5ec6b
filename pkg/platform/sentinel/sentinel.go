package sentinel

import "errors"

// Sentinel errors returned by stores and infrastructure clients. Services
// translate them into coded domain errors; handlers never see them directly.
//
//   - ErrNotFound: no row matched a single-row lookup
//   - ErrConflict: a unique key (user phone) is already taken
//   - ErrUnavailable: the backing store or broker could not be reached
var (
	ErrNotFound    = errors.New("not found")
	ErrConflict    = errors.New("conflict")
	ErrUnavailable = errors.New("unavailable")
)
