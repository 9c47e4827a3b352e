package countries

import "errors"

// Sentinel errors carried in Result.Err and returned by Load.
var (
	// ErrResourceNotFound is returned when no countries.json resource exists.
	ErrResourceNotFound = errors.New("countries resource not found")

	// ErrRead is returned when the resource exists but cannot be read.
	ErrRead = errors.New("countries resource unreadable")

	// ErrDecode is returned when the resource is not a JSON array of countries.
	ErrDecode = errors.New("countries resource malformed")

	// ErrInvalidArgument is returned for blank or out-of-range query input.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrNotFound is returned when an exact lookup matches nothing.
	ErrNotFound = errors.New("not found")
)
