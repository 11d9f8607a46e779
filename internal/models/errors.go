package models

import "errors"

var (
	// ErrProbeFailure marks a sub-probe that could not produce a reading.
	ErrProbeFailure = errors.New("probe failure")
	// ErrPersistence marks a storage engine read or write failure.
	ErrPersistence = errors.New("persistence failure")
	// ErrMalformedRecord marks a stored record that failed to decode.
	ErrMalformedRecord = errors.New("malformed record")
	ErrInvalidRange    = errors.New("invalid time range")
)
