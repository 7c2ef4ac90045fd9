package internalerr

import "errors"

// Sentinel errors for common cases
var (
	ErrNotFound          = errors.New("not found")
	ErrInvalidInput      = errors.New("invalid input")
	ErrStoreUnavailable  = errors.New("store unavailable")
	ErrCorpusUnavailable = errors.New("corpus unavailable")
	ErrInvalidConfig     = errors.New("invalid configuration")
	ErrCacheBacking      = errors.New("cache backing unavailable")
	ErrMalformedAnalysis = errors.New("malformed external analysis")
)
