package vision

import "errors"

var (
	// ErrMissingAPIKey indicates the provider credential was not configured.
	ErrMissingAPIKey = errors.New("vision: missing api key")

	// ErrEmptyCompletion indicates the provider returned no choices.
	ErrEmptyCompletion = errors.New("vision: empty completion")
)
