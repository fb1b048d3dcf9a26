package providers

import "context"

// Repository port for the provider catalog. Lookup is a plain specialty
// filter; no distance ranking is applied even when the caller supplied a
// location.
type Repository interface {
	FindBySpecialty(ctx context.Context, specialty string, limit int) ([]Provider, error)
}
