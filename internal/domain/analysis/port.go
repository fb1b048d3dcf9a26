package analysis

import "context"

// Repository port for persisting and querying analysis records.
//
// Save must write the base row first and the category sub-row second; if the
// sub-row insert fails the base row is deleted again so a record is never
// half-persisted.
type Repository interface {
	Save(ctx context.Context, rec *Record) error
	Get(ctx context.Context, id string) (*Record, error)
	ListByUser(ctx context.Context, userID string, limit int) ([]*Record, error)
}
