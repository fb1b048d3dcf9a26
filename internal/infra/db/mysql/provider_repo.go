package mysql

import (
	"context"
	"database/sql"

	"github.com/healthlens/healthlens-api/internal/domain/providers"
)

type ProviderRepository struct {
	db *sql.DB
}

func NewProviderRepository(db *sql.DB) *ProviderRepository {
	return &ProviderRepository{db: db}
}

// FindBySpecialty is a plain filtered read ordered by rating; no distance
// ranking is applied.
func (r *ProviderRepository) FindBySpecialty(ctx context.Context, specialty string, limit int) ([]providers.Provider, error) {
	if limit <= 0 {
		limit = 10
	}
	const q = `
SELECT id, name, specialty, address, phone, latitude, longitude, rating
FROM providers
WHERE specialty=?
ORDER BY rating DESC, name ASC
LIMIT ?;
`
	rows, err := r.db.QueryContext(ctx, q, specialty, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []providers.Provider
	for rows.Next() {
		var p providers.Provider
		var address, phone sql.NullString
		var lat, lng, rating sql.NullFloat64
		if err := rows.Scan(&p.ID, &p.Name, &p.Specialty, &address, &phone, &lat, &lng, &rating); err != nil {
			return nil, err
		}
		p.Address = address.String
		p.Phone = phone.String
		p.Latitude = lat.Float64
		p.Longitude = lng.Float64
		p.Rating = rating.Float64
		out = append(out, p)
	}
	return out, rows.Err()
}
