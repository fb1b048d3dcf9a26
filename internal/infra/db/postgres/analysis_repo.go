package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	domain "github.com/healthlens/healthlens-api/internal/domain/analysis"
	"github.com/healthlens/healthlens-api/internal/extract"
)

// AnalysisRepository is the Postgres variant of the analysis store; same
// contract as the mysql one, including the compensating delete.
type AnalysisRepository struct {
	db *sql.DB
}

func NewAnalysisRepository(db *sql.DB) *AnalysisRepository {
	return &AnalysisRepository{db: db}
}

func (r *AnalysisRepository) Save(ctx context.Context, rec *domain.Record) error {
	const q = `
INSERT INTO analyses
  (id, user_id, analysis_type, raw_analysis, concerns_json, recommendations_json, image_url, created_at)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8);
`
	createdAt := rec.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}
	_, err := r.db.ExecContext(ctx, q,
		rec.ID, rec.UserID, string(rec.Type), rec.RawAnalysis,
		jsonString(rec.Concerns), jsonString(rec.Recommendations),
		rec.ImageURL, createdAt,
	)
	if err != nil {
		return fmt.Errorf("insert analysis: %w", err)
	}

	if err := r.insertDetail(ctx, rec); err != nil {
		if _, delErr := r.db.ExecContext(ctx, `DELETE FROM analyses WHERE id=$1`, rec.ID); delErr != nil {
			return fmt.Errorf("insert %s detail: %w (compensating delete also failed: %v)", rec.Type, err, delErr)
		}
		return fmt.Errorf("insert %s detail: %w", rec.Type, err)
	}
	return nil
}

func (r *AnalysisRepository) insertDetail(ctx context.Context, rec *domain.Record) error {
	switch d := rec.Detail.(type) {
	case extract.DentalFields:
		_, err := r.db.ExecContext(ctx, `
INSERT INTO dental_analyses (id, issues_json, hygiene_score, dentist_recommended)
VALUES ($1,$2,$3,$4);`,
			rec.ID, jsonString(d.Issues), nullableInt(d.HygieneScore), d.DentistRecommended)
		return err
	case extract.SkinFields:
		_, err := r.db.ExecContext(ctx, `
INSERT INTO skin_analyses (id, conditions_json, severity_score, dermatologist_recommended)
VALUES ($1,$2,$3,$4);`,
			rec.ID, jsonString(d.Conditions), nullableInt(d.SeverityScore), d.DermatologistRecommended)
		return err
	case extract.PostureFields:
		_, err := r.db.ExecContext(ctx, `
INSERT INTO posture_analyses (id, issues_json, posture_score, exercises_json)
VALUES ($1,$2,$3,$4);`,
			rec.ID, jsonString(d.Issues), nullableInt(d.PostureScore), jsonString(d.ExerciseRecommendations))
		return err
	case extract.NutritionFields:
		_, err := r.db.ExecContext(ctx, `
INSERT INTO nutrition_analyses (id, food_items_json, nutrients_json, health_score)
VALUES ($1,$2,$3,$4);`,
			rec.ID, jsonString(d.FoodItems), jsonString(d.Nutrients), nullableInt(d.HealthScore))
		return err
	case extract.StoolFields:
		_, err := r.db.ExecContext(ctx, `
INSERT INTO stool_analyses (id, bristol_type, abnormalities_json, hydration_level, doctor_recommended)
VALUES ($1,$2,$3,$4,$5);`,
			rec.ID, nullableInt(d.BristolType), jsonString(d.Abnormalities), string(d.HydrationLevel), d.DoctorRecommended)
		return err
	case nil:
		return fmt.Errorf("record %s has no detail", rec.ID)
	default:
		return fmt.Errorf("record %s has unknown detail type %T", rec.ID, rec.Detail)
	}
}

func (r *AnalysisRepository) Get(ctx context.Context, id string) (*domain.Record, error) {
	const q = `
SELECT id, user_id, analysis_type, raw_analysis, concerns_json, recommendations_json, image_url, created_at
FROM analyses WHERE id=$1;
`
	rec, err := scanRecord(r.db.QueryRowContext(ctx, q, id))
	if err != nil {
		return nil, err
	}
	if err := r.loadDetail(ctx, rec); err != nil {
		return nil, err
	}
	return rec, nil
}

func (r *AnalysisRepository) ListByUser(ctx context.Context, userID string, limit int) ([]*domain.Record, error) {
	if limit <= 0 {
		limit = 20
	}
	const q = `
SELECT id, user_id, analysis_type, raw_analysis, concerns_json, recommendations_json, image_url, created_at
FROM analyses WHERE user_id=$1
ORDER BY created_at DESC, id DESC
LIMIT $2;
`
	rows, err := r.db.QueryContext(ctx, q, userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*domain.Record
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRecord(row rowScanner) (*domain.Record, error) {
	var rec domain.Record
	var typ, concerns, recommendations string
	var imageURL sql.NullString
	if err := row.Scan(&rec.ID, &rec.UserID, &typ, &rec.RawAnalysis, &concerns, &recommendations, &imageURL, &rec.CreatedAt); err != nil {
		return nil, err
	}
	rec.Type = domain.Type(typ)
	rec.Concerns = stringsFromJSON(concerns)
	rec.Recommendations = stringsFromJSON(recommendations)
	rec.ImageURL = imageURL.String
	return &rec, nil
}

func (r *AnalysisRepository) loadDetail(ctx context.Context, rec *domain.Record) error {
	switch rec.Type {
	case domain.TypeDental:
		var issues string
		var score sql.NullInt64
		var recommended bool
		err := r.db.QueryRowContext(ctx,
			`SELECT issues_json, hygiene_score, dentist_recommended FROM dental_analyses WHERE id=$1;`, rec.ID).
			Scan(&issues, &score, &recommended)
		if err != nil {
			return err
		}
		rec.Detail = extract.DentalFields{
			Issues:             stringsFromJSON(issues),
			HygieneScore:       intPtr(score),
			DentistRecommended: recommended,
		}
	case domain.TypeSkin:
		var conditions string
		var score sql.NullInt64
		var recommended bool
		err := r.db.QueryRowContext(ctx,
			`SELECT conditions_json, severity_score, dermatologist_recommended FROM skin_analyses WHERE id=$1;`, rec.ID).
			Scan(&conditions, &score, &recommended)
		if err != nil {
			return err
		}
		rec.Detail = extract.SkinFields{
			Conditions:               stringsFromJSON(conditions),
			SeverityScore:            intPtr(score),
			DermatologistRecommended: recommended,
		}
	case domain.TypePosture:
		var issues, exercises string
		var score sql.NullInt64
		err := r.db.QueryRowContext(ctx,
			`SELECT issues_json, posture_score, exercises_json FROM posture_analyses WHERE id=$1;`, rec.ID).
			Scan(&issues, &score, &exercises)
		if err != nil {
			return err
		}
		rec.Detail = extract.PostureFields{
			Issues:                  stringsFromJSON(issues),
			PostureScore:            intPtr(score),
			ExerciseRecommendations: stringsFromJSON(exercises),
		}
	case domain.TypeNutrition:
		var foodItems, nutrients string
		var score sql.NullInt64
		err := r.db.QueryRowContext(ctx,
			`SELECT food_items_json, nutrients_json, health_score FROM nutrition_analyses WHERE id=$1;`, rec.ID).
			Scan(&foodItems, &nutrients, &score)
		if err != nil {
			return err
		}
		rec.Detail = extract.NutritionFields{
			FoodItems:   stringsFromJSON(foodItems),
			Nutrients:   nutrientsFromJSON(nutrients),
			HealthScore: intPtr(score),
		}
	case domain.TypeStool:
		var abnormalities, hydration string
		var bristol sql.NullInt64
		var recommended bool
		err := r.db.QueryRowContext(ctx,
			`SELECT bristol_type, abnormalities_json, hydration_level, doctor_recommended FROM stool_analyses WHERE id=$1;`, rec.ID).
			Scan(&bristol, &abnormalities, &hydration, &recommended)
		if err != nil {
			return err
		}
		rec.Detail = extract.StoolFields{
			BristolType:       intPtr(bristol),
			Abnormalities:     stringsFromJSON(abnormalities),
			HydrationLevel:    extract.HydrationLevel(hydration),
			DoctorRecommended: recommended,
		}
	default:
		return fmt.Errorf("record %s has unknown analysis type %q", rec.ID, rec.Type)
	}
	return nil
}
