package postgres

import (
	"database/sql"
	"encoding/json"

	"github.com/healthlens/healthlens-api/internal/extract"
)

func jsonString(v any) string {
	b, err := json.Marshal(v)
	if err != nil {
		return "[]"
	}
	return string(b)
}

func stringsFromJSON(s string) []string {
	var out []string
	if err := json.Unmarshal([]byte(s), &out); err != nil || out == nil {
		return []string{}
	}
	return out
}

func nutrientsFromJSON(s string) extract.Nutrients {
	var n extract.Nutrients
	if err := json.Unmarshal([]byte(s), &n); err != nil {
		return extract.Nutrients{Vitamins: map[string]int{}}
	}
	if n.Vitamins == nil {
		n.Vitamins = map[string]int{}
	}
	return n
}

func nullableInt(p *int) any {
	if p == nil {
		return nil
	}
	return *p
}

func intPtr(n sql.NullInt64) *int {
	if !n.Valid {
		return nil
	}
	v := int(n.Int64)
	return &v
}
