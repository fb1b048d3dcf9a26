package analysis

import "time"

// Type identifies one of the supported analysis categories.
type Type string

const (
	TypeDental    Type = "dental"
	TypeSkin      Type = "skin"
	TypePosture   Type = "posture"
	TypeNutrition Type = "nutrition"
	TypeStool     Type = "stool"
)

// Types lists every supported analysis category.
var Types = []Type{TypeDental, TypeSkin, TypePosture, TypeNutrition, TypeStool}

// Valid reports whether t is a known analysis category.
func (t Type) Valid() bool {
	switch t {
	case TypeDental, TypeSkin, TypePosture, TypeNutrition, TypeStool:
		return true
	}
	return false
}

// Specialty returns the provider specialty consulted for this category.
func (t Type) Specialty() string {
	switch t {
	case TypeDental:
		return "dentist"
	case TypeSkin:
		return "dermatologist"
	case TypePosture:
		return "physiotherapist"
	case TypeNutrition:
		return "nutritionist"
	case TypeStool:
		return "gastroenterologist"
	}
	return ""
}

// Record is a persisted analysis. The base fields live in one table; Detail
// holds the category-specific sub-record stored in its own table keyed by the
// same ID (1:1, removed together with the base row).
type Record struct {
	ID              string    `json:"id"`
	UserID          string    `json:"user_id"`
	Type            Type      `json:"type"`
	RawAnalysis     string    `json:"raw_analysis"`
	Concerns        []string  `json:"concerns"`
	Recommendations []string  `json:"recommendations"`
	ImageURL        string    `json:"image_url,omitempty"`
	CreatedAt       time.Time `json:"created_at"`

	// Detail is one of the extract.*Fields structs matching Type.
	Detail any `json:"detail,omitempty"`
}
