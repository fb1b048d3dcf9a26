package extract

// SkinFields are the typed findings derived from a skin analysis.
type SkinFields struct {
	Conditions               []string `json:"conditions"`
	SeverityScore            *int     `json:"severityScore,omitempty"`
	DermatologistRecommended bool     `json:"dermatologistRecommended"`
}

// SkinRules configures the skin extractor. A serious-condition keyword or a
// severity score of at least ReferralSeverityThreshold recommends a
// dermatologist even without an explicit referral phrase.
type SkinRules struct {
	Engine                    Rules
	ReferralKeywords          []string
	SeriousKeywords           []string
	ReferralSeverityThreshold int
}

var DefaultSkinRules = SkinRules{
	Engine: Rules{
		SectionHeaders: []string{
			"skin conditions",
			"skin issues",
			"conditions",
			"concerns",
		},
		Keywords: []string{
			"acne", "eczema", "psoriasis", "rosacea", "dermatitis",
			"rash", "hives", "mole", "wrinkle", "hyperpigmentation",
			"dryness", "redness", "irritation", "blackhead", "whitehead",
		},
		ScoreRe:  scorePattern([]string{"severity score", "severity rating", "skin score"}, 10),
		ScoreMin: 1,
		ScoreMax: 10,
	},
	ReferralKeywords: []string{
		"see a dermatologist", "visit a dermatologist",
		"consult a dermatologist", "dermatologist visit",
		"professional evaluation", "medical attention",
	},
	SeriousKeywords: []string{
		"melanoma", "carcinoma", "infection", "infected", "severe",
		"malignant", "suspicious lesion", "bleeding",
	},
	ReferralSeverityThreshold: 7,
}

// Skin extracts skin findings with the default rules.
func Skin(text string) SkinFields {
	return DefaultSkinRules.Extract(text)
}

func (r SkinRules) Extract(text string) SkinFields {
	conditions := r.Engine.Items(text)
	score := r.Engine.Score(text)
	recommended := referralFlag(text, conditions, r.ReferralKeywords) ||
		containsAny(text, r.SeriousKeywords) ||
		(score != nil && *score >= r.ReferralSeverityThreshold)
	return SkinFields{
		Conditions:               conditions,
		SeverityScore:            score,
		DermatologistRecommended: recommended,
	}
}
