package extract

// DentalFields are the typed findings derived from a dental analysis.
type DentalFields struct {
	Issues             []string `json:"issues"`
	HygieneScore       *int     `json:"hygieneScore,omitempty"`
	DentistRecommended bool     `json:"dentistRecommended"`
}

// DentalRules configures the dental extractor. ReferralConcernThreshold is
// the conservative default: finding at least that many issues recommends a
// dentist even without an explicit referral phrase.
type DentalRules struct {
	Engine                   Rules
	ReferralKeywords         []string
	ReferralConcernThreshold int
}

var DefaultDentalRules = DentalRules{
	Engine: Rules{
		SectionHeaders: []string{
			"dental issues",
			"dental concerns",
			"problems",
			"issues",
			"concerns",
		},
		Keywords: []string{
			"cavity", "cavities", "plaque", "tartar", "gingivitis",
			"decay", "discoloration", "staining", "chipped", "cracked",
			"misalignment", "receding gum", "inflamed gum", "abscess",
		},
		ScoreRe:  scorePattern([]string{"oral hygiene score", "hygiene score", "dental score"}, 10),
		ScoreMin: 1,
		ScoreMax: 10,
	},
	ReferralKeywords: []string{
		"see a dentist", "visit a dentist", "consult a dentist",
		"dental visit", "professional cleaning", "dental checkup",
		"see your dentist", "dentist appointment",
	},
	ReferralConcernThreshold: 3,
}

// Dental extracts dental findings with the default rules.
func Dental(text string) DentalFields {
	return DefaultDentalRules.Extract(text)
}

// Extract derives the dental fields. It never fails; anything it cannot find
// is simply absent.
func (r DentalRules) Extract(text string) DentalFields {
	issues := r.Engine.Items(text)
	return DentalFields{
		Issues:       issues,
		HygieneScore: r.Engine.Score(text),
		DentistRecommended: referralFlag(text, issues, r.ReferralKeywords) ||
			len(issues) >= r.ReferralConcernThreshold,
	}
}
