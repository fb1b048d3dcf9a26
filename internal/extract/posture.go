package extract

// PostureFields are the typed findings derived from a posture analysis.
type PostureFields struct {
	Issues                  []string `json:"issues"`
	PostureScore            *int     `json:"postureScore,omitempty"`
	ExerciseRecommendations []string `json:"exerciseRecommendations"`
}

// PostureRules configures the posture extractor. Exercises are a second list
// extraction with its own rule table; there is no referral boolean for this
// category.
type PostureRules struct {
	Engine    Rules
	Exercises Rules
}

var DefaultPostureRules = PostureRules{
	Engine: Rules{
		SectionHeaders: []string{
			"posture issues",
			"postural issues",
			"alignment issues",
			"problems",
			"issues",
			"concerns",
		},
		Keywords: []string{
			"forward head", "rounded shoulders", "slouching", "kyphosis",
			"lordosis", "scoliosis", "anterior pelvic tilt", "uneven hips",
			"uneven shoulders", "hunched", "swayback", "flat back",
		},
		ScoreRe:  scorePattern([]string{"posture score", "posture rating", "alignment score"}, 10),
		ScoreMin: 1,
		ScoreMax: 10,
	},
	Exercises: Rules{
		SectionHeaders: []string{
			"exercise recommendations",
			"recommended exercises",
			"exercises",
			"stretches",
		},
		Keywords: []string{
			"stretch", "strengthen", "exercise", "yoga", "plank",
			"chin tuck", "shoulder blade squeeze", "core",
		},
	},
}

// Posture extracts posture findings with the default rules.
func Posture(text string) PostureFields {
	return DefaultPostureRules.Extract(text)
}

func (r PostureRules) Extract(text string) PostureFields {
	return PostureFields{
		Issues:                  r.Engine.Items(text),
		PostureScore:            r.Engine.Score(text),
		ExerciseRecommendations: r.Exercises.Items(text),
	}
}
