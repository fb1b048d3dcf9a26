package extract

import (
	"regexp"
	"strconv"
	"strings"
)

// HydrationLevel buckets the hydration wording of a stool analysis.
type HydrationLevel string

const (
	HydrationLow    HydrationLevel = "low"
	HydrationNormal HydrationLevel = "normal"
	HydrationGood   HydrationLevel = "good"
)

// StoolFields are the typed findings derived from a stool analysis.
type StoolFields struct {
	BristolType       *int           `json:"bristolType,omitempty"`
	Abnormalities     []string       `json:"abnormalities"`
	HydrationLevel    HydrationLevel `json:"hydrationLevel,omitempty"`
	DoctorRecommended bool           `json:"doctorRecommended"`
}

// StoolRules configures the stool extractor. ExtremeBristolTypes are the
// clinically extreme Bristol categories that recommend a doctor on their own.
type StoolRules struct {
	Engine              Rules
	ReferralKeywords    []string
	SevereKeywords      []string
	ExtremeBristolTypes []int
}

var DefaultStoolRules = StoolRules{
	Engine: Rules{
		SectionHeaders: []string{
			"abnormalities",
			"abnormal findings",
			"concerns",
			"issues",
		},
		Keywords: []string{
			"blood", "mucus", "undigested food", "unusual color",
			"black stool", "pale stool", "greasy", "floating",
			"constipation", "diarrhea", "hard lumps", "watery",
		},
	},
	ReferralKeywords: []string{
		"see a doctor", "consult a doctor", "visit a doctor",
		"medical attention", "see a gastroenterologist",
		"consult a physician", "medical evaluation",
	},
	SevereKeywords: []string{
		"severe", "blood", "bleeding", "black stool", "tarry",
		"persistent diarrhea", "chronic constipation",
	},
	ExtremeBristolTypes: []int{1, 7},
}

// bristolRe anchors on Bristol/stool-type language followed by the type
// number; bristolReverseRe accepts the "type N … bristol" word order.
var (
	bristolRe        = regexp.MustCompile(`(?i)(?:bristol|stool\s+type)[^0-9]{0,40}?(\d{1,2})`)
	bristolReverseRe = regexp.MustCompile(`(?i)type\s*(\d{1,2})[^.\n]{0,60}bristol`)
)

const (
	bristolMin = 1
	bristolMax = 7
)

// hydration keyword groups; the dehydration and well-hydrated overrides win
// over the plain groups.
var (
	hydrationLowWords    = []string{"low hydration", "poor hydration", "insufficient fluid", "insufficient water", "hard and dry", "lack of fluid"}
	hydrationGoodWords   = []string{"good hydration", "excellent hydration", "adequate hydration"}
	hydrationNormalWords = []string{"normal hydration", "moderate hydration", "hydration appears normal", "hydration seems normal"}
)

// Stool extracts stool findings with the default rules.
func Stool(text string) StoolFields {
	return DefaultStoolRules.Extract(text)
}

func (r StoolRules) Extract(text string) StoolFields {
	abnormalities := r.Engine.Items(text)
	bristol := bristolType(text)
	recommended := referralFlag(text, abnormalities, r.ReferralKeywords) ||
		containsAny(text, r.SevereKeywords)
	if bristol != nil {
		for _, extreme := range r.ExtremeBristolTypes {
			if *bristol == extreme {
				recommended = true
				break
			}
		}
	}
	return StoolFields{
		BristolType:       bristol,
		Abnormalities:     abnormalities,
		HydrationLevel:    hydrationLevel(text),
		DoctorRecommended: recommended,
	}
}

// bristolType extracts the Bristol stool type. A matched number outside
// [1,7] yields nil, never a clamped value.
func bristolType(text string) *int {
	for _, re := range []*regexp.Regexp{bristolRe, bristolReverseRe} {
		m := re.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		n, err := strconv.Atoi(m[1])
		if err != nil || n < bristolMin || n > bristolMax {
			return nil
		}
		return &n
	}
	return nil
}

// hydrationLevel maps hydration wording onto the three buckets. Any
// "dehydrat…" form forces low and "well hydrated" forces good, regardless of
// the other groups.
func hydrationLevel(text string) HydrationLevel {
	lower := strings.ToLower(text)
	if strings.Contains(lower, "dehydrat") {
		return HydrationLow
	}
	if strings.Contains(lower, "well hydrated") || strings.Contains(lower, "well-hydrated") {
		return HydrationGood
	}
	switch {
	case containsAny(lower, hydrationLowWords):
		return HydrationLow
	case containsAny(lower, hydrationGoodWords):
		return HydrationGood
	case containsAny(lower, hydrationNormalWords):
		return HydrationNormal
	}
	return ""
}
