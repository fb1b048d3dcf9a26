package vision

import "strings"

// refusalPhrases are wordings the model uses when it answered but could not
// meaningfully analyze the image. Matching is case-insensitive substring
// containment; the first hit wins.
var refusalPhrases = []string{
	// inability statements
	"unable to analyze",
	"unable to analyse",
	"cannot analyze",
	"cannot analyse",
	"can't analyze",
	"unable to assess",
	"cannot assess",
	"unable to determine",
	"cannot determine",
	"unable to identify",
	"cannot identify",
	"unable to evaluate",
	"i cannot provide",
	"i am unable to",
	"i'm unable to",

	// image quality complaints
	"unclear image",
	"image is unclear",
	"image is too blurry",
	"too blurry",
	"image quality is too low",
	"poor image quality",
	"low image quality",
	"image is too dark",
	"resolution is too low",

	// visibility complaints
	"no visible",
	"not visible",
	"nothing visible",
	"cannot see",
	"can't see",
	"not clearly visible",
	"difficult to see",
	"hard to make out",

	// policy refusals
	"inappropriate content",
	"cannot assist with this",
	"not able to help with",
	"against my guidelines",
	"i can't help with that",

	// requests for a better image
	"please provide a clearer image",
	"please provide a clearer photo",
	"provide a better image",
	"upload a clearer image",
	"try another image",
	"retake the photo",
	"take a clearer photo",
}

// IsRefusal reports whether text is a refusal/uncertainty answer rather than
// a usable analysis.
func IsRefusal(text string) bool {
	lower := strings.ToLower(text)
	for _, phrase := range refusalPhrases {
		if strings.Contains(lower, phrase) {
			return true
		}
	}
	return false
}
