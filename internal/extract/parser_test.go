package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParse_WellFormedSections(t *testing.T) {
	text := "Concerns:\n- Mild gingivitis\n- Plaque buildup\n\nRecommendations:\n- Floss daily\n"

	got := Parse(text)

	assert.Equal(t, text, got.Analysis)
	assert.Equal(t, []string{"Mild gingivitis", "Plaque buildup"}, got.Concerns)
	assert.Equal(t, []string{"Floss daily"}, got.Recommendations)
}

func TestParse_IdentityFallback(t *testing.T) {
	text := "The teeth look generally healthy with no obvious problems."

	got := Parse(text)

	assert.Equal(t, text, got.Analysis)
	assert.Equal(t, []string{}, got.Concerns)
	assert.Equal(t, []string{}, got.Recommendations)
}

func TestParse_EmptyInput(t *testing.T) {
	got := Parse("")

	assert.Equal(t, "", got.Analysis)
	assert.Empty(t, got.Concerns)
	assert.Empty(t, got.Recommendations)
	assert.NotNil(t, got.Concerns)
	assert.NotNil(t, got.Recommendations)
}

func TestParse_HeaderSynonyms(t *testing.T) {
	text := "Potential Issues:\n- Crowding of lower teeth\n\nSuggested Actions:\n- Consider orthodontic consultation\n"

	got := Parse(text)

	assert.Equal(t, []string{"Crowding of lower teeth"}, got.Concerns)
	assert.Equal(t, []string{"Consider orthodontic consultation"}, got.Recommendations)
}

func TestParse_SectionEndsAtNextHeader(t *testing.T) {
	// No blank line between the sections: the capitalized header line
	// terminates the concerns body.
	text := "Concerns:\n- Staining on front teeth\nRecommendations:\n- Whitening toothpaste\n"

	got := Parse(text)

	assert.Equal(t, []string{"Staining on front teeth"}, got.Concerns)
	assert.Equal(t, []string{"Whitening toothpaste"}, got.Recommendations)
}

func TestParse_StripsBulletsAndBlanks(t *testing.T) {
	text := "Concerns:\n-   Tartar near gum line\n- \n- Receding gums\n\nsomething else"

	got := Parse(text)

	assert.Equal(t, []string{"Tartar near gum line", "Receding gums"}, got.Concerns)
}

func TestParse_DeduplicatesPreservingOrder(t *testing.T) {
	text := "Concerns:\n- Plaque buildup\n- Gingivitis\n- Plaque buildup\n"

	got := Parse(text)

	assert.Equal(t, []string{"Plaque buildup", "Gingivitis"}, got.Concerns)
}

func TestParse_Idempotent(t *testing.T) {
	text := "Concerns:\n- Plaque buildup\n\nRecommendations:\n- Brush twice daily\n"

	assert.Equal(t, Parse(text), Parse(text))
}
