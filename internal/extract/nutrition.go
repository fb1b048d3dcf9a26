package extract

import (
	"regexp"
	"strconv"
	"strings"
)

// Nutrients holds the macro values and the vitamin/mineral levels pulled from
// a nutrition analysis. Macro pointers are nil when the value was not found.
type Nutrients struct {
	Calories *int           `json:"calories,omitempty"`
	Protein  *int           `json:"protein,omitempty"`
	Carbs    *int           `json:"carbs,omitempty"`
	Fat      *int           `json:"fat,omitempty"`
	Fiber    *int           `json:"fiber,omitempty"`
	Vitamins map[string]int `json:"vitamins"`
}

// NutritionFields are the typed findings derived from a nutrition analysis.
type NutritionFields struct {
	FoodItems   []string  `json:"foodItems"`
	Nutrients   Nutrients `json:"nutrients"`
	HealthScore *int      `json:"healthScore,omitempty"`
}

// NutritionRules configures the nutrition extractor.
type NutritionRules struct {
	Engine         Rules
	VitaminHeaders []string
	Connectors     []string
}

var DefaultNutritionRules = NutritionRules{
	Engine: Rules{
		SectionHeaders: []string{
			"food items",
			"foods identified",
			"ingredients",
			"items",
		},
		ScoreRe:  scorePattern([]string{"health score", "nutrition score", "healthiness score"}, 10),
		ScoreMin: 1,
		ScoreMax: 10,
	},
	VitaminHeaders: []string{
		"vitamins and minerals",
		"vitamins",
		"minerals",
		"micronutrients",
	},
	Connectors: []string{
		"contains", "consists of", "includes", "made of", "made with",
		"composed of", "comprising",
	},
}

// approx covers optional approximation qualifiers before a number.
const approx = `(?:approximately|about|around|roughly|~|approx\.?)?\s*`

var (
	caloriesRe = regexp.MustCompile(`(?i)(?:calories?|energy)[^0-9]{0,20}` + approx + `(\d{1,5})|(\d{1,5})\s*(?:kcal|calories)\b`)
	proteinRe  = gramsPattern(`proteins?`)
	carbsRe    = gramsPattern(`(?:carbs?|carbohydrates?)`)
	fatRe      = gramsPattern(`fats?`)
	fiberRe    = gramsPattern(`(?:fiber|fibre)`)

	// vitaminLineRe matches "<name>: <level>" where level is a word on the
	// high/medium/low scale or a percentage.
	vitaminLineRe = regexp.MustCompile(`(?i)^([a-z][a-z0-9 ]*?)\s*[:\-]\s*(high|excellent|medium|good|low|(\d{1,3})\s*%)\s*$`)

	listSeparatorRe = regexp.MustCompile(`(?i)\s*(?:,|&|\band\b)\s*`)
)

// gramsPattern matches "<nutrient> … <n> g" and "<n> g (of) <nutrient>"; the
// unit suffix is required so bare numbers are never taken.
func gramsPattern(nutrient string) *regexp.Regexp {
	return regexp.MustCompile(`(?i)` + nutrient + `[^0-9]{0,20}` + approx + `(\d{1,4})\s*(?:g|grams?)\b|(\d{1,4})\s*(?:g|grams?)\s+(?:of\s+)?` + nutrient)
}

// Nutrition extracts nutrition findings with the default rules.
func Nutrition(text string) NutritionFields {
	return DefaultNutritionRules.Extract(text)
}

func (r NutritionRules) Extract(text string) NutritionFields {
	return NutritionFields{
		FoodItems: r.foodItems(text),
		Nutrients: Nutrients{
			Calories: firstMatch(caloriesRe, text),
			Protein:  firstMatch(proteinRe, text),
			Carbs:    firstMatch(carbsRe, text),
			Fat:      firstMatch(fatRe, text),
			Fiber:    firstMatch(fiberRe, text),
			Vitamins: r.vitamins(text),
		},
		HealthScore: r.Engine.Score(text),
	}
}

// foodItems reads the food-items section; when absent it falls back to
// sentences with a connector phrase ("contains", "consists of", …) and splits
// the remainder on commas, "and" and "&".
func (r NutritionRules) foodItems(text string) []string {
	items := sectionItems(text, r.Engine.SectionHeaders)
	if len(items) == 0 {
		items = r.connectorItems(text)
	}
	return dedupe(items)
}

func (r NutritionRules) connectorItems(text string) []string {
	var items []string
	for _, sent := range sentences(text) {
		lower := strings.ToLower(sent)
		for _, conn := range r.Connectors {
			idx := strings.Index(lower, conn)
			if idx < 0 {
				continue
			}
			rest := sent[idx+len(conn):]
			for _, part := range listSeparatorRe.Split(rest, -1) {
				part = strings.Trim(strings.TrimSpace(part), ".,;:")
				if part != "" {
					items = append(items, part)
				}
			}
			break
		}
	}
	return items
}

// vitamins parses the vitamin/mineral section into a name -> level map. Word
// levels map onto a fixed numeric scale, percentage literals keep their
// value.
func (r NutritionRules) vitamins(text string) map[string]int {
	out := make(map[string]int)
	for _, line := range sectionItems(text, r.VitaminHeaders) {
		m := vitaminLineRe.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		name := strings.TrimSpace(m[1])
		var level int
		switch strings.ToLower(m[2]) {
		case "high", "excellent":
			level = 80
		case "medium", "good":
			level = 50
		case "low":
			level = 20
		default:
			n, err := strconv.Atoi(m[3])
			if err != nil {
				continue
			}
			level = n
		}
		if _, ok := out[name]; !ok {
			out[name] = level
		}
	}
	return out
}

// firstMatch returns the first captured integer of re in text, scanning the
// capture groups in order.
func firstMatch(re *regexp.Regexp, text string) *int {
	m := re.FindStringSubmatch(text)
	if m == nil {
		return nil
	}
	for _, g := range m[1:] {
		if g == "" {
			continue
		}
		n, err := strconv.Atoi(g)
		if err != nil {
			return nil
		}
		return &n
	}
	return nil
}
