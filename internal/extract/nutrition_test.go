package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNutrition_FoodItemsSection(t *testing.T) {
	text := "Food Items:\n- Grilled chicken breast\n- Steamed rice\n- Broccoli\n\nHealth score: 8/10\n"

	got := Nutrition(text)

	assert.Equal(t, []string{"Grilled chicken breast", "Steamed rice", "Broccoli"}, got.FoodItems)
	require.NotNil(t, got.HealthScore)
	assert.Equal(t, 8, *got.HealthScore)
}

func TestNutrition_FoodItemsConnectorFallback(t *testing.T) {
	got := Nutrition("The plate contains rice, grilled chicken and steamed broccoli.")

	assert.Equal(t, []string{"rice", "grilled chicken", "steamed broccoli"}, got.FoodItems)
}

func TestNutrition_MacrosWithUnits(t *testing.T) {
	text := "The meal has approximately 550 calories, 25g of protein, 60g of carbs, 18g of fat and 6g of fiber."

	got := Nutrition(text)

	require.NotNil(t, got.Nutrients.Calories)
	assert.Equal(t, 550, *got.Nutrients.Calories)
	require.NotNil(t, got.Nutrients.Protein)
	assert.Equal(t, 25, *got.Nutrients.Protein)
	require.NotNil(t, got.Nutrients.Carbs)
	assert.Equal(t, 60, *got.Nutrients.Carbs)
	require.NotNil(t, got.Nutrients.Fat)
	assert.Equal(t, 18, *got.Nutrients.Fat)
	require.NotNil(t, got.Nutrients.Fiber)
	assert.Equal(t, 6, *got.Nutrients.Fiber)
}

func TestNutrition_MacrosLabeledForm(t *testing.T) {
	text := "Calories: about 420 kcal\nProtein: 30g\nCarbs: ~45 grams\nFat: 12 g\n"

	got := Nutrition(text)

	require.NotNil(t, got.Nutrients.Calories)
	assert.Equal(t, 420, *got.Nutrients.Calories)
	require.NotNil(t, got.Nutrients.Protein)
	assert.Equal(t, 30, *got.Nutrients.Protein)
	require.NotNil(t, got.Nutrients.Carbs)
	assert.Equal(t, 45, *got.Nutrients.Carbs)
	require.NotNil(t, got.Nutrients.Fat)
	assert.Equal(t, 12, *got.Nutrients.Fat)
	assert.Nil(t, got.Nutrients.Fiber)
}

func TestNutrition_MacroRequiresUnit(t *testing.T) {
	got := Nutrition("The dish scores 25 on presentation.")

	assert.Nil(t, got.Nutrients.Protein)
	assert.Nil(t, got.Nutrients.Calories)
}

func TestNutrition_VitaminsSection(t *testing.T) {
	text := "Vitamins and Minerals:\n- Vitamin C: high\n- Iron: 40%\n- Calcium: low\n- Magnesium: good\n"

	got := Nutrition(text)

	assert.Equal(t, map[string]int{
		"Vitamin C": 80,
		"Iron":      40,
		"Calcium":   20,
		"Magnesium": 50,
	}, got.Nutrients.Vitamins)
}

func TestNutrition_VitaminsAbsent(t *testing.T) {
	got := Nutrition("A bowl of plain oatmeal.")

	assert.NotNil(t, got.Nutrients.Vitamins)
	assert.Empty(t, got.Nutrients.Vitamins)
}

func TestNutrition_HealthScoreOutOfRangeIsAbsent(t *testing.T) {
	got := Nutrition("Health score: 15/10 is not a real rating.")

	assert.Nil(t, got.HealthScore)
}

func TestNutrition_Idempotent(t *testing.T) {
	text := "Food Items:\n- Salmon\n\nProtein: 30g\nHealth score: 9/10\n"

	assert.Equal(t, Nutrition(text), Nutrition(text))
}
