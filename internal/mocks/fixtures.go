package mocks

import "github.com/homsent/homsent-chef/backend/internal/model"

// GeneratedRecipe returns a recipe shaped like a gateway response: no id,
// not favorited, no video.
func GeneratedRecipe(title string) model.Recipe {
	return model.Recipe{
		Title:        title,
		Description:  "Un plato sencillo y sabroso.",
		PrepTime:     "10 minutos",
		CookTime:     "20 minutos",
		Ingredients:  []string{"2 pechugas de pollo", "200 g de arroz"},
		Instructions: []string{"Cortar el pollo.", "Cocer el arroz."},
		Utensils:     []string{"sartén", "olla"},
		Cost:         model.CostLow,
		DietType:     model.DietNormal,
		Origin:       model.OriginNational,
	}
}
