package model

// Cost classifies how expensive a recipe is to prepare.
type Cost string

const (
	CostLow    Cost = "Económico"
	CostMedium Cost = "Medio"
	CostHigh   Cost = "Alto"
)

// DietType marks recipes that are notably low in calories or fat.
type DietType string

const (
	DietNormal   DietType = "Normal"
	DietDietetic DietType = "Dietética"
)

// Origin tells where a recipe comes from. OriginWorld is only assigned to
// recipes promoted from a global search.
type Origin string

const (
	OriginNational      Origin = "Nacional"
	OriginInternational Origin = "Internacional"
	OriginWorld         Origin = "Mundial"
)

// Recipe is the persisted shape of a recipe. JSON names are part of the stored
// record format and of the AI response schema, so they must not change.
type Recipe struct {
	ID           string   `json:"id"`
	Title        string   `json:"titulo" validate:"required"`
	Description  string   `json:"descripcion" validate:"required"`
	PrepTime     string   `json:"tiempo_preparacion" validate:"required"`
	CookTime     string   `json:"tiempo_coccion" validate:"required"`
	Ingredients  []string `json:"ingredientes" validate:"required,min=1,dive,required"`
	Instructions []string `json:"instrucciones" validate:"required,min=1,dive,required"`
	Utensils     []string `json:"utensilios" validate:"required"`
	Cost         Cost     `json:"coste" validate:"required,oneof=Económico Medio Alto"`
	DietType     DietType `json:"tipo_dieta" validate:"required,oneof=Normal Dietética"`
	Origin       Origin   `json:"origen" validate:"required,oneof=Nacional Internacional Mundial"`
	Favorite     bool     `json:"favorito"`
	VideoURL     string   `json:"video_url,omitempty"`
}

// Clone returns a deep copy so callers can hand recipes out without sharing
// slice backing arrays with the store.
func (r Recipe) Clone() Recipe {
	c := r
	c.Ingredients = append([]string(nil), r.Ingredients...)
	c.Instructions = append([]string(nil), r.Instructions...)
	c.Utensils = append([]string(nil), r.Utensils...)
	return c
}

// CloneRecipes deep copies a slice of recipes.
func CloneRecipes(in []Recipe) []Recipe {
	out := make([]Recipe, len(in))
	for i, r := range in {
		out[i] = r.Clone()
	}
	return out
}
