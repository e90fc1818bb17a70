package gemini

import "google.golang.org/genai"

func stringList(description string) *genai.Schema {
	return &genai.Schema{
		Type:        genai.TypeArray,
		Description: description,
		Items:       &genai.Schema{Type: genai.TypeString},
	}
}

// recipeSchema constrains generated recipes to the stored JSON shape. Origin
// is limited to Nacional and Internacional; Mundial is assigned locally.
var recipeSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"titulo": {
			Type:        genai.TypeString,
			Description: "El nombre creativo y apetitoso de la receta.",
		},
		"descripcion": {
			Type:        genai.TypeString,
			Description: "Una breve descripción de 1-2 frases sobre el plato.",
		},
		"tiempo_preparacion": {
			Type:        genai.TypeString,
			Description: "Tiempo estimado para preparar los ingredientes (ej. '15 minutos').",
		},
		"tiempo_coccion": {
			Type:        genai.TypeString,
			Description: "Tiempo estimado de cocción (ej. '30 minutos').",
		},
		"ingredientes":  stringList("Lista completa de ingredientes con cantidades (ej. '2 pechugas de pollo')."),
		"instrucciones": stringList("Pasos numerados y claros para preparar la receta."),
		"utensilios":    stringList("Lista de utensilios de cocina necesarios (ej. 'sartén', 'olla', 'cuchillo')."),
		"coste": {
			Type:        genai.TypeString,
			Enum:        []string{"Económico", "Medio", "Alto"},
			Description: "Clasificación del coste de la receta.",
		},
		"tipo_dieta": {
			Type:        genai.TypeString,
			Enum:        []string{"Normal", "Dietética"},
			Description: "Clasificar como 'Dietética' si es notablemente baja en calorías/grasas, de lo contrario 'Normal'.",
		},
		"origen": {
			Type:        genai.TypeString,
			Enum:        []string{"Nacional", "Internacional"},
			Description: "Clasificar como 'Nacional' si es un plato típico español, de lo contrario 'Internacional'.",
		},
		"video_url": {
			Type:        genai.TypeString,
			Description: "Este campo será poblado por una búsqueda separada. No intentes rellenarlo. Devuelve una cadena vacía.",
		},
	},
	Required: []string{
		"titulo", "descripcion", "tiempo_preparacion", "tiempo_coccion",
		"ingredientes", "instrucciones", "utensilios", "coste", "tipo_dieta", "origen",
	},
}

var recipeArraySchema = &genai.Schema{
	Type:  genai.TypeArray,
	Items: recipeSchema,
}
