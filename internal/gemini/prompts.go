package gemini

import (
	"fmt"
	"strings"

	"github.com/homsent/homsent-chef/backend/internal/model"
)

const identifyPrompt = "Identifica los principales ingredientes de comida en esta imagen. Enuméralos separados por comas. Si no se puede identificar ningún alimento, devuelve una cadena vacía."

func recipePrompt(ingredients, filters []string) string {
	var filterText string
	if len(filters) > 0 {
		filterText = fmt.Sprintf(" La receta debe cumplir con los siguientes criterios: %s.", strings.Join(filters, ", "))
	}
	return fmt.Sprintf("Eres un chef experto. Crea una receta detallada y deliciosa usando los siguientes ingredientes: %s.%s "+
		"Clasifica la receta según su coste, tipo de dieta y origen. Responde únicamente con el JSON estructurado. "+
		"No busques un vídeo, ese paso se hará por separado.",
		strings.Join(ingredients, ", "), filterText)
}

func searchPrompt(query string) string {
	return fmt.Sprintf("Eres una enciclopedia culinaria mundial. Busca recetas que coincidan con \"%s\". "+
		"Devuelve una lista de hasta %d recetas populares y bien valoradas que se ajusten a la búsqueda. "+
		"Para cada receta, proporciona todos los detalles: título, descripción, tiempos, ingredientes, instrucciones, utensilios, coste, tipo de dieta y origen. "+
		"No incluyas URL de vídeos. Responde únicamente con un array JSON que siga el schema definido. "+
		"Si no encuentras ninguna receta, devuelve un array vacío.",
		query, maxSearchResults)
}

func videoPrompt(title string) string {
	return fmt.Sprintf("Busca en YouTube un vídeo de receta para \"%s\". "+
		"Devuelve únicamente la URL completa y directa del vídeo más relevante. "+
		"Si no encuentras un vídeo adecuado, devuelve una cadena vacía.", title)
}

func chefInstruction(r model.Recipe) string {
	var b strings.Builder
	b.WriteString("Eres un asistente de chef experto y amigable. Tu propósito es responder preguntas sobre la siguiente receta:\n\n")
	fmt.Fprintf(&b, "Título: %s\n", r.Title)
	fmt.Fprintf(&b, "Descripción: %s\n", r.Description)
	fmt.Fprintf(&b, "Ingredientes: %s\n", strings.Join(r.Ingredients, ", "))
	fmt.Fprintf(&b, "Instrucciones: %s\n\n", strings.Join(r.Instructions, "; "))
	b.WriteString("Responde únicamente a preguntas relacionadas con esta receta, como sustituciones de ingredientes, " +
		"consejos de cocina, maridajes, información nutricional, etc. Si te preguntan algo no relacionado con la receta, " +
		"amablemente redirige la conversación de vuelta a la receta. Sé conciso y útil.")
	return b.String()
}
