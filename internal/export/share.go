package export

import (
	"fmt"
	"strings"

	"github.com/homsent/homsent-chef/backend/internal/model"
)

const ShoppingListTitle = "Lista de la Compra de Homsent Chef"

// ShareContent is handed to the browser's share facility or copied to the
// clipboard.
type ShareContent struct {
	Title string `json:"title"`
	Text  string `json:"text"`
}

// RecipeShare formats a recipe as chat-friendly text.
func RecipeShare(r model.Recipe) ShareContent {
	var b strings.Builder
	fmt.Fprintf(&b, "*%s*\n\n", r.Title)
	fmt.Fprintf(&b, "*Descripción:*\n%s\n\n", r.Description)
	b.WriteString("*Detalles:*\n")
	fmt.Fprintf(&b, "- Tiempo de Preparación: %s\n", r.PrepTime)
	fmt.Fprintf(&b, "- Tiempo de Cocción: %s\n", r.CookTime)
	fmt.Fprintf(&b, "- Coste: %s\n", r.Cost)
	fmt.Fprintf(&b, "- Tipo de Dieta: %s\n", r.DietType)
	fmt.Fprintf(&b, "- Origen: %s\n\n", r.Origin)
	b.WriteString("*Ingredientes:*\n")
	writeLines(&b, r.Ingredients, func(_ int, s string) string { return "- " + s })
	b.WriteString("\n\n*Utensilios:*\n")
	writeLines(&b, r.Utensils, func(_ int, s string) string { return "- " + s })
	b.WriteString("\n\n*Instrucciones:*\n")
	writeLines(&b, r.Instructions, func(i int, s string) string { return fmt.Sprintf("%d. %s", i+1, s) })

	return ShareContent{
		Title: "Receta: " + r.Title,
		Text:  strings.TrimSpace(b.String()),
	}
}

func writeLines(b *strings.Builder, items []string, format func(int, string) string) {
	for i, item := range items {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(format(i, item))
	}
}

// ShoppingShare lists the unchecked items with their quantities. It fails
// with ErrNothingPending when every item is checked.
func ShoppingShare(items []model.ShoppingListItem) (ShareContent, error) {
	pending := pendingItems(items)
	if len(pending) == 0 {
		return ShareContent{}, ErrNothingPending
	}
	lines := make([]string, len(pending))
	for i, it := range pending {
		lines[i] = fmt.Sprintf("- %s (%s)", strings.TrimSpace(it.Name), strings.TrimSpace(it.Quantity))
	}
	return ShareContent{
		Title: ShoppingListTitle,
		Text:  ShoppingListTitle + "\n\n" + strings.Join(lines, "\n"),
	}, nil
}

func pendingItems(items []model.ShoppingListItem) []model.ShoppingListItem {
	var pending []model.ShoppingListItem
	for _, it := range items {
		if !it.Checked {
			pending = append(pending, it)
		}
	}
	return pending
}
