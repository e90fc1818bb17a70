package export

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/homsent/homsent-chef/backend/internal/model"
)

// Retailer is an online supermarket with a product search page.
type Retailer struct {
	Name      string `json:"name"`
	LogoURL   string `json:"logo_url"`
	SearchURL string `json:"search_url"`
}

var retailers = []Retailer{
	{
		Name:      "Mercadona",
		LogoURL:   "https://upload.wikimedia.org/wikipedia/commons/thumb/7/78/Mercadona_logo.svg/1200px-Mercadona_logo.svg.png",
		SearchURL: "https://tienda.mercadona.es/search?query=",
	},
	{
		Name:      "Carrefour",
		LogoURL:   "https://upload.wikimedia.org/wikipedia/fr/thumb/3/3b/Logo_Carrefour.svg/1200px-Logo_Carrefour.svg.png",
		SearchURL: "https://www.carrefour.es/?q=",
	},
	{
		Name:      "Dia",
		LogoURL:   "https://upload.wikimedia.org/wikipedia/commons/thumb/9/9f/DIA_logo.svg/1200px-DIA_logo.svg.png",
		SearchURL: "https://www.dia.es/compra-online/search?text=",
	},
	{
		Name:      "El Corte Inglés",
		LogoURL:   "https://upload.wikimedia.org/wikipedia/commons/thumb/7/73/Logo_de_El_Corte_Ingl%C3%A9s.svg/1200px-Logo_de_El_Corte_Ingl%C3%A9s.svg.png",
		SearchURL: "https://www.elcorteingles.es/supermercado/buscar/?term=",
	},
}

// Retailers returns the supported supermarkets.
func Retailers() []Retailer {
	return append([]Retailer(nil), retailers...)
}

// RetailerLink builds a search URL on the named retailer for every unchecked
// item. Names match ignoring case.
func RetailerLink(name string, items []model.ShoppingListItem) (string, error) {
	var retailer *Retailer
	for i := range retailers {
		if strings.EqualFold(retailers[i].Name, strings.TrimSpace(name)) {
			retailer = &retailers[i]
			break
		}
	}
	if retailer == nil {
		return "", fmt.Errorf("%w: %q", ErrUnknownRetailer, name)
	}

	pending := pendingItems(items)
	if len(pending) == 0 {
		return "", ErrNothingPending
	}
	names := make([]string, len(pending))
	for i, it := range pending {
		names[i] = it.Name
	}
	return retailer.SearchURL + EncodeURIComponent(strings.Join(names, " ")), nil
}

var componentUnescaper = strings.NewReplacer(
	"+", "%20",
	"%21", "!",
	"%27", "'",
	"%28", "(",
	"%29", ")",
	"%2A", "*",
)

// EncodeURIComponent escapes s the way browsers escape a URI component:
// spaces become %20 and !'()* are kept literal.
func EncodeURIComponent(s string) string {
	return componentUnescaper.Replace(url.QueryEscape(s))
}
