package service

import (
	"fmt"
	"sort"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/homsent/homsent-chef/backend/internal/model"
)

// Gallery sort orders.
const (
	SortNewest    = "newest"
	SortTitleAsc  = "title-asc"
	SortTitleDesc = "title-desc"
)

// Filter values meaning "no restriction".
const (
	AllCosts   = "Todos"
	AllDiets   = "Todas"
	AllOrigins = "Todos"
)

// GalleryQuery narrows and orders the saved recipe gallery. Empty fields
// impose no restriction.
type GalleryQuery struct {
	Search string `form:"search"`
	Cost   string `form:"cost"`
	Diet   string `form:"diet"`
	Origin string `form:"origin"`
	Sort   string `form:"sort"`
}

// Validate rejects values the gallery does not offer.
func (q GalleryQuery) Validate() error {
	switch q.Cost {
	case "", AllCosts, string(model.CostLow), string(model.CostMedium), string(model.CostHigh):
	default:
		return fmt.Errorf("invalid cost filter %q", q.Cost)
	}
	switch q.Diet {
	case "", AllDiets, string(model.DietDietetic):
	default:
		return fmt.Errorf("invalid diet filter %q", q.Diet)
	}
	switch q.Origin {
	case "", AllOrigins, string(model.OriginNational), string(model.OriginInternational), string(model.OriginWorld):
	default:
		return fmt.Errorf("invalid origin filter %q", q.Origin)
	}
	switch q.Sort {
	case "", SortNewest, SortTitleAsc, SortTitleDesc:
	default:
		return fmt.Errorf("invalid sort order %q", q.Sort)
	}
	return nil
}

// FilterGallery applies q to recipes, which must be newest first. The input
// slice is not modified.
func FilterGallery(recipes []model.Recipe, q GalleryQuery) []model.Recipe {
	fold := cases.Fold()
	needle := fold.String(strings.TrimSpace(q.Search))

	out := make([]model.Recipe, 0, len(recipes))
	for _, r := range recipes {
		if needle != "" && !matchesSearch(fold, r, needle) {
			continue
		}
		if q.Cost != "" && q.Cost != AllCosts && string(r.Cost) != q.Cost {
			continue
		}
		if q.Diet != "" && q.Diet != AllDiets && string(r.DietType) != q.Diet {
			continue
		}
		if q.Origin != "" && q.Origin != AllOrigins && string(r.Origin) != q.Origin {
			continue
		}
		out = append(out, r)
	}

	switch q.Sort {
	case SortTitleAsc, SortTitleDesc:
		col := collate.New(language.Spanish)
		desc := q.Sort == SortTitleDesc
		sort.SliceStable(out, func(i, j int) bool {
			c := col.CompareString(out[i].Title, out[j].Title)
			if desc {
				return c > 0
			}
			return c < 0
		})
	}
	return out
}

func matchesSearch(fold cases.Caser, r model.Recipe, needle string) bool {
	if strings.Contains(fold.String(r.Title), needle) {
		return true
	}
	for _, ing := range r.Ingredients {
		if strings.Contains(fold.String(ing), needle) {
			return true
		}
	}
	return false
}

// Creation is an entry of the "Mis Creaciones" strip.
type Creation struct {
	ID    string `json:"id"`
	Title string `json:"titulo"`
}

// Creations lists id and title of every recipe in store order.
func Creations(recipes []model.Recipe) []Creation {
	out := make([]Creation, len(recipes))
	for i, r := range recipes {
		out[i] = Creation{ID: r.ID, Title: r.Title}
	}
	return out
}
