package model

// FilterOption is a generation constraint the user can tick. Only the labels
// of checked options reach the AI.
type FilterOption struct {
	ID      string `json:"id"`
	Label   string `json:"label"`
	Checked bool   `json:"checked"`
}

// FilterGroup is a named set of options shown together on the input form.
type FilterGroup struct {
	Name         string         `json:"name"`
	SingleSelect bool           `json:"single_select"`
	Options      []FilterOption `json:"options"`
}

// DefaultFilterGroups returns a fresh copy of the filter catalog offered on the
// ingredient form.
func DefaultFilterGroups() []FilterGroup {
	return []FilterGroup{
		{
			Name: "dieta",
			Options: []FilterOption{
				{ID: "vegano", Label: "Vegano"},
				{ID: "vegetariano", Label: "Vegetariano"},
				{ID: "sin-gluten", Label: "Sin Gluten"},
				{ID: "no-me-complico", Label: "No me complico"},
			},
		},
		{
			Name: "otros",
			Options: []FilterOption{
				{ID: "rapido", Label: "Rápido (< 30 min)"},
				{ID: "economico", Label: "Económico"},
				{ID: "saludable", Label: "Saludable"},
				{ID: "gourmet", Label: "Gourmet"},
			},
		},
		{
			Name:         "dificultad",
			SingleSelect: true,
			Options: []FilterOption{
				{ID: "facil", Label: "Fácil"},
				{ID: "intermedio", Label: "Intermedio"},
				{ID: "dificil", Label: "Difícil"},
			},
		},
	}
}

// CheckedLabels folds a list of options into the labels of the checked ones,
// preserving order.
func CheckedLabels(options []FilterOption) []string {
	labels := make([]string, 0, len(options))
	for _, o := range options {
		if o.Checked {
			labels = append(labels, o.Label)
		}
	}
	return labels
}
