package order

import (
	"fmt"
	"strconv"
	"strings"

	"sanfeliz/internal/catalog"
)

const (
	NotSelected = "No seleccionado"
	NoNotes     = "Ninguna"
)

// Line is one row of the order summary.
type Line struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

var categoryLabels = map[catalog.Category]string{
	catalog.HotBeverage:  "Bebida Caliente",
	catalog.ColdBeverage: "Jugo",
	catalog.Cake:         "Pastel",
	catalog.BundleType:   "Formato",
	catalog.Addition:     "Adicional",
}

// CategoryLabel is the Spanish label used in summaries and messages.
func CategoryLabel(c catalog.Category) string {
	if l, ok := categoryLabels[c]; ok {
		return l
	}
	return string(c)
}

// Summary renders the configuration as ordered lines. Selections follow
// catalog order, never pick order, so equal states give equal output.
func (e *Engine) Summary() []Line {
	name := e.product.Name
	if strings.TrimSpace(name) == "" {
		name = "Producto"
	}

	lines := []Line{{Label: "Producto", Value: name}}

	for _, category := range e.categories {
		lines = append(lines, Line{
			Label: CategoryLabel(category),
			Value: e.categoryValue(category),
		})
	}

	if id, ok := e.modifiers[catalog.BundleType]; ok {
		lines = append(lines, Line{Label: "Tipo", Value: optionName(e.product.BundleTypes, id)})
	}
	if id, ok := e.modifiers[catalog.Addition]; ok {
		lines = append(lines, Line{Label: "Adicional", Value: optionName(e.product.Additions, id)})
	}

	if e.CustomizationAllowed() {
		value := "No"
		if e.customization {
			value = "Sí"
		}
		lines = append(lines, Line{Label: e.cfg.CustomizationName, Value: value})
	}

	notes := e.notes
	if strings.TrimSpace(notes) == "" {
		notes = NoNotes
	}
	lines = append(lines,
		Line{Label: "Notas adicionales", Value: notes},
		Line{Label: "Total", Value: FormatCLP(e.Total())},
	)

	return lines
}

func (e *Engine) categoryValue(category catalog.Category) string {
	options := e.product.Options[category]

	switch e.rule.Kind {
	case KindSingleChoice:
		id, ok := e.single[category]
		if !ok {
			return NotSelected
		}
		return optionName(options, id)

	case KindBoundedMulti:
		var parts []string
		for _, opt := range options {
			if n := e.counts[category][opt.ID]; n > 0 {
				parts = append(parts, fmt.Sprintf("%s x%d", displayName(opt), n))
			}
		}
		if len(parts) == 0 {
			return NotSelected
		}
		return strings.Join(parts, ", ")
	}

	return NotSelected
}

func optionName(options []catalog.Option, id string) string {
	opt, ok := findIn(options, id)
	if !ok {
		return NotSelected
	}
	return displayName(opt)
}

func displayName(opt catalog.Option) string {
	if strings.TrimSpace(opt.Name) == "" {
		return "Opción " + opt.ID
	}
	return opt.Name
}

// FormatCLP renders pesos the way es-CL does: "$36.980".
func FormatCLP(amount int64) string {
	sign := ""
	if amount < 0 {
		sign = "-"
		amount = -amount
	}

	digits := strconv.FormatInt(amount, 10)
	var b strings.Builder
	for i, d := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(d)
	}

	return sign + "$" + b.String()
}
