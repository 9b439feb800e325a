package order

import "sanfeliz/internal/catalog"

// Kind tells the engine how selections are tracked for a product.
type Kind int

const (
	KindSingleChoice Kind = iota
	KindBoundedMulti
	KindFixed
)

func (k Kind) String() string {
	switch k {
	case KindSingleChoice:
		return "single_choice"
	case KindBoundedMulti:
		return "bounded_multi"
	case KindFixed:
		return "fixed"
	}
	return "unknown"
}

// Rule is the selection mode of a product. Max only matters for
// KindBoundedMulti and is the number of picks each category needs.
type Rule struct {
	Kind Kind
	Max  int
}

func SingleChoice() Rule { return Rule{Kind: KindSingleChoice, Max: 1} }

func BoundedMulti(max int) Rule {
	if max < 1 {
		max = 1
	}
	return Rule{Kind: KindBoundedMulti, Max: max}
}

func Fixed() Rule { return Rule{Kind: KindFixed} }

// DualPersonPicks is how many of each category a "para 2" breakfast takes.
const DualPersonPicks = 2

// RuleFor maps the CMS product type to its selection rule. Unknown types
// fall back to single choice.
func RuleFor(t catalog.ProductType) Rule {
	switch t {
	case catalog.TypeDouble:
		return BoundedMulti(DualPersonPicks)
	case catalog.TypeBowl:
		return Fixed()
	default:
		return SingleChoice()
	}
}
