package order

import (
	"sort"

	"sanfeliz/internal/catalog"
)

// Config carries the shop-level settings the engine prices with.
type Config struct {
	CustomizationName      string
	CustomizationSurcharge int64
}

// DefaultConfig matches the current storefront ("Tazón Personalizado").
func DefaultConfig() Config {
	return Config{
		CustomizationName:      "Tazón Personalizado con Nombre",
		CustomizationSurcharge: 6990,
	}
}

type State int

const (
	StateOpen State = iota
	StateClosed
)

func (s State) String() string {
	if s == StateOpen {
		return "open"
	}
	return "closed"
}

// Engine holds the choices a customer makes for one product. It never
// returns errors: rejected mutations leave the state untouched and
// report false.
type Engine struct {
	product catalog.Product
	rule    Rule
	cfg     Config

	state      State
	categories []catalog.Category

	single    map[catalog.Category]string
	counts    map[catalog.Category]map[string]int
	modifiers map[catalog.Category]string

	customization bool
	notes         string
}

func New(product catalog.Product, cfg Config) *Engine {
	e := &Engine{cfg: cfg}
	e.Reset(product)
	return e
}

// Reset opens the engine for product, discarding every prior choice.
func (e *Engine) Reset(product catalog.Product) {
	e.product = product
	e.rule = RuleFor(product.Type)
	e.categories = requiredCategories(product, e.rule)
	e.state = StateOpen
	e.single = make(map[catalog.Category]string)
	e.counts = make(map[catalog.Category]map[string]int)
	e.modifiers = make(map[catalog.Category]string)
	e.customization = false
	e.notes = ""
}

// Close discards the selection state.
func (e *Engine) Close() {
	e.state = StateClosed
	e.single = make(map[catalog.Category]string)
	e.counts = make(map[catalog.Category]map[string]int)
	e.modifiers = make(map[catalog.Category]string)
	e.customization = false
	e.notes = ""
}

func (e *Engine) State() State { return e.state }

func (e *Engine) Rule() Rule { return e.rule }

func (e *Engine) Product() catalog.Product { return e.product }

func (e *Engine) Notes() string { return e.notes }

func (e *Engine) Customization() bool { return e.customization }

// Required returns the categories the customer must fill, in display order.
func (e *Engine) Required() []catalog.Category {
	return append([]catalog.Category(nil), e.categories...)
}

// CustomizationAllowed is false for featured products.
func (e *Engine) CustomizationAllowed() bool {
	return !e.product.Featured && e.cfg.CustomizationSurcharge > 0
}

// SelectSingle picks optionID for category in single-choice mode.
func (e *Engine) SelectSingle(category catalog.Category, optionID string) bool {
	if e.state != StateOpen || e.rule.Kind != KindSingleChoice {
		return false
	}
	if _, ok := e.findOption(category, optionID); !ok {
		return false
	}
	e.single[category] = optionID
	return true
}

// AdjustCount moves the count of optionID by delta (+1 or -1) in
// bounded-multi mode. The category total stays within [0, Max].
func (e *Engine) AdjustCount(category catalog.Category, optionID string, delta int) bool {
	if e.state != StateOpen || e.rule.Kind != KindBoundedMulti {
		return false
	}
	if delta != 1 && delta != -1 {
		return false
	}
	if _, ok := e.findOption(category, optionID); !ok {
		return false
	}

	counts := e.counts[category]
	if counts == nil {
		counts = make(map[string]int)
		e.counts[category] = counts
	}

	if delta > 0 && e.categoryTotal(category) >= e.rule.Max {
		return false
	}
	if delta < 0 && counts[optionID] == 0 {
		return false
	}

	counts[optionID] += delta
	if counts[optionID] == 0 {
		delete(counts, optionID)
	}
	return true
}

// SelectModifier picks the addition or bundle type. An empty optionID
// clears the current choice.
func (e *Engine) SelectModifier(category catalog.Category, optionID string) bool {
	if e.state != StateOpen {
		return false
	}
	if category != catalog.Addition && category != catalog.BundleType {
		return false
	}
	if optionID == "" {
		if _, ok := e.modifiers[category]; !ok {
			return false
		}
		delete(e.modifiers, category)
		return true
	}
	if _, ok := findIn(e.modifierOptions(category), optionID); !ok {
		return false
	}
	e.modifiers[category] = optionID
	return true
}

// SetCustomization toggles the personalization surcharge. Featured
// products keep it off.
func (e *Engine) SetCustomization(on bool) bool {
	if e.state != StateOpen {
		return false
	}
	if on && !e.CustomizationAllowed() {
		e.customization = false
		return false
	}
	e.customization = on
	return true
}

func (e *Engine) SetNotes(text string) bool {
	if e.state != StateOpen {
		return false
	}
	e.notes = text
	return true
}

// Count returns how many times optionID is picked in category.
func (e *Engine) Count(category catalog.Category, optionID string) int {
	switch e.rule.Kind {
	case KindSingleChoice:
		if e.single[category] == optionID && optionID != "" {
			return 1
		}
	case KindBoundedMulti:
		return e.counts[category][optionID]
	}
	return 0
}

// Selected returns the single-choice pick for category, if any.
func (e *Engine) Selected(category catalog.Category) (string, bool) {
	id, ok := e.single[category]
	return id, ok
}

// Modifier returns the chosen addition or bundle type, if any.
func (e *Engine) Modifier(category catalog.Category) (string, bool) {
	id, ok := e.modifiers[category]
	return id, ok
}

// Total is base price plus every applicable surcharge and delta.
func (e *Engine) Total() int64 {
	total := e.product.Price

	if e.customization && e.CustomizationAllowed() {
		total += e.cfg.CustomizationSurcharge
	}

	for _, category := range []catalog.Category{catalog.Addition, catalog.BundleType} {
		if id, ok := e.modifiers[category]; ok {
			if opt, ok := findIn(e.modifierOptions(category), id); ok {
				total += nonNegative(opt.Price)
			}
		}
	}

	// per-option prices (catering sizes, priced toppings)
	for _, category := range e.categories {
		for _, opt := range e.product.Options[category] {
			total += nonNegative(opt.Price) * int64(e.Count(category, opt.ID))
		}
	}

	return total
}

// IsComplete reports whether every required category has its picks.
func (e *Engine) IsComplete() bool {
	if e.state != StateOpen {
		return false
	}
	switch e.rule.Kind {
	case KindFixed:
		return true
	case KindSingleChoice:
		for _, category := range e.categories {
			if _, ok := e.single[category]; !ok {
				return false
			}
		}
		return true
	case KindBoundedMulti:
		for _, category := range e.categories {
			if e.categoryTotal(category) != e.rule.Max {
				return false
			}
		}
		return true
	}
	return false
}

// Missing lists required categories that still need picks.
func (e *Engine) Missing() []catalog.Category {
	var missing []catalog.Category
	for _, category := range e.categories {
		switch e.rule.Kind {
		case KindSingleChoice:
			if _, ok := e.single[category]; !ok {
				missing = append(missing, category)
			}
		case KindBoundedMulti:
			if e.categoryTotal(category) != e.rule.Max {
				missing = append(missing, category)
			}
		}
	}
	return missing
}

func (e *Engine) categoryTotal(category catalog.Category) int {
	total := 0
	for _, n := range e.counts[category] {
		total += n
	}
	return total
}

func (e *Engine) findOption(category catalog.Category, optionID string) (catalog.Option, bool) {
	if !e.isRequired(category) {
		return catalog.Option{}, false
	}
	return findIn(e.product.Options[category], optionID)
}

func (e *Engine) isRequired(category catalog.Category) bool {
	for _, c := range e.categories {
		if c == category {
			return true
		}
	}
	return false
}

func (e *Engine) modifierOptions(category catalog.Category) []catalog.Option {
	if category == catalog.Addition {
		return e.product.Additions
	}
	return e.product.BundleTypes
}

// requiredCategories returns the categories with at least one option, in
// display order. Categories outside CategoryOrder follow alphabetically.
func requiredCategories(product catalog.Product, rule Rule) []catalog.Category {
	if rule.Kind == KindFixed {
		return nil
	}

	seen := make(map[catalog.Category]bool)
	var out []catalog.Category
	for _, c := range catalog.CategoryOrder {
		seen[c] = true
		if len(product.Options[c]) > 0 {
			out = append(out, c)
		}
	}

	var extra []catalog.Category
	for c, opts := range product.Options {
		if !seen[c] && len(opts) > 0 {
			extra = append(extra, c)
		}
	}
	sort.Slice(extra, func(i, j int) bool { return extra[i] < extra[j] })

	return append(out, extra...)
}

func findIn(options []catalog.Option, id string) (catalog.Option, bool) {
	if id == "" {
		return catalog.Option{}, false
	}
	for _, o := range options {
		if o.ID == id {
			return o, true
		}
	}
	return catalog.Option{}, false
}

func nonNegative(v int64) int64 {
	if v < 0 {
		return 0
	}
	return v
}
