package catalog

import "strconv"

// Category groups the options a customer can pick for a product.
type Category string

const (
	HotBeverage  Category = "hot_beverage"
	ColdBeverage Category = "cold_beverage"
	Cake         Category = "cake"
	Addition     Category = "addition"
	BundleType   Category = "bundle_type"
)

// CategoryOrder is the order categories are shown and summarised in.
var CategoryOrder = []Category{HotBeverage, ColdBeverage, Cake, BundleType, Addition}

// ProductType is the configuration mode stored in the CMS.
type ProductType string

const (
	TypeSimple ProductType = "simple"
	TypeDouble ProductType = "double"
	TypeBowl   ProductType = "bowl"
)

func (t ProductType) Valid() bool {
	switch t {
	case TypeSimple, TypeDouble, TypeBowl:
		return true
	}
	return false
}

// Option is a single choosable item (beverage, cake, addition, size...).
// Price is a delta in CLP and is usually 0 for beverages and cakes.
type Option struct {
	ID          string   `json:"id"`
	Category    Category `json:"category"`
	Name        string   `json:"name"`
	Price       int64    `json:"price,omitempty"`
	Description string   `json:"description,omitempty"`
}

// Product is a breakfast (or a catering item converted with AsProduct).
type Product struct {
	ID          string                `json:"id"`
	Slug        string                `json:"slug"`
	CategoryID  string                `json:"category_id,omitempty"`
	Category    string                `json:"category,omitempty"`
	Name        string                `json:"name"`
	Description string                `json:"description"`
	Price       int64                 `json:"price"`
	Image       string                `json:"image"`
	Type        ProductType           `json:"type"`
	Featured    bool                  `json:"featured"`
	Features    []string              `json:"features,omitempty"`
	Options     map[Category][]Option `json:"options,omitempty"`
	Additions   []Option              `json:"additions,omitempty"`
	BundleTypes []Option              `json:"bundle_types,omitempty"`
}

// ProductCategory is a menu section ("Para Celebrar", "Saludables"...).
type ProductCategory struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
}

// CateringType splits catering into sweet and savoury.
type CateringType string

const (
	CateringSweet  CateringType = "dulce"
	CateringSavory CateringType = "salado"
)

type CateringOption struct {
	Name  string `json:"name"`
	Price int64  `json:"price"`
}

type CateringItem struct {
	ID          string           `json:"id"`
	Name        string           `json:"name"`
	Description string           `json:"description"`
	Image       string           `json:"image"`
	Type        CateringType     `json:"type"`
	Options     []CateringOption `json:"options"`
}

// StartingPrice is the "Desde" price shown on the card: the lowest option.
func (c CateringItem) StartingPrice() int64 {
	if len(c.Options) == 0 {
		return 0
	}
	min := c.Options[0].Price
	for _, o := range c.Options[1:] {
		if o.Price < min {
			min = o.Price
		}
	}
	return min
}

// AsProduct turns a catering item into a single-choice product whose only
// required choice is the size, priced by the option itself. Size IDs carry
// their position so equally named sizes stay distinct.
func (c CateringItem) AsProduct() Product {
	sizes := make([]Option, 0, len(c.Options))
	for i, o := range c.Options {
		sizes = append(sizes, Option{
			ID:       Slugify(o.Name) + "-" + strconv.Itoa(i+1),
			Category: BundleType,
			Name:     o.Name,
			Price:    o.Price,
		})
	}

	return Product{
		ID:          c.ID,
		Slug:        c.ID,
		Name:        c.Name,
		Description: c.Description,
		Image:       c.Image,
		Type:        TypeSimple,
		Featured:    true,
		Options:     map[Category][]Option{BundleType: sizes},
	}
}
