package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const contentfulBaseURL = "https://cdn.contentful.com"

// ContentfulClient reads the catalog from the Contentful Delivery API.
// It is read-only; admin writes go to a Writer backend.
type ContentfulClient struct {
	space       string
	token       string
	environment string
	baseURL     string
	http        *http.Client
}

func NewContentfulClient(space, token, environment string) *ContentfulClient {
	if environment == "" {
		environment = "master"
	}
	return &ContentfulClient{
		space:       space,
		token:       token,
		environment: environment,
		baseURL:     contentfulBaseURL,
		http:        &http.Client{Timeout: 15 * time.Second},
	}
}

// WithBaseURL points the client at another host (tests, preview API).
func (c *ContentfulClient) WithBaseURL(base string) *ContentfulClient {
	c.baseURL = strings.TrimRight(base, "/")
	return c
}

// --------------------------------------------------
// Delivery API shapes
// --------------------------------------------------
type cfSys struct {
	ID          string `json:"id"`
	LinkType    string `json:"linkType,omitempty"`
	ContentType *struct {
		Sys struct {
			ID string `json:"id"`
		} `json:"sys"`
	} `json:"contentType,omitempty"`
}

type cfLink struct {
	Sys cfSys `json:"sys"`
}

type cfEntry struct {
	Sys    cfSys           `json:"sys"`
	Fields json.RawMessage `json:"fields"`
}

type cfAsset struct {
	Sys    cfSys `json:"sys"`
	Fields struct {
		File struct {
			URL string `json:"url"`
		} `json:"file"`
	} `json:"fields"`
}

type cfResponse struct {
	Items    []cfEntry `json:"items"`
	Includes struct {
		Entry []cfEntry `json:"Entry"`
		Asset []cfAsset `json:"Asset"`
	} `json:"includes"`
}

type cfBreakfastFields struct {
	Name             string   `json:"name"`
	Slug             string   `json:"slug"`
	Description      string   `json:"description"`
	Price            int64    `json:"price"`
	Image            *cfLink  `json:"image"`
	Type             string   `json:"type"`
	Category         *cfLink  `json:"category"`
	DefaultBeverages []cfLink `json:"defaultBeverages"`
	DefaultCakes     []cfLink `json:"defaultCakes"`
	Featured         bool     `json:"featured"`
	Features         []string `json:"features"`
	Additions        []Option `json:"additions"`
	BundleTypes      []Option `json:"bundleTypes"`
}

type cfCategoryFields struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
}

type cfBeverageFields struct {
	Name  string `json:"name"`
	Type  string `json:"type"`
	Price int64  `json:"price"`
}

type cfCakeFields struct {
	Name  string `json:"name"`
	Price int64  `json:"price"`
}

type cfCateringFields struct {
	Name        string           `json:"name"`
	Description string           `json:"description"`
	Image       *cfLink          `json:"image"`
	Type        string           `json:"type"`
	Options     []CateringOption `json:"options"`
}

// --------------------------------------------------
// Reader
// --------------------------------------------------
func (c *ContentfulClient) Categories(ctx context.Context) ([]ProductCategory, error) {
	resp, err := c.entries(ctx, url.Values{
		"content_type": {"breakfastCategory"},
		"order":        {"fields.name"},
	})
	if err != nil {
		return nil, err
	}

	var out []ProductCategory
	for _, item := range resp.Items {
		var f cfCategoryFields
		if err := json.Unmarshal(item.Fields, &f); err != nil {
			continue
		}
		out = append(out, ProductCategory{
			ID:          item.Sys.ID,
			Name:        f.Name,
			Description: f.Description,
			Icon:        f.Icon,
		})
	}
	return out, nil
}

func (c *ContentfulClient) Products(ctx context.Context) ([]Product, error) {
	resp, err := c.entries(ctx, url.Values{
		"content_type": {"breakfast"},
		"order":        {"fields.name"},
		"include":      {"2"},
	})
	if err != nil {
		return nil, err
	}

	idx := newIncludeIndex(resp)
	var out []Product
	for _, item := range resp.Items {
		p, ok := idx.product(item)
		if ok {
			out = append(out, p)
		}
	}
	return out, nil
}

func (c *ContentfulClient) Product(ctx context.Context, idOrSlug string) (*Product, error) {
	// sys.id first, then slug
	for _, key := range []string{"sys.id", "fields.slug"} {
		resp, err := c.entries(ctx, url.Values{
			"content_type": {"breakfast"},
			key:            {idOrSlug},
			"limit":        {"1"},
			"include":      {"2"},
		})
		if err != nil {
			return nil, err
		}
		if len(resp.Items) == 0 {
			continue
		}

		p, ok := newIncludeIndex(resp).product(resp.Items[0])
		if !ok {
			return nil, ErrNotFound
		}
		return &p, nil
	}
	return nil, ErrNotFound
}

func (c *ContentfulClient) Options(ctx context.Context) ([]Option, error) {
	var out []Option

	beverages, err := c.entries(ctx, url.Values{
		"content_type": {"beverage"},
		"order":        {"fields.name"},
	})
	if err != nil {
		return nil, err
	}
	for _, item := range beverages.Items {
		if opt, ok := beverageOption(item); ok {
			out = append(out, opt)
		}
	}

	cakes, err := c.entries(ctx, url.Values{
		"content_type": {"cake"},
		"order":        {"fields.name"},
	})
	if err != nil {
		return nil, err
	}
	for _, item := range cakes.Items {
		if opt, ok := cakeOption(item); ok {
			out = append(out, opt)
		}
	}

	return out, nil
}

func (c *ContentfulClient) CateringItems(ctx context.Context) ([]CateringItem, error) {
	resp, err := c.entries(ctx, url.Values{
		"content_type": {"cateringItem"},
		"order":        {"fields.name"},
		"include":      {"1"},
	})
	if err != nil {
		return nil, err
	}

	idx := newIncludeIndex(resp)
	var out []CateringItem
	for _, item := range resp.Items {
		var f cfCateringFields
		if err := json.Unmarshal(item.Fields, &f); err != nil {
			continue
		}
		out = append(out, CateringItem{
			ID:          item.Sys.ID,
			Name:        f.Name,
			Description: f.Description,
			Image:       idx.assetURL(f.Image),
			Type:        CateringType(f.Type),
			Options:     f.Options,
		})
	}
	return out, nil
}

func (c *ContentfulClient) entries(ctx context.Context, q url.Values) (*cfResponse, error) {
	if c.space == "" || c.token == "" {
		return nil, errors.New("missing contentful credentials")
	}

	endpoint := fmt.Sprintf(
		"%s/spaces/%s/environments/%s/entries?%s",
		c.baseURL,
		url.PathEscape(c.space),
		url.PathEscape(c.environment),
		q.Encode(),
	)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("contentful api error (%d): %s", resp.StatusCode, string(raw))
	}

	var out cfResponse
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("decode contentful response: %w", err)
	}
	return &out, nil
}

// --------------------------------------------------
// Link resolution
// --------------------------------------------------
type includeIndex struct {
	entries map[string]cfEntry
	assets  map[string]string
}

func newIncludeIndex(resp *cfResponse) includeIndex {
	idx := includeIndex{
		entries: make(map[string]cfEntry),
		assets:  make(map[string]string),
	}
	for _, e := range resp.Includes.Entry {
		idx.entries[e.Sys.ID] = e
	}
	for _, a := range resp.Includes.Asset {
		idx.assets[a.Sys.ID] = a.Fields.File.URL
	}
	return idx
}

// assetURL resolves an image link; Contentful returns protocol-relative URLs.
func (idx includeIndex) assetURL(link *cfLink) string {
	if link == nil {
		return ""
	}
	u := idx.assets[link.Sys.ID]
	if strings.HasPrefix(u, "//") {
		return "https:" + u
	}
	return u
}

func (idx includeIndex) product(item cfEntry) (Product, bool) {
	var f cfBreakfastFields
	if err := json.Unmarshal(item.Fields, &f); err != nil {
		return Product{}, false
	}

	p := Product{
		ID:          item.Sys.ID,
		Slug:        f.Slug,
		Name:        f.Name,
		Description: f.Description,
		Price:       f.Price,
		Image:       idx.assetURL(f.Image),
		Type:        ProductType(f.Type),
		Featured:    f.Featured,
		Features:    f.Features,
		Additions:   withCategory(f.Additions, Addition),
		BundleTypes: withCategory(f.BundleTypes, BundleType),
	}

	if f.Category != nil {
		p.CategoryID = f.Category.Sys.ID
		if e, ok := idx.entries[f.Category.Sys.ID]; ok {
			var cf cfCategoryFields
			if json.Unmarshal(e.Fields, &cf) == nil {
				p.Category = cf.Name
			}
		}
	}

	options := make(map[Category][]Option)
	for _, link := range f.DefaultBeverages {
		if e, ok := idx.entries[link.Sys.ID]; ok {
			if opt, ok := beverageOption(e); ok {
				options[opt.Category] = append(options[opt.Category], opt)
			}
		}
	}
	for _, link := range f.DefaultCakes {
		if e, ok := idx.entries[link.Sys.ID]; ok {
			if opt, ok := cakeOption(e); ok {
				options[Cake] = append(options[Cake], opt)
			}
		}
	}
	if len(options) > 0 {
		p.Options = options
	}

	return p, true
}

func beverageOption(e cfEntry) (Option, bool) {
	var f cfBeverageFields
	if err := json.Unmarshal(e.Fields, &f); err != nil {
		return Option{}, false
	}
	category := HotBeverage
	if f.Type == "cold" {
		category = ColdBeverage
	}
	return Option{ID: e.Sys.ID, Category: category, Name: f.Name, Price: f.Price}, true
}

func cakeOption(e cfEntry) (Option, bool) {
	var f cfCakeFields
	if err := json.Unmarshal(e.Fields, &f); err != nil {
		return Option{}, false
	}
	return Option{ID: e.Sys.ID, Category: Cake, Name: f.Name, Price: f.Price}, true
}

func withCategory(opts []Option, category Category) []Option {
	for i := range opts {
		opts[i].Category = category
		if opts[i].ID == "" {
			opts[i].ID = Slugify(opts[i].Name)
		}
	}
	return opts
}
