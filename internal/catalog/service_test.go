package catalog

import (
	"context"
	"errors"
	"io"
	"mime/multipart"
	"strings"
	"testing"
)

type fakeStorage struct {
	keys []string
}

func (f *fakeStorage) Upload(ctx context.Context, key string, file multipart.File, contentType string) (string, error) {
	f.keys = append(f.keys, key)
	return "https://cdn.test/" + key, nil
}

type fakeFile struct {
	*strings.Reader
}

func (fakeFile) Close() error { return nil }

var _ multipart.File = fakeFile{}
var _ io.ReaderAt = fakeFile{}

func TestProductsFilterByCategoryName(t *testing.T) {
	svc := NewService(NewSeededRepository(), nil, nil)

	all, err := svc.Products(context.Background(), "")
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 10 {
		t.Fatalf("expected 10 products, got %d", len(all))
	}

	healthy, err := svc.Products(context.Background(), "Saludables")
	if err != nil {
		t.Fatal(err)
	}
	if len(healthy) != 4 {
		t.Fatalf("expected 4 healthy products, got %d", len(healthy))
	}
	for _, p := range healthy {
		if p.CategoryID != "healthy" {
			t.Fatalf("unexpected product %q in filter", p.Name)
		}
	}
}

func TestConfigurableAddsSharedOptions(t *testing.T) {
	svc := NewService(NewSeededRepository(), nil, nil)

	p, err := svc.Configurable(context.Background(), "desayuno-cumpleanos-simple")
	if err != nil {
		t.Fatal(err)
	}

	for _, c := range []Category{HotBeverage, ColdBeverage, Cake} {
		if len(p.Options[c]) != 4 {
			t.Fatalf("expected 4 %s options, got %d", c, len(p.Options[c]))
		}
	}

	bowl, err := svc.Configurable(context.Background(), "4")
	if err != nil {
		t.Fatal(err)
	}
	if len(bowl.Options) != 0 {
		t.Fatalf("bowl should not get options")
	}
}

func TestConfigurableKeepsProductOptions(t *testing.T) {
	repo := NewSeededRepository()
	p := &Product{
		ID:    "custom",
		Name:  "Caja Especial",
		Price: 30000,
		Type:  TypeSimple,
		Options: map[Category][]Option{
			Cake: {{ID: "k1", Category: Cake, Name: "Kuchen de Nuez"}},
		},
	}
	if err := repo.SaveProduct(context.Background(), p); err != nil {
		t.Fatal(err)
	}

	got, err := NewService(repo, repo, nil).Configurable(context.Background(), "custom")
	if err != nil {
		t.Fatal(err)
	}
	if len(got.Options) != 1 || len(got.Options[Cake]) != 1 {
		t.Fatalf("product options were replaced: %+v", got.Options)
	}
}

func TestConfigurableResolvesCatering(t *testing.T) {
	svc := NewService(NewSeededRepository(), nil, nil)

	p, err := svc.Configurable(context.Background(), "mini-dulces")
	if err != nil {
		t.Fatal(err)
	}
	if len(p.Options[BundleType]) != 2 || p.Price != 0 || !p.Featured {
		t.Fatalf("unexpected catering product: %+v", p)
	}

	if _, err := svc.Configurable(context.Background(), "nope"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestCateringFilter(t *testing.T) {
	svc := NewService(NewSeededRepository(), nil, nil)

	sweet, err := svc.Catering(context.Background(), CateringSweet)
	if err != nil {
		t.Fatal(err)
	}
	if len(sweet) != 1 || sweet[0].ID != "mini-dulces" {
		t.Fatalf("unexpected sweet catering: %+v", sweet)
	}
	if sweet[0].StartingPrice() != 19990 {
		t.Fatalf("expected starting price 19990, got %d", sweet[0].StartingPrice())
	}
}

func TestSaveProductValidation(t *testing.T) {
	repo := NewInMemoryRepository()
	svc := NewService(repo, repo, nil)

	err := svc.SaveProduct(context.Background(), &Product{Name: "", Type: TypeSimple})
	if !IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}

	err = svc.SaveProduct(context.Background(), &Product{Name: "X", Type: "triple"})
	if !IsValidation(err) {
		t.Fatalf("expected validation error for type, got %v", err)
	}

	err = svc.SaveProduct(context.Background(), &Product{
		Name:      "X",
		Type:      TypeSimple,
		Additions: []Option{{ID: "a", Price: -1}},
	})
	if !IsValidation(err) {
		t.Fatalf("expected validation error for option price, got %v", err)
	}

	p := &Product{Name: "Desayuno Sorpresa Ñandú", Price: 25000, Type: TypeSimple}
	if err := svc.SaveProduct(context.Background(), p); err != nil {
		t.Fatal(err)
	}
	if p.ID == "" || p.Slug != "desayuno-sorpresa-nandu" {
		t.Fatalf("unexpected id/slug: %q %q", p.ID, p.Slug)
	}
}

func TestSaveProductReadOnly(t *testing.T) {
	svc := NewService(NewSeededRepository(), nil, nil)
	err := svc.SaveProduct(context.Background(), &Product{Name: "X", Type: TypeSimple})
	if !errors.Is(err, ErrReadOnly) {
		t.Fatalf("expected ErrReadOnly, got %v", err)
	}
}

func TestUploadImage(t *testing.T) {
	repo := NewSeededRepository()
	storage := &fakeStorage{}
	svc := NewService(repo, repo, storage)

	file := fakeFile{strings.NewReader("png-bytes")}
	url, err := svc.UploadImage(context.Background(), "1", file, "foto.PNG", "image/png")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(url, "https://cdn.test/products/1/") || !strings.HasSuffix(url, ".png") {
		t.Fatalf("unexpected url %q", url)
	}

	p, _ := repo.Product(context.Background(), "1")
	if p.Image != url {
		t.Fatalf("product image not updated")
	}

	if _, err := svc.UploadImage(context.Background(), "1", file, "menu.pdf", ""); !IsValidation(err) {
		t.Fatalf("expected validation error for pdf, got %v", err)
	}
	if _, err := svc.UploadImage(context.Background(), "404", file, "a.jpg", ""); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestSlugify(t *testing.T) {
	cases := map[string]string{
		"Desayuno Romántico (Para 2)": "desayuno-romantico-para-2",
		"  Bowl   Energético ":        "bowl-energetico",
		"Café & Té":                   "cafe-te",
	}
	for in, want := range cases {
		if got := Slugify(in); got != want {
			t.Errorf("Slugify(%q) = %q, want %q", in, got, want)
		}
	}
}
