package feeds

import (
	"strings"
	"testing"

	"github.com/magneticmemoriescz-bit/magnetic-memories-api/internal/models"
)

func TestHeurekaFeed(t *testing.T) {
	override := 120.0
	products := []models.Product{
		{
			ID:        1,
			Name:      "Magnetky A5",
			Slug:      "magnetky-a5",
			Category:  models.CategoryMagnetsA5,
			BasePrice: 22.78,
			ImageURL:  "https://files.example.com/a5.jpg",
			Active:    true,
		},
		{
			ID:        2,
			Name:      "Fotoobraz",
			Slug:      "fotoobraz",
			Category:  models.CategoryPhotoCanvas,
			BasePrice: 450,
			Active:    true,
			Variants: []models.ProductVariant{
				{ID: 10, ProductID: 2, Name: "30x40"},
				{ID: 11, ProductID: 2, Name: "60x80", PriceOverride: &override},
			},
		},
		{ID: 3, Name: "Skrytý produkt", Slug: "skryty", Active: false, BasePrice: 1},
	}

	feed, err := Heureka(products, "https://www.magnetickevzpominky.cz/")
	if err != nil {
		t.Fatalf("Failed to render feed: %v", err)
	}
	out := string(feed)

	if !strings.HasPrefix(out, "<?xml") {
		t.Error("Expected XML header")
	}
	if !strings.Contains(out, "<PRODUCTNAME>Magnetky A5</PRODUCTNAME>") {
		t.Errorf("Expected first product in feed:\n%s", out)
	}
	if !strings.Contains(out, "<ITEM_ID>2-11</ITEM_ID>") {
		t.Error("Expected variant item ids")
	}
	if !strings.Contains(out, "<PRICE_VAT>120.00</PRICE_VAT>") {
		t.Error("Expected variant price override in feed")
	}
	if !strings.Contains(out, "<URL>https://www.magnetickevzpominky.cz/produkt/magnetky-a5</URL>") {
		t.Errorf("Expected product URL without doubled slash:\n%s", out)
	}
	if strings.Contains(out, "Skrytý produkt") {
		t.Error("Inactive products must not appear in the feed")
	}
	// Products without variants appear once; products with variants once per variant
	if got := strings.Count(out, "<SHOPITEM>"); got != 3 {
		t.Errorf("Expected 3 feed items, got %d", got)
	}
}

func TestSitemap(t *testing.T) {
	sitemap, err := Sitemap([]string{"magnetky-a5", "fotoobraz"}, "https://www.magnetickevzpominky.cz")
	if err != nil {
		t.Fatalf("Failed to render sitemap: %v", err)
	}
	out := string(sitemap)

	if !strings.Contains(out, "http://www.sitemaps.org/schemas/sitemap/0.9") {
		t.Error("Expected sitemap namespace")
	}
	if !strings.Contains(out, "<loc>https://www.magnetickevzpominky.cz/produkt/magnetky-a5</loc>") {
		t.Errorf("Expected product entry:\n%s", out)
	}
	if !strings.Contains(out, "<loc>https://www.magnetickevzpominky.cz/</loc>") {
		t.Error("Expected home page entry")
	}
}

func TestSitemapWithoutProducts(t *testing.T) {
	sitemap, err := Sitemap(nil, "https://www.magnetickevzpominky.cz")
	if err != nil {
		t.Fatalf("Failed to render sitemap: %v", err)
	}
	if !strings.Contains(string(sitemap), "<url>") {
		t.Error("Expected static pages even with an empty catalog")
	}
}
