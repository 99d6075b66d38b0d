package database

import (
	"context"
	"reflect"
	"testing"

	"foodiebot/internal/models"
)

func TestGenerateProducts_Deterministic(t *testing.T) {
	first := GenerateProducts(100)
	second := GenerateProducts(100)
	if !reflect.DeepEqual(first, second) {
		t.Fatal("generator must produce the same catalog on every run")
	}
}

func TestGenerateProducts_WellFormed(t *testing.T) {
	products := GenerateProducts(100)
	if len(products) != 100 {
		t.Fatalf("expected 100 products, got %d", len(products))
	}
	if products[0].ID != "FF001" || products[99].ID != "FF100" {
		t.Fatalf("unexpected id range: %s .. %s", products[0].ID, products[99].ID)
	}

	seen := make(map[string]bool, len(products))
	for _, p := range products {
		if seen[p.ID] {
			t.Fatalf("duplicate id %s", p.ID)
		}
		seen[p.ID] = true

		if _, ok := models.ParseCategory(string(p.Category)); !ok {
			t.Fatalf("product %s has unknown category %q", p.ID, p.Category)
		}
		if p.Name == "" {
			t.Fatalf("product %s has empty name", p.ID)
		}
		if p.Price < 3.99 || p.Price > 19.99 {
			t.Fatalf("product %s price %f out of range", p.ID, p.Price)
		}
		if p.SpiceLevel < 0 || p.SpiceLevel > 10 {
			t.Fatalf("product %s spice level %d out of range", p.ID, p.SpiceLevel)
		}
		if p.PopularityScore < 10 || p.PopularityScore > 100 {
			t.Fatalf("product %s popularity %d out of range", p.ID, p.PopularityScore)
		}
		if p.DietaryTags.Contains("contains_gluten") && !p.Allergens.Contains("gluten") {
			t.Fatalf("product %s misses the gluten allergen", p.ID)
		}
	}
}

func TestSeedCatalog_LoadsEveryProduct(t *testing.T) {
	store := NewMemoryCatalogStore()
	if err := SeedCatalog(context.Background(), store, 25); err != nil {
		t.Fatalf("seed: %v", err)
	}
	count, err := store.CountProducts(context.Background())
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 25 {
		t.Fatalf("expected 25 products, got %d", count)
	}
}
