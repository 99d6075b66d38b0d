package database

import (
	"fmt"
	"math/rand"

	"foodiebot/internal/models"
)

// seedRandSource keeps the generated catalog identical across runs.
const seedRandSource = 42

var moodTagPool = []string{"adventurous", "comfort", "indulgent", "healthy", "quick", "party"}

var ingredientPool = []string{
	"beef patty", "chicken", "pork", "tofu", "kimchi", "gochujang", "brioche bun",
	"jalapeño", "lime crema", "cheddar", "mozzarella", "bacon", "lettuce", "tomato",
}

var nameAdjectives = []string{"Fire", "Spicy", "Classic", "Crispy", "Fusion", "Smoky", "Zesty"}
var nameMiddles = []string{"Dragon", "Ranch", "BBQ", "Cheese", "Garden", "Deluxe"}
var nameForms = []string{"Burger", "Tacos", "Pizza", "Wrap", "Sandwich", "Bowl"}

var descriptionPhrases = []string{
	"Bold flavors", "handcrafted", "crispy", "tender", "smoky",
	"with a kick", "chef-special", "perfect for sharing",
}

// GenerateProducts builds n sample fast-food products deterministically.
// Calling it twice yields the same catalog.
func GenerateProducts(n int) []models.Product {
	rng := rand.New(rand.NewSource(seedRandSource))
	products := make([]models.Product, 0, n)
	for i := 1; i <= n; i++ {
		products = append(products, makeProduct(rng, i))
	}
	return products
}

func makeProduct(rng *rand.Rand, i int) models.Product {
	id := fmt.Sprintf("FF%03d", i)
	category := models.Categories[rng.Intn(len(models.Categories))]
	spice := rng.Intn(11)
	price := roundCents(3.99 + rng.Float64()*(19.99-3.99))
	calories := 150 + rng.Intn(801)

	var dietary []string
	if rng.Float64() < 0.2 {
		dietary = append(dietary, "vegetarian")
	}
	if rng.Float64() < 0.1 {
		dietary = append(dietary, "vegan")
	}
	if rng.Float64() < 0.5 {
		dietary = append(dietary, "contains_gluten")
	}
	if rng.Float64() < 0.4 {
		dietary = append(dietary, "contains_dairy")
	}

	var allergens []string
	for _, tag := range dietary {
		switch tag {
		case "contains_gluten":
			allergens = append(allergens, "gluten")
		case "contains_dairy":
			allergens = append(allergens, "dairy")
		}
	}

	mood := sampleStrings(rng, moodTagPool, 1+rng.Intn(2))
	ingredients := sampleStrings(rng, ingredientPool, 3+rng.Intn(4))

	name := fmt.Sprintf("%s %s %s",
		nameAdjectives[rng.Intn(len(nameAdjectives))],
		nameMiddles[rng.Intn(len(nameMiddles))],
		nameForms[rng.Intn(len(nameForms))])
	phrases := sampleStrings(rng, descriptionPhrases, 3)
	description := fmt.Sprintf("%s: %s %s %s.", name, phrases[0], phrases[1], phrases[2])

	return models.Product{
		ID:              id,
		Name:            name,
		Category:        category,
		Description:     description,
		Ingredients:     models.StringList(ingredients),
		Price:           price,
		Calories:        calories,
		PrepTime:        fmt.Sprintf("%d mins", 5+rng.Intn(16)),
		DietaryTags:     models.StringList(dietary),
		MoodTags:        models.StringList(mood),
		Allergens:       models.StringList(allergens),
		PopularityScore: 10 + rng.Intn(91),
		ChefSpecial:     rng.Float64() < 0.12,
		LimitedTime:     rng.Float64() < 0.08,
		SpiceLevel:      spice,
		ImageURL:        fmt.Sprintf("https://picsum.photos/seed/%s/400/300", id),
	}
}

// sampleStrings picks k distinct entries from pool.
func sampleStrings(rng *rand.Rand, pool []string, k int) []string {
	if k > len(pool) {
		k = len(pool)
	}
	idx := rng.Perm(len(pool))[:k]
	out := make([]string, 0, k)
	for _, j := range idx {
		out = append(out, pool[j])
	}
	return out
}

func roundCents(v float64) float64 {
	return float64(int(v*100+0.5)) / 100
}
