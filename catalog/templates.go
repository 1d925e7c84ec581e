// catalog/templates.go
package catalog

import "flavorquest-system/models"

// Seed content: the Singapore general path. Two of three challenges per
// stone ship as fixed content; the third slot is typically replaced by the
// generator at runtime but has a static default so the path works offline.

// SeedPaths lists the shipped paths.
var SeedPaths = []models.Path{
	{ID: "sg_general", CountryID: "sg", Name: "Singapore General", Order: 1},
}

// SeedCountries lists the shipped countries.
var SeedCountries = []models.Country{
	{ID: "sg", Name: "Singapore"},
}

// SeedStones lists the shipped stones in unlock order.
var SeedStones = []models.Stone{
	{
		ID:           "stone001",
		Name:         "Hawker Essentials",
		Theme:        "traditional Singapore hawker center dishes and drinks",
		Order:        1,
		PathID:       "sg_general",
		Emoji:        "🍜",
		ChallengeIDs: []string{"stone001-challenge001", "stone001-challenge002", "stone001-challenge003"},
	},
	{
		ID:           "stone002",
		Name:         "Sweet Singapore",
		Theme:        "traditional and modern Singaporean desserts and sweet treats",
		Order:        2,
		PathID:       "sg_general",
		Emoji:        "🧁",
		ChallengeIDs: []string{"stone002-challenge001", "stone002-challenge002", "stone002-challenge003"},
	},
	{
		ID:           "stone003",
		Name:         "Spice Adventure",
		Theme:        "spicy Southeast Asian dishes popular in Singapore",
		Order:        3,
		PathID:       "sg_general",
		Emoji:        "🌶️",
		ChallengeIDs: []string{"stone003-challenge001", "stone003-challenge002", "stone003-challenge003"},
	},
	{
		ID:           "stone004",
		Name:         "Modern Fusion",
		Theme:        "contemporary fusion cuisine and modern interpretations found in Singapore",
		Order:        4,
		PathID:       "sg_general",
		Emoji:        "✨",
		ChallengeIDs: []string{"stone004-challenge001", "stone004-challenge002", "stone004-challenge003"},
	},
}

// SeedChallenges lists the shipped challenges.
var SeedChallenges = []models.Challenge{
	{
		ID: "stone001-challenge001", StoneID: "stone001", Type: models.ChallengeEat,
		Title:       "Hainanese Chicken Rice",
		Description: "Try the iconic Hainanese chicken rice at a hawker center",
		Points:      BasePoints, AIHintEligible: true, LocationHintAvailable: true,
	},
	{
		ID: "stone001-challenge002", StoneID: "stone001", Type: models.ChallengeEat,
		Title:       "Char Kway Teow",
		Description: "Try char kway teow at a local hawker",
		Points:      BasePoints, AIHintEligible: true, LocationHintAvailable: true, AIGenerated: true,
	},
	{
		ID: "stone001-challenge003", StoneID: "stone001", Type: models.ChallengeDrink,
		Title:       "Teh Tarik",
		Description: "Order traditional teh tarik from a hawker uncle",
		Points:      BasePoints, AIHintEligible: true, LocationHintAvailable: true, AIGenerated: true,
	},
	{
		ID: "stone002-challenge001", StoneID: "stone002", Type: models.ChallengeCook,
		Title:       "Kaya Toast Mastery",
		Description: "Make traditional kaya toast from scratch",
		Points:      BasePoints,
	},
	{
		ID: "stone002-challenge002", StoneID: "stone002", Type: models.ChallengeEat,
		Title:       "Ice Kachang",
		Description: "Try ice kachang with red beans and sweet syrup",
		Points:      BasePoints, AIHintEligible: true, LocationHintAvailable: true, AIGenerated: true,
	},
	{
		ID: "stone002-challenge003", StoneID: "stone002", Type: models.ChallengeDrink,
		Title:       "Bubble Tea",
		Description: "Order bubble tea with your favorite toppings",
		Points:      BasePoints, AIHintEligible: true, LocationHintAvailable: true, AIGenerated: true,
	},
	{
		ID: "stone003-challenge001", StoneID: "stone003", Type: models.ChallengeEat,
		Title:       "Chili Crab Master",
		Description: "Eat chili crab with mantou buns at a seafood restaurant",
		Points:      BasePoints, AIHintEligible: true, LocationHintAvailable: true,
	},
	{
		ID: "stone003-challenge002", StoneID: "stone003", Type: models.ChallengeEat,
		Title:       "Sambal Stingray",
		Description: "Try sambal stingray at a zi char stall",
		Points:      BasePoints, AIHintEligible: true, LocationHintAvailable: true, AIGenerated: true,
	},
	{
		ID: "stone003-challenge003", StoneID: "stone003", Type: models.ChallengeDrink,
		Title:       "Teh Halia",
		Description: "Drink ginger tea at a mamak stall",
		Points:      BasePoints, AIHintEligible: true, LocationHintAvailable: true, AIGenerated: true,
	},
	{
		ID: "stone004-challenge001", StoneID: "stone004", Type: models.ChallengeEat,
		Title:       "Salted Egg Croissant",
		Description: "Try the modern salted egg croissant fusion",
		Points:      BasePoints, AIHintEligible: true, LocationHintAvailable: true,
	},
	{
		ID: "stone004-challenge002", StoneID: "stone004", Type: models.ChallengeEat,
		Title:       "Truffle Char Kway Teow",
		Description: "Try truffle char kway teow at a modern restaurant",
		Points:      BasePoints, AIHintEligible: true, LocationHintAvailable: true, AIGenerated: true,
	},
	{
		ID: "stone004-challenge003", StoneID: "stone004", Type: models.ChallengeDrink,
		Title:       "Craft Cocktail",
		Description: "Sip a craft cocktail at a trendy bar",
		Points:      BasePoints, AIHintEligible: true, LocationHintAvailable: true, AIGenerated: true,
	},
}

// NewFromSeed builds the catalog from the shipped templates.
func NewFromSeed() (*Catalog, error) {
	return New(SeedStones, SeedChallenges, SeedPaths, SeedCountries)
}
